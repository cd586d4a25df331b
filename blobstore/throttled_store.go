package blobstore

import (
	"context"

	"github.com/hupe1980/henkan/internal/resource"
)

// ThrottledStore charges every opened blob against the IO rate limit of a
// resource controller before handing it out.
type ThrottledStore struct {
	inner Store
	rc    *resource.Controller
}

// NewThrottledStore wraps inner. A nil rc disables throttling.
func NewThrottledStore(inner Store, rc *resource.Controller) *ThrottledStore {
	return &ThrottledStore{inner: inner, rc: rc}
}

// Open opens name and waits until its size fits the IO budget.
func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.rc.AcquireIO(ctx, int(b.Size())); err != nil {
		_ = b.Close()
		return nil, err
	}
	return b, nil
}
