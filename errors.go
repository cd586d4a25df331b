package henkan

import (
	"errors"
	"fmt"

	"github.com/hupe1980/henkan/internal/resource"
)

var (
	// ErrInvalidN is returned when the requested number of conversions is not positive.
	ErrInvalidN = errors.New("n must be positive")

	// ErrNotLoaded is returned when an optional dictionary cannot be loaded
	// because the engine has no store to load it from.
	ErrNotLoaded = errors.New("dictionary not loaded")

	// ErrUnknownDictionary is returned for an OptionalDictionary value outside
	// the known set.
	ErrUnknownDictionary = errors.New("unknown dictionary")

	// ErrMissingSystem is returned by New when the system dictionary or the
	// connection matrix is nil.
	ErrMissingSystem = errors.New("system dictionary and connection matrix are required")

	// ErrMemoryLimitExceeded is returned by Load when the dictionary does not
	// fit the configured memory budget.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// DictionaryLoadError reports a dictionary that failed to load.
//
// The original underlying error can be accessed via errors.Unwrap.
type DictionaryLoadError struct {
	Name  string
	cause error
}

func (e *DictionaryLoadError) Error() string {
	return fmt.Sprintf("load dictionary %q: %v", e.Name, e.cause)
}

func (e *DictionaryLoadError) Unwrap() error { return e.cause }

func loadError(name string, err error) error {
	if err == nil {
		return nil
	}
	return &DictionaryLoadError{Name: name, cause: err}
}
