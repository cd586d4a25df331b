// Package cli holds helpers shared by the command line tools.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/henkan"
	"github.com/hupe1980/henkan/blobstore"
	miniostore "github.com/hupe1980/henkan/blobstore/minio"
	s3store "github.com/hupe1980/henkan/blobstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrUnsupportedScheme is returned for store locations with an unknown scheme.
var ErrUnsupportedScheme = errors.New("unsupported store scheme")

// WritableStore is a store the build tool can publish to.
type WritableStore interface {
	blobstore.Store
	blobstore.Writer
}

// Location is a parsed store location.
type Location struct {
	Scheme string // "file", "s3", "minio" or "mem"
	// Path is the local directory for "file".
	Path string
	// Endpoint is the host:port of a MinIO server or a custom S3 endpoint.
	Endpoint string
	Bucket   string
	Prefix   string
	// Secure selects TLS for MinIO.
	Secure bool
	Region string
}

// ParseLocation parses
//
//	./dir, /abs/dir, file:///abs/dir
//	s3://bucket/prefix?region=eu-central-1&endpoint=http://localhost:4566
//	minio://host:9000/bucket/prefix?secure=false
//	mem://
func ParseLocation(raw string) (Location, error) {
	if !strings.Contains(raw, "://") {
		return Location{Scheme: "file", Path: raw}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse store location: %w", err)
	}

	loc := Location{Scheme: u.Scheme}
	q := u.Query()
	switch u.Scheme {
	case "file":
		loc.Path = u.Path
	case "mem":
	case "s3":
		loc.Bucket = u.Host
		loc.Prefix = strings.TrimPrefix(u.Path, "/")
		loc.Region = q.Get("region")
		loc.Endpoint = q.Get("endpoint")
	case "minio":
		loc.Endpoint = u.Host
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		loc.Bucket = bucket
		loc.Prefix = prefix
		loc.Secure = true
		if s := q.Get("secure"); s != "" {
			if loc.Secure, err = strconv.ParseBool(s); err != nil {
				return Location{}, fmt.Errorf("parse store location: secure: %w", err)
			}
		}
	default:
		return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	if (loc.Scheme == "s3" || loc.Scheme == "minio") && loc.Bucket == "" {
		return Location{}, fmt.Errorf("parse store location: %q has no bucket", raw)
	}
	return loc, nil
}

// OpenStore connects to the store at raw. MinIO credentials are read from
// MINIO_ACCESS_KEY and MINIO_SECRET_KEY; S3 uses the default AWS chain.
func OpenStore(ctx context.Context, raw string) (WritableStore, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}
	switch loc.Scheme {
	case "file":
		if err := os.MkdirAll(loc.Path, 0o755); err != nil {
			return nil, err
		}
		return blobstore.NewLocalStore(loc.Path), nil
	case "mem":
		return blobstore.NewMemoryStore(), nil
	case "s3":
		opts := []s3store.Option{s3store.WithPrefix(loc.Prefix)}
		if loc.Region != "" {
			opts = append(opts, s3store.WithRegion(loc.Region))
		}
		if loc.Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(loc.Endpoint))
		}
		return s3store.New(ctx, loc.Bucket, opts...)
	default: // minio
		client, err := minio.New(loc.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: loc.Secure,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, loc.Bucket, loc.Prefix), nil
	}
}

// NewLogger returns a text logger for level names such as "debug" or "warn".
func NewLogger(level string) (*henkan.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return henkan.NewTextLogger(l), nil
}
