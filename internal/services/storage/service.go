package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phambaophuc/image-delivery/internal/config"
)

// ErrNotFound is returned when the requested key does not exist in the bucket.
var ErrNotFound = errors.New("object not found")

// Object is a single entry of a listing.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type ListInput struct {
	Prefix  string
	MaxKeys int
	Cursor  string
}

// ListPage is one page of a listing. NextCursor is empty when the listing is
// complete.
type ListPage struct {
	Objects    []Object
	NextCursor string
}

// ObjectStore is the bucket holding the original uploads.
type ObjectStore interface {
	Bucket() string
	// ObjectURL returns the canonical (non-CDN) URL of key.
	ObjectURL(key string) string
	GetObject(ctx context.Context, key string) ([]byte, error)
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	ListObjects(ctx context.Context, in ListInput) (*ListPage, error)
	ObjectTags(ctx context.Context, key string) (map[string]string, error)
	DeleteObject(ctx context.Context, key string) error
	HealthCheck(ctx context.Context) error
}

// NewObjectStore builds the store selected by cfg.Storage.Backend.
func NewObjectStore(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendS3:
		return NewS3Store(ctx, cfg.Storage)
	case config.BackendSupabase:
		return NewSupabaseStore(cfg.Supabase, cfg.Storage.Bucket), nil
	case config.BackendMinIO:
		return NewMinIOStore(cfg.MinIO, cfg.Storage.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
