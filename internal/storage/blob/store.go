package blob

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/cloudshop-etl/internal/config"
)

var tracer = otel.Tracer("internal/storage/blob")

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("object not found")

type Object struct {
	Key         string
	Body        []byte
	ContentType string
}

// Store is a bucket of objects addressed by key. Put replaces any existing
// object under the same key in a single atomic write.
type Store interface {
	Put(ctx context.Context, obj Object) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Location returns a human readable address of key, e.g. s3://bucket/key.
	Location(key string) string
}

// NewStore creates the store selected by cfg.Backend.
func NewStore(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendS3:
		return NewS3Store(ctx, cfg)
	case config.StorageBackendFS:
		return NewFilesystemStore(cfg.BaseDir, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
