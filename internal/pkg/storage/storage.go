package storage

import (
	"context"
	"io"
)

// Storage abstracts the object store holding raw footage, edited clips
// and cover images. Backed by S3/MinIO in production, local disk in dev.
type Storage interface {
	// Put stores an object under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves an object by key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for a stored object.
	GetURL(key string) string
}

// Config holds backend connection settings
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	LocalPath    string
	LocalBaseURL string
}
