package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where employee documents live. Two backends
// exist: local disk for development and S3-compatible object storage
// for deployments.
type FileStorage interface {
	// Upload writes the content under key and returns the stored key.
	Upload(ctx context.Context, content io.Reader, key string, contentType string) (string, error)

	// Download opens the stored object. The caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns a URL for the object, presigned with the given
	// lifetime where the backend supports it.
	GetURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
