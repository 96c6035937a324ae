// Package storage reads and addresses uploaded files: profile pictures,
// certificate documents and sport images.
package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrUnsupported = errors.New("operation not supported by this store")
	ErrInvalidKey  = errors.New("invalid object key")
)

type Store interface {
	// URL is where a client can fetch the object.
	URL(ctx context.Context, key string) (string, error)
	// UploadURL is a short-lived URL a client can PUT the object to.
	UploadURL(ctx context.Context, key string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
