// Package storage archives the raw spreadsheets behind each upload.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/studyscope/studyscope-backend/internal/config"
)

var (
	ErrNotFound   = errors.New("stored file not found")
	ErrInvalidKey = errors.New("invalid storage key")
)

// Storage is a flat key/value store of archived files.
type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, data io.Reader) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// New returns the Storage selected by cfg.StorageDriver.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverLocal, "":
		return NewLocalStorage(cfg.UploadDir)
	case config.StorageDriverS3:
		return NewS3Storage(cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
