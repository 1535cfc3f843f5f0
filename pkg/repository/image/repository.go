package image

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no image is stored under a reference.
	ErrNotFound = errors.New("image not found")
	// ErrInvalidRef is returned for references that cannot name a blob.
	ErrInvalidRef = errors.New("invalid image reference")
)

// ImageRepository stores image blobs addressed by an opaque reference.
// The caller chooses the reference; Save overwrites an existing blob.
type ImageRepository interface {
	// Save stores a copy of data under ref.
	Save(ctx context.Context, ref string, data []byte) error
	// Get returns a copy of the image stored under ref.
	Get(ctx context.Context, ref string) ([]byte, error)
	// Delete removes the image. Deleting a missing ref returns ErrNotFound.
	Delete(ctx context.Context, ref string) error
}
