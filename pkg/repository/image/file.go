package image

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"photo_album/pkg/metrics"
)

// FileRepository keeps one file per image in a directory.
type FileRepository struct {
	dir string
	reg *metrics.Registry
}

// NewFileRepository creates dir if needed and returns a repository rooted there.
func NewFileRepository(dir string, reg *metrics.Registry) (*FileRepository, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("image directory is required")
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &FileRepository{dir: dir, reg: reg}, nil
}

// Dir returns the directory images are written to.
func (r *FileRepository) Dir() string { return r.dir }

// Save writes data to a temp file and renames it into place.
func (r *FileRepository) Save(ctx context.Context, ref string, data []byte) error {
	if err := validateRef(ref); err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("empty image data")
	}

	tmp, err := os.CreateTemp(r.dir, "."+ref+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp image: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write image %s: %w", ref, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close image %s: %w", ref, err)
	}
	if err := os.Rename(tmpName, r.path(ref)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename image %s: %w", ref, err)
	}

	log.Ctx(ctx).Debug().Str("image_id", ref).Int("bytes", len(data)).Msg("image saved to disk")
	r.reg.Inc(ctx, "images_saved_total", nil, 1)
	r.reg.Inc(ctx, "images_bytes_stored_total", nil, int64(len(data)))
	return nil
}

// Get reads the image stored under ref.
func (r *FileRepository) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(r.path(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", ref, err)
	}
	return b, nil
}

// Delete removes the image file.
func (r *FileRepository) Delete(ctx context.Context, ref string) error {
	if err := validateRef(ref); err != nil {
		return err
	}
	err := os.Remove(r.path(ref))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return fmt.Errorf("remove image %s: %w", ref, err)
	}

	log.Ctx(ctx).Debug().Str("image_id", ref).Msg("image removed from disk")
	r.reg.Inc(ctx, "images_deleted_total", nil, 1)
	return nil
}

func (r *FileRepository) path(ref string) string {
	return filepath.Join(r.dir, ref)
}

// validateRef accepts only single, non-hidden path elements.
func validateRef(ref string) error {
	if ref == "" || ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") || strings.ContainsAny(ref, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return nil
}
