package image

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"photo_album/pkg/metrics"
)

// MemoryRepository is an in-memory ImageRepository implementation.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
	reg  *metrics.Registry
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository(reg *metrics.Registry) *MemoryRepository {
	return &MemoryRepository{data: make(map[string][]byte), reg: reg}
}

// Save stores a copy of b under ref.
func (r *MemoryRepository) Save(ctx context.Context, ref string, b []byte) error {
	if err := validateRef(ref); err != nil {
		return err
	}
	if len(b) == 0 {
		return errors.New("empty image data")
	}

	// Make a copy of the data to avoid external modifications.
	copyBuf := make([]byte, len(b))
	copy(copyBuf, b)

	r.mu.Lock()
	r.data[ref] = copyBuf
	r.mu.Unlock()

	log.Ctx(ctx).Debug().Str("image_id", ref).Int("bytes", len(copyBuf)).Msg("image saved to memory")
	r.reg.Inc(ctx, "images_saved_total", nil, 1)
	r.reg.Inc(ctx, "images_bytes_stored_total", nil, int64(len(copyBuf)))
	return nil
}

// Get returns a copy of stored data by ref.
func (r *MemoryRepository) Get(ctx context.Context, ref string) ([]byte, error) {
	r.mu.RLock()
	b, ok := r.data[ref]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Delete removes the entry from memory.
func (r *MemoryRepository) Delete(ctx context.Context, ref string) error {
	r.mu.Lock()
	b, ok := r.data[ref]
	if ok {
		delete(r.data, ref)
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}

	log.Ctx(ctx).Debug().Str("image_id", ref).Int("bytes", len(b)).Msg("image memory freed")
	r.reg.Inc(ctx, "images_deleted_total", nil, 1)
	r.reg.Inc(ctx, "images_bytes_deleted_total", nil, int64(len(b)))
	return nil
}

// Len reports how many images are held.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
