// Package people holds the album's record store: the ordered list of
// person records, kept in sync with a settings slot and an image repository.
//
// Every mutation goes through the Store and is resolved by index against
// the current list. Callers only ever receive copies.
package people

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"photo_album/pkg/imaging"
	"photo_album/pkg/metrics"
	"photo_album/pkg/models"
	"photo_album/pkg/repository/image"
	"photo_album/pkg/repository/settings"
)

// DefaultKey is the settings slot the album is persisted under.
const DefaultKey = "people"

var (
	ErrDecode          = errors.New("decode people")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrBlobWrite       = errors.New("write image blob")
	ErrInvalidImage    = errors.New("invalid image")
	ErrBlobNotFound    = image.ErrNotFound
)

// Options tune a Store. Zero values fall back to defaults.
type Options struct {
	Key     string
	Quality int
	// MaxPixels caps width*height of an accepted capture.
	MaxPixels int
	Metrics   *metrics.Registry
}

// Store owns the album list.
type Store struct {
	mu       sync.Mutex
	people   models.People
	settings settings.Settings
	images   image.ImageRepository
	key      string
	quality  int
	maxPix   int
	reg      *metrics.Registry
	newRef   func() string
}

// NewStore returns an empty store. Call Load to read the persisted list.
func NewStore(s settings.Settings, images image.ImageRepository, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Quality == 0 {
		opts.Quality = imaging.DefaultQuality
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = imaging.DefaultMaxPixels
	}
	return &Store{
		people:   models.People{},
		settings: s,
		images:   images,
		key:      opts.Key,
		quality:  opts.Quality,
		maxPix:   opts.MaxPixels,
		reg:      opts.Metrics,
		newRef:   uuid.NewString,
	}
}

// Load replaces the in-memory list with the persisted one. An absent slot
// yields an empty list. An unreadable or malformed slot also yields an empty
// list; the returned error is informational and the store stays usable.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.people = models.People{}

	raw, ok, err := s.settings.Get(ctx, s.key)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", s.key).Msg("failed to read people")
		s.reg.Inc(ctx, "people_load_failures_total", metrics.Labels{"reason": "read"}, 1)
		return fmt.Errorf("read %q: %w", s.key, err)
	}
	if !ok {
		log.Ctx(ctx).Debug().Str("key", s.key).Msg("no saved people")
		return nil
	}

	loaded, err := models.DecodePeople(raw)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", s.key).Int("bytes", len(raw)).Msg("failed to load people")
		s.reg.Inc(ctx, "people_load_failures_total", metrics.Labels{"reason": "decode"}, 1)
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	s.people = loaded

	log.Ctx(ctx).Debug().Int("count", len(loaded)).Msg("people loaded")
	return nil
}

// List returns a copy of the current list.
func (s *Store) List() []models.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.people.Clone()
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.people)
}

// Get returns the record at index.
func (s *Store) Get(index int) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return models.Person{}, err
	}
	return s.people[index], nil
}

// Image returns the stored photo of the record at index.
func (s *Store) Image(ctx context.Context, index int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return nil, err
	}
	return s.images.Get(ctx, s.people[index].Image)
}

// Add re-encodes captured as JPEG, stores it under a fresh reference and
// appends a record named models.DefaultName. Nothing is appended unless the
// blob was written.
func (s *Store) Add(ctx context.Context, captured []byte) (int, models.Person, error) {
	jpeg, err := imaging.Compress(captured, s.quality, s.maxPix)
	if err != nil {
		return -1, models.Person{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ref := s.newRef()
	for s.hasRef(ref) {
		ref = s.newRef()
	}

	if err := s.images.Save(ctx, ref, jpeg); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("image_id", ref).Msg("failed to save image")
		return -1, models.Person{}, fmt.Errorf("%w: %v", ErrBlobWrite, err)
	}

	person := models.Person{Name: models.DefaultName, Image: ref}
	s.people = append(s.people, person)
	index := len(s.people) - 1
	s.persist(ctx)

	log.Ctx(ctx).Info().Int("index", index).Str("image_id", ref).Int("bytes", len(jpeg)).Msg("person added")
	s.reg.Inc(ctx, "people_added_total", nil, 1)
	return index, person, nil
}

// Rename sets the name of the record at index. Any string is accepted.
func (s *Store) Rename(ctx context.Context, index int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return err
	}

	old := s.people[index].Name
	s.people[index].Name = name
	s.persist(ctx)

	log.Ctx(ctx).Info().Int("index", index).Str("from", old).Str("to", name).Msg("person renamed")
	s.reg.Inc(ctx, "people_renamed_total", nil, 1)
	return nil
}

// Remove deletes the record at index and its image. Later records shift down.
// If the image cannot be deleted the record is still removed and the blob is
// left orphaned.
func (s *Store) Remove(ctx context.Context, index int) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return models.Person{}, err
	}

	person := s.people[index]
	s.people = append(s.people[:index], s.people[index+1:]...)

	if err := s.images.Delete(ctx, person.Image); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("image_id", person.Image).Msg("orphaned image blob")
		s.reg.Inc(ctx, "images_orphaned_total", nil, 1)
	}
	s.persist(ctx)

	log.Ctx(ctx).Info().Int("index", index).Str("image_id", person.Image).Msg("person removed")
	s.reg.Inc(ctx, "people_removed_total", nil, 1)
	return person, nil
}

// persist writes the whole list to the settings slot. Failures are logged;
// memory stays authoritative. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	data, err := models.EncodePeople(s.people)
	if err == nil {
		err = s.settings.Set(ctx, s.key, data)
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("key", s.key).Int("count", len(s.people)).Msg("persist people failed")
		s.reg.Inc(ctx, "people_persist_failures_total", nil, 1)
	}
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.people) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(s.people))
	}
	return nil
}

func (s *Store) hasRef(ref string) bool {
	for _, p := range s.people {
		if p.Image == ref {
			return true
		}
	}
	return false
}
