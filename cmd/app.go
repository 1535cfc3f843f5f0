package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"photo_album/pkg/config"
	"photo_album/pkg/metrics"
	"photo_album/pkg/people"
	"photo_album/pkg/repository/image"
	"photo_album/pkg/repository/settings"
)

// app is one launch of the album: a loaded store and what it holds open.
type app struct {
	store   *people.Store
	closers []func() error
}

func openApp(ctx context.Context, cfg config.Config, reg *metrics.Registry) (*app, error) {
	a := &app{}

	var (
		slot   settings.Settings
		images image.ImageRepository
	)
	switch cfg.SettingsBackend {
	case config.BackendMemory:
		slot = settings.NewMemorySettings()
		images = image.NewMemoryRepository(reg)
	default:
		files, err := image.NewFileRepository(cfg.ImagesDir(), reg)
		if err != nil {
			return nil, err
		}
		images = files

		if cfg.SettingsBackend == config.BackendSQLite {
			db, err := settings.OpenSQLite(cfg.SettingsPath())
			if err != nil {
				return nil, err
			}
			a.closers = append(a.closers, db.Close)
			slot = db
		} else {
			db, err := settings.OpenBolt(cfg.SettingsPath())
			if err != nil {
				return nil, err
			}
			a.closers = append(a.closers, db.Close)
			slot = db
		}
	}

	a.store = people.NewStore(slot, images, people.Options{
		Key:       cfg.SettingsKey,
		Quality:   cfg.JPEGQuality,
		MaxPixels: cfg.MaxPixels,
		Metrics:   reg,
	})
	if err := a.store.Load(ctx); err != nil {
		if !errors.Is(err, people.ErrDecode) {
			// The slot may still hold a good album; saving over it would lose it.
			_ = a.Close()
			return nil, fmt.Errorf("load album: %w", err)
		}
		// Malformed: start empty, the next save overwrites the slot.
		log.Ctx(ctx).Warn().Err(err).Msg("starting with an empty album")
	}
	return a, nil
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close album: %w", err)
	}
	return nil
}
