package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Settings backends.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// Root of everything the album writes: images/ and the settings file.
	DataDir string `env:"ALBUM_DATA_DIR" envDefault:"./data"`
	// One of bolt, sqlite, memory.
	SettingsBackend string `env:"ALBUM_SETTINGS_BACKEND" envDefault:"bolt"`
	// Settings slot holding the serialized album.
	SettingsKey string `env:"ALBUM_SETTINGS_KEY" envDefault:"people"`
	// JPEG quality for stored photos, 1..100.
	JPEGQuality int `env:"ALBUM_JPEG_QUALITY" envDefault:"80"`
	// Largest accepted photo, in pixels. Bigger captures are refused before decoding.
	MaxPixels int    `env:"ALBUM_MAX_PIXELS" envDefault:"40000000"`
	LogLevel  string `env:"ALBUM_LOG_LEVEL" envDefault:"info"`
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.SettingsBackend {
	case BackendBolt, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown settings backend %q", c.SettingsBackend)
	}
	if c.SettingsKey == "" {
		return fmt.Errorf("settings key is required")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d out of range 1..100", c.JPEGQuality)
	}
	if c.MaxPixels < 1 {
		return fmt.Errorf("max pixels must be positive, got %d", c.MaxPixels)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	return nil
}

// ImagesDir is where photo blobs are written.
func (c Config) ImagesDir() string {
	return filepath.Join(c.DataDir, "images")
}

// SettingsPath is the database file for the configured backend.
func (c Config) SettingsPath() string {
	switch c.SettingsBackend {
	case BackendSQLite:
		return filepath.Join(c.DataDir, "settings.sqlite")
	default:
		return filepath.Join(c.DataDir, "settings.db")
	}
}
