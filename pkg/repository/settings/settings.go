// Package settings provides the key-value slot the album list is persisted in.
package settings

import (
	"context"
	"fmt"
	"strings"
)

// Settings is a process-wide key-value store holding opaque byte values.
type Settings interface {
	// Get returns the value under key. The boolean is false when the key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("settings key is required")
	}
	return nil
}
