package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"photo_album/pkg/config"
	"photo_album/pkg/repository/settings"
)

func corruptSlot(t *testing.T, cfg config.Config) {
	t.Helper()
	db, err := settings.OpenSQLite(cfg.SettingsPath())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Set(t.Context(), cfg.SettingsKey, []byte("\x00garbage")))
}

func TestOpenAppBackends(t *testing.T) {
	for _, backend := range []string{config.BackendBolt, config.BackendSQLite, config.BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			a, err := openApp(t.Context(), testConfig(t, backend), nil)
			require.NoError(t, err)
			require.Zero(t, a.store.Len())
			require.NoError(t, a.Close())
		})
	}
}
