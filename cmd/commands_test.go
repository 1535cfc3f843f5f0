package main

import (
	"bytes"
	"database/sql"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"photo_album/pkg/config"
	"photo_album/pkg/people"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	return config.Config{
		DataDir:         t.TempDir(),
		SettingsBackend: backend,
		SettingsKey:     "people",
		JPEGQuality:     80,
		MaxPixels:       1_000_000,
		LogLevel:        "error",
	}
}

func writePhoto(t *testing.T, dir string, shade uint8) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: shade, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// run executes one launch of the CLI and returns stdout and stderr.
func run(t *testing.T, cfg config.Config, stdin []byte, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd(cfg)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(bytes.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestCLIAlbumAcrossLaunches(t *testing.T) {
	for _, backend := range []string{config.BackendBolt, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			photo := writePhoto(t, t.TempDir(), 90)

			out, _, err := run(t, cfg, nil, "add", photo, "--source", "camera")
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(out, "0\t\"Unknown\"\t"), out)

			raw, err := os.ReadFile(photo)
			require.NoError(t, err)
			out, _, err = run(t, cfg, raw, "add")
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(out, "1\t\"Unknown\"\t"), out)

			_, _, err = run(t, cfg, nil, "rename", "0", "Alice", "Smith")
			require.NoError(t, err)

			out, _, err = run(t, cfg, nil, "list")
			require.NoError(t, err)
			list := lines(out)
			require.Len(t, list, 2)
			require.True(t, strings.HasPrefix(list[0], "0\t\"Alice Smith\"\t"), list[0])
			require.True(t, strings.HasPrefix(list[1], "1\t\"Unknown\"\t"), list[1])
			secondRef := strings.Split(list[1], "\t")[2]

			jpegPath := filepath.Join(t.TempDir(), "out.jpg")
			_, _, err = run(t, cfg, nil, "show", "1", "-o", jpegPath)
			require.NoError(t, err)
			shown, err := os.ReadFile(jpegPath)
			require.NoError(t, err)
			_, format, err := image.DecodeConfig(bytes.NewReader(shown))
			require.NoError(t, err)
			require.Equal(t, "jpeg", format)

			_, _, err = run(t, cfg, nil, "remove", "0")
			require.NoError(t, err)

			out, _, err = run(t, cfg, nil, "list")
			require.NoError(t, err)
			require.Equal(t, []string{"0\t\"Unknown\"\t" + secondRef}, lines(out))

			entries, err := os.ReadDir(cfg.ImagesDir())
			require.NoError(t, err)
			require.Len(t, entries, 1)
			require.Equal(t, secondRef, entries[0].Name())
		})
	}
}

func TestCLIErrors(t *testing.T) {
	cfg := testConfig(t, config.BackendBolt)

	_, _, err := run(t, cfg, nil, "rename", "0", "Nobody")
	require.ErrorContains(t, err, "index out of range")

	_, _, err = run(t, cfg, nil, "remove", "x")
	require.ErrorContains(t, err, "invalid index")

	_, _, err = run(t, cfg, []byte("not a photo"), "add")
	require.ErrorContains(t, err, "invalid image")

	_, _, err = run(t, cfg, nil, "add", "--source", "scanner", "-")
	require.ErrorContains(t, err, "unknown source")

	out, _, err := run(t, cfg, nil, "list")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCLIMetricsFlag(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	photo := writePhoto(t, t.TempDir(), 10)

	_, errOut, err := run(t, cfg, nil, "--metrics", "add", photo)
	require.NoError(t, err)
	require.Contains(t, errOut, "people_added_total 1")
	require.Contains(t, errOut, "commands_total{command=add,status=ok} 1")
}

func TestCLIRecoversFromCorruptSlot(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	photo := writePhoto(t, t.TempDir(), 10)

	_, _, err := run(t, cfg, nil, "add", photo)
	require.NoError(t, err)

	a, err := openApp(t.Context(), cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 1, a.store.Len())
	require.NoError(t, a.Close())

	corruptSlot(t, cfg)

	out, _, err := run(t, cfg, nil, "list")
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCLIDashedArguments(t *testing.T) {
	cfg := testConfig(t, config.BackendBolt)
	photo := writePhoto(t, t.TempDir(), 20)

	_, _, err := run(t, cfg, nil, "add", photo)
	require.NoError(t, err)

	_, _, err = run(t, cfg, nil, "rename", "0", "-x", "--y")
	require.NoError(t, err)

	_, _, err = run(t, cfg, nil, "remove", "--", "-1")
	require.ErrorIs(t, err, people.ErrIndexOutOfRange)

	_, _, err = run(t, cfg, nil, "rename", "--", "-1", "Nobody")
	require.ErrorIs(t, err, people.ErrIndexOutOfRange)

	out, _, err := run(t, cfg, nil, "list")
	require.NoError(t, err)
	list := lines(out)
	require.Len(t, list, 1)
	require.True(t, strings.HasPrefix(list[0], "0\t\"-x --y\"\t"), list[0])
}

func TestCLIListQuotesControlCharacters(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	photo := writePhoto(t, t.TempDir(), 30)

	a, err := openApp(t.Context(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	raw, err := os.ReadFile(photo)
	require.NoError(t, err)
	_, _, err = a.store.Add(t.Context(), raw)
	require.NoError(t, err)
	require.NoError(t, a.store.Rename(t.Context(), 0, "tab\there\nnext line"))

	var out bytes.Buffer
	for i, p := range a.store.List() {
		require.NoError(t, printPerson(&out, i, p))
	}
	got := lines(out.String())
	require.Len(t, got, 1)
	fields := strings.Split(got[0], "\t")
	require.Len(t, fields, 3)
	require.Equal(t, `"tab\there\nnext line"`, fields[1])

	name, err := strconv.Unquote(fields[1])
	require.NoError(t, err)
	require.Equal(t, "tab\there\nnext line", name)
}

func TestCLIRefusesToOverwriteUnreadableSlot(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	photo := writePhoto(t, t.TempDir(), 40)

	// A settings table without a value column: opening works, reading fails.
	db, err := sql.Open("sqlite", cfg.SettingsPath())
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE settings (key TEXT PRIMARY KEY, payload BLOB)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO settings (key, payload) VALUES ('people', 'keep me')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = run(t, cfg, nil, "add", photo)
	require.ErrorContains(t, err, "load album")

	_, _, err = run(t, cfg, nil, "list")
	require.ErrorContains(t, err, "load album")

	db, err = sql.Open("sqlite", cfg.SettingsPath())
	require.NoError(t, err)
	defer db.Close()
	var payload string
	require.NoError(t, db.QueryRow(`SELECT payload FROM settings WHERE key = 'people'`).Scan(&payload))
	require.Equal(t, "keep me", payload)

	entries, err := os.ReadDir(cfg.ImagesDir())
	require.NoError(t, err)
	require.Empty(t, entries)
}
