package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/config"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

const testKey = config.DefaultStorageKey

func sampleStore() model.Store {
	end := time.UnixMilli(1_700_003_661_000)
	return model.Store{
		"alice": {Sessions: []model.Session{
			{Start: time.UnixMilli(1_700_000_000_000), End: &end, Note: "standup"},
			{Start: time.UnixMilli(1_700_010_000_000)},
		}},
		"Bob \"the builder\"": {Sessions: []model.Session{
			{Start: time.UnixMilli(1_600_000_000_000), End: &end},
		}},
	}
}

// backends returns one of each backend, rooted in a fresh temp dir.
func backends(t *testing.T) map[string]Backend {
	t.Helper()
	dir := t.TempDir()
	sq, err := OpenSQLite(filepath.Join(dir, "sessions.db"), testKey, nil)
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Backend{
		"file":   NewFileBackend(filepath.Join(dir, "sessions.json"), testKey, nil),
		"sqlite": sq,
	}
}

func TestBackend_LoadMissingIsEmpty(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st := b.Load(context.Background())
			require.NotNil(t, st)
			assert.Empty(t, st)
		})
	}
}

func TestBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_ = b.Load(ctx)
			want := sampleStore()
			require.NoError(t, b.Save(ctx, want))
			assert.Equal(t, want, b.Load(ctx))

			// Saving again overwrites, it does not merge
			require.NoError(t, b.Save(ctx, model.Store{}))
			assert.Empty(t, b.Load(ctx))
		})
	}
}

func TestFileBackend_CorruptFileResetsToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("this is not json"), 0644))

	b := NewFileBackend(path, testKey, nil)
	assert.Empty(t, b.Load(context.Background()))
}

func TestFileBackend_CorruptValueResetsToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	content := `{"timeclock.sessions.v1": "{not json", "other": {"keep": true}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	b := NewFileBackend(path, testKey, nil)
	ctx := context.Background()
	assert.Empty(t, b.Load(ctx))

	// Saving replaces only our key
	require.NoError(t, b.Save(ctx, sampleStore()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"other"`)
	assert.Equal(t, sampleStore(), b.Load(ctx))
}

func TestFileBackend_PersistedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	b := NewFileBackend(path, testKey, nil)
	end := time.UnixMilli(2000)
	st := model.Store{"alice": {Sessions: []model.Session{{Start: time.UnixMilli(1000), End: &end}}}}
	require.NoError(t, b.Save(context.Background(), st))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"timeclock.sessions.v1": {"alice": {"sessions": [{"start": 1000, "end": 2000}]}}}`, string(data))
}

func TestSQLiteBackend_CorruptValueResetsToEmpty(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "sessions.db"), testKey, nil)
	require.NoError(t, err)
	defer b.Close()

	_, err = b.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, testKey, "definitely not json")
	require.NoError(t, err)
	assert.Empty(t, b.Load(context.Background()))
}

func TestSQLiteBackend_EndBeforeStartIsCorruption(t *testing.T) {
	b, err := OpenSQLite(":memory:", testKey, nil)
	require.NoError(t, err)
	defer b.Close()

	_, err = b.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, testKey, `{"alice":{"sessions":[{"start":10,"end":5}]}}`)
	require.NoError(t, err)
	assert.Empty(t, b.Load(context.Background()))
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(config.StorageConfig{Backend: config.BackendFile, Path: filepath.Join(dir, "s.json"), Key: testKey}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)

	b, err = Open(config.StorageConfig{Backend: config.BackendSQLite, Path: filepath.Join(dir, "s.db"), Key: testKey}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteBackend{}, b)
	require.NoError(t, b.Close())

	_, err = Open(config.StorageConfig{Backend: "redis"}, nil)
	assert.Error(t, err)
}
