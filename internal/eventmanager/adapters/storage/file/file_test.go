package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/internal/eventmanager/adapters/storage/file"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := file.New(t.TempDir())
	require.NoError(t, err)

	payload := []byte(`[{"id":"evt-1","name":"Conference"}]`)

	require.NoError(t, store.Save(ctx, "event_manager_events", payload))

	loaded, err := store.Load(ctx, "event_manager_events")
	require.NoError(t, err)
	assert.Equal(t, payload, loaded, "save followed by load must return the value unchanged")
}

func TestStoreLoadMissingKey(t *testing.T) {
	ctx := context.Background()
	store, err := file.New(t.TempDir())
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "never_written")
	require.NoError(t, err, "missing key must not be an error")
	assert.Nil(t, loaded)
}

func TestStoreSaveOverwritesWholeValue(t *testing.T) {
	ctx := context.Background()
	store, err := file.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "k", []byte(`{"version":1,"padding":"xxxxxxxxxxxxxxxx"}`)))
	require.NoError(t, store.Save(ctx, "k", []byte(`{"version":2}`)))

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":2}`, string(loaded), "no remnants of the previous value may survive")
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := file.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "session", []byte(`{"id":"u1"}`)))
	require.NoError(t, store.Delete(ctx, "session"))

	loaded, err := store.Load(ctx, "session")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.Delete(ctx, "session"), "deleting an absent key is a no-op")
}

func TestStoreSanitizesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := file.New(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "../escape", []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "value must stay inside the state directory")
	assert.Equal(t, ".._escape.json", entries[0].Name())

	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
