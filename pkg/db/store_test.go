package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "shifttrack_auth_user", []byte(`{"id":"1"}`)))
	got, err := store.Get(ctx, "shifttrack_auth_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(got))

	require.NoError(t, store.Set(ctx, "shifttrack_auth_user", []byte(`{"id":"2"}`)))
	got, err = store.Get(ctx, "shifttrack_auth_user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2"}`, string(got))

	require.NoError(t, store.Delete(ctx, "shifttrack_auth_user"))
	_, err = store.Get(ctx, "shifttrack_auth_user")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	require.NoError(t, store.Delete(ctx, "shifttrack_auth_user"))
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte("v")))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))

	info, err := os.Stat(filepath.Join(dir, "k.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(storeFilePerms), info.Mode().Perm())
}

func TestFileStore_SanitisesKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(context.Background(), "../escape", []byte("x")))

	_, err = os.Stat(filepath.Join(dir, ".._escape.json"))
	assert.NoError(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()

	exerciseStore(t, store)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}
