package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shifttrack/pkg/db"
)

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer store.Close()

	var _ db.KeyValueStore = store

	_, err = store.Get(ctx, "shifttrack_active_session_v1")
	assert.ErrorIs(t, err, db.ErrNotFound)

	require.NoError(t, store.Set(ctx, "shifttrack_active_session_v1", []byte(`{"displayTime":"09:00:00"}`)))
	require.NoError(t, store.Set(ctx, "shifttrack_active_session_v1", []byte(`{"displayTime":"10:00:00"}`)))

	got, err := store.Get(ctx, "shifttrack_active_session_v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"displayTime":"10:00:00"}`, string(got))

	require.NoError(t, store.Delete(ctx, "shifttrack_active_session_v1"))
	_, err = store.Get(ctx, "shifttrack_active_session_v1")
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestOpen_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
