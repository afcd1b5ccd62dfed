package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shifttrack/pkg/db"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "001_session_kv.sql", entries[0].Name())
}

func TestDB_Integration(t *testing.T) {
	dsn := os.Getenv("SHIFTTRACK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SHIFTTRACK_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	database, err := NewDB(ctx, dsn, "test")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.RunMigrations(ctx))
	// a second run finds nothing pending
	require.NoError(t, database.RunMigrations(ctx))

	var _ db.KeyValueStore = database
	key := "shifttrack_auth_user"
	defer database.Delete(ctx, key)

	_, err = database.Get(ctx, key)
	assert.ErrorIs(t, err, db.ErrNotFound)

	require.NoError(t, database.Set(ctx, key, []byte(`{"id":"1"}`)))
	require.NoError(t, database.Set(ctx, key, []byte(`{"id":"2"}`)))

	got, err := database.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2"}`, string(got))

	require.NoError(t, database.Delete(ctx, key))
	_, err = database.Get(ctx, key)
	assert.ErrorIs(t, err, db.ErrNotFound)
}
