package stores

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/colonyops/marquee/internal/data/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing key wraps ErrNoRows", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		var dest string
		err = store.Get(ctx, "missing", &dest)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("set and get round-trip", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		type rowState struct {
			Offset   int    `json:"offset"`
			Selected string `json:"selected"`
		}

		require.NoError(t, store.Set(ctx, "row:trending", rowState{Offset: 360, Selected: "midnight-freight"}))

		var got rowState
		require.NoError(t, store.Get(ctx, "row:trending", &got))
		assert.Equal(t, 360, got.Offset)
		assert.Equal(t, "midnight-freight", got.Selected)
	})

	t.Run("set overwrites existing value", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		require.NoError(t, store.Set(ctx, "k", 1))
		require.NoError(t, store.Set(ctx, "k", 2))

		var got int
		require.NoError(t, store.Get(ctx, "k", &got))
		assert.Equal(t, 2, got)
	})

	t.Run("expired entry is treated as missing", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		require.NoError(t, store.SetTTL(ctx, "temp", "gone", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		var dest string
		err = store.Get(ctx, "temp", &dest)
		assert.ErrorIs(t, err, sql.ErrNoRows)

		has, err := store.Has(ctx, "temp")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("list keys excludes expired", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		require.NoError(t, store.Set(ctx, "keep", 1))
		require.NoError(t, store.SetTTL(ctx, "drop", 2, time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		keys, err := store.ListKeys(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"keep"}, keys)
	})

	t.Run("get raw returns metadata", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		before := time.Now()
		require.NoError(t, store.SetTTL(ctx, "meta", "v", time.Hour))

		entry, err := store.GetRaw(ctx, "meta")
		require.NoError(t, err)
		assert.Equal(t, "meta", entry.Key)
		assert.JSONEq(t, `"v"`, string(entry.Value))
		assert.False(t, entry.CreatedAt.Before(before.Add(-time.Second)))
		require.NotNil(t, entry.ExpiresAt)
		assert.True(t, entry.ExpiresAt.After(time.Now()))
	})

	t.Run("get raw without ttl has nil expiry", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		require.NoError(t, store.Set(ctx, "forever", "v"))

		entry, err := store.GetRaw(ctx, "forever")
		require.NoError(t, err)
		assert.Nil(t, entry.ExpiresAt)
	})

	t.Run("delete", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		require.NoError(t, store.Set(ctx, "k", "v"))
		require.NoError(t, store.Delete(ctx, "k"))

		has, err := store.Has(ctx, "k")
		require.NoError(t, err)
		assert.False(t, has)

		// deleting again is a no-op
		require.NoError(t, store.Delete(ctx, "k"))
	})

	t.Run("sweep expired", func(t *testing.T) {
		database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
		require.NoError(t, err)
		defer func() { _ = database.Close() }()

		store := NewKVStore(database)

		require.NoError(t, store.Set(ctx, "keep", 1))
		require.NoError(t, store.SetTTL(ctx, "drop-a", 2, time.Millisecond))
		require.NoError(t, store.SetTTL(ctx, "drop-b", 3, time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		require.NoError(t, store.SweepExpired(ctx))

		// rows are physically gone, not just filtered
		var count int
		err = database.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
