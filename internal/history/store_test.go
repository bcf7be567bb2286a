package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/cliparse/foundation/core/error"
)

func createTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(context.Background(), Config{
		Path:        filepath.Join(t.TempDir(), "nested", "history.db"),
		BusyTimeout: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// stores runs f against every Store implementation
func stores(t *testing.T, f func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) { f(t, createTestSQLiteStore(t)) })
	t.Run("memory", func(t *testing.T) { f(t, NewMemoryStore()) })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "./data/history.db", cfg.Path)
	assert.Equal(t, 5*time.Second, cfg.BusyTimeout)
}

func TestStore_AddAndGet(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		entry := &Entry{Input: "a,b", OK: true, TokenCount: 3}
		require.NoError(t, s.Add(ctx, entry))

		_, err := uuid.Parse(entry.ID)
		require.NoError(t, err, "ID should be a UUID")
		assert.False(t, entry.CreatedAt.IsZero())

		got, err := s.Get(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "a,b", got.Input)
		assert.True(t, got.OK)
		assert.Equal(t, 3, got.TokenCount)
		assert.Empty(t, got.Error)
		assert.WithinDuration(t, entry.CreatedAt, got.CreatedAt, time.Second)
	})
}

func TestStore_FailedEntry(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		entry := &Entry{ID: "fixed-id", Input: `"abc`, Error: "UnterminatedQuote at position 4"}
		require.NoError(t, s.Add(ctx, entry))

		got, err := s.Get(ctx, "fixed-id")
		require.NoError(t, err)
		assert.False(t, got.OK)
		assert.Equal(t, "UnterminatedQuote at position 4", got.Error)
	})
}

func TestStore_GetNotFound(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		_, err := s.Get(context.Background(), "missing")
		require.Error(t, err)
		assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))
	})
}

func TestStore_Recent(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for i := 0; i < 5; i++ {
			require.NoError(t, s.Add(ctx, &Entry{Input: fmt.Sprintf("v%d", i), OK: true}))
		}

		recent, err := s.Recent(ctx, 3)
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "v4", recent[0].Input)
		assert.Equal(t, "v3", recent[1].Input)
		assert.Equal(t, "v2", recent[2].Input)

		all, err := s.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, 5)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})
}

func TestStore_Prune(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for i := 0; i < 5; i++ {
			require.NoError(t, s.Add(ctx, &Entry{Input: fmt.Sprintf("v%d", i)}))
		}

		deleted, err := s.Prune(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)

		recent, err := s.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "v4", recent[0].Input)
		assert.Equal(t, "v3", recent[1].Input)

		deleted, err = s.Prune(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), deleted)
	})
}

func TestStore_Clear(t *testing.T) {
	stores(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, s.Add(ctx, &Entry{Input: "a"}))
		require.NoError(t, s.Add(ctx, &Entry{Input: "b"}))

		deleted, err := s.Clear(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s1, err := Open(ctx, Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, s1.Add(ctx, &Entry{Input: "persisted", OK: true}))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, Config{Path: path})
	require.NoError(t, err)
	defer s2.Close()

	recent, err := s2.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "persisted", recent[0].Input)
}
