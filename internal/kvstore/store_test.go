package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "carbonActivities")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "carbonActivities", `[{"id":"a"}]`))
	got, err := s.Get(ctx, "carbonActivities")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, got)

	require.NoError(t, s.Set(ctx, "carbonActivities", `[]`))
	got, err = s.Get(ctx, "carbonActivities")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)

	require.NoError(t, s.Remove(ctx, "carbonActivities"))
	_, err = s.Get(ctx, "carbonActivities")
	require.ErrorIs(t, err, ErrNotFound)

	// Removing again is a no-op.
	require.NoError(t, s.Remove(ctx, "carbonActivities"))

	_, err = s.Get(ctx, "")
	require.ErrorIs(t, err, ErrInvalidKey)
	require.ErrorIs(t, s.Set(ctx, "", "x"), ErrInvalidKey)
	require.ErrorIs(t, s.Remove(ctx, ""), ErrInvalidKey)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	exerciseStore(t, s)
	assert.Equal(t, 0, s.Len())
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	t.Run("shared behaviour", func(t *testing.T) {
		t.Parallel()
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)
		exerciseStore(t, s)
	})

	t.Run("creates directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "data")
		s, err := NewFileStore(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, s.Directory())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("writes value file and no leftovers", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s, err := NewFileStore(dir)
		require.NoError(t, err)

		require.NoError(t, s.Set(context.Background(), "k", "v"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "k.json", entries[0].Name())
	})

	t.Run("rejects path traversal keys", func(t *testing.T) {
		t.Parallel()
		s, err := NewFileStore(t.TempDir())
		require.NoError(t, err)

		err = s.Set(context.Background(), "../escape", "v")
		require.ErrorIs(t, err, ErrInvalidKey)
		_, err = s.Get(context.Background(), "a/b")
		require.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("persists across instances", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s1, err := NewFileStore(dir)
		require.NoError(t, err)
		require.NoError(t, s1.Set(context.Background(), "k", "persisted"))

		s2, err := NewFileStore(dir)
		require.NoError(t, err)
		got, err := s2.Get(context.Background(), "k")
		require.NoError(t, err)
		assert.Equal(t, "persisted", got)
	})
}

func TestRedisStore(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	s := NewRedisStoreFromClient(client, "")
	defer s.Close()

	require.NoError(t, s.Ping(context.Background()))
	exerciseStore(t, s)

	require.NoError(t, s.Set(context.Background(), "k", "v"))
	assert.True(t, server.Exists(DefaultRedisPrefix+"k"))
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		s, closeFn, err := Open(context.Background(), Options{Backend: BackendMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, s)
		assert.NoError(t, closeFn())
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		s, closeFn, err := Open(context.Background(), Options{Backend: BackendFile, Directory: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &FileStore{}, s)
		assert.NoError(t, closeFn())
	})

	t.Run("redis", func(t *testing.T) {
		t.Parallel()
		server, err := miniredis.Run()
		require.NoError(t, err)
		defer server.Close()

		s, closeFn, err := Open(context.Background(), Options{
			Backend: BackendRedis,
			Redis:   RedisOptions{URL: "redis://" + server.Addr() + "/0"},
		})
		require.NoError(t, err)
		assert.IsType(t, &RedisStore{}, s)
		require.NoError(t, s.Set(context.Background(), "k", "v"))
		assert.True(t, server.Exists(DefaultRedisPrefix+"k"))
		assert.NoError(t, closeFn())
	})

	t.Run("redis unreachable", func(t *testing.T) {
		t.Parallel()
		server, err := miniredis.Run()
		require.NoError(t, err)
		addr := server.Addr()
		server.Close()

		s, closeFn, err := Open(context.Background(), Options{Backend: BackendRedis, Redis: RedisOptions{Addr: addr}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to connect to redis")
		assert.Nil(t, s)
		assert.NotNil(t, closeFn)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, closeFn, err := Open(context.Background(), Options{Backend: "sqlite"})
		require.Error(t, err)
		assert.NotNil(t, closeFn)
	})
}
