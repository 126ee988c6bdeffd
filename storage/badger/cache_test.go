package badger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/storage"
)

func TestEmbeddingCache_PutGet(t *testing.T) {
	cache, err := NewMemoryEmbeddingCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	key := core.ContentKey("text-embedding-3-large", `{"氏名":"田中太郎"}`)

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	vector := []float32{0.5, -0.5, 0.25}
	require.NoError(t, cache.Put(ctx, key, vector))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, vector, got)
}

func TestEmbeddingCache_Overwrite(t *testing.T) {
	cache, err := NewMemoryEmbeddingCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	key := core.ContentKey("m", "t")
	require.NoError(t, cache.Put(ctx, key, []float32{1}))
	require.NoError(t, cache.Put(ctx, key, []float32{2, 3}))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{2, 3}, got)
}

func TestEmbeddingCache_Persistent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	key := core.ContentKey("m", "persisted")

	cache, err := NewEmbeddingCache(dir)
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, key, []float32{4, 5, 6}))
	require.NoError(t, cache.Close())

	cache, err = NewEmbeddingCache(dir)
	require.NoError(t, err)
	defer cache.Close()

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []float32{4, 5, 6}, got)
}

func TestEmbeddingCache_Closed(t *testing.T) {
	cache, err := NewMemoryEmbeddingCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close())

	_, _, err = cache.Get(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, cache.Put(context.Background(), 1, []float32{1}), storage.ErrStorageClosed)
}

func TestEmbeddingCache_Concurrent(t *testing.T) {
	cache, err := NewMemoryEmbeddingCache()
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := core.ID(i + 1)
			assert.NoError(t, cache.Put(ctx, key, []float32{float32(i)}))
		}()
	}
	wg.Wait()

	for i := range 20 {
		got, ok, err := cache.Get(ctx, core.ID(i+1))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []float32{float32(i)}, got)
	}
}

func TestMakeEmbeddingKey(t *testing.T) {
	key := makeEmbeddingKey(core.ID(0x0102030405060708))
	assert.Equal(t, append([]byte(embeddingCachePrefix), 1, 2, 3, 4, 5, 6, 7, 8), key)
}
