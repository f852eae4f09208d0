package sharded

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"go.expect.digital/lrucache/lru"
)

func Test_Cache_New_RoundsShards(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4, New[int, int](3).Shards())
	assert.Equal(t, 8, New[int, int](8).Shards())
	assert.Equal(t, 1, New[int, int](1).Shards())
	assert.Equal(t, defaultShards, New[int, int](0).Shards())
	assert.Equal(t, defaultShards, New[int, int](-5).Shards())
}

func Test_Cache_Size(t *testing.T) {
	t.Parallel()

	c := New(4, lru.WithSize[int, int](8))

	assert.Equal(t, 4*8, c.Size())
	assert.Zero(t, c.Len())
}

func Test_Cache_SetGetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New[string, int](4)

	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 2))

	v, err := c.Get(ctx, "a")

	assert.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains("b"))

	c.Delete("a")

	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Contains("a"))

	_, err = c.Get(ctx, "a")
	assert.True(t, errors.Is(err, lru.ErrNotFound))

	// Deleting an absent key is a no-op.
	c.Delete("a")
	assert.Equal(t, 1, c.Len())
}

// Test_Cache_Routing verifies that a key always lands on the same shard:
// updating a key must never create a second copy on another shard.
func Test_Cache_Routing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New[int, int](8)

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Set(ctx, 1, i))
	}

	assert.Equal(t, 1, c.Len())

	v, err := c.Get(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, 99, v)
}

func Test_Cache_Resize(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(4, lru.WithSize[int, int](8))

	require.NoError(t, c.Resize(ctx, 10))

	// 10 over 4 shards: two shards of 3 and two of 2.
	assert.Equal(t, 10, c.Size())

	require.NoError(t, c.Resize(ctx, 0))

	assert.Zero(t, c.Size())

	require.NoError(t, c.Set(ctx, 1, 1))
	assert.Zero(t, c.Len())
}

func Test_Cache_Resize_Shrink(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(2, lru.WithSize[int, string](16))

	for i := 0; i < 32; i++ {
		require.NoError(t, c.Set(ctx, i, fmt.Sprintf("v%d", i)))
	}

	stored := c.Len()
	require.NoError(t, c.Resize(ctx, 8))

	assert.Equal(t, 8, c.Size())
	assert.LessOrEqual(t, c.Len(), 8)
	assert.LessOrEqual(t, c.Len(), stored)
}

func Test_Cache_WithGetter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(4, lru.WithGetter(func(_ context.Context, k int) (string, error) {
		return fmt.Sprintf("v%d", k), nil
	}))

	v, err := c.Get(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, "v7", v)
	assert.Equal(t, 1, c.Len())
}

func Test_Cache_Concurrent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := New(8, lru.WithSize[int, int](4))

	var eg errgroup.Group

	for g := 0; g < 8; g++ {
		eg.Go(func() error {
			for i := 0; i < 1_000; i++ {
				key := i % 128

				if err := c.Set(ctx, key, i); err != nil {
					return err
				}

				if _, err := c.Get(ctx, key); err != nil && !errors.Is(err, lru.ErrNotFound) {
					return err
				}

				if i%10 == 0 {
					c.Delete(key)
				}
			}

			return nil
		})
	}

	require.NoError(t, eg.Wait())

	assert.LessOrEqual(t, c.Len(), c.Size())
}
