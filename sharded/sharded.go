// Package sharded distributes a cache's key space across multiple
// independently locked LRU shards to reduce lock contention.
//
// Each shard is a complete lru.Cache guarded by its own lock. Keys are
// routed to shards with a seeded hash, so a key always lands on the same
// shard for the lifetime of the cache. The shard count is rounded up to a
// power of two to keep routing a single mask operation.
package sharded

import (
	"context"
	"fmt"
	"hash/maphash"

	"go.expect.digital/lrucache/lru"
)

const defaultShards = 16

// Cache is a sharded least recently used cache.
type Cache[K comparable, V any] struct {
	seed   maphash.Seed
	shards []*lru.Cache[K, V]
}

// New returns an empty sharded cache. The shard count is rounded up to the
// next power of two; n < 1 selects the default of 16 shards. The options
// apply to every shard, so e.g. lru.WithSize sets the max size per shard
// and the total capacity is shards times that size.
func New[K comparable, V any](n int, options ...lru.Option[K, V]) *Cache[K, V] {
	if n < 1 {
		n = defaultShards
	}

	shards := 1
	for shards < n {
		shards <<= 1
	}

	c := &Cache[K, V]{
		seed:   maphash.MakeSeed(),
		shards: make([]*lru.Cache[K, V], shards),
	}

	for i := range c.shards {
		c.shards[i] = lru.New(options...)
	}

	return c
}

// Shards returns the number of shards.
func (c *Cache[K, V]) Shards() int {
	return len(c.shards)
}

func (c *Cache[K, V]) shard(key K) *lru.Cache[K, V] {
	return c.shards[maphash.Comparable(c.seed, key)&uint64(len(c.shards)-1)]
}

// Get returns the value associated with the key from its shard and marks
// it most recently used there. A miss returns an error matching
// lru.ErrNotFound, or the getter's result if one is configured.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, error) { //nolint:ireturn
	return c.shard(key).Get(ctx, key)
}

// Set stores the value in the key's shard, evicting that shard's least
// recently used value if the shard is full.
func (c *Cache[K, V]) Set(ctx context.Context, key K, value V) error {
	return c.shard(key).Set(ctx, key, value)
}

// Delete removes the value associated with the key from its shard.
// Deleting an absent key is a no-op.
func (c *Cache[K, V]) Delete(key K) {
	c.shard(key).Delete(key)
}

// Contains reports whether the key is stored without marking it recently
// used.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.shard(key).Contains(key)
}

// Len returns the number of values stored across all shards. Shards are
// counted one by one, so the result is a per-shard consistent snapshot,
// not a global one.
func (c *Cache[K, V]) Len() int {
	var n int

	for _, s := range c.shards {
		n += s.Len()
	}

	return n
}

// Size returns the total max size of the cache, summed across shards.
func (c *Cache[K, V]) Size() int {
	var n int

	for _, s := range c.shards {
		n += s.Size()
	}

	return n
}

// Resize sets the total max size of the cache to n, splitting the bound
// evenly across shards with any remainder going to the first shards.
// Shards holding more values than their new share evict down to it.
// Negative n is treated as 0.
func (c *Cache[K, V]) Resize(ctx context.Context, n int) error {
	if n < 0 {
		n = 0
	}

	per, rem := n/len(c.shards), n%len(c.shards)

	for i, s := range c.shards {
		size := per
		if i < rem {
			size++
		}

		if err := s.Resize(ctx, size); err != nil {
			return fmt.Errorf("resize shard %d: %w", i, err)
		}
	}

	return nil
}
