// Command lrucache demonstrates the cache: eviction under size pressure,
// misses on evicted keys and dynamic resizing. It is illustrative only.
package main

import (
	"context"
	"errors"

	"github.com/phuslu/log"

	"go.expect.digital/lrucache/lru"
)

func main() {
	logger := &log.Logger{
		Level: log.InfoLevel,
		Writer: &log.ConsoleWriter{
			ColorOutput:    false,
			EndWithMessage: true,
		},
	}

	ctx := context.Background()

	cache := lru.New(lru.WithSize[int, string](2))

	logger.Info().Int("size", cache.Size()).Msg("cache created")

	set(ctx, logger, cache, 1, "data1")
	set(ctx, logger, cache, 2, "data2")

	// Reading key 1 marks it most recently used, key 2 is now the
	// eviction candidate.
	get(ctx, logger, cache, 1)

	// The cache is full, inserting key 3 evicts key 2.
	set(ctx, logger, cache, 3, "data3")

	get(ctx, logger, cache, 2)
	get(ctx, logger, cache, 3)
	get(ctx, logger, cache, 1)

	logger.Info().Interface("keys", cache.Keys()).Int("len", cache.Len()).Msg("resident keys, most recently used first")

	// Shrinking to zero evicts everything.
	if err := cache.Resize(ctx, 0); err != nil {
		logger.Fatal().Err(err).Msg("resize cache")
	}

	logger.Info().Int("size", cache.Size()).Int("len", cache.Len()).Msg("cache resized to zero")
}

func set(ctx context.Context, logger *log.Logger, cache *lru.Cache[int, string], key int, value string) {
	if err := cache.Set(ctx, key, value); err != nil {
		logger.Fatal().Err(err).Int("key", key).Msg("set value")
	}

	logger.Info().Int("key", key).Str("value", value).Msg("value set")
}

func get(ctx context.Context, logger *log.Logger, cache *lru.Cache[int, string], key int) {
	v, err := cache.Get(ctx, key)

	switch {
	case errors.Is(err, lru.ErrNotFound):
		logger.Info().Int("key", key).Msg("miss, value was evicted or never set")
	case err != nil:
		logger.Fatal().Err(err).Int("key", key).Msg("get value")
	default:
		logger.Info().Int("key", key).Str("value", v).Msg("hit")
	}
}
