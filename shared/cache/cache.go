package cache

//go:generate go run go.uber.org/mock/mockgen -source=./cache.go -destination=./mocks/cache_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mytodos/infras/otel"
	"mytodos/shared/constant"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName         = "cache"
	otelCacheKeyAttribute = "cache.key"
)

type RedisCache interface {
	Increment(ctx context.Context, key string, windowSeconds int) (count int64, err error)
}

type redisCache struct {
	client *redis.Client
	otel   otel.Otel
}

func NewRedisCache(client *redis.Client, ot otel.Otel) RedisCache {
	return &redisCache{
		client: client,
		otel:   ot,
	}
}

// BuildKey joins parts into a namespaced cache key, skipping empty parts.
func BuildKey(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, constant.CacheKeySeparator)
}

// Increment bumps the counter at key and returns its new value. The expiry is set only
// when the counter is created, so the window is fixed from the first hit and later hits
// never extend it.
func (cache *redisCache) Increment(ctx context.Context, key string, windowSeconds int) (count int64, err error) {
	ctx, scope := cache.otel.NewScope(ctx, otelScopeName, otelScopeName+".Increment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelCacheKeyAttribute, key)

	count, err = cache.client.Incr(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Increment").Msg("failed to increment cache")

		return 0, fmt.Errorf("failed to increment cache value: %w", err)
	}

	if count > 1 {
		return count, nil
	}

	window := time.Duration(max(windowSeconds, 1)) * time.Second

	if err = cache.client.Expire(ctx, key, window).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Str("RedisCache", "Increment").Msg("failed to set cache expiry")

		// A counter without expiry would never reset.
		if delErr := cache.client.Del(ctx, key).Err(); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Str("RedisCache", "Increment").Msg("failed to drop cache counter")
		}

		return 0, fmt.Errorf("failed to set cache expiry: %w", err)
	}

	log.Trace().Str("RedisCache", "Increment").Str("key", key).Dur("window", window).Msg("opened cache window")

	return count, nil
}
