package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"loop-route-service/internal/ports"
)

const redisKeyPrefix = "route:"

// RedisRouteCache is the Redis-backed variant of the route cache, for
// deployments where several instances share one cache.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisRouteCache{Client: client, TTL: ttl}
}

func (r *RedisRouteCache) Get(ctx context.Context, key string) (ports.RouteLegs, bool, error) {
	if r.Client == nil {
		return ports.RouteLegs{}, false, errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return ports.RouteLegs{}, false, errors.New("get route cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ports.RouteLegs{}, false, nil
	}
	if err != nil {
		return ports.RouteLegs{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var legs []float64
	if err := json.Unmarshal([]byte(raw), &legs); err != nil {
		return ports.RouteLegs{}, false, fmt.Errorf("get route cache: decode legs: %w", err)
	}

	return ports.RouteLegs{LegMeters: legs}, true, nil
}

func (r *RedisRouteCache) Put(ctx context.Context, key string, legs ports.RouteLegs) error {
	if r.Client == nil {
		return errors.New("route cache: redis client is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	raw, err := json.Marshal(legs.LegMeters)
	if err != nil {
		return fmt.Errorf("insert route cache: encode legs: %w", err)
	}

	if err := r.Client.Set(ctx, redisKeyPrefix+key, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}
