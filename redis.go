package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// Cache keys for the read endpoints. Every write path invalidates all of
// them; the aggregate keys are enumerable because only default-argument
// responses are cached.
const (
	cacheKeyTransactions = "transactions"
	cacheKeySummary      = "summary"
)

func aggregateCacheKey(groupBy string, excludeCreditCardPayments bool) string {
	return fmt.Sprintf("aggregate:%s:%t", groupBy, excludeCreditCardPayments)
}

// initRedis initializes the Redis connection. The service keeps working
// without it; callers check redisClient for nil.
func initRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis:6379"
	}

	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	redisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	return nil
}

// cacheGet unmarshals a cached response into v, reporting whether the key
// was present.
func cacheGet(ctx context.Context, key string, v interface{}) bool {
	if redisClient == nil {
		return false
	}
	cached, err := redisClient.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), v) == nil
}

func cacheSet(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if redisClient == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		redisClient.SetEx(ctx, key, data, ttl)
	}
}

// invalidateCaches drops every cached read response after a write.
func invalidateCaches(ctx context.Context) {
	if redisClient == nil {
		return
	}
	keys := []string{cacheKeyTransactions, cacheKeySummary}
	for dim := range aggregateDimensions {
		keys = append(keys, aggregateCacheKey(dim, true), aggregateCacheKey(dim, false))
	}
	redisClient.Del(ctx, keys...)
}
