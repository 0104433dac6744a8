package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stylehunt/pkg/logger"
	"stylehunt/pkg/models"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis at addr and uses native key expiry for the TTL.
func NewRedis(addr string, ttl time.Duration) (Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

func redisKey(platform, key string) string {
	return "search:" + platform + ":" + key
}

func (c *redisStore) Get(platform, key string) (*models.SearchResponse, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, redisKey(platform, key)).Bytes()
	if err != nil {
		return nil, false
	}

	var res models.SearchResponse
	if err := json.Unmarshal(data, &res); err != nil {
		logger.Warn().Err(err).Str("platform", platform).Str("key", key).Msg("cache: failed to unmarshal search response")
		return nil, false
	}
	return &res, true
}

func (c *redisStore) Set(platform, key string, res *models.SearchResponse) {
	data, err := json.Marshal(res)
	if err != nil {
		logger.Warn().Err(err).Str("platform", platform).Str("key", key).Msg("cache: failed to marshal search response")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, redisKey(platform, key), data, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("platform", platform).Str("key", key).Msg("cache: failed to store search response")
	}
}

func (c *redisStore) Close() error {
	return c.client.Close()
}
