package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "exchange_rate:"

type Redis struct {
	client *redis.Client
}

func NewRedis(redisAddr string, db int) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   db,
	})

	return &Redis{client: client}
}

// Ping checks that the server is reachable
func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Set stores a rate with an expiration time
func (c *Redis) Set(ctx context.Context, key string, rate float64, expiration time.Duration) error {
	value := strconv.FormatFloat(rate, 'g', -1, 64)
	return c.client.Set(ctx, keyPrefix+key, value, expiration).Err()
}

// Get retrieves a rate by key. A missing key is not an error.
func (c *Redis) Get(ctx context.Context, key string) (float64, bool, error) {
	value, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	rate, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, err
	}

	return rate, true, nil
}

// Delete removes keys from the cache
func (c *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = keyPrefix + key
	}

	return c.client.Del(ctx, prefixed...).Err()
}

// Close closes the Redis connection
func (c *Redis) Close() error {
	return c.client.Close()
}
