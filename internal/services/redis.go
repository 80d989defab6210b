package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisClientName = "flippy-engine"

// redisOptions parses the Redis URL and applies the timeout to dialing, reads and writes.
func redisOptions(url string, timeout time.Duration) (*redis.Options, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing Redis URL: %w", err)
	}

	opts.ClientName = redisClientName
	opts.DialTimeout = timeout
	opts.ReadTimeout = timeout
	opts.WriteTimeout = timeout

	return opts, nil
}

// InitRedis connects to Redis and checks the connection within timeout.
func InitRedis(url string, timeout time.Duration) (*redis.Client, error) {
	opts, err := redisOptions(url, timeout)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error pinging Redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}
