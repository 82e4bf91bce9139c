package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workforcehq/employee-api/internal/infrastructure/config"
)

const defaultTimeout = 5 * time.Second

// Connect initialises the Redis client backing the login throttle and
// validates connectivity with a ping. Throttle commands are short counter
// reads and writes, so the same conservative timeout bounds dials and IO.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: defaultTimeout,
		ReadTimeout: defaultTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
