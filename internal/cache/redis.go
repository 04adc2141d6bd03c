// Package cache holds the Redis-backed helpers. Every type accepts a nil
// client and then degrades to a no-op, so Redis stays optional.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to addr and pings it. An empty addr returns nil.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: 0})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
