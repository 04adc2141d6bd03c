package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per email inside a fixed window.
type LoginLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

func NewLoginLimiter(rdb *redis.Client, max int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, max: max, window: window}
}

func loginKey(email string) string {
	return fmt.Sprintf("auth:login_fail:%s", strings.ToLower(strings.TrimSpace(email)))
}

// Allowed reports whether email may attempt another login.
func (l *LoginLimiter) Allowed(ctx context.Context, email string) (bool, error) {
	if l == nil || l.rdb == nil || l.max <= 0 {
		return true, nil
	}
	n, err := l.rdb.Get(ctx, loginKey(email)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return n < l.max, nil
}

// RecordFailure bumps the counter; the window starts at the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	key := loginKey(email)
	pipe := l.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	_, err := pipe.Exec(ctx)
	return err
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, loginKey(email)).Err()
}
