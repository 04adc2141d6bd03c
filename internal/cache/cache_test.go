package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientIsNoop(t *testing.T) {
	ctx := context.Background()

	l := NewLoginLimiter(nil, 3, time.Minute)
	ok, err := l.Allowed(ctx, "a@b.c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, l.RecordFailure(ctx, "a@b.c"))
	assert.NoError(t, l.Reset(ctx, "a@b.c"))

	c := NewJSONCache(nil, "report:", time.Minute)
	var v map[string]int
	hit, err := c.Get(ctx, "summary", &v)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(ctx, "summary", map[string]int{"a": 1}))

	rdb, err := NewClient(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestLoginKeyNormalizesEmail(t *testing.T) {
	assert.Equal(t, "auth:login_fail:stu@uni.test", loginKey("  Stu@Uni.TEST "))
}

// Runs against a real server when REDIS_TEST_ADDR is set.
func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := NewClient(ctx, addr, os.Getenv("REDIS_TEST_PASSWORD"))
	require.NoError(t, err)
	defer rdb.Close()

	email := "limiter-" + time.Now().Format("150405.000000") + "@uni.test"
	l := NewLoginLimiter(rdb, 2, time.Minute)
	defer l.Reset(ctx, email)

	for i := 0; i < 2; i++ {
		ok, err := l.Allowed(ctx, email)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NoError(t, l.RecordFailure(ctx, email))
	}
	ok, err := l.Allowed(ctx, email)
	require.NoError(t, err)
	assert.False(t, ok)

	c := NewJSONCache(rdb, "test:", time.Minute)
	defer c.Delete(ctx, email)
	require.NoError(t, c.Set(ctx, email, map[string]int{"n": 7}))
	var got map[string]int
	hit, err := c.Get(ctx, email, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got["n"])
}
