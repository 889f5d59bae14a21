package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiter_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewRedisRateLimiter(rdb)
	limit := PerSecond(2, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.Allow(ctx, "rate:10.0.0.1", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := limiter.Allow(ctx, "rate:10.0.0.1", limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Positive(t, res.RetryAfter)

	res, err = limiter.Allow(ctx, "rate:10.0.0.2", limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestPerSecond_BurstAtLeastRate(t *testing.T) {
	assert.Equal(t, 10, PerSecond(10, 1).Burst)
	assert.Equal(t, 20, PerSecond(10, 20).Burst)
}
