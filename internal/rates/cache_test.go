package rates

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	assert.NoError(t, rdb.Ping(ctx).Err())

	teardown := func() {
		rdb.Close()
		redisC.Terminate(ctx)
	}
	return rdb, teardown
}

func TestCacheRepository_RoundTrip(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	cache := NewCacheRepository(rdb, time.Minute)

	_, err := cache.GetRate(ctx, models.USDC, models.NGN)
	assert.Error(t, err, "missing rates read as an error, not zero")

	assert.NoError(t, cache.SetRate(ctx, models.USDC, models.NGN, 1500))

	rate, err := cache.GetRate(ctx, models.USDC, models.NGN)
	assert.NoError(t, err)
	assert.Equal(t, 1500.0, rate)
}

func TestCachedProvider_Quote(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	cache := NewCacheRepository(rdb, time.Minute)
	cp := NewCachedProvider(NewProvider(nil), cache)

	t.Run("miss computes and caches", func(t *testing.T) {
		q := cp.Quote(ctx, 10, models.USDC, models.NGN)
		assert.Equal(t, 15000.00, q.DestAmount)

		rate, err := cache.GetRate(ctx, models.USDC, models.NGN)
		assert.NoError(t, err)
		assert.Equal(t, 1500.0, rate)
	})

	t.Run("hit serves the cached rate", func(t *testing.T) {
		// Pin a different rate to prove the cache is consulted.
		assert.NoError(t, cache.SetRate(ctx, models.USDC, models.NGN, 1600))

		q := cp.Quote(ctx, 10, models.USDC, models.NGN)
		assert.Equal(t, 1600.0, q.Rate)
		assert.Equal(t, 16000.00, q.DestAmount)
	})

	t.Run("unknown pair stays a zero quote and is not cached", func(t *testing.T) {
		q := cp.Quote(ctx, 10, "BTC", "JPY")
		assert.True(t, q.Zero())

		_, err := cache.GetRate(ctx, "BTC", "JPY")
		assert.Error(t, err)
	})
}
