package repositories

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

func TestSessionRepository(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	ctx := context.Background()
	repo := NewSessionRepository(rdb, 2*time.Second)

	t.Run("missing session reads as nil", func(t *testing.T) {
		session, err := repo.Get(ctx, 42)
		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("save and get round trip", func(t *testing.T) {
		in := &models.Session{
			UserID:      42,
			Flow:        models.FlowSell,
			State:       models.StateSelectBank,
			Asset:       models.USDC,
			AssetAmount: 10,
			Rate:        1500,
			StartedAt:   time.Now().UTC().Truncate(time.Second),
		}
		assert.NoError(t, repo.Save(ctx, in))

		out, err := repo.Get(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, in.State, out.State)
		assert.Equal(t, in.AssetAmount, out.AssetAmount)
	})

	t.Run("delete discards the session", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, 42))

		session, err := repo.Get(ctx, 42)
		assert.NoError(t, err)
		assert.Nil(t, session)
	})

	t.Run("idle sessions expire", func(t *testing.T) {
		assert.NoError(t, repo.Save(ctx, &models.Session{
			UserID: 7,
			Flow:   models.FlowBuy,
			State:  models.StateAwaitingAmount,
		}))

		time.Sleep(3 * time.Second)

		session, err := repo.Get(ctx, 7)
		assert.NoError(t, err)
		assert.Nil(t, session)
	})
}
