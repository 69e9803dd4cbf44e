package rates

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/redis/go-redis/v9"
)

// CacheRepository provides cached exchange rates using Redis. Quoted
// rates are cached briefly so repeated confirmations within a flow see a
// stable rate.
type CacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewCacheRepository creates a new repository instance with the given TTL.
func NewCacheRepository(client *redis.Client, expiration time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetRate fetches a cached rate between two currencies.
func (r *CacheRepository) GetRate(ctx context.Context, from, to string) (float64, error) {
	key := fmt.Sprintf("rate:%s:%s", from, to)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("rate not cached for %s->%s", from, to)
		}
		logger.Log.Errorw("rate cache get failed", "key", key, "error", err)
		return 0, err
	}

	rate, err := strconv.ParseFloat(val, 64)
	if err != nil {
		logger.Log.Errorw("rate cache parse failed", "key", key, "value", val, "error", err)
		return 0, err
	}

	return rate, nil
}

// SetRate caches a rate with the repository expiration.
func (r *CacheRepository) SetRate(ctx context.Context, from, to string, rate float64) error {
	key := fmt.Sprintf("rate:%s:%s", from, to)
	err := r.client.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), r.exp).Err()
	if err != nil {
		logger.Log.Errorw("rate cache set failed", "key", key, "rate", rate, "error", err)
	}
	return err
}

// CachedProvider serves quotes with a cache-aside Redis layer in front
// of the rate table, so repeated quotes within a flow see a stable rate.
// A cache outage degrades to the underlying provider.
type CachedProvider struct {
	provider *Provider
	cache    *CacheRepository
}

// NewCachedProvider wraps a Provider with the rate cache.
func NewCachedProvider(provider *Provider, cache *CacheRepository) *CachedProvider {
	return &CachedProvider{provider: provider, cache: cache}
}

// Quote converts an amount between currencies using the cached rate when
// one is present, computing and caching it otherwise.
func (cp *CachedProvider) Quote(ctx context.Context, amount float64, from, to string) models.Quote {
	if rate, err := cp.cache.GetRate(ctx, from, to); err == nil && rate != 0 {
		return quoteAtRate(amount, from, to, rate)
	}

	q := cp.provider.Quote(amount, from, to)
	if !q.Zero() {
		_ = cp.cache.SetRate(ctx, from, to, q.Rate)
	}
	return q
}
