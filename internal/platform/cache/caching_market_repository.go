// Package cache provides caching decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"crypto_signal_bot/internal/feature/scan/domain/entity"
	"crypto_signal_bot/internal/feature/scan/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching
// of daily candle windows. Daily bars only change once a day, so entries
// live until shortly after the next UTC midnight. Symbol listing is not
// cached: it is one request per scan and staleness there costs more than
// it saves.
//
// Every Redis failure degrades to the underlying client, best effort; the
// cache is never an error source.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	namespace string
	now       func() time.Time
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates inner with Redis caching. If
// namespace is empty it defaults to "klines". A nil rdb disables caching.
func NewCachingMarketRepository(rdb *redis.Client, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if namespace == "" {
		namespace = "klines"
	}
	return &CachingMarketRepository{inner: inner, rdb: rdb, namespace: namespace, now: time.Now}
}

// ListSymbols passes straight through to the underlying repository.
func (c *CachingMarketRepository) ListSymbols(ctx context.Context, quote string) ([]string, error) {
	return c.inner.ListSymbols(ctx, quote)
}

// GetDailyCandles retrieves candles, checking the cache first and falling
// back to the exchange on a miss.
func (c *CachingMarketRepository) GetDailyCandles(ctx context.Context, symbol string, start, end time.Time, limit int) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.inner.GetDailyCandles(ctx, symbol, start, end, limit)
	}

	key := c.cacheKey(symbol, start, end, limit)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Corrupted entry; drop it and refetch.
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetDailyCandles(ctx, symbol, start, end, limit)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, TimeUntilNextUTCMidnight(c.now())).Err()
	}
	return out, nil
}

// cacheKey generates the cache key for one candle window.
func (c *CachingMarketRepository) cacheKey(symbol string, start, end time.Time, limit int) string {
	return fmt.Sprintf("%s:%s:%d:%d:%d", c.namespace, symbol, start.UnixMilli(), end.UnixMilli(), limit)
}
