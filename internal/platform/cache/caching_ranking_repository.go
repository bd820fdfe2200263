// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/usecase"
)

// CachingRankingRepository decorates a RankingRepository with Redis caching.
// Rankings are pure reads over daily batch data, so every variant is cached
// under a key derived from its full parameter set and expires at the next
// data refresh.
type CachingRankingRepository struct {
	inner     usecase.RankingRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingRankingRepository decorates a RankingRepository with Redis caching.
// If ttl is 0, entries expire at the next daily data refresh. If namespace is
// empty, it uses "rankings".
func NewCachingRankingRepository(rdb *redis.Client, ttl time.Duration, inner usecase.RankingRepository, namespace string) *CachingRankingRepository {
	if namespace == "" {
		namespace = "rankings"
	}
	return &CachingRankingRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.RankingRepository = (*CachingRankingRepository)(nil)

// RankingByTradingValue はキャッシュ越しに売買代金ランキングを取得します。
func (c *CachingRankingRepository) RankingByTradingValue(ctx context.Context, date time.Time, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	key := c.cacheKey("trading-value", date, fmt.Sprintf("%d", limit), marketCodes)
	return c.getOrLoad(ctx, key, func() ([]entity.RankingItem, error) {
		return c.inner.RankingByTradingValue(ctx, date, limit, marketCodes)
	})
}

// RankingByTradingValueAverage はキャッシュ越しに平均売買代金ランキングを取得します。
func (c *CachingRankingRepository) RankingByTradingValueAverage(ctx context.Context, date, windowStart time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	key := c.cacheKey("trading-value-average", date, fmt.Sprintf("%d:%d", lookbackDays, limit), marketCodes)
	return c.getOrLoad(ctx, key, func() ([]entity.RankingItem, error) {
		return c.inner.RankingByTradingValueAverage(ctx, date, windowStart, lookbackDays, limit, marketCodes)
	})
}

// RankingByPriceChange はキャッシュ越しに騰落率ランキングを取得します。
func (c *CachingRankingRepository) RankingByPriceChange(ctx context.Context, date, baseDate time.Time, lookbackDays, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error) {
	key := c.cacheKey("price-change", date, fmt.Sprintf("%d:%d:%s", lookbackDays, limit, direction), marketCodes)
	return c.getOrLoad(ctx, key, func() ([]entity.RankingItem, error) {
		return c.inner.RankingByPriceChange(ctx, date, baseDate, lookbackDays, limit, marketCodes, direction)
	})
}

// RankingByPeriodHigh はキャッシュ越しに期間内高値更新ランキングを取得します。
func (c *CachingRankingRepository) RankingByPeriodHigh(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	key := c.cacheKey("period-high", date, fmt.Sprintf("%d:%d", periodDays, limit), marketCodes)
	return c.getOrLoad(ctx, key, func() ([]entity.RankingItem, error) {
		return c.inner.RankingByPeriodHigh(ctx, date, windowStart, periodDays, limit, marketCodes)
	})
}

// RankingByPeriodLow はキャッシュ越しに期間内安値更新ランキングを取得します。
func (c *CachingRankingRepository) RankingByPeriodLow(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	key := c.cacheKey("period-low", date, fmt.Sprintf("%d:%d", periodDays, limit), marketCodes)
	return c.getOrLoad(ctx, key, func() ([]entity.RankingItem, error) {
		return c.inner.RankingByPeriodLow(ctx, date, windowStart, periodDays, limit, marketCodes)
	})
}

// getOrLoad retrieves a ranking from cache, falling back to the database.
func (c *CachingRankingRepository) getOrLoad(ctx context.Context, key string, load func() ([]entity.RankingItem, error)) ([]entity.RankingItem, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.RankingItem
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.entryTTL()).Err()
	}

	return out, nil
}

func (c *CachingRankingRepository) entryTTL() time.Duration {
	if c.ttl > 0 {
		return c.ttl
	}
	return TimeUntilNextUpdate()
}

// cacheKey generates a cache key for a specific ranking query.
func (c *CachingRankingRepository) cacheKey(variant string, date time.Time, params string, marketCodes []string) string {
	markets := "all"
	if len(marketCodes) > 0 {
		markets = strings.Join(marketCodes, ",")
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s",
		c.namespace,
		variant,
		date.Format("2006-01-02"),
		params,
		markets,
	)
}
