// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	mdadapters "github.com/d25037/trading25-sub006/internal/feature/marketdata/adapters"
	mdhandler "github.com/d25037/trading25-sub006/internal/feature/marketdata/transport/handler"
	mdusecase "github.com/d25037/trading25-sub006/internal/feature/marketdata/usecase"
	stockadapters "github.com/d25037/trading25-sub006/internal/feature/stocks/adapters"
	stockhandler "github.com/d25037/trading25-sub006/internal/feature/stocks/transport/handler"
	stockusecase "github.com/d25037/trading25-sub006/internal/feature/stocks/usecase"
	"github.com/d25037/trading25-sub006/internal/app/router"
	"github.com/d25037/trading25-sub006/internal/platform/cache"
)

// NewRankingRepository creates a RankingRepository implementation.
// If Redis is available, queries are served through a caching decorator
// whose entries expire at the next daily data refresh.
func NewRankingRepository(db *gorm.DB, rdb *redis.Client) mdusecase.RankingRepository {
	repo := mdadapters.NewRankingRepository(db)
	if rdb != nil {
		return cache.NewCachingRankingRepository(rdb, 0, repo, "rankings")
	}
	return repo
}

// NewHandlers wires repositories, usecases and handlers for all features.
func NewHandlers(db *gorm.DB, rdb *redis.Client) router.Handlers {
	calendarRepo := mdadapters.NewTradingCalendarRepository(db)
	priceRepo := mdadapters.NewPriceRepository(db)
	rankingRepo := NewRankingRepository(db, rdb)
	stockRepo := stockadapters.NewStockRepository(db)

	rankingUC := mdusecase.NewRankingUsecase(rankingRepo, calendarRepo)
	priceUC := mdusecase.NewPriceUsecase(priceRepo, calendarRepo)
	stockUC := stockusecase.NewStockUsecase(stockRepo, calendarRepo)

	return router.Handlers{
		Ranking: mdhandler.NewRankingHandler(rankingUC),
		Price:   mdhandler.NewPriceHandler(priceUC),
		Stock:   stockhandler.NewStockHandler(stockUC),
	}
}
