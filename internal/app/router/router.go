// Package router はHTTPルーティングとアプリ共通ミドルウェアを構成します。
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	mdhandler "github.com/d25037/trading25-sub006/internal/feature/marketdata/transport/handler"
	stockhandler "github.com/d25037/trading25-sub006/internal/feature/stocks/transport/handler"
	jwtmw "github.com/d25037/trading25-sub006/internal/platform/jwt"
	"github.com/d25037/trading25-sub006/internal/platform/config"
	"github.com/d25037/trading25-sub006/internal/shared/ratelimiter"
)

// Handlers はルーティング対象のハンドラー一式です。
type Handlers struct {
	Ranking *mdhandler.RankingHandler
	Price   *mdhandler.PriceHandler
	Stock   *stockhandler.StockHandler
}

// New はルータを構築します。
// /healthzは無認証、それ以外はレート制限の対象です。
// JWT_SECRETが設定されている場合はAPIルートにBearer認証を要求します。
func New(log zerolog.Logger, cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))

	// 導通確認用
	r.GET("/healthz", Health)

	api := r.Group("/")
	api.Use(ratelimiter.Middleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	if cfg.JWTSecret != "" {
		api.Use(jwtmw.AuthRequired())
	}
	{
		api.GET("/rankings/trading-value", h.Ranking.TradingValue)
		api.GET("/rankings/trading-value-average", h.Ranking.TradingValueAverage)
		api.GET("/rankings/price-change", h.Ranking.PriceChange)
		api.GET("/rankings/period-high", h.Ranking.PeriodHigh)
		api.GET("/rankings/period-low", h.Ranking.PeriodLow)

		api.GET("/prices/:code", h.Price.GetPrice)
		api.GET("/topix", h.Price.GetTopix)

		api.GET("/stocks/search", h.Stock.Search)
		api.GET("/stocks/sector", h.Stock.BySector)
	}

	return r
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
