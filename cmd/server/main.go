package main

import (
	"context"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/d25037/trading25-sub006/internal/app/di"
	"github.com/d25037/trading25-sub006/internal/app/router"
	"github.com/d25037/trading25-sub006/internal/platform/config"
	"github.com/d25037/trading25-sub006/internal/platform/db"
	"github.com/d25037/trading25-sub006/internal/platform/logger"
	"github.com/d25037/trading25-sub006/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Env)

	// db
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	// Redis（未設定・接続不可の場合はキャッシュなしで続行）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := redis.NewClient(context.Background(), cfg.Redis); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close redis client")
				}
			}()
		}
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set, API authentication is disabled")
	}

	handlers := di.NewHandlers(gdb, rdb)
	r := router.New(log, cfg, handlers)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
