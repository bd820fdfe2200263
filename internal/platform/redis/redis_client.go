// Package redis はキャッシュ用のRedisクライアントを提供します。
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/d25037/trading25-sub006/internal/platform/config"
)

// NewClient は設定からRedisクライアントを生成し、疎通を確認します。
func NewClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
