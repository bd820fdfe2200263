// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Env       string `envconfig:"APP_ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8080"`
	JWTSecret string `envconfig:"JWT_SECRET"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`

	Database Database
	Redis    Redis
}

// Database はストレージ層の設定です。
// DriverがpostgresのときはDSNを、sqliteのときはPathを使用します。
type Database struct {
	Driver        string `envconfig:"DB_DRIVER" default:"sqlite"`
	Path          string `envconfig:"DB_PATH" default:"data/market.db"`
	DSN           string `envconfig:"DATABASE_DSN"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"false"`
}

// Redis はキャッシュ層の設定です。Hostが空の場合キャッシュは無効です。
type Redis struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
}

// Addr はRedisの接続先アドレスを返します。
func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// Enabled はRedisキャッシュが設定されているかを返します。
func (r Redis) Enabled() bool {
	return r.Host != ""
}

// Load は.envファイル（存在する場合）と環境変数から設定を読み込みます。
func Load() (*Config, error) {
	// .envが無い環境（コンテナなど）ではそのまま環境変数を使用
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
