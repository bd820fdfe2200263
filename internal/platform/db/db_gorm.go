// Package db はGORMによるデータベース接続を提供します。
package db

import (
	"fmt"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	mdadapters "github.com/d25037/trading25-sub006/internal/feature/marketdata/adapters"
	stockentity "github.com/d25037/trading25-sub006/internal/feature/stocks/domain/entity"
	"github.com/d25037/trading25-sub006/internal/platform/config"
)

// Opener はDSNからGORM接続を開く関数です。テストで差し替え可能にします。
type Opener func(dsn string) (*gorm.DB, error)

// BuildSQLiteDSN はWALモードとbusy_timeoutを有効にしたsqlite用DSNを組み立てます。
func BuildSQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
}

// ConnectWithRetry は接続に成功するまでopenerを3秒間隔で再試行します。
// timeoutを超えた場合は最後のエラーを返します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		time.Sleep(3 * time.Second)
	}
}

// Open は設定に従ってデータベースを開きます。
// sqliteの場合はWALモードとbusy_timeoutを有効にします。
// postgresの場合は起動直後の接続失敗に備えて60秒までリトライします。
func Open(cfg config.Database) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: glogger.Default.LogMode(glogger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		db, err = gorm.Open(gsqlite.Open(BuildSQLiteDSN(cfg.Path)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
	case "postgres":
		db, err = ConnectWithRetry(cfg.DSN, 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), gormCfg)
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", cfg.Driver)
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate は銘柄マスタと株価テーブルのスキーマを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&stockentity.Stock{},
		&mdadapters.StockDataModel{},
		&mdadapters.TopixDataModel{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close はデータベース接続を閉じます。
// sqliteの場合は閉じる前にWALをメインファイルへ反映します。
func Close(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
