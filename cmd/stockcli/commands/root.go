// Package commands は市場データ照会CLIのサブコマンドを定義します。
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/d25037/trading25-sub006/internal/platform/config"
	"github.com/d25037/trading25-sub006/internal/platform/db"
)

var (
	// Global flags
	dbPath string
	format string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockcli",
	Short: "国内株式の日足データ照会CLI",
	Long: `ローカルのsqliteデータベースに対して株価・ランキング・銘柄マスタを照会します。

Examples:
  go run ./cmd/stockcli ranking trading-value --date 2024-02-01 --market prime
  go run ./cmd/stockcli price 7203 --date 2024-02-01
  go run ./cmd/stockcli stocks search トヨタ --format json`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/market.db", "path to the sqlite database")
	rootCmd.PersistentFlags().StringVar(&format, "format", "table", "output format (table|json|csv)")
}

// openDB はCLI照会用にsqliteデータベースを開きます。
func openDB() (*gorm.DB, error) {
	return db.Open(config.Database{Driver: "sqlite", Path: dbPath})
}

// parseDateFlag は--date系フラグを解釈します。空文字列はゼロ値です。
func parseDateFlag(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return date, nil
}
