package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	mdadapters "github.com/d25037/trading25-sub006/internal/feature/marketdata/adapters"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	mdusecase "github.com/d25037/trading25-sub006/internal/feature/marketdata/usecase"
	"github.com/d25037/trading25-sub006/internal/platform/db"
)

var (
	// Price flags
	priceDate string
	topixFrom string
	topixTo   string
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price <code>",
	Short: "指定日時点の株価照会",
	Long: `銘柄コードと日付から株価を照会します。
非営業日を指定した場合は直前の営業日の株価を返します。

Examples:
  go run ./cmd/stockcli price 7203
  go run ./cmd/stockcli price 7203 --date 2024-02-01 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(priceDate)
		if err != nil {
			return err
		}

		gdb, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(gdb) }()

		uc := newPriceUsecase(gdb)
		bar, err := uc.GetPriceAtDate(cmd.Context(), args[0], date)
		if err != nil {
			return err
		}
		if bar == nil {
			return fmt.Errorf("no price data for %s", args[0])
		}
		return renderDailyBars([]entity.DailyBar{*bar})
	},
}

// topixCmd represents the topix command
var topixCmd = &cobra.Command{
	Use:   "topix",
	Short: "TOPIX指数の日足照会",
	Long: `TOPIX指数の日足を期間指定で照会します。--from/--to未指定の場合は直近1年分です。

Example:
  go run ./cmd/stockcli topix --from 2024-01-01 --to 2024-02-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDateFlag(topixFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag(topixTo)
		if err != nil {
			return err
		}

		gdb, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(gdb) }()

		uc := newPriceUsecase(gdb)
		bars, err := uc.GetIndexBars(cmd.Context(), from, to)
		if err != nil {
			return err
		}
		return renderIndexBars(bars)
	},
}

func init() {
	priceCmd.Flags().StringVar(&priceDate, "date", "", "target date (YYYY-MM-DD, default latest)")
	topixCmd.Flags().StringVar(&topixFrom, "from", "", "range start (YYYY-MM-DD)")
	topixCmd.Flags().StringVar(&topixTo, "to", "", "range end (YYYY-MM-DD)")

	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(topixCmd)
}

func newPriceUsecase(gdb *gorm.DB) *mdusecase.PriceUsecase {
	return mdusecase.NewPriceUsecase(
		mdadapters.NewPriceRepository(gdb),
		mdadapters.NewTradingCalendarRepository(gdb),
	)
}

func renderDailyBars(bars []entity.DailyBar) error {
	header := []string{"CODE", "DATE", "OPEN", "HIGH", "LOW", "CLOSE", "VOLUME"}
	rows := make([][]string, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, []string{
			b.Code,
			b.Date.Format("2006-01-02"),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatInt(b.Volume, 10),
		})
	}
	return renderRows(bars, header, rows)
}

func renderIndexBars(bars []entity.IndexBar) error {
	header := []string{"DATE", "OPEN", "HIGH", "LOW", "CLOSE"}
	rows := make([][]string, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, []string{
			b.Date.Format("2006-01-02"),
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
		})
	}
	return renderRows(bars, header, rows)
}
