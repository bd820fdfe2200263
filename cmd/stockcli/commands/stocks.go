package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	mdadapters "github.com/d25037/trading25-sub006/internal/feature/marketdata/adapters"
	stockadapters "github.com/d25037/trading25-sub006/internal/feature/stocks/adapters"
	"github.com/d25037/trading25-sub006/internal/feature/stocks/domain/entity"
	stockusecase "github.com/d25037/trading25-sub006/internal/feature/stocks/usecase"
	"github.com/d25037/trading25-sub006/internal/platform/db"
)

var (
	// Stocks flags
	stocksLimit     int
	sectorMarkets   []string
	sector17Name    string
	sector33Name    string
	sectorSortBy    string
	sectorSortOrder string
)

// stocksCmd represents the stocks command
var stocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "銘柄マスタの照会",
	Long: `銘柄マスタの検索とセクター絞り込みを行います。

Examples:
  go run ./cmd/stockcli stocks search トヨタ
  go run ./cmd/stockcli stocks sector --sector33 輸送用機器 --market prime`,
}

var stocksSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "コード・会社名の部分一致検索",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(gdb) }()

		uc := newStockUsecase(gdb)
		stocks, err := uc.SearchStocks(cmd.Context(), args[0], stocksLimit)
		if err != nil {
			return err
		}
		return renderStocks(stocks)
	},
}

var stocksSectorCmd = &cobra.Command{
	Use:   "sector",
	Short: "セクター・市場区分による絞り込み",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close(gdb) }()

		uc := newStockUsecase(gdb)
		summaries, err := uc.GetStocksBySector(cmd.Context(), stockusecase.SectorQuery{
			Sector17Name: sector17Name,
			Sector33Name: sector33Name,
			MarketCodes:  sectorMarkets,
			SortBy:       sectorSortBy,
			SortOrder:    sectorSortOrder,
			Limit:        stocksLimit,
		})
		if err != nil {
			return err
		}
		return renderStockSummaries(summaries)
	},
}

func init() {
	stocksSearchCmd.Flags().IntVar(&stocksLimit, "limit", 0, "number of rows (default 20)")
	stocksSectorCmd.Flags().IntVar(&stocksLimit, "limit", 0, "number of rows (default 100)")
	stocksSectorCmd.Flags().StringVar(&sector17Name, "sector17", "", "filter by 17-sector name")
	stocksSectorCmd.Flags().StringVar(&sector33Name, "sector33", "", "filter by 33-sector name")
	stocksSectorCmd.Flags().StringSliceVar(&sectorMarkets, "market", nil, "market segments (prime|standard|growth)")
	stocksSectorCmd.Flags().StringVar(&sectorSortBy, "sort-by", stockusecase.SortByCode, "sort key (code|changePercentage)")
	stocksSectorCmd.Flags().StringVar(&sectorSortOrder, "sort-order", "asc", "sort order (asc|desc)")

	stocksCmd.AddCommand(stocksSearchCmd)
	stocksCmd.AddCommand(stocksSectorCmd)
	rootCmd.AddCommand(stocksCmd)
}

func newStockUsecase(gdb *gorm.DB) *stockusecase.StockUsecase {
	return stockusecase.NewStockUsecase(
		stockadapters.NewStockRepository(gdb),
		mdadapters.NewTradingCalendarRepository(gdb),
	)
}

func renderStocks(stocks []entity.Stock) error {
	header := []string{"CODE", "NAME", "MARKET", "SECTOR33"}
	rows := make([][]string, 0, len(stocks))
	for _, s := range stocks {
		rows = append(rows, []string{s.Code, s.CompanyName, s.MarketCode, s.Sector33Name})
	}
	return renderRows(stocks, header, rows)
}

func renderStockSummaries(summaries []entity.StockSummary) error {
	header := []string{"CODE", "NAME", "MARKET", "SECTOR33", "CLOSE", "CHANGE", "CHANGE%"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Code,
			s.CompanyName,
			s.MarketCode,
			s.Sector33Name,
			strconv.FormatFloat(s.CurrentPrice, 'f', -1, 64),
			strconv.FormatFloat(s.ChangeAmount, 'f', 2, 64),
			strconv.FormatFloat(s.ChangePercentage, 'f', 2, 64),
		})
	}
	return renderRows(summaries, header, rows)
}
