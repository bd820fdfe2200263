package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	mdadapters "github.com/d25037/trading25-sub006/internal/feature/marketdata/adapters"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	mdusecase "github.com/d25037/trading25-sub006/internal/feature/marketdata/usecase"
	"github.com/d25037/trading25-sub006/internal/platform/db"
)

var (
	// Ranking flags
	rankingDate       string
	rankingLimit      int
	rankingMarkets    []string
	rankingAvgWindow  int
	rankingChangeBase int
	rankingPeriodHigh int
	rankingPeriodLow  int
	rankingDir        string
)

// rankingCmd represents the ranking command
var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "日次ランキングの照会",
	Long: `売買代金・騰落率・期間高安値更新のランキングを照会します。

Examples:
  go run ./cmd/stockcli ranking trading-value --date 2024-02-01 --market prime
  go run ./cmd/stockcli ranking price-change --direction losers --lookback-days 5
  go run ./cmd/stockcli ranking period-high --period-days 240 --format csv`,
}

var rankingTradingValueCmd = &cobra.Command{
	Use:   "trading-value",
	Short: "売買代金ランキング",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRanking(func(uc *mdusecase.RankingUsecase) ([]entity.RankingItem, error) {
			date, err := parseDateFlag(rankingDate)
			if err != nil {
				return nil, err
			}
			return uc.GetRankingByTradingValue(cmd.Context(), date, rankingLimit, rankingMarkets)
		})
	},
}

var rankingTradingValueAverageCmd = &cobra.Command{
	Use:   "trading-value-average",
	Short: "平均売買代金ランキング（直近N営業日）",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRanking(func(uc *mdusecase.RankingUsecase) ([]entity.RankingItem, error) {
			date, err := parseDateFlag(rankingDate)
			if err != nil {
				return nil, err
			}
			return uc.GetRankingByTradingValueAverage(cmd.Context(), date, rankingAvgWindow, rankingLimit, rankingMarkets)
		})
	},
}

var rankingPriceChangeCmd = &cobra.Command{
	Use:   "price-change",
	Short: "騰落率ランキング",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRanking(func(uc *mdusecase.RankingUsecase) ([]entity.RankingItem, error) {
			date, err := parseDateFlag(rankingDate)
			if err != nil {
				return nil, err
			}
			direction := entity.RankingDirection(rankingDir)
			if direction != entity.DirectionGainers && direction != entity.DirectionLosers {
				return nil, fmt.Errorf("invalid direction %q, expected gainers or losers", rankingDir)
			}
			if rankingChangeBase <= 1 {
				return uc.GetRankingByPriceChange(cmd.Context(), date, rankingLimit, rankingMarkets, direction)
			}
			return uc.GetRankingByPriceChangeFromDays(cmd.Context(), date, rankingChangeBase, rankingLimit, rankingMarkets, direction)
		})
	},
}

var rankingPeriodHighCmd = &cobra.Command{
	Use:   "period-high",
	Short: "期間内高値更新ランキング",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRanking(func(uc *mdusecase.RankingUsecase) ([]entity.RankingItem, error) {
			date, err := parseDateFlag(rankingDate)
			if err != nil {
				return nil, err
			}
			return uc.GetRankingByPeriodHigh(cmd.Context(), date, rankingPeriodHigh, rankingLimit, rankingMarkets)
		})
	},
}

var rankingPeriodLowCmd = &cobra.Command{
	Use:   "period-low",
	Short: "期間内安値更新ランキング",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRanking(func(uc *mdusecase.RankingUsecase) ([]entity.RankingItem, error) {
			date, err := parseDateFlag(rankingDate)
			if err != nil {
				return nil, err
			}
			return uc.GetRankingByPeriodLow(cmd.Context(), date, rankingPeriodLow, rankingLimit, rankingMarkets)
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{
		rankingTradingValueCmd,
		rankingTradingValueAverageCmd,
		rankingPriceChangeCmd,
		rankingPeriodHighCmd,
		rankingPeriodLowCmd,
	} {
		cmd.Flags().StringVar(&rankingDate, "date", "", "target trading date (YYYY-MM-DD, default latest)")
		cmd.Flags().IntVar(&rankingLimit, "limit", 0, "number of rows (default 50)")
		cmd.Flags().StringSliceVar(&rankingMarkets, "market", nil, "market segments (prime|standard|growth)")
		rankingCmd.AddCommand(cmd)
	}
	rankingTradingValueAverageCmd.Flags().IntVar(&rankingAvgWindow, "lookback-days", 5, "averaging window in sessions")
	rankingPriceChangeCmd.Flags().IntVar(&rankingChangeBase, "lookback-days", 1, "base session offset")
	rankingPriceChangeCmd.Flags().StringVar(&rankingDir, "direction", "gainers", "ranking direction (gainers|losers)")
	rankingPeriodHighCmd.Flags().IntVar(&rankingPeriodHigh, "period-days", 240, "window length in sessions")
	rankingPeriodLowCmd.Flags().IntVar(&rankingPeriodLow, "period-days", 240, "window length in sessions")

	rootCmd.AddCommand(rankingCmd)
}

// runRanking はDBを開いてランキングユースケースを実行し、結果を出力します。
func runRanking(query func(uc *mdusecase.RankingUsecase) ([]entity.RankingItem, error)) error {
	gdb, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(gdb) }()

	uc := mdusecase.NewRankingUsecase(
		mdadapters.NewRankingRepository(gdb),
		mdadapters.NewTradingCalendarRepository(gdb),
	)
	items, err := query(uc)
	if err != nil {
		return err
	}
	return renderRankingItems(items)
}

func renderRankingItems(items []entity.RankingItem) error {
	header := []string{"RANK", "CODE", "NAME", "MARKET", "CLOSE", "VOLUME", "VALUE", "CHANGE%"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.Rank),
			it.Code,
			it.CompanyName,
			it.MarketCode,
			strconv.FormatFloat(it.CurrentPrice, 'f', -1, 64),
			strconv.FormatInt(it.Volume, 10),
			formatOptional(firstNonNil(it.TradingValue, it.TradingValueAverage)),
			formatOptional(it.ChangePercentage),
		})
	}
	return renderRows(items, header, rows)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func firstNonNil(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
