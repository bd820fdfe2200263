package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/usecase"
	"github.com/d25037/trading25-sub006/internal/shared/market"
)

// rankingSQLite computes sorted leaderboards over stock_data joined with the
// stocks metadata table. Session windows (previous session, N sessions back)
// are resolved by the calendar layer before these queries run; every method
// here receives concrete dates. All ties break by code ascending so repeated
// queries return identical orderings.
type rankingSQLite struct {
	db *gorm.DB
}

var _ usecase.RankingRepository = (*rankingSQLite)(nil)

// NewRankingRepository は指定されたDB接続でrankingSQLiteリポジトリの新しいインスタンスを生成します。
func NewRankingRepository(db *gorm.DB) *rankingSQLite {
	return &rankingSQLite{db: db}
}

// rankingRow is the scan target shared by the ranking queries. Column aliases
// are fixed in the SELECT lists below.
type rankingRow struct {
	Code                string  `gorm:"column:code"`
	CompanyName         string  `gorm:"column:company_name"`
	MarketCode          string  `gorm:"column:market_code"`
	Sector33Name        string  `gorm:"column:sector33_name"`
	CurrentPrice        float64 `gorm:"column:current_price"`
	Volume              int64   `gorm:"column:volume"`
	TradingValue        float64 `gorm:"column:trading_value"`
	TradingValueAverage float64 `gorm:"column:trading_value_average"`
	BasePrice           float64 `gorm:"column:base_price"`
	ChangeAmount        float64 `gorm:"column:change_amount"`
	ChangePercentage    float64 `gorm:"column:change_percentage"`
}

const rankingBaseColumns = "d.code AS code, s.company_name AS company_name, " +
	"s.market_code AS market_code, s.sector33_name AS sector33_name, " +
	"d.close AS current_price, d.volume AS volume"

// RankingByTradingValue は指定日の売買代金（close×volume）ランキングを降順で返します。
func (r *rankingSQLite) RankingByTradingValue(ctx context.Context, date time.Time, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	q := r.db.WithContext(ctx).
		Table("stock_data AS d").
		Select(rankingBaseColumns + ", d.close * d.volume AS trading_value").
		Joins("JOIN stocks s ON s.code = d.code").
		Where("d.date = ?", dayOf(date))
	q, err := market.ApplyFilter(q, "s.market_code", marketCodes)
	if err != nil {
		return nil, err
	}

	var rows []rankingRow
	if err := applyLimit(q.Order("trading_value DESC, d.code ASC"), limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entity.RankingItem, 0, len(rows))
	for i, row := range rows {
		item := newRankingItem(i+1, row)
		tv := row.TradingValue
		item.TradingValue = &tv
		items = append(items, item)
	}
	return items, nil
}

// RankingByTradingValueAverage は[windowStart, date]の各セッションの売買代金平均で
// ランキングします。windowStartは呼び出し側がカレンダーで解決済みです。
func (r *rankingSQLite) RankingByTradingValueAverage(ctx context.Context, date, windowStart time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	q := r.db.WithContext(ctx).
		Table("stock_data AS d").
		Select(rankingBaseColumns + ", AVG(w.close * w.volume) AS trading_value_average").
		Joins("JOIN stocks s ON s.code = d.code").
		Joins("JOIN stock_data w ON w.code = d.code AND w.date BETWEEN ? AND ?", dayOf(windowStart), dayOf(date)).
		Where("d.date = ?", dayOf(date)).
		Group("d.code, s.company_name, s.market_code, s.sector33_name, d.close, d.volume")
	q, err := market.ApplyFilter(q, "s.market_code", marketCodes)
	if err != nil {
		return nil, err
	}

	var rows []rankingRow
	if err := applyLimit(q.Order("trading_value_average DESC, d.code ASC"), limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entity.RankingItem, 0, len(rows))
	for i, row := range rows {
		item := newRankingItem(i+1, row)
		avg := row.TradingValueAverage
		item.TradingValueAverage = &avg
		item.LookbackDays = lookbackDays
		items = append(items, item)
	}
	return items, nil
}

// RankingByPriceChange はbaseDateの終値を基準とした騰落率ランキングを返します。
// lookbackDaysが1のときは前営業日比（PreviousPrice）、2以上のときはN営業日前比
// （BasePrice + LookbackDays）として結果に反映されます。
func (r *rankingSQLite) RankingByPriceChange(ctx context.Context, date, baseDate time.Time, lookbackDays, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error) {
	q := r.db.WithContext(ctx).
		Table("stock_data AS d").
		Select(rankingBaseColumns+", base.close AS base_price, "+
			"d.close - base.close AS change_amount, "+
			"(d.close - base.close) / base.close * 100 AS change_percentage").
		Joins("JOIN stock_data base ON base.code = d.code AND base.date = ?", dayOf(baseDate)).
		Joins("JOIN stocks s ON s.code = d.code").
		Where("d.date = ?", dayOf(date))
	q, err := market.ApplyFilter(q, "s.market_code", marketCodes)
	if err != nil {
		return nil, err
	}

	var rows []rankingRow
	if err := applyLimit(q.Order("change_percentage "+sortDirection(direction)+", d.code ASC"), limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entity.RankingItem, 0, len(rows))
	for i, row := range rows {
		item := newRankingItem(i+1, row)
		base := row.BasePrice
		amount := row.ChangeAmount
		pct := row.ChangePercentage
		if lookbackDays <= 1 {
			item.PreviousPrice = &base
		} else {
			item.BasePrice = &base
			item.LookbackDays = lookbackDays
		}
		item.ChangeAmount = &amount
		item.ChangePercentage = &pct
		items = append(items, item)
	}
	return items, nil
}

// RankingByPeriodHigh は[windowStart, date]の終値最高値を当日つけた銘柄を返します。
func (r *rankingSQLite) RankingByPeriodHigh(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	return r.rankingByPeriodExtreme(ctx, date, windowStart, periodDays, limit, marketCodes, "MAX")
}

// RankingByPeriodLow は[windowStart, date]の終値最安値を当日つけた銘柄を返します。
func (r *rankingSQLite) RankingByPeriodLow(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	return r.rankingByPeriodExtreme(ctx, date, windowStart, periodDays, limit, marketCodes, "MIN")
}

func (r *rankingSQLite) rankingByPeriodExtreme(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string, agg string) ([]entity.RankingItem, error) {
	day := dayOf(date)
	q := r.db.WithContext(ctx).
		Table("stock_data AS d").
		Select(rankingBaseColumns+", d.close * d.volume AS trading_value").
		Joins("JOIN stocks s ON s.code = d.code").
		Where("d.date = ?", day).
		Where("d.close = (SELECT "+agg+"(w.close) FROM stock_data w WHERE w.code = d.code AND w.date BETWEEN ? AND ?)",
			dayOf(windowStart), day)
	q, err := market.ApplyFilter(q, "s.market_code", marketCodes)
	if err != nil {
		return nil, err
	}

	var rows []rankingRow
	if err := applyLimit(q.Order("trading_value DESC, d.code ASC"), limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entity.RankingItem, 0, len(rows))
	for i, row := range rows {
		item := newRankingItem(i+1, row)
		tv := row.TradingValue
		item.TradingValue = &tv
		item.LookbackDays = periodDays
		items = append(items, item)
	}
	return items, nil
}

func newRankingItem(rank int, row rankingRow) entity.RankingItem {
	return entity.RankingItem{
		Rank:         rank,
		Code:         row.Code,
		CompanyName:  row.CompanyName,
		MarketCode:   row.MarketCode,
		Sector33Name: row.Sector33Name,
		CurrentPrice: row.CurrentPrice,
		Volume:       row.Volume,
	}
}

func applyLimit(q *gorm.DB, limit int) *gorm.DB {
	if limit > 0 {
		return q.Limit(limit)
	}
	return q
}

// sortDirection maps the direction enum to a SQL keyword. Only the two fixed
// constants reach SQL text; anything else defaults to gainers.
func sortDirection(d entity.RankingDirection) string {
	if d == entity.DirectionLosers {
		return "ASC"
	}
	return "DESC"
}
