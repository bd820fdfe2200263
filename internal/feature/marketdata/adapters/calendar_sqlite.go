package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/usecase"
)

// calendarSQLite derives the market trading calendar from the distinct dates
// stored in stock_data. Trading dates are irregular (weekends and market
// holidays leave gaps), so every "N sessions back" question is answered by
// counting stored dates, never by calendar-day arithmetic.
type calendarSQLite struct {
	db *gorm.DB
}

var _ usecase.TradingCalendarRepository = (*calendarSQLite)(nil)

// NewTradingCalendarRepository は指定されたDB接続でcalendarSQLiteリポジトリの新しいインスタンスを生成します。
func NewTradingCalendarRepository(db *gorm.DB) *calendarSQLite {
	return &calendarSQLite{db: db}
}

// LatestTradingDate は保存されている最新の取引日を返します。データが空の場合はnilを返します。
func (r *calendarSQLite) LatestTradingDate(ctx context.Context) (*time.Time, error) {
	return r.firstDistinctDate(r.db.WithContext(ctx).Model(&StockDataModel{}))
}

// PreviousTradingDate はdateより厳密に前の最新取引日を返します。存在しない場合はnilを返します。
func (r *calendarSQLite) PreviousTradingDate(ctx context.Context, date time.Time) (*time.Time, error) {
	q := r.db.WithContext(ctx).Model(&StockDataModel{}).Where("date < ?", dayOf(date))
	return r.firstDistinctDate(q)
}

// TradingDateBefore はdateより厳密に前のn番目の取引日を返します（セッション単位で遡る）。
// n < 1 はInvalidArgumentError、履歴不足はnil（エラーではない）です。
func (r *calendarSQLite) TradingDateBefore(ctx context.Context, date time.Time, n int) (*time.Time, error) {
	if n < 1 {
		return nil, &domain.InvalidArgumentError{Name: "n", Value: n}
	}
	q := r.db.WithContext(ctx).Model(&StockDataModel{}).
		Where("date < ?", dayOf(date)).
		Offset(n - 1)
	return r.firstDistinctDate(q)
}

// firstDistinctDate runs SELECT DISTINCT date ... ORDER BY date DESC LIMIT 1
// over the prepared query and unwraps the optional result.
func (r *calendarSQLite) firstDistinctDate(q *gorm.DB) (*time.Time, error) {
	var dates []time.Time
	err := q.Distinct("date").Order("date DESC").Limit(1).Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}
	d := dayOf(dates[0])
	return &d, nil
}
