package adapters

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/usecase"
)

// lookbackMarginDays bounds the batch range query below min(dates). A month
// covers any holiday cluster; a stock suspended longer than that resolves as
// missing for the affected target dates.
const lookbackMarginDays = 31

// priceSQLite resolves "price as of a date" against stock_data. When the
// exact date has no trade the closest strictly-prior bar is returned, never
// a future one (a future bar would leak lookahead information into factor
// calculations).
type priceSQLite struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceSQLite)(nil)

// NewPriceRepository は指定されたDB接続でpriceSQLiteリポジトリの新しいインスタンスを生成します。
func NewPriceRepository(db *gorm.DB) *priceSQLite {
	return &priceSQLite{db: db}
}

// PriceAtDate は指定日の足を返します。当日の足がない場合は直近の過去の取引日の足を返し、
// date以前に足が一つもない場合はnilを返します。
func (r *priceSQLite) PriceAtDate(ctx context.Context, code string, date time.Time) (*entity.DailyBar, error) {
	var rows []StockDataModel
	err := r.db.WithContext(ctx).
		Where("code = ? AND date <= ?", code, dayOf(date)).
		Order("date DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	bar := toDailyBar(rows[0])
	return &bar, nil
}

// PricesAtDates は複数の対象日をまとめて解決します。対象日ごとに個別クエリを
// 発行するのではなく、[min(dates)-margin, max(dates)] を一度の範囲クエリで
// 取得してからメモリ上で直近過去の足を割り当てます。
// 空入力はストアに触れずに空マップを返します。
func (r *priceSQLite) PricesAtDates(ctx context.Context, code string, dates []time.Time) (map[string]entity.DailyBar, error) {
	out := make(map[string]entity.DailyBar, len(dates))
	if len(dates) == 0 {
		return out, nil
	}

	minDate, maxDate := dayOf(dates[0]), dayOf(dates[0])
	for _, d := range dates[1:] {
		day := dayOf(d)
		if day.Before(minDate) {
			minDate = day
		}
		if day.After(maxDate) {
			maxDate = day
		}
	}

	var rows []StockDataModel
	err := r.db.WithContext(ctx).
		Where("code = ? AND date BETWEEN ? AND ?", code, minDate.AddDate(0, 0, -lookbackMarginDays), maxDate).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return out, nil
	}

	for _, d := range dates {
		day := dayOf(d)
		// Index of the first bar after the target day; the bar before it is
		// the closest at-or-prior match.
		i := sort.Search(len(rows), func(i int) bool { return rows[i].Date.After(day) })
		if i == 0 {
			continue
		}
		out[entity.DateKey(day)] = toDailyBar(rows[i-1])
	}
	return out, nil
}

// IndexBars は[from, to]のTOPIXベンチマーク系列を日付昇順で返します。
func (r *priceSQLite) IndexBars(ctx context.Context, from, to time.Time) ([]entity.IndexBar, error) {
	var rows []TopixDataModel
	err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", dayOf(from), dayOf(to)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.IndexBar, 0, len(rows))
	for _, m := range rows {
		out = append(out, toIndexBar(m))
	}
	return out, nil
}
