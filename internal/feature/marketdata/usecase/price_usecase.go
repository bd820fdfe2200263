package usecase

import (
	"context"
	"time"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
)

// DefaultIndexRangeDays is the TOPIX series span used when the caller gives
// no explicit range.
const DefaultIndexRangeDays = 365

// PriceRepository abstracts point-in-time price resolution and the benchmark
// series read.
type PriceRepository interface {
	// PriceAtDate returns the bar at date, or the bar at the closest prior
	// trading date, or nil when the stock has no bars on or before date.
	PriceAtDate(ctx context.Context, code string, date time.Time) (*entity.DailyBar, error)

	// PricesAtDates resolves each target date independently with the same
	// closest-prior rule, keyed by YYYY-MM-DD. Empty input returns an empty
	// map without querying the store.
	PricesAtDates(ctx context.Context, code string, dates []time.Time) (map[string]entity.DailyBar, error)

	// IndexBars returns the TOPIX series for [from, to] in ascending order.
	IndexBars(ctx context.Context, from, to time.Time) ([]entity.IndexBar, error)
}

// PriceUsecase resolves "price as of a date" requests, defaulting a zero
// date to the latest trading date.
type PriceUsecase struct {
	price    PriceRepository
	calendar TradingCalendarRepository
}

// NewPriceUsecase はPriceUsecaseの新しいインスタンスを生成します。
func NewPriceUsecase(price PriceRepository, calendar TradingCalendarRepository) *PriceUsecase {
	return &PriceUsecase{price: price, calendar: calendar}
}

// GetPriceAtDate は指定銘柄の指定日時点の株価を返します。
// dateがゼロ値の場合は最新の取引日を使用します。該当データがない場合はnilを返します。
func (u *PriceUsecase) GetPriceAtDate(ctx context.Context, code string, date time.Time) (*entity.DailyBar, error) {
	if date.IsZero() {
		latest, err := u.calendar.LatestTradingDate(ctx)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			return nil, nil
		}
		date = *latest
	}
	return u.price.PriceAtDate(ctx, code, date)
}

// GetPricesAtDates は複数の対象日の株価をまとめて解決します。
func (u *PriceUsecase) GetPricesAtDates(ctx context.Context, code string, dates []time.Time) (map[string]entity.DailyBar, error) {
	return u.price.PricesAtDates(ctx, code, dates)
}

// GetIndexBars はTOPIXのベンチマーク系列を返します。toがゼロ値なら現在時刻、
// fromがゼロ値ならtoの1年前を使用します。
func (u *PriceUsecase) GetIndexBars(ctx context.Context, from, to time.Time) ([]entity.IndexBar, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -DefaultIndexRangeDays)
	}
	return u.price.IndexBars(ctx, from, to)
}
