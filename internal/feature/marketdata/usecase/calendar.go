// Package usecase は市場データ照会のビジネスロジックを実装します。
// Goの慣例に従い、リポジトリインターフェースは利用者（usecase）側で定義します。
package usecase

import (
	"context"
	"time"
)

// TradingCalendarRepository answers trading-session questions over the stored
// bar history. All three methods treat missing history as a nil date, not an
// error; callers must handle nil explicitly.
type TradingCalendarRepository interface {
	// LatestTradingDate returns the most recent stored trading date, or nil
	// when the store is empty.
	LatestTradingDate(ctx context.Context) (*time.Time, error)

	// PreviousTradingDate returns the most recent stored trading date
	// strictly before date, or nil when none exists.
	PreviousTradingDate(ctx context.Context, date time.Time) (*time.Time, error)

	// TradingDateBefore skips back n trading sessions (not calendar days)
	// from date. n < 1 is an InvalidArgumentError; fewer than n stored
	// sessions before date yields nil.
	TradingDateBefore(ctx context.Context, date time.Time, n int) (*time.Time, error)
}
