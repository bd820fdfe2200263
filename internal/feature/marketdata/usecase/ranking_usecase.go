package usecase

import (
	"context"
	"time"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	"github.com/d25037/trading25-sub006/internal/shared/market"
)

const (
	// DefaultRankingLimit はランキングのデフォルト返却件数です。
	DefaultRankingLimit = 50
	// MaxRankingLimit はランキングの最大返却件数です。
	MaxRankingLimit = 500
)

// RankingRepository abstracts the leaderboard queries. Session windows are
// already resolved to concrete dates when these methods are called.
type RankingRepository interface {
	RankingByTradingValue(ctx context.Context, date time.Time, limit int, marketCodes []string) ([]entity.RankingItem, error)
	RankingByTradingValueAverage(ctx context.Context, date, windowStart time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
	RankingByPriceChange(ctx context.Context, date, baseDate time.Time, lookbackDays, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error)
	RankingByPeriodHigh(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
	RankingByPeriodLow(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
}

// RankingUsecase validates ranking requests and resolves session windows via
// the trading calendar before any storage query runs. Market codes are
// checked first so an invalid request never touches storage.
type RankingUsecase struct {
	ranking  RankingRepository
	calendar TradingCalendarRepository
}

// NewRankingUsecase はRankingUsecaseの新しいインスタンスを生成します。
func NewRankingUsecase(ranking RankingRepository, calendar TradingCalendarRepository) *RankingUsecase {
	return &RankingUsecase{ranking: ranking, calendar: calendar}
}

// GetRankingByTradingValue は指定日の売買代金ランキングを返します。
// dateがゼロ値の場合は最新の取引日を使用します。
func (u *RankingUsecase) GetRankingByTradingValue(ctx context.Context, date time.Time, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	if err := market.Validate(marketCodes); err != nil {
		return nil, err
	}
	day, ok, err := u.resolveDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.RankingItem{}, nil
	}
	return u.ranking.RankingByTradingValue(ctx, day, clampLimit(limit), marketCodes)
}

// GetRankingByTradingValueAverage はdateを含む直近lookbackDaysセッションの
// 売買代金平均ランキングを返します。履歴不足は空リストです。
func (u *RankingUsecase) GetRankingByTradingValueAverage(ctx context.Context, date time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	if err := market.Validate(marketCodes); err != nil {
		return nil, err
	}
	if lookbackDays < 1 {
		return nil, &domain.InvalidArgumentError{Name: "lookbackDays", Value: lookbackDays}
	}
	day, ok, err := u.resolveDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.RankingItem{}, nil
	}

	windowStart, ok, err := u.windowStart(ctx, day, lookbackDays)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.RankingItem{}, nil
	}
	return u.ranking.RankingByTradingValueAverage(ctx, day, windowStart, lookbackDays, clampLimit(limit), marketCodes)
}

// GetRankingByPriceChange は前営業日比の騰落ランキングを返します。
// 前営業日が存在しない場合は空リストです。
func (u *RankingUsecase) GetRankingByPriceChange(ctx context.Context, date time.Time, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error) {
	if err := market.Validate(marketCodes); err != nil {
		return nil, err
	}
	day, ok, err := u.resolveDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.RankingItem{}, nil
	}

	prev, err := u.calendar.PreviousTradingDate(ctx, day)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return []entity.RankingItem{}, nil
	}
	return u.ranking.RankingByPriceChange(ctx, day, *prev, 1, clampLimit(limit), marketCodes, direction)
}

// GetRankingByPriceChangeFromDays はlookbackDays営業日前の終値を基準とした
// 騰落ランキングを返します。
func (u *RankingUsecase) GetRankingByPriceChangeFromDays(ctx context.Context, date time.Time, lookbackDays, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error) {
	if err := market.Validate(marketCodes); err != nil {
		return nil, err
	}
	if lookbackDays < 1 {
		return nil, &domain.InvalidArgumentError{Name: "lookbackDays", Value: lookbackDays}
	}
	day, ok, err := u.resolveDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.RankingItem{}, nil
	}

	base, err := u.calendar.TradingDateBefore(ctx, day, lookbackDays)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return []entity.RankingItem{}, nil
	}
	return u.ranking.RankingByPriceChange(ctx, day, *base, lookbackDays, clampLimit(limit), marketCodes, direction)
}

// GetRankingByPeriodHigh はdateを含む直近periodDaysセッションの終値最高値を
// 当日更新した銘柄を返します。
func (u *RankingUsecase) GetRankingByPeriodHigh(ctx context.Context, date time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	return u.periodExtreme(ctx, date, periodDays, limit, marketCodes, u.ranking.RankingByPeriodHigh)
}

// GetRankingByPeriodLow はdateを含む直近periodDaysセッションの終値最安値を
// 当日更新した銘柄を返します。
func (u *RankingUsecase) GetRankingByPeriodLow(ctx context.Context, date time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	return u.periodExtreme(ctx, date, periodDays, limit, marketCodes, u.ranking.RankingByPeriodLow)
}

type periodQuery func(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error)

func (u *RankingUsecase) periodExtreme(ctx context.Context, date time.Time, periodDays, limit int, marketCodes []string, query periodQuery) ([]entity.RankingItem, error) {
	if err := market.Validate(marketCodes); err != nil {
		return nil, err
	}
	if periodDays < 1 {
		return nil, &domain.InvalidArgumentError{Name: "periodDays", Value: periodDays}
	}
	day, ok, err := u.resolveDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.RankingItem{}, nil
	}

	windowStart, ok, err := u.windowStart(ctx, day, periodDays)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.RankingItem{}, nil
	}
	return query(ctx, day, windowStart, periodDays, clampLimit(limit), marketCodes)
}

// resolveDate substitutes the latest trading date for a zero date. ok is
// false when the store holds no trading dates at all.
func (u *RankingUsecase) resolveDate(ctx context.Context, date time.Time) (time.Time, bool, error) {
	if !date.IsZero() {
		return date, true, nil
	}
	latest, err := u.calendar.LatestTradingDate(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if latest == nil {
		return time.Time{}, false, nil
	}
	return *latest, true, nil
}

// windowStart resolves the first session of a trailing window of n sessions
// ending at day inclusive. ok is false on insufficient history.
func (u *RankingUsecase) windowStart(ctx context.Context, day time.Time, n int) (time.Time, bool, error) {
	if n == 1 {
		return day, true, nil
	}
	start, err := u.calendar.TradingDateBefore(ctx, day, n-1)
	if err != nil {
		return time.Time{}, false, err
	}
	if start == nil {
		return time.Time{}, false, nil
	}
	return *start, true, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxRankingLimit {
		return DefaultRankingLimit
	}
	return limit
}
