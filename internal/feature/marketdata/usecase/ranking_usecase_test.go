package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	"github.com/d25037/trading25-sub006/internal/shared/market"
)

// mockRankingRepository はRankingRepositoryインターフェースのモック実装です。
// callsで呼び出し回数を数え、ストレージに触れる前の検証を確認できます。
type mockRankingRepository struct {
	calls int

	tradingValueFn func(ctx context.Context, date time.Time, limit int, marketCodes []string) ([]entity.RankingItem, error)
	averageFn      func(ctx context.Context, date, windowStart time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
	priceChangeFn  func(ctx context.Context, date, baseDate time.Time, lookbackDays, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error)
	periodHighFn   func(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
	periodLowFn    func(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
}

func (m *mockRankingRepository) RankingByTradingValue(ctx context.Context, date time.Time, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	m.calls++
	if m.tradingValueFn != nil {
		return m.tradingValueFn(ctx, date, limit, marketCodes)
	}
	return []entity.RankingItem{}, nil
}

func (m *mockRankingRepository) RankingByTradingValueAverage(ctx context.Context, date, windowStart time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	m.calls++
	if m.averageFn != nil {
		return m.averageFn(ctx, date, windowStart, lookbackDays, limit, marketCodes)
	}
	return []entity.RankingItem{}, nil
}

func (m *mockRankingRepository) RankingByPriceChange(ctx context.Context, date, baseDate time.Time, lookbackDays, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error) {
	m.calls++
	if m.priceChangeFn != nil {
		return m.priceChangeFn(ctx, date, baseDate, lookbackDays, limit, marketCodes, direction)
	}
	return []entity.RankingItem{}, nil
}

func (m *mockRankingRepository) RankingByPeriodHigh(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	m.calls++
	if m.periodHighFn != nil {
		return m.periodHighFn(ctx, date, windowStart, periodDays, limit, marketCodes)
	}
	return []entity.RankingItem{}, nil
}

func (m *mockRankingRepository) RankingByPeriodLow(ctx context.Context, date, windowStart time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
	m.calls++
	if m.periodLowFn != nil {
		return m.periodLowFn(ctx, date, windowStart, periodDays, limit, marketCodes)
	}
	return []entity.RankingItem{}, nil
}

// mockCalendar はTradingCalendarRepositoryインターフェースのモック実装です。
type mockCalendar struct {
	calls int

	latestFn   func(ctx context.Context) (*time.Time, error)
	previousFn func(ctx context.Context, date time.Time) (*time.Time, error)
	beforeFn   func(ctx context.Context, date time.Time, n int) (*time.Time, error)
}

func (m *mockCalendar) LatestTradingDate(ctx context.Context) (*time.Time, error) {
	m.calls++
	if m.latestFn != nil {
		return m.latestFn(ctx)
	}
	return nil, nil
}

func (m *mockCalendar) PreviousTradingDate(ctx context.Context, date time.Time) (*time.Time, error) {
	m.calls++
	if m.previousFn != nil {
		return m.previousFn(ctx, date)
	}
	return nil, nil
}

func (m *mockCalendar) TradingDateBefore(ctx context.Context, date time.Time, n int) (*time.Time, error) {
	m.calls++
	if m.beforeFn != nil {
		return m.beforeFn(ctx, date, n)
	}
	return nil, nil
}

func day(y int, mo time.Month, dd int) time.Time {
	return time.Date(y, mo, dd, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestRankingUsecase_InvalidMarketCodesFailBeforeStorage(t *testing.T) {
	t.Parallel()

	ranking := &mockRankingRepository{}
	calendar := &mockCalendar{}
	u := NewRankingUsecase(ranking, calendar)
	ctx := context.Background()
	bad := []string{"nasdaq"}

	calls := []func() error{
		func() error { _, err := u.GetRankingByTradingValue(ctx, day(2024, 2, 1), 10, bad); return err },
		func() error { _, err := u.GetRankingByTradingValueAverage(ctx, day(2024, 2, 1), 5, 10, bad); return err },
		func() error {
			_, err := u.GetRankingByPriceChange(ctx, day(2024, 2, 1), 10, bad, entity.DirectionGainers)
			return err
		},
		func() error {
			_, err := u.GetRankingByPriceChangeFromDays(ctx, day(2024, 2, 1), 5, 10, bad, entity.DirectionGainers)
			return err
		},
		func() error { _, err := u.GetRankingByPeriodHigh(ctx, day(2024, 2, 1), 30, 10, bad); return err },
		func() error { _, err := u.GetRankingByPeriodLow(ctx, day(2024, 2, 1), 30, 10, bad); return err },
	}

	for i, call := range calls {
		err := call()
		var mcErr *market.InvalidMarketCodeError
		require.ErrorAs(t, err, &mcErr, "operation %d", i)
	}
	assert.Zero(t, ranking.calls, "no ranking query may run after validation fails")
	assert.Zero(t, calendar.calls, "no calendar query may run after validation fails")
}

func TestRankingUsecase_LowerBoundValidation(t *testing.T) {
	t.Parallel()

	ranking := &mockRankingRepository{}
	calendar := &mockCalendar{}
	u := NewRankingUsecase(ranking, calendar)
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		wantName string
	}{
		{
			name:     "average lookbackDays zero",
			call:     func() error { _, err := u.GetRankingByTradingValueAverage(ctx, day(2024, 2, 1), 0, 10, nil); return err },
			wantName: "lookbackDays",
		},
		{
			name: "from-days lookbackDays negative",
			call: func() error {
				_, err := u.GetRankingByPriceChangeFromDays(ctx, day(2024, 2, 1), -3, 10, nil, entity.DirectionLosers)
				return err
			},
			wantName: "lookbackDays",
		},
		{
			name:     "period high periodDays zero",
			call:     func() error { _, err := u.GetRankingByPeriodHigh(ctx, day(2024, 2, 1), 0, 10, nil); return err },
			wantName: "periodDays",
		},
		{
			name:     "period low periodDays zero",
			call:     func() error { _, err := u.GetRankingByPeriodLow(ctx, day(2024, 2, 1), 0, 10, nil); return err },
			wantName: "periodDays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var argErr *domain.InvalidArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.wantName, argErr.Name)
		})
	}
	assert.Zero(t, ranking.calls)
}

func TestRankingUsecase_ZeroDateResolvesToLatest(t *testing.T) {
	t.Parallel()

	latest := day(2024, 2, 1)
	calendar := &mockCalendar{
		latestFn: func(ctx context.Context) (*time.Time, error) { return datePtr(latest), nil },
	}
	ranking := &mockRankingRepository{
		tradingValueFn: func(ctx context.Context, date time.Time, limit int, marketCodes []string) ([]entity.RankingItem, error) {
			assert.Equal(t, latest, date)
			assert.Equal(t, DefaultRankingLimit, limit, "limit 0 falls back to the default")
			return []entity.RankingItem{{Rank: 1, Code: "7203"}}, nil
		},
	}
	u := NewRankingUsecase(ranking, calendar)

	items, err := u.GetRankingByTradingValue(context.Background(), time.Time{}, 0, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, ranking.calls)
}

func TestRankingUsecase_EmptyStoreReturnsEmptyList(t *testing.T) {
	t.Parallel()

	ranking := &mockRankingRepository{}
	u := NewRankingUsecase(ranking, &mockCalendar{}) // latestFn nil -> no trading dates

	items, err := u.GetRankingByTradingValue(context.Background(), time.Time{}, 10, nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, ranking.calls)
}

func TestRankingUsecase_PriceChangeUsesPreviousSession(t *testing.T) {
	t.Parallel()

	date := day(2024, 1, 10)
	prev := day(2024, 1, 9)

	calendar := &mockCalendar{
		previousFn: func(ctx context.Context, d time.Time) (*time.Time, error) {
			assert.Equal(t, date, d)
			return datePtr(prev), nil
		},
	}
	ranking := &mockRankingRepository{
		priceChangeFn: func(ctx context.Context, d, baseDate time.Time, lookbackDays, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error) {
			assert.Equal(t, prev, baseDate)
			assert.Equal(t, 1, lookbackDays)
			assert.Equal(t, entity.DirectionLosers, direction)
			return []entity.RankingItem{}, nil
		},
	}
	u := NewRankingUsecase(ranking, calendar)

	_, err := u.GetRankingByPriceChange(context.Background(), date, 10, nil, entity.DirectionLosers)
	require.NoError(t, err)
	assert.Equal(t, 1, ranking.calls)
}

func TestRankingUsecase_PriceChangeWithoutPreviousSessionIsEmpty(t *testing.T) {
	t.Parallel()

	ranking := &mockRankingRepository{}
	calendar := &mockCalendar{} // previousFn nil -> no previous session
	u := NewRankingUsecase(ranking, calendar)

	items, err := u.GetRankingByPriceChange(context.Background(), day(2024, 1, 4), 10, nil, entity.DirectionGainers)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, ranking.calls)
}

func TestRankingUsecase_AverageResolvesWindowStart(t *testing.T) {
	t.Parallel()

	date := day(2024, 2, 1)
	start := day(2024, 1, 26)

	calendar := &mockCalendar{
		beforeFn: func(ctx context.Context, d time.Time, n int) (*time.Time, error) {
			assert.Equal(t, date, d)
			assert.Equal(t, 4, n, "a 5-session window starts 4 sessions before its end")
			return datePtr(start), nil
		},
	}
	ranking := &mockRankingRepository{
		averageFn: func(ctx context.Context, d, windowStart time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
			assert.Equal(t, start, windowStart)
			assert.Equal(t, 5, lookbackDays)
			return []entity.RankingItem{}, nil
		},
	}
	u := NewRankingUsecase(ranking, calendar)

	_, err := u.GetRankingByTradingValueAverage(context.Background(), date, 5, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, ranking.calls)
}

func TestRankingUsecase_AverageSingleSessionWindowSkipsCalendar(t *testing.T) {
	t.Parallel()

	date := day(2024, 2, 1)
	calendar := &mockCalendar{}
	ranking := &mockRankingRepository{
		averageFn: func(ctx context.Context, d, windowStart time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error) {
			assert.Equal(t, date, windowStart, "a 1-session window starts at its end")
			return []entity.RankingItem{}, nil
		},
	}
	u := NewRankingUsecase(ranking, calendar)

	_, err := u.GetRankingByTradingValueAverage(context.Background(), date, 1, 10, nil)
	require.NoError(t, err)
	assert.Zero(t, calendar.calls)
}

func TestRankingUsecase_InsufficientHistoryIsEmptyNotError(t *testing.T) {
	t.Parallel()

	ranking := &mockRankingRepository{}
	calendar := &mockCalendar{} // beforeFn nil -> insufficient history
	u := NewRankingUsecase(ranking, calendar)
	ctx := context.Background()

	items, err := u.GetRankingByTradingValueAverage(ctx, day(2024, 1, 5), 60, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = u.GetRankingByPriceChangeFromDays(ctx, day(2024, 1, 5), 60, 10, nil, entity.DirectionGainers)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = u.GetRankingByPeriodHigh(ctx, day(2024, 1, 5), 60, 10, nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Zero(t, ranking.calls)
}
