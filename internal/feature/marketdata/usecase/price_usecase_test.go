package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
)

// mockPriceRepository はPriceRepositoryインターフェースのモック実装です。
type mockPriceRepository struct {
	calls int

	priceAtDateFn func(ctx context.Context, code string, date time.Time) (*entity.DailyBar, error)
	indexBarsFn   func(ctx context.Context, from, to time.Time) ([]entity.IndexBar, error)
}

func (m *mockPriceRepository) PriceAtDate(ctx context.Context, code string, date time.Time) (*entity.DailyBar, error) {
	m.calls++
	if m.priceAtDateFn != nil {
		return m.priceAtDateFn(ctx, code, date)
	}
	return nil, nil
}

func (m *mockPriceRepository) PricesAtDates(ctx context.Context, code string, dates []time.Time) (map[string]entity.DailyBar, error) {
	m.calls++
	return map[string]entity.DailyBar{}, nil
}

func (m *mockPriceRepository) IndexBars(ctx context.Context, from, to time.Time) ([]entity.IndexBar, error) {
	m.calls++
	if m.indexBarsFn != nil {
		return m.indexBarsFn(ctx, from, to)
	}
	return []entity.IndexBar{}, nil
}

func TestPriceUsecase_GetPriceAtDate_ZeroDateUsesLatest(t *testing.T) {
	t.Parallel()

	latest := day(2024, 2, 1)
	calendar := &mockCalendar{
		latestFn: func(ctx context.Context) (*time.Time, error) { return datePtr(latest), nil },
	}
	repo := &mockPriceRepository{
		priceAtDateFn: func(ctx context.Context, code string, date time.Time) (*entity.DailyBar, error) {
			assert.Equal(t, "7203", code)
			assert.Equal(t, latest, date)
			return &entity.DailyBar{Code: code, Date: date, Close: 2710}, nil
		},
	}
	u := NewPriceUsecase(repo, calendar)

	bar, err := u.GetPriceAtDate(context.Background(), "7203", time.Time{})
	require.NoError(t, err)
	require.NotNil(t, bar)
	assert.Equal(t, 2710.0, bar.Close)
}

func TestPriceUsecase_GetPriceAtDate_EmptyStoreReturnsNil(t *testing.T) {
	t.Parallel()

	repo := &mockPriceRepository{}
	u := NewPriceUsecase(repo, &mockCalendar{})

	bar, err := u.GetPriceAtDate(context.Background(), "7203", time.Time{})
	require.NoError(t, err)
	assert.Nil(t, bar)
	assert.Zero(t, repo.calls, "no price lookup without a trading date")
}

func TestPriceUsecase_GetIndexBars_DefaultsRange(t *testing.T) {
	t.Parallel()

	repo := &mockPriceRepository{
		indexBarsFn: func(ctx context.Context, from, to time.Time) ([]entity.IndexBar, error) {
			assert.False(t, from.IsZero())
			assert.False(t, to.IsZero())
			assert.InDelta(t, float64(DefaultIndexRangeDays), to.Sub(from).Hours()/24, 1)
			return []entity.IndexBar{}, nil
		},
	}
	u := NewPriceUsecase(repo, &mockCalendar{})

	_, err := u.GetIndexBars(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}
