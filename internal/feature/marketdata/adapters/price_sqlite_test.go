package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceSQLite_PriceAtDate(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedTrendingPair(t, db)
	repo := NewPriceRepository(db)

	t.Run("exact trading date returns that bar", func(t *testing.T) {
		t.Parallel()

		bar, err := repo.PriceAtDate(context.Background(), "7203", d(2024, time.January, 5))
		require.NoError(t, err)
		require.NotNil(t, bar)
		assert.Equal(t, d(2024, time.January, 5), bar.Date)
		assert.Equal(t, 2520.0, bar.Close) // day index 1: 2510 + 10
	})

	t.Run("saturday resolves to the friday bar", func(t *testing.T) {
		t.Parallel()

		bar, err := repo.PriceAtDate(context.Background(), "7203", d(2024, time.January, 6))
		require.NoError(t, err)
		require.NotNil(t, bar)
		assert.Equal(t, d(2024, time.January, 5), bar.Date, "must pick the closest prior trade, never a future one")
	})

	t.Run("date before any history returns nil", func(t *testing.T) {
		t.Parallel()

		bar, err := repo.PriceAtDate(context.Background(), "7203", d(2024, time.January, 3))
		require.NoError(t, err)
		assert.Nil(t, bar)
	})

	t.Run("unknown code returns nil", func(t *testing.T) {
		t.Parallel()

		bar, err := repo.PriceAtDate(context.Background(), "9999", d(2024, time.January, 10))
		require.NoError(t, err)
		assert.Nil(t, bar)
	})

	t.Run("missing adjustment factor defaults to 1.0", func(t *testing.T) {
		t.Parallel()

		bar, err := repo.PriceAtDate(context.Background(), "6758", d(2024, time.January, 4))
		require.NoError(t, err)
		require.NotNil(t, bar)
		assert.Equal(t, 1.0, bar.AdjustmentFactor)
	})
}

func TestPriceSQLite_PricesAtDates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedTrendingPair(t, db)
	repo := NewPriceRepository(db)

	t.Run("empty input returns empty map without querying", func(t *testing.T) {
		t.Parallel()

		got, err := repo.PricesAtDates(context.Background(), "7203", nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("each date resolves independently with the closest-prior rule", func(t *testing.T) {
		t.Parallel()

		targets := []time.Time{
			d(2024, time.January, 5),  // exact
			d(2024, time.January, 6),  // saturday -> Jan 5
			d(2024, time.January, 14), // sunday -> Jan 12
			d(2024, time.February, 1), // exact, last session
		}

		got, err := repo.PricesAtDates(context.Background(), "7203", targets)
		require.NoError(t, err)
		require.Len(t, got, 4)

		assert.Equal(t, d(2024, time.January, 5), got["2024-01-05"].Date)
		assert.Equal(t, d(2024, time.January, 5), got["2024-01-06"].Date)
		assert.Equal(t, d(2024, time.January, 12), got["2024-01-14"].Date)
		assert.Equal(t, d(2024, time.February, 1), got["2024-02-01"].Date)
	})

	t.Run("dates before history are absent from the map", func(t *testing.T) {
		t.Parallel()

		got, err := repo.PricesAtDates(context.Background(), "7203", []time.Time{
			d(2024, time.January, 2),
			d(2024, time.January, 10),
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		_, ok := got["2024-01-02"]
		assert.False(t, ok)
		assert.Equal(t, d(2024, time.January, 10), got["2024-01-10"].Date)
	})
}

func TestPriceSQLite_IndexBars(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	for i, day := range tradingDays(d(2024, time.January, 4), 5) {
		seedTopix(t, db, day, 2400+float64(i))
	}
	repo := NewPriceRepository(db)

	t.Run("returns the range in ascending order", func(t *testing.T) {
		t.Parallel()

		bars, err := repo.IndexBars(context.Background(), d(2024, time.January, 5), d(2024, time.January, 10))
		require.NoError(t, err)
		require.Len(t, bars, 4) // Jan 5, 8, 9, 10

		for i := 1; i < len(bars); i++ {
			assert.True(t, bars[i].Date.After(bars[i-1].Date))
		}
		assert.Equal(t, d(2024, time.January, 5), bars[0].Date)
		assert.Equal(t, d(2024, time.January, 10), bars[len(bars)-1].Date)
	})

	t.Run("empty range returns empty slice", func(t *testing.T) {
		t.Parallel()

		bars, err := repo.IndexBars(context.Background(), d(2023, time.June, 1), d(2023, time.June, 30))
		require.NoError(t, err)
		assert.Empty(t, bars)
	})
}
