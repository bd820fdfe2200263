package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	stocksentity "github.com/d25037/trading25-sub006/internal/feature/stocks/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database with the engine's tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&stocksentity.Stock{}, &StockDataModel{}, &TopixDataModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// tradingDays returns n consecutive weekdays starting at start. The engine
// derives the calendar from stored bars, so skipping weekends here is enough
// to model the irregular session sequence.
func tradingDays(start time.Time, n int) []time.Time {
	days := make([]time.Time, 0, n)
	for cur := start; len(days) < n; cur = cur.AddDate(0, 0, 1) {
		if wd := cur.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, cur)
	}
	return days
}

func seedStock(t *testing.T, db *gorm.DB, code, name, marketCode, sector33Name string) {
	t.Helper()

	stock := &stocksentity.Stock{
		Code:         code,
		CompanyName:  name,
		MarketCode:   marketCode,
		Sector33Name: sector33Name,
	}
	require.NoError(t, db.Create(stock).Error, "failed to seed stock")
}

func seedBar(t *testing.T, db *gorm.DB, code string, date time.Time, close float64, volume int64) {
	t.Helper()

	bar := &StockDataModel{
		Code:   code,
		Date:   date,
		Open:   close * 0.99,
		High:   close * 1.01,
		Low:    close * 0.98,
		Close:  close,
		Volume: volume,
	}
	require.NoError(t, db.Create(bar).Error, "failed to seed bar")
}

func seedTopix(t *testing.T, db *gorm.DB, date time.Time, close float64) {
	t.Helper()

	bar := &TopixDataModel{
		Date:  date,
		Open:  close * 0.995,
		High:  close * 1.005,
		Low:   close * 0.99,
		Close: close,
	}
	require.NoError(t, db.Create(bar).Error, "failed to seed topix bar")
}

// seedTrendingPair seeds the canonical two-stock fixture: 7203 rising by 10
// per session from 2510, 6758 falling by 50 per session from 12990, over
// the 21 weekdays from 2024-01-04 through 2024-02-01.
func seedTrendingPair(t *testing.T, db *gorm.DB) []time.Time {
	t.Helper()

	seedStock(t, db, "7203", "トヨタ自動車", "prime", "輸送用機器")
	seedStock(t, db, "6758", "ソニーグループ", "prime", "電気機器")

	days := tradingDays(d(2024, time.January, 4), 21)
	for i, day := range days {
		seedBar(t, db, "7203", day, 2510+10*float64(i), 10000)
		seedBar(t, db, "6758", day, 12990-50*float64(i), 8000)
	}
	return days
}
