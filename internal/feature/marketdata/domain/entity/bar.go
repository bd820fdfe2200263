// Package entity defines the domain models for the marketdata feature.
package entity

import "time"

// DateKeyFormat is the canonical day-granularity key format used for maps
// and cache keys. Trading dates never carry a time component.
const DateKeyFormat = "2006-01-02"

// DateKey returns the canonical map key for a trading date.
func DateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

// DailyBar represents one trading day's OHLCV for one stock.
type DailyBar struct {
	Code             string    // 4-5 character exchange code (e.g., "7203")
	Date             time.Time // Calendar date at midnight UTC, no time component
	Open             float64
	High             float64
	Low              float64
	Close            float64
	Volume           int64
	AdjustmentFactor float64 // Multiplicative split/dividend adjustment, 1.0 when the source has none
}

// IndexBar represents one trading day of the TOPIX benchmark series.
// It is keyed by date alone and is never ranked.
type IndexBar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}
