package entity

// RankingDirection selects the sort direction of a price-change leaderboard.
type RankingDirection string

const (
	// DirectionGainers sorts by change percentage descending.
	DirectionGainers RankingDirection = "gainers"
	// DirectionLosers sorts by change percentage ascending.
	DirectionLosers RankingDirection = "losers"
)

// RankingItem is one row of an engine-produced leaderboard. It is transient:
// constructed per query, never persisted. Metric fields are pointers because
// each ranking type populates a different subset.
type RankingItem struct {
	Rank         int    // 1-based position in the returned ordering
	Code         string
	CompanyName  string
	MarketCode   string
	Sector33Name string
	CurrentPrice float64
	Volume       int64

	TradingValue        *float64 // close × volume on the target date
	TradingValueAverage *float64 // rolling average of trading value
	PreviousPrice       *float64 // close at the previous trading session
	BasePrice           *float64 // close at the session lookbackDays before
	ChangeAmount        *float64
	ChangePercentage    *float64 // plain (Δ/base)×100, not annualized
	LookbackDays        int      // trailing window in sessions, 0 when not applicable
}
