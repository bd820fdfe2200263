package dto

import (
	"github.com/oapi-codegen/runtime/types"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
)

// DailyBarResponse は個別銘柄の日足データのレスポンスDTOです。
type DailyBarResponse struct {
	Code             string     `json:"code"`
	Date             types.Date `json:"date"`
	Open             float64    `json:"open"`
	High             float64    `json:"high"`
	Low              float64    `json:"low"`
	Close            float64    `json:"close"`
	Volume           int64      `json:"volume"`
	AdjustmentFactor float64    `json:"adjustmentFactor"`
}

// NewDailyBarResponse はドメインエンティティからレスポンスDTOを生成します。
func NewDailyBarResponse(b entity.DailyBar) DailyBarResponse {
	return DailyBarResponse{
		Code:             b.Code,
		Date:             types.Date{Time: b.Date},
		Open:             b.Open,
		High:             b.High,
		Low:              b.Low,
		Close:            b.Close,
		Volume:           b.Volume,
		AdjustmentFactor: b.AdjustmentFactor,
	}
}

// IndexBarResponse はTOPIX指数の日足データのレスポンスDTOです。
type IndexBarResponse struct {
	Date  types.Date `json:"date"`
	Open  float64    `json:"open"`
	High  float64    `json:"high"`
	Low   float64    `json:"low"`
	Close float64    `json:"close"`
}

// NewIndexBarResponse はドメインエンティティからレスポンスDTOを生成します。
func NewIndexBarResponse(b entity.IndexBar) IndexBarResponse {
	return IndexBarResponse{
		Date:  types.Date{Time: b.Date},
		Open:  b.Open,
		High:  b.High,
		Low:   b.Low,
		Close: b.Close,
	}
}

// RankingItemResponse はランキング1行分のレスポンスDTOです。
// ランキングの種類によって使われないフィールドはomitemptyで省略されます。
type RankingItemResponse struct {
	Rank                int      `json:"rank"`
	Code                string   `json:"code"`
	CompanyName         string   `json:"companyName"`
	MarketCode          string   `json:"marketCode"`
	Sector33Name        string   `json:"sector33Name"`
	CurrentPrice        float64  `json:"currentPrice"`
	Volume              int64    `json:"volume"`
	TradingValue        *float64 `json:"tradingValue,omitempty"`
	TradingValueAverage *float64 `json:"tradingValueAverage,omitempty"`
	PreviousPrice       *float64 `json:"previousPrice,omitempty"`
	BasePrice           *float64 `json:"basePrice,omitempty"`
	ChangeAmount        *float64 `json:"changeAmount,omitempty"`
	ChangePercentage    *float64 `json:"changePercentage,omitempty"`
	LookbackDays        int      `json:"lookbackDays,omitempty"`
}

// NewRankingItemResponse はドメインエンティティからレスポンスDTOを生成します。
func NewRankingItemResponse(it entity.RankingItem) RankingItemResponse {
	return RankingItemResponse{
		Rank:                it.Rank,
		Code:                it.Code,
		CompanyName:         it.CompanyName,
		MarketCode:          it.MarketCode,
		Sector33Name:        it.Sector33Name,
		CurrentPrice:        it.CurrentPrice,
		Volume:              it.Volume,
		TradingValue:        it.TradingValue,
		TradingValueAverage: it.TradingValueAverage,
		PreviousPrice:       it.PreviousPrice,
		BasePrice:           it.BasePrice,
		ChangeAmount:        it.ChangeAmount,
		ChangePercentage:    it.ChangePercentage,
		LookbackDays:        it.LookbackDays,
	}
}

// NewRankingResponse はランキング全件をDTOのスライスに変換します。
func NewRankingResponse(items []entity.RankingItem) []RankingItemResponse {
	out := make([]RankingItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewRankingItemResponse(it))
	}
	return out
}
