package dto

import (
	"github.com/oapi-codegen/runtime/types"

	"github.com/d25037/trading25-sub006/internal/feature/stocks/domain/entity"
)

// StockResponse は銘柄マスタ1件分のレスポンスDTOです。
type StockResponse struct {
	Code               string      `json:"code"`
	CompanyName        string      `json:"companyName"`
	CompanyNameEnglish *string     `json:"companyNameEnglish,omitempty"`
	MarketCode         string      `json:"marketCode"`
	MarketName         string      `json:"marketName"`
	Sector17Code       string      `json:"sector17Code"`
	Sector17Name       string      `json:"sector17Name"`
	Sector33Code       string      `json:"sector33Code"`
	Sector33Name       string      `json:"sector33Name"`
	ScaleCategory      *string     `json:"scaleCategory,omitempty"`
	ListedDate         *types.Date `json:"listedDate,omitempty"`
}

// NewStockResponse はドメインエンティティからレスポンスDTOを生成します。
func NewStockResponse(s entity.Stock) StockResponse {
	out := StockResponse{
		Code:               s.Code,
		CompanyName:        s.CompanyName,
		CompanyNameEnglish: s.CompanyNameEnglish,
		MarketCode:         s.MarketCode,
		MarketName:         s.MarketName,
		Sector17Code:       s.Sector17Code,
		Sector17Name:       s.Sector17Name,
		Sector33Code:       s.Sector33Code,
		Sector33Name:       s.Sector33Name,
		ScaleCategory:      s.ScaleCategory,
	}
	if s.ListedDate != nil {
		out.ListedDate = &types.Date{Time: *s.ListedDate}
	}
	return out
}

// StockSummaryResponse はセクター照会向けの銘柄サマリーのレスポンスDTOです。
// 銘柄マスタに最新営業日の株価と前営業日比を加えたものです。
type StockSummaryResponse struct {
	StockResponse
	CurrentPrice     float64 `json:"currentPrice"`
	ChangeAmount     float64 `json:"changeAmount"`
	ChangePercentage float64 `json:"changePercentage"`
}

// NewStockSummaryResponse はドメインエンティティからレスポンスDTOを生成します。
func NewStockSummaryResponse(s entity.StockSummary) StockSummaryResponse {
	return StockSummaryResponse{
		StockResponse:    NewStockResponse(s.Stock),
		CurrentPrice:     s.CurrentPrice,
		ChangeAmount:     s.ChangeAmount,
		ChangePercentage: s.ChangePercentage,
	}
}
