// Package entity defines the domain models for the stocks feature.
package entity

import "time"

// Stock represents the static metadata of one listed issue. It is immutable
// from this engine's perspective; the ingestion pipeline owns writes.
// Column names are pinned because the sector fields contain digits and must
// match the ranking queries' join aliases exactly.
type Stock struct {
	Code               string     `gorm:"column:code;size:8;primaryKey"`
	CompanyName        string     `gorm:"column:company_name;size:255;not null"`
	CompanyNameEnglish *string    `gorm:"column:company_name_english;size:255"`
	MarketCode         string     `gorm:"column:market_code;size:16;not null;index"`
	MarketName         string     `gorm:"column:market_name;size:64"`
	Sector17Code       string     `gorm:"column:sector17_code;size:8"`
	Sector17Name       string     `gorm:"column:sector17_name;size:64"`
	Sector33Code       string     `gorm:"column:sector33_code;size:8"`
	Sector33Name       string     `gorm:"column:sector33_name;size:64;index"`
	ScaleCategory      *string    `gorm:"column:scale_category;size:64"`
	ListedDate         *time.Time `gorm:"column:listed_date"`
}

func (Stock) TableName() string {
	return "stocks"
}

// StockSummary joins static metadata with the latest available price and the
// change versus the previous trading session. Produced by the sector filter,
// never persisted.
type StockSummary struct {
	Stock
	CurrentPrice     float64
	ChangeAmount     float64
	ChangePercentage float64
}
