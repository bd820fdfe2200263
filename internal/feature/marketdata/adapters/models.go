// Package adapters はmarketdataフィーチャーのリポジトリ実装を提供します。
// 格納層の方言を差し替え可能に保つため、行オブジェクトは明示的な
// マッピング関数でドメインエンティティへ変換します。
package adapters

import (
	"time"

	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
)

// StockDataModel maps the stock_data table: one bar per stock per calendar
// date. The table is append-only from this package's perspective; it is
// populated by a separate ingestion pipeline.
type StockDataModel struct {
	Code string    `gorm:"size:8;primaryKey"`
	Date time.Time `gorm:"primaryKey"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`

	AdjustmentFactor *float64
}

func (StockDataModel) TableName() string {
	return "stock_data"
}

// TopixDataModel maps the topix_data table: the TOPIX benchmark series,
// keyed by date alone.
type TopixDataModel struct {
	Date time.Time `gorm:"primaryKey"`

	Open  float64 `gorm:"not null"`
	High  float64 `gorm:"not null"`
	Low   float64 `gorm:"not null"`
	Close float64 `gorm:"not null"`
}

func (TopixDataModel) TableName() string {
	return "topix_data"
}

func toDailyBar(m StockDataModel) entity.DailyBar {
	adj := 1.0
	if m.AdjustmentFactor != nil {
		adj = *m.AdjustmentFactor
	}
	return entity.DailyBar{
		Code:             m.Code,
		Date:             m.Date,
		Open:             m.Open,
		High:             m.High,
		Low:              m.Low,
		Close:            m.Close,
		Volume:           m.Volume,
		AdjustmentFactor: adj,
	}
}

func toIndexBar(m TopixDataModel) entity.IndexBar {
	return entity.IndexBar{
		Date:  m.Date,
		Open:  m.Open,
		High:  m.High,
		Low:   m.Low,
		Close: m.Close,
	}
}

// dayOf normalizes a caller-supplied date to midnight UTC so that stored
// bars and query parameters compare on the calendar day alone.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
