// Package usecase implements the business logic for stock filtering and search.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/d25037/trading25-sub006/internal/feature/stocks/domain/entity"
	"github.com/d25037/trading25-sub006/internal/shared/market"
)

const (
	// DefaultSearchLimit はフリーテキスト検索のデフォルト返却件数です。
	DefaultSearchLimit = 20
	// DefaultSectorLimit はセクター絞り込みのデフォルト返却件数です。
	DefaultSectorLimit = 100
	// MaxListLimit は一覧系の最大返却件数です。
	MaxListLimit = 1000
)

// Sort field names accepted by SectorQuery.SortBy. Anything else falls back
// to SortByCode.
const (
	SortByCode             = "code"
	SortByChangePercentage = "changePercentage"
)

// SectorQuery carries the caller-supplied sector filter parameters.
type SectorQuery struct {
	Sector17Name string
	Sector33Name string
	MarketCodes  []string
	SortBy       string
	SortOrder    string // "asc" or "desc"
	Limit        int
}

// StockRepository abstracts the stock metadata reads. FindBySector receives
// the two trading dates already resolved by the calendar.
type StockRepository interface {
	FindBySector(ctx context.Context, q SectorQuery, latest, previous time.Time) ([]entity.StockSummary, error)
	Search(ctx context.Context, query string, limit int) ([]entity.Stock, error)
}

// TradingCalendar is the slice of the marketdata calendar this feature
// consumes. Following Go convention the interface is defined here, on the
// consumer side.
type TradingCalendar interface {
	LatestTradingDate(ctx context.Context) (*time.Time, error)
	PreviousTradingDate(ctx context.Context, date time.Time) (*time.Time, error)
}

// StockUsecase provides sector filtering with derived change fields and
// free-text search over the stock universe.
type StockUsecase struct {
	repo     StockRepository
	calendar TradingCalendar
}

// NewStockUsecase はStockUsecaseの新しいインスタンスを生成します。
func NewStockUsecase(repo StockRepository, calendar TradingCalendar) *StockUsecase {
	return &StockUsecase{repo: repo, calendar: calendar}
}

// GetStocksBySector はセクター・市場で絞り込んだ銘柄一覧を、最新終値と
// 前営業日比とともに返します。取引日が2日分存在しない場合は空リストです。
func (u *StockUsecase) GetStocksBySector(ctx context.Context, q SectorQuery) ([]entity.StockSummary, error) {
	if err := market.Validate(q.MarketCodes); err != nil {
		return nil, err
	}
	if q.Limit <= 0 || q.Limit > MaxListLimit {
		q.Limit = DefaultSectorLimit
	}

	latest, err := u.calendar.LatestTradingDate(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return []entity.StockSummary{}, nil
	}
	previous, err := u.calendar.PreviousTradingDate(ctx, *latest)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		// changePercentage needs two sessions; with one stored date there is
		// nothing meaningful to derive.
		return []entity.StockSummary{}, nil
	}

	return u.repo.FindBySector(ctx, q, *latest, *previous)
}

// SearchStocks は銘柄コード・社名（和英）に対する部分一致検索を行います。
// 空白のみのクエリはストアに問い合わせず空リストを返します。
func (u *StockUsecase) SearchStocks(ctx context.Context, query string, limit int) ([]entity.Stock, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Stock{}, nil
	}
	if limit <= 0 || limit > MaxListLimit {
		limit = DefaultSearchLimit
	}
	return u.repo.Search(ctx, query, limit)
}
