// Package adapters はstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/d25037/trading25-sub006/internal/feature/stocks/domain/entity"
	"github.com/d25037/trading25-sub006/internal/feature/stocks/usecase"
	"github.com/d25037/trading25-sub006/internal/shared/market"
)

// stockSQLite はStockRepositoryインターフェースのGORM実装です。
type stockSQLite struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockSQLite)(nil)

// NewStockRepository は指定されたDB接続でstockSQLiteリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockSQLite {
	return &stockSQLite{db: db}
}

// sectorRow is the flat scan target for FindBySector; mapped field-by-field
// into the domain entity.
type sectorRow struct {
	Code               string     `gorm:"column:code"`
	CompanyName        string     `gorm:"column:company_name"`
	CompanyNameEnglish *string    `gorm:"column:company_name_english"`
	MarketCode         string     `gorm:"column:market_code"`
	MarketName         string     `gorm:"column:market_name"`
	Sector17Code       string     `gorm:"column:sector17_code"`
	Sector17Name       string     `gorm:"column:sector17_name"`
	Sector33Code       string     `gorm:"column:sector33_code"`
	Sector33Name       string     `gorm:"column:sector33_name"`
	ScaleCategory      *string    `gorm:"column:scale_category"`
	ListedDate         *time.Time `gorm:"column:listed_date"`
	CurrentPrice       float64    `gorm:"column:current_price"`
	ChangeAmount       float64    `gorm:"column:change_amount"`
	ChangePercentage   float64    `gorm:"column:change_percentage"`
}

// Explicit column list instead of s.* so schema changes fail loudly at the
// query instead of silently scanning zero values.
const sectorColumns = "s.code AS code, s.company_name AS company_name, " +
	"s.company_name_english AS company_name_english, s.market_code AS market_code, " +
	"s.market_name AS market_name, s.sector17_code AS sector17_code, " +
	"s.sector17_name AS sector17_name, s.sector33_code AS sector33_code, " +
	"s.sector33_name AS sector33_name, s.scale_category AS scale_category, " +
	"s.listed_date AS listed_date"

// sortColumns whitelists the sortable fields; the map value is the only text
// that ever reaches ORDER BY.
var sortColumns = map[string]string{
	usecase.SortByCode:             "s.code",
	usecase.SortByChangePercentage: "change_percentage",
}

// FindBySector は静的メタデータに最新終値と前営業日比を結合して返します。
// 最新取引日に足のない銘柄は結果に含まれません。
func (r *stockSQLite) FindBySector(ctx context.Context, sq usecase.SectorQuery, latest, previous time.Time) ([]entity.StockSummary, error) {
	q := r.db.WithContext(ctx).
		Table("stocks AS s").
		Select(sectorColumns+", cur.close AS current_price, "+
			"cur.close - prev.close AS change_amount, "+
			"(cur.close - prev.close) / prev.close * 100 AS change_percentage").
		Joins("JOIN stock_data cur ON cur.code = s.code AND cur.date = ?", latest).
		Joins("JOIN stock_data prev ON prev.code = s.code AND prev.date = ?", previous)

	if sq.Sector17Name != "" {
		q = q.Where("s.sector17_name = ?", sq.Sector17Name)
	}
	if sq.Sector33Name != "" {
		q = q.Where("s.sector33_name = ?", sq.Sector33Name)
	}
	q, err := market.ApplyFilter(q, "s.market_code", sq.MarketCodes)
	if err != nil {
		return nil, err
	}

	column, ok := sortColumns[sq.SortBy]
	if !ok {
		column = sortColumns[usecase.SortByCode]
	}
	dir := "ASC"
	if strings.EqualFold(sq.SortOrder, "desc") {
		dir = "DESC"
	}
	q = q.Order(column + " " + dir + ", s.code ASC")
	if sq.Limit > 0 {
		q = q.Limit(sq.Limit)
	}

	var rows []sectorRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.StockSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, toStockSummary(row))
	}
	return out, nil
}

// Search は銘柄コード・社名・英文社名に対する大文字小文字を区別しない
// 部分一致検索です。LIKEのワイルドカードはエスケープして literal 扱いにします。
func (r *stockSQLite) Search(ctx context.Context, query string, limit int) ([]entity.Stock, error) {
	pattern := "%" + escapeLike(query) + "%"

	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Where(`code LIKE ? ESCAPE '\'`+
			` OR LOWER(company_name) LIKE LOWER(?) ESCAPE '\'`+
			` OR LOWER(company_name_english) LIKE LOWER(?) ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("code ASC").
		Limit(limit).
		Find(&stocks).Error
	if err != nil {
		return nil, err
	}
	return stocks, nil
}

func toStockSummary(row sectorRow) entity.StockSummary {
	return entity.StockSummary{
		Stock: entity.Stock{
			Code:               row.Code,
			CompanyName:        row.CompanyName,
			CompanyNameEnglish: row.CompanyNameEnglish,
			MarketCode:         row.MarketCode,
			MarketName:         row.MarketName,
			Sector17Code:       row.Sector17Code,
			Sector17Name:       row.Sector17Name,
			Sector33Code:       row.Sector33Code,
			Sector33Name:       row.Sector33Name,
			ScaleCategory:      row.ScaleCategory,
			ListedDate:         row.ListedDate,
		},
		CurrentPrice:     row.CurrentPrice,
		ChangeAmount:     row.ChangeAmount,
		ChangePercentage: row.ChangePercentage,
	}
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
