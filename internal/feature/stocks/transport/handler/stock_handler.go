// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d25037/trading25-sub006/internal/api"
	"github.com/d25037/trading25-sub006/internal/feature/stocks/domain/entity"
	"github.com/d25037/trading25-sub006/internal/feature/stocks/transport/http/dto"
	"github.com/d25037/trading25-sub006/internal/feature/stocks/usecase"
	"github.com/d25037/trading25-sub006/internal/shared/market"
)

// StockUsecase は銘柄マスタ照会ユースケースのインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StockUsecase interface {
	GetStocksBySector(ctx context.Context, q usecase.SectorQuery) ([]entity.StockSummary, error)
	SearchStocks(ctx context.Context, query string, limit int) ([]entity.Stock, error)
}

// StockHandler は銘柄マスタ照会のHTTPリクエストを処理します。
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler は指定されたusecaseでStockHandlerの新しいインスタンスを生成します。
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Search は銘柄コードまたは会社名の部分一致で銘柄を検索します。
//
// エンドポイント例:
// GET /stocks/search?q=トヨタ&limit=20
func (h *StockHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	stocks, err := h.uc.SearchStocks(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, dto.NewStockResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// BySector はセクターと市場区分で絞り込んだ銘柄サマリーの一覧を返します。
//
// エンドポイント例:
// GET /stocks/sector?sector33Name=輸送用機器&market=prime&sortBy=changePercentage&sortOrder=desc
func (h *StockHandler) BySector(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	q := usecase.SectorQuery{
		Sector17Name: c.Query("sector17Name"),
		Sector33Name: c.Query("sector33Name"),
		MarketCodes:  c.QueryArray("market"),
		SortBy:       c.DefaultQuery("sortBy", usecase.SortByCode),
		SortOrder:    c.DefaultQuery("sortOrder", "asc"),
		Limit:        limit,
	}
	summaries, err := h.uc.GetStocksBySector(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.StockSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.NewStockSummaryResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// writeError はusecase層のエラーをHTTPステータスに振り分けます。
func writeError(c *gin.Context, err error) {
	var marketErr *market.InvalidMarketCodeError
	if errors.As(err, &marketErr) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
}
