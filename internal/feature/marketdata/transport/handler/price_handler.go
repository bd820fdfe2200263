package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d25037/trading25-sub006/internal/api"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/transport/http/dto"
)

// PriceUsecase は株価参照ユースケースのインターフェースを定義します。
type PriceUsecase interface {
	GetPriceAtDate(ctx context.Context, code string, date time.Time) (*entity.DailyBar, error)
	GetPricesAtDates(ctx context.Context, code string, dates []time.Time) (map[string]entity.DailyBar, error)
	GetIndexBars(ctx context.Context, from, to time.Time) ([]entity.IndexBar, error)
}

// PriceHandler は株価参照のHTTPリクエストを処理します。
type PriceHandler struct {
	uc PriceUsecase
}

// NewPriceHandler は指定されたusecaseでPriceHandlerの新しいインスタンスを生成します。
func NewPriceHandler(uc PriceUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// GetPrice は銘柄の指定日時点の株価をJSONで返します。
// dateが非営業日の場合は直前の営業日の株価を返します。
// datesパラメータ（カンマ区切り）が指定された場合は複数日付を一括解決し、
// 日付文字列をキーとしたマップを返します。
//
// エンドポイント例:
// GET /prices/7203?date=2024-02-01
// GET /prices/7203?dates=2024-01-15,2024-02-01
func (h *PriceHandler) GetPrice(c *gin.Context) {
	code := c.Param("code")

	if raw := c.Query("dates"); raw != "" {
		dates, ok := parseDateList(c, raw)
		if !ok {
			return
		}
		bars, err := h.uc.GetPricesAtDates(c.Request.Context(), code, dates)
		if err != nil {
			respondError(c, err)
			return
		}
		out := make(map[string]dto.DailyBarResponse, len(bars))
		for key, bar := range bars {
			out[key] = dto.NewDailyBarResponse(bar)
		}
		c.JSON(http.StatusOK, out)
		return
	}

	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	bar, err := h.uc.GetPriceAtDate(c.Request.Context(), code, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if bar == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no price data for " + code})
		return
	}
	c.JSON(http.StatusOK, dto.NewDailyBarResponse(*bar))
}

// GetTopix はTOPIX指数の日足をJSONで返します。
// from/to未指定の場合は直近1年分を返します。
//
// エンドポイント例:
// GET /topix?from=2024-01-01&to=2024-02-01
func (h *PriceHandler) GetTopix(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	bars, err := h.uc.GetIndexBars(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.IndexBarResponse, 0, len(bars))
	for _, bar := range bars {
		out = append(out, dto.NewIndexBarResponse(bar))
	}
	c.JSON(http.StatusOK, out)
}

// parseDateList はカンマ区切りの日付リストを解釈します。
// 形式不正の要素があれば400を書き込み、okをfalseで返します。
func parseDateList(c *gin.Context, raw string) ([]time.Time, bool) {
	parts := strings.Split(raw, ",")
	dates := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(p))
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "dates must be a comma separated list of YYYY-MM-DD values"})
			return nil, false
		}
		dates = append(dates, date)
	}
	return dates, true
}
