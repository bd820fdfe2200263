// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d25037/trading25-sub006/internal/api"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain/entity"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/transport/http/dto"
)

// クエリパラメータのデフォルト値。
const (
	defaultAverageLookbackDays = "5"
	defaultChangeLookbackDays  = "1"
	defaultPeriodDays          = "240"
)

// RankingUsecase はランキング取得ユースケースのインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type RankingUsecase interface {
	GetRankingByTradingValue(ctx context.Context, date time.Time, limit int, marketCodes []string) ([]entity.RankingItem, error)
	GetRankingByTradingValueAverage(ctx context.Context, date time.Time, lookbackDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
	GetRankingByPriceChange(ctx context.Context, date time.Time, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error)
	GetRankingByPriceChangeFromDays(ctx context.Context, date time.Time, lookbackDays, limit int, marketCodes []string, direction entity.RankingDirection) ([]entity.RankingItem, error)
	GetRankingByPeriodHigh(ctx context.Context, date time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
	GetRankingByPeriodLow(ctx context.Context, date time.Time, periodDays, limit int, marketCodes []string) ([]entity.RankingItem, error)
}

// RankingHandler はランキング関連のHTTPリクエストを処理します。
type RankingHandler struct {
	uc RankingUsecase
}

// NewRankingHandler は指定されたusecaseでRankingHandlerの新しいインスタンスを生成します。
func NewRankingHandler(uc RankingUsecase) *RankingHandler {
	return &RankingHandler{uc: uc}
}

// TradingValue は指定日の売買代金ランキングをJSONで返します。
//
// エンドポイント例:
// GET /rankings/trading-value?date=2024-02-01&limit=50&market=prime
func (h *RankingHandler) TradingValue(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	limit := intQuery(c, "limit", "0")
	items, err := h.uc.GetRankingByTradingValue(c.Request.Context(), date, limit, marketQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRankingResponse(items))
}

// TradingValueAverage は直近N営業日の平均売買代金ランキングをJSONで返します。
//
// エンドポイント例:
// GET /rankings/trading-value-average?date=2024-02-01&lookbackDays=5&market=prime
func (h *RankingHandler) TradingValueAverage(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	lookbackDays := intQuery(c, "lookbackDays", defaultAverageLookbackDays)
	limit := intQuery(c, "limit", "0")
	items, err := h.uc.GetRankingByTradingValueAverage(c.Request.Context(), date, lookbackDays, limit, marketQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRankingResponse(items))
}

// PriceChange は騰落率ランキングをJSONで返します。
// lookbackDaysが1の場合は前営業日比、2以上の場合はN営業日前比の騰落率を返します。
//
// エンドポイント例:
// GET /rankings/price-change?date=2024-02-01&direction=gainers&lookbackDays=1
func (h *RankingHandler) PriceChange(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	direction, ok := parseDirectionQuery(c)
	if !ok {
		return
	}
	lookbackDays := intQuery(c, "lookbackDays", defaultChangeLookbackDays)
	limit := intQuery(c, "limit", "0")

	var items []entity.RankingItem
	var err error
	if lookbackDays == 1 {
		items, err = h.uc.GetRankingByPriceChange(c.Request.Context(), date, limit, marketQuery(c), direction)
	} else {
		items, err = h.uc.GetRankingByPriceChangeFromDays(c.Request.Context(), date, lookbackDays, limit, marketQuery(c), direction)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRankingResponse(items))
}

// PeriodHigh は期間内高値更新銘柄のランキングをJSONで返します。
//
// エンドポイント例:
// GET /rankings/period-high?date=2024-02-01&periodDays=240
func (h *RankingHandler) PeriodHigh(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	periodDays := intQuery(c, "periodDays", defaultPeriodDays)
	limit := intQuery(c, "limit", "0")
	items, err := h.uc.GetRankingByPeriodHigh(c.Request.Context(), date, periodDays, limit, marketQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRankingResponse(items))
}

// PeriodLow は期間内安値更新銘柄のランキングをJSONで返します。
//
// エンドポイント例:
// GET /rankings/period-low?date=2024-02-01&periodDays=240
func (h *RankingHandler) PeriodLow(c *gin.Context) {
	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	periodDays := intQuery(c, "periodDays", defaultPeriodDays)
	limit := intQuery(c, "limit", "0")
	items, err := h.uc.GetRankingByPeriodLow(c.Request.Context(), date, periodDays, limit, marketQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRankingResponse(items))
}

// parseDateQuery はdateクエリパラメータをYYYY-MM-DD形式で解釈します。
// 未指定の場合はゼロ値を返し、usecase側で最新営業日に解決されます。
// 形式不正の場合は400を書き込み、okをfalseで返します。
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: name + " must be in YYYY-MM-DD format"})
		return time.Time{}, false
	}
	return date, true
}

// parseDirectionQuery はdirectionクエリパラメータを解釈します。デフォルトはgainersです。
func parseDirectionQuery(c *gin.Context) (entity.RankingDirection, bool) {
	switch c.DefaultQuery("direction", string(entity.DirectionGainers)) {
	case string(entity.DirectionGainers):
		return entity.DirectionGainers, true
	case string(entity.DirectionLosers):
		return entity.DirectionLosers, true
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "direction must be gainers or losers"})
		return "", false
	}
}

// intQuery は整数クエリパラメータを解釈します。
// 変換に失敗した場合は0をusecaseに渡し、検証はusecase層で処理されます。
func intQuery(c *gin.Context, name, fallback string) int {
	v, _ := strconv.Atoi(c.DefaultQuery(name, fallback))
	return v
}

// marketQuery はmarketクエリパラメータ（複数指定可）を取得します。
func marketQuery(c *gin.Context) []string {
	return c.QueryArray("market")
}
