package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d25037/trading25-sub006/internal/api"
	"github.com/d25037/trading25-sub006/internal/feature/marketdata/domain"
	"github.com/d25037/trading25-sub006/internal/shared/market"
)

// respondError はusecase層のエラーをHTTPステータスに振り分けます。
// 入力不正（市場コードや日数の検証エラー）は400、それ以外は500を返します。
func respondError(c *gin.Context, err error) {
	var marketErr *market.InvalidMarketCodeError
	var argErr *domain.InvalidArgumentError
	if errors.As(err, &marketErr) || errors.As(err, &argErr) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
}
