package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CandleHandler struct {
	uc      *usecase.CandleUsecase
	markets []string
}

func NewCandleHandler(uc *usecase.CandleUsecase, markets []string) *CandleHandler {
	return &CandleHandler{uc: uc, markets: markets}
}

func (h *CandleHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/candles/:market", h.recent)
	e.GET("/api/tickers", h.tickers)
}

func (h *CandleHandler) recent(c echo.Context) error {
	market := c.Param("market")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.uc.GetRecent(c.Request().Context(), market, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 対応しているマーケットの一覧
func (h *CandleHandler) tickers(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"markets": h.markets})
}
