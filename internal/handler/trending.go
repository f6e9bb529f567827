package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/analytics"
	"github.com/iliyamo/movie-store/internal/repository"
)

// TrendingHandler serves the per-state trending report.  The report
// reads only the order/item ledger and is recomputed in full on every
// request.
type TrendingHandler struct {
	Orders *repository.OrderRepo
}

func NewTrendingHandler(orders *repository.OrderRepo) *TrendingHandler {
	if orders == nil {
		panic("nil repository passed to NewTrendingHandler")
	}
	return &TrendingHandler{Orders: orders}
}

type trendingResp struct {
	Success           bool                            `json:"success"`
	Data              map[string]analytics.StateTrend `json:"data"`
	Message           string                          `json:"message"`
	Timestamp         string                          `json:"timestamp"`
	APIVersion        string                          `json:"api_version"`
	TotalStates       int                             `json:"total_states"`
	CalculationMethod string                          `json:"calculation_method"`
}

// Trending handles GET /v1/analytics/trending.  For each of the 50 US
// states it reports the best-selling movie and whether its recent
// volume makes it trending.
func (h *TrendingHandler) Trending(c echo.Context) error {
	rows, err := h.Orders.SalesByState(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   "failed to load sales data",
		})
	}

	now := time.Now().UTC()
	data := analytics.TrendingByState(rows, now)

	return c.JSON(http.StatusOK, trendingResp{
		Success:           true,
		Data:              data,
		Message:           "trending movies calculated successfully",
		Timestamp:         now.Format(time.RFC3339),
		APIVersion:        "1.0",
		TotalStates:       len(analytics.States),
		CalculationMethod: "total_quantity_with_recent_trend",
	})
}
