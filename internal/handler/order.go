package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/repository"
)

// OrderHandler lets customers review their purchase history.  Orders
// are immutable, so this is read-only.
type OrderHandler struct {
	Orders *repository.OrderRepo
}

func NewOrderHandler(orders *repository.OrderRepo) *OrderHandler {
	if orders == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders}
}

type orderResp struct {
	ID         uint64    `json:"id"`
	TotalCents uint64    `json:"total_cents"`
	State      string    `json:"state"`
	City       string    `json:"city,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListMine handles GET /v1/my-orders.  It returns the current user's
// orders newest first; an empty history yields an empty array.
func (h *OrderHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orders, err := h.Orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	items := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		items = append(items, orderResp{
			ID:         o.ID,
			TotalCents: o.TotalCents,
			State:      o.State,
			City:       o.City,
			CreatedAt:  o.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
