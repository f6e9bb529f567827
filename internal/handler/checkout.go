package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/cart"
	"github.com/iliyamo/movie-store/internal/model"
	"github.com/iliyamo/movie-store/internal/queue"
	"github.com/iliyamo/movie-store/internal/repository"
	queue_publisher "github.com/iliyamo/movie-store/internal/service"
)

// CheckoutHandler converts the session cart into a durable order.
// The order and its items are written inside one transaction so a
// partial order can never be observed; the cart is cleared only after
// the commit succeeds.
type CheckoutHandler struct {
	Movies *repository.MovieRepo
	Orders *repository.OrderRepo
	Carts  *cart.Store
}

func NewCheckoutHandler(movies *repository.MovieRepo, orders *repository.OrderRepo, carts *cart.Store) *CheckoutHandler {
	if movies == nil || orders == nil || carts == nil {
		panic("nil dependency passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Movies: movies, Orders: orders, Carts: carts}
}

type checkoutReq struct {
	State string `json:"state" form:"state"`
	City  string `json:"city" form:"city"`
}

// Checkout handles POST /v1/checkout.  Preconditions: a non-empty
// cart and a non-blank state.  The total is computed from current
// catalog prices; each item snapshots the movie's price and name so
// later catalog changes never rewrite order history.  Checkout is not
// idempotent: resubmitting before the cart is cleared would create a
// second order.
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	state := strings.TrimSpace(req.State)
	city := strings.TrimSpace(req.City)
	if state == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Please select your state."})
	}

	ctx := c.Request().Context()
	crt, err := h.Carts.Get(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	ids := crt.MovieIDs()
	if len(ids) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}
	movies, err := h.Movies.GetByIDs(ctx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve cart movies"})
	}
	if len(movies) == 0 {
		// every cart entry pointed at a removed movie
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	total := cart.Total(crt, movies)

	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ord := &model.Order{
		UserID:     userID,
		TotalCents: total,
		State:      state,
		City:       city,
	}
	if err := h.Orders.CreateTx(ctx, tx, ord); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}

	items := make([]model.Item, 0, len(movies))
	for _, m := range movies {
		items = append(items, model.Item{
			OrderID:    ord.ID,
			MovieID:    m.ID,
			MovieName:  m.Name,
			PriceCents: m.PriceCents,
			Quantity:   crt.Quantity(m.ID),
		})
	}
	if err := h.Orders.CreateItemsBulkTx(ctx, tx, items); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order items"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	if err := h.Carts.Clear(ctx, userID); err != nil {
		// The order exists; a stale cart is the lesser problem.
		c.Logger().Warnf("checkout: failed to clear cart for user %d: %v", userID, err)
	}

	event := queue.OrderCompletedEvent{
		EventID:     uuid.NewString(),
		OrderID:     ord.ID,
		UserID:      userID,
		State:       state,
		City:        city,
		TotalCents:  total,
		CompletedAt: ord.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, it := range items {
		event.Items = append(event.Items, queue.OrderItemEvent{
			MovieID:    it.MovieID,
			MovieName:  it.MovieName,
			PriceCents: it.PriceCents,
			Quantity:   it.Quantity,
		})
	}
	// Best effort: the purchase stands even if the broker is down.
	_ = queue_publisher.PublishOrderCompleted(ctx, event)

	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":    ord.ID,
		"total_cents": total,
		"message":     fmt.Sprintf("Purchase completed! Order #%d from %s, %s", ord.ID, city, state),
	})
}
