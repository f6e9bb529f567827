package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/cart"
	"github.com/iliyamo/movie-store/internal/repository"
)

// CartHandler implements the session cart endpoints.  The cart lives
// in Redis keyed by the authenticated user and holds movie quantities
// until checkout turns it into an order.
type CartHandler struct {
	Movies *repository.MovieRepo
	Carts  *cart.Store
}

// maxCartQuantity bounds a single cart line.  Keeps any order total
// far below uint64 range even at maximum catalog prices.
const maxCartQuantity = 1_000_000

func NewCartHandler(movies *repository.MovieRepo, carts *cart.Store) *CartHandler {
	if movies == nil || carts == nil {
		panic("nil dependency passed to NewCartHandler")
	}
	return &CartHandler{Movies: movies, Carts: carts}
}

type cartItemResp struct {
	Movie    movieResp `json:"movie"`
	Quantity uint64    `json:"quantity"`
}

type cartResp struct {
	Items      []cartItemResp `json:"items"`
	TotalCents uint64         `json:"total_cents"`
}

// buildCartResp joins the cart against the catalog and computes the
// total.  Cart entries whose movie no longer exists are left out.
func (h *CartHandler) buildCartResp(c echo.Context, userID uint64) (cartResp, error) {
	ctx := c.Request().Context()
	crt, err := h.Carts.Get(ctx, userID)
	if err != nil {
		return cartResp{}, err
	}
	resp := cartResp{Items: []cartItemResp{}}
	ids := crt.MovieIDs()
	if len(ids) == 0 {
		return resp, nil
	}
	movies, err := h.Movies.GetByIDs(ctx, ids)
	if err != nil {
		return cartResp{}, err
	}
	for _, m := range movies {
		resp.Items = append(resp.Items, cartItemResp{
			Movie:    toMovieResp(m),
			Quantity: crt.Quantity(m.ID),
		})
	}
	resp.TotalCents = cart.Total(crt, movies)
	return resp, nil
}

// View handles GET /v1/cart.
func (h *CartHandler) View(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resp, err := h.buildCartResp(c, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Add handles POST /v1/cart/:id.  The quantity arrives as a string
// form field; it must parse as a positive integer here even though
// the total calculator tolerates junk already stored.  Adding the
// same movie again overwrites the stored quantity.
func (h *CartHandler) Add(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req struct {
		Quantity string `json:"quantity" form:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Quantity = strings.TrimSpace(req.Quantity)
	n, err := strconv.ParseUint(req.Quantity, 10, 64)
	if err != nil || n == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a positive integer"})
	}
	if n > maxCartQuantity {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity too large"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if err := h.Carts.Set(ctx, userID, movieID, req.Quantity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update cart"})
	}

	// Respond with the updated cart, mirroring the redirect-to-cart
	// flow of a storefront UI.
	resp, err := h.buildCartResp(c, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load cart"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Clear handles DELETE /v1/cart.
func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Carts.Clear(c.Request().Context(), userID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to clear cart"})
	}
	return c.NoContent(http.StatusNoContent)
}
