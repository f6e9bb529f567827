package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-store/internal/cart"
	"github.com/iliyamo/movie-store/internal/repository"
)

func newTestCart() *CartHandler {
	carts := cart.NewStore(redis.NewClient(&redis.Options{Addr: "localhost:6379"}), time.Hour)
	return NewCartHandler(repository.NewMovieRepo(nil), carts)
}

func TestCartAddRejectsBadQuantity(t *testing.T) {
	e := echo.New()
	h := newTestCart()

	for _, qty := range []string{"", "0", "-2", "abc", "1.5"} {
		req := httptest.NewRequest(http.MethodPost, "/v1/cart/5", strings.NewReader(`{"quantity":"`+qty+`"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("5")
		c.Set("user_id", uint64(7))

		require.NoError(t, h.Add(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, "quantity %q must be rejected", qty)
		require.Contains(t, rec.Body.String(), "quantity must be a positive integer")
	}
}

func TestCartAddRejectsOversizedQuantity(t *testing.T) {
	e := echo.New()
	h := newTestCart()

	// Large enough that price * quantity would wrap uint64.
	req := httptest.NewRequest(http.MethodPost, "/v1/cart/5", strings.NewReader(`{"quantity":"36893488147419103"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "quantity too large")
}

func TestCartAddRejectsBadMovieID(t *testing.T) {
	e := echo.New()
	h := newTestCart()

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/abc", strings.NewReader(`{"quantity":"1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid movie id")
}

func TestCartEndpointsRequireUser(t *testing.T) {
	e := echo.New()
	h := newTestCart()

	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.View(e.NewContext(req, rec)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
