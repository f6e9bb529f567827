package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-store/internal/config"
)

func TestRateKeyIgnoresUserIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/movies")

	before := rateKey("rl", c)
	require.Equal(t, "rl:203.0.113.9:/v1/movies", before)

	// The limiter runs ahead of authentication; a user id appearing
	// later in the chain must not change the bucket.
	c.Set("user_id", uint64(9))
	require.Equal(t, before, rateKey("rl", c))
}

func TestTokenBucketLimitsPerIP(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})

	cfg := config.RateLimitConfig{
		Enabled:        true,
		Prefix:         "rl",
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            time.Minute,
	}
	mw := NewTokenBucket(cfg, rdb)
	e := echo.New()
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/movies", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/movies")
		require.NoError(t, handler(c))
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do("198.51.100.1"))
	require.Equal(t, http.StatusOK, do("198.51.100.1"))
	require.Equal(t, http.StatusTooManyRequests, do("198.51.100.1"))

	// An exhausted bucket for one IP must not starve another.
	require.Equal(t, http.StatusOK, do("198.51.100.2"))
}
