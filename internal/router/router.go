package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/handler"
	"github.com/iliyamo/movie-store/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers and monitoring to verify the service
// is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints and the protected /v1/me
// route.  Unauthenticated operations live under /v1/auth; /v1/me
// requires a valid access token signed with jwtSecret.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints:
// catalog listing and detail, the petition listing and the trending
// report.  The catalog routes sit behind the response cache; the
// petition listing uses optional JWT so logged-in users get their
// user_has_voted flags.  The trending report is deliberately
// uncached: it recomputes from the ledger on every request.
func RegisterPublic(e *echo.Echo, m *handler.MovieHandler, p *handler.PetitionHandler, t *handler.TrendingHandler, cacheMW, optionalJWT echo.MiddlewareFunc) {
	e.GET("/v1/movies", m.Index, cacheMW)
	e.GET("/v1/movies/:id", m.Show, cacheMW)
	e.GET("/v1/petitions", p.List, optionalJWT)
	e.GET("/v1/analytics/trending", t.Trending)
}

// RegisterCustomer registers all authenticated storefront routes:
// cart manipulation, checkout, order history, reviews, ratings and
// petition create/vote.  Every route in this group runs the JWTAuth
// middleware before its handler.
func RegisterCustomer(e *echo.Echo, jwtSecret string,
	cart *handler.CartHandler,
	checkout *handler.CheckoutHandler,
	orders *handler.OrderHandler,
	reviews *handler.ReviewHandler,
	ratings *handler.RatingHandler,
	petitions *handler.PetitionHandler,
) {
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))

	// Cart and checkout
	auth.GET("/cart", cart.View)
	auth.POST("/cart/:id", cart.Add)
	auth.DELETE("/cart", cart.Clear)
	auth.POST("/checkout", checkout.Checkout)
	auth.GET("/my-orders", orders.ListMine)

	// Reviews and ratings
	auth.POST("/movies/:id/reviews", reviews.Create)
	auth.PUT("/movies/:id/reviews/:reviewID", reviews.Update)
	auth.DELETE("/movies/:id/reviews/:reviewID", reviews.Delete)
	auth.POST("/movies/:id/reviews/:reviewID/report", reviews.Report)
	auth.POST("/movies/:id/rating", ratings.Rate)

	// Petitions
	auth.POST("/petitions", petitions.Create)
	auth.POST("/petitions/:id/vote", petitions.Vote)
}
