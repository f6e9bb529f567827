package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/cart"
	"github.com/iliyamo/movie-store/internal/config"
	"github.com/iliyamo/movie-store/internal/database"
	"github.com/iliyamo/movie-store/internal/handler"
	"github.com/iliyamo/movie-store/internal/middleware"
	"github.com/iliyamo/movie-store/internal/repository"
	"github.com/iliyamo/movie-store/internal/router"
)

func main() {
	_ = godotenv.Load() // best effort; real envs set variables directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the session cart, so it is mandatory; the cache and
	// rate limiter would merely degrade without it.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis unavailable: the cart store requires redis")
	}

	movieRepo := repository.NewMovieRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	ratingRepo := repository.NewRatingRepo(db)
	petitionRepo := repository.NewPetitionRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)

	carts := cart.NewStore(rdb, cfg.CartTTL)

	authH := handler.NewAuthHandler(cfg, userRepo)
	movieH := handler.NewMovieHandler(movieRepo, reviewRepo)
	reviewH := handler.NewReviewHandler(movieRepo, reviewRepo)
	ratingH := handler.NewRatingHandler(movieRepo, ratingRepo)
	petitionH := handler.NewPetitionHandler(petitionRepo)
	cartH := handler.NewCartHandler(movieRepo, carts)
	checkoutH := handler.NewCheckoutHandler(movieRepo, orderRepo, carts)
	orderH := handler.NewOrderHandler(orderRepo)
	trendingH := handler.NewTrendingHandler(orderRepo)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	optionalJWT := middleware.JWTOptional(cfg.JWTSecret)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, movieH, petitionH, trendingH, cacheMW, optionalJWT)
	router.RegisterCustomer(e, cfg.JWTSecret, cartH, checkoutH, orderH, reviewH, ratingH, petitionH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
