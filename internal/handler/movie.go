package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/model"
	"github.com/iliyamo/movie-store/internal/repository"
)

// MovieHandler exposes the public catalog browse endpoints.  Catalog
// writes happen outside this service, so everything here is read-only
// and safe to cache.
type MovieHandler struct {
	Movies  *repository.MovieRepo
	Reviews *repository.ReviewRepo
}

// NewMovieHandler constructs a MovieHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewMovieHandler(movies *repository.MovieRepo, reviews *repository.ReviewRepo) *MovieHandler {
	if movies == nil || reviews == nil {
		panic("nil repository passed to NewMovieHandler")
	}
	return &MovieHandler{Movies: movies, Reviews: reviews}
}

type movieResp struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	PriceCents    uint32   `json:"price_cents"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	AverageRating *float64 `json:"average_rating"`
}

type reviewResp struct {
	ID        uint64    `json:"id"`
	MovieID   uint64    `json:"movie_id"`
	UserID    uint64    `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func toMovieResp(m model.Movie) movieResp {
	return movieResp{
		ID:            m.ID,
		Name:          m.Name,
		PriceCents:    m.PriceCents,
		Description:   m.Description,
		ImageURL:      m.ImageURL,
		AverageRating: m.AverageRating,
	}
}

func toReviewResp(r model.Review) reviewResp {
	return reviewResp{
		ID:        r.ID,
		MovieID:   r.MovieID,
		UserID:    r.UserID,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// Index handles GET /v1/movies.  An optional ?search= term filters
// movies by name, case-insensitively.
func (h *MovieHandler) Index(c echo.Context) error {
	movies, err := h.Movies.Search(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	items := make([]movieResp, 0, len(movies))
	for _, m := range movies {
		items = append(items, toMovieResp(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Show handles GET /v1/movies/:id.  It returns the movie together
// with its non-reported reviews, newest first.
func (h *MovieHandler) Show(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	ctx := c.Request().Context()
	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	reviews, err := h.Reviews.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reviews"})
	}
	revs := make([]reviewResp, 0, len(reviews))
	for _, r := range reviews {
		revs = append(revs, toReviewResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie":   toMovieResp(movie),
		"reviews": revs,
	})
}
