package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/model"
	"github.com/iliyamo/movie-store/internal/repository"
)

// RatingHandler saves star ratings.  A rating is unique per
// (movie, user); rating again replaces the previous stars and the
// movie's average is recomputed atomically with the save.
type RatingHandler struct {
	Movies  *repository.MovieRepo
	Ratings *repository.RatingRepo
}

func NewRatingHandler(movies *repository.MovieRepo, ratings *repository.RatingRepo) *RatingHandler {
	if movies == nil || ratings == nil {
		panic("nil repository passed to NewRatingHandler")
	}
	return &RatingHandler{Movies: movies, Ratings: ratings}
}

// Rate handles POST /v1/movies/:id/rating.  Stars must be 1..5.
func (h *RatingHandler) Rate(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req struct {
		Stars int `json:"stars" form:"stars"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Stars < 1 || req.Stars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stars must be between 1 and 5"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	avg, err := h.Ratings.Save(ctx, model.Rating{
		MovieID: movieID,
		UserID:  userID,
		Stars:   uint8(req.Stars),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save rating"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie_id":       movieID,
		"stars":          req.Stars,
		"average_rating": avg,
	})
}
