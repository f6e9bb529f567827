package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-store/internal/repository"
)

// ReviewHandler implements the authenticated review operations.  Only
// the review's author may edit or delete it; any authenticated user
// viewing the movie may report it.  All methods assume JWT middleware
// has already run.
type ReviewHandler struct {
	Movies  *repository.MovieRepo
	Reviews *repository.ReviewRepo
}

func NewReviewHandler(movies *repository.MovieRepo, reviews *repository.ReviewRepo) *ReviewHandler {
	if movies == nil || reviews == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Movies: movies, Reviews: reviews}
}

type reviewReq struct {
	Comment string `json:"comment" form:"comment"`
}

// Create handles POST /v1/movies/:id/reviews.  An empty comment is a
// validation failure; the movie must exist.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment must not be empty"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	rev, err := h.Reviews.Create(ctx, movieID, userID, req.Comment)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"review": toReviewResp(rev)})
}

// Update handles PUT /v1/movies/:id/reviews/:reviewID.  Editing a
// review that belongs to another user is rejected with 403.
func (h *ReviewHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := pathID(c, "reviewID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}
	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment must not be empty"})
	}

	ctx := c.Request().Context()
	if err := h.Reviews.UpdateComment(ctx, reviewID, userID, req.Comment); err != nil {
		switch {
		case errors.Is(err, repository.ErrReviewNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update review"})
	}
	rev, err := h.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"review": toReviewResp(rev)})
}

// Delete handles DELETE /v1/movies/:id/reviews/:reviewID.  Only the
// owning user may delete; returns 204 on success.
func (h *ReviewHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reviewID, err := pathID(c, "reviewID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	if err := h.Reviews.Delete(c.Request().Context(), reviewID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrReviewNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete review"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Report handles POST /v1/movies/:id/reviews/:reviewID/report.  Any
// authenticated user may report a review of the movie they are
// viewing; the review then disappears from the movie page.
func (h *ReviewHandler) Report(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	reviewID, err := pathID(c, "reviewID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
	}

	if err := h.Reviews.Report(c.Request().Context(), reviewID, movieID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to report review"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reported": true})
}
