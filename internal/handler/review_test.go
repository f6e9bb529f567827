package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-store/internal/repository"
)

func putReview(t *testing.T, h *ReviewHandler, reviewID string, userID uint64) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/movies/5/reviews/"+reviewID, strings.NewReader(`{"comment":"rewritten"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "reviewID")
	c.SetParamValues("5", reviewID)
	c.Set("user_id", userID)
	require.NoError(t, h.Update(c))
	return rec
}

func TestReviewUpdateByNonOwnerIsForbidden(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewReviewHandler(repository.NewMovieRepo(db), repository.NewReviewRepo(db))

	mock.ExpectQuery("SELECT user_id FROM reviews").WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(3))

	rec := putReview(t, h, "10", 7)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "forbidden")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewUpdateUnknownReviewIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewReviewHandler(repository.NewMovieRepo(db), repository.NewReviewRepo(db))

	mock.ExpectQuery("SELECT user_id FROM reviews").WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	rec := putReview(t, h, "99", 7)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
