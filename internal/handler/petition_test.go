package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-store/internal/repository"
)

func votePetition(t *testing.T, h *PetitionHandler, petitionID string, userID uint64) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/petitions/"+petitionID+"/vote", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(petitionID)
	c.Set("user_id", userID)
	require.NoError(t, h.Vote(c))
	return rec
}

func expectPetitionLoad(mock sqlmock.Sqlmock, voterIDs ...uint64) {
	mock.ExpectQuery("SELECT id, movie_title, description, created_by, created_at FROM petitions").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_title", "description", "created_by", "created_at"}).
			AddRow(1, "Heat 2", "sequel please", 3, time.Now().UTC()))
	votes := sqlmock.NewRows([]string{"user_id"})
	for _, id := range voterIDs {
		votes.AddRow(id)
	}
	mock.ExpectQuery("SELECT user_id FROM petition_votes").WithArgs(1).WillReturnRows(votes)
}

// Two successive votes by the same user toggle: the first adds, the
// second removes, leaving the vote set in its original state.
func TestPetitionVoteToggles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewPetitionHandler(repository.NewPetitionRepo(db))

	// First vote: the user is not yet in the vote set, so it is added.
	expectPetitionLoad(mock)
	mock.ExpectExec("INSERT IGNORE INTO petition_votes").
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM petition_votes`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rec := votePetition(t, h, "1", 7)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"voted":true`)
	require.Contains(t, rec.Body.String(), `"votes":1`)
	require.Contains(t, rec.Body.String(), "Thank you for voting!")

	// Second vote: the user is now in the vote set, so it is removed.
	expectPetitionLoad(mock, 7)
	mock.ExpectExec("DELETE FROM petition_votes").
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM petition_votes`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	rec = votePetition(t, h, "1", 7)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"voted":false`)
	require.Contains(t, rec.Body.String(), `"votes":0`)
	require.Contains(t, rec.Body.String(), "Your vote has been removed.")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetitionVoteUnknownPetition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	h := NewPetitionHandler(repository.NewPetitionRepo(db))

	mock.ExpectQuery("SELECT id, movie_title, description, created_by, created_at FROM petitions").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_title", "description", "created_by", "created_at"}))

	rec := votePetition(t, h, "99", 7)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
