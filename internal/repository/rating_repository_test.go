package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-store/internal/model"
)

func TestRatingSaveRecomputesAverage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(5, 7, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE movies").
		WithArgs(5, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT average_rating FROM movies").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"average_rating"}).AddRow(4.5))
	mock.ExpectCommit()

	repo := NewRatingRepo(db)
	avg, err := repo.Save(context.Background(), model.Rating{MovieID: 5, UserID: 7, Stars: 4})
	require.NoError(t, err)
	require.Equal(t, 4.5, avg)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingSaveRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	upsertErr := errors.New("duplicate entry")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(5, 7, 4).
		WillReturnError(upsertErr)
	mock.ExpectRollback()

	repo := NewRatingRepo(db)
	_, err = repo.Save(context.Background(), model.Rating{MovieID: 5, UserID: 7, Stars: 4})
	require.ErrorIs(t, err, upsertErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
