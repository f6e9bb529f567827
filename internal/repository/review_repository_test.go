package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func ownerRows(ownerID uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"user_id"}).AddRow(ownerID)
}

func TestReviewUpdateCommentEnforcesOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepo(db)
	ctx := context.Background()

	t.Run("non-owner gets ErrForbidden", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id FROM reviews").WithArgs(10).WillReturnRows(ownerRows(3))

		err := repo.UpdateComment(ctx, 10, 7, "rewritten")
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("owner update succeeds", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id FROM reviews").WithArgs(10).WillReturnRows(ownerRows(7))
		mock.ExpectExec("UPDATE reviews SET comment").
			WithArgs("rewritten", 10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateComment(ctx, 10, 7, "rewritten"))
	})

	t.Run("unknown review gets ErrReviewNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id FROM reviews").WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		err := repo.UpdateComment(ctx, 99, 7, "rewritten")
		require.ErrorIs(t, err, ErrReviewNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewDeleteEnforcesOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewReviewRepo(db)
	ctx := context.Background()

	t.Run("non-owner gets ErrForbidden", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id FROM reviews").WithArgs(10).WillReturnRows(ownerRows(3))

		require.ErrorIs(t, repo.Delete(ctx, 10, 7), ErrForbidden)
	})

	t.Run("owner delete succeeds", func(t *testing.T) {
		mock.ExpectQuery("SELECT user_id FROM reviews").WithArgs(10).WillReturnRows(ownerRows(7))
		mock.ExpectExec("DELETE FROM reviews").
			WithArgs(10).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, 10, 7))
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
