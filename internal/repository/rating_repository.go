package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-store/internal/model"
)

// RatingRepo persists star ratings and keeps movies.average_rating in
// sync.  A rating is unique per (movie, user); saving again replaces
// the stars.
type RatingRepo struct {
	db *sql.DB
}

// NewRatingRepo returns a new RatingRepo bound to the given database.
func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// Save upserts the user's rating for a movie and recomputes the
// movie's average inside the same transaction.  The average is
// rewritten with a single aggregate UPDATE so two concurrent ratings
// for the same movie cannot interleave a stale read-modify-write.
// Returns the new average.
func (r *RatingRepo) Save(ctx context.Context, rating model.Rating) (float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upsert = `INSERT INTO ratings (movie_id, user_id, stars)
	                VALUES (?, ?, ?)
	                ON DUPLICATE KEY UPDATE stars = VALUES(stars)`
	if _, err := tx.ExecContext(ctx, upsert, rating.MovieID, rating.UserID, rating.Stars); err != nil {
		return 0, err
	}

	const recompute = `UPDATE movies
	                   SET average_rating = (SELECT AVG(stars) FROM ratings WHERE movie_id = ?)
	                   WHERE id = ?`
	if _, err := tx.ExecContext(ctx, recompute, rating.MovieID, rating.MovieID); err != nil {
		return 0, err
	}

	var avg sql.NullFloat64
	const sel = `SELECT average_rating FROM movies WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, rating.MovieID).Scan(&avg); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return avg.Float64, nil
}
