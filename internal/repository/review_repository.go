package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/movie-store/internal/model"
)

// ReviewRepo provides CRUD operations for movie reviews.  Edit and
// delete enforce ownership here and return ErrForbidden for callers
// that are not the author; reporting is open to any authenticated
// user.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Create inserts a review and returns it with the generated id and
// database-assigned creation timestamp populated.
func (r *ReviewRepo) Create(ctx context.Context, movieID, userID uint64, comment string) (model.Review, error) {
	const q = `INSERT INTO reviews (movie_id, user_id, comment) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, movieID, userID, comment)
	if err != nil {
		return model.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Review{}, err
	}
	// Query back the full row to populate timestamps and defaults
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a single review or ErrReviewNotFound.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	const q = `SELECT id, movie_id, user_id, comment, reported, created_at FROM reviews WHERE id = ?`
	var rev model.Review
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&rev.ID, &rev.MovieID, &rev.UserID, &rev.Comment, &rev.Reported, &rev.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Review{}, ErrReviewNotFound
	}
	return rev, err
}

// ListByMovie returns the non-reported reviews for a movie, newest
// first.  Reported reviews stay in the table but disappear from the
// movie page.
func (r *ReviewRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Review, error) {
	const q = `SELECT id, movie_id, user_id, comment, reported, created_at
	           FROM reviews
	           WHERE movie_id = ? AND reported = 0
	           ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rev model.Review
		if err := rows.Scan(&rev.ID, &rev.MovieID, &rev.UserID, &rev.Comment, &rev.Reported, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// checkOwner loads the author of a review.  Returns ErrReviewNotFound
// when the review does not exist and ErrForbidden when it belongs to
// a different user.
func (r *ReviewRepo) checkOwner(ctx context.Context, id, ownerID uint64) error {
	var authorID uint64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM reviews WHERE id = ?`, id).Scan(&authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}
	if authorID != ownerID {
		return ErrForbidden
	}
	return nil
}

// UpdateComment replaces the comment text of a review.  Only the
// author may edit; anyone else gets ErrForbidden.
func (r *ReviewRepo) UpdateComment(ctx context.Context, id, ownerID uint64, comment string) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE reviews SET comment = ? WHERE id = ?`, comment, id)
	return err
}

// Delete removes a review permanently.  Only the author may delete;
// anyone else gets ErrForbidden.
func (r *ReviewRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	return err
}

// Report marks a review as reported.  The review must belong to the
// given movie; reporting an already reported review is a no-op.
func (r *ReviewRepo) Report(ctx context.Context, id, movieID uint64) error {
	var exists uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM reviews WHERE id = ? AND movie_id = ?`, id, movieID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrReviewNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE reviews SET reported = 1 WHERE id = ?`, id)
	return err
}
