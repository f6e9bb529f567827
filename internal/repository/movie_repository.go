package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-store/internal/model"
)

// MovieRepo provides read access to the movie catalog.  Catalog
// management (creating movies, uploading images) happens outside this
// service, so the repository exposes lookups only plus the rating
// average update used by RatingRepo.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo returns a new MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *MovieRepo) DB() *sql.DB { return r.db }

const movieColumns = `id, name, price_cents, description, image_url, average_rating`

func scanMovie(row interface{ Scan(...any) error }) (model.Movie, error) {
	var m model.Movie
	var avg sql.NullFloat64
	if err := row.Scan(&m.ID, &m.Name, &m.PriceCents, &m.Description, &m.ImageURL, &avg); err != nil {
		return model.Movie{}, err
	}
	if avg.Valid {
		v := avg.Float64
		m.AverageRating = &v
	}
	return m, nil
}

// Search returns all movies, or when term is non-empty only those
// whose name contains it case-insensitively.  Results are ordered by
// id so listings are stable.
func (r *MovieRepo) Search(ctx context.Context, term string) ([]model.Movie, error) {
	q := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`
	args := []any{}
	if term = strings.TrimSpace(term); term != "" {
		q = `SELECT ` + movieColumns + ` FROM movies WHERE LOWER(name) LIKE ? ORDER BY id`
		args = append(args, "%"+strings.ToLower(term)+"%")
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetByID returns a single movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// GetByIDs returns the movies whose ids appear in the given set,
// ordered by id.  IDs with no matching movie are silently dropped;
// callers that need strict resolution must compare lengths.  An empty
// id set returns an empty slice without touching the database.
func (r *MovieRepo) GetByIDs(ctx context.Context, ids []uint64) ([]model.Movie, error) {
	if len(ids) == 0 {
		return []model.Movie{}, nil
	}
	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}
	q := `SELECT ` + movieColumns + ` FROM movies WHERE id IN (` +
		strings.Join(placeholders, ",") + `) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0, len(ids))
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}
