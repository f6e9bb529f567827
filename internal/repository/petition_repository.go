package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/movie-store/internal/model"
)

// PetitionRepo provides persistence for title petitions and their
// vote sets.  Votes live in the petition_votes join table with a
// composite primary key, so a user can vote at most once per petition
// and re-adding an existing vote is harmless.
type PetitionRepo struct {
	db *sql.DB
}

// NewPetitionRepo returns a new PetitionRepo bound to the given database.
func NewPetitionRepo(db *sql.DB) *PetitionRepo { return &PetitionRepo{db: db} }

// PetitionSummary is the listing row returned by List.  UserHasVoted
// is only meaningful when the caller supplied an authenticated user.
type PetitionSummary struct {
	ID           uint64    `json:"id"`
	MovieTitle   string    `json:"movie_title"`
	Description  string    `json:"description"`
	CreatedBy    uint64    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	VoteCount    int       `json:"vote_count"`
	UserHasVoted bool      `json:"user_has_voted"`
}

// List returns all petitions newest first with their vote counts.
// Pass userID 0 for guests; UserHasVoted is then always false.
func (r *PetitionRepo) List(ctx context.Context, userID uint64) ([]PetitionSummary, error) {
	const q = `SELECT p.id, p.movie_title, p.description, p.created_by, p.created_at,
	                  (SELECT COUNT(*) FROM petition_votes v WHERE v.petition_id = p.id),
	                  (SELECT COUNT(*) FROM petition_votes v WHERE v.petition_id = p.id AND v.user_id = ?)
	           FROM petitions p
	           ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]PetitionSummary, 0)
	for rows.Next() {
		var s PetitionSummary
		var voted int
		if err := rows.Scan(&s.ID, &s.MovieTitle, &s.Description, &s.CreatedBy, &s.CreatedAt, &s.VoteCount, &voted); err != nil {
			return nil, err
		}
		s.UserHasVoted = voted > 0
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Create inserts a petition and returns it with the generated id and
// creation timestamp populated.  The vote set starts empty.
func (r *PetitionRepo) Create(ctx context.Context, movieTitle, description string, createdBy uint64) (model.Petition, error) {
	const q = `INSERT INTO petitions (movie_title, description, created_by) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, movieTitle, description, createdBy)
	if err != nil {
		return model.Petition{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Petition{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a petition with its full vote set loaded, or
// ErrPetitionNotFound.
func (r *PetitionRepo) GetByID(ctx context.Context, id uint64) (model.Petition, error) {
	const q = `SELECT id, movie_title, description, created_by, created_at FROM petitions WHERE id = ?`
	var p model.Petition
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.MovieTitle, &p.Description, &p.CreatedBy, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Petition{}, ErrPetitionNotFound
	}
	if err != nil {
		return model.Petition{}, err
	}

	const voteQ = `SELECT user_id FROM petition_votes WHERE petition_id = ? ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, voteQ, id)
	if err != nil {
		return model.Petition{}, err
	}
	defer rows.Close()
	p.Votes = make([]uint64, 0)
	for rows.Next() {
		var uid uint64
		if err := rows.Scan(&uid); err != nil {
			return model.Petition{}, err
		}
		p.Votes = append(p.Votes, uid)
	}
	if err := rows.Err(); err != nil {
		return model.Petition{}, err
	}
	return p, nil
}

// AddVote puts the user into the petition's vote set.  Adding a vote
// that already exists is a no-op thanks to the composite key.
func (r *PetitionRepo) AddVote(ctx context.Context, petitionID, userID uint64) error {
	const q = `INSERT IGNORE INTO petition_votes (petition_id, user_id) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, petitionID, userID)
	return err
}

// RemoveVote takes the user out of the petition's vote set.
func (r *PetitionRepo) RemoveVote(ctx context.Context, petitionID, userID uint64) error {
	const q = `DELETE FROM petition_votes WHERE petition_id = ? AND user_id = ?`
	_, err := r.db.ExecContext(ctx, q, petitionID, userID)
	return err
}

// CountVotes returns the current size of the vote set.
func (r *PetitionRepo) CountVotes(ctx context.Context, petitionID uint64) (int, error) {
	var n int
	const q = `SELECT COUNT(*) FROM petition_votes WHERE petition_id = ?`
	err := r.db.QueryRowContext(ctx, q, petitionID).Scan(&n)
	return n, err
}
