package model

import "time"

// Petition is a user-created request for a movie title, stored in the
// `petitions` table.  Votes live in the `petition_votes` join table,
// one row per (petition, user).  The Votes slice carries the voter
// user IDs when a petition is loaded with its vote set.
//
// Fields:
//  ID          – primary key identifier.
//  MovieTitle  – requested title, non-empty.
//  Description – why the title should be added, non-empty.
//  CreatedBy   – user who opened the petition.
//  CreatedAt   – set by the database at insert time.
//  Votes       – user IDs currently voting for the petition.
type Petition struct {
	ID          uint64    // petitions.id
	MovieTitle  string    // petitions.movie_title
	Description string    // petitions.description
	CreatedBy   uint64    // petitions.created_by
	CreatedAt   time.Time // petitions.created_at
	Votes       []uint64  // petition_votes.user_id rows for this petition
}

// VoteCount returns the number of users currently voting for the petition.
func (p *Petition) VoteCount() int { return len(p.Votes) }

// HasUserVoted reports whether the given user is in the vote set.
func (p *Petition) HasUserVoted(userID uint64) bool {
	for _, id := range p.Votes {
		if id == userID {
			return true
		}
	}
	return false
}
