package model

import "time"

// Rating is a star rating of a movie by a user.  The table has a
// unique key on (movie_id, user_id) so saving again overwrites the
// previous stars rather than adding a second row.
type Rating struct {
	MovieID   uint64    // ratings.movie_id
	UserID    uint64    // ratings.user_id
	Stars     uint8     // ratings.stars (1..5)
	CreatedAt time.Time // ratings.created_at
	UpdatedAt time.Time // ratings.updated_at
}
