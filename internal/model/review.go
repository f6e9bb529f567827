package model

import "time"

// Review is a user comment on a movie, stored in the `reviews` table.
// Reviews can be edited or deleted only by their owning user.  Any
// authenticated user may report a review; reported reviews are
// filtered out of the movie page but kept in the table.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – movie the review belongs to (cascade deleted with it).
//  UserID    – author of the review.
//  Comment   – review text, non-empty.
//  Reported  – set once a user reports the review, never cleared here.
//  CreatedAt – set by the database at insert time.
type Review struct {
	ID        uint64    // reviews.id
	MovieID   uint64    // reviews.movie_id
	UserID    uint64    // reviews.user_id
	Comment   string    // reviews.comment
	Reported  bool      // reviews.reported
	CreatedAt time.Time // reviews.created_at
}
