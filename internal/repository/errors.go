// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, such as editing another user's review.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// Not-found sentinels for the main entities. Repositories map
// sql.ErrNoRows to these so handlers can respond 404 without
// reaching into database/sql themselves.
var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrPetitionNotFound = errors.New("petition not found")
)
