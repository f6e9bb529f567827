package model

// Movie represents a catalog entry in the `movies` table.  Prices are
// stored in cents to avoid floating point arithmetic on money.  The
// average rating is recomputed from the ratings table whenever a
// rating is saved and stays nil until the first rating exists.
//
// Fields:
//  ID            – primary key identifier.
//  Name          – display name of the movie.
//  PriceCents    – current catalog price in cents.
//  Description   – free form description text.
//  ImageURL      – reference to the poster image.
//  AverageRating – mean of all star ratings, nil when unrated.
type Movie struct {
	ID            uint64   // movies.id
	Name          string   // movies.name
	PriceCents    uint32   // movies.price_cents
	Description   string   // movies.description
	ImageURL      string   // movies.image_url
	AverageRating *float64 // movies.average_rating (nullable)
}
