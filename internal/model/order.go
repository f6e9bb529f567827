package model

import "time"

// Order is the durable record of a completed purchase, stored in the
// `orders` table.  Orders are immutable after creation.  The state
// field is the buyer's geographic US state and feeds the trending
// aggregation; city is kept only for the confirmation message.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – buyer.
//  TotalCents – order total computed from the cart at checkout.
//  State      – geographic state supplied at checkout, non-empty.
//  City       – optional city supplied at checkout.
//  CreatedAt  – set by the database at insert time.
type Order struct {
	ID         uint64    // orders.id
	UserID     uint64    // orders.user_id
	TotalCents uint64    // orders.total_cents
	State      string    // orders.state
	City       string    // orders.city
	CreatedAt  time.Time // orders.created_at
}

// Item is one line within an order, stored in the `items` table.
// Name and price are snapshotted from the movie at purchase time so
// later catalog changes never rewrite order history.  Items are owned
// exclusively by their order and cascade deleted with it.
type Item struct {
	ID         uint64 // items.id
	OrderID    uint64 // items.order_id
	MovieID    uint64 // items.movie_id
	MovieName  string // items.movie_name (snapshot)
	PriceCents uint32 // items.price_cents (snapshot)
	Quantity   uint64 // items.quantity
}
