// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCompletedEvent is published when a checkout commits.  It
// carries enough information for downstream consumers to log, notify
// or feed analytics without querying the primary database.  Prices
// are the snapshotted per-item values, not current catalog prices.
type OrderCompletedEvent struct {
	EventID     string           `json:"event_id"`
	OrderID     uint64           `json:"order_id"`
	UserID      uint64           `json:"user_id"`
	State       string           `json:"state"`
	City        string           `json:"city,omitempty"`
	TotalCents  uint64           `json:"total_cents"`
	Items       []OrderItemEvent `json:"items"`
	CompletedAt string           `json:"completed_at"`
}

// OrderItemEvent is one purchased line within an OrderCompletedEvent.
type OrderItemEvent struct {
	MovieID    uint64 `json:"movie_id"`
	MovieName  string `json:"movie_name"`
	PriceCents uint32 `json:"price_cents"`
	Quantity   uint64 `json:"quantity"`
}
