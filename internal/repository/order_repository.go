package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-store/internal/analytics"
	"github.com/iliyamo/movie-store/internal/model"
)

// OrderRepo provides persistence for the order/item ledger.  Orders
// and their items are written together at checkout inside one
// transaction and never modified afterwards.  All timestamp fields
// are stored in UTC.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle so the checkout handler can open
// the transaction spanning order and item creation.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a new order within the scope of an existing
// transaction.  It populates the generated ID and creation timestamp
// on the provided order.  The caller must commit or rollback the
// transaction.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, ord *model.Order) error {
	const q = `INSERT INTO orders (user_id, total_cents, state, city) VALUES (?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, ord.UserID, ord.TotalCents, ord.State, ord.City)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	ord.ID = uint64(id)
	// Query back the row to populate the database-assigned timestamp
	const sel = `SELECT created_at FROM orders WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, ord.ID).Scan(&ord.CreatedAt)
}

// CreateItemsBulkTx inserts multiple item rows in a single statement.
// The caller must supply the order ID in each item.  Passing an empty
// slice has no effect and returns nil.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO items (order_id, movie_id, movie_name, price_cents, quantity) VALUES `
	args := make([]any, 0, len(items)*5)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, it.OrderID, it.MovieID, it.MovieName, it.PriceCents, it.Quantity)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// SalesByState returns every item row joined with its order's state
// and date, in ledger order (order date ascending, then item id).
// The trending aggregator consumes these rows; the row order fixes
// its first-encountered tie-break.
func (r *OrderRepo) SalesByState(ctx context.Context) ([]analytics.Sale, error) {
	const q = `SELECT o.state, i.movie_name, i.quantity, o.created_at
	           FROM items i
	           JOIN orders o ON o.id = i.order_id
	           ORDER BY o.created_at ASC, i.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]analytics.Sale, 0)
	for rows.Next() {
		var s analytics.Sale
		if err := rows.Scan(&s.State, &s.Movie, &s.Quantity, &s.OrderDate); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

// ListByUser returns a user's orders newest first, without items.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	const q = `SELECT id, user_id, total_cents, state, city, created_at
	           FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalCents, &o.State, &o.City, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
