package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-storefront/internal/database"
	"restaurant-storefront/internal/models"
)

// ErrOrderNotFound indicates the order id does not exist
var ErrOrderNotFound = errors.New("order not found")

// Repository persists orders. Orders are append-only: after creation only
// the status column ever changes.
type Repository struct {
	db *database.DB
}

// NewRepository creates an order repository over the given database
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts the order and its initial status-log entry in one
// transaction and returns the new order id
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) (int64, error) {
	details, err := json.Marshal(models.NewOrderDetails(order.Items))
	if err != nil {
		return 0, fmt.Errorf("failed to encode order details: %w", err)
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (details, total_price, status, customer_name, customer_phone,
		 customer_address, customer_note, type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		details, order.TotalPrice, models.StatusPending, order.Customer.Name,
		order.Customer.Phone, order.Customer.Address, order.Customer.Note,
		order.Customer.Type).Scan(&id)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO order_status_log (order_id, status, changed_by, notes)
		 VALUES ($1, $2, $3, $4)`,
		id, models.StatusPending, "storefront", "order received")
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return id, nil
}

// ListOrders returns all orders, newest first
func (r *Repository) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, details, total_price, status, created_at, customer_name,
		 customer_phone, customer_address, customer_note, type
		 FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		var details []byte
		if err := rows.Scan(&order.ID, &details, &order.TotalPrice, &order.Status,
			&order.CreatedAt, &order.Customer.Name, &order.Customer.Phone,
			&order.Customer.Address, &order.Customer.Note, &order.Customer.Type); err != nil {
			return nil, err
		}
		order.Items = decodeStoredDetails(details)
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// decodeStoredDetails decodes the persisted line-item document. Rows
// written before the versioned document hold a bare array; both forms are
// readable.
func decodeStoredDetails(data []byte) []models.LineItem {
	var doc models.OrderDetails
	if err := json.Unmarshal(data, &doc); err == nil && doc.Version > 0 {
		return doc.Items
	}

	var items []models.LineItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items
	}

	return nil
}

// SetStatus updates an order's status and appends a status-log entry.
// Setting the status an order already has is a no-op; the returned bool
// reports whether anything changed.
func (r *Repository) SetStatus(ctx context.Context, id int64, status models.OrderStatus, changedBy string) (models.OrderStatus, bool, error) {
	var current models.OrderStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, ErrOrderNotFound
		}
		return "", false, err
	}

	if current == status {
		return current, false, nil
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id); err != nil {
		return "", false, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO order_status_log (order_id, status, changed_by, notes)
		 VALUES ($1, $2, $3, $4)`,
		id, status, changedBy, nil)
	if err != nil {
		return "", false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", false, err
	}

	return current, true, nil
}
