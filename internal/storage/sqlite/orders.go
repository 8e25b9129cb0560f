package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

// CreateOrder inserts a new order into the database.
func (c conn) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt == 0 {
		order.CreatedAt = time.Now().Unix()
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}

	_, err := c.q.ExecContext(ctx,
		`INSERT INTO orders (id, customer_id, status, created_at, shipped_at)
		 VALUES (?, ?, ?, ?, ?)`,
		order.ID, order.CustomerID, string(order.Status), order.CreatedAt, nullableUnix(order.ShippedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetOrder retrieves an order by ID.
func (c conn) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	var shippedAt sql.NullInt64

	err := c.q.QueryRowContext(ctx,
		`SELECT id, customer_id, status, created_at, shipped_at FROM orders WHERE id = ?`, id,
	).Scan(&order.ID, &order.CustomerID, &order.Status, &order.CreatedAt, &shippedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if shippedAt.Valid {
		order.ShippedAt = shippedAt.Int64
	}
	return order, nil
}

// ListOrdersByCustomer retrieves a customer's orders, newest first.
func (c conn) ListOrdersByCustomer(ctx context.Context, customerID string) ([]*models.Order, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, customer_id, status, created_at, shipped_at
		 FROM orders WHERE customer_id = ? ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		var shippedAt sql.NullInt64
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.Status, &order.CreatedAt, &shippedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if shippedAt.Valid {
			order.ShippedAt = shippedAt.Int64
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus writes the order's status and shipped timestamp.
func (c conn) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	res, err := c.q.ExecContext(ctx,
		`UPDATE orders SET status = ?, shipped_at = ? WHERE id = ?`,
		string(order.Status), nullableUnix(order.ShippedAt), order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order %s: %w", order.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteOrder removes an order; foreign keys cascade the delete to its items,
// payments, and debt record.
func (c conn) DeleteOrder(ctx context.Context, id string) error {
	res, err := c.q.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// InsertOrderItem inserts a new order item.
func (c conn) InsertOrderItem(ctx context.Context, item *models.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	_, err := c.q.ExecContext(ctx,
		`INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}
	return nil
}

// GetOrderItem retrieves an order item by ID.
func (c conn) GetOrderItem(ctx context.Context, id string) (*models.OrderItem, error) {
	item := &models.OrderItem{}
	var unitPrice string

	err := c.q.QueryRowContext(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price FROM order_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &unitPrice)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order item %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order item: %w", err)
	}

	if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
		return nil, fmt.Errorf("failed to parse unit price: %w", err)
	}
	return item, nil
}

// UpdateOrderItemQuantity changes an item's quantity. The unit price snapshot
// is deliberately left untouched.
func (c conn) UpdateOrderItemQuantity(ctx context.Context, id string, quantity int) error {
	res, err := c.q.ExecContext(ctx,
		`UPDATE order_items SET quantity = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return fmt.Errorf("failed to update order item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order item %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// DeleteOrderItem removes an order item.
func (c conn) DeleteOrderItem(ctx context.Context, id string) error {
	res, err := c.q.ExecContext(ctx, `DELETE FROM order_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order item %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// ListOrderItems retrieves all items of an order.
func (c conn) ListOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price
		 FROM order_items WHERE order_id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		var unitPrice string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("failed to parse unit price: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}
	return items, nil
}

// nullableUnix maps the zero timestamp to NULL.
func nullableUnix(ts int64) any {
	if ts == 0 {
		return nil
	}
	return ts
}
