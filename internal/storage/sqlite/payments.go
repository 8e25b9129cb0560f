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

// InsertPayment inserts a new payment.
func (c conn) InsertPayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	_, err := c.q.ExecContext(ctx,
		`INSERT INTO payments (id, order_id, amount, method, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.OrderID, payment.Amount.String(),
		string(payment.Method), string(payment.Status), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetPayment retrieves a payment by ID.
func (c conn) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	payment := &models.Payment{}
	var amount string

	err := c.q.QueryRowContext(ctx,
		`SELECT id, order_id, amount, method, status, created_at FROM payments WHERE id = ?`, id,
	).Scan(&payment.ID, &payment.OrderID, &amount, &payment.Method, &payment.Status, &payment.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse payment amount: %w", err)
	}
	return payment, nil
}

// UpdatePayment writes a payment's amount, method, and status. Only the row
// itself changes; sibling payments are never rewritten.
func (c conn) UpdatePayment(ctx context.Context, payment *models.Payment) error {
	res, err := c.q.ExecContext(ctx,
		`UPDATE payments SET amount = ?, method = ?, status = ? WHERE id = ?`,
		payment.Amount.String(), string(payment.Method), string(payment.Status), payment.ID)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("payment %s: %w", payment.ID, storage.ErrNotFound)
	}
	return nil
}

// ListPayments retrieves all payments of an order, oldest first.
func (c conn) ListPayments(ctx context.Context, orderID string) ([]models.Payment, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, order_id, amount, method, status, created_at
		 FROM payments WHERE order_id = ? ORDER BY created_at`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var payment models.Payment
		var amount string
		if err := rows.Scan(&payment.ID, &payment.OrderID, &amount,
			&payment.Method, &payment.Status, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if payment.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse payment amount: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
