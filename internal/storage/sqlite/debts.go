package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

// GetDebt retrieves the debt record of an order.
func (c conn) GetDebt(ctx context.Context, orderID string) (*models.Debt, error) {
	row := c.q.QueryRowContext(ctx,
		`SELECT order_id, customer_id, balance, is_paid, paid_at, due_date
		 FROM debts WHERE order_id = ?`, orderID)

	debt, err := scanDebt(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("debt for order %s: %w", orderID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return debt, nil
}

// UpsertDebt writes the debt record keyed by order ID, creating it if the
// order has none yet. Only the reconciler calls this.
func (c conn) UpsertDebt(ctx context.Context, debt *models.Debt) error {
	_, err := c.q.ExecContext(ctx,
		`INSERT INTO debts (order_id, customer_id, balance, is_paid, paid_at, due_date)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(order_id) DO UPDATE SET
		   balance = excluded.balance,
		   is_paid = excluded.is_paid,
		   paid_at = excluded.paid_at`,
		debt.OrderID, debt.CustomerID, debt.Balance.String(),
		boolToInt(debt.IsPaid), nullableUnix(debt.PaidAt), debt.DueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert debt: %w", err)
	}
	return nil
}

// ListDebts retrieves all debt records, outstanding first.
func (c conn) ListDebts(ctx context.Context) ([]*models.Debt, error) {
	return c.listDebts(ctx,
		`SELECT order_id, customer_id, balance, is_paid, paid_at, due_date
		 FROM debts ORDER BY is_paid, due_date`)
}

// ListDebtsByCustomer retrieves a customer's debt records, outstanding first.
func (c conn) ListDebtsByCustomer(ctx context.Context, customerID string) ([]*models.Debt, error) {
	return c.listDebts(ctx,
		`SELECT order_id, customer_id, balance, is_paid, paid_at, due_date
		 FROM debts WHERE customer_id = ? ORDER BY is_paid, due_date`, customerID)
}

func (c conn) listDebts(ctx context.Context, query string, args ...any) ([]*models.Debt, error) {
	rows, err := c.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*models.Debt
	for rows.Next() {
		debt, err := scanDebt(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}

// scanDebt reads one debt row through the given Scan function.
func scanDebt(scan func(dest ...any) error) (*models.Debt, error) {
	debt := &models.Debt{}
	var balance string
	var isPaid int
	var paidAt sql.NullInt64

	if err := scan(&debt.OrderID, &debt.CustomerID, &balance, &isPaid, &paidAt, &debt.DueDate); err != nil {
		return nil, err
	}

	var err error
	if debt.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("failed to parse debt balance: %w", err)
	}
	debt.IsPaid = isPaid != 0
	if paidAt.Valid {
		debt.PaidAt = paidAt.Int64
	}
	return debt, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
