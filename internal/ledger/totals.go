// Package ledger implements the balance-reconciliation engine: order totals,
// stock bookkeeping, payment validation, and the debt state machine.
//
// Everything here is a pure function over domain values. Persistence and
// transaction boundaries belong to the service layer; the ledger only decides
// what the numbers are and whether a write is allowed.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
)

// TotalAmount returns the order's item total: the sum of unit-price × quantity
// over all items. Unit prices are creation-time snapshots, so the result is
// unaffected by later catalog price changes.
func TotalAmount(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// TotalPaid returns the sum of the order's completed payments. Pending and
// failed payments are not yet confirmed money and never count.
func TotalPaid(payments []models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// OutstandingBalance returns max(TotalAmount − TotalPaid, 0). The clamp keeps
// the balance non-negative when item deletions drop an order's total below
// what has already been paid.
func OutstandingBalance(items []models.OrderItem, payments []models.Payment) decimal.Decimal {
	balance := TotalAmount(items).Sub(TotalPaid(payments))
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}
