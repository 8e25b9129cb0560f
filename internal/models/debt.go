package models

import "github.com/shopspring/decimal"

// Debt is the per-order settlement record. Exactly one exists per order,
// created with the order and recomputed by the reconciler after every item or
// payment mutation. It is never edited directly and never deleted except via
// the order cascade.
type Debt struct {
	// OrderID is the order this debt tracks (unique).
	OrderID string

	// CustomerID references the customer who owes the balance.
	CustomerID string

	// Balance is the outstanding amount, clamped at zero.
	Balance decimal.Decimal

	// IsPaid is true exactly when Balance is zero.
	IsPaid bool

	// PaidAt is the Unix timestamp of the first settlement, or 0 while the
	// debt is outstanding. Set once when the balance first reaches zero;
	// cleared if a later mutation reopens the debt. Re-settling an already
	// settled debt keeps the original date.
	PaidAt int64

	// DueDate is the Unix timestamp by which the balance is expected to be
	// cleared. Fixed at order creation, preserved across recomputes.
	DueDate int64
}
