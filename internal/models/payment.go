package models

import "github.com/shopspring/decimal"

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentMpesa PaymentMethod = "mpesa"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentMpesa
}

// PaymentStatus is the confirmation state of a payment.
//
// Only completed payments count toward an order's paid total; pending and
// failed payments are recorded but do not reduce the outstanding balance.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// Payment represents money recorded against an order.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// OrderID is the order this payment applies to.
	OrderID string

	// Amount is the payment amount, always positive.
	Amount decimal.Decimal

	// Method is how the payment was made.
	Method PaymentMethod

	// Status is the confirmation state. Each payment's status is recorded
	// individually; saving one payment never rewrites its siblings.
	Status PaymentStatus

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
