package models

import "github.com/shopspring/decimal"

// Product represents a catalog entry.
type Product struct {
	// ID is the unique identifier for the product (UUID format).
	ID string

	// Name is the display name of the product.
	Name string

	// Description is an optional longer description.
	Description string

	// Price is the current catalog price. Order items copy this value at
	// creation time; changing it never affects existing orders.
	Price decimal.Decimal

	// Stock is the number of units available. Never negative; adjusted only
	// by the order-item lifecycle.
	Stock int
}
