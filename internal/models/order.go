package models

import "github.com/shopspring/decimal"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCanceled  OrderStatus = "canceled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered, OrderCanceled:
		return true
	}
	return false
}

// Order represents a customer's order. It exclusively owns its items and
// payments; deleting an order cascades to both and to its debt record.
//
// Totals (amount, paid, outstanding balance) are never stored on the order.
// They are derived from the item and payment sets by the ledger package.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string

	// CustomerID references the customer who placed the order.
	CustomerID string

	// Status is the fulfilment state.
	Status OrderStatus

	// CreatedAt is the Unix timestamp when the order was placed.
	CreatedAt int64

	// ShippedAt is the Unix timestamp when the order was first marked
	// shipped, or 0 if it has not shipped.
	ShippedAt int64
}

// OrderItem is one line on an order.
type OrderItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// OrderID is the order this item belongs to.
	OrderID string

	// ProductID references the product sold.
	ProductID string

	// Quantity is the number of units, always positive.
	Quantity int

	// UnitPrice is the product price frozen at item creation. Later catalog
	// price changes do not touch it.
	UnitPrice decimal.Decimal
}

// LineTotal returns UnitPrice × Quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
