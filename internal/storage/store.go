// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. Storage
// implementations wrap it with the entity and ID for context.
var ErrNotFound = errors.New("not found")

// Queries is the set of operations available both on the base store and
// inside a transaction.
type Queries interface {
	// Customers

	CreateCustomer(ctx context.Context, customer *models.Customer) error
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)

	// Products

	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	// UpdateProductStock sets the product's stock count. Must only be called
	// inside the same transaction as the item write that caused the change.
	UpdateProductStock(ctx context.Context, id string, stock int) error
	// UpdateProductPrice changes the catalog price. Existing order items keep
	// their unit-price snapshots.
	UpdateProductPrice(ctx context.Context, id string, price decimal.Decimal) error

	// Orders

	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order) error
	// DeleteOrder removes the order; items, payments, and the debt record go
	// with it via cascade.
	DeleteOrder(ctx context.Context, id string) error

	// Order items

	InsertOrderItem(ctx context.Context, item *models.OrderItem) error
	GetOrderItem(ctx context.Context, id string) (*models.OrderItem, error)
	UpdateOrderItemQuantity(ctx context.Context, id string, quantity int) error
	DeleteOrderItem(ctx context.Context, id string) error
	ListOrderItems(ctx context.Context, orderID string) ([]models.OrderItem, error)

	// Payments

	InsertPayment(ctx context.Context, payment *models.Payment) error
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	ListPayments(ctx context.Context, orderID string) ([]models.Payment, error)

	// Debts

	GetDebt(ctx context.Context, orderID string) (*models.Debt, error)
	// UpsertDebt writes the debt record keyed by order ID, creating it if the
	// order has none yet.
	UpsertDebt(ctx context.Context, debt *models.Debt) error
	ListDebts(ctx context.Context) ([]*models.Debt, error)
	ListDebtsByCustomer(ctx context.Context, customerID string) ([]*models.Debt, error)
}

// Tx is the view of the store inside a transaction.
type Tx interface {
	Queries
}

// Store defines the interface for ledger storage operations. The abstraction
// allows swapping storage backends without changing the service layer.
type Store interface {
	Queries

	// Mutate runs fn inside a single transaction. If fn returns an error the
	// transaction is rolled back and nothing fn did is visible. Every
	// read-validate-write sequence on stock, payments, or debts must run
	// through Mutate so it serializes against other mutations.
	Mutate(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}
