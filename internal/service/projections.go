package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/ledger"
	"github.com/hamisi99-03/BusinessWebsite/internal/models"
)

// OrderSummary is the read projection of an order consumed by presentation
// layers. Totals are derived on read, never stored.
type OrderSummary struct {
	Order              *models.Order
	Items              []models.OrderItem
	Payments           []models.Payment
	TotalAmount        decimal.Decimal
	TotalPaid          decimal.Decimal
	OutstandingBalance decimal.Decimal
}

// GetOrderSummary loads an order with its items, payments, and derived totals.
func (s *OrderService) GetOrderSummary(ctx context.Context, orderID string) (*OrderSummary, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.store.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &OrderSummary{
		Order:              order,
		Items:              items,
		Payments:           payments,
		TotalAmount:        ledger.TotalAmount(items),
		TotalPaid:          ledger.TotalPaid(payments),
		OutstandingBalance: ledger.OutstandingBalance(items, payments),
	}, nil
}

// DebtStatus returns the order's debt record.
func (s *OrderService) DebtStatus(ctx context.Context, orderID string) (*models.Debt, error) {
	return s.store.GetDebt(ctx, orderID)
}

// ListOrders returns a customer's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, customerID string) ([]*models.Order, error) {
	return s.store.ListOrdersByCustomer(ctx, customerID)
}

// ListDebts returns all debt records, outstanding first.
func (s *OrderService) ListDebts(ctx context.Context) ([]*models.Debt, error) {
	return s.store.ListDebts(ctx)
}

// ListCustomerDebts returns one customer's debt records, outstanding first.
func (s *OrderService) ListCustomerDebts(ctx context.Context, customerID string) ([]*models.Debt, error) {
	return s.store.ListDebtsByCustomer(ctx, customerID)
}
