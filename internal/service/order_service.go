// Package service implements the reconciliation orchestrator: every order,
// item, and payment mutation runs its read-validate-write sequence inside one
// storage transaction and finishes with a debt recompute.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/ledger"
	"github.com/hamisi99-03/BusinessWebsite/internal/metrics"
	"github.com/hamisi99-03/BusinessWebsite/internal/models"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

var (
	ErrInvalidOrderStatus   = errors.New("unknown order status")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrInvalidPaymentStatus = errors.New("unknown payment status")
)

// OrderService coordinates mutations against the store and keeps debts and
// stock consistent with them. It is the only write path into orders, items,
// payments, and debts.
type OrderService struct {
	store   storage.Store
	dueDays int
	now     func() time.Time
}

// NewOrderService creates an OrderService. dueDays is how long after order
// creation a debt falls due.
func NewOrderService(store storage.Store, dueDays int) *OrderService {
	return &OrderService{store: store, dueDays: dueDays, now: time.Now}
}

// CreateOrder creates a pending order together with its initial debt record.
// A fresh order has no items, so the debt starts settled at balance zero and
// reopens when the first item arrives.
func (s *OrderService) CreateOrder(ctx context.Context, customerID string) (*models.Order, error) {
	order := &models.Order{CustomerID: customerID, CreatedAt: s.now().Unix()}

	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		if _, err := tx.GetCustomer(ctx, customerID); err != nil {
			return err
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		_, err := s.reconcile(ctx, tx, order)
		return err
	})
	s.recordMutation("create_order", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Order created", "order_id", order.ID, "customer_id", customerID)
	return order, nil
}

// UpdateOrderStatus changes the order's fulfilment status. The shipped
// timestamp is stamped the first time the order moves to shipped.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	var order *models.Order
	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		var err error
		if order, err = tx.GetOrder(ctx, orderID); err != nil {
			return err
		}
		order.Status = status
		if status == models.OrderShipped && order.ShippedAt == 0 {
			order.ShippedAt = s.now().Unix()
		}
		return tx.UpdateOrderStatus(ctx, order)
	})
	s.recordMutation("update_order_status", err)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes an order. Stock reserved by its items is released
// first, in the same transaction, then the cascade removes items, payments,
// and the debt record.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		items, err := tx.ListOrderItems(ctx, orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			product, err := tx.GetProduct(ctx, item.ProductID)
			if err != nil {
				return err
			}
			stock := ledger.ReleaseStock(product.Stock, item.Quantity)
			if err := tx.UpdateProductStock(ctx, item.ProductID, stock); err != nil {
				return err
			}
		}
		return tx.DeleteOrder(ctx, orderID)
	})
	s.recordMutation("delete_order", err)
	if err == nil {
		slog.Info("Order deleted", "order_id", orderID)
	}
	return err
}

// AddItem creates an order item, freezing the product's current price on it,
// and decrements the product's stock. Fails with *ledger.InsufficientStockError
// if the product cannot cover the quantity; nothing is written in that case.
func (s *OrderService) AddItem(ctx context.Context, orderID, productID string, quantity int) (*models.OrderItem, error) {
	if quantity <= 0 {
		return nil, ledger.ErrNonPositiveQuantity
	}

	var item *models.OrderItem
	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		product, err := tx.GetProduct(ctx, productID)
		if err != nil {
			return err
		}

		stock, err := ledger.ReserveStock(product.Stock, quantity)
		if err != nil {
			return err
		}
		if err := tx.UpdateProductStock(ctx, productID, stock); err != nil {
			return err
		}

		item = &models.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: product.Price, // snapshot, never re-read
		}
		if err := tx.InsertOrderItem(ctx, item); err != nil {
			return err
		}

		_, err = s.reconcile(ctx, tx, order)
		return err
	})
	s.recordMutation("add_item", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Item added", "order_id", orderID, "product_id", productID, "quantity", quantity)
	return item, nil
}

// UpdateItemQuantity changes an item's quantity, adjusting the product's
// stock by the delta. The old quantity's reservation is returned to the pool
// before the new quantity is validated.
func (s *OrderService) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*models.OrderItem, error) {
	if quantity <= 0 {
		return nil, ledger.ErrNonPositiveQuantity
	}

	var item *models.OrderItem
	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		var err error
		if item, err = tx.GetOrderItem(ctx, itemID); err != nil {
			return err
		}
		order, err := tx.GetOrder(ctx, item.OrderID)
		if err != nil {
			return err
		}
		product, err := tx.GetProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}

		stock, err := ledger.AdjustStock(product.Stock, item.Quantity, quantity)
		if err != nil {
			return err
		}
		if err := tx.UpdateProductStock(ctx, item.ProductID, stock); err != nil {
			return err
		}

		item.Quantity = quantity
		if err := tx.UpdateOrderItemQuantity(ctx, itemID, quantity); err != nil {
			return err
		}

		_, err = s.reconcile(ctx, tx, order)
		return err
	})
	s.recordMutation("update_item", err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item and returns its reserved quantity to the
// product's stock. Always succeeds for an existing item.
func (s *OrderService) DeleteItem(ctx context.Context, itemID string) error {
	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		item, err := tx.GetOrderItem(ctx, itemID)
		if err != nil {
			return err
		}
		order, err := tx.GetOrder(ctx, item.OrderID)
		if err != nil {
			return err
		}
		product, err := tx.GetProduct(ctx, item.ProductID)
		if err != nil {
			return err
		}

		stock := ledger.ReleaseStock(product.Stock, item.Quantity)
		if err := tx.UpdateProductStock(ctx, item.ProductID, stock); err != nil {
			return err
		}
		if err := tx.DeleteOrderItem(ctx, itemID); err != nil {
			return err
		}

		_, err = s.reconcile(ctx, tx, order)
		return err
	})
	s.recordMutation("delete_item", err)
	return err
}

// RecordPayment records a payment against an order after validating that it
// cannot push the completed total past the order total. Fails with
// *ledger.PaymentExceedsBalanceError carrying the maximum allowed amount.
func (s *OrderService) RecordPayment(ctx context.Context, orderID string, amount decimal.Decimal, method models.PaymentMethod, status models.PaymentStatus) (*models.Payment, error) {
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	var payment *models.Payment
	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		items, err := tx.ListOrderItems(ctx, orderID)
		if err != nil {
			return err
		}
		payments, err := tx.ListPayments(ctx, orderID)
		if err != nil {
			return err
		}

		if err := ledger.ValidatePayment(items, payments, amount, ""); err != nil {
			return err
		}

		payment = &models.Payment{
			OrderID:   orderID,
			Amount:    amount,
			Method:    method,
			Status:    status,
			CreatedAt: s.now().Unix(),
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return err
		}

		_, err = s.reconcile(ctx, tx, order)
		return err
	})
	s.recordMutation("record_payment", err)
	if err != nil {
		return nil, err
	}

	slog.Info("Payment recorded", "order_id", orderID, "payment_id", payment.ID,
		"amount", amount.String(), "method", method, "status", status)
	return payment, nil
}

// UpdatePayment edits a payment's amount, method, or status. The payment's
// own previous amount does not count against it during validation. Sibling
// payments are never touched.
func (s *OrderService) UpdatePayment(ctx context.Context, paymentID string, amount decimal.Decimal, method models.PaymentMethod, status models.PaymentStatus) (*models.Payment, error) {
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	var payment *models.Payment
	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		var err error
		if payment, err = tx.GetPayment(ctx, paymentID); err != nil {
			return err
		}
		order, err := tx.GetOrder(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		items, err := tx.ListOrderItems(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		payments, err := tx.ListPayments(ctx, payment.OrderID)
		if err != nil {
			return err
		}

		if err := ledger.ValidatePayment(items, payments, amount, paymentID); err != nil {
			return err
		}

		payment.Amount = amount
		payment.Method = method
		payment.Status = status
		if err := tx.UpdatePayment(ctx, payment); err != nil {
			return err
		}

		_, err = s.reconcile(ctx, tx, order)
		return err
	})
	s.recordMutation("update_payment", err)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Reconcile recomputes an order's debt record outside any other mutation.
// Idempotent: with no intervening mutation a second call leaves the debt
// byte-for-byte identical.
func (s *OrderService) Reconcile(ctx context.Context, orderID string) (*models.Debt, error) {
	var debt *models.Debt
	err := s.store.Mutate(ctx, func(tx storage.Tx) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		debt, err = s.reconcile(ctx, tx, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return debt, nil
}

// reconcile recomputes the debt record from the order's current items and
// payments. The debt row is fetched-or-created so no mutation path can leave
// an order without one.
func (s *OrderService) reconcile(ctx context.Context, tx storage.Tx, order *models.Order) (*models.Debt, error) {
	items, err := tx.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	payments, err := tx.ListPayments(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	debt, err := tx.GetDebt(ctx, order.ID)
	if errors.Is(err, storage.ErrNotFound) {
		debt = &models.Debt{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			DueDate:    time.Unix(order.CreatedAt, 0).AddDate(0, 0, s.dueDays).Unix(),
		}
	} else if err != nil {
		return nil, err
	}

	flipped := ledger.ReconcileDebt(debt, items, payments, s.now())
	metrics.ReconcileRuns.Inc()
	if flipped {
		direction := "reopened"
		if debt.IsPaid {
			direction = "settled"
		}
		metrics.SettlementTransitions.WithLabelValues(direction).Inc()
		slog.Info("Debt state changed", "order_id", order.ID, "direction", direction,
			"balance", debt.Balance.String())
	}

	if err := tx.UpsertDebt(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// recordMutation classifies a mutation result for metrics and logs validation
// rejections. Validation failures are the caller's to surface; they are
// counted here but never swallowed.
func (s *OrderService) recordMutation(operation string, err error) {
	var stockErr *ledger.InsufficientStockError
	var balanceErr *ledger.PaymentExceedsBalanceError

	switch {
	case err == nil:
		metrics.Mutations.WithLabelValues(operation, metrics.OutcomeOK).Inc()
	case errors.As(err, &stockErr):
		metrics.Mutations.WithLabelValues(operation, metrics.OutcomeRejected).Inc()
		metrics.ValidationRejections.WithLabelValues("insufficient_stock").Inc()
		slog.Warn("Mutation rejected", "operation", operation, "error", err)
	case errors.As(err, &balanceErr):
		metrics.Mutations.WithLabelValues(operation, metrics.OutcomeRejected).Inc()
		metrics.ValidationRejections.WithLabelValues("payment_exceeds_balance").Inc()
		slog.Warn("Mutation rejected", "operation", operation, "error", err)
	default:
		metrics.Mutations.WithLabelValues(operation, metrics.OutcomeError).Inc()
	}
}
