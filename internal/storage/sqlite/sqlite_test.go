package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "ledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	customer := &models.Customer{Email: "jane@example.com", Name: "Jane", PasswordHash: "x"}
	if err := store.CreateCustomer(ctx, customer); err != nil {
		t.Fatalf("CreateCustomer failed: %v", err)
	}

	product := &models.Product{Name: "Maize Flour", Price: decimal.RequireFromString("129.99"), Stock: 20}
	if err := store.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	t.Run("CreateCustomer generates ID and timestamp", func(t *testing.T) {
		if customer.ID == "" {
			t.Error("Expected customer ID to be generated")
		}
		if customer.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetCustomerByEmail round trip", func(t *testing.T) {
		got, err := store.GetCustomerByEmail(ctx, "jane@example.com")
		if err != nil {
			t.Fatalf("GetCustomerByEmail failed: %v", err)
		}
		if got.ID != customer.ID || got.Name != "Jane" {
			t.Errorf("got %+v, want customer %s", got, customer.ID)
		}
	})

	t.Run("product price survives as exact decimal", func(t *testing.T) {
		got, err := store.GetProduct(ctx, product.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if !got.Price.Equal(decimal.RequireFromString("129.99")) {
			t.Errorf("Price = %s, want 129.99", got.Price)
		}
	})

	t.Run("missing records return ErrNotFound", func(t *testing.T) {
		if _, err := store.GetProduct(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetProduct error = %v, want ErrNotFound", err)
		}
		if _, err := store.GetOrder(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetOrder error = %v, want ErrNotFound", err)
		}
		if _, err := store.GetDebt(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetDebt error = %v, want ErrNotFound", err)
		}
	})

	t.Run("order with items and payments round trip", func(t *testing.T) {
		order := &models.Order{CustomerID: customer.ID}
		if err := store.CreateOrder(ctx, order); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
		if order.Status != models.OrderPending {
			t.Errorf("Status = %s, want pending default", order.Status)
		}

		item := &models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 2, UnitPrice: product.Price}
		if err := store.InsertOrderItem(ctx, item); err != nil {
			t.Fatalf("InsertOrderItem failed: %v", err)
		}

		payment := &models.Payment{
			OrderID: order.ID,
			Amount:  decimal.RequireFromString("100.00"),
			Method:  models.PaymentMpesa,
			Status:  models.PaymentCompleted,
		}
		if err := store.InsertPayment(ctx, payment); err != nil {
			t.Fatalf("InsertPayment failed: %v", err)
		}

		items, err := store.ListOrderItems(ctx, order.ID)
		if err != nil {
			t.Fatalf("ListOrderItems failed: %v", err)
		}
		if len(items) != 1 || !items[0].UnitPrice.Equal(product.Price) {
			t.Errorf("items = %+v, want one item at snapshot price", items)
		}

		payments, err := store.ListPayments(ctx, order.ID)
		if err != nil {
			t.Fatalf("ListPayments failed: %v", err)
		}
		if len(payments) != 1 || payments[0].Method != models.PaymentMpesa {
			t.Errorf("payments = %+v, want one mpesa payment", payments)
		}
	})

	t.Run("UpsertDebt creates then updates", func(t *testing.T) {
		order := &models.Order{CustomerID: customer.ID}
		if err := store.CreateOrder(ctx, order); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		debt := &models.Debt{
			OrderID:    order.ID,
			CustomerID: customer.ID,
			Balance:    decimal.RequireFromString("50.00"),
			DueDate:    order.CreatedAt + 3600,
		}
		if err := store.UpsertDebt(ctx, debt); err != nil {
			t.Fatalf("UpsertDebt (insert) failed: %v", err)
		}

		debt.Balance = decimal.Zero
		debt.IsPaid = true
		debt.PaidAt = order.CreatedAt + 60
		if err := store.UpsertDebt(ctx, debt); err != nil {
			t.Fatalf("UpsertDebt (update) failed: %v", err)
		}

		got, err := store.GetDebt(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetDebt failed: %v", err)
		}
		if !got.IsPaid || got.PaidAt != debt.PaidAt || !got.Balance.IsZero() {
			t.Errorf("debt = %+v, want settled copy", got)
		}
		if got.DueDate != debt.DueDate {
			t.Errorf("DueDate = %d, want preserved %d", got.DueDate, debt.DueDate)
		}
	})

	t.Run("deleting an order cascades to items, payments, and debt", func(t *testing.T) {
		order := &models.Order{CustomerID: customer.ID}
		if err := store.CreateOrder(ctx, order); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
		item := &models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 1, UnitPrice: product.Price}
		if err := store.InsertOrderItem(ctx, item); err != nil {
			t.Fatalf("InsertOrderItem failed: %v", err)
		}
		debt := &models.Debt{OrderID: order.ID, CustomerID: customer.ID, Balance: product.Price, DueDate: 1}
		if err := store.UpsertDebt(ctx, debt); err != nil {
			t.Fatalf("UpsertDebt failed: %v", err)
		}

		if err := store.DeleteOrder(ctx, order.ID); err != nil {
			t.Fatalf("DeleteOrder failed: %v", err)
		}

		if _, err := store.GetOrderItem(ctx, item.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("item survived cascade: %v", err)
		}
		if _, err := store.GetDebt(ctx, order.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("debt survived cascade: %v", err)
		}
	})

	t.Run("Mutate rolls back on error", func(t *testing.T) {
		before, err := store.GetProduct(ctx, product.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}

		wantErr := errors.New("boom")
		err = store.Mutate(ctx, func(tx storage.Tx) error {
			if err := tx.UpdateProductStock(ctx, product.ID, 1); err != nil {
				return err
			}
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("Mutate error = %v, want %v", err, wantErr)
		}

		after, err := store.GetProduct(ctx, product.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if after.Stock != before.Stock {
			t.Errorf("stock = %d after rollback, want %d", after.Stock, before.Stock)
		}
	})
}
