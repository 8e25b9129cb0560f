package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/ledger"
	"github.com/hamisi99-03/BusinessWebsite/internal/models"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage/sqlite"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// setupService creates an OrderService over a temp-file SQLite database with
// one customer seeded.
func setupService(t *testing.T) (*OrderService, storage.Store, *models.Customer) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "ledger-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	customer := &models.Customer{Email: "amina@example.com", Name: "Amina", PasswordHash: "x"}
	if err := store.CreateCustomer(context.Background(), customer); err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	return NewOrderService(store, 30), store, customer
}

func seedProduct(t *testing.T, store storage.Store, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: "Sugar 1kg", Price: dec(price), Stock: stock}
	if err := store.CreateProduct(context.Background(), product); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func productStock(t *testing.T, store storage.Store, id string) int {
	t.Helper()
	product, err := store.GetProduct(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to get product: %v", err)
	}
	return product.Stock
}

func TestCreateOrder_InitialDebt(t *testing.T) {
	svc, _, customer := setupService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	debt, err := svc.DebtStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("DebtStatus failed: %v", err)
	}
	if debt.CustomerID != customer.ID {
		t.Errorf("debt customer = %s, want %s", debt.CustomerID, customer.ID)
	}
	if !debt.Balance.IsZero() {
		t.Errorf("initial balance = %s, want 0 for an empty order", debt.Balance)
	}
	wantDue := time.Unix(order.CreatedAt, 0).AddDate(0, 0, 30).Unix()
	if debt.DueDate != wantDue {
		t.Errorf("DueDate = %d, want %d", debt.DueDate, wantDue)
	}
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	svc, _, _ := setupService(t)

	if _, err := svc.CreateOrder(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("CreateOrder error = %v, want ErrNotFound", err)
	}
}

// Scenario A: stock=10, first item qty=4 succeeds leaving 6; second item
// qty=7 on the same product is rejected with available=6 and stock unchanged.
func TestAddItem_InsufficientStock(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "10.00", 10)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if _, err := svc.AddItem(ctx, order.ID, product.ID, 4); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if got := productStock(t, store, product.ID); got != 6 {
		t.Fatalf("stock = %d after first item, want 6", got)
	}

	_, err = svc.AddItem(ctx, order.ID, product.ID, 7)
	var stockErr *ledger.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("AddItem error = %v, want InsufficientStockError", err)
	}
	if stockErr.Available != 6 || stockErr.Requested != 7 {
		t.Errorf("error = {available:%d requested:%d}, want {available:6 requested:7}",
			stockErr.Available, stockErr.Requested)
	}
	if got := productStock(t, store, product.ID); got != 6 {
		t.Errorf("stock = %d after rejection, want unchanged 6", got)
	}
}

// Scenario B: total=100, a completed payment of 60 leaves balance 40; a
// second completed payment of 45 is rejected with maxAllowed=40.
func TestRecordPayment_ExceedsBalance(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "50.00", 10)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, order.ID, product.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if _, err := svc.RecordPayment(ctx, order.ID, dec("60.00"), models.PaymentCash, models.PaymentCompleted); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	summary, err := svc.GetOrderSummary(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrderSummary failed: %v", err)
	}
	if !summary.OutstandingBalance.Equal(dec("40")) {
		t.Fatalf("balance = %s, want 40", summary.OutstandingBalance)
	}

	_, err = svc.RecordPayment(ctx, order.ID, dec("45.00"), models.PaymentMpesa, models.PaymentCompleted)
	var balErr *ledger.PaymentExceedsBalanceError
	if !errors.As(err, &balErr) {
		t.Fatalf("RecordPayment error = %v, want PaymentExceedsBalanceError", err)
	}
	if !balErr.MaxAllowed.Equal(dec("40")) {
		t.Errorf("MaxAllowed = %s, want 40", balErr.MaxAllowed)
	}

	debt, err := svc.DebtStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("DebtStatus failed: %v", err)
	}
	if !debt.Balance.Equal(dec("40")) {
		t.Errorf("debt balance = %s after rejection, want still 40", debt.Balance)
	}
	if debt.IsPaid {
		t.Error("debt should remain outstanding")
	}
}

// Scenario C: total=50, full payment settles the debt and stamps paid_at;
// adding an item re-opens the debt and clears paid_at.
func TestDebt_SettleAndReopen(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "25.00", 10)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, order.ID, product.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if _, err := svc.RecordPayment(ctx, order.ID, dec("50.00"), models.PaymentMpesa, models.PaymentCompleted); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	debt, err := svc.DebtStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("DebtStatus failed: %v", err)
	}
	if !debt.IsPaid || debt.PaidAt == 0 {
		t.Fatalf("debt = %+v, want settled with paid_at", debt)
	}
	if !debt.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0", debt.Balance)
	}

	// Extra 20.00 of items reopens the debt.
	extra := seedProduct(t, store, "20.00", 5)
	if _, err := svc.AddItem(ctx, order.ID, extra.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	debt, err = svc.DebtStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("DebtStatus failed: %v", err)
	}
	if debt.IsPaid {
		t.Error("debt should have reopened")
	}
	if debt.PaidAt != 0 {
		t.Errorf("PaidAt = %d after reopening, want cleared", debt.PaidAt)
	}
	if !debt.Balance.Equal(dec("20")) {
		t.Errorf("balance = %s, want 20", debt.Balance)
	}

	// Settling again stamps a fresh date (the old one was cleared).
	if _, err := svc.RecordPayment(ctx, order.ID, dec("20.00"), models.PaymentCash, models.PaymentCompleted); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	debt, err = svc.DebtStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("DebtStatus failed: %v", err)
	}
	if !debt.IsPaid || debt.PaidAt == 0 {
		t.Errorf("debt = %+v, want settled again", debt)
	}
}

// Scenario D: deleting a qty=3 item on a product at stock=5 restores stock to
// 8, and a fresh qty=3 item afterwards succeeds.
func TestDeleteItem_RestoresStock(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "10.00", 8)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	item, err := svc.AddItem(ctx, order.ID, product.ID, 3)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if got := productStock(t, store, product.ID); got != 5 {
		t.Fatalf("stock = %d, want 5", got)
	}

	if err := svc.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if got := productStock(t, store, product.ID); got != 8 {
		t.Errorf("stock = %d after delete, want 8", got)
	}

	if err := svc.DeleteItem(ctx, item.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteItem error = %v, want ErrNotFound", err)
	}

	if _, err := svc.AddItem(ctx, order.ID, product.ID, 3); err != nil {
		t.Errorf("recreate after delete failed: %v", err)
	}
	if got := productStock(t, store, product.ID); got != 5 {
		t.Errorf("stock = %d after recreate, want 5", got)
	}
}

func TestUpdateItemQuantity_AdjustsStockByDelta(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "10.00", 10)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	item, err := svc.AddItem(ctx, order.ID, product.ID, 4)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// Grow 4 → 9: available = 6 + 4 = 10, allowed; stock drops to 1.
	if _, err := svc.UpdateItemQuantity(ctx, item.ID, 9); err != nil {
		t.Fatalf("UpdateItemQuantity failed: %v", err)
	}
	if got := productStock(t, store, product.ID); got != 1 {
		t.Fatalf("stock = %d, want 1", got)
	}

	// Grow 9 → 11: available = 1 + 9 = 10, rejected; nothing changes.
	_, err = svc.UpdateItemQuantity(ctx, item.ID, 11)
	var stockErr *ledger.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("UpdateItemQuantity error = %v, want InsufficientStockError", err)
	}
	if stockErr.Available != 10 {
		t.Errorf("Available = %d, want 10", stockErr.Available)
	}
	if got := productStock(t, store, product.ID); got != 1 {
		t.Errorf("stock = %d after rejection, want 1", got)
	}

	// Shrink 9 → 2 always succeeds; stock returns to 8.
	if _, err := svc.UpdateItemQuantity(ctx, item.ID, 2); err != nil {
		t.Fatalf("UpdateItemQuantity failed: %v", err)
	}
	if got := productStock(t, store, product.ID); got != 8 {
		t.Errorf("stock = %d, want 8", got)
	}

	// Debt follows the quantity: 2 × 10.00 = 20.
	debt, err := svc.DebtStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("DebtStatus failed: %v", err)
	}
	if !debt.Balance.Equal(dec("20")) {
		t.Errorf("balance = %s, want 20", debt.Balance)
	}
}

func TestUnitPrice_SnapshotSurvivesPriceChange(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "30.00", 10)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, order.ID, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// Catalog price changes after the item was created.
	if err := store.UpdateProductPrice(ctx, product.ID, dec("99.00")); err != nil {
		t.Fatalf("UpdateProductPrice failed: %v", err)
	}

	summary, err := svc.GetOrderSummary(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrderSummary failed: %v", err)
	}
	if !summary.TotalAmount.Equal(dec("30")) {
		t.Errorf("total = %s, want snapshot price 30", summary.TotalAmount)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "35.00", 10)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, order.ID, product.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := svc.RecordPayment(ctx, order.ID, dec("30.00"), models.PaymentCash, models.PaymentCompleted); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	first, err := svc.Reconcile(ctx, order.ID)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	second, err := svc.Reconcile(ctx, order.ID)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if !first.Balance.Equal(second.Balance) || first.IsPaid != second.IsPaid || first.PaidAt != second.PaidAt {
		t.Errorf("reconcile not idempotent: %+v vs %+v", first, second)
	}
	if !second.Balance.Equal(dec("40")) {
		t.Errorf("balance = %s, want 40", second.Balance)
	}
}

func TestPendingPayment_DoesNotSettle(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "40.00", 10)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, order.ID, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	payment, err := svc.RecordPayment(ctx, order.ID, dec("40.00"), models.PaymentMpesa, models.PaymentPending)
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	debt, err := svc.DebtStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("DebtStatus failed: %v", err)
	}
	if debt.IsPaid || !debt.Balance.Equal(dec("40")) {
		t.Fatalf("debt = %+v, want outstanding 40 while payment pending", debt)
	}

	// Completing the payment settles the debt; siblings are untouched.
	if _, err := svc.UpdatePayment(ctx, payment.ID, dec("40.00"), models.PaymentMpesa, models.PaymentCompleted); err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}
	debt, err = svc.DebtStatus(ctx, order.ID)
	if err != nil {
		t.Fatalf("DebtStatus failed: %v", err)
	}
	if !debt.IsPaid || !debt.Balance.IsZero() {
		t.Errorf("debt = %+v, want settled after completion", debt)
	}
}

func TestDeleteOrder_CascadesAndRestoresStock(t *testing.T) {
	svc, store, customer := setupService(t)
	ctx := context.Background()
	product := seedProduct(t, store, "15.00", 10)

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, order.ID, product.ID, 4); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := svc.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("DeleteOrder failed: %v", err)
	}

	if got := productStock(t, store, product.ID); got != 10 {
		t.Errorf("stock = %d after order delete, want 10", got)
	}
	if _, err := svc.DebtStatus(ctx, order.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DebtStatus error = %v, want ErrNotFound after cascade", err)
	}
}

func TestUpdateOrderStatus_StampsShippedOnce(t *testing.T) {
	svc, _, customer := setupService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, customer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	shipped, err := svc.UpdateOrderStatus(ctx, order.ID, models.OrderShipped)
	if err != nil {
		t.Fatalf("UpdateOrderStatus failed: %v", err)
	}
	if shipped.ShippedAt == 0 {
		t.Fatal("ShippedAt not stamped")
	}

	delivered, err := svc.UpdateOrderStatus(ctx, order.ID, models.OrderDelivered)
	if err != nil {
		t.Fatalf("UpdateOrderStatus failed: %v", err)
	}
	if delivered.ShippedAt != shipped.ShippedAt {
		t.Errorf("ShippedAt = %d, want preserved %d", delivered.ShippedAt, shipped.ShippedAt)
	}

	if _, err := svc.UpdateOrderStatus(ctx, order.ID, "lost"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Errorf("UpdateOrderStatus error = %v, want ErrInvalidOrderStatus", err)
	}
}
