package ledger

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
)

var (
	// ErrNonPositiveAmount rejects zero or negative payment amounts.
	ErrNonPositiveAmount = errors.New("payment amount must be positive")

	// ErrNonPositiveQuantity rejects zero or negative item quantities.
	ErrNonPositiveQuantity = errors.New("item quantity must be positive")
)

// ValidatePayment checks that recording (or editing) a payment of the given
// amount would not push the order's completed-payment total past its item
// total. excludeID names the payment being edited so its old amount does not
// count against itself; pass "" for a new payment.
//
// The cap applies to completed payments only — a pending payment's amount is
// still validated against the balance so it cannot later complete into an
// overpayment.
func ValidatePayment(items []models.OrderItem, payments []models.Payment, amount decimal.Decimal, excludeID string) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	paidByOthers := decimal.Zero
	for _, p := range payments {
		if p.ID == excludeID {
			continue
		}
		if p.Status == models.PaymentCompleted {
			paidByOthers = paidByOthers.Add(p.Amount)
		}
	}

	maxAllowed := TotalAmount(items).Sub(paidByOthers)
	if maxAllowed.IsNegative() {
		maxAllowed = decimal.Zero
	}
	if amount.GreaterThan(maxAllowed) {
		return &PaymentExceedsBalanceError{MaxAllowed: maxAllowed}
	}
	return nil
}
