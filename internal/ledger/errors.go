package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientStockError is returned when an item write asks for more units
// than the product has available. The mutation that triggered it must be
// rolled back in full.
type InsufficientStockError struct {
	// Available is the stock the product could offer for this write. For an
	// item edit this includes the units the old quantity had reserved.
	Available int

	// Requested is the quantity asked for.
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// PaymentExceedsBalanceError is returned when saving a payment would push the
// order's completed-payment total past its item total.
type PaymentExceedsBalanceError struct {
	// MaxAllowed is the largest amount this payment could carry without
	// overpaying the order.
	MaxAllowed decimal.Decimal
}

func (e *PaymentExceedsBalanceError) Error() string {
	return fmt.Sprintf("payment exceeds outstanding balance: at most %s allowed", e.MaxAllowed)
}
