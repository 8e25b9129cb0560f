package ledger

import (
	"time"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
)

// ReconcileDebt recomputes a debt record from the order's current items and
// payments and applies the settlement state machine:
//
//	Outstanding → Settled  when the balance reaches exactly zero; PaidAt is
//	                       stamped only if not already set, so re-settling
//	                       keeps the original settlement date.
//	Settled → Outstanding  when a later mutation makes the balance positive
//	                       again; PaidAt is cleared.
//
// The function is idempotent: reconciling twice with the same inputs leaves
// the debt unchanged. It returns true if the settlement state flipped.
func ReconcileDebt(debt *models.Debt, items []models.OrderItem, payments []models.Payment, now time.Time) bool {
	wasPaid := debt.IsPaid

	debt.Balance = OutstandingBalance(items, payments)
	debt.IsPaid = debt.Balance.IsZero()

	switch {
	case debt.IsPaid && debt.PaidAt == 0:
		debt.PaidAt = now.Unix()
	case !debt.IsPaid:
		debt.PaidAt = 0
	}

	return wasPaid != debt.IsPaid
}
