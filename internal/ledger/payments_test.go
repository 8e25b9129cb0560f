package ledger

import (
	"errors"
	"testing"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
)

func TestValidatePayment(t *testing.T) {
	// Order total = 100.00 throughout.
	items := []models.OrderItem{item("50.00", 2)}

	tests := []struct {
		name           string
		payments       []models.Payment
		amount         string
		excludeID      string
		wantMaxAllowed string // set implies a PaymentExceedsBalanceError
		wantErr        error
	}{
		{
			name:   "first payment within total",
			amount: "60.00",
		},
		{
			name: "second payment exceeds remainder",
			payments: []models.Payment{
				{ID: "p1", Amount: dec("60.00"), Status: models.PaymentCompleted},
			},
			amount:         "45.00",
			wantMaxAllowed: "40",
		},
		{
			name: "second payment exactly settles",
			payments: []models.Payment{
				{ID: "p1", Amount: dec("60.00"), Status: models.PaymentCompleted},
			},
			amount: "40.00",
		},
		{
			name: "pending siblings do not reserve balance",
			payments: []models.Payment{
				{ID: "p1", Amount: dec("90.00"), Status: models.PaymentPending},
			},
			amount: "100.00",
		},
		{
			name: "editing a payment excludes its own old amount",
			payments: []models.Payment{
				{ID: "p1", Amount: dec("60.00"), Status: models.PaymentCompleted},
				{ID: "p2", Amount: dec("40.00"), Status: models.PaymentCompleted},
			},
			amount:    "40.00",
			excludeID: "p1",
		},
		{
			name: "editing cannot exceed remainder left by siblings",
			payments: []models.Payment{
				{ID: "p1", Amount: dec("60.00"), Status: models.PaymentCompleted},
				{ID: "p2", Amount: dec("30.00"), Status: models.PaymentCompleted},
			},
			amount:         "50.00",
			excludeID:      "p2",
			wantMaxAllowed: "40",
		},
		{
			name:    "zero amount rejected",
			amount:  "0",
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "negative amount rejected",
			amount:  "-5.00",
			wantErr: ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayment(items, tt.payments, dec(tt.amount), tt.excludeID)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ValidatePayment error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantMaxAllowed != "":
				var balErr *PaymentExceedsBalanceError
				if !errors.As(err, &balErr) {
					t.Fatalf("ValidatePayment error = %v, want PaymentExceedsBalanceError", err)
				}
				if !balErr.MaxAllowed.Equal(dec(tt.wantMaxAllowed)) {
					t.Errorf("MaxAllowed = %s, want %s", balErr.MaxAllowed, tt.wantMaxAllowed)
				}
			default:
				if err != nil {
					t.Errorf("ValidatePayment failed: %v", err)
				}
			}
		})
	}
}
