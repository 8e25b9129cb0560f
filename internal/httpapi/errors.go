// Package httpapi exposes the JSON HTTP API over the reconciliation engine.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hamisi99-03/BusinessWebsite/internal/auth"
	"github.com/hamisi99-03/BusinessWebsite/internal/ledger"
	"github.com/hamisi99-03/BusinessWebsite/internal/service"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

// apiError is the JSON error payload. The optional fields carry the
// validation detail the user needs to correct the input.
type apiError struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Available  *int   `json:"available,omitempty"`
	Requested  *int   `json:"requested,omitempty"`
	MaxAllowed string `json:"max_allowed,omitempty"`
}

// writeJSONError writes a JSON error payload with the given status code.
func writeJSONError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, apiError{Error: message, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps engine and storage errors onto HTTP responses.
// Validation failures are user-correctable, so the payload carries enough
// detail to fix the input and resubmit.
func writeServiceError(w http.ResponseWriter, err error) {
	var stockErr *ledger.InsufficientStockError
	var balanceErr *ledger.PaymentExceedsBalanceError

	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, apiError{
			Error:     "insufficient_stock",
			Details:   stockErr.Error(),
			Available: &stockErr.Available,
			Requested: &stockErr.Requested,
		})
	case errors.As(err, &balanceErr):
		writeJSON(w, http.StatusUnprocessableEntity, apiError{
			Error:      "payment_exceeds_balance",
			Details:    balanceErr.Error(),
			MaxAllowed: balanceErr.MaxAllowed.String(),
		})
	case errors.Is(err, ledger.ErrNonPositiveQuantity),
		errors.Is(err, ledger.ErrNonPositiveAmount),
		errors.Is(err, service.ErrInvalidOrderStatus),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidPaymentStatus):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmailExists):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, "invalid_credentials", "")
	default:
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
