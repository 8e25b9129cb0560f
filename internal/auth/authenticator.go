package auth

import (
	"context"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// OAuth, etc.) without changing the HTTP layer.
type Authenticator interface {
	// Register creates a new customer account with the given email and credential.
	// Returns the created customer or an error if registration fails.
	Register(ctx context.Context, email, name, credential string) (*models.Customer, error)

	// Authenticate verifies the customer's credentials and returns the customer
	// if successful. Returns an error if authentication fails.
	Authenticate(ctx context.Context, email, credential string) (*models.Customer, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements.
	ValidateCredential(credential string) error
}
