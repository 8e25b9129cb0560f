package models

// Customer represents a registered buyer.
type Customer struct {
	// ID is the unique identifier for the customer (UUID format).
	ID string

	// Email is the customer's email address (unique). Used for login.
	Email string

	// Name is the display name of the customer.
	Name string

	// Phone is an optional contact number.
	Phone string

	// Address is an optional delivery address.
	Address string

	// PasswordHash is the bcrypt hash of the customer's password.
	// Never serialized to API responses.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
