package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

// CreateCustomer inserts a new customer into the database.
func (c conn) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.CreatedAt == 0 {
		customer.CreatedAt = time.Now().Unix()
	}

	_, err := c.q.ExecContext(ctx,
		`INSERT INTO customers (id, email, name, phone, address, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		customer.ID, customer.Email, customer.Name, customer.Phone,
		customer.Address, customer.PasswordHash, customer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// GetCustomer retrieves a customer by ID.
func (c conn) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return c.scanCustomer(c.q.QueryRowContext(ctx,
		`SELECT id, email, name, phone, address, password_hash, created_at
		 FROM customers WHERE id = ?`, id), id)
}

// GetCustomerByEmail retrieves a customer by email address.
func (c conn) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return c.scanCustomer(c.q.QueryRowContext(ctx,
		`SELECT id, email, name, phone, address, password_hash, created_at
		 FROM customers WHERE email = ?`, email), email)
}

func (c conn) scanCustomer(row *sql.Row, key string) (*models.Customer, error) {
	customer := &models.Customer{}
	err := row.Scan(&customer.ID, &customer.Email, &customer.Name, &customer.Phone,
		&customer.Address, &customer.PasswordHash, &customer.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer %s: %w", key, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}
