package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamisi99-03/BusinessWebsite/internal/models"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

// CreateProduct inserts a new product into the database.
func (c conn) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	_, err := c.q.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, stock)
		 VALUES (?, ?, ?, ?, ?)`,
		product.ID, product.Name, product.Description, product.Price.String(), product.Stock,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by ID.
func (c conn) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product := &models.Product{}
	var price string

	err := c.q.QueryRowContext(ctx,
		`SELECT id, name, description, price, stock FROM products WHERE id = ?`, id,
	).Scan(&product.ID, &product.Name, &product.Description, &price, &product.Stock)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("failed to parse product price: %w", err)
	}
	return product, nil
}

// ListProducts retrieves all products ordered by name.
func (c conn) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := c.q.QueryContext(ctx,
		`SELECT id, name, description, price, stock FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		var price string
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &price, &product.Stock); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if product.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("failed to parse product price: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// UpdateProductPrice changes the catalog price. Existing order items keep
// their unit-price snapshots.
func (c conn) UpdateProductPrice(ctx context.Context, id string, price decimal.Decimal) error {
	res, err := c.q.ExecContext(ctx,
		`UPDATE products SET price = ? WHERE id = ?`, price.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update product price: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("product %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// UpdateProductStock sets the product's stock count.
func (c conn) UpdateProductStock(ctx context.Context, id string, stock int) error {
	res, err := c.q.ExecContext(ctx,
		`UPDATE products SET stock = ? WHERE id = ?`, stock, id)
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("product %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
