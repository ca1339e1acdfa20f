package store

import (
	"context"
	"database/sql"
	"fmt"

	"bookstore-service/internal/models"
)

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts retrieves one catalog page, newest first, optionally
// filtered by category. categoryID 0 means all categories.
func (s *Store) ListProducts(ctx context.Context, categoryID int64, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	var err error
	if categoryID > 0 {
		err = s.db.SelectContext(ctx, &products,
			"SELECT * FROM products WHERE category_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
			categoryID, limit, offset)
	} else {
		err = s.db.SelectContext(ctx, &products,
			"SELECT * FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2",
			limit, offset)
	}
	return products, err
}

// CountProducts counts catalog rows for pagination
func (s *Store) CountProducts(ctx context.Context, categoryID int64) (int, error) {
	var count int
	var err error
	if categoryID > 0 {
		err = s.db.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM products WHERE category_id = $1", categoryID)
	} else {
		err = s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM products")
	}
	return count, err
}

// SearchProducts matches product names by case-insensitive substring
func (s *Store) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE name ILIKE '%' || $1 || '%' ORDER BY created_at DESC", query)
	return products, err
}

// CreateProduct persists a new product
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, image_url, author, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := s.db.GetContext(ctx, product, query,
		product.Name, product.Description, product.Price, product.ImageURL, product.Author, product.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct updates a product's fields
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, image_url = $4, author = $5, category_id = $6
		WHERE id = $7`,
		product.Name, product.Description, product.Price, product.ImageURL, product.Author,
		product.CategoryID, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a product from the catalog
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCategories retrieves all categories
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY id")
	return categories, err
}

// GetCategoryByID retrieves a category by ID
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category, "SELECT * FROM categories WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
