package store

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(80) NOT NULL UNIQUE,
		email         VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(128) NOT NULL,
		address       VARCHAR(128) NOT NULL DEFAULT '',
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		balance       BIGINT NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id   BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price       BIGINT NOT NULL CHECK (price > 0),
		image_url   VARCHAR(200) NOT NULL DEFAULT '',
		author      VARCHAR(100) NOT NULL,
		category_id BIGINT NOT NULL REFERENCES categories(id),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS carts (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id         BIGSERIAL PRIMARY KEY,
		cart_id    BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity   INT NOT NULL DEFAULT 1 CHECK (quantity >= 1)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		total_price    BIGINT NOT NULL,
		status         VARCHAR(50) NOT NULL DEFAULT 'PENDING_APPROVAL',
		payment_method VARCHAR(50) NOT NULL DEFAULT '',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         BIGSERIAL PRIMARY KEY,
		order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity   INT NOT NULL,
		unit_price BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id),
		content    TEXT NOT NULL,
		response   TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_audit (
		id          BIGSERIAL PRIMARY KEY,
		order_id    BIGINT NOT NULL,
		event_id    VARCHAR(64) NOT NULL,
		event_type  VARCHAR(50) NOT NULL,
		detail      TEXT NOT NULL DEFAULT '',
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS processed_events (
		event_id     VARCHAR(64) PRIMARY KEY,
		event_type   VARCHAR(50) NOT NULL,
		processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id)`,
}

var defaultCategories = []string{"domestic books", "foreign books", "other books"}

// Migrate creates the schema if it does not exist
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Seed creates the admin account and the default categories if absent.
// The password hash is produced by the caller.
func (s *Store) Seed(ctx context.Context, adminUsername, adminEmail, adminPasswordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, address, is_admin)
		VALUES ($1, $2, $3, 'Admin Address', TRUE)
		ON CONFLICT (username) DO NOTHING`,
		adminUsername, adminEmail, adminPasswordHash)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	for _, name := range defaultCategories {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}
	return nil
}
