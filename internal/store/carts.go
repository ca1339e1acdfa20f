package store

import (
	"context"
	"database/sql"
	"fmt"

	"bookstore-service/internal/models"
)

// GetCartByUserID retrieves the user's cart, or ErrNotFound if none
// exists yet. Carts are created lazily on the first add.
func (s *Store) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.GetContext(ctx, &cart, "SELECT * FROM carts WHERE user_id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateCart fetches the user's cart, creating it if absent
func (s *Store) GetOrCreateCart(ctx context.Context, userID int64) (*models.Cart, error) {
	cart, err := s.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	cart = &models.Cart{UserID: userID}
	err = s.db.GetContext(ctx, cart,
		"INSERT INTO carts (user_id) VALUES ($1) RETURNING id, created_at", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

// GetCartItem retrieves the line for a product in a cart
func (s *Store) GetCartItem(ctx context.Context, cartID, productID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.GetContext(ctx, &item,
		"SELECT * FROM cart_items WHERE cart_id = $1 AND product_id = $2", cartID, productID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertCartItem increments an existing line by one or creates it
// with quantity 1.
func (s *Store) UpsertCartItem(ctx context.Context, cartID, productID int64) (*models.CartItem, error) {
	item, err := s.GetCartItem(ctx, cartID, productID)
	if err == nil {
		item.Quantity++
		_, err = s.db.ExecContext(ctx,
			"UPDATE cart_items SET quantity = quantity + 1 WHERE id = $1", item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to increment cart item: %w", err)
		}
		return item, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	item = &models.CartItem{CartID: cartID, ProductID: productID, Quantity: 1}
	err = s.db.GetContext(ctx, &item.ID,
		"INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, 1) RETURNING id",
		cartID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart item: %w", err)
	}
	return item, nil
}

// UpdateCartItemQuantity sets the quantity of a line owned by the
// given user. Returns ErrNotFound if the line is not in their cart.
func (s *Store) UpdateCartItemQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $1
		FROM carts
		WHERE cart_items.id = $2 AND cart_items.cart_id = carts.id AND carts.user_id = $3`,
		quantity, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
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

// DeleteCartItem removes a line owned by the given user. Returns
// ErrNotFound if the line is not in their cart.
func (s *Store) DeleteCartItem(ctx context.Context, userID, itemID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		USING carts
		WHERE cart_items.id = $1 AND cart_items.cart_id = carts.id AND carts.user_id = $2`,
		itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
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

// ListCartLines retrieves the user's cart lines joined with product
// name and current price.
func (s *Store) ListCartLines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.db.SelectContext(ctx, &lines, `
		SELECT ci.id, ci.product_id, p.name AS product_name, p.price AS unit_price, ci.quantity
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		JOIN products p ON ci.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY ci.id`, userID)
	return lines, err
}
