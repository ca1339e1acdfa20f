package store

import (
	"context"
	"database/sql"
	"fmt"

	"bookstore-service/internal/models"
)

// PlaceOrderTx settles a purchase of one product in a single
// transaction: the user row is locked, the staged cart quantity (or 1)
// is priced at the product's current price, the balance is debited,
// the order and its item are created with the unit price frozen, and
// the cart line, if any, is removed. Any failure rolls the whole
// sequence back.
//
// The row lock serializes concurrent settlements for the same user, so
// two requests cannot both pass the sufficiency check against a stale
// balance.
func (s *Store) PlaceOrderTx(ctx context.Context, userID, productID int64) (*models.Order, *models.OrderItem, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	var product models.Product
	err = tx.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", productID)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	// A staged cart line for this product dictates the settlement
	// quantity; a direct buy with no line settles a single unit.
	quantity := 1
	var cartItemID int64
	var item models.CartItem
	err = tx.GetContext(ctx, &item, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		WHERE c.user_id = $1 AND ci.product_id = $2`, userID, productID)
	if err == nil {
		quantity = item.Quantity
		cartItemID = item.ID
	} else if err != sql.ErrNoRows {
		return nil, nil, err
	}

	total := product.Price * int64(quantity)
	if balance < total {
		return nil, nil, ErrInsufficientFunds
	}

	if err := debitBalanceTx(ctx, tx, userID, total); err != nil {
		return nil, nil, fmt.Errorf("failed to debit balance: %w", err)
	}

	order := &models.Order{
		UserID:     userID,
		TotalPrice: total,
		Status:     models.OrderStatusPending,
	}
	err = tx.GetContext(ctx, order, `
		INSERT INTO orders (user_id, total_price, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		order.UserID, order.TotalPrice, order.Status)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderItem := &models.OrderItem{
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
	}
	err = tx.GetContext(ctx, &orderItem.ID, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		orderItem.OrderID, orderItem.ProductID, orderItem.Quantity, orderItem.UnitPrice)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create order item: %w", err)
	}

	if cartItemID != 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE id = $1", cartItemID); err != nil {
			return nil, nil, fmt.Errorf("failed to clear cart line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit settlement: %w", err)
	}
	return order, orderItem, nil
}

// ApproveOrderTx transitions a pending order to APPROVED. Terminal
// orders return ErrOrderFinalized.
func (s *Store) ApproveOrderTx(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.transitionOrder(ctx, orderID, models.OrderStatusApproved, false)
}

// RejectOrderTx transitions a pending order to REJECTED and credits
// the order total back to its owner in the same transaction, so the
// refund is applied exactly once.
func (s *Store) RejectOrderTx(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.transitionOrder(ctx, orderID, models.OrderStatusRejected, true)
}

func (s *Store) transitionOrder(ctx context.Context, orderID int64, status string, refund bool) (*models.Order, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var order models.Order
	err = tx.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", orderID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if models.IsTerminalStatus(order.Status) {
		return nil, ErrOrderFinalized
	}

	if refund {
		if err := creditBalanceTx(ctx, tx, order.UserID, order.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to refund order total: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, orderID); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order transition: %w", err)
	}
	order.Status = status
	return &order, nil
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByUserID retrieves orders for a user
func (s *Store) GetOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return orders, err
}

// ListOrders retrieves all orders for the back-office
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

// GetOrderItemsByOrderID retrieves all items for an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", orderID)
	return items, err
}

// InsertOrderAudit records one lifecycle event for an order
func (s *Store) InsertOrderAudit(ctx context.Context, audit *models.OrderAudit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO order_audit (order_id, event_id, event_type, detail)
		VALUES ($1, $2, $3, $4)`,
		audit.OrderID, audit.EventID, audit.EventType, audit.Detail)
	return err
}

// IsEventProcessed checks if an event has been processed
func (s *Store) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM processed_events WHERE event_id = $1)", eventID)
	return exists, err
}

// MarkEventProcessed marks an event as processed
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO processed_events (event_id, event_type) VALUES ($1, $2) ON CONFLICT (event_id) DO NOTHING",
		eventID, eventType)
	return err
}
