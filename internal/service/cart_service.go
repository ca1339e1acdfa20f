package service

import (
	"context"

	"bookstore-service/internal/models"
	"bookstore-service/internal/store"
	"bookstore-service/internal/util"

	"go.uber.org/zap"
)

// CartService manages the user's single cart and its lines
type CartService struct {
	store       *store.Store
	maxQuantity int
	logger      *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store *store.Store, maxQuantity int) *CartService {
	return &CartService{
		store:       store,
		maxQuantity: maxQuantity,
		logger:      util.GetLogger(),
	}
}

// ValidateQuantity checks a cart quantity against the allowed range
func (s *CartService) ValidateQuantity(quantity int) error {
	if quantity < 1 || quantity > s.maxQuantity {
		return ErrInvalidQuantity
	}
	return nil
}

// AddToCart stages one more unit of a product in the user's cart,
// creating the cart and the line as needed. Adding the same product
// twice yields one line with quantity 2.
func (s *CartService) AddToCart(ctx context.Context, userID, productID int64) (*models.CartItem, error) {
	if _, err := s.store.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.store.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.store.UpsertCartItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}

	util.CartMutationsTotal.WithLabelValues("add").Inc()
	s.logger.Debug("Cart line staged",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", item.Quantity))
	return item, nil
}

// UpdateItem sets the quantity of a line in the user's cart
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error {
	if err := s.ValidateQuantity(quantity); err != nil {
		return err
	}

	if err := s.store.UpdateCartItemQuantity(ctx, userID, itemID, quantity); err != nil {
		return err
	}

	util.CartMutationsTotal.WithLabelValues("update").Inc()
	return nil
}

// RemoveItem deletes a line from the user's cart. Lines in other
// users' carts report ErrNotFound.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if err := s.store.DeleteCartItem(ctx, userID, itemID); err != nil {
		return err
	}

	util.CartMutationsTotal.WithLabelValues("remove").Inc()
	return nil
}

// CartView is the user's cart with priced lines and a subtotal
type CartView struct {
	Lines    []models.CartLine `json:"lines"`
	Subtotal int64             `json:"subtotal"`
}

// ViewCart returns the user's cart lines with a computed subtotal. A
// user without a cart sees an empty view.
func (s *CartService) ViewCart(ctx context.Context, userID int64) (*CartView, error) {
	lines, err := s.store.ListCartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return &CartView{Lines: lines, Subtotal: cartSubtotal(lines)}, nil
}

func cartSubtotal(lines []models.CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}
