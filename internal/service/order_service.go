package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore-service/internal/broker"
	"bookstore-service/internal/models"
	"bookstore-service/internal/store"
	"bookstore-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order settlement and lifecycle transitions
type OrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, eventPublisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// PlaceOrder settles a purchase of the given product for the user.
// Balance debit, order creation and cart-line removal happen in one
// transaction; on any failure the user's shopping state is untouched
// and a retry is safe.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, productID int64) (*models.Order, *models.OrderItem, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.SettlementLatency.Observe(time.Since(start).Seconds())
	}()

	order, item, err := s.store.PlaceOrderTx(ctx, userID, productID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInsufficientFunds):
			util.OrdersFailedTotal.WithLabelValues("insufficient_funds").Inc()
		case errors.Is(err, store.ErrNotFound):
			util.OrdersFailedTotal.WithLabelValues("not_found").Inc()
		default:
			util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
			s.logger.Error("Order settlement failed",
				zap.Int64("user_id", userID),
				zap.Int64("product_id", productID),
				zap.Error(err))
		}
		return nil, nil, err
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", userID),
		zap.Int64("total_price", order.TotalPrice))

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Items: []models.OrderItemData{{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}},
	}
	if err := s.eventPublisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}

	return order, item, nil
}

// ApproveOrder marks a pending order as approved. No balance effect.
func (s *OrderService) ApproveOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ApproveOrder")
	defer span.End()

	order, err := s.store.ApproveOrderTx(ctx, orderID)
	if err != nil {
		return nil, err
	}

	util.OrdersApprovedTotal.Inc()
	s.logger.Info("Order approved", zap.Int64("order_id", order.ID))

	event := &models.OrderApprovedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderApproved,
			Timestamp: time.Now(),
		},
		OrderID: order.ID,
		UserID:  order.UserID,
	}
	if err := s.eventPublisher.PublishOrderApproved(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderApproved event", zap.Error(err))
	}

	return order, nil
}

// RejectOrder marks a pending order as rejected and refunds the order
// total to its owner. The credit and the status change commit as one
// unit, so rejecting the same order twice cannot double-refund.
func (s *OrderService) RejectOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.RejectOrder")
	defer span.End()

	order, err := s.store.RejectOrderTx(ctx, orderID)
	if err != nil {
		return nil, err
	}

	util.OrdersRejectedTotal.Inc()
	util.RefundedAmountTotal.Add(float64(order.TotalPrice))
	s.logger.Info("Order rejected and refunded",
		zap.Int64("order_id", order.ID),
		zap.Int64("refunded", order.TotalPrice))

	event := &models.OrderRejectedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderRejected,
			Timestamp: time.Now(),
		},
		OrderID:  order.ID,
		UserID:   order.UserID,
		Refunded: order.TotalPrice,
	}
	if err := s.eventPublisher.PublishOrderRejected(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderRejected event", zap.Error(err))
	}

	return order, nil
}

// GetOrder retrieves an order with its items
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, []models.OrderItem, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.store.GetOrderItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load order items: %w", err)
	}

	return order, items, nil
}

// ListOrders retrieves all orders for the back-office
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx)
}

// ListUserOrders retrieves a user's own orders
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.store.GetOrdersByUserID(ctx, userID)
}
