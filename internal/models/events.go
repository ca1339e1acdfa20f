package models

import "time"

// Event types
const (
	EventTypeOrderPlaced   = "ORDER_PLACED"
	EventTypeOrderApproved = "ORDER_APPROVED"
	EventTypeOrderRejected = "ORDER_REJECTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderPlacedEvent published after a settlement commits
type OrderPlacedEvent struct {
	BaseEvent
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	TotalPrice int64           `json:"total_price"`
	Items      []OrderItemData `json:"items"`
}

// OrderApprovedEvent published when an admin approves an order
type OrderApprovedEvent struct {
	BaseEvent
	OrderID int64 `json:"order_id"`
	UserID  int64 `json:"user_id"`
}

// OrderRejectedEvent published when an admin rejects an order and the
// total is refunded to the owner
type OrderRejectedEvent struct {
	BaseEvent
	OrderID  int64 `json:"order_id"`
	UserID   int64 `json:"user_id"`
	Refunded int64 `json:"refunded"`
}

// OrderItemData represents item data in events
type OrderItemData struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
}
