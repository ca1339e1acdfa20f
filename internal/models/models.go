package models

import "time"

// User represents a storefront account. Balance is stored in cents.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Address      string    `db:"address" json:"address,omitempty"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	Balance      int64     `db:"balance" json:"balance"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Category groups products
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Product represents a book in the catalog. Price is in cents.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Price       int64     `db:"price" json:"price"`
	ImageURL    string    `db:"image_url" json:"image_url,omitempty"`
	Author      string    `db:"author" json:"author"`
	CategoryID  int64     `db:"category_id" json:"category_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Cart is a user's single staging area for purchases
type Cart struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CartItem is a quantity-bearing line in a cart
type CartItem struct {
	ID        int64 `db:"id" json:"id"`
	CartID    int64 `db:"cart_id" json:"cart_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
}

// CartLine is a cart item joined with its product for display
type CartLine struct {
	ID          int64  `db:"id" json:"id"`
	ProductID   int64  `db:"product_id" json:"product_id"`
	ProductName string `db:"product_name" json:"product_name"`
	UnitPrice   int64  `db:"unit_price" json:"unit_price"`
	Quantity    int    `db:"quantity" json:"quantity"`
}

// Order represents a placed order. TotalPrice is in cents.
type Order struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	TotalPrice    int64     `db:"total_price" json:"total_price"`
	Status        string    `db:"status" json:"status"`
	PaymentMethod string    `db:"payment_method" json:"payment_method,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// OrderItem captures a product at order time. UnitPrice is frozen at
// settlement and never re-derived from the product.
type OrderItem struct {
	ID        int64 `db:"id" json:"id"`
	OrderID   int64 `db:"order_id" json:"order_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
	UnitPrice int64 `db:"unit_price" json:"unit_price"`
}

// Feedback is a user message with an optional admin response
type Feedback struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Content   string    `db:"content" json:"content"`
	Response  *string   `db:"response" json:"response,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Order statuses. PENDING_APPROVAL is the only non-terminal state.
const (
	OrderStatusPending  = "PENDING_APPROVAL"
	OrderStatusApproved = "APPROVED"
	OrderStatusRejected = "REJECTED"
)

// IsTerminalStatus reports whether no further transition is permitted
func IsTerminalStatus(status string) bool {
	return status == OrderStatusApproved || status == OrderStatusRejected
}

// OrderAudit is one recorded lifecycle event for an order
type OrderAudit struct {
	ID         int64     `db:"id" json:"id"`
	OrderID    int64     `db:"order_id" json:"order_id"`
	EventID    string    `db:"event_id" json:"event_id"`
	EventType  string    `db:"event_type" json:"event_type"`
	Detail     string    `db:"detail" json:"detail"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
}

// ProcessedEvent for consumer idempotency
type ProcessedEvent struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
