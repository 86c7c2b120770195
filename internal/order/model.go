package order

import "time"

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCash PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// StatusEntry is one append-only row of an order's status history.
type StatusEntry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderItem freezes a menu item's name and price at order time. Later
// catalog edits or deletions never touch it.
type OrderItem struct {
	ID         string  `json:"_id"`
	OrderID    string  `json:"order"`
	MenuItemID string  `json:"menuItem"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type Order struct {
	ID            string        `json:"_id"`
	StudentID     string        `json:"student"`
	CanteenID     string        `json:"canteen"`
	TotalAmount   float64       `json:"totalAmount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Status        Status        `json:"orderStatus"`
	StatusHistory []StatusEntry `json:"statusHistory"`
	CreatedAt     time.Time     `json:"createdAt"`

	// Denormalized display fields, filled per view.
	StudentName string `json:"studentName,omitempty"`
	CanteenName string `json:"canteenName,omitempty"`
	CanteenUpi  string `json:"canteenUpiId,omitempty"`

	// Items are loaded on the detail views only.
	Items []OrderItem `json:"items,omitempty"`
}

// CanteenStats is the manager dashboard summary. Revenue counts
// completed orders only.
type CanteenStats struct {
	OrderCount   int64   `json:"orderCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}
