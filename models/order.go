package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	// Kitchen flow for an order, in the usual progression
	OrderStatusProcessing OrderStatus = "Processing" // Order placed, awaiting the kitchen
	OrderStatusPreparing  OrderStatus = "Preparing"  // Being made
	OrderStatusPrepared   OrderStatus = "Prepared"   // Ready for pickup or dispatch
	OrderStatusOTW        OrderStatus = "OTW"        // Out for delivery
	OrderStatusCompleted  OrderStatus = "Completed"  // Handed over to the customer
	OrderStatusCancelled  OrderStatus = "Cancelled"  // Terminal, reachable from any non-terminal state
)

// IsTerminal reports whether s closes the order. Terminal writes stamp
// CompletedAt; no other write may touch it.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Ref         string      `gorm:"uniqueIndex;not null" json:"ref"`
	UserID      uint        `gorm:"index;not null" json:"user_id"`
	User        User        `json:"user"`
	Items       []Item      `gorm:"foreignKey:OrderID" json:"items"`
	Delivery    bool        `json:"delivery"` // false = pickup
	Total       float64     `json:"total"`
	Status      OrderStatus `gorm:"type:VARCHAR(20);default:'Processing'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt *time.Time  `json:"completed_at"`
}

// NewOrderRef generates a unique order reference, e.g. 20250908130500-<uuid>.
func NewOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
