package models

import "time"

// Item is a quantity of one product owned by a user. While CartUserID is set
// it is a cart line; once OrderID is set it is an order line. Checkout leaves
// both set briefly until the cart association is disconnected.
//
// Quantity is always >= 1 while the row exists: updating a line to quantity 0
// deletes it instead of persisting a zero.
type Item struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  uint    `gorm:"index;not null" json:"product_id"`
	Product    Product `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	UserID     uint    `gorm:"index;not null" json:"user_id"`
	OrderID    *uint   `gorm:"index" json:"order_id"`
	CartUserID *uint   `gorm:"index" json:"cart_user_id"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	AddedAt    time.Time `json:"added_at"`
}
