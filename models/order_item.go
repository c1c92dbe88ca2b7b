package models

import "time"

// OrderItem is a frozen snapshot of a menu item at order-creation time.
// Name and Price are copied out of the catalog and never re-synced, so
// later catalog edits cannot change what the customer agreed to pay.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	Order      *Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint      `gorm:"not null" json:"menu_item_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Note       string    `gorm:"type:text" json:"note"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
