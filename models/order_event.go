package models

import "time"

// OrderStatusEvent is one entry of an order's append-only status history.
// Rows are only ever inserted, never edited or deleted, while the parent
// order lives.
type OrderStatusEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Order     *Order      `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Note      string      `gorm:"type:text" json:"note"`
	Timestamp time.Time   `gorm:"not null" json:"timestamp"`
}
