package models

import "time"

// OrderStatus is the single closed status set shared by the order's
// current-status field and every history entry, so the two can never
// drift apart.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a member of the status enum.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusDelivered, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OrderTransitions maps each status to the statuses it may move to.
// A nil map disables adjacency checking entirely: any enum value is
// accepted as the next status, which is how the system originally
// behaved and what staff-override tooling may still rely on.
type OrderTransitions map[OrderStatus][]OrderStatus

// Allowed reports whether from -> to is a legal transition under t.
func (t OrderTransitions) Allowed(from, to OrderStatus) bool {
	if t == nil {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DefaultOrderTransitions is the forward fulfillment chain, with
// cancellation reachable from every non-terminal status.
var DefaultOrderTransitions = OrderTransitions{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusCompleted, StatusCancelled},
}

const (
	FulfillmentDineIn   = "dine-in"
	FulfillmentTakeaway = "takeaway"
	FulfillmentDelivery = "delivery"
)

// ValidFulfillmentType reports whether t is one of the three order types.
func ValidFulfillmentType(t string) bool {
	return t == FulfillmentDineIn || t == FulfillmentTakeaway || t == FulfillmentDelivery
}

const (
	PaymentCash    = "cash"
	PaymentCard    = "card"
	PaymentMobile  = "mobile payment"
	PaymentNotPaid = "not paid"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentMobile || m == PaymentNotPaid
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// DeliveryAddress is stored as a JSON document on the order row; it is
// only present for delivery orders.
type DeliveryAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type Order struct {
	ID                  uint               `gorm:"primaryKey" json:"id"`
	OrderNumber         string             `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_number"`
	UserID              uint               `gorm:"not null;index" json:"user_id"`
	User                *User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items               []OrderItem        `gorm:"foreignKey:OrderID" json:"items"`
	FulfillmentType     string             `gorm:"type:varchar(20);not null;index" json:"fulfillment_type"`
	TableNumber         *int               `json:"table_number,omitempty"`
	DeliveryAddress     *DeliveryAddress   `gorm:"serializer:json" json:"delivery_address,omitempty"`
	TotalAmount         float64            `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Status              OrderStatus        `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod       string             `gorm:"type:varchar(20);not null;default:'not paid'" json:"payment_method"`
	PaymentStatus       string             `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	SpecialInstructions string             `gorm:"type:text" json:"special_instructions"`
	History             []OrderStatusEvent `gorm:"foreignKey:OrderID" json:"history"`
	DeliveredAt         *time.Time         `json:"delivered_at,omitempty"`
	CreatedAt           time.Time          `gorm:"not null;index" json:"created_at"`
	UpdatedAt           time.Time          `gorm:"not null" json:"updated_at"`
}

// ComputeTotal returns the sum of price x quantity over the current
// items. The stored TotalAmount must equal this after every persistence
// of the item list.
func (o *Order) ComputeTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
