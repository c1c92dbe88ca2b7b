package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"contactless-ordering/models"
	"contactless-ordering/utils"
)

// orderSortColumns whitelists the fields callers may sort order listings
// by, mapping API names to columns.
var orderSortColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"total_amount": "total_amount",
	"status":       "status",
}

// OrderService owns the order aggregate. The transition graph is an
// explicit parameter: nil accepts any status enum value as the next
// status (trusting staff tooling), while a non-nil graph rejects
// transitions outside its adjacency lists.
type OrderService struct {
	db          *gorm.DB
	transitions models.OrderTransitions
}

func NewOrderService(db *gorm.DB, transitions models.OrderTransitions) *OrderService {
	return &OrderService{db: db, transitions: transitions}
}

type CreateOrderInput struct {
	Lines               []LineRequest
	FulfillmentType     string
	TableNumber         *int
	DeliveryAddress     *models.DeliveryAddress
	SpecialInstructions string
	PaymentMethod       string
}

// OrderPatch is the pre-fulfillment edit set. A nil field is left
// untouched; Lines, when present, replaces the whole item list. Status is
// deliberately absent: it only moves through Transition.
type OrderPatch struct {
	Lines               []LineRequest
	TableNumber         *int
	DeliveryAddress     *models.DeliveryAddress
	SpecialInstructions *string
	PaymentMethod       *string
}

type OrderFilter struct {
	Status          string
	FulfillmentType string
	PaymentStatus   string
}

func validateLines(lines []LineRequest) error {
	if len(lines) == 0 {
		return utils.NewError(utils.KindValidationFailed, "Items must be a non-empty array")
	}
	for _, line := range lines {
		if line.MenuItemID == 0 {
			return utils.NewError(utils.KindValidationFailed, "Menu item ID is required")
		}
		if line.Quantity < 1 {
			return utils.NewError(utils.KindValidationFailed, "Quantity must be at least 1")
		}
	}
	return nil
}

func validateConditionalFields(in *CreateOrderInput) error {
	switch in.FulfillmentType {
	case models.FulfillmentDineIn:
		if in.TableNumber == nil || *in.TableNumber < 1 {
			return utils.NewError(utils.KindValidationFailed, "Table number must be at least 1 for dine-in orders")
		}
		in.DeliveryAddress = nil
	case models.FulfillmentDelivery:
		if in.DeliveryAddress == nil {
			return utils.NewError(utils.KindValidationFailed, "Delivery address is required for delivery orders")
		}
		in.TableNumber = nil
	default:
		in.TableNumber = nil
		in.DeliveryAddress = nil
	}
	return nil
}

// Create resolves the requested lines against the catalog, freezes their
// name/price, computes the total and persists the order with an initial
// pending history entry. Everything happens in one transaction so a
// failed resolution leaves nothing behind.
func (s *OrderService) Create(ownerID uint, in CreateOrderInput) (*models.Order, error) {
	if err := validateLines(in.Lines); err != nil {
		return nil, err
	}
	if !models.ValidFulfillmentType(in.FulfillmentType) {
		return nil, utils.NewError(utils.KindValidationFailed, "Invalid order type")
	}
	if err := validateConditionalFields(&in); err != nil {
		return nil, err
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PaymentNotPaid
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return nil, utils.NewError(utils.KindValidationFailed, "Invalid payment method")
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		items, err := ResolveOrderLines(tx, in.Lines)
		if err != nil {
			return err
		}

		now := time.Now()
		order = models.Order{
			OrderNumber:         newOrderNumber(),
			UserID:              ownerID,
			Items:               items,
			FulfillmentType:     in.FulfillmentType,
			TableNumber:         in.TableNumber,
			DeliveryAddress:     in.DeliveryAddress,
			Status:              models.StatusPending,
			PaymentMethod:       in.PaymentMethod,
			PaymentStatus:       models.PaymentStatusPending,
			SpecialInstructions: in.SpecialInstructions,
			History: []models.OrderStatusEvent{{
				Status:    models.StatusPending,
				Note:      "Order created",
				Timestamp: now,
			}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		order.TotalAmount = order.ComputeTotal()
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Get enforces the read policy: staff and admin see any order, a
// customer only their own. An order that exists but belongs to someone
// else is Forbidden, never NotFound.
func (s *OrderService) Get(orderID, callerID uint, callerRole string) (*models.Order, error) {
	order, err := s.load(s.db, orderID)
	if err != nil {
		return nil, err
	}
	if !models.IsStaff(callerRole) && order.UserID != callerID {
		return nil, utils.NewError(utils.KindForbidden, "Not authorized to access this order")
	}
	return order, nil
}

// UpdateFields applies a pre-fulfillment edit. Only pending orders are
// editable, by the owner or by staff/admin. Replacing the item list
// re-resolves every line against the live catalog and recomputes the
// total; the write of items, total and fields commits atomically.
func (s *OrderService) UpdateFields(orderID, callerID uint, callerRole string, patch OrderPatch) (*models.Order, error) {
	if patch.Lines != nil {
		if err := validateLines(patch.Lines); err != nil {
			return nil, err
		}
	}
	if patch.PaymentMethod != nil && !models.ValidPaymentMethod(*patch.PaymentMethod) {
		return nil, utils.NewError(utils.KindValidationFailed, "Invalid payment method")
	}
	if patch.TableNumber != nil && *patch.TableNumber < 1 {
		return nil, utils.NewError(utils.KindValidationFailed, "Table number must be at least 1")
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.load(tx, orderID)
		if err != nil {
			return err
		}
		if !models.IsStaff(callerRole) && order.UserID != callerID {
			return utils.NewError(utils.KindForbidden, "Not authorized to update this order")
		}
		if order.Status != models.StatusPending {
			return utils.NewError(utils.KindNotEditable, "Order can only be updated when in pending status")
		}

		if patch.Lines != nil {
			items, err := ResolveOrderLines(tx, patch.Lines)
			if err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].OrderID = order.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			order.Items = items
			order.TotalAmount = order.ComputeTotal()
		}
		if patch.TableNumber != nil {
			order.TableNumber = patch.TableNumber
		}
		if patch.DeliveryAddress != nil {
			order.DeliveryAddress = patch.DeliveryAddress
		}
		if patch.SpecialInstructions != nil {
			order.SpecialInstructions = *patch.SpecialInstructions
		}
		if patch.PaymentMethod != nil {
			order.PaymentMethod = *patch.PaymentMethod
		}
		order.UpdatedAt = time.Now()

		return tx.Omit("Items", "History").Save(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Transition moves the order to newStatus, appending exactly one history
// entry before the record is durably saved. Delivering stamps
// DeliveredAt with the transition time.
func (s *OrderService) Transition(orderID uint, newStatus models.OrderStatus, note string) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, utils.NewError(utils.KindInvalidStatus, "Invalid status")
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.load(tx, orderID)
		if err != nil {
			return err
		}
		if !s.transitions.Allowed(order.Status, newStatus) {
			return utils.NewError(utils.KindInvalidStatus,
				"Cannot change status from %s to %s", order.Status, newStatus)
		}

		now := time.Now()
		if note == "" {
			note = "Order status changed to " + string(newStatus)
		}
		event := models.OrderStatusEvent{
			OrderID:   order.ID,
			Status:    newStatus,
			Note:      note,
			Timestamp: now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		order.History = append(order.History, event)

		order.Status = newStatus
		if newStatus == models.StatusDelivered {
			order.DeliveredAt = &now
		}
		order.UpdatedAt = now
		return tx.Omit("Items", "History").Save(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order and its child rows for good. No tombstone is
// kept; the router restricts this to admins.
func (s *OrderService) Delete(orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewError(utils.KindNotFound, "Order not found")
			}
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderStatusEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// List returns a page of orders matching the filter plus the total match
// count. Sort is a comma-separated field list; default is newest first.
func (s *OrderService) List(filter OrderFilter, sort string, page, limit int) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.FulfillmentType != "" {
		query = query.Where("fulfillment_type = ?", filter.FulfillmentType)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	clauses := utils.ParseSortList(sort, orderSortColumns)
	if len(clauses) == 0 {
		clauses = []string{"created_at DESC"}
	}

	var orders []models.Order
	err := query.
		Preload("Items").
		Preload("History").
		Order(strings.Join(clauses, ", ")).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListMine returns the caller's own orders, newest first.
func (s *OrderService) ListMine(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Items").
		Preload("History").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (s *OrderService) load(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").Preload("History").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewError(utils.KindNotFound, "Order not found")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
