package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contactless-ordering/models"
	"contactless-ordering/services"
	"contactless-ordering/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB, transitions models.OrderTransitions) *OrderController {
	return &OrderController{Orders: services.NewOrderService(db, transitions)}
}

// GetAllOrders -> staff/admin listing with filters, sort and pagination.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter := services.OrderFilter{
		Status:          c.Query("status"),
		FulfillmentType: c.Query("fulfillment_type"),
		PaymentStatus:   c.Query("payment_status"),
	}
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))

	orders, total, err := oc.Orders.List(filter, c.Query("sort"), page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "List of orders", orders, utils.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// GetMyOrders -> the caller's own orders, newest first.
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	orders, err := oc.Orders.ListMine(c.GetUint("user_id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My orders", orders)
}

// GetOrderByID -> owner, staff or admin; everyone else gets 403.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Orders.Get(uint(id), c.GetUint("user_id"), c.GetString("role"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> any authenticated user.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var body struct {
		Items               []services.LineRequest  `json:"items" binding:"required"`
		FulfillmentType     string                  `json:"fulfillment_type" binding:"required"`
		TableNumber         *int                    `json:"table_number"`
		DeliveryAddress     *models.DeliveryAddress `json:"delivery_address"`
		SpecialInstructions string                  `json:"special_instructions"`
		PaymentMethod       string                  `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondErrorStatus(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Create(c.GetUint("user_id"), services.CreateOrderInput{
		Lines:               body.Items,
		FulfillmentType:     body.FulfillmentType,
		TableNumber:         body.TableNumber,
		DeliveryAddress:     body.DeliveryAddress,
		SpecialInstructions: body.SpecialInstructions,
		PaymentMethod:       body.PaymentMethod,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created by user %d (total %.2f)",
		order.OrderNumber, order.UserID, order.TotalAmount)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrder -> pre-fulfillment edit by the owner or staff/admin while
// the order is still pending. Status never moves through this handler.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Items               []services.LineRequest  `json:"items"`
		TableNumber         *int                    `json:"table_number"`
		DeliveryAddress     *models.DeliveryAddress `json:"delivery_address"`
		SpecialInstructions *string                 `json:"special_instructions"`
		PaymentMethod       *string                 `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondErrorStatus(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateFields(uint(id), c.GetUint("user_id"), c.GetString("role"), services.OrderPatch{
		Lines:               body.Items,
		TableNumber:         body.TableNumber,
		DeliveryAddress:     body.DeliveryAddress,
		SpecialInstructions: body.SpecialInstructions,
		PaymentMethod:       body.PaymentMethod,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// UpdateOrderStatus -> staff/admin status transition.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondErrorStatus(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Transition(uint(id), models.OrderStatus(body.Status), body.Note)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s moved to %s by %s",
		order.OrderNumber, order.Status, c.GetString("role"))

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> admin only, hard delete.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	if err := oc.Orders.Delete(uint(id)); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
