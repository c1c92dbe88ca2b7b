package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contactless-ordering/services"
	"contactless-ordering/utils"
)

type MenuController struct {
	Menus *services.MenuService
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{Menus: services.NewMenuService(db)}
}

// GetAllMenuItems -> public listing with filters, sort and pagination.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	filter := services.MenuFilter{Category: c.Query("category")}
	if v := c.Query("is_available"); v != "" {
		b := v == "true"
		filter.IsAvailable = &b
	}
	if v := c.Query("is_vegetarian"); v != "" {
		b := v == "true"
		filter.IsVegetarian = &b
	}
	page, limit := utils.ParsePagination(c.Query("page"), c.Query("limit"))

	items, total, err := mc.Menus.List(filter, c.Query("sort"), page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "List of menu items", items, utils.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// GetMenuItemByID -> public.
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	item, err := mc.Menus.Get(uint(id))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenuItem -> staff/admin.
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var input services.MenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondErrorStatus(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Menus.Create(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem -> staff/admin.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var patch services.MenuItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondErrorStatus(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Menus.Update(uint(id), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> admin.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	if err := mc.Menus.Delete(uint(id)); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_id": id})
}

// RateMenuItem -> any authenticated user; one rating per user per item.
func (mc *MenuController) RateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))
	userID := c.GetUint("user_id")

	var req struct {
		Rating int    `json:"rating"`
		Review string `json:"review"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorStatus(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Menus.Rate(uint(id), userID, req.Rating, req.Review)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item rated", item)
}
