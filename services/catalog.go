package services

import (
	"time"

	"gorm.io/gorm"

	"contactless-ordering/models"
	"contactless-ordering/utils"
)

// LineRequest is one candidate order line as submitted by the client.
type LineRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Note       string `json:"note"`
}

// ResolveOrderLines resolves every requested menu item id against the
// catalog in one batch and returns frozen snapshots carrying the
// authoritative name and price at this moment. Later catalog edits must
// not reach into an already-placed order, which is why the snapshot is
// copied rather than referenced.
func ResolveOrderLines(db *gorm.DB, lines []LineRequest) ([]models.OrderItem, error) {
	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	for _, line := range lines {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}

	var menuItems []models.MenuItem
	if err := db.Where("id IN ?", ids).Find(&menuItems).Error; err != nil {
		return nil, err
	}
	if len(menuItems) != len(ids) {
		return nil, utils.NewError(utils.KindItemNotFound, "One or more menu items not found")
	}

	byID := make(map[uint]models.MenuItem, len(menuItems))
	for _, mi := range menuItems {
		byID[mi.ID] = mi
	}

	now := time.Now()
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		mi := byID[line.MenuItemID]
		if !mi.IsAvailable {
			return nil, utils.NewError(utils.KindItemUnavailable, "%s is currently not available", mi.Name)
		}
		items = append(items, models.OrderItem{
			MenuItemID: mi.ID,
			Name:       mi.Name,
			Price:      mi.Price,
			Quantity:   line.Quantity,
			Note:       line.Note,
			CreatedAt:  now,
		})
	}
	return items, nil
}
