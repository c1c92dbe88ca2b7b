package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"contactless-ordering/models"
	"contactless-ordering/utils"
)

var menuSortColumns = map[string]string{
	"name":           "name",
	"price":          "price",
	"category":       "category",
	"created_at":     "created_at",
	"average_rating": "average_rating",
}

type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

type MenuItemInput struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Price           *float64 `json:"price" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	IsAvailable     *bool    `json:"is_available"`
	PreparationTime *int     `json:"preparation_time"`
	Allergens       []string `json:"allergens"`
	IsVegetarian    *bool    `json:"is_vegetarian"`
	IsVegan         *bool    `json:"is_vegan"`
	IsGlutenFree    *bool    `json:"is_gluten_free"`
	Calories        *int     `json:"calories"`
}

type MenuFilter struct {
	Category     string
	IsAvailable  *bool
	IsVegetarian *bool
}

func (s *MenuService) Create(in MenuItemInput) (*models.MenuItem, error) {
	if *in.Price < 0 {
		return nil, utils.NewError(utils.KindValidationFailed, "Price must be a positive number")
	}
	if !models.ValidCategory(in.Category) {
		return nil, utils.NewError(utils.KindValidationFailed, "Invalid category")
	}

	now := time.Now()
	item := models.MenuItem{
		Name:            in.Name,
		Description:     in.Description,
		Price:           *in.Price,
		Category:        in.Category,
		IsAvailable:     true,
		PreparationTime: 15,
		Allergens:       in.Allergens,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.PreparationTime != nil {
		item.PreparationTime = *in.PreparationTime
	}
	if in.IsVegetarian != nil {
		item.IsVegetarian = *in.IsVegetarian
	}
	if in.IsVegan != nil {
		item.IsVegan = *in.IsVegan
	}
	if in.IsGlutenFree != nil {
		item.IsGlutenFree = *in.IsGlutenFree
	}
	if in.Calories != nil {
		item.Calories = *in.Calories
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// MenuItemPatch updates only the fields that are present. AverageRating
// is deliberately not patchable: it only moves through Rate.
type MenuItemPatch struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	Category        *string  `json:"category"`
	IsAvailable     *bool    `json:"is_available"`
	PreparationTime *int     `json:"preparation_time"`
	Allergens       []string `json:"allergens"`
	IsVegetarian    *bool    `json:"is_vegetarian"`
	IsVegan         *bool    `json:"is_vegan"`
	IsGlutenFree    *bool    `json:"is_gluten_free"`
	Calories        *int     `json:"calories"`
}

func (s *MenuService) Update(itemID uint, patch MenuItemPatch) (*models.MenuItem, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, utils.NewError(utils.KindValidationFailed, "Price must be a positive number")
	}
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		return nil, utils.NewError(utils.KindValidationFailed, "Invalid category")
	}

	item, err := s.load(s.db, itemID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.IsAvailable != nil {
		item.IsAvailable = *patch.IsAvailable
	}
	if patch.PreparationTime != nil {
		item.PreparationTime = *patch.PreparationTime
	}
	if patch.Allergens != nil {
		item.Allergens = patch.Allergens
	}
	if patch.IsVegetarian != nil {
		item.IsVegetarian = *patch.IsVegetarian
	}
	if patch.IsVegan != nil {
		item.IsVegan = *patch.IsVegan
	}
	if patch.IsGlutenFree != nil {
		item.IsGlutenFree = *patch.IsGlutenFree
	}
	if patch.Calories != nil {
		item.Calories = *patch.Calories
	}
	item.UpdatedAt = time.Now()

	if err := s.db.Omit("Ratings").Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) Get(itemID uint) (*models.MenuItem, error) {
	return s.load(s.db, itemID)
}

func (s *MenuService) Delete(itemID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewError(utils.KindNotFound, "Menu item not found")
			}
			return err
		}
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.MenuRating{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// List returns a page of menu items matching the filter plus the total
// match count. Default sort is by name.
func (s *MenuService) List(filter MenuFilter, sort string, page, limit int) ([]models.MenuItem, int64, error) {
	query := s.db.Model(&models.MenuItem{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IsAvailable != nil {
		query = query.Where("is_available = ?", *filter.IsAvailable)
	}
	if filter.IsVegetarian != nil {
		query = query.Where("is_vegetarian = ?", *filter.IsVegetarian)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	clauses := utils.ParseSortList(sort, menuSortColumns)
	if len(clauses) == 0 {
		clauses = []string{"name ASC"}
	}

	var items []models.MenuItem
	err := query.
		Preload("Ratings").
		Order(strings.Join(clauses, ", ")).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Rate records one customer's rating of a menu item. A second rating by
// the same customer replaces their first in place. The average is
// recomputed from the full list at this single commit point and persisted
// together with the rating row.
func (s *MenuService) Rate(itemID, raterID uint, value int, review string) (*models.MenuItem, error) {
	if value < 1 || value > 5 {
		return nil, utils.NewError(utils.KindRatingOutOfRange, "Rating must be a number between 1 and 5")
	}

	var item *models.MenuItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.load(tx, itemID)
		if err != nil {
			return err
		}

		now := time.Now()
		replaced := false
		for i := range item.Ratings {
			if item.Ratings[i].UserID == raterID {
				item.Ratings[i].Value = value
				item.Ratings[i].Review = review
				item.Ratings[i].RatedAt = now
				if err := tx.Save(&item.Ratings[i]).Error; err != nil {
					return err
				}
				replaced = true
				break
			}
		}
		if !replaced {
			rating := models.MenuRating{
				MenuItemID: item.ID,
				UserID:     raterID,
				Value:      value,
				Review:     review,
				RatedAt:    now,
			}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
			item.Ratings = append(item.Ratings, rating)
		}

		item.AverageRating = models.RecomputeAverageRating(item.Ratings)
		item.UpdatedAt = now
		return tx.Omit("Ratings").Save(item).Error
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *MenuService) load(db *gorm.DB, itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := db.Preload("Ratings").First(&item, itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewError(utils.KindNotFound, "Menu item not found")
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
