package models

import (
	"math"
	"time"
)

const (
	CategoryStarter    = "starter"
	CategoryMainCourse = "main course"
	CategoryDessert    = "dessert"
	CategoryBeverage   = "beverage"
	CategorySide       = "side"
	CategorySpecial    = "special"
)

// ValidCategory reports whether c is one of the menu categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryStarter, CategoryMainCourse, CategoryDessert,
		CategoryBeverage, CategorySide, CategorySpecial:
		return true
	}
	return false
}

type MenuItem struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"type:varchar(100);not null" json:"name"`
	Description     string       `gorm:"type:text;not null" json:"description"`
	Price           float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Category        string       `gorm:"type:varchar(20);not null;index" json:"category"`
	// No column defaults on these: gorm omits zero-valued fields that
	// carry a default tag on insert, which would turn IsAvailable=false
	// into true. The code defaults live in MenuService.Create.
	IsAvailable     bool         `gorm:"not null" json:"is_available"`
	PreparationTime int          `gorm:"not null" json:"preparation_time"`
	Allergens       []string     `gorm:"serializer:json" json:"allergens"`
	IsVegetarian    bool         `gorm:"not null;default:false" json:"is_vegetarian"`
	IsVegan         bool         `gorm:"not null;default:false" json:"is_vegan"`
	IsGlutenFree    bool         `gorm:"not null;default:false" json:"is_gluten_free"`
	Calories        int          `gorm:"not null" json:"calories"`
	Ratings         []MenuRating `gorm:"foreignKey:MenuItemID" json:"ratings"`
	AverageRating   float64      `gorm:"not null;default:0" json:"average_rating"`
	CreatedAt       time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null" json:"updated_at"`
}

// MenuRating is one customer's rating of a menu item. A rater has at most
// one row per item; re-rating overwrites the existing row.
type MenuRating struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MenuItemID uint      `gorm:"not null;index" json:"menu_item_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Value      int       `gorm:"not null" json:"value"`
	Review     string    `gorm:"type:text" json:"review"`
	RatedAt    time.Time `gorm:"not null" json:"rated_at"`
}

// RecomputeAverageRating returns the mean rating rounded to one decimal
// place, or 0 for an empty list. Every mutation of the ratings list must
// write its result back to AverageRating before persisting; the field is
// never set any other way.
func RecomputeAverageRating(ratings []MenuRating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}
