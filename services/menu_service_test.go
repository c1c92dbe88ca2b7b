package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactless-ordering/models"
	"contactless-ordering/utils"
)

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func TestCreateMenuItemValidation(t *testing.T) {
	svc := NewMenuService(setupTestDB(t))

	_, err := svc.Create(MenuItemInput{
		Name:        "Mystery",
		Description: "?",
		Price:       floatPtr(-1),
		Category:    models.CategoryMainCourse,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidationFailed, errKind(t, err))

	_, err = svc.Create(MenuItemInput{
		Name:        "Mystery",
		Description: "?",
		Price:       floatPtr(5),
		Category:    "brunch",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidationFailed, errKind(t, err))
}

func TestCreateMenuItemDefaults(t *testing.T) {
	svc := NewMenuService(setupTestDB(t))

	item, err := svc.Create(MenuItemInput{
		Name:        "Garden Salad",
		Description: "Fresh greens",
		Price:       floatPtr(8.5),
		Category:    models.CategoryStarter,
		Allergens:   []string{"nuts"},
	})
	require.NoError(t, err)
	assert.True(t, item.IsAvailable)
	assert.Equal(t, 15, item.PreparationTime)
	assert.Equal(t, 0.0, item.AverageRating)
	assert.Equal(t, []string{"nuts"}, item.Allergens)
}

func TestCreateMenuItemPersistsExplicitZeroValues(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuService(db)

	item, err := svc.Create(MenuItemInput{
		Name:            "Seasonal Special",
		Description:     "Announced before the kitchen stocks it",
		Price:           floatPtr(18),
		Category:        models.CategorySpecial,
		IsAvailable:     boolPtr(false),
		PreparationTime: intPtr(0),
	})
	require.NoError(t, err)

	// Read back through a fresh query so column defaults cannot hide
	// what was actually written.
	var stored models.MenuItem
	require.NoError(t, db.First(&stored, item.ID).Error)
	assert.False(t, stored.IsAvailable)
	assert.Zero(t, stored.PreparationTime)
}

func TestRateOutOfRange(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Burger", 10.0, true)
	svc := NewMenuService(db)

	for _, value := range []int{0, 6, -3} {
		_, err := svc.Rate(item.ID, 1, value, "")
		require.Error(t, err, "value %d", value)
		assert.Equal(t, utils.KindRatingOutOfRange, errKind(t, err))
	}

	// Nothing was recorded.
	reloaded, err := svc.Get(item.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Ratings)
	assert.Equal(t, 0.0, reloaded.AverageRating)
}

func TestRateUnknownItem(t *testing.T) {
	svc := NewMenuService(setupTestDB(t))

	_, err := svc.Rate(9999, 1, 4, "")
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, errKind(t, err))
}

func TestRateAppendsAndRecomputesAverage(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Burger", 10.0, true)
	svc := NewMenuService(db)

	rated, err := svc.Rate(item.ID, 1, 4, "solid")
	require.NoError(t, err)
	assert.Equal(t, 4.0, rated.AverageRating)

	// (4 + 3) / 2 = 3.5
	rated, err = svc.Rate(item.ID, 2, 3, "")
	require.NoError(t, err)
	require.Len(t, rated.Ratings, 2)
	assert.Equal(t, 3.5, rated.AverageRating)
}

func TestReRatingReplacesInPlace(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Burger", 10.0, true)
	svc := NewMenuService(db)

	_, err := svc.Rate(item.ID, 1, 2, "meh")
	require.NoError(t, err)
	_, err = svc.Rate(item.ID, 2, 4, "")
	require.NoError(t, err)

	// User 1 changes their mind: list length unchanged, average moves.
	rated, err := svc.Rate(item.ID, 1, 5, "grew on me")
	require.NoError(t, err)
	require.Len(t, rated.Ratings, 2)
	assert.Equal(t, 4.5, rated.AverageRating)

	var theirs models.MenuRating
	require.NoError(t, db.Where("menu_item_id = ? AND user_id = ?", item.ID, 1).First(&theirs).Error)
	assert.Equal(t, 5, theirs.Value)
	assert.Equal(t, "grew on me", theirs.Review)
}

func TestAverageRatingIsNotPatchable(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Burger", 10.0, true)
	svc := NewMenuService(db)

	_, err := svc.Rate(item.ID, 1, 4, "")
	require.NoError(t, err)

	// A field update leaves the derived average alone.
	updated, err := svc.Update(item.ID, MenuItemPatch{Price: floatPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.AverageRating)
	assert.Equal(t, 12.0, updated.Price)
}

func TestMenuListFiltersAndSorts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMenuService(db)

	seed := []models.MenuItem{
		{Name: "Bruschetta", Description: "d", Price: 6, Category: models.CategoryStarter, IsAvailable: true, IsVegetarian: true},
		{Name: "Steak", Description: "d", Price: 24, Category: models.CategoryMainCourse, IsAvailable: true},
		{Name: "Tiramisu", Description: "d", Price: 9, Category: models.CategoryDessert, IsAvailable: false, IsVegetarian: true},
		{Name: "Apple Pie", Description: "d", Price: 7, Category: models.CategoryDessert, IsAvailable: true, IsVegetarian: true},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	// Default sort is by name.
	all, total, err := svc.List(MenuFilter{}, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, "Apple Pie", all[0].Name)
	assert.Equal(t, "Tiramisu", all[3].Name)

	desserts, total, err := svc.List(MenuFilter{Category: models.CategoryDessert}, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, desserts, 2)

	available, total, err := svc.List(MenuFilter{IsAvailable: boolPtr(true)}, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, available, 3)

	veggie, _, err := svc.List(MenuFilter{IsVegetarian: boolPtr(true)}, "-price", 1, 10)
	require.NoError(t, err)
	require.Len(t, veggie, 3)
	assert.Equal(t, "Tiramisu", veggie[0].Name)

	// Pagination: page 2 of size 3.
	page2, total, err := svc.List(MenuFilter{}, "", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page2, 1)
}

func TestDeleteMenuItemRemovesRatings(t *testing.T) {
	db := setupTestDB(t)
	item := seedMenuItem(t, db, "Burger", 10.0, true)
	svc := NewMenuService(db)

	_, err := svc.Rate(item.ID, 1, 4, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(item.ID))

	var count int64
	db.Model(&models.MenuRating{}).Where("menu_item_id = ?", item.ID).Count(&count)
	assert.Zero(t, count)

	err = svc.Delete(item.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, errKind(t, err))
}
