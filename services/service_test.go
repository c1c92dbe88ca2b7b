package services

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"contactless-ordering/models"
	"contactless-ordering/utils"
)

var testDBCounter int64

// setupTestDB opens a private in-memory SQLite database. Each test gets
// its own named shared-cache DB so gorm's connection pool always sees
// the same data.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:svctest_%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.MenuRating{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusEvent{},
	)
	require.NoError(t, err)
	return db
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool) models.MenuItem {
	t.Helper()

	item := models.MenuItem{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    models.CategoryMainCourse,
		IsAvailable: available,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func errKind(t *testing.T, err error) utils.ErrorKind {
	t.Helper()

	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected *utils.AppError, got %v", err)
	return appErr.Kind
}
