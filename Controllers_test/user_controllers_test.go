package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactless-ordering/models"
)

func TestRegisterLoginMe(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	w, resp := doJSON(t, r, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Dina",
		"email":    "dina@example.com",
		"password": "hunter2secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered", resp["message"])

	w, resp = doJSON(t, r, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "dina@example.com",
		"password": "hunter2secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, models.RoleCustomer, data["role"])

	w, resp = doJSON(t, r, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := resp["data"].(map[string]interface{})
	assert.Equal(t, "dina@example.com", me["email"])
	// The password hash never leaves the API.
	_, leaked := me["password"]
	assert.False(t, leaked)
}

func TestRegisterIgnoresSubmittedRole(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	w, _ := doJSON(t, r, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": "longenough",
		"role":     models.RoleAdmin,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "sneaky@example.com").First(&user).Error)
	assert.Equal(t, models.RoleCustomer, user.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	payload := map[string]interface{}{
		"name":     "Dina",
		"email":    "dina@example.com",
		"password": "hunter2secret",
	}
	w, _ := doJSON(t, r, "POST", "/api/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, "POST", "/api/auth/register", "", payload)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "User already exists", errorMessage(t, resp))

	var count int64
	db.Model(&models.User{}).Where("email = ?", "dina@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	w, resp := doJSON(t, r, "POST", "/api/auth/register", "", map[string]interface{}{
		"name":     "Shorty",
		"email":    "shorty@example.com",
		"password": "abc",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, errorStatus(t, resp))
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "Dina", "dina@example.com", models.RoleCustomer)
	r := newRouter(db)

	w, resp := doJSON(t, r, "POST", "/api/auth/login", "", map[string]interface{}{
		"email":    "dina@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, errorStatus(t, resp))
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	db := setupTestDB(t)
	_, customerToken := seedUser(t, db, "Cust", "cust@example.com", models.RoleCustomer)
	_, adminToken := seedUser(t, db, "Root", "root@example.com", models.RoleAdmin)
	r := newRouter(db)

	w, resp := doJSON(t, r, "GET", "/api/users", customerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, errorStatus(t, resp))

	w, _ = doJSON(t, r, "GET", "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Admin creates a staff account.
	w, resp = doJSON(t, r, "POST", "/api/users", adminToken, map[string]interface{}{
		"name":     "Waiter",
		"email":    "waiter@example.com",
		"password": "secret123",
		"role":     models.RoleStaff,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := resp["data"].(map[string]interface{})
	assert.Equal(t, models.RoleStaff, created["role"])
}
