package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"
	"restaurant-orders-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// setupRouter builds a full router backed by a fresh in-memory
// database. Tests share the config.DB global, so they must not run in
// parallel.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JWTSecret = []byte("test-secret")
	config.InitDB(":memory:")

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func createUser(t *testing.T, username string, roles ...models.Role) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "not-a-real-hash"}
	require.NoError(t, config.DB.Create(user).Error)
	for _, role := range roles {
		var group models.Group
		require.NoError(t, config.DB.Where("name = ?", string(role)).First(&group).Error)
		require.NoError(t, config.DB.Model(user).Association("Groups").Append(&group))
	}
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func createMenuItem(t *testing.T, name, price string, categoryID *uint) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
	}
	require.NoError(t, config.DB.Create(item).Error)
	return item
}

func createCategory(t *testing.T, slug, title string) *models.Category {
	t.Helper()
	category := &models.Category{Slug: slug, Title: title}
	require.NoError(t, config.DB.Create(category).Error)
	return category
}

func addCartRow(t *testing.T, user *models.User, item *models.MenuItem, quantity int) *models.Cart {
	t.Helper()
	row := &models.Cart{
		UserID:     user.ID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	require.NoError(t, config.DB.Create(row).Error)
	return row
}

func createOrder(t *testing.T, user *models.User, total string, crew *models.User) *models.Order {
	t.Helper()
	order := &models.Order{UserID: user.ID, Total: decimal.RequireFromString(total)}
	if crew != nil {
		order.DeliveryCrewID = &crew.ID
	}
	require.NoError(t, config.DB.Create(order).Error)
	return order
}

func addOrderItem(t *testing.T, order *models.Order, item *models.MenuItem, quantity int) *models.OrderItem {
	t.Helper()
	row := &models.OrderItem{
		OrderID:    order.ID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	require.NoError(t, config.DB.Create(row).Error)
	return row
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}
