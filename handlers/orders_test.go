package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"restaurant-orders-api/config"
	"restaurant-orders-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type orderResponse struct {
	Message string       `json:"message"`
	Order   models.Order `json:"order"`
}

type orderPage struct {
	Count    int64          `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []models.Order `json:"results"`
}

func TestCheckoutSnapshotsCartAtomically(t *testing.T) {
	r := setupRouter(t)
	customer := createUser(t, "alice", models.RoleCustomer)
	addCartRow(t, customer, createMenuItem(t, "Lasagna", "15.99", nil), 1)
	addCartRow(t, customer, createMenuItem(t, "Soup", "8.50", nil), 1)
	addCartRow(t, customer, createMenuItem(t, "Bread", "6.99", nil), 1)

	rec := doJSON(t, r, http.MethodPost, "/api/orders", nil, tokenFor(t, customer))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp orderResponse
	decodeJSON(t, rec, &resp)
	require.True(t, resp.Order.Total.Equal(decimal.RequireFromString("31.48")),
		"want total 31.48, got %s", resp.Order.Total)
	require.Len(t, resp.Order.Items, 3)

	var cartRows int64
	config.DB.Model(&models.Cart{}).Where("user_id = ?", customer.ID).Count(&cartRows)
	require.Equal(t, int64(0), cartRows)

	var order models.Order
	require.NoError(t, config.DB.Preload("Items").First(&order, resp.Order.ID).Error)
	require.Len(t, order.Items, 3)
	require.False(t, order.Status)
	require.Nil(t, order.DeliveryCrewID)
}

func TestCheckoutCopiesCartPrices(t *testing.T) {
	r := setupRouter(t)
	customer := createUser(t, "alice", models.RoleCustomer)
	item := createMenuItem(t, "Lasagna", "15.50", nil)
	addCartRow(t, customer, item, 3)

	// Raising the catalog price after the cart snapshot must not
	// change what the order is billed at.
	require.NoError(t, config.DB.Model(item).
		Update("price", decimal.RequireFromString("99.99")).Error)

	rec := doJSON(t, r, http.MethodPost, "/api/orders", nil, tokenFor(t, customer))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp orderResponse
	decodeJSON(t, rec, &resp)
	require.True(t, resp.Order.Total.Equal(decimal.RequireFromString("46.50")))
	require.Len(t, resp.Order.Items, 1)
	require.True(t, resp.Order.Items[0].UnitPrice.Equal(decimal.RequireFromString("15.50")))
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	r := setupRouter(t)
	customer := createUser(t, "alice", models.RoleCustomer)

	rec := doJSON(t, r, http.MethodPost, "/api/orders", nil, tokenFor(t, customer))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var orders int64
	config.DB.Model(&models.Order{}).Count(&orders)
	require.Equal(t, int64(0), orders)
}

func TestCheckoutIsCustomerOnly(t *testing.T) {
	r := setupRouter(t)
	manager := createUser(t, "mona", models.RoleManager)
	delivery := createUser(t, "dave", models.RoleDelivery)

	for _, token := range []string{tokenFor(t, manager), tokenFor(t, delivery)} {
		rec := doJSON(t, r, http.MethodPost, "/api/orders", nil, token)
		require.Equal(t, http.StatusForbidden, rec.Code)
	}

	rec := doJSON(t, r, http.MethodPost, "/api/orders", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderVisibilityByRole(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "alice", models.RoleCustomer)
	bob := createUser(t, "bob", models.RoleCustomer)
	dave := createUser(t, "dave", models.RoleDelivery)
	otherCrew := createUser(t, "erin", models.RoleDelivery)
	manager := createUser(t, "mona", models.RoleManager)

	o1 := createOrder(t, alice, "10.00", nil)
	o2 := createOrder(t, alice, "20.00", dave)
	createOrder(t, bob, "30.00", otherCrew)

	// Customers list only their own orders
	rec := doJSON(t, r, http.MethodGet, "/api/orders", nil, tokenFor(t, alice))
	require.Equal(t, http.StatusOK, rec.Code)
	var page orderPage
	decodeJSON(t, rec, &page)
	require.Equal(t, int64(2), page.Count)

	// Delivery crew list only assigned orders
	rec = doJSON(t, r, http.MethodGet, "/api/orders", nil, tokenFor(t, dave))
	decodeJSON(t, rec, &page)
	require.Equal(t, int64(1), page.Count)
	require.Equal(t, o2.ID, page.Results[0].ID)

	// Managers list everything
	rec = doJSON(t, r, http.MethodGet, "/api/orders", nil, tokenFor(t, manager))
	decodeJSON(t, rec, &page)
	require.Equal(t, int64(3), page.Count)

	// Retrieval follows the same visibility set, leaking a 404 not a 403
	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", o1.ID), nil, tokenFor(t, dave))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", o2.ID), nil, tokenFor(t, dave))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", o2.ID), nil, tokenFor(t, bob))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/orders/%d", o2.ID), nil, tokenFor(t, manager))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeliveryPatchStatusOnly(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "alice", models.RoleCustomer)
	dave := createUser(t, "dave", models.RoleDelivery)
	order := createOrder(t, alice, "20.00", dave)
	token := tokenFor(t, dave)
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	// Exactly {status} is allowed
	rec := doJSON(t, r, http.MethodPatch, path, map[string]interface{}{"status": true}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Order
	require.NoError(t, config.DB.First(&updated, order.ID).Error)
	require.True(t, updated.Status)

	// Numeric 0/1 counts as boolean-like
	rec = doJSON(t, r, http.MethodPatch, path, map[string]interface{}{"status": 0}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, config.DB.First(&updated, order.ID).Error)
	require.False(t, updated.Status)

	// Any extra field makes the whole request forbidden
	rec = doJSON(t, r, http.MethodPatch, path,
		map[string]interface{}{"status": true, "delivery_crew": alice.ID}, token)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, path, map[string]interface{}{"total": "999.99"}, token)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Non-boolean status values are malformed input
	rec = doJSON(t, r, http.MethodPatch, path, map[string]interface{}{"status": "yes"}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, path, map[string]interface{}{"status": 2}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Orders assigned to someone else read as absent
	other := createOrder(t, alice, "5.00", nil)
	rec = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/orders/%d", other.ID),
		map[string]interface{}{"status": true}, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestManagerPatchAssignsDeliveryCrew(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "alice", models.RoleCustomer)
	dave := createUser(t, "dave", models.RoleDelivery)
	manager := createUser(t, "mona", models.RoleManager)
	order := createOrder(t, alice, "20.00", nil)
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	rec := doJSON(t, r, http.MethodPatch, path,
		map[string]interface{}{"delivery_crew": dave.ID}, tokenFor(t, manager))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	require.NoError(t, config.DB.First(&updated, order.ID).Error)
	require.NotNil(t, updated.DeliveryCrewID)
	require.Equal(t, dave.ID, *updated.DeliveryCrewID)
	require.False(t, updated.Status, "status must be untouched")

	rec = doJSON(t, r, http.MethodPatch, path,
		map[string]interface{}{"delivery_crew": 999}, tokenFor(t, manager))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCustomerCannotMutateOrders(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "alice", models.RoleCustomer)
	order := createOrder(t, alice, "20.00", nil)
	token := tokenFor(t, alice)
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	rec := doJSON(t, r, http.MethodPatch, path, map[string]interface{}{"status": true}, token)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, r, http.MethodPut, path, map[string]interface{}{"status": true}, token)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var exists int64
	config.DB.Model(&models.Order{}).Where("id = ?", order.ID).Count(&exists)
	require.Equal(t, int64(1), exists)
}

func TestManagerFullUpdateAndDelete(t *testing.T) {
	r := setupRouter(t)
	alice := createUser(t, "alice", models.RoleCustomer)
	dave := createUser(t, "dave", models.RoleDelivery)
	manager := createUser(t, "mona", models.RoleManager)
	order := createOrder(t, alice, "20.00", nil)
	addOrderItem(t, order, createMenuItem(t, "Soup", "6.99", nil), 2)
	token := tokenFor(t, manager)
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	rec := doJSON(t, r, http.MethodPut, path,
		map[string]interface{}{"status": true, "delivery_crew": dave.ID}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	require.NoError(t, config.DB.First(&updated, order.ID).Error)
	require.True(t, updated.Status)
	require.Equal(t, dave.ID, *updated.DeliveryCrewID)

	rec = doJSON(t, r, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var orders, items int64
	config.DB.Model(&models.Order{}).Where("id = ?", order.ID).Count(&orders)
	config.DB.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&items)
	require.Equal(t, int64(0), orders)
	require.Equal(t, int64(0), items, "order items must cascade")

	rec = doJSON(t, r, http.MethodDelete, "/api/orders/999", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
