package handlers

import (
	"errors"
	"net/http"
	"time"

	"restaurant-orders-api/authz"
	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var errEmptyCart = errors.New("cart is empty")

// visibleOrders scopes the order queryset to what the caller may see:
// managers see everything, delivery crew their assigned orders,
// customers their own. Lookups outside this set read as absent, so
// existence never leaks through a 403.
func visibleOrders(user *models.User) *gorm.DB {
	query := config.DB.Model(&models.Order{})
	switch user.Role() {
	case models.RoleManager:
		return query
	case models.RoleDelivery:
		return query.Where("delivery_crew_id = ?", user.ID)
	default:
		return query.Where("user_id = ?", user.ID)
	}
}

// CreateOrder converts the caller's full cart into an order snapshot.
// Snapshot, total and cart sweep commit as one transaction.
func CreateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !authz.Can(user.Role(), authz.ActionOrderCreate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only customers can place orders"})
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var rows []models.Cart
		if err := tx.Where("user_id = ?", user.ID).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return errEmptyCart
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(rows))
		for _, row := range rows {
			total = total.Add(row.Price)
			items = append(items, models.OrderItem{
				MenuItemID: row.MenuItemID,
				Quantity:   row.Quantity,
				UnitPrice:  row.UnitPrice,
				Price:      row.Price,
			})
		}

		order = models.Order{
			UserID: user.ID,
			Total:  total,
			Date:   time.Now(),
			Items:  items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).Delete(&models.Cart{}).Error
	})
	if errors.Is(err, errEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot place an order with an empty cart"})
		return
	}
	if err != nil {
		logrus.Errorf("checkout failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// ListOrders returns the caller's visible orders, paginated
func ListOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var count int64
	visibleOrders(user).Count(&count)

	page, size := pageParams(c)
	var orders []models.Order
	visibleOrders(user).Preload("Items").
		Order("date desc, id desc").
		Offset((page - 1) * size).Limit(size).
		Find(&orders)

	c.JSON(http.StatusOK, newPage(c, count, page, size, orders))
}

// GetOrder returns one order with its items, 404 outside the caller's
// visible set
func GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var order models.Order
	if err := visibleOrders(user).Preload("Items").
		First(&order, "orders.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type OrderUpdateRequest struct {
	Status       *bool `json:"status" binding:"required"`
	DeliveryCrew *uint `json:"delivery_crew"`
}

// UpdateOrder replaces the editable order fields (manager only)
func UpdateOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !authz.Can(user.Role(), authz.ActionOrderUpdate) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only managers can update orders"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req OrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DeliveryCrew != nil {
		var crew models.User
		if err := config.DB.First(&crew, *req.DeliveryCrew).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery crew user not found"})
			return
		}
	}

	config.DB.Model(&order).Updates(map[string]interface{}{
		"status":           *req.Status,
		"delivery_crew_id": req.DeliveryCrew,
	})
	config.DB.Preload("Items").First(&order, order.ID)
	c.JSON(http.StatusOK, order)
}

// PatchOrder applies a partial update. Managers may change status and
// delivery_crew; delivery crew may send exactly {status} on an order
// assigned to them; customers are denied.
func PatchOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	role := user.Role()

	manager := authz.Can(role, authz.ActionOrderUpdate)
	if !manager && !authz.Can(role, authz.ActionOrderSetStatus) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update orders"})
		return
	}

	var order models.Order
	if err := visibleOrders(user).First(&order, "orders.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	if manager {
		if v, ok := req["status"]; ok {
			status, ok := parseStatus(v)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "status must be a boolean"})
				return
			}
			update["status"] = status
		}
		if v, ok := req["delivery_crew"]; ok {
			if v == nil {
				update["delivery_crew_id"] = nil
			} else {
				id, isNum := v.(float64)
				if !isNum {
					c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_crew must be a user id"})
					return
				}
				var crew models.User
				if err := config.DB.First(&crew, uint(id)).Error; err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery crew user not found"})
					return
				}
				update["delivery_crew_id"] = uint(id)
			}
		}
	} else {
		// Delivery crew: the field set must be exactly {status}
		v, hasStatus := req["status"]
		if !hasStatus || len(req) != 1 {
			c.JSON(http.StatusForbidden, gin.H{"error": "Delivery crew may only update the status field"})
			return
		}
		status, ok := parseStatus(v)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be a boolean"})
			return
		}
		update["status"] = status
	}

	if len(update) > 0 {
		config.DB.Model(&order).Updates(update)
	}
	config.DB.Preload("Items").First(&order, order.ID)
	c.JSON(http.StatusOK, order)
}

// DeleteOrder removes an order and its items (manager only)
func DeleteOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !authz.Can(user.Role(), authz.ActionOrderDelete) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only managers can delete orders"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		logrus.Errorf("failed to delete order %d: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
		return
	}
	c.Status(http.StatusNoContent)
}

// parseStatus accepts the boolean-like values true/false and 0/1
func parseStatus(v interface{}) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case float64:
		if val == 0 {
			return false, true
		}
		if val == 1 {
			return true, true
		}
	}
	return false, false
}
