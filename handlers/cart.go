package handlers

import (
	"net/http"

	"restaurant-orders-api/config"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CartRequest deliberately has no user field: the row owner is always
// the caller, whatever the request body says.
type CartRequest struct {
	MenuItemID uint `json:"menuitem_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

// ListCart returns the caller's cart rows
func ListCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var rows []models.Cart
	config.DB.Preload("MenuItem").Where("user_id = ?", userID).Find(&rows)
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "cart": rows})
}

// AddCartItem adds a line item, snapshotting the catalog price at
// insert time. The same dish can appear on several rows.
func AddCartItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, req.MenuItemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	row := models.Cart{
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   req.Quantity,
		UnitPrice:  item.Price,
		Price:      item.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
	}
	if err := config.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	config.DB.Preload("MenuItem").First(&row, row.ID)
	c.JSON(http.StatusCreated, row)
}

// ClearCart deletes every cart row of the caller. There is no
// per-item delete route.
func ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)
	result := config.DB.Where("user_id = ?", userID).Delete(&models.Cart{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "deleted": result.RowsAffected})
}
