package handlers

import (
	"net/http"

	"restaurant-orders-api/config"
	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Categories ───────────────────────────────────────────────────────────────

type CategoryRequest struct {
	Slug  string `json:"slug" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// ListCategories returns all categories (public)
func ListCategories(c *gin.Context) {
	page, size := pageParams(c)

	var count int64
	config.DB.Model(&models.Category{}).Count(&count)

	var categories []models.Category
	config.DB.Offset((page - 1) * size).Limit(size).Find(&categories)

	c.JSON(http.StatusOK, newPage(c, count, page, size, categories))
}

// GetCategory returns a single category (public)
func GetCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory adds a category (manager only)
func CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category := models.Category{Slug: req.Slug, Title: req.Title}
	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category slug already exists"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory replaces a category's fields (manager only)
func UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category.Slug = req.Slug
	category.Title = req.Title
	if err := config.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category slug already exists"})
		return
	}
	c.JSON(http.StatusOK, category)
}

// PatchCategory applies a partial update (manager only)
func PatchCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	allowed := map[string]bool{"slug": true, "title": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if len(update) > 0 {
		if err := config.DB.Model(&category).Updates(update).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category slug already exists"})
			return
		}
	}
	config.DB.First(&category, category.ID)
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category (manager only)
func DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	config.DB.Delete(&category)
	c.Status(http.StatusNoContent)
}

// ── Menu items ───────────────────────────────────────────────────────────────

type MenuItemRequest struct {
	Name       string           `json:"name" binding:"required"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
	CategoryID *uint            `json:"category_id"`
	Featured   bool             `json:"featured"`
}

// validPrice accepts non-negative amounts with at most 2 decimal places
func validPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2))
}

// menuItemFilter applies the supported query-param filters
func menuItemFilter(c *gin.Context, query *gorm.DB) *gorm.DB {
	if category := c.Query("category"); category != "" {
		query = query.Where("category_id = ?", category)
	}
	return query
}

// ListMenuItems returns menu items (public); supports category id
// filtering, price ordering and pagination
func ListMenuItems(c *gin.Context) {
	var count int64
	menuItemFilter(c, config.DB.Model(&models.MenuItem{})).Count(&count)

	query := menuItemFilter(c, config.DB.Model(&models.MenuItem{}))
	switch c.Query("ordering") {
	case "price":
		query = query.Order("price asc")
	case "-price":
		query = query.Order("price desc")
	}

	page, size := pageParams(c)
	var items []models.MenuItem
	query.Preload("Category").Offset((page - 1) * size).Limit(size).Find(&items)

	c.JSON(http.StatusOK, newPage(c, count, page, size, items))
}

// GetMenuItem returns a single menu item (public)
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.Preload("Category").First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// CreateMenuItem adds a menu item (manager only)
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPrice(*req.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative amount with at most 2 decimal places"})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
	}

	item := models.MenuItem{
		Name:       req.Name,
		Price:      *req.Price,
		CategoryID: req.CategoryID,
		Featured:   req.Featured,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem replaces a menu item's fields (manager only)
func UpdateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validPrice(*req.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative amount with at most 2 decimal places"})
		return
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
	}

	item.Name = req.Name
	item.Price = *req.Price
	item.CategoryID = req.CategoryID
	item.Featured = req.Featured
	config.DB.Save(&item)
	c.JSON(http.StatusOK, item)
}

// PatchMenuItem applies a partial update (manager only)
func PatchMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := map[string]interface{}{}
	for k, v := range req {
		switch k {
		case "name", "featured":
			update[k] = v
		case "price":
			price, ok := parseDecimal(v)
			if !ok || !validPrice(price) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a non-negative amount with at most 2 decimal places"})
				return
			}
			update["price"] = price
		case "category_id":
			if v == nil {
				update["category_id"] = nil
				continue
			}
			id, ok := v.(float64)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "category_id must be an integer"})
				return
			}
			var category models.Category
			if err := config.DB.First(&category, uint(id)).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			update["category_id"] = uint(id)
		}
	}
	if len(update) > 0 {
		config.DB.Model(&item).Updates(update)
	}
	config.DB.Preload("Category").First(&item, item.ID)
	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem removes a menu item (manager only)
func DeleteMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	config.DB.Delete(&item)
	c.Status(http.StatusNoContent)
}

// parseDecimal converts a decoded JSON value (number or string) into
// a decimal amount
func parseDecimal(v interface{}) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case string:
		d, err := decimal.NewFromString(val)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(val), true
	default:
		return decimal.Decimal{}, false
	}
}
