package handlers

import (
	"net/http"

	"restaurant-orders-api/config"
	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type GroupUserRequest struct {
	Username string `json:"username" binding:"required"`
}

func findGroup(c *gin.Context, name string) (*models.Group, bool) {
	var group models.Group
	if err := config.DB.Where("name = ?", name).First(&group).Error; err != nil {
		logrus.Errorf("role group %q missing: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Role group not configured"})
		return nil, false
	}
	return &group, true
}

// ListGroupUsers returns the members of a role group (manager only)
func ListGroupUsers(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		group, ok := findGroup(c, name)
		if !ok {
			return
		}
		var users []models.User
		if err := config.DB.Model(group).Association("Users").Find(&users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list group members"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// AddGroupUser looks a user up by username and adds them to a role
// group (manager only)
func AddGroupUser(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GroupUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		group, ok := findGroup(c, name)
		if !ok {
			return
		}

		if err := config.DB.Model(&user).Association("Groups").Append(group); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add user to group"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User added to " + name + " group", "user_id": user.ID})
	}
}

// RemoveGroupUser looks a user up by id and removes them from a role
// group (manager only). Removing a non-member is a no-op.
func RemoveGroupUser(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		group, ok := findGroup(c, name)
		if !ok {
			return
		}

		if err := config.DB.Model(&user).Association("Groups").Delete(group); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from group"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User removed from " + name + " group", "user_id": user.ID})
	}
}
