package routes

import (
	"restaurant-orders-api/authz"
	"restaurant-orders-api/handlers"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		public.GET("/categories", handlers.ListCategories)
		public.GET("/categories/:id", handlers.GetCategory)
		public.GET("/menu-items", handlers.ListMenuItems)
		public.GET("/menu-items/:id", handlers.GetMenuItem)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)

		auth.GET("/orders", handlers.ListOrders)
		auth.POST("/orders", handlers.CreateOrder)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.PUT("/orders/:id", handlers.UpdateOrder)
		auth.PATCH("/orders/:id", handlers.PatchOrder)
		auth.DELETE("/orders/:id", handlers.DeleteOrder)
	}

	// ── Catalog writes (manager only) ──────────────────────────────
	catalog := r.Group("/api")
	catalog.Use(middleware.AuthRequired(), middleware.Authorize(authz.ActionMenuWrite))
	{
		catalog.POST("/categories", handlers.CreateCategory)
		catalog.PUT("/categories/:id", handlers.UpdateCategory)
		catalog.PATCH("/categories/:id", handlers.PatchCategory)
		catalog.DELETE("/categories/:id", handlers.DeleteCategory)

		catalog.POST("/menu-items", handlers.CreateMenuItem)
		catalog.PUT("/menu-items/:id", handlers.UpdateMenuItem)
		catalog.PATCH("/menu-items/:id", handlers.PatchMenuItem)
		catalog.DELETE("/menu-items/:id", handlers.DeleteMenuItem)
	}

	// ── Cart (customer only) ───────────────────────────────────────
	cart := r.Group("/api/cart")
	cart.Use(middleware.AuthRequired(), middleware.Authorize(authz.ActionCartUse))
	{
		cart.GET("/menu-items", handlers.ListCart)
		cart.POST("/menu-items", handlers.AddCartItem)
		cart.DELETE("/menu-items", handlers.ClearCart)
	}

	// ── Role rosters (manager only) ────────────────────────────────
	groups := r.Group("/api/groups")
	groups.Use(middleware.AuthRequired(), middleware.Authorize(authz.ActionGroupManage))
	{
		groups.GET("/manager/users", handlers.ListGroupUsers(string(models.RoleManager)))
		groups.POST("/manager/users", handlers.AddGroupUser(string(models.RoleManager)))
		groups.DELETE("/manager/users/:id", handlers.RemoveGroupUser(string(models.RoleManager)))

		groups.GET("/delivery-crew/users", handlers.ListGroupUsers(string(models.RoleDelivery)))
		groups.POST("/delivery-crew/users", handlers.AddGroupUser(string(models.RoleDelivery)))
		groups.DELETE("/delivery-crew/users/:id", handlers.RemoveGroupUser(string(models.RoleDelivery)))
	}
}
