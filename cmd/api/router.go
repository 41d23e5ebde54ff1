package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

// SetupRouter wires all HTTP routes against the container's handlers.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupItemRoutes(v1, c)
		setupMembershipRoutes(v1, c)
		setupTransactionRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
	}
}

func setupItemRoutes(v1 *gin.RouterGroup, c *container.Container) {
	items := v1.Group("/items")
	items.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		items.GET("", c.CatalogHandler.ListItems)
		items.GET("/:id", c.CatalogHandler.GetItemByID)
		items.GET("/check/:serialNumber", c.CatalogHandler.CheckBySerialNumber)
	}

	adminItems := v1.Group("/items")
	adminItems.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		adminItems.POST("", c.CatalogHandler.CreateItem)
		adminItems.PUT("/:id", c.CatalogHandler.UpdateItem)
		adminItems.DELETE("/:id", c.CatalogHandler.DeleteItem)
	}
}

func setupMembershipRoutes(v1 *gin.RouterGroup, c *container.Container) {
	memberships := v1.Group("/memberships")
	memberships.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		memberships.GET("", c.MembershipHandler.ListMemberships)
		memberships.GET("/:id", c.MembershipHandler.GetMembership)
	}

	adminMemberships := v1.Group("/memberships")
	adminMemberships.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		adminMemberships.POST("", c.MembershipHandler.CreateMembership)
		adminMemberships.PUT("/:id", c.MembershipHandler.UpdateMembership)
		adminMemberships.DELETE("/:id", c.MembershipHandler.DeleteMembership)
	}
}

func setupTransactionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	transactions := v1.Group("/transactions")
	transactions.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		transactions.POST("/issue", c.TransactionHandler.Issue)
		transactions.POST("/return", c.TransactionHandler.Return)
		transactions.POST("/payfine", c.TransactionHandler.PayFine)
		transactions.GET("/overdue", c.TransactionHandler.ListOverdue)
		transactions.GET("/active", c.TransactionHandler.ListActive)
		transactions.GET("", c.TransactionHandler.List)
		transactions.GET("/:id", c.TransactionHandler.GetByID)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error"
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
