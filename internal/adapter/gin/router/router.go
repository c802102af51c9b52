package router

import (
	"net/http"

	"user-admin-service/internal/adapter/gin/handler"
	"user-admin-service/internal/adapter/gin/middleware"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	screenHandler *handler.ScreenHandler,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	if rateLimiter != nil {
		router.Use(rateLimiter.Middleware())
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-admin-service",
		})
	})

	// Swagger UI over the hand-maintained OpenAPI document. The document
	// lives outside /swagger because a static route under the wildcard
	// would conflict with it.
	router.StaticFile("/openapi/users.swagger.json", "./api/swagger/users.swagger.json")
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi/users.swagger.json"),
	)))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		screen := v1.Group("/screen")
		{
			screen.GET("/users", screenHandler.State)
			screen.POST("/users", screenHandler.Create)
			screen.POST("/users/refresh", screenHandler.Refresh)
			screen.PUT("/users/:id", screenHandler.Edit)
			screen.DELETE("/users/:id", screenHandler.Delete)
		}
	}

	return router
}
