package router

import (
	"net/http"

	"decorator-user-service/internal/adapter/gin/middleware"
	grpcmiddleware "decorator-user-service/internal/adapter/grpc/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterFunc mounts a set of routes on the router.
type RegisterFunc func(rg *gin.RouterGroup)

// SetupRouter configures and returns a Gin router with the global middleware,
// the health check and every route in routes, registered in order.
func SetupRouter(
	serviceName string,
	rateLimiter *grpcmiddleware.RateLimiter,
	log *zap.Logger,
	routes ...RegisterFunc,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	api := router.Group("/")
	api.Use(middleware.RateLimiter(rateLimiter))
	for _, register := range routes {
		register(api)
	}

	return router
}
