package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupAllRoutes thiết lập middleware và tất cả routes
func SetupAllRoutes(router *gin.Engine, ctrl Controllers, logger *zap.Logger) {
	setupMiddleware(router, logger)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, ctrl.Address)
	SetupAPIRoutes(router, ctrl)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine, logger *zap.Logger) {
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
}

// requestLogger ghi log mỗi request bằng zap
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
