// Package routes gắn controller vào gin router.
//
// Cấu trúc:
//   - api.go: API routes (/v1/*) và health check
//   - web.go: trang chủ và /docs
//   - routes.go: middleware và SetupAllRoutes
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/thai-address-parser/app/controllers"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Thai Address Parser Service",
				"version": controllers.Version,
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Thai Address Parser API v1",
				"endpoints": map[string]string{
					"parse":            "POST /v1/addresses/parse",
					"batch":            "POST /v1/addresses/jobs",
					"job_status":       "GET /v1/addresses/jobs/:jobID/status",
					"job_results":      "GET /v1/addresses/jobs/:jobID/results?format=ndjson&gzip=1",
					"resolve":          "POST /v1/locations/resolve",
					"provinces":        "GET /v1/gazetteer/provinces",
					"districts":        "GET /v1/gazetteer/provinces/:province/districts",
					"postal":           "GET /v1/gazetteer/postal/:code",
					"search":           "GET /v1/gazetteer/search?q=&level=&province=&limit=",
					"seed":             "POST /v1/admin/seed?dry_run=true",
					"invalidate_cache": "POST /v1/admin/cache/invalidate",
					"stats":            "GET /v1/admin/stats",
					"health":           "GET /health",
				},
			})
		})
	}
}
