package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/thai-address-parser/app/controllers"
)

// Controllers các controller được gắn vào router
type Controllers struct {
	Address   *controllers.AddressController
	Gazetteer *controllers.GazetteerController
	Admin     *controllers.AdminController
}

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, ctrl Controllers) {
	v1 := router.Group("/v1")
	{
		addresses := v1.Group("/addresses")
		{
			addresses.POST("/parse", ctrl.Address.ParseAddress)
			addresses.POST("/jobs", ctrl.Address.BatchParse)
			addresses.GET("/jobs/:jobID/status", ctrl.Address.GetJobStatus)
			addresses.GET("/jobs/:jobID/results", ctrl.Address.GetJobResults)
		}

		locations := v1.Group("/locations")
		{
			locations.POST("/resolve", ctrl.Address.ResolveLocation)
		}

		gazetteer := v1.Group("/gazetteer")
		{
			gazetteer.GET("/provinces", ctrl.Gazetteer.ListProvinces)
			gazetteer.GET("/provinces/:province/districts", ctrl.Gazetteer.ListDistricts)
			gazetteer.GET("/postal/:code", ctrl.Gazetteer.LookupPostal)
			gazetteer.GET("/search", ctrl.Gazetteer.Search)
		}

		admin := v1.Group("/admin")
		{
			admin.POST("/seed", ctrl.Admin.SeedGazetteer)
			admin.POST("/cache/invalidate", ctrl.Admin.InvalidateCache)
			admin.GET("/stats", ctrl.Admin.GetStats)
		}

		v1.GET("/health", ctrl.Address.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, addressController *controllers.AddressController) {
	router.GET("/health", addressController.HealthCheck)
	router.GET("/ready", addressController.HealthCheck)
	router.GET("/live", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "alive"})
	})
}
