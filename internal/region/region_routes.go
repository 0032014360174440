package region

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRegionRoutes sets up region endpoints. The admin guard chain is
// passed in by the router because the auth middleware itself depends on this
// package for request-region resolution.
func RegisterRegionRoutes(router *gin.RouterGroup, db *gorm.DB, adminOnly ...gin.HandlerFunc) {
	controller := NewRegionController(NewRegionRepository(db))

	router.GET("/regions", controller.ListRegions)

	admin := router.Group("/regions")
	admin.Use(adminOnly...)
	{
		admin.POST("", controller.CreateRegion)
		admin.PATCH("/:id", controller.UpdateRegion)
	}
}
