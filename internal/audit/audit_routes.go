package audit

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
)

// RegisterAuditRoutes sets up the admin-only audit log endpoint.
func RegisterAuditRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	controller := NewAuditController(NewRecorder(db))

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), middleware.RequireAdmin())
	{
		admin.GET("/audit-log", controller.ListAuditLog)
	}
}
