package tryout

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
)

// RegisterTryoutRoutes sets up tryout event endpoints. Reads require a login;
// writes are admin only.
func RegisterTryoutRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	controller := NewTryoutController(
		NewTryoutRepository(db),
		organization.NewOrganizationRepository(db),
		audit.NewRecorder(db),
	)

	auth := middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db)

	tryouts := router.Group("/tryouts")
	tryouts.Use(auth)
	{
		tryouts.GET("", controller.ListTryouts)
		tryouts.GET("/:id", controller.GetTryout)
	}

	admin := router.Group("/tryouts")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateTryout)
		admin.PATCH("/:id", controller.UpdateTryout)
		admin.DELETE("/:id", controller.DeactivateTryout)
	}
}
