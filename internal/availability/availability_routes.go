package availability

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/profile"
)

func RegisterAvailabilityRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, approvedAccess ApprovedAccessChecker) {
	repo := NewAvailabilityRepository(db)
	controller := NewAvailabilityController(
		repo,
		organization.NewOrganizationRepository(db),
		profile.NewProfileRepository(db),
		audit.NewRecorder(db),
		approvedAccess,
	)

	me := router.Group("/players/me/availability")
	me.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), middleware.RequirePlayer())
	{
		me.GET("", controller.GetMyAvailability)
		me.PATCH("", controller.UpdateMyAvailability)
		me.POST("/commit", controller.CommitAction)
	}

	open := router.Group("/players/open")
	open.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), middleware.RequireApprovedCoachOrAdmin())
	{
		open.GET("", controller.SearchOpenPlayers)
		open.GET("/:player_id", controller.OpenPlayerDetail)
	}
}
