package organization

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
)

// RegisterOrganizationRoutes sets up association, team and membership
// endpoints. Listings are public within the resolved region; writes are
// admin only.
func RegisterOrganizationRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	controller := NewOrganizationController(NewOrganizationRepository(db))

	router.GET("/associations", controller.ListAssociations)
	router.GET("/teams", controller.ListTeams)

	auth := middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db)

	admin := router.Group("")
	admin.Use(auth, middleware.RequireAdmin())
	{
		admin.POST("/associations", controller.CreateAssociation)
		admin.PATCH("/associations/:id", controller.UpdateAssociation)
		admin.POST("/teams", controller.CreateTeam)
		admin.PATCH("/teams/:id", controller.UpdateTeam)
		admin.POST("/teams/:id/coaches", controller.SetTeamCoach)
	}

	coaches := router.Group("/coaches")
	coaches.Use(auth)
	{
		coaches.GET("/me/memberships", controller.ListMyMemberships)
	}
}
