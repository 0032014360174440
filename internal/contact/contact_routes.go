package contact

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/availability"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/user"
	"github.com/DhavalSuthar-24/transferportal/pkg/mailer"
)

// RegisterContactRoutes sets up the contact request endpoints.
func RegisterContactRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, mail mailer.Mailer) {
	controller := NewContactController(
		NewContactRepository(db),
		organization.NewOrganizationRepository(db),
		availability.NewAvailabilityRepository(db),
		user.NewUserRepository(db),
		audit.NewRecorder(db),
		mail,
		appConfig,
	)

	requests := router.Group("/contact-requests")
	requests.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		requests.POST("", middleware.RequireApprovedCoachOrAdmin(), controller.CreateContactRequest)
		requests.GET("", controller.ListContactRequests)
		requests.POST("/:id/respond", middleware.RequirePlayer(), controller.RespondContactRequest)
	}
}
