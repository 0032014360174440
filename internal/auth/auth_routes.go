package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/user"
	"github.com/DhavalSuthar-24/transferportal/pkg/mailer"
)

// RegisterAuthRoutes sets up registration, verification and session endpoints.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, mail mailer.Mailer) {
	controller := NewAuthController(
		user.NewUserRepository(db),
		organization.NewOrganizationRepository(db),
		mail,
		appConfig,
	)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup/player", controller.PlayerSignup)
		authGroup.POST("/signup/coach", controller.CoachSignup)
		authGroup.GET("/verify-email", controller.VerifyEmail)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/refresh", controller.Refresh)
	}

	authed := router.Group("/auth")
	authed.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authed.POST("/logout", controller.Logout)
		authed.GET("/me", controller.Me)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), middleware.RequireAdmin())
	{
		admin.POST("/coaches/:id/approve", controller.ApproveCoach)
	}
}
