package profile

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
)

func RegisterProfileRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewProfileRepository(db)
	controller := NewProfileController(repo)

	me := router.Group("/players/me")
	me.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), middleware.RequirePlayer())
	{
		me.GET("/profile", controller.GetMyProfile)
		me.PATCH("/profile", controller.UpdateMyProfile)
	}
}
