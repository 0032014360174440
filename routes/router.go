package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/auth"
	"github.com/DhavalSuthar-24/transferportal/internal/availability"
	"github.com/DhavalSuthar-24/transferportal/internal/contact"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/profile"
	"github.com/DhavalSuthar-24/transferportal/internal/region"
	"github.com/DhavalSuthar-24/transferportal/internal/tryout"
	"github.com/DhavalSuthar-24/transferportal/pkg/mailer"
)

// SetupRouter configures the gin engine with all middleware and routes.
func SetupRouter(db *gorm.DB, appConfig *config.Config, mail mailer.Mailer) *gin.Engine {
	if appConfig.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if appConfig.App.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{appConfig.App.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Every request runs in exactly one region, resolved from the subdomain.
	router.Use(middleware.RegionMiddleware(db, appConfig.App.DefaultRegion))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")

	adminGuard := []gin.HandlerFunc{
		middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db),
		middleware.RequireAdmin(),
	}

	auth.RegisterAuthRoutes(api, db, appConfig, mail)
	region.RegisterRegionRoutes(api, db, adminGuard...)
	organization.RegisterOrganizationRoutes(api, db, appConfig)
	profile.RegisterProfileRoutes(api, db, appConfig)
	availability.RegisterAvailabilityRoutes(api, db, appConfig, contact.NewContactRepository(db))
	contact.RegisterContactRoutes(api, db, appConfig, mail)
	tryout.RegisterTryoutRoutes(api, db, appConfig)
	audit.RegisterAuditRoutes(api, db, appConfig)

	return router
}
