package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/availability"
	"github.com/DhavalSuthar-24/transferportal/internal/contact"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/profile"
	"github.com/DhavalSuthar-24/transferportal/internal/region"
	"github.com/DhavalSuthar-24/transferportal/internal/tryout"
	"github.com/DhavalSuthar-24/transferportal/internal/user"
	"github.com/DhavalSuthar-24/transferportal/pkg/mailer"
	"github.com/DhavalSuthar-24/transferportal/routes"
)

// @title Transfer Portal API
// @version 1.0
// @description Multi-tenant baseball transfer portal: player availability,
// @description coach discovery and contact requests, scoped per region.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("initialization failed")
	}
	appConfig := config.GetConfig()

	if appConfig.App.Env == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	db := config.DB
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	if err := seedDefaultRegion(db, appConfig.App.DefaultRegion); err != nil {
		log.Fatal().Err(err).Msg("region seed failed")
	}

	mail := mailer.NewFromConfig(appConfig)
	router := routes.SetupRouter(db, appConfig, mail)

	addr := ":" + appConfig.App.Port
	log.Info().Str("addr", addr).Str("env", appConfig.App.Env).Msg("starting server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&region.Region{},
		&user.User{},
		&user.AccountProfile{},
		&user.RefreshToken{},
		&organization.Association{},
		&organization.Team{},
		&organization.TeamCoach{},
		&profile.PlayerProfile{},
		&availability.PlayerAvailability{},
		&contact.ContactRequest{},
		&tryout.TryoutEvent{},
		&audit.AuditLog{},
	)
}

// seedDefaultRegion makes sure the fallback region exists so requests without
// a recognized subdomain always resolve somewhere.
func seedDefaultRegion(db *gorm.DB, code string) error {
	repo := region.NewRegionRepository(db)
	existing, err := repo.GetActiveByCode(code)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return repo.Create(&region.Region{Code: code, Name: "British Columbia", IsActive: true})
}
