package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/availability"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/region"
	"github.com/DhavalSuthar-24/transferportal/internal/user"
	"github.com/DhavalSuthar-24/transferportal/pkg/mailer"
	"github.com/DhavalSuthar-24/transferportal/pkg/token"
)

type contactTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config

	region *region.Region
	assoc  *organization.Association
	team   *organization.Team
	coach  *user.User
	player *user.User
}

func setupContactEnv(t *testing.T) *contactTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	require.NoError(t, db.AutoMigrate(
		&region.Region{},
		&organization.Association{},
		&organization.Team{},
		&organization.TeamCoach{},
		&availability.PlayerAvailability{},
		&audit.AuditLog{},
	))

	cfg := &config.Config{}
	cfg.JWT.AccessTokenSecret = "test-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 15
	cfg.App.DefaultRegion = "bc"

	reg := &region.Region{Code: "bc", Name: "British Columbia", IsActive: true}
	require.NoError(t, db.Create(reg).Error)
	assoc := &organization.Association{RegionID: reg.ID, Name: "North Shore", IsActive: true}
	require.NoError(t, db.Create(assoc).Error)
	team := &organization.Team{RegionID: reg.ID, AssociationID: assoc.ID, Name: "Twins", IsActive: true}
	require.NoError(t, db.Create(team).Error)

	coach := &user.User{FirstName: "Kay", LastName: "Coach", Email: "coach@nsml.ca", IsActive: true}
	require.NoError(t, db.Create(coach).Error)
	require.NoError(t, db.Create(&user.AccountProfile{
		UserID: coach.ID, Role: user.RoleCoach, IsCoachApproved: true, AssociationID: &assoc.ID,
	}).Error)
	require.NoError(t, db.Create(&organization.TeamCoach{UserID: coach.ID, TeamID: team.ID, IsActive: true}).Error)

	player := &user.User{FirstName: "Jay", LastName: "Player", Email: "player@example.com", IsActive: true}
	require.NoError(t, db.Create(player).Error)
	require.NoError(t, db.Create(&user.AccountProfile{
		UserID: player.ID, Role: user.RolePlayer, PhoneNumber: "+16045550123",
	}).Error)

	availRepo := availability.NewAvailabilityRepository(db)
	record, _, err := availRepo.GetOrCreate(player.ID, reg.ID)
	require.NoError(t, err)
	require.NoError(t, availRepo.ReplaceAllowedAssociations(record, []organization.Association{*assoc}))

	router := gin.New()
	router.Use(middleware.RegionMiddleware(db, cfg.App.DefaultRegion))
	api := router.Group("/api/v1")
	RegisterContactRoutes(api, db, cfg, mailer.NewFromConfig(&config.Config{}))

	return &contactTestEnv{
		db: db, router: router, cfg: cfg,
		region: reg, assoc: assoc, team: team, coach: coach, player: player,
	}
}

func (e *contactTestEnv) do(t *testing.T, method, path string, actor *user.User, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Host = "bc.transferportal.ca"
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		jwt, err := token.GenerateJWT(actor.ID, actor.EffectiveRole(), e.cfg.JWT.AccessTokenSecret, e.cfg.JWT.AccessTokenExpiryMinutes)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+jwt)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *contactTestEnv) auditCount(t *testing.T, action string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&audit.AuditLog{}).Where("action = ?", action).Count(&count).Error)
	return count
}

func TestContactRequestLifecycle(t *testing.T) {
	env := setupContactEnv(t)

	// Coach requests contact through their team.
	w := env.do(t, http.MethodPost, "/api/v1/contact-requests", env.coach, gin.H{
		"player_id":          env.player.ID,
		"requesting_team_id": env.team.ID,
		"message":            "We would love to have you try out.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.EqualValues(t, 1, env.auditCount(t, audit.ActionContactRequestCreated))

	// Contact details are hidden while pending, even from the requester.
	assert.Contains(t, w.Body.String(), `"player_email":null`)
	assert.Contains(t, w.Body.String(), `"player_phone":null`)

	var created ContactRequest
	require.NoError(t, env.db.First(&created).Error)
	assert.Equal(t, StatusPending, created.Status)

	// A duplicate while pending is a validation failure, not a 500.
	w = env.do(t, http.MethodPost, "/api/v1/contact-requests", env.coach, gin.H{
		"player_id":          env.player.ID,
		"requesting_team_id": env.team.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	// Only the target player may respond.
	respondPath := fmt.Sprintf("/api/v1/contact-requests/%d/respond", created.ID)
	w = env.do(t, http.MethodPost, respondPath, env.coach, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

	// The player approves; the requester now sees the contact details.
	w = env.do(t, http.MethodPost, respondPath, env.player, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, env.auditCount(t, audit.ActionContactRequestApproved))

	w = env.do(t, http.MethodGet, "/api/v1/contact-requests", env.coach, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"player_email":"player@example.com"`)
	assert.Contains(t, w.Body.String(), `"player_phone":"+16045550123"`)
	assert.Contains(t, w.Body.String(), `"pending_count":0`)

	// Responding again is rejected without a second audit entry.
	w = env.do(t, http.MethodPost, respondPath, env.player, gin.H{"status": "declined"})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.EqualValues(t, 1, env.auditCount(t, audit.ActionContactRequestApproved))
	assert.EqualValues(t, 0, env.auditCount(t, audit.ActionContactRequestDeclined))
}

func TestContactRequestRejectedForCommittedPlayer(t *testing.T) {
	env := setupContactEnv(t)

	availRepo := availability.NewAvailabilityRepository(env.db)
	record, err := availRepo.GetByPlayer(env.player.ID)
	require.NoError(t, err)
	committed := true
	record.Apply(availability.UpdatePatch{IsCommitted: &committed}, time.Now())
	require.NoError(t, availRepo.Save(record))

	w := env.do(t, http.MethodPost, "/api/v1/contact-requests", env.coach, gin.H{
		"player_id":          env.player.ID,
		"requesting_team_id": env.team.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "committed")
}

func TestContactRequestRejectedWhenAssociationNotAllowed(t *testing.T) {
	env := setupContactEnv(t)

	availRepo := availability.NewAvailabilityRepository(env.db)
	record, err := availRepo.GetByPlayer(env.player.ID)
	require.NoError(t, err)
	require.NoError(t, availRepo.ReplaceAllowedAssociations(record, nil))

	w := env.do(t, http.MethodPost, "/api/v1/contact-requests", env.coach, gin.H{
		"player_id":          env.player.ID,
		"requesting_team_id": env.team.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "not allowed this association")
}

func TestContactRequestRejectedForNonMemberCoach(t *testing.T) {
	env := setupContactEnv(t)

	require.NoError(t, env.db.Model(&organization.TeamCoach{}).
		Where("user_id = ?", env.coach.ID).
		Update("is_active", false).Error)

	w := env.do(t, http.MethodPost, "/api/v1/contact-requests", env.coach, gin.H{
		"player_id":          env.player.ID,
		"requesting_team_id": env.team.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "not associated with the requesting team")
}
