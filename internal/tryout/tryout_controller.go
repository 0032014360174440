package tryout

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
	"github.com/DhavalSuthar-24/transferportal/pkg/validator"
)

// TryoutController handles tryout event HTTP requests
type TryoutController struct {
	repo    TryoutRepository
	orgRepo organization.OrganizationRepository
	auditor audit.Recorder
}

func NewTryoutController(repo TryoutRepository, orgRepo organization.OrganizationRepository, auditor audit.Recorder) *TryoutController {
	return &TryoutController{repo: repo, orgRepo: orgRepo, auditor: auditor}
}

type CreateTryoutRequest struct {
	AssociationID   uint       `json:"association_id" binding:"required"`
	TeamID          *uint      `json:"team_id"`
	Title           string     `json:"title" binding:"required,min=3,max=200"`
	Description     string     `json:"description"`
	Location        string     `json:"location" binding:"max=200"`
	StartsAt        time.Time  `json:"starts_at" binding:"required"`
	EndsAt          *time.Time `json:"ends_at"`
	RegistrationURL string     `json:"registration_url" binding:"omitempty,url"`
	ContactEmail    string     `json:"contact_email" binding:"omitempty,email"`
}

type UpdateTryoutRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=3,max=200"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location" binding:"omitempty,max=200"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	RegistrationURL *string    `json:"registration_url" binding:"omitempty,url"`
	ContactEmail    *string    `json:"contact_email" binding:"omitempty,email"`
}

// ListTryouts godoc
// @Summary List upcoming tryouts in the current region
// @Tags Tryouts
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]TryoutEvent}
// @Security ApiKeyAuth
// @Router /tryouts [get]
func (tc *TryoutController) ListTryouts(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}
	events, err := tc.repo.ListUpcoming(reg.ID, time.Now())
	if err != nil {
		responses.InternalServerError(c, "Failed to list tryouts")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", events)
}

// GetTryout godoc
// @Summary Get a tryout event
// @Tags Tryouts
// @Produce json
// @Param id path int true "Tryout ID"
// @Success 200 {object} responses.SuccessResponse{data=TryoutEvent}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /tryouts/{id} [get]
func (tc *TryoutController) GetTryout(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		responses.BadRequest(c, "Invalid tryout id")
		return
	}
	event, err := tc.repo.GetInRegion(id, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load tryout")
		return
	}
	if event == nil {
		responses.NotFound(c, "Tryout")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", event)
}

// CreateTryout godoc
// @Summary Create a tryout event
// @Tags Tryouts
// @Accept json
// @Produce json
// @Param tryout body CreateTryoutRequest true "Tryout data"
// @Success 201 {object} responses.SuccessResponse{data=TryoutEvent}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /tryouts [post]
func (tc *TryoutController) CreateTryout(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var req CreateTryoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid tryout data", validator.ParseError(err))
		return
	}
	if req.EndsAt != nil && !req.EndsAt.After(req.StartsAt) {
		responses.SendValidationError(c, "Invalid tryout data", map[string]string{"ends_at": "must be after starts_at"})
		return
	}

	assoc, err := tc.orgRepo.GetActiveAssociation(req.AssociationID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load association")
		return
	}
	if assoc == nil {
		responses.SendValidationError(c, "Association not found in region", nil)
		return
	}

	if req.TeamID != nil {
		team, err := tc.orgRepo.GetTeamInRegion(*req.TeamID, reg.ID)
		if err != nil {
			responses.InternalServerError(c, "Failed to load team")
			return
		}
		if team == nil || team.AssociationID != assoc.ID {
			responses.SendValidationError(c, "Team not found in association", nil)
			return
		}
	}

	event := &TryoutEvent{
		RegionID:        reg.ID,
		AssociationID:   assoc.ID,
		TeamID:          req.TeamID,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		RegistrationURL: req.RegistrationURL,
		ContactEmail:    req.ContactEmail,
		IsActive:        true,
	}
	if err := tc.repo.Create(event); err != nil {
		if errors.Is(err, organization.ErrRegionMismatch) {
			responses.SendValidationError(c, err.Error(), nil)
			return
		}
		responses.InternalServerError(c, "Failed to create tryout")
		return
	}

	if !tc.recordAudit(c, u.ID, audit.ActionTryoutCreated, event) {
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Tryout created", event)
}

// UpdateTryout godoc
// @Summary Update a tryout event
// @Tags Tryouts
// @Accept json
// @Produce json
// @Param id path int true "Tryout ID"
// @Param tryout body UpdateTryoutRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=TryoutEvent}
// @Security ApiKeyAuth
// @Router /tryouts/{id} [patch]
func (tc *TryoutController) UpdateTryout(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		responses.BadRequest(c, "Invalid tryout id")
		return
	}

	var req UpdateTryoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid tryout data", validator.ParseError(err))
		return
	}

	event, err := tc.repo.GetInRegion(id, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load tryout")
		return
	}
	if event == nil {
		responses.NotFound(c, "Tryout")
		return
	}

	applyTryoutPatch(event, &req)
	if event.EndsAt != nil && !event.EndsAt.After(event.StartsAt) {
		responses.SendValidationError(c, "Invalid tryout data", map[string]string{"ends_at": "must be after starts_at"})
		return
	}
	if err := tc.repo.Update(event); err != nil {
		responses.InternalServerError(c, "Failed to update tryout")
		return
	}

	if !tc.recordAudit(c, u.ID, audit.ActionTryoutUpdated, event) {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tryout updated", event)
}

// DeactivateTryout godoc
// @Summary Deactivate a tryout event
// @Description The event stops appearing in listings but stays on record.
// @Tags Tryouts
// @Produce json
// @Param id path int true "Tryout ID"
// @Success 200 {object} responses.SuccessResponse
// @Security ApiKeyAuth
// @Router /tryouts/{id} [delete]
func (tc *TryoutController) DeactivateTryout(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		responses.BadRequest(c, "Invalid tryout id")
		return
	}

	event, err := tc.repo.GetInRegion(id, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load tryout")
		return
	}
	if event == nil {
		responses.NotFound(c, "Tryout")
		return
	}
	if !event.IsActive {
		responses.SendSuccess(c, http.StatusOK, "Tryout already deactivated", nil)
		return
	}

	event.IsActive = false
	if err := tc.repo.Update(event); err != nil {
		responses.InternalServerError(c, "Failed to deactivate tryout")
		return
	}

	if !tc.recordAudit(c, u.ID, audit.ActionTryoutDeactivated, event) {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Tryout deactivated", nil)
}

func (tc *TryoutController) recordAudit(c *gin.Context, actorID uint, action string, event *TryoutEvent) bool {
	id := actorID
	err := tc.auditor.Record(&id, action, "TryoutEvent", event.ID, event.RegionID, map[string]interface{}{
		"association_id": event.AssociationID,
	})
	if err != nil {
		responses.InternalServerError(c, "Failed to record audit entry")
		return false
	}
	return true
}

func applyTryoutPatch(event *TryoutEvent, req *UpdateTryoutRequest) {
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartsAt != nil {
		event.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		event.EndsAt = req.EndsAt
	}
	if req.RegistrationURL != nil {
		event.RegistrationURL = *req.RegistrationURL
	}
	if req.ContactEmail != nil {
		event.ContactEmail = *req.ContactEmail
	}
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
