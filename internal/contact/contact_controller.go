package contact

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/config"
	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/availability"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/user"
	"github.com/DhavalSuthar-24/transferportal/pkg/mailer"
	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
)

// ContactController handles contact request HTTP requests
type ContactController struct {
	repo      ContactRepository
	orgRepo   organization.OrganizationRepository
	availRepo availability.AvailabilityRepository
	userRepo  user.UserRepository
	auditor   audit.Recorder
	mail      mailer.Mailer
	appConfig *config.Config
}

func NewContactController(
	repo ContactRepository,
	orgRepo organization.OrganizationRepository,
	availRepo availability.AvailabilityRepository,
	userRepo user.UserRepository,
	auditor audit.Recorder,
	mail mailer.Mailer,
	appConfig *config.Config,
) *ContactController {
	return &ContactController{
		repo:      repo,
		orgRepo:   orgRepo,
		availRepo: availRepo,
		userRepo:  userRepo,
		auditor:   auditor,
		mail:      mail,
		appConfig: appConfig,
	}
}

// --- DTOs ---

type CreateContactRequestRequest struct {
	PlayerID         uint   `json:"player_id" binding:"required"`
	RequestingTeamID *uint  `json:"requesting_team_id"`
	Message          string `json:"message" binding:"max=500"`
}

type RespondContactRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=approved declined"`
}

// --- Handlers ---

// CreateContactRequest godoc
// @Summary Create a contact request
// @Description Sends a contact request to an open player. The requester must
// @Description be an approved coach (or admin), the player must be open and
// @Description must have allowed the requesting association, and no pending
// @Description request may already exist for the same player and team.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param request body CreateContactRequestRequest true "Contact request"
// @Success 201 {object} responses.SuccessResponse{data=ContactRequestView}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /contact-requests [post]
func (cc *ContactController) CreateContactRequest(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var req CreateContactRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	// Resolve the target association: either through the explicit team, or
	// through the requester's home association when no team is given.
	var teamID *uint
	var targetAssociationID uint
	if req.RequestingTeamID != nil {
		team, err := cc.orgRepo.GetTeamInRegion(*req.RequestingTeamID, reg.ID)
		if err != nil {
			responses.InternalServerError(c, "Failed to load team")
			return
		}
		if team == nil {
			responses.SendValidationError(c, "Requesting team not found in region", nil)
			return
		}
		if !u.IsAdmin() {
			member, err := cc.orgRepo.HasActiveMembership(u.ID, team.ID)
			if err != nil {
				responses.InternalServerError(c, "Failed to check team membership")
				return
			}
			if !member {
				responses.SendValidationError(c, "Coach is not associated with the requesting team", nil)
				return
			}
		}
		teamID = &team.ID
		targetAssociationID = team.AssociationID
	} else {
		home, err := cc.orgRepo.GetActiveAssociation(u.HomeAssociationID(), reg.ID)
		if err != nil {
			responses.InternalServerError(c, "Failed to load home association")
			return
		}
		if home == nil {
			responses.SendValidationError(c, "Your home association does not belong to this region", nil)
			return
		}
		targetAssociationID = home.ID
	}

	now := time.Now()
	av, err := cc.availRepo.GetByPlayerInRegion(req.PlayerID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load player availability")
		return
	}
	if av == nil {
		responses.SendValidationError(c, "Player is not currently open", nil)
		return
	}
	if av.IsCommitted {
		responses.SendValidationError(c, "Player is committed and unavailable", nil)
		return
	}
	if !av.IsOpenEffective(now) {
		responses.SendValidationError(c, "Player is not currently open", nil)
		return
	}

	allowed, err := cc.availRepo.AllowsAssociation(av.ID, targetAssociationID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check allowed associations")
		return
	}
	if !allowed {
		responses.SendValidationError(c, "Player has not allowed this association to view availability", nil)
		return
	}

	// Pre-check for a friendly error; the partial unique index is the real
	// guard under concurrency and Create maps its violation to the same error.
	var duplicate bool
	if teamID != nil {
		duplicate, err = cc.repo.HasPendingForTeam(req.PlayerID, *teamID)
	} else {
		duplicate, err = cc.repo.HasPendingForAssociation(req.PlayerID, targetAssociationID)
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing requests")
		return
	}
	if duplicate {
		responses.SendValidationError(c, ErrDuplicatePending.Error(), nil)
		return
	}

	cr := &ContactRequest{
		PlayerID:         req.PlayerID,
		RequestingTeamID: teamID,
		RequestedByID:    u.ID,
		RegionID:         reg.ID,
		Status:           StatusPending,
		Message:          req.Message,
	}
	if teamID == nil {
		// Association-level request: the per-player-per-association pending
		// uniqueness applies only when no specific team is named.
		cr.RequestingAssociationID = &targetAssociationID
	}
	if err := cc.repo.Create(cr); err != nil {
		if errors.Is(err, ErrDuplicatePending) {
			responses.SendValidationError(c, ErrDuplicatePending.Error(), nil)
			return
		}
		responses.InternalServerError(c, "Failed to create contact request")
		return
	}

	metadata := map[string]interface{}{}
	if teamID != nil {
		metadata["requesting_team_id"] = *teamID
	}
	actorID := u.ID
	if err := cc.auditor.Record(&actorID, audit.ActionContactRequestCreated, "ContactRequest", cr.ID, cr.RegionID, metadata); err != nil {
		responses.InternalServerError(c, "Failed to record audit entry")
		return
	}

	cc.notifyPlayer(req.PlayerID)

	// Reload with the player preloaded so the view can project contact
	// fields for future approved reads consistently.
	created, err := cc.repo.GetByIDInRegion(cr.ID, reg.ID)
	if err != nil || created == nil {
		created = cr
	}
	responses.SendSuccess(c, http.StatusCreated, "Contact request sent", NewContactRequestView(created, u))
}

// ListContactRequests godoc
// @Summary List contact requests
// @Description Players see requests sent to them; coaches and admins see
// @Description requests they sent. All scoped to the current region.
// @Tags Contacts
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=ContactRequestListView}
// @Security ApiKeyAuth
// @Router /contact-requests [get]
func (cc *ContactController) ListContactRequests(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var requests []ContactRequest
	if u.EffectiveRole() == user.RolePlayer {
		requests, err = cc.repo.ListForPlayer(u.ID, reg.ID)
	} else {
		requests, err = cc.repo.ListForRequester(u.ID, reg.ID)
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to list contact requests")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", NewContactRequestListView(requests, u))
}

// RespondContactRequest godoc
// @Summary Respond to a contact request
// @Description Only the target player may respond, only while the request is
// @Description pending. Approving exposes the player's contact details to the
// @Description requester.
// @Tags Contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact request ID"
// @Param response body RespondContactRequestRequest true "approved or declined"
// @Success 200 {object} responses.SuccessResponse{data=ContactRequestView}
// @Failure 403 {object} responses.ErrorResponse "Not the target player"
// @Failure 404 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Already processed"
// @Security ApiKeyAuth
// @Router /contact-requests/{id}/respond [post]
func (cc *ContactController) RespondContactRequest(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid contact request id")
		return
	}

	var req RespondContactRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	cr, err := cc.repo.GetByIDInRegion(uint(id64), reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load contact request")
		return
	}
	if cr == nil {
		responses.NotFound(c, "Contact request")
		return
	}
	if cr.PlayerID != u.ID {
		// Distinct from already-processed: responding to someone else's
		// request is an authorization failure.
		responses.Forbidden(c, "You can only respond to your own requests")
		return
	}
	if !cr.IsPending() {
		responses.Conflict(c, "That request has already been processed")
		return
	}

	if err := cc.repo.Respond(cr, req.Status, time.Now()); err != nil {
		if errors.Is(err, ErrAlreadyProcessed) {
			responses.Conflict(c, "That request has already been processed")
			return
		}
		responses.InternalServerError(c, "Failed to respond to contact request")
		return
	}

	action := audit.ActionContactRequestDeclined
	if cr.Status == StatusApproved {
		action = audit.ActionContactRequestApproved
	}
	actorID := u.ID
	if err := cc.auditor.Record(&actorID, action, "ContactRequest", cr.ID, cr.RegionID, nil); err != nil {
		responses.InternalServerError(c, "Failed to record audit entry")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Response saved", NewContactRequestView(cr, u))
}

// notifyPlayer sends the new-request email. Best effort only; the request row
// is already committed and a notification failure never unwinds it.
func (cc *ContactController) notifyPlayer(playerID uint) {
	player, err := cc.userRepo.GetUserByID(playerID)
	if err != nil || player == nil {
		return
	}
	body := "You have a new contact request on the Transfer Portal.\n\n" +
		"Please log in to review and respond:\n" +
		cc.appConfig.App.FrontendURL + "/requests\n"
	mailer.SendBestEffort(cc.mail, player.Email, "New contact request", body)
}
