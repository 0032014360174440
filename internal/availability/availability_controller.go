package availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/internal/audit"
	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/internal/organization"
	"github.com/DhavalSuthar-24/transferportal/internal/profile"
	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
)

// ApprovedAccessChecker reports whether the requester holds an approved
// contact request for the player in the region. An approved contact is
// durable access: the detail view stays reachable even after the player's
// availability no longer matches the coach's mandate.
type ApprovedAccessChecker interface {
	HasApprovedRequest(playerID, requesterID, regionID uint) (bool, error)
}

// AvailabilityController handles availability HTTP requests
type AvailabilityController struct {
	repo           AvailabilityRepository
	orgRepo        organization.OrganizationRepository
	profileRepo    profile.ProfileRepository
	auditor        audit.Recorder
	approvedAccess ApprovedAccessChecker
}

func NewAvailabilityController(
	repo AvailabilityRepository,
	orgRepo organization.OrganizationRepository,
	profileRepo profile.ProfileRepository,
	auditor audit.Recorder,
	approvedAccess ApprovedAccessChecker,
) *AvailabilityController {
	return &AvailabilityController{
		repo:           repo,
		orgRepo:        orgRepo,
		profileRepo:    profileRepo,
		auditor:        auditor,
		approvedAccess: approvedAccess,
	}
}

// --- DTOs ---

type UpdateAvailabilityRequest struct {
	IsOpen                *bool      `json:"is_open"`
	IsCommitted           *bool      `json:"is_committed"`
	Positions             *[]string  `json:"positions"`
	Levels                *[]string  `json:"levels"`
	ExpiresAt             *time.Time `json:"expires_at"`
	AllowedAssociationIDs *[]uint    `json:"allowed_association_ids"`
}

type CommitActionRequest struct {
	Action string `json:"action" binding:"required,oneof=commit uncommit"`
}

// SearchResult is the discovery projection. It deliberately carries no
// contact fields; email and phone are only ever exposed through an approved
// contact request.
type SearchResult struct {
	PlayerID   uint      `json:"player_id"`
	Positions  []string  `json:"positions"`
	Levels     []string  `json:"levels"`
	RegionCode string    `json:"region_code"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PlayerDetailResponse struct {
	Availability *PlayerAvailability    `json:"availability"`
	Profile      *profile.PlayerProfile `json:"profile"`
}

// --- Handlers ---

// GetMyAvailability godoc
// @Summary Get own availability record
// @Description Returns the caller's availability, creating it on first access.
// @Tags Availability
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=PlayerAvailability}
// @Failure 404 {object} responses.ErrorResponse "No region resolved"
// @Security ApiKeyAuth
// @Router /players/me/availability [get]
func (ac *AvailabilityController) GetMyAvailability(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	record, _, err := ac.repo.GetOrCreate(u.ID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load availability")
		return
	}
	if record.RegionID != reg.ID {
		responses.BadRequest(c, "Availability region mismatch")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", record)
}

// UpdateMyAvailability godoc
// @Summary Update own availability record
// @Description Applies a partial update. Committing forces the record closed;
// @Description the record's region can never change.
// @Tags Availability
// @Accept json
// @Produce json
// @Param availability body UpdateAvailabilityRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=PlayerAvailability}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/me/availability [patch]
func (ac *AvailabilityController) UpdateMyAvailability(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var req UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	now := time.Now()
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		responses.SendValidationError(c, "Validation failed", map[string]string{
			"expires_at": "must be in the future",
		})
		return
	}

	record, _, err := ac.repo.GetOrCreate(u.ID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load availability")
		return
	}
	if record.RegionID != reg.ID {
		responses.BadRequest(c, "Availability region mismatch")
		return
	}

	// Allowed associations must all belong to the record's region. Unknown or
	// out-of-region ids reject the whole update; nothing is dropped silently.
	var allowed []organization.Association
	if req.AllowedAssociationIDs != nil {
		allowed = make([]organization.Association, 0, len(*req.AllowedAssociationIDs))
		for _, id := range *req.AllowedAssociationIDs {
			assoc, err := ac.orgRepo.GetActiveAssociation(id, record.RegionID)
			if err != nil {
				responses.InternalServerError(c, "Failed to validate associations")
				return
			}
			if assoc == nil {
				responses.SendValidationError(c, "Validation failed", map[string]string{
					"allowed_association_ids": "association " + strconv.FormatUint(uint64(id), 10) + " does not belong to this region",
				})
				return
			}
			allowed = append(allowed, *assoc)
		}
	}

	actions := record.Apply(UpdatePatch{
		IsOpen:      req.IsOpen,
		IsCommitted: req.IsCommitted,
		Positions:   req.Positions,
		Levels:      req.Levels,
		ExpiresAt:   req.ExpiresAt,
	}, now)

	if err := ac.repo.Save(record); err != nil {
		responses.InternalServerError(c, "Failed to update availability")
		return
	}
	if req.AllowedAssociationIDs != nil {
		if err := ac.repo.ReplaceAllowedAssociations(record, allowed); err != nil {
			responses.InternalServerError(c, "Failed to update allowed associations")
			return
		}
		record.AllowedAssociations = allowed
	}

	if !ac.recordAuditActions(c, u.ID, record, actions) {
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Availability updated", record)
}

// CommitAction godoc
// @Summary Commit or uncommit
// @Description Commit marks the player unavailable and closes visibility;
// @Description uncommit clears the committed flag without reopening.
// @Tags Availability
// @Accept json
// @Produce json
// @Param action body CommitActionRequest true "commit or uncommit"
// @Success 200 {object} responses.SuccessResponse{data=PlayerAvailability}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/me/availability/commit [post]
func (ac *AvailabilityController) CommitAction(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var req CommitActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	record, _, err := ac.repo.GetOrCreate(u.ID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load availability")
		return
	}
	if record.RegionID != reg.ID {
		responses.BadRequest(c, "Availability region mismatch")
		return
	}

	committed := req.Action == "commit"
	actions := record.Apply(UpdatePatch{IsCommitted: &committed}, time.Now())
	if err := ac.repo.Save(record); err != nil {
		responses.InternalServerError(c, "Failed to update availability")
		return
	}

	if !ac.recordAuditActions(c, u.ID, record, actions) {
		return
	}

	message := "Committed status cleared"
	if committed {
		message = "Marked as committed. You are no longer searchable."
	}
	responses.SendSuccess(c, http.StatusOK, message, record)
}

// SearchOpenPlayers godoc
// @Summary Search open players
// @Description Lists effectively open players in the current region. Admins
// @Description see the full set; approved coaches only players whose
// @Description allow-list intersects the coach's authorized associations.
// @Tags Availability
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]SearchResult}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/open [get]
func (ac *AvailabilityController) SearchOpenPlayers(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var restrictTo []uint
	if !u.IsAdmin() {
		restrictTo, err = ac.orgRepo.AuthorizedAssociationIDs(u.ID, reg.ID, u.HomeAssociationID())
		if err != nil {
			responses.InternalServerError(c, "Failed to resolve coach associations")
			return
		}
		if restrictTo == nil {
			restrictTo = []uint{}
		}
	}

	records, err := ac.repo.SearchOpen(reg.ID, restrictTo, time.Now())
	if err != nil {
		responses.InternalServerError(c, "Failed to search open players")
		return
	}

	results := make([]SearchResult, 0, len(records))
	for _, record := range records {
		results = append(results, SearchResult{
			PlayerID:   record.PlayerID,
			Positions:  record.Positions,
			Levels:     record.Levels,
			RegionCode: reg.Code,
			UpdatedAt:  record.UpdatedAt,
		})
	}
	responses.SendSuccess(c, http.StatusOK, "", results)
}

// OpenPlayerDetail godoc
// @Summary View a single open player
// @Description Succeeds when the player is open and within the viewer's
// @Description mandate, or when the viewer holds an approved contact request
// @Description for the player. Reports not-found otherwise; never forbidden,
// @Description so existence is not leaked.
// @Tags Availability
// @Produce json
// @Param player_id path int true "Player ID"
// @Success 200 {object} responses.SuccessResponse{data=PlayerDetailResponse}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/open/{player_id} [get]
func (ac *AvailabilityController) OpenPlayerDetail(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	playerID64, err := strconv.ParseUint(c.Param("player_id"), 10, 64)
	if err != nil {
		responses.BadRequest(c, "Invalid player id")
		return
	}
	playerID := uint(playerID64)
	now := time.Now()

	record, err := ac.repo.GetByPlayerInRegion(playerID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load availability")
		return
	}

	hasAccess := false
	switch {
	case u.IsAdmin():
		hasAccess = record != nil
	default:
		if record != nil && record.IsOpenEffective(now) {
			authorized, err := ac.orgRepo.AuthorizedAssociationIDs(u.ID, reg.ID, u.HomeAssociationID())
			if err != nil {
				responses.InternalServerError(c, "Failed to resolve coach associations")
				return
			}
			hasAccess = intersects(allowedIDs(record), authorized)
		}
		if !hasAccess {
			approved, err := ac.approvedAccess.HasApprovedRequest(playerID, u.ID, reg.ID)
			if err != nil {
				responses.InternalServerError(c, "Failed to check contact requests")
				return
			}
			hasAccess = approved
		}
	}

	if !hasAccess {
		// Not-found on purpose: a forbidden here would reveal the player
		// exists.
		responses.NotFound(c, "Player")
		return
	}

	detail := PlayerDetailResponse{}
	if record != nil && (u.IsAdmin() || record.IsOpenEffective(now)) {
		detail.Availability = record
	}
	playerProfile, err := ac.profileRepo.GetByUserID(playerID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load player profile")
		return
	}
	detail.Profile = playerProfile

	responses.SendSuccess(c, http.StatusOK, "", detail)
}

func (ac *AvailabilityController) recordAuditActions(c *gin.Context, actorID uint, record *PlayerAvailability, actions []string) bool {
	for _, action := range actions {
		if err := ac.auditor.Record(&actorID, action, "PlayerAvailability", record.ID, record.RegionID, nil); err != nil {
			responses.InternalServerError(c, "Failed to record audit entry")
			return false
		}
	}
	return true
}

func allowedIDs(record *PlayerAvailability) []uint {
	ids := make([]uint, 0, len(record.AllowedAssociations))
	for _, assoc := range record.AllowedAssociations {
		ids = append(ids, assoc.ID)
	}
	return ids
}

func intersects(a, b []uint) bool {
	set := make(map[uint]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
