package organization

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
	"github.com/DhavalSuthar-24/transferportal/pkg/validator"
)

// OrganizationController handles association and team HTTP requests
type OrganizationController struct {
	repo OrganizationRepository
}

func NewOrganizationController(repo OrganizationRepository) *OrganizationController {
	return &OrganizationController{repo: repo}
}

// --- DTOs ---

type CreateAssociationRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	ShortName      string `json:"short_name" binding:"max=20"`
	OfficialDomain string `json:"official_domain" binding:"omitempty,fqdn"`
	WebsiteURL     string `json:"website_url" binding:"omitempty,url"`
	Description    string `json:"description"`
	ContactEmail   string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   string `json:"contact_phone"`
	Address        string `json:"address"`
	LogoURL        string `json:"logo_url" binding:"omitempty,url"`
}

type UpdateAssociationRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=2,max=100"`
	ShortName      *string `json:"short_name" binding:"omitempty,max=20"`
	OfficialDomain *string `json:"official_domain" binding:"omitempty,fqdn"`
	WebsiteURL     *string `json:"website_url" binding:"omitempty,url"`
	Description    *string `json:"description"`
	ContactEmail   *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   *string `json:"contact_phone"`
	Address        *string `json:"address"`
	LogoURL        *string `json:"logo_url" binding:"omitempty,url"`
	IsActive       *bool   `json:"is_active"`
}

type CreateTeamRequest struct {
	AssociationID uint   `json:"association_id" binding:"required"`
	Name          string `json:"name" binding:"required,min=2,max=100"`
	AgeGroup      string `json:"age_group" binding:"max=20"`
	Level         string `json:"level" binding:"max=50"`
}

type UpdateTeamRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	AgeGroup *string `json:"age_group" binding:"omitempty,max=20"`
	Level    *string `json:"level" binding:"omitempty,max=50"`
	IsActive *bool   `json:"is_active"`
}

type SetMembershipRequest struct {
	UserID   uint  `json:"user_id" binding:"required"`
	IsActive *bool `json:"is_active"`
}

type MembershipView struct {
	TeamID        uint   `json:"team_id"`
	TeamName      string `json:"team_name"`
	AssociationID uint   `json:"association_id"`
	IsActive      bool   `json:"is_active"`
}

// --- Association handlers ---

// CreateAssociation godoc
// @Summary Create an association
// @Tags Organizations
// @Accept json
// @Produce json
// @Param association body CreateAssociationRequest true "Association data"
// @Success 201 {object} responses.SuccessResponse{data=Association}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /associations [post]
func (oc *OrganizationController) CreateAssociation(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var req CreateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid association data", validator.ParseError(err))
		return
	}

	assoc := &Association{
		RegionID:       reg.ID,
		Name:           req.Name,
		ShortName:      req.ShortName,
		OfficialDomain: req.OfficialDomain,
		WebsiteURL:     req.WebsiteURL,
		Description:    req.Description,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Address:        req.Address,
		LogoURL:        req.LogoURL,
		IsActive:       true,
	}
	if err := oc.repo.CreateAssociation(assoc); err != nil {
		responses.InternalServerError(c, "Failed to create association")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Association created", assoc)
}

// UpdateAssociation godoc
// @Summary Update an association
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path int true "Association ID"
// @Param association body UpdateAssociationRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=Association}
// @Security ApiKeyAuth
// @Router /associations/{id} [patch]
func (oc *OrganizationController) UpdateAssociation(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid association id")
		return
	}

	var req UpdateAssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid association data", validator.ParseError(err))
		return
	}

	assoc, err := oc.repo.GetAssociationByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to load association")
		return
	}
	if assoc == nil || assoc.RegionID != reg.ID {
		responses.NotFound(c, "Association")
		return
	}

	applyAssociationPatch(assoc, &req)
	if err := oc.repo.UpdateAssociation(assoc); err != nil {
		responses.InternalServerError(c, "Failed to update association")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Association updated", assoc)
}

// ListAssociations godoc
// @Summary List associations in the current region
// @Tags Organizations
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Association}
// @Router /associations [get]
func (oc *OrganizationController) ListAssociations(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}
	assocs, err := oc.repo.ListAssociationsByRegion(reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list associations")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", assocs)
}

// --- Team handlers ---

// CreateTeam godoc
// @Summary Create a team
// @Description The team's association must belong to the same region.
// @Tags Organizations
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team data"
// @Success 201 {object} responses.SuccessResponse{data=Team}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /teams [post]
func (oc *OrganizationController) CreateTeam(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid team data", validator.ParseError(err))
		return
	}

	assoc, err := oc.repo.GetActiveAssociation(req.AssociationID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load association")
		return
	}
	if assoc == nil {
		responses.SendValidationError(c, "Association not found in region", nil)
		return
	}

	team := &Team{
		RegionID:      reg.ID,
		AssociationID: assoc.ID,
		Name:          req.Name,
		AgeGroup:      req.AgeGroup,
		Level:         req.Level,
		IsActive:      true,
	}
	if err := oc.repo.CreateTeam(team); err != nil {
		if errors.Is(err, ErrRegionMismatch) {
			responses.SendValidationError(c, err.Error(), nil)
			return
		}
		responses.InternalServerError(c, "Failed to create team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created", team)
}

// UpdateTeam godoc
// @Summary Update a team
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param team body UpdateTeamRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=Team}
// @Security ApiKeyAuth
// @Router /teams/{id} [patch]
func (oc *OrganizationController) UpdateTeam(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid team id")
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid team data", validator.ParseError(err))
		return
	}

	team, err := oc.repo.GetTeamInRegion(id, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	if req.Name != nil {
		team.Name = *req.Name
	}
	if req.AgeGroup != nil {
		team.AgeGroup = *req.AgeGroup
	}
	if req.Level != nil {
		team.Level = *req.Level
	}
	if req.IsActive != nil {
		team.IsActive = *req.IsActive
	}
	if err := oc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated", team)
}

// ListTeams godoc
// @Summary List teams in the current region
// @Tags Organizations
// @Produce json
// @Param association_id query int false "Filter by association"
// @Success 200 {object} responses.SuccessResponse{data=[]Team}
// @Router /teams [get]
func (oc *OrganizationController) ListTeams(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	var teams []Team
	var err error
	if raw := c.Query("association_id"); raw != "" {
		assocID, parseErr := strconv.ParseUint(raw, 10, 64)
		if parseErr != nil {
			responses.BadRequest(c, "Invalid association_id")
			return
		}
		teams, err = oc.repo.ListTeamsByAssociation(uint(assocID))
		if err == nil {
			// Keep the listing scoped to the resolved region even when an
			// association from another region is asked for.
			scoped := teams[:0]
			for _, t := range teams {
				if t.RegionID == reg.ID {
					scoped = append(scoped, t)
				}
			}
			teams = scoped
		}
	} else {
		teams, err = oc.repo.ListTeamsByRegion(reg.ID)
	}
	if err != nil {
		responses.InternalServerError(c, "Failed to list teams")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", teams)
}

// --- Membership handlers ---

// SetTeamCoach godoc
// @Summary Assign or update a coach on a team
// @Description Upserts the coach membership row. Passing is_active=false
// @Description revokes the coach's authorization through this team.
// @Tags Organizations
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param membership body SetMembershipRequest true "Coach membership"
// @Success 200 {object} responses.SuccessResponse{data=TeamCoach}
// @Security ApiKeyAuth
// @Router /teams/{id}/coaches [post]
func (oc *OrganizationController) SetTeamCoach(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	teamID, err := parseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid team id")
		return
	}

	var req SetMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid membership data", validator.ParseError(err))
		return
	}

	team, err := oc.repo.GetTeamInRegion(teamID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load team")
		return
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return
	}

	membership := &TeamCoach{
		UserID:   req.UserID,
		TeamID:   team.ID,
		IsActive: true,
	}
	if req.IsActive != nil {
		membership.IsActive = *req.IsActive
	}
	if err := oc.repo.UpsertMembership(membership); err != nil {
		responses.InternalServerError(c, "Failed to save membership")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Membership saved", membership)
}

// ListMyMemberships godoc
// @Summary List the current coach's active team memberships
// @Tags Organizations
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]MembershipView}
// @Security ApiKeyAuth
// @Router /coaches/me/memberships [get]
func (oc *OrganizationController) ListMyMemberships(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	memberships, err := oc.repo.ListActiveMemberships(u.ID, reg.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to list memberships")
		return
	}

	views := make([]MembershipView, 0, len(memberships))
	for _, m := range memberships {
		v := MembershipView{TeamID: m.TeamID, IsActive: m.IsActive}
		if m.Team != nil {
			v.TeamName = m.Team.Name
			v.AssociationID = m.Team.AssociationID
		}
		views = append(views, v)
	}
	responses.SendSuccess(c, http.StatusOK, "", views)
}

// --- helpers ---

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func applyAssociationPatch(assoc *Association, req *UpdateAssociationRequest) {
	if req.Name != nil {
		assoc.Name = *req.Name
	}
	if req.ShortName != nil {
		assoc.ShortName = *req.ShortName
	}
	if req.OfficialDomain != nil {
		assoc.OfficialDomain = *req.OfficialDomain
	}
	if req.WebsiteURL != nil {
		assoc.WebsiteURL = *req.WebsiteURL
	}
	if req.Description != nil {
		assoc.Description = *req.Description
	}
	if req.ContactEmail != nil {
		assoc.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		assoc.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil {
		assoc.Address = *req.Address
	}
	if req.LogoURL != nil {
		assoc.LogoURL = *req.LogoURL
	}
	if req.IsActive != nil {
		assoc.IsActive = *req.IsActive
	}
}
