package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
)

// ProfileController handles player profile HTTP requests
type ProfileController struct {
	repo ProfileRepository
}

func NewProfileController(repo ProfileRepository) *ProfileController {
	return &ProfileController{repo: repo}
}

type UpdateProfileRequest struct {
	DisplayName          *string   `json:"display_name" binding:"omitempty,max=100"`
	BirthYear            *int      `json:"birth_year" binding:"omitempty,gte=1950,lte=2100"`
	Positions            *[]string `json:"positions"`
	Bats                 *string   `json:"bats" binding:"omitempty,oneof=R L S"`
	Throws               *string   `json:"throws" binding:"omitempty,oneof=R L"`
	ProfileVisibility    *string   `json:"profile_visibility" binding:"omitempty,oneof=all none specific"`
	CurrentAssociationID *uint     `json:"current_association_id"`
	PBRUrl               *string   `json:"pbr_url" binding:"omitempty,url"`
	PGUrl                *string   `json:"pg_url" binding:"omitempty,url"`
	YoutubeURL           *string   `json:"youtube_url" binding:"omitempty,url"`
	InstagramHandle      *string   `json:"instagram_handle" binding:"omitempty,max=80"`
	TwitterHandle        *string   `json:"twitter_handle" binding:"omitempty,max=80"`
	Bio                  *string   `json:"bio" binding:"omitempty,max=2000"`
}

// GetMyProfile godoc
// @Summary Get own player profile
// @Tags Profiles
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=PlayerProfile}
// @Security ApiKeyAuth
// @Router /players/me/profile [get]
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	record, err := pc.repo.GetOrCreate(u.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", record)
}

// UpdateMyProfile godoc
// @Summary Update own player profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} responses.SuccessResponse{data=PlayerProfile}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /players/me/profile [patch]
func (pc *ProfileController) UpdateMyProfile(c *gin.Context) {
	u, err := middleware.GetCurrentUser(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	record, err := pc.repo.GetOrCreate(u.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to load profile")
		return
	}

	applyProfilePatch(record, &req)

	if err := pc.repo.Save(record); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Profile updated", record)
}

func applyProfilePatch(record *PlayerProfile, req *UpdateProfileRequest) {
	if req.DisplayName != nil {
		record.DisplayName = *req.DisplayName
	}
	if req.BirthYear != nil {
		record.BirthYear = req.BirthYear
	}
	if req.Positions != nil {
		record.Positions = *req.Positions
	}
	if req.Bats != nil {
		record.Bats = *req.Bats
	}
	if req.Throws != nil {
		record.Throws = *req.Throws
	}
	if req.ProfileVisibility != nil {
		record.ProfileVisibility = *req.ProfileVisibility
	}
	if req.CurrentAssociationID != nil {
		record.CurrentAssociationID = req.CurrentAssociationID
	}
	if req.PBRUrl != nil {
		record.PBRUrl = *req.PBRUrl
	}
	if req.PGUrl != nil {
		record.PGUrl = *req.PGUrl
	}
	if req.YoutubeURL != nil {
		record.YoutubeURL = *req.YoutubeURL
	}
	if req.InstagramHandle != nil {
		record.InstagramHandle = *req.InstagramHandle
	}
	if req.TwitterHandle != nil {
		record.TwitterHandle = *req.TwitterHandle
	}
	if req.Bio != nil {
		record.Bio = *req.Bio
	}
}
