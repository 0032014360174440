package region

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
	"github.com/DhavalSuthar-24/transferportal/pkg/validator"
)

// RegionController handles region HTTP requests
type RegionController struct {
	repo RegionRepository
}

func NewRegionController(repo RegionRepository) *RegionController {
	return &RegionController{repo: repo}
}

type CreateRegionRequest struct {
	Code string `json:"code" binding:"required,alphanum,min=2,max=10"`
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type UpdateRegionRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	IsActive *bool   `json:"is_active"`
}

// ListRegions godoc
// @Summary List active regions
// @Tags Regions
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Region}
// @Router /regions [get]
func (rc *RegionController) ListRegions(c *gin.Context) {
	regions, err := rc.repo.ListActive()
	if err != nil {
		responses.InternalServerError(c, "Failed to list regions")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", regions)
}

// CreateRegion godoc
// @Summary Create a region
// @Tags Regions
// @Accept json
// @Produce json
// @Param region body CreateRegionRequest true "Region data"
// @Success 201 {object} responses.SuccessResponse{data=Region}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /regions [post]
func (rc *RegionController) CreateRegion(c *gin.Context) {
	var req CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid region data", validator.ParseError(err))
		return
	}

	reg := &Region{Code: req.Code, Name: req.Name, IsActive: true}
	if err := rc.repo.Create(reg); err != nil {
		responses.InternalServerError(c, "Failed to create region")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Region created", reg)
}

// UpdateRegion godoc
// @Summary Update a region
// @Tags Regions
// @Accept json
// @Produce json
// @Param id path int true "Region ID"
// @Param region body UpdateRegionRequest true "Fields to change"
// @Success 200 {object} responses.SuccessResponse{data=Region}
// @Security ApiKeyAuth
// @Router /regions/{id} [patch]
func (rc *RegionController) UpdateRegion(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		responses.BadRequest(c, "Invalid region id")
		return
	}

	var req UpdateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, "Invalid region data", validator.ParseError(err))
		return
	}

	reg, err := rc.repo.GetByID(id)
	if err != nil {
		responses.InternalServerError(c, "Failed to load region")
		return
	}
	if reg == nil {
		responses.NotFound(c, "Region")
		return
	}

	if req.Name != nil {
		reg.Name = *req.Name
	}
	if req.IsActive != nil {
		reg.IsActive = *req.IsActive
	}
	if err := rc.repo.Update(reg); err != nil {
		responses.InternalServerError(c, "Failed to update region")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Region updated", reg)
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
