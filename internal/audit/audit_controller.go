package audit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/internal/middleware"
	"github.com/DhavalSuthar-24/transferportal/pkg/responses"
)

// AuditController exposes the read side of the audit log
type AuditController struct {
	recorder Recorder
}

func NewAuditController(recorder Recorder) *AuditController {
	return &AuditController{recorder: recorder}
}

// ListAuditLog godoc
// @Summary List recent audit entries in the current region
// @Tags Audit
// @Produce json
// @Param limit query int false "Max entries (default 100, cap 500)"
// @Success 200 {object} responses.SuccessResponse{data=[]AuditLog}
// @Security ApiKeyAuth
// @Router /admin/audit-log [get]
func (ac *AuditController) ListAuditLog(c *gin.Context) {
	reg := middleware.RequireRegion(c)
	if reg == nil {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			responses.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := ac.recorder.ListByRegion(reg.ID, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list audit log")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", entries)
}
