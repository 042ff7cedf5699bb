package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/tilesgalleria/backoffice/internal/application/report"
)

// DashboardHandler serves the dashboard summary
type DashboardHandler struct {
	BaseHandler
	dashboard *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboard *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary godoc
// @ID           getDashboardSummary
// @Summary      Dashboard summary
// @Description  Counts of every record kind and the newest entries of each. Auto and manual quotations are merged.
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse[report.Summary]
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
