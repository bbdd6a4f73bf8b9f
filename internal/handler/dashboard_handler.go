package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bank-sampah-api/internal/service"
	"github.com/noah-isme/bank-sampah-api/pkg/response"
)

// DashboardHandler exposes the admin overview.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs a new DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats godoc
// @Summary Admin dashboard aggregates
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, cached, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil, map[string]interface{}{"cached": cached})
}
