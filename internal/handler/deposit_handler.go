package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	"github.com/noah-isme/bank-sampah-api/internal/service"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
	"github.com/noah-isme/bank-sampah-api/pkg/response"
)

// DepositHandler wires the deposit log to HTTP routes.
type DepositHandler struct {
	deposits  *service.DepositService
	dashboard *service.DashboardService
}

// NewDepositHandler constructs a new DepositHandler.
func NewDepositHandler(deposits *service.DepositService, dashboard *service.DashboardService) *DepositHandler {
	return &DepositHandler{deposits: deposits, dashboard: dashboard}
}

// List godoc
// @Summary List deposits
// @Tags Deposits
// @Produce json
// @Param student_id query string false "Filter by student"
// @Param waste_type_id query string false "Filter by waste type"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param order query string false "Sort order (asc/desc)"
// @Success 200 {object} response.Envelope
// @Router /deposits [get]
func (h *DepositHandler) List(c *gin.Context) {
	filter := models.DepositFilter{
		StudentID:   c.Query("student_id"),
		WasteTypeID: c.Query("waste_type_id"),
		SortOrder:   c.Query("order"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	deposits, pagination, err := h.deposits.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, deposits, pagination)
}

// Create godoc
// @Summary Record a deposit
// @Tags Deposits
// @Accept json
// @Produce json
// @Param payload body service.CreateDepositRequest true "Deposit payload"
// @Success 201 {object} response.Envelope
// @Router /deposits [post]
func (h *DepositHandler) Create(c *gin.Context) {
	var req service.CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid deposit payload"))
		return
	}
	deposit, err := h.deposits.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.Created(c, deposit)
}

// Delete godoc
// @Summary Delete a deposit
// @Tags Deposits
// @Param id path string true "Deposit ID"
// @Success 204
// @Router /deposits/{id} [delete]
func (h *DepositHandler) Delete(c *gin.Context) {
	if err := h.deposits.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	h.dashboard.Invalidate(c.Request.Context())
	response.NoContent(c)
}
