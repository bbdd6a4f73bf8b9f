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

// WithdrawalHandler wires the legacy Rupiah savings workflow to HTTP routes.
type WithdrawalHandler struct {
	withdrawals *service.WithdrawalService
}

// NewWithdrawalHandler constructs a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawals *service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

// List godoc
// @Summary List savings withdrawal requests
// @Tags Withdrawals
// @Produce json
// @Param student_id query string false "Filter by student"
// @Param status query string false "Filter by status (pending/approved/rejected)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /withdrawals [get]
func (h *WithdrawalHandler) List(c *gin.Context) {
	filter := models.WithdrawalFilter{
		StudentID: c.Query("student_id"),
		Status:    models.WithdrawalStatus(c.Query("status")),
		SortOrder: c.Query("order"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	withdrawals, pagination, err := h.withdrawals.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, withdrawals, pagination)
}

// Balance godoc
// @Summary Get a student's savings balance
// @Tags Withdrawals
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/savings [get]
func (h *WithdrawalHandler) Balance(c *gin.Context) {
	balance, err := h.withdrawals.Balance(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"student_id": c.Param("id"), "balance": balance}, nil)
}

// Create godoc
// @Summary Request a savings withdrawal
// @Tags Withdrawals
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.CreateWithdrawalRequest true "Withdrawal payload"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/withdrawals [post]
func (h *WithdrawalHandler) Create(c *gin.Context) {
	var req service.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid withdrawal payload"))
		return
	}
	req.StudentID = c.Param("id")

	withdrawal, err := h.withdrawals.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, withdrawal)
}

// Transition godoc
// @Summary Approve or reject a savings withdrawal
// @Tags Withdrawals
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Param payload body service.TransitionRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /withdrawals/{id}/status [patch]
func (h *WithdrawalHandler) Transition(c *gin.Context) {
	var req service.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid transition payload"))
		return
	}
	withdrawal, err := h.withdrawals.Transition(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, withdrawal, nil)
}

// Delete godoc
// @Summary Delete a savings withdrawal request
// @Tags Withdrawals
// @Param id path string true "Withdrawal ID"
// @Success 204
// @Router /withdrawals/{id} [delete]
func (h *WithdrawalHandler) Delete(c *gin.Context) {
	if err := h.withdrawals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
