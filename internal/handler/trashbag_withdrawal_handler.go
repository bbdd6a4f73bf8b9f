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

// TrashbagWithdrawalHandler wires the redemption workflow to HTTP routes.
type TrashbagWithdrawalHandler struct {
	withdrawals *service.TrashbagWithdrawalService
}

// NewTrashbagWithdrawalHandler constructs a new TrashbagWithdrawalHandler.
func NewTrashbagWithdrawalHandler(withdrawals *service.TrashbagWithdrawalService) *TrashbagWithdrawalHandler {
	return &TrashbagWithdrawalHandler{withdrawals: withdrawals}
}

// List godoc
// @Summary List trashbag withdrawal requests
// @Tags TrashbagWithdrawals
// @Produce json
// @Param student_id query string false "Filter by student"
// @Param status query string false "Filter by status (pending/approved/rejected)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /trashbag-withdrawals [get]
func (h *TrashbagWithdrawalHandler) List(c *gin.Context) {
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

// Create godoc
// @Summary Request a trashbag redemption
// @Tags TrashbagWithdrawals
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.CreateTrashbagWithdrawalRequest true "Withdrawal payload"
// @Success 201 {object} response.Envelope
// @Router /students/{id}/trashbag-withdrawals [post]
func (h *TrashbagWithdrawalHandler) Create(c *gin.Context) {
	var req service.CreateTrashbagWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid withdrawal payload"))
		return
	}
	// The route parameter is authoritative; the body may not redirect the
	// request at another student.
	req.StudentID = c.Param("id")

	withdrawal, err := h.withdrawals.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, withdrawal)
}

// ListByStudent godoc
// @Summary List a student's redemption history
// @Tags TrashbagWithdrawals
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/trashbag-withdrawals [get]
func (h *TrashbagWithdrawalHandler) ListByStudent(c *gin.Context) {
	withdrawals, err := h.withdrawals.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, withdrawals, nil)
}

// Transition godoc
// @Summary Approve or reject a withdrawal request
// @Tags TrashbagWithdrawals
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Param payload body service.TransitionRequest true "Target status"
// @Success 200 {object} response.Envelope
// @Router /trashbag-withdrawals/{id}/status [patch]
func (h *TrashbagWithdrawalHandler) Transition(c *gin.Context) {
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

// Update godoc
// @Summary Correct a withdrawal request
// @Tags TrashbagWithdrawals
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Param payload body service.UpdateTrashbagWithdrawalRequest true "Withdrawal payload"
// @Success 200 {object} response.Envelope
// @Router /trashbag-withdrawals/{id} [put]
func (h *TrashbagWithdrawalHandler) Update(c *gin.Context) {
	var req service.UpdateTrashbagWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid withdrawal payload"))
		return
	}
	withdrawal, err := h.withdrawals.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, withdrawal, nil)
}

// Delete godoc
// @Summary Delete a withdrawal request
// @Tags TrashbagWithdrawals
// @Param id path string true "Withdrawal ID"
// @Success 204
// @Router /trashbag-withdrawals/{id} [delete]
func (h *TrashbagWithdrawalHandler) Delete(c *gin.Context) {
	if err := h.withdrawals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
