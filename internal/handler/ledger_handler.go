package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bank-sampah-api/internal/service"
	"github.com/noah-isme/bank-sampah-api/pkg/response"
)

// LedgerHandler exposes the derived reward ledger.
type LedgerHandler struct {
	ledger   *service.LedgerService
	deposits *service.DepositService
}

// NewLedgerHandler constructs a new LedgerHandler.
func NewLedgerHandler(ledger *service.LedgerService, deposits *service.DepositService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, deposits: deposits}
}

// Summary godoc
// @Summary Get a student's reward ledger
// @Tags Ledger
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/ledger [get]
func (h *LedgerHandler) Summary(c *gin.Context) {
	summary, err := h.ledger.StudentSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Deposits godoc
// @Summary List a student's deposit history
// @Tags Ledger
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/deposits [get]
func (h *LedgerHandler) Deposits(c *gin.Context) {
	deposits, err := h.deposits.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, deposits, nil)
}
