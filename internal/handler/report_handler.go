package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	"github.com/noah-isme/bank-sampah-api/internal/service"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
	"github.com/noah-isme/bank-sampah-api/pkg/response"
)

// ReportHandler streams rendered exports of the deposit log. When the
// archive is configured, each export is also stored and the response
// carries a signed re-download token.
type ReportHandler struct {
	reports *service.ReportService
	archive *service.ExportArchiveService
}

// NewReportHandler constructs a new ReportHandler.
func NewReportHandler(reports *service.ReportService, archive *service.ExportArchiveService) *ReportHandler {
	return &ReportHandler{reports: reports, archive: archive}
}

// Deposits godoc
// @Summary Export the deposit log
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv/pdf, default csv)"
// @Param student_id query string false "Filter by student"
// @Param waste_type_id query string false "Filter by waste type"
// @Success 200 {file} file
// @Router /reports/deposits [get]
func (h *ReportHandler) Deposits(c *gin.Context) {
	format := service.ReportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	filter := models.DepositFilter{
		StudentID:   c.Query("student_id"),
		WasteTypeID: c.Query("waste_type_id"),
	}

	file, err := h.reports.Deposits(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.archive != nil {
		token, err := h.archive.Archive(file)
		if err != nil {
			// The export itself succeeded, keep streaming it.
			_ = c.Error(err)
		} else {
			c.Header("X-Download-Token", token)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Download godoc
// @Summary Re-download an archived export
// @Tags Reports
// @Param token query string true "Signed download token"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /reports/downloads [get]
func (h *ReportHandler) Download(c *gin.Context) {
	if h.archive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export archive is not configured"))
		return
	}

	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	file, filename, err := h.archive.Open(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read archived export"))
		return
	}

	contentType := "text/csv"
	if strings.HasSuffix(filename, ".pdf") {
		contentType = "application/pdf"
	}

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, extraHeaders)
}
