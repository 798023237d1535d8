package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/service"
	"github.com/dancepractice/practice-api/pkg/response"
)

type abuseReportService interface {
	Submit(ctx context.Context, req dto.AbuseReportRequest) (*dto.AbuseReportResponse, error)
	UpdateStatus(ctx context.Context, id string, query dto.AbuseReportStatusQuery) (*dto.AbuseReportResponse, error)
	ListByStatus(ctx context.Context, status string) ([]dto.AbuseReportResponse, error)
	Export(ctx context.Context, query dto.AbuseReportExportQuery) (*service.ExportFile, error)
}

// AbuseReportHandler exposes the moderation endpoints.
type AbuseReportHandler struct {
	service abuseReportService
}

// NewAbuseReportHandler constructs the handler.
func NewAbuseReportHandler(svc abuseReportService) *AbuseReportHandler {
	return &AbuseReportHandler{service: svc}
}

// Submit godoc
// @Summary Submit abuse report
// @Tags Abuse Reports
// @Accept json
// @Produce json
// @Param payload body dto.AbuseReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Router /abuse-reports [post]
func (h *AbuseReportHandler) Submit(c *gin.Context) {
	var req dto.AbuseReportRequest
	if !bindJSON(c, &req) {
		return
	}
	report, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// List godoc
// @Summary List abuse reports by status
// @Tags Abuse Reports
// @Produce json
// @Param status query string false "Status, defaults to OPEN"
// @Success 200 {object} response.Envelope
// @Router /abuse-reports [get]
func (h *AbuseReportHandler) List(c *gin.Context) {
	reports, err := h.service.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// UpdateStatus godoc
// @Summary Move an abuse report through moderation
// @Tags Abuse Reports
// @Produce json
// @Param id path string true "Report ID"
// @Param status query string true "Next status"
// @Param adminNotes query string false "Moderator notes"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /abuse-reports/{id}/status [patch]
func (h *AbuseReportHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var query dto.AbuseReportStatusQuery
	if !bindQuery(c, &query) {
		return
	}
	report, err := h.service.UpdateStatus(c.Request.Context(), id, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Export godoc
// @Summary Export abuse reports
// @Tags Abuse Reports
// @Produce text/csv
// @Produce application/pdf
// @Param status query string false "Status, defaults to OPEN"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /abuse-reports/export [get]
func (h *AbuseReportHandler) Export(c *gin.Context) {
	var query dto.AbuseReportExportQuery
	if !bindQuery(c, &query) {
		return
	}
	file, err := h.service.Export(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
