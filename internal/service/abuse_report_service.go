package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/internal/validation"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
	"github.com/dancepractice/practice-api/pkg/export"
)

type abuseReportRepository interface {
	Create(ctx context.Context, report *models.AbuseReport) error
	FindByID(ctx context.Context, id string) (*models.AbuseReport, error)
	Update(ctx context.Context, report *models.AbuseReport) error
	ListByStatus(ctx context.Context, status models.AbuseReportStatus) ([]models.AbuseReport, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

var reportExportHeaders = []string{"ID", "Created", "Category", "Status", "Reporter", "Reported User", "Session", "Description", "Admin Notes", "Handled"}

// AbuseReportService runs the moderation workflow.
type AbuseReportService struct {
	repo      abuseReportRepository
	users     userLookup
	sessions  sessionLookup
	csv       csvRenderer
	pdf       pdfRenderer
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewAbuseReportService constructs the service. Nil renderers fall back to the defaults.
func NewAbuseReportService(repo abuseReportRepository, users userLookup, sessions sessionLookup, csv csvRenderer, pdf pdfRenderer, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *AbuseReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &AbuseReportService{
		repo:      repo,
		users:     users,
		sessions:  sessions,
		csv:       csv,
		pdf:       pdf,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit files a new report in the OPEN state.
func (s *AbuseReportService) Submit(ctx context.Context, req dto.AbuseReportRequest) (*dto.AbuseReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid abuse report payload")
	}

	reporter, err := loadUser(ctx, s.users, req.ReporterID, "reporter not found")
	if err != nil {
		return nil, err
	}
	report := &models.AbuseReport{
		ReporterID:  reporter.ID,
		Category:    models.AbuseCategory(req.Category),
		Status:      models.ReportOpen,
		Description: strings.TrimSpace(req.Description),
	}
	if req.ReportedUserID != nil {
		reported, err := loadUser(ctx, s.users, *req.ReportedUserID, "reported user not found")
		if err != nil {
			return nil, err
		}
		report.ReportedUserID = &reported.ID
	}
	if req.SessionID != nil {
		session, err := loadSession(ctx, s.sessions, *req.SessionID)
		if err != nil {
			return nil, err
		}
		report.SessionID = &session.ID
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, writeFailed(err, "failed to submit abuse report")
	}
	s.metrics.RecordEvent(EventAbuseReportSubmitted)
	s.logger.Info("abuse report submitted", zap.String("report_id", report.ID), zap.String("category", req.Category))
	resp := toAbuseReportResponse(*report)
	return &resp, nil
}

// UpdateStatus moves a report through the moderation workflow and stamps handled_at.
func (s *AbuseReportService) UpdateStatus(ctx context.Context, id string, query dto.AbuseReportStatusQuery) (*dto.AbuseReportResponse, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, invalidPayload(err, "invalid abuse report status update")
	}
	next, err := parseReportStatus(query.Status)
	if err != nil {
		return nil, err
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("abuse report not found")
		}
		return nil, appErrors.Internal(err, "failed to load abuse report")
	}
	if !report.Status.CanTransitionTo(next) {
		return nil, invalid(fmt.Sprintf("cannot move abuse report from %s to %s", report.Status, next))
	}

	previous := report.Status
	handledAt := s.now()
	report.Status = next
	if query.AdminNotes != nil {
		report.AdminNotes = query.AdminNotes
	}
	report.HandledAt = &handledAt

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, writeFailed(err, "failed to update abuse report")
	}
	s.metrics.RecordEvent(EventAbuseReportHandled)
	s.logger.Info("abuse report status changed",
		zap.String("report_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(next)))
	resp := toAbuseReportResponse(*report)
	return &resp, nil
}

// ListByStatus returns reports in status, OPEN when empty.
func (s *AbuseReportService) ListByStatus(ctx context.Context, status string) ([]dto.AbuseReportResponse, error) {
	reports, err := s.list(ctx, status)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.AbuseReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, toAbuseReportResponse(report))
	}
	return responses, nil
}

// Export renders the reports in the requested status as CSV (default) or PDF.
func (s *AbuseReportService) Export(ctx context.Context, query dto.AbuseReportExportQuery) (*ExportFile, error) {
	query.Format = strings.ToLower(strings.TrimSpace(query.Format))
	if err := s.validator.Struct(query); err != nil {
		return nil, invalidPayload(err, "invalid export request")
	}
	reports, err := s.list(ctx, query.Status)
	if err != nil {
		return nil, err
	}

	status := models.ReportOpen
	if query.Status != "" {
		status = models.AbuseReportStatus(strings.ToUpper(query.Status))
	}
	dataset := reportDataset(reports)
	stamp := s.now().Format("20060102-150405")
	base := fmt.Sprintf("abuse-reports-%s-%s", strings.ToLower(string(status)), stamp)

	if query.Format == "pdf" {
		body, err := s.pdf.Render(dataset, fmt.Sprintf("Abuse reports (%s)", status))
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render pdf export")
		}
		return &ExportFile{Filename: base + ".pdf", ContentType: "application/pdf", Body: body}, nil
	}

	body, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render csv export")
	}
	return &ExportFile{Filename: base + ".csv", ContentType: "text/csv", Body: body}, nil
}

func (s *AbuseReportService) list(ctx context.Context, raw string) ([]models.AbuseReport, error) {
	status := models.ReportOpen
	if raw != "" {
		parsed, err := parseReportStatus(raw)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	reports, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list abuse reports")
	}
	return reports, nil
}

func parseReportStatus(raw string) (models.AbuseReportStatus, error) {
	status := models.AbuseReportStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", invalid(fmt.Sprintf("unknown abuse report status %q", raw))
	}
	return status, nil
}

func reportDataset(reports []models.AbuseReport) export.Dataset {
	rows := make([]map[string]string, 0, len(reports))
	for _, report := range reports {
		row := map[string]string{
			"ID":            report.ID,
			"Created":       report.CreatedAt.UTC().Format(time.RFC3339),
			"Category":      string(report.Category),
			"Status":        string(report.Status),
			"Reporter":      report.ReporterID,
			"Reported User": derefOr(report.ReportedUserID, ""),
			"Session":       derefOr(report.SessionID, ""),
			"Description":   report.Description,
			"Admin Notes":   derefOr(report.AdminNotes, ""),
		}
		if report.HandledAt != nil {
			row["Handled"] = report.HandledAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: reportExportHeaders, Rows: rows}
}
