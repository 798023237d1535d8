package dto

import "time"

// AbuseReportRequest submits a moderation report.
type AbuseReportRequest struct {
	ReporterID     string  `json:"reporterId" validate:"required,uuid"`
	ReportedUserID *string `json:"reportedUserId" validate:"omitempty,uuid"`
	SessionID      *string `json:"sessionId" validate:"omitempty,uuid"`
	Category       string  `json:"category" validate:"required,oneof=HARASSMENT SAFETY SPAM PAYMENT OTHER"`
	Description    string  `json:"description" validate:"required,notblank,max=2000"`
}

// AbuseReportStatusQuery carries the moderation update from query parameters.
type AbuseReportStatusQuery struct {
	Status     string  `form:"status" validate:"required"`
	AdminNotes *string `form:"adminNotes" validate:"omitempty,max=2000"`
}

// AbuseReportExportQuery selects the reports and format for an export.
type AbuseReportExportQuery struct {
	Status string `form:"status"`
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}

type AbuseReportResponse struct {
	ID             string     `json:"id"`
	Category       string     `json:"category"`
	Status         string     `json:"status"`
	Description    string     `json:"description"`
	ReporterID     string     `json:"reporterId"`
	ReportedUserID *string    `json:"reportedUserId,omitempty"`
	SessionID      *string    `json:"sessionId,omitempty"`
	AdminNotes     *string    `json:"adminNotes,omitempty"`
	HandledAt      *time.Time `json:"handledAt,omitempty"`
	Version        int64      `json:"version"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
