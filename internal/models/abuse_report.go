package models

import "time"

// AbuseReport is a moderation ticket raised by a user.
type AbuseReport struct {
	Auditable
	ReporterID     string            `db:"reporter_id" json:"reporter_id"`
	ReportedUserID *string           `db:"reported_user_id" json:"reported_user_id,omitempty"`
	SessionID      *string           `db:"session_id" json:"session_id,omitempty"`
	Category       AbuseCategory     `db:"category" json:"category"`
	Status         AbuseReportStatus `db:"status" json:"status"`
	Description    string            `db:"description" json:"description"`
	AdminNotes     *string           `db:"admin_notes" json:"admin_notes,omitempty"`
	HandledAt      *time.Time        `db:"handled_at" json:"handled_at,omitempty"`
}
