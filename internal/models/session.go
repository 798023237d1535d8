package models

import (
	"time"

	"github.com/lib/pq"
)

// Session is a scheduled practice slot organised by a user.
type Session struct {
	Auditable
	Title          string         `db:"title" json:"title"`
	SessionType    SessionType    `db:"session_type" json:"session_type"`
	Status         SessionStatus  `db:"status" json:"status"`
	ScheduledStart time.Time      `db:"scheduled_start" json:"scheduled_start"`
	ScheduledEnd   time.Time      `db:"scheduled_end" json:"scheduled_end"`
	Capacity       *int           `db:"capacity" json:"capacity,omitempty"`
	Visibility     Visibility     `db:"visibility" json:"visibility"`
	OrganizerID    string         `db:"organizer_id" json:"organizer_id"`
	LocationID     *string        `db:"location_id" json:"location_id,omitempty"`
	FocusAreas     pq.StringArray `db:"focus_areas" json:"focus_areas"`
}

// SessionParticipant links a participant to a session for batched lookups.
type SessionParticipant struct {
	SessionID string `db:"session_id" json:"session_id"`
	UserID    string `db:"user_id" json:"user_id"`
}

// SessionNote is a practice note authored against a session.
type SessionNote struct {
	Auditable
	SessionID  string         `db:"session_id" json:"session_id"`
	AuthorID   string         `db:"author_id" json:"author_id"`
	Content    string         `db:"content" json:"content"`
	Visibility Visibility     `db:"visibility" json:"visibility"`
	Tags       pq.StringArray `db:"tags" json:"tags"`
	MediaURLs  pq.StringArray `db:"media_urls" json:"media_urls"`
}
