package dto

import "time"

// SessionRequest is the create and update payload for a practice session.
type SessionRequest struct {
	Title          string     `json:"title" validate:"required,notblank,max=255"`
	SessionType    string     `json:"sessionType" validate:"required,oneof=PARTNER_PRACTICE GROUP_PRACTICE PRIVATE_WITH_INSTRUCTOR CLASS"`
	Status         string     `json:"status" validate:"omitempty,oneof=PROPOSED SCHEDULED COMPLETED CANCELLED"`
	ScheduledStart *time.Time `json:"scheduledStart" validate:"required"`
	ScheduledEnd   *time.Time `json:"scheduledEnd" validate:"required"`
	Capacity       *int       `json:"capacity" validate:"omitempty,min=1"`
	Visibility     string     `json:"visibility" validate:"omitempty,oneof=AUTHOR_ONLY PARTICIPANTS_ONLY PUBLIC"`
	OrganizerID    string     `json:"organizerId" validate:"required,uuid"`
	LocationID     *string    `json:"locationId" validate:"omitempty,uuid"`
	FocusAreas     []string   `json:"focusAreas" validate:"omitempty,dive,oneof=CONNECTION TECHNIQUE MUSICALITY COMPETITION_PREP STYLING SOCIAL_DANCING CHOREOGRAPHY MINDSET CONDITIONING"`
	ParticipantIDs []string   `json:"participantIds" validate:"omitempty,dive,uuid"`
}

// JoinSessionRequest adds one participant to a session.
type JoinSessionRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// SessionListQuery selects sessions by organizer or by start window.
type SessionListQuery struct {
	OrganizerID string `form:"organizerId" validate:"omitempty,uuid"`
	From        string `form:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To          string `form:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type SessionResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	SessionType    string           `json:"sessionType"`
	Status         string           `json:"status"`
	ScheduledStart time.Time        `json:"scheduledStart"`
	ScheduledEnd   time.Time        `json:"scheduledEnd"`
	Capacity       *int             `json:"capacity,omitempty"`
	Visibility     string           `json:"visibility"`
	Organizer      *UserSummary     `json:"organizer,omitempty"`
	Location       *LocationSummary `json:"location,omitempty"`
	FocusAreas     []string         `json:"focusAreas"`
	Participants   []UserSummary    `json:"participants"`
	Version        int64            `json:"version"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
