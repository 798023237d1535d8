package dto

import "time"

// AvailabilityWindowRequest is one weekly slot; times are HH:MM or HH:MM:SS.
type AvailabilityWindowRequest struct {
	DayOfWeek string `json:"dayOfWeek" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime string `json:"startTime" validate:"required,hhmm"`
	EndTime   string `json:"endTime" validate:"required,hhmm"`
}

// SchedulePreferenceRequest is the create and update payload for a preference.
type SchedulePreferenceRequest struct {
	LocationNote         *string                     `json:"locationNote" validate:"omitempty,max=255"`
	MaxTravelDistanceKm  *int                        `json:"maxTravelDistanceKm" validate:"omitempty,min=0,max=500"`
	PreferredRoles       []string                    `json:"preferredRoles" validate:"omitempty,dive,oneof=LEAD FOLLOW"`
	PreferredLevels      []string                    `json:"preferredLevels" validate:"omitempty,dive,oneof=NEWCOMER NOVICE INTERMEDIATE ADVANCED ALL_STAR CHAMPION"`
	PreferredFocusAreas  []string                    `json:"preferredFocusAreas" validate:"omitempty,dive,oneof=CONNECTION TECHNIQUE MUSICALITY COMPETITION_PREP STYLING SOCIAL_DANCING CHOREOGRAPHY MINDSET CONDITIONING"`
	PreferredLocationIDs []string                    `json:"preferredLocationIds" validate:"omitempty,dive,uuid"`
	AvailabilityWindows  []AvailabilityWindowRequest `json:"availabilityWindows" validate:"dive"`
	Notes                *string                     `json:"notes" validate:"omitempty,max=1000"`
}

type AvailabilityWindowResponse struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type SchedulePreferenceResponse struct {
	ID                  string                       `json:"id"`
	UserID              string                       `json:"userId"`
	LocationNote        *string                      `json:"locationNote,omitempty"`
	MaxTravelDistanceKm *int                         `json:"maxTravelDistanceKm,omitempty"`
	PreferredLocations  []LocationSummary            `json:"preferredLocations"`
	AvailabilityWindows []AvailabilityWindowResponse `json:"availabilityWindows"`
	PreferredRoles      []string                     `json:"preferredRoles"`
	PreferredLevels     []string                     `json:"preferredLevels"`
	PreferredFocusAreas []string                     `json:"preferredFocusAreas"`
	Notes               *string                      `json:"notes,omitempty"`
	Version             int64                        `json:"version"`
	CreatedAt           time.Time                    `json:"createdAt"`
	UpdatedAt           time.Time                    `json:"updatedAt"`
}
