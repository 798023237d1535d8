package models

import "github.com/lib/pq"

// SchedulePreference stores when, where and with whom a user likes to practise.
type SchedulePreference struct {
	Auditable
	UserID              string         `db:"user_id" json:"user_id"`
	LocationNote        *string        `db:"location_note" json:"location_note,omitempty"`
	MaxTravelDistanceKm *int           `db:"max_travel_distance_km" json:"max_travel_distance_km,omitempty"`
	Notes               *string        `db:"notes" json:"notes,omitempty"`
	PreferredRoles      pq.StringArray `db:"preferred_roles" json:"preferred_roles"`
	PreferredLevels     pq.StringArray `db:"preferred_levels" json:"preferred_levels"`
	PreferredFocusAreas pq.StringArray `db:"preferred_focus_areas" json:"preferred_focus_areas"`
}

// AvailabilityWindow is a weekly time range. Times are HH:MM.
type AvailabilityWindow struct {
	PreferenceID string    `db:"preference_id" json:"-"`
	DayOfWeek    DayOfWeek `db:"day_of_week" json:"day_of_week"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
}

// PreferenceLocation links a preference to one of its preferred locations.
type PreferenceLocation struct {
	PreferenceID string `db:"preference_id"`
	LocationID   string `db:"location_id"`
}
