package models

import (
	"time"

	"github.com/lib/pq"
)

// User is a dancer profile.
type User struct {
	Auditable
	FirstName            string         `db:"first_name" json:"first_name"`
	LastName             string         `db:"last_name" json:"last_name"`
	DisplayName          *string        `db:"display_name" json:"display_name,omitempty"`
	Email                string         `db:"email" json:"email"`
	Bio                  *string        `db:"bio" json:"bio,omitempty"`
	DanceGoals           *string        `db:"dance_goals" json:"dance_goals,omitempty"`
	BirthDate            *time.Time     `db:"birth_date" json:"birth_date,omitempty"`
	ProfileVisible       bool           `db:"profile_visible" json:"profile_visible"`
	PrimaryRole          PrimaryRole    `db:"primary_role" json:"primary_role"`
	CompetitivenessLevel int            `db:"competitiveness_level" json:"competitiveness_level"`
	WsdcLevel            WsdcSkillLevel `db:"wsdc_level" json:"wsdc_level"`
	AccountStatus        AccountStatus  `db:"account_status" json:"account_status"`
	AuthUserID           *string        `db:"auth_user_id" json:"auth_user_id,omitempty"`
	HomeLocationID       *string        `db:"home_location_id" json:"home_location_id,omitempty"`
	Roles                pq.StringArray `db:"roles" json:"roles"`
	NotificationChannels pq.StringArray `db:"notification_channels" json:"notification_channels"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Role          *UserRole
	AccountStatus *AccountStatus
	Search        string
	Page          int
	PageSize      int
	SortBy        string
	SortOrder     string
}
