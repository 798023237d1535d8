package dto

import "time"

// UserRequest is the create and update payload for a dancer profile.
type UserRequest struct {
	FirstName            string   `json:"firstName" validate:"required,notblank,max=120"`
	LastName             string   `json:"lastName" validate:"required,notblank,max=120"`
	DisplayName          *string  `json:"displayName" validate:"omitempty,max=160"`
	Email                string   `json:"email" validate:"required,notblank,email,max=255"`
	Bio                  *string  `json:"bio" validate:"omitempty,max=1000"`
	DanceGoals           *string  `json:"danceGoals" validate:"omitempty,max=500"`
	BirthDate            *string  `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	ProfileVisible       *bool    `json:"profileVisible"`
	PrimaryRole          string   `json:"primaryRole" validate:"omitempty,oneof=LEAD FOLLOW"`
	WsdcSkillLevel       string   `json:"wsdcSkillLevel" validate:"omitempty,oneof=NEWCOMER NOVICE INTERMEDIATE ADVANCED ALL_STAR CHAMPION"`
	AccountStatus        string   `json:"accountStatus" validate:"omitempty,oneof=ACTIVE SUSPENDED HIDDEN"`
	CompetitivenessLevel *int     `json:"competitivenessLevel" validate:"omitempty,min=1,max=5"`
	Roles                []string `json:"roles" validate:"omitempty,dive,oneof=DANCER INSTRUCTOR ADMIN ORGANIZER"`
	AuthUserID           *string  `json:"authUserId" validate:"omitempty,max=255"`
	HomeLocationID       *string  `json:"homeLocationId" validate:"omitempty,uuid"`
	NotificationChannels []string `json:"notificationChannels" validate:"omitempty,dive,required,max=64"`
}

// UserStatusRequest changes only the account status.
type UserStatusRequest struct {
	AccountStatus string `json:"accountStatus" validate:"required,oneof=ACTIVE SUSPENDED HIDDEN"`
}

// UserListQuery holds the query parameters of the user listing.
type UserListQuery struct {
	Search        string `form:"search"`
	Role          string `form:"role" validate:"omitempty,oneof=DANCER INSTRUCTOR ADMIN ORGANIZER"`
	AccountStatus string `form:"accountStatus" validate:"omitempty,oneof=ACTIVE SUSPENDED HIDDEN"`
	Page          int    `form:"page" validate:"omitempty,min=1"`
	Limit         int    `form:"limit" validate:"omitempty,min=1,max=100"`
	SortBy        string `form:"sortBy"`
	SortOrder     string `form:"sortOrder" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// UserResponse is the full profile returned by the users endpoints.
type UserResponse struct {
	ID                    string           `json:"id"`
	FirstName             string           `json:"firstName"`
	LastName              string           `json:"lastName"`
	DisplayName           *string          `json:"displayName,omitempty"`
	Email                 string           `json:"email"`
	Bio                   *string          `json:"bio,omitempty"`
	DanceGoals            *string          `json:"danceGoals,omitempty"`
	BirthDate             *string          `json:"birthDate,omitempty"`
	ProfileVisible        bool             `json:"profileVisible"`
	PrimaryRole           string           `json:"primaryRole"`
	WsdcSkillLevel        string           `json:"wsdcSkillLevel"`
	CompetitivenessLevel  int              `json:"competitivenessLevel"`
	AccountStatus         string           `json:"accountStatus"`
	Roles                 []string         `json:"roles"`
	AuthUserID            *string          `json:"authUserId,omitempty"`
	HomeLocation          *LocationSummary `json:"homeLocation,omitempty"`
	NotificationChannels  []string         `json:"notificationChannels"`
	SchedulePreferenceIDs []string         `json:"schedulePreferenceIds"`
	Version               int64            `json:"version"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}
