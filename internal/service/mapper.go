package service

import (
	"strings"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
)

const dateLayout = "2006-01-02"

func toUserSummary(user models.User) dto.UserSummary {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if user.DisplayName != nil && strings.TrimSpace(*user.DisplayName) != "" {
		name = *user.DisplayName
	}
	return dto.UserSummary{
		ID:             user.ID,
		DisplayName:    name,
		PrimaryRole:    string(user.PrimaryRole),
		WsdcSkillLevel: string(user.WsdcLevel),
	}
}

func toLocationSummary(location models.Location) dto.LocationSummary {
	return dto.LocationSummary{
		ID:           location.ID,
		Name:         location.Name,
		City:         location.City,
		State:        location.State,
		Country:      location.Country,
		LocationType: string(location.LocationType),
	}
}

func toUserResponse(user models.User, home *models.Location, preferenceIDs []string) dto.UserResponse {
	resp := dto.UserResponse{
		ID:                    user.ID,
		FirstName:             user.FirstName,
		LastName:              user.LastName,
		DisplayName:           user.DisplayName,
		Email:                 user.Email,
		Bio:                   user.Bio,
		DanceGoals:            user.DanceGoals,
		ProfileVisible:        user.ProfileVisible,
		PrimaryRole:           string(user.PrimaryRole),
		WsdcSkillLevel:        string(user.WsdcLevel),
		CompetitivenessLevel:  user.CompetitivenessLevel,
		AccountStatus:         string(user.AccountStatus),
		Roles:                 copyStrings(user.Roles),
		AuthUserID:            user.AuthUserID,
		NotificationChannels:  copyStrings(user.NotificationChannels),
		SchedulePreferenceIDs: copyStrings(preferenceIDs),
		Version:               user.Version,
		CreatedAt:             user.CreatedAt,
		UpdatedAt:             user.UpdatedAt,
	}
	if user.BirthDate != nil {
		formatted := user.BirthDate.Format(dateLayout)
		resp.BirthDate = &formatted
	}
	if home != nil {
		summary := toLocationSummary(*home)
		resp.HomeLocation = &summary
	}
	return resp
}

func toLocationResponse(location models.Location) dto.LocationResponse {
	return dto.LocationResponse{
		ID:           location.ID,
		Name:         location.Name,
		Description:  location.Description,
		AddressLine1: location.AddressLine1,
		AddressLine2: location.AddressLine2,
		City:         location.City,
		State:        location.State,
		PostalCode:   location.PostalCode,
		Country:      location.Country,
		Latitude:     location.Latitude,
		Longitude:    location.Longitude,
		LocationType: string(location.LocationType),
		Version:      location.Version,
		CreatedAt:    location.CreatedAt,
		UpdatedAt:    location.UpdatedAt,
	}
}

func toSessionResponse(session models.Session, organizer *models.User, location *models.Location, participants []models.User) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:             session.ID,
		Title:          session.Title,
		SessionType:    string(session.SessionType),
		Status:         string(session.Status),
		ScheduledStart: session.ScheduledStart,
		ScheduledEnd:   session.ScheduledEnd,
		Capacity:       session.Capacity,
		Visibility:     string(session.Visibility),
		FocusAreas:     copyStrings(session.FocusAreas),
		Participants:   make([]dto.UserSummary, 0, len(participants)),
		Version:        session.Version,
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
	if organizer != nil {
		summary := toUserSummary(*organizer)
		resp.Organizer = &summary
	}
	if location != nil {
		summary := toLocationSummary(*location)
		resp.Location = &summary
	}
	for _, participant := range participants {
		resp.Participants = append(resp.Participants, toUserSummary(participant))
	}
	return resp
}

func toSessionNoteResponse(note models.SessionNote, author *models.User) dto.SessionNoteResponse {
	resp := dto.SessionNoteResponse{
		ID:         note.ID,
		SessionID:  note.SessionID,
		Content:    note.Content,
		Visibility: string(note.Visibility),
		Tags:       copyStrings(note.Tags),
		MediaURLs:  copyStrings(note.MediaURLs),
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
	if author != nil {
		summary := toUserSummary(*author)
		resp.Author = &summary
	}
	return resp
}

func toSchedulePreferenceResponse(pref models.SchedulePreference, windows []models.AvailabilityWindow, locations []models.Location) dto.SchedulePreferenceResponse {
	resp := dto.SchedulePreferenceResponse{
		ID:                  pref.ID,
		UserID:              pref.UserID,
		LocationNote:        pref.LocationNote,
		MaxTravelDistanceKm: pref.MaxTravelDistanceKm,
		PreferredLocations:  make([]dto.LocationSummary, 0, len(locations)),
		AvailabilityWindows: make([]dto.AvailabilityWindowResponse, 0, len(windows)),
		PreferredRoles:      copyStrings(pref.PreferredRoles),
		PreferredLevels:     copyStrings(pref.PreferredLevels),
		PreferredFocusAreas: copyStrings(pref.PreferredFocusAreas),
		Notes:               pref.Notes,
		Version:             pref.Version,
		CreatedAt:           pref.CreatedAt,
		UpdatedAt:           pref.UpdatedAt,
	}
	for _, location := range locations {
		resp.PreferredLocations = append(resp.PreferredLocations, toLocationSummary(location))
	}
	for _, window := range windows {
		resp.AvailabilityWindows = append(resp.AvailabilityWindows, dto.AvailabilityWindowResponse{
			DayOfWeek: string(window.DayOfWeek),
			StartTime: window.StartTime,
			EndTime:   window.EndTime,
		})
	}
	return resp
}

func toAbuseReportResponse(report models.AbuseReport) dto.AbuseReportResponse {
	return dto.AbuseReportResponse{
		ID:             report.ID,
		Category:       string(report.Category),
		Status:         string(report.Status),
		Description:    report.Description,
		ReporterID:     report.ReporterID,
		ReportedUserID: report.ReportedUserID,
		SessionID:      report.SessionID,
		AdminNotes:     report.AdminNotes,
		HandledAt:      report.HandledAt,
		Version:        report.Version,
		CreatedAt:      report.CreatedAt,
		UpdatedAt:      report.UpdatedAt,
	}
}
