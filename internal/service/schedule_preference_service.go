package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/internal/validation"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

type schedulePreferenceRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.SchedulePreference, error)
	FindByID(ctx context.Context, id string) (*models.SchedulePreference, error)
	Create(ctx context.Context, pref *models.SchedulePreference, windows []models.AvailabilityWindow, locationIDs []string) error
	Update(ctx context.Context, pref *models.SchedulePreference, windows []models.AvailabilityWindow, locationIDs []string) error
	SoftDelete(ctx context.Context, id string, version int64) error
	ListWindows(ctx context.Context, preferenceIDs []string) ([]models.AvailabilityWindow, error)
	ListLocationLinks(ctx context.Context, preferenceIDs []string) ([]models.PreferenceLocation, error)
}

// SchedulePreferenceService manages when and where users like to practise.
type SchedulePreferenceService struct {
	repo      schedulePreferenceRepository
	users     userLookup
	locations locationLookup
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewSchedulePreferenceService constructs the service.
func NewSchedulePreferenceService(repo schedulePreferenceRepository, users userLookup, locations locationLookup, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *SchedulePreferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &SchedulePreferenceService{repo: repo, users: users, locations: locations, validator: validate, metrics: metrics, logger: logger}
}

// List returns every live preference of an existing user.
func (s *SchedulePreferenceService) List(ctx context.Context, userID string) ([]dto.SchedulePreferenceResponse, error) {
	if _, err := loadUser(ctx, s.users, userID, "user not found"); err != nil {
		return nil, err
	}
	prefs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list schedule preferences")
	}
	return s.toResponses(ctx, prefs)
}

// Create stores a preference with its windows and preferred locations.
func (s *SchedulePreferenceService) Create(ctx context.Context, userID string, req dto.SchedulePreferenceRequest) (*dto.SchedulePreferenceResponse, error) {
	user, err := loadUser(ctx, s.users, userID, "user not found")
	if err != nil {
		return nil, err
	}
	pref := &models.SchedulePreference{UserID: user.ID}
	windows, locations, err := s.prepare(ctx, pref, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, pref, windows, locationIDs(locations)); err != nil {
		return nil, writeFailed(err, "failed to create schedule preference")
	}
	s.metrics.RecordEvent(EventPreferenceSaved)
	resp := toSchedulePreferenceResponse(*pref, windows, locations)
	return &resp, nil
}

// Update replaces a preference owned by userID.
func (s *SchedulePreferenceService) Update(ctx context.Context, userID, preferenceID string, req dto.SchedulePreferenceRequest) (*dto.SchedulePreferenceResponse, error) {
	pref, err := s.loadOwned(ctx, userID, preferenceID)
	if err != nil {
		return nil, err
	}
	windows, locations, err := s.prepare(ctx, pref, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pref, windows, locationIDs(locations)); err != nil {
		return nil, writeFailed(err, "failed to update schedule preference")
	}
	s.metrics.RecordEvent(EventPreferenceSaved)
	resp := toSchedulePreferenceResponse(*pref, windows, locations)
	return &resp, nil
}

// Delete soft deletes a preference owned by userID.
func (s *SchedulePreferenceService) Delete(ctx context.Context, userID, preferenceID string) error {
	pref, err := s.loadOwned(ctx, userID, preferenceID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, pref.ID, pref.Version); err != nil {
		return writeFailed(err, "failed to delete schedule preference")
	}
	return nil
}

func (s *SchedulePreferenceService) loadOwned(ctx context.Context, userID, preferenceID string) (*models.SchedulePreference, error) {
	if _, err := loadUser(ctx, s.users, userID, "user not found"); err != nil {
		return nil, err
	}
	pref, err := s.repo.FindByID(ctx, preferenceID)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("schedule preference not found")
		}
		return nil, appErrors.Internal(err, "failed to load schedule preference")
	}
	if pref.UserID != userID {
		return nil, invalid("schedule preference does not belong to the user")
	}
	return pref, nil
}

// prepare validates req and copies it onto pref, returning the normalised
// windows and the resolved preferred locations.
func (s *SchedulePreferenceService) prepare(ctx context.Context, pref *models.SchedulePreference, req dto.SchedulePreferenceRequest) ([]models.AvailabilityWindow, []models.Location, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, invalidPayload(err, "invalid schedule preference payload")
	}
	windows, err := normalizeWindows(req.AvailabilityWindows)
	if err != nil {
		return nil, nil, err
	}
	locations, err := resolveLocations(ctx, s.locations, req.PreferredLocationIDs, "one or more preferred locations were not found")
	if err != nil {
		return nil, nil, err
	}

	pref.LocationNote = req.LocationNote
	pref.MaxTravelDistanceKm = req.MaxTravelDistanceKm
	pref.Notes = req.Notes
	pref.PreferredRoles = stringArray(req.PreferredRoles)
	pref.PreferredLevels = stringArray(req.PreferredLevels)
	pref.PreferredFocusAreas = stringArray(req.PreferredFocusAreas)
	return windows, locations, nil
}

// normalizeWindows requires at least one window, checks each start precedes
// its end, reformats times as HH:MM and drops exact duplicates.
func normalizeWindows(requests []dto.AvailabilityWindowRequest) ([]models.AvailabilityWindow, error) {
	if len(requests) == 0 {
		return nil, invalid("at least one availability window is required")
	}
	seen := make(map[models.AvailabilityWindow]struct{}, len(requests))
	windows := make([]models.AvailabilityWindow, 0, len(requests))
	for _, req := range requests {
		start, err := validation.ParseClock(req.StartTime)
		if err != nil {
			return nil, invalid("availability window start time must be formatted as HH:MM")
		}
		end, err := validation.ParseClock(req.EndTime)
		if err != nil {
			return nil, invalid("availability window end time must be formatted as HH:MM")
		}
		if !start.Before(end) {
			return nil, invalid("availability window start time must be before end time")
		}
		window := models.AvailabilityWindow{
			DayOfWeek: models.DayOfWeek(req.DayOfWeek),
			StartTime: validation.FormatClock(start),
			EndTime:   validation.FormatClock(end),
		}
		if _, dup := seen[window]; dup {
			continue
		}
		seen[window] = struct{}{}
		windows = append(windows, window)
	}
	return windows, nil
}

func locationIDs(locations []models.Location) []string {
	ids := make([]string, 0, len(locations))
	for _, location := range locations {
		ids = append(ids, location.ID)
	}
	return ids
}

func (s *SchedulePreferenceService) toResponses(ctx context.Context, prefs []models.SchedulePreference) ([]dto.SchedulePreferenceResponse, error) {
	responses := make([]dto.SchedulePreferenceResponse, 0, len(prefs))
	if len(prefs) == 0 {
		return responses, nil
	}
	ids := make([]string, 0, len(prefs))
	for _, pref := range prefs {
		ids = append(ids, pref.ID)
	}

	windows, err := s.repo.ListWindows(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load availability windows")
	}
	links, err := s.repo.ListLocationLinks(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load preferred locations")
	}

	windowsByPref := make(map[string][]models.AvailabilityWindow, len(prefs))
	for _, window := range windows {
		windowsByPref[window.PreferenceID] = append(windowsByPref[window.PreferenceID], window)
	}
	linkedIDs := make([]string, 0, len(links))
	for _, link := range links {
		linkedIDs = append(linkedIDs, link.LocationID)
	}
	locations := map[string]models.Location{}
	if len(linkedIDs) > 0 {
		if locations, err = locationsByID(ctx, s.locations, linkedIDs); err != nil {
			return nil, err
		}
	}
	locationsByPref := make(map[string][]models.Location, len(prefs))
	for _, link := range links {
		if location, ok := locations[link.LocationID]; ok {
			locationsByPref[link.PreferenceID] = append(locationsByPref[link.PreferenceID], location)
		}
	}

	for _, pref := range prefs {
		responses = append(responses, toSchedulePreferenceResponse(pref, windowsByPref[pref.ID], locationsByPref[pref.ID]))
	}
	return responses, nil
}
