package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/internal/validation"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

type sessionRepository interface {
	sessionLookup
	ListByOrganizer(ctx context.Context, organizerID string) ([]models.Session, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Session, error)
	Create(ctx context.Context, session *models.Session, participantIDs []string) error
	Update(ctx context.Context, session *models.Session, participantIDs []string) error
	UpdateStatus(ctx context.Context, session *models.Session) error
	ListParticipants(ctx context.Context, sessionIDs []string) ([]models.SessionParticipant, error)
	AddParticipant(ctx context.Context, sessionID, userID string) error
	RemoveParticipant(ctx context.Context, sessionID, userID string) error
}

// SessionService schedules practice sessions and manages their participants.
type SessionService struct {
	repo      sessionRepository
	users     userLookup
	locations locationLookup
	cache     *CacheService
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, users userLookup, locations locationLookup, cache *CacheService, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &SessionService{repo: repo, users: users, locations: locations, cache: cache, validator: validate, metrics: metrics, logger: logger}
}

// Get returns a session with its organizer, location and participants.
func (s *SessionService) Get(ctx context.Context, id string) (*dto.SessionResponse, error) {
	key := cacheKeySessions + id
	var cached dto.SessionResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	session, err := loadSession(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp, err := s.toResponse(ctx, *session)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, resp)
	return resp, nil
}

// Create validates and stores a new session with its participant set.
func (s *SessionService) Create(ctx context.Context, req dto.SessionRequest) (*dto.SessionResponse, error) {
	session := &models.Session{Status: models.SessionProposed}
	participantIDs, err := s.prepare(ctx, session, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session, participantIDs); err != nil {
		return nil, writeFailed(err, "failed to create session")
	}
	s.metrics.RecordEvent(EventSessionCreated)
	s.logger.Info("session created", zap.String("session_id", session.ID), zap.String("organizer_id", session.OrganizerID))
	return s.toResponse(ctx, *session)
}

// Update rewrites the session and replaces its participants.
func (s *SessionService) Update(ctx context.Context, id string, req dto.SessionRequest) (*dto.SessionResponse, error) {
	session, err := loadSession(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	participantIDs, err := s.prepare(ctx, session, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, session, participantIDs); err != nil {
		return nil, writeFailed(err, "failed to update session")
	}
	s.cache.Evict(ctx, cacheKeySessions+id)
	return s.toResponse(ctx, *session)
}

// Cancel marks the session cancelled. Cancelling twice returns the session unchanged.
func (s *SessionService) Cancel(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := loadSession(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.SessionCancelled {
		session.Status = models.SessionCancelled
		if err := s.repo.UpdateStatus(ctx, session); err != nil {
			return nil, writeFailed(err, "failed to cancel session")
		}
		s.cache.Evict(ctx, cacheKeySessions+id)
		s.metrics.RecordEvent(EventSessionCancelled)
	}
	return s.toResponse(ctx, *session)
}

// ListByOrganizer returns the sessions an existing user organizes.
func (s *SessionService) ListByOrganizer(ctx context.Context, organizerID string) ([]dto.SessionResponse, error) {
	if _, err := loadUser(ctx, s.users, organizerID, "organizer not found"); err != nil {
		return nil, err
	}
	sessions, err := s.repo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list sessions")
	}
	return s.toResponses(ctx, sessions)
}

// ListBetween returns sessions starting within [from, to].
func (s *SessionService) ListBetween(ctx context.Context, from, to time.Time) ([]dto.SessionResponse, error) {
	if from.After(to) {
		return nil, invalid("from must not be after to")
	}
	sessions, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list sessions")
	}
	return s.toResponses(ctx, sessions)
}

// AddParticipant joins a user to a session, respecting capacity.
func (s *SessionService) AddParticipant(ctx context.Context, sessionID, userID string) (*dto.SessionResponse, error) {
	session, err := loadSession(ctx, s.repo, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionCancelled {
		return nil, invalid("cannot join a cancelled session")
	}
	if _, err := loadUser(ctx, s.users, userID, "user not found"); err != nil {
		return nil, err
	}

	participants, err := s.repo.ListParticipants(ctx, []string{sessionID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load participants")
	}
	for _, participant := range participants {
		if participant.UserID == userID {
			return s.toResponse(ctx, *session)
		}
	}
	if session.Capacity != nil && len(participants) >= *session.Capacity {
		return nil, appErrors.Clone(appErrors.ErrConflict, "session is full")
	}

	if err := s.repo.AddParticipant(ctx, sessionID, userID); err != nil {
		return nil, appErrors.Internal(err, "failed to join session")
	}
	s.cache.Evict(ctx, cacheKeySessions+sessionID)
	s.metrics.RecordEvent(EventParticipantJoined)
	return s.toResponse(ctx, *session)
}

// RemoveParticipant drops a user from a session if present.
func (s *SessionService) RemoveParticipant(ctx context.Context, sessionID, userID string) error {
	if _, err := loadSession(ctx, s.repo, sessionID); err != nil {
		return err
	}
	if err := s.repo.RemoveParticipant(ctx, sessionID, userID); err != nil {
		return appErrors.Internal(err, "failed to leave session")
	}
	s.cache.Evict(ctx, cacheKeySessions+sessionID)
	return nil
}

// prepare validates req, resolves references and copies it onto session.
// It returns the resolved participant ids.
func (s *SessionService) prepare(ctx context.Context, session *models.Session, req dto.SessionRequest) ([]string, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid session payload")
	}
	if !req.ScheduledStart.Before(*req.ScheduledEnd) {
		return nil, invalid("session end time must be after start time")
	}

	organizer, err := loadUser(ctx, s.users, req.OrganizerID, "organizer not found")
	if err != nil {
		return nil, err
	}

	var locationID *string
	if req.LocationID != nil {
		location, err := loadLocation(ctx, s.locations, *req.LocationID)
		if err != nil {
			return nil, err
		}
		locationID = &location.ID
	}

	participants, err := resolveUsers(ctx, s.users, req.ParticipantIDs, "one or more participants were not found")
	if err != nil {
		return nil, err
	}
	if req.Capacity != nil && len(participants) > *req.Capacity {
		return nil, invalid("session capacity cannot be lower than the number of participants")
	}

	session.Title = strings.TrimSpace(req.Title)
	session.SessionType = models.SessionType(req.SessionType)
	if req.Status != "" {
		session.Status = models.SessionStatus(req.Status)
	}
	session.ScheduledStart = req.ScheduledStart.UTC()
	session.ScheduledEnd = req.ScheduledEnd.UTC()
	session.Capacity = req.Capacity
	session.Visibility = models.VisibilityPublic
	if req.Visibility != "" {
		session.Visibility = models.Visibility(req.Visibility)
	}
	session.OrganizerID = organizer.ID
	session.LocationID = locationID
	session.FocusAreas = stringArray(req.FocusAreas)

	ids := make([]string, 0, len(participants))
	for _, participant := range participants {
		ids = append(ids, participant.ID)
	}
	return ids, nil
}

func (s *SessionService) toResponse(ctx context.Context, session models.Session) (*dto.SessionResponse, error) {
	responses, err := s.toResponses(ctx, []models.Session{session})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// toResponses hydrates sessions with three batched lookups regardless of list size.
func (s *SessionService) toResponses(ctx context.Context, sessions []models.Session) ([]dto.SessionResponse, error) {
	responses := make([]dto.SessionResponse, 0, len(sessions))
	if len(sessions) == 0 {
		return responses, nil
	}

	sessionIDs := make([]string, 0, len(sessions))
	userIDs := make([]string, 0, len(sessions))
	var locationIDs []string
	for _, session := range sessions {
		sessionIDs = append(sessionIDs, session.ID)
		userIDs = append(userIDs, session.OrganizerID)
		if session.LocationID != nil {
			locationIDs = append(locationIDs, *session.LocationID)
		}
	}

	links, err := s.repo.ListParticipants(ctx, sessionIDs)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load participants")
	}
	participantIDs := make(map[string][]string, len(sessions))
	for _, link := range links {
		participantIDs[link.SessionID] = append(participantIDs[link.SessionID], link.UserID)
		userIDs = append(userIDs, link.UserID)
	}

	users, err := usersByID(ctx, s.users, userIDs)
	if err != nil {
		return nil, err
	}
	locations := map[string]models.Location{}
	if len(locationIDs) > 0 {
		if locations, err = locationsByID(ctx, s.locations, locationIDs); err != nil {
			return nil, err
		}
	}

	for _, session := range sessions {
		var organizer *models.User
		if user, ok := users[session.OrganizerID]; ok {
			organizer = &user
		}
		var location *models.Location
		if session.LocationID != nil {
			if loc, ok := locations[*session.LocationID]; ok {
				location = &loc
			}
		}
		participants := make([]models.User, 0, len(participantIDs[session.ID]))
		for _, id := range participantIDs[session.ID] {
			if user, ok := users[id]; ok {
				participants = append(participants, user)
			}
		}
		responses = append(responses, toSessionResponse(session, organizer, location, participants))
	}
	return responses, nil
}
