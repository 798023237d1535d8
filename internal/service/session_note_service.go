package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/internal/validation"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

type sessionNoteRepository interface {
	Create(ctx context.Context, note *models.SessionNote) error
	FindByID(ctx context.Context, id string) (*models.SessionNote, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.SessionNote, error)
	SoftDelete(ctx context.Context, id string, version int64) error
}

// SessionNoteService records practice notes against sessions.
type SessionNoteService struct {
	repo      sessionNoteRepository
	sessions  sessionLookup
	users     userLookup
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

func NewSessionNoteService(repo sessionNoteRepository, sessions sessionLookup, users userLookup, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *SessionNoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &SessionNoteService{repo: repo, sessions: sessions, users: users, validator: validate, metrics: metrics, logger: logger}
}

// Add stores a note for sessionID. An empty req.SessionID takes the path value.
func (s *SessionNoteService) Add(ctx context.Context, sessionID string, req dto.SessionNoteRequest) (*dto.SessionNoteResponse, error) {
	if req.SessionID == "" {
		req.SessionID = sessionID
	}
	if req.SessionID != sessionID {
		return nil, invalid("session id mismatch between path and payload")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid session note payload")
	}

	session, err := loadSession(ctx, s.sessions, sessionID)
	if err != nil {
		return nil, err
	}
	author, err := loadUser(ctx, s.users, req.AuthorID, "author not found")
	if err != nil {
		return nil, err
	}

	note := &models.SessionNote{
		SessionID:  session.ID,
		AuthorID:   author.ID,
		Content:    strings.TrimSpace(req.Content),
		Visibility: models.VisibilityAuthorOnly,
		Tags:       stringArray(req.Tags),
		MediaURLs:  stringArray(req.MediaURLs),
	}
	if req.Visibility != "" {
		note.Visibility = models.Visibility(req.Visibility)
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, writeFailed(err, "failed to add session note")
	}
	s.metrics.RecordEvent(EventNoteAdded)
	resp := toSessionNoteResponse(*note, author)
	return &resp, nil
}

// ListBySession returns the notes of an existing session with author summaries.
func (s *SessionNoteService) ListBySession(ctx context.Context, sessionID string) ([]dto.SessionNoteResponse, error) {
	if _, err := loadSession(ctx, s.sessions, sessionID); err != nil {
		return nil, err
	}
	notes, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list session notes")
	}

	authorIDs := make([]string, 0, len(notes))
	for _, note := range notes {
		authorIDs = append(authorIDs, note.AuthorID)
	}
	authors := map[string]models.User{}
	if len(authorIDs) > 0 {
		if authors, err = usersByID(ctx, s.users, authorIDs); err != nil {
			return nil, err
		}
	}

	responses := make([]dto.SessionNoteResponse, 0, len(notes))
	for _, note := range notes {
		var author *models.User
		if user, ok := authors[note.AuthorID]; ok {
			author = &user
		}
		responses = append(responses, toSessionNoteResponse(note, author))
	}
	return responses, nil
}

// Delete soft deletes a note that belongs to sessionID.
func (s *SessionNoteService) Delete(ctx context.Context, sessionID, noteID string) error {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		if isNoRows(err) {
			return notFound("session note not found")
		}
		return appErrors.Internal(err, "failed to load session note")
	}
	if note.SessionID != sessionID {
		return notFound("session note not found")
	}
	if err := s.repo.SoftDelete(ctx, noteID, note.Version); err != nil {
		return writeFailed(err, "failed to delete session note")
	}
	return nil
}
