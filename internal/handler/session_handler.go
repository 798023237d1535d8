package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dancepractice/practice-api/internal/dto"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
	"github.com/dancepractice/practice-api/pkg/response"
)

type sessionService interface {
	Get(ctx context.Context, id string) (*dto.SessionResponse, error)
	Create(ctx context.Context, req dto.SessionRequest) (*dto.SessionResponse, error)
	Update(ctx context.Context, id string, req dto.SessionRequest) (*dto.SessionResponse, error)
	Cancel(ctx context.Context, id string) (*dto.SessionResponse, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]dto.SessionResponse, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]dto.SessionResponse, error)
	AddParticipant(ctx context.Context, sessionID, userID string) (*dto.SessionResponse, error)
	RemoveParticipant(ctx context.Context, sessionID, userID string) error
}

// SessionHandler exposes practice session endpoints, including participant membership.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler constructs a session handler.
func NewSessionHandler(svc sessionService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// List godoc
// @Summary List sessions
// @Description Sessions of one organizer, or sessions starting inside a time window
// @Tags Sessions
// @Produce json
// @Param organizerId query string false "Organizer user ID"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	var query dto.SessionListQuery
	if !bindQuery(c, &query) {
		return
	}

	var (
		sessions []dto.SessionResponse
		err      error
	)
	switch {
	case query.OrganizerID != "":
		if _, parseErr := uuid.Parse(query.OrganizerID); parseErr != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "organizerId must be a valid UUID"))
			return
		}
		sessions, err = h.service.ListByOrganizer(c.Request.Context(), query.OrganizerID)
	case query.From != "" && query.To != "":
		from, fromErr := time.Parse(time.RFC3339, query.From)
		to, toErr := time.Parse(time.RFC3339, query.To)
		if fromErr != nil || toErr != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "from and to must be RFC3339 timestamps"))
			return
		}
		sessions, err = h.service.ListBetween(c.Request.Context(), from, to)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "organizerId or both from and to are required"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, sessions, nil)
}

// Get godoc
// @Summary Get session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, session, nil)
}

// Create godoc
// @Summary Schedule a session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.SessionRequest true "Session payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.SessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, session)
}

// Update godoc
// @Summary Update session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SessionRequest true "Session payload"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id} [put]
func (h *SessionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SessionRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, session, nil)
}

// Cancel godoc
// @Summary Cancel session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/cancel [post]
func (h *SessionHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, session, nil)
}

// Join godoc
// @Summary Join session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.JoinSessionRequest true "Participant"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /sessions/{id}/participants [post]
func (h *SessionHandler) Join(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.JoinSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := uuid.Parse(req.UserID); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "userId must be a valid UUID"))
		return
	}

	session, err := h.service.AddParticipant(c.Request.Context(), id, req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, session, nil)
}

// Leave godoc
// @Summary Leave session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Param userId path string true "User ID"
// @Success 204
// @Router /sessions/{id}/participants/{userId} [delete]
func (h *SessionHandler) Leave(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.service.RemoveParticipant(c.Request.Context(), id, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
