package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dancepractice/practice-api/internal/dto"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
	"github.com/dancepractice/practice-api/pkg/response"
)

type sessionNoteService interface {
	Add(ctx context.Context, sessionID string, req dto.SessionNoteRequest) (*dto.SessionNoteResponse, error)
	ListBySession(ctx context.Context, sessionID string) ([]dto.SessionNoteResponse, error)
	Delete(ctx context.Context, sessionID, noteID string) error
}

// SessionNoteHandler exposes notes nested under a session.
type SessionNoteHandler struct {
	service sessionNoteService
}

func NewSessionNoteHandler(svc sessionNoteService) *SessionNoteHandler {
	return &SessionNoteHandler{service: svc}
}

// List godoc
// @Summary List session notes
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /sessions/{id}/notes [get]
func (h *SessionNoteHandler) List(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	notes, err := h.service.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notes, nil)
}

// Add godoc
// @Summary Add session note
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SessionNoteRequest true "Note payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/{id}/notes [post]
func (h *SessionNoteHandler) Add(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SessionNoteRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.SessionID != "" && req.SessionID != sessionID {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "session id mismatch between path and payload"))
		return
	}

	note, err := h.service.Add(c.Request.Context(), sessionID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, note)
}

// Delete godoc
// @Summary Delete session note
// @Tags Sessions
// @Param id path string true "Session ID"
// @Param noteId path string true "Note ID"
// @Success 204
// @Router /sessions/{id}/notes/{noteId} [delete]
func (h *SessionNoteHandler) Delete(c *gin.Context) {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), sessionID, noteID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
