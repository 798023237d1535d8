package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/pkg/response"
)

type schedulePreferenceService interface {
	List(ctx context.Context, userID string) ([]dto.SchedulePreferenceResponse, error)
	Create(ctx context.Context, userID string, req dto.SchedulePreferenceRequest) (*dto.SchedulePreferenceResponse, error)
	Update(ctx context.Context, userID, preferenceID string, req dto.SchedulePreferenceRequest) (*dto.SchedulePreferenceResponse, error)
	Delete(ctx context.Context, userID, preferenceID string) error
}

// SchedulePreferenceHandler exposes /users/{id}/schedule-preferences.
type SchedulePreferenceHandler struct {
	service schedulePreferenceService
}

// NewSchedulePreferenceHandler constructs the handler.
func NewSchedulePreferenceHandler(service schedulePreferenceService) *SchedulePreferenceHandler {
	return &SchedulePreferenceHandler{service: service}
}

// List godoc
// @Summary List schedule preferences
// @Tags Schedule Preferences
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/schedule-preferences [get]
func (h *SchedulePreferenceHandler) List(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	prefs, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, prefs, nil)
}

// Create godoc
// @Summary Create schedule preference
// @Tags Schedule Preferences
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.SchedulePreferenceRequest true "Preference payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users/{id}/schedule-preferences [post]
func (h *SchedulePreferenceHandler) Create(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SchedulePreferenceRequest
	if !bindJSON(c, &req) {
		return
	}
	pref, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pref)
}

// Update godoc
// @Summary Replace schedule preference
// @Tags Schedule Preferences
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param preferenceId path string true "Preference ID"
// @Param payload body dto.SchedulePreferenceRequest true "Preference payload"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/schedule-preferences/{preferenceId} [put]
func (h *SchedulePreferenceHandler) Update(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	preferenceID, ok := pathID(c, "preferenceId")
	if !ok {
		return
	}
	var req dto.SchedulePreferenceRequest
	if !bindJSON(c, &req) {
		return
	}
	pref, err := h.service.Update(c.Request.Context(), userID, preferenceID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pref, nil)
}

// Delete godoc
// @Summary Delete schedule preference
// @Tags Schedule Preferences
// @Param id path string true "User ID"
// @Param preferenceId path string true "Preference ID"
// @Success 204
// @Router /users/{id}/schedule-preferences/{preferenceId} [delete]
func (h *SchedulePreferenceHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	preferenceID, ok := pathID(c, "preferenceId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), userID, preferenceID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
