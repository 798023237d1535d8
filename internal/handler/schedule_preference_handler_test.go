package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancepractice/practice-api/internal/dto"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

type preferenceServiceStub struct {
	created dto.SchedulePreferenceRequest
	updated [2]string
	deleted [2]string
	err     error
}

func (s *preferenceServiceStub) List(ctx context.Context, userID string) ([]dto.SchedulePreferenceResponse, error) {
	return []dto.SchedulePreferenceResponse{{ID: "p-1", UserID: userID}}, s.err
}

func (s *preferenceServiceStub) Create(ctx context.Context, userID string, req dto.SchedulePreferenceRequest) (*dto.SchedulePreferenceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = req
	return &dto.SchedulePreferenceResponse{ID: "p-1", UserID: userID}, nil
}

func (s *preferenceServiceStub) Update(ctx context.Context, userID, preferenceID string, req dto.SchedulePreferenceRequest) (*dto.SchedulePreferenceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updated = [2]string{userID, preferenceID}
	return &dto.SchedulePreferenceResponse{ID: preferenceID, UserID: userID}, nil
}

func (s *preferenceServiceStub) Delete(ctx context.Context, userID, preferenceID string) error {
	s.deleted = [2]string{userID, preferenceID}
	return s.err
}

func preferenceRoutes(stub *preferenceServiceStub) *gin.Engine {
	engine := newEngine()
	h := NewSchedulePreferenceHandler(stub)
	engine.GET("/users/:id/schedule-preferences", h.List)
	engine.POST("/users/:id/schedule-preferences", h.Create)
	engine.PUT("/users/:id/schedule-preferences/:preferenceId", h.Update)
	engine.DELETE("/users/:id/schedule-preferences/:preferenceId", h.Delete)
	return engine
}

const preferenceA = "e5f6a7b8-091a-4b4c-86d7-e8f9a0b10001"

func TestSchedulePreferenceHandlerCreate(t *testing.T) {
	stub := &preferenceServiceStub{}
	engine := preferenceRoutes(stub)

	body := `{"availabilityWindows":[{"dayOfWeek":"MONDAY","startTime":"18:00","endTime":"20:00"}],"preferredRoles":["LEAD"]}`
	w := perform(engine, http.MethodPost, "/users/"+userA+"/schedule-preferences", body)
	requireStatus(t, w, http.StatusCreated)
	require.Len(t, stub.created.AvailabilityWindows, 1)
	assert.Equal(t, "MONDAY", stub.created.AvailabilityWindows[0].DayOfWeek)
	assert.Equal(t, []string{"LEAD"}, stub.created.PreferredRoles)

	w = perform(engine, http.MethodPost, "/users/"+userA+"/schedule-preferences", `{"availabilityWindows":`)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestSchedulePreferenceHandlerRejectsMalformedIDs(t *testing.T) {
	engine := preferenceRoutes(&preferenceServiceStub{})

	w := perform(engine, http.MethodGet, "/users/nope/schedule-preferences", "")
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "id must be a valid UUID", decode(t, w).Error.Message)

	w = perform(engine, http.MethodDelete, "/users/"+userA+"/schedule-preferences/nope", "")
	requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, "preferenceId must be a valid UUID", decode(t, w).Error.Message)
}

func TestSchedulePreferenceHandlerUpdateAndDelete(t *testing.T) {
	stub := &preferenceServiceStub{}
	engine := preferenceRoutes(stub)

	w := perform(engine, http.MethodPut, "/users/"+userA+"/schedule-preferences/"+preferenceA, `{"availabilityWindows":[]}`)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, [2]string{userA, preferenceA}, stub.updated)

	w = perform(engine, http.MethodDelete, "/users/"+userA+"/schedule-preferences/"+preferenceA, "")
	requireStatus(t, w, http.StatusNoContent)
	assert.Equal(t, [2]string{userA, preferenceA}, stub.deleted)

	stub.err = appErrors.Clone(appErrors.ErrNotFound, "schedule preference not found")
	w = perform(engine, http.MethodDelete, "/users/"+userB+"/schedule-preferences/"+preferenceA, "")
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
}
