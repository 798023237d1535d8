package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dancepractice/practice-api/internal/handler"
	"github.com/dancepractice/practice-api/internal/service"
)

func testConfig(metrics *service.MetricsService) Config {
	return Config{
		APIPrefix:           "/api",
		EnableMetrics:       true,
		Recorder:            metrics,
		Users:               handler.NewUserHandler(nil),
		Locations:           handler.NewLocationHandler(nil),
		Sessions:            handler.NewSessionHandler(nil),
		SessionNotes:        handler.NewSessionNoteHandler(nil),
		SchedulePreferences: handler.NewSchedulePreferenceHandler(nil),
		AbuseReports:        handler.NewAbuseReportHandler(nil),
		System:              handler.NewMetricsHandler(metrics, nil),
	}
}

func TestRouterRegistersAPIRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := New(testConfig(service.NewMetricsService()))

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"GET /api/users",
		"PATCH /api/users/:id/status",
		"PUT /api/users/:id/blocks/:blockedId",
		"DELETE /api/users/:id/schedule-preferences/:preferenceId",
		"GET /api/locations",
		"POST /api/sessions/:id/cancel",
		"DELETE /api/sessions/:id/participants/:userId",
		"POST /api/sessions/:id/notes",
		"GET /api/abuse-reports/export",
		"PATCH /api/abuse-reports/:id/status",
	} {
		assert.True(t, registered[want], want)
	}
	assert.False(t, registered["GET /docs/*any"])
}

func TestRouterRejectsMalformedIDsBeforeServices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := New(testConfig(service.NewMetricsService()))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
