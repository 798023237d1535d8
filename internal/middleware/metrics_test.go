package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	path   string
	status int
}

type recorderStub struct {
	seen []observation
}

func (r *recorderStub) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	r.seen = append(r.seen, observation{method: method, path: path, status: status})
}

func TestMetricsLabelsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := &recorderStub{}
	engine := gin.New()
	engine.Use(Metrics(recorder))
	engine.GET("/sessions/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	for _, path := range []string{"/sessions/abc", "/nope/123"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, recorder.seen, 2)
	assert.Equal(t, observation{method: http.MethodGet, path: "/sessions/:id", status: http.StatusTeapot}, recorder.seen[0])
	assert.Equal(t, observation{method: http.MethodGet, path: unmatchedRoute, status: http.StatusNotFound}, recorder.seen[1])
}

func TestMetricsNilRecorderPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Metrics(nil))
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
