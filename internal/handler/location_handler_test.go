package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dancepractice/practice-api/internal/dto"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

type locationServiceStub struct {
	city string
	err  error
}

func (s *locationServiceStub) List(ctx context.Context, city string) ([]dto.LocationResponse, error) {
	s.city = city
	return []dto.LocationResponse{{ID: "l-1", Name: "Main Studio"}}, nil
}

func (s *locationServiceStub) Get(ctx context.Context, id string) (*dto.LocationResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.LocationResponse{ID: id, Name: "Main Studio"}, nil
}

func (s *locationServiceStub) Create(ctx context.Context, req dto.LocationRequest) (*dto.LocationResponse, error) {
	return &dto.LocationResponse{ID: "l-1", Name: req.Name}, nil
}

func (s *locationServiceStub) Update(ctx context.Context, id string, req dto.LocationRequest) (*dto.LocationResponse, error) {
	return &dto.LocationResponse{ID: id, Name: req.Name}, nil
}

func (s *locationServiceStub) Delete(ctx context.Context, id string) error {
	return s.err
}

func TestLocationHandler(t *testing.T) {
	stub := &locationServiceStub{}
	engine := newEngine()
	h := NewLocationHandler(stub)
	engine.GET("/locations", h.List)
	engine.GET("/locations/:id", h.Get)
	engine.POST("/locations", h.Create)
	engine.DELETE("/locations/:id", h.Delete)

	w := perform(engine, http.MethodGet, "/locations?city=Portland", "")
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "Portland", stub.city)

	w = perform(engine, http.MethodPost, "/locations", `{"name":"Main Studio","locationType":"STUDIO"}`)
	requireStatus(t, w, http.StatusCreated)
	assert.Contains(t, w.Body.String(), `"name":"Main Studio"`)

	w = perform(engine, http.MethodGet, "/locations/not-a-uuid", "")
	requireStatus(t, w, http.StatusBadRequest)

	stub.err = appErrors.Clone(appErrors.ErrNotFound, "location not found")
	w = perform(engine, http.MethodGet, "/locations/"+sessionA, "")
	requireStatus(t, w, http.StatusNotFound)
	assert.Equal(t, "location not found", decode(t, w).Error.Message)

	w = perform(engine, http.MethodDelete, "/locations/"+sessionA, "")
	requireStatus(t, w, http.StatusNotFound)
}
