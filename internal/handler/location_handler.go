package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/pkg/response"
)

type locationService interface {
	List(ctx context.Context, city string) ([]dto.LocationResponse, error)
	Get(ctx context.Context, id string) (*dto.LocationResponse, error)
	Create(ctx context.Context, req dto.LocationRequest) (*dto.LocationResponse, error)
	Update(ctx context.Context, id string, req dto.LocationRequest) (*dto.LocationResponse, error)
	Delete(ctx context.Context, id string) error
}

// LocationHandler exposes practice venue endpoints.
type LocationHandler struct {
	service locationService
}

func NewLocationHandler(svc locationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// List godoc
// @Summary List locations
// @Tags Locations
// @Produce json
// @Param city query string false "City, case insensitive"
// @Success 200 {object} response.Envelope
// @Router /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.service.List(c.Request.Context(), c.Query("city"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, locations, nil)
}

// Get godoc
// @Summary Get location
// @Tags Locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	location, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, location, nil)
}

// Create godoc
// @Summary Create location
// @Tags Locations
// @Accept json
// @Produce json
// @Param payload body dto.LocationRequest true "Location payload"
// @Success 201 {object} response.Envelope
// @Router /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.LocationRequest
	if !bindJSON(c, &req) {
		return
	}
	location, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, location)
}

// Update godoc
// @Summary Update location
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param payload body dto.LocationRequest true "Location payload"
// @Success 200 {object} response.Envelope
// @Router /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.LocationRequest
	if !bindJSON(c, &req) {
		return
	}
	location, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, location, nil)
}

// Delete godoc
// @Summary Delete location
// @Tags Locations
// @Param id path string true "Location ID"
// @Success 204
// @Router /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
