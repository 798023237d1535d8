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

type locationRepository interface {
	locationLookup
	List(ctx context.Context, filter models.LocationFilter) ([]models.Location, error)
	Create(ctx context.Context, location *models.Location) error
	Update(ctx context.Context, location *models.Location) error
	SoftDelete(ctx context.Context, id string, version int64) error
}

// LocationService manages practice venues. Reads go through the cache when enabled.
type LocationService struct {
	repo      locationRepository
	cache     *CacheService
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

func NewLocationService(repo locationRepository, cache *CacheService, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *LocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &LocationService{repo: repo, cache: cache, validator: validate, metrics: metrics, logger: logger}
}

// List returns live locations, optionally matching a city case-insensitively.
func (s *LocationService) List(ctx context.Context, city string) ([]dto.LocationResponse, error) {
	city = strings.TrimSpace(city)
	key := cacheKeyLocations + "list:" + strings.ToLower(city)

	var cached []dto.LocationResponse
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	locations, err := s.repo.List(ctx, models.LocationFilter{City: city})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list locations")
	}
	responses := make([]dto.LocationResponse, 0, len(locations))
	for _, location := range locations {
		responses = append(responses, toLocationResponse(location))
	}
	s.cache.Set(ctx, key, responses)
	return responses, nil
}

func (s *LocationService) Get(ctx context.Context, id string) (*dto.LocationResponse, error) {
	key := cacheKeyLocations + id
	var cached dto.LocationResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	location, err := loadLocation(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := toLocationResponse(*location)
	s.cache.Set(ctx, key, resp)
	return &resp, nil
}

func (s *LocationService) Create(ctx context.Context, req dto.LocationRequest) (*dto.LocationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid location payload")
	}
	location := &models.Location{LocationType: models.LocationOther}
	applyLocation(location, req)

	if err := s.repo.Create(ctx, location); err != nil {
		return nil, writeFailed(err, "failed to create location")
	}
	s.invalidate(ctx)
	s.metrics.RecordEvent(EventLocationCreated)
	resp := toLocationResponse(*location)
	return &resp, nil
}

func (s *LocationService) Update(ctx context.Context, id string, req dto.LocationRequest) (*dto.LocationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid location payload")
	}
	location, err := loadLocation(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	applyLocation(location, req)

	if err := s.repo.Update(ctx, location); err != nil {
		return nil, writeFailed(err, "failed to update location")
	}
	s.invalidate(ctx)
	resp := toLocationResponse(*location)
	return &resp, nil
}

func (s *LocationService) Delete(ctx context.Context, id string) error {
	location, err := loadLocation(ctx, s.repo, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, location.Version); err != nil {
		return writeFailed(err, "failed to delete location")
	}
	s.invalidate(ctx)
	return nil
}

// invalidate drops location entries and sessions, which embed location summaries.
func (s *LocationService) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, cacheKeyLocations+"*")
	s.cache.Invalidate(ctx, cacheKeySessions+"*")
}

func applyLocation(location *models.Location, req dto.LocationRequest) {
	location.Name = strings.TrimSpace(req.Name)
	location.Description = req.Description
	location.AddressLine1 = req.AddressLine1
	location.AddressLine2 = req.AddressLine2
	location.City = req.City
	location.State = req.State
	location.PostalCode = req.PostalCode
	location.Country = req.Country
	location.Latitude = req.Latitude
	location.Longitude = req.Longitude
	if req.LocationType != "" {
		location.LocationType = models.LocationType(req.LocationType)
	}
}
