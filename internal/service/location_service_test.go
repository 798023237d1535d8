package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/internal/validation"
)

func newLocationFixture(locations ...models.Location) (*LocationService, *fakeLocationRepo, *fakeCacheRepo) {
	repo := newFakeLocationRepo(locations...)
	cacheRepo := newFakeCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	return NewLocationService(repo, cache, validation.New(), nil, zap.NewNop()), repo, cacheRepo
}

func TestLocationServiceListFiltersByCity(t *testing.T) {
	svc, _, _ := newLocationFixture(
		seedLocation(studioID, "Studio 5", "Austin"),
		seedLocation(parkID, "Zilker Park", "austin"),
		seedLocation("9b1c2d3e-4f50-4a61-8b72-93a4b5c60003", "Hall", "Dallas"),
	)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	austin, err := svc.List(context.Background(), " AUSTIN ")
	require.NoError(t, err)
	require.Len(t, austin, 2)
	assert.Equal(t, "Studio 5", austin[0].Name)
	assert.Equal(t, "Zilker Park", austin[1].Name)
}

func TestLocationServiceCreateDefaultsAndInvalidates(t *testing.T) {
	svc, repo, cacheRepo := newLocationFixture(seedLocation(studioID, "Studio 5", "Austin"))
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	require.NoError(t, err)
	_, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)
	cacheRepo.values[cacheKeySessions+"s-1"] = []byte(`{}`)

	created, err := svc.Create(ctx, dto.LocationRequest{Name: " Rooftop "})
	require.NoError(t, err)
	assert.Equal(t, "Rooftop", created.Name)
	assert.Equal(t, string(models.LocationOther), created.LocationType)
	assert.Empty(t, cacheRepo.values)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, repo.lists)
}

func TestLocationServiceValidatesCoordinates(t *testing.T) {
	svc, _, _ := newLocationFixture()

	lat := 123.0
	_, err := svc.Create(context.Background(), dto.LocationRequest{Name: "Nowhere", Latitude: &lat})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
}

func TestLocationServiceGetAndDelete(t *testing.T) {
	svc, _, _ := newLocationFixture(seedLocation(studioID, "Studio 5", "Austin"))
	ctx := context.Background()

	loc, err := svc.Get(ctx, studioID)
	require.NoError(t, err)
	assert.Equal(t, "Studio 5", loc.Name)

	updated, err := svc.Update(ctx, studioID, dto.LocationRequest{Name: "Studio Five", LocationType: string(models.LocationStudio)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Version)

	require.NoError(t, svc.Delete(ctx, studioID))
	_, err = svc.Get(ctx, studioID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}
