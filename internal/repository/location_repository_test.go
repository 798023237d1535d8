package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancepractice/practice-api/internal/models"
)

func TestLocationRepositoryListByCity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLocationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(columns(locationColumns)).
		AddRow("loc-1", 0, now, now, nil, "Swing Hall", nil, nil, nil, "Portland", nil, nil, nil, 45.5, -122.6, "STUDIO")
	mock.ExpectQuery(regexp.QuoteMeta("FROM locations WHERE deleted_at IS NULL AND LOWER(city) = LOWER($1) ORDER BY name ASC")).
		WithArgs("portland").
		WillReturnRows(rows)

	locations, err := repo.List(context.Background(), models.LocationFilter{City: "portland"})
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, models.LocationStudio, locations[0].LocationType)
	require.NotNil(t, locations[0].Latitude)
	assert.InDelta(t, 45.5, *locations[0].Latitude, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocationRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLocationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM locations WHERE deleted_at IS NULL ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows(columns(locationColumns)))

	locations, err := repo.List(context.Background(), models.LocationFilter{})
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestLocationRepositoryUpdateStale(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLocationRepository(db)

	mock.ExpectExec("UPDATE locations SET name").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Location{Auditable: models.Auditable{ID: "loc-1"}, Name: "Hall"})
	assert.ErrorIs(t, err, models.ErrStaleVersion)
}

func TestLocationRepositorySoftDeleteStale(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewLocationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE locations SET deleted_at = $3")).
		WithArgs("loc-1", int64(0), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), "loc-1", 0)
	assert.ErrorIs(t, err, models.ErrStaleVersion)
}
