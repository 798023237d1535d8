package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dancepractice/practice-api/internal/models"
)

const locationColumns = auditColumns + ", name, description, address_line1, address_line2, city, state, postal_code, country, latitude, longitude, location_type"

// LocationRepository persists practice venues.
type LocationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// List returns live locations ordered by name, optionally restricted to a city.
func (r *LocationRepository) List(ctx context.Context, filter models.LocationFilter) ([]models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE deleted_at IS NULL`
	var args []interface{}
	if filter.City != "" {
		query += ` AND LOWER(city) = LOWER($1)`
		args = append(args, filter.City)
	}
	query += ` ORDER BY name ASC`

	var locations []models.Location
	if err := r.db.SelectContext(ctx, &locations, query, args...); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id string) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	var location models.Location
	if err := r.db.GetContext(ctx, &location, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find location by id: %w", err)
	}
	return &location, nil
}

// FindByIDs returns the live locations among ids.
func (r *LocationRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Location, error) {
	if len(ids) == 0 {
		return []models.Location{}, nil
	}
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = ANY($1) AND deleted_at IS NULL`
	var locations []models.Location
	if err := r.db.SelectContext(ctx, &locations, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find locations by ids: %w", err)
	}
	return locations, nil
}

func (r *LocationRepository) Create(ctx context.Context, location *models.Location) error {
	stampNew(&location.Auditable)
	const query = `INSERT INTO locations (id, version, created_at, updated_at, name, description, address_line1, address_line2, city, state, postal_code, country, latitude, longitude, location_type)
		VALUES (:id, :version, :created_at, :updated_at, :name, :description, :address_line1, :address_line2, :city, :state, :postal_code, :country, :latitude, :longitude, :location_type)`
	if _, err := r.db.NamedExecContext(ctx, query, location); err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

func (r *LocationRepository) Update(ctx context.Context, location *models.Location) error {
	location.UpdatedAt = time.Now().UTC()
	const query = `UPDATE locations SET name = :name, description = :description, address_line1 = :address_line1, address_line2 = :address_line2, city = :city, state = :state, postal_code = :postal_code, country = :country, latitude = :latitude, longitude = :longitude, location_type = :location_type, updated_at = :updated_at, version = version + 1
		WHERE id = :id AND version = :version AND deleted_at IS NULL`
	res, err := r.db.NamedExecContext(ctx, query, location)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if err := checkVersioned(res, "update location"); err != nil {
		return err
	}
	location.Version++
	return nil
}

func (r *LocationRepository) SoftDelete(ctx context.Context, id string, version int64) error {
	return softDeleteRow(ctx, r.db, "locations", id, version)
}
