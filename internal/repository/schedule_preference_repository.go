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

const schedulePreferenceColumns = auditColumns + ", user_id, location_note, max_travel_distance_km, notes, preferred_roles, preferred_levels, preferred_focus_areas"

// SchedulePreferenceRepository persists preferences with their windows and preferred locations.
type SchedulePreferenceRepository struct {
	db *sqlx.DB
}

// NewSchedulePreferenceRepository constructs the repository.
func NewSchedulePreferenceRepository(db *sqlx.DB) *SchedulePreferenceRepository {
	return &SchedulePreferenceRepository{db: db}
}

// ListByUser returns the user's live preferences, oldest first.
func (r *SchedulePreferenceRepository) ListByUser(ctx context.Context, userID string) ([]models.SchedulePreference, error) {
	query := `SELECT ` + schedulePreferenceColumns + ` FROM schedule_preferences WHERE user_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	var prefs []models.SchedulePreference
	if err := r.db.SelectContext(ctx, &prefs, query, userID); err != nil {
		return nil, fmt.Errorf("list schedule preferences: %w", err)
	}
	return prefs, nil
}

// FindByID returns a live preference regardless of owner.
func (r *SchedulePreferenceRepository) FindByID(ctx context.Context, id string) (*models.SchedulePreference, error) {
	query := `SELECT ` + schedulePreferenceColumns + ` FROM schedule_preferences WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	var pref models.SchedulePreference
	if err := r.db.GetContext(ctx, &pref, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule preference: %w", err)
	}
	return &pref, nil
}

// Create inserts the preference, its windows and its location links atomically.
func (r *SchedulePreferenceRepository) Create(ctx context.Context, pref *models.SchedulePreference, windows []models.AvailabilityWindow, locationIDs []string) error {
	stampNew(&pref.Auditable)
	const query = `INSERT INTO schedule_preferences (id, version, created_at, updated_at, user_id, location_note, max_travel_distance_km, notes, preferred_roles, preferred_levels, preferred_focus_areas)
		VALUES (:id, :version, :created_at, :updated_at, :user_id, :location_note, :max_travel_distance_km, :notes, :preferred_roles, :preferred_levels, :preferred_focus_areas)`

	return withTx(ctx, r.db, "create schedule preference", func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, pref); err != nil {
			return fmt.Errorf("create schedule preference: %w", err)
		}
		return insertPreferenceChildren(ctx, tx, pref.ID, windows, locationIDs)
	})
}

// Update rewrites the preference and replaces its windows and location links atomically.
func (r *SchedulePreferenceRepository) Update(ctx context.Context, pref *models.SchedulePreference, windows []models.AvailabilityWindow, locationIDs []string) error {
	pref.UpdatedAt = time.Now().UTC()
	const query = `UPDATE schedule_preferences SET location_note = :location_note, max_travel_distance_km = :max_travel_distance_km, notes = :notes, preferred_roles = :preferred_roles, preferred_levels = :preferred_levels, preferred_focus_areas = :preferred_focus_areas, updated_at = :updated_at, version = version + 1
		WHERE id = :id AND version = :version AND deleted_at IS NULL`

	err := withTx(ctx, r.db, "update schedule preference", func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, query, pref)
		if err != nil {
			return fmt.Errorf("update schedule preference: %w", err)
		}
		if err := checkVersioned(res, "update schedule preference"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_preference_windows WHERE preference_id = $1`, pref.ID); err != nil {
			return fmt.Errorf("clear availability windows: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_preference_locations WHERE preference_id = $1`, pref.ID); err != nil {
			return fmt.Errorf("clear preferred locations: %w", err)
		}
		return insertPreferenceChildren(ctx, tx, pref.ID, windows, locationIDs)
	})
	if err != nil {
		return err
	}
	pref.Version++
	return nil
}

func (r *SchedulePreferenceRepository) SoftDelete(ctx context.Context, id string, version int64) error {
	return softDeleteRow(ctx, r.db, "schedule_preferences", id, version)
}

// ListWindows returns the windows of the given preferences ordered Monday first.
func (r *SchedulePreferenceRepository) ListWindows(ctx context.Context, preferenceIDs []string) ([]models.AvailabilityWindow, error) {
	if len(preferenceIDs) == 0 {
		return []models.AvailabilityWindow{}, nil
	}
	const query = `SELECT preference_id, day_of_week, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time
		FROM schedule_preference_windows WHERE preference_id = ANY($1)
		ORDER BY preference_id, array_position(ARRAY['MONDAY','TUESDAY','WEDNESDAY','THURSDAY','FRIDAY','SATURDAY','SUNDAY']::text[], day_of_week::text), start_time`
	var windows []models.AvailabilityWindow
	if err := r.db.SelectContext(ctx, &windows, query, pq.Array(preferenceIDs)); err != nil {
		return nil, fmt.Errorf("list availability windows: %w", err)
	}
	return windows, nil
}

// ListLocationLinks returns the live preferred locations of the given preferences.
func (r *SchedulePreferenceRepository) ListLocationLinks(ctx context.Context, preferenceIDs []string) ([]models.PreferenceLocation, error) {
	if len(preferenceIDs) == 0 {
		return []models.PreferenceLocation{}, nil
	}
	const query = `SELECT spl.preference_id, spl.location_id FROM schedule_preference_locations spl JOIN locations l ON l.id = spl.location_id
		WHERE spl.preference_id = ANY($1) AND l.deleted_at IS NULL ORDER BY l.name`
	var links []models.PreferenceLocation
	if err := r.db.SelectContext(ctx, &links, query, pq.Array(preferenceIDs)); err != nil {
		return nil, fmt.Errorf("list preferred locations: %w", err)
	}
	return links, nil
}

func insertPreferenceChildren(ctx context.Context, tx *sqlx.Tx, preferenceID string, windows []models.AvailabilityWindow, locationIDs []string) error {
	for _, window := range windows {
		payload := window
		payload.PreferenceID = preferenceID
		if _, err := tx.NamedExecContext(ctx, `INSERT INTO schedule_preference_windows (preference_id, day_of_week, start_time, end_time) VALUES (:preference_id, :day_of_week, :start_time, :end_time) ON CONFLICT DO NOTHING`, &payload); err != nil {
			return fmt.Errorf("insert availability window: %w", err)
		}
	}
	for _, locationID := range locationIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO schedule_preference_locations (preference_id, location_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, preferenceID, locationID); err != nil {
			return fmt.Errorf("insert preferred location: %w", err)
		}
	}
	return nil
}
