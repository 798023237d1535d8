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

const sessionColumns = auditColumns + ", title, session_type, status, scheduled_start, scheduled_end, capacity, visibility, organizer_id, location_id, focus_areas"

// SessionRepository persists practice sessions and their participant sets.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// FindByID returns a live session.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find session by id: %w", err)
	}
	return &session, nil
}

// ListByOrganizer returns the organizer's sessions in start order.
func (r *SessionRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE organizer_id = $1 AND deleted_at IS NULL ORDER BY scheduled_start`
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, organizerID); err != nil {
		return nil, fmt.Errorf("list sessions by organizer: %w", err)
	}
	return sessions, nil
}

// ListBetween returns sessions starting within [from, to].
func (r *SessionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE scheduled_start BETWEEN $1 AND $2 AND deleted_at IS NULL ORDER BY scheduled_start`
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, from, to); err != nil {
		return nil, fmt.Errorf("list sessions between: %w", err)
	}
	return sessions, nil
}

// Create inserts the session together with its participants.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session, participantIDs []string) error {
	stampNew(&session.Auditable)
	const query = `INSERT INTO sessions (id, version, created_at, updated_at, title, session_type, status, scheduled_start, scheduled_end, capacity, visibility, organizer_id, location_id, focus_areas)
		VALUES (:id, :version, :created_at, :updated_at, :title, :session_type, :status, :scheduled_start, :scheduled_end, :capacity, :visibility, :organizer_id, :location_id, :focus_areas)`

	return withTx(ctx, r.db, "create session", func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return insertParticipants(ctx, tx, session.ID, participantIDs)
	})
}

// Update writes the session and replaces its participant set in one transaction.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session, participantIDs []string) error {
	session.UpdatedAt = time.Now().UTC()
	const query = `UPDATE sessions SET title = :title, session_type = :session_type, status = :status, scheduled_start = :scheduled_start, scheduled_end = :scheduled_end, capacity = :capacity, visibility = :visibility, organizer_id = :organizer_id, location_id = :location_id, focus_areas = :focus_areas, updated_at = :updated_at, version = version + 1
		WHERE id = :id AND version = :version AND deleted_at IS NULL`

	err := withTx(ctx, r.db, "update session", func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, query, session)
		if err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if err := checkVersioned(res, "update session"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM session_participants WHERE session_id = $1`, session.ID); err != nil {
			return fmt.Errorf("clear session participants: %w", err)
		}
		return insertParticipants(ctx, tx, session.ID, participantIDs)
	})
	if err != nil {
		return err
	}
	session.Version++
	return nil
}

// UpdateStatus changes only the lifecycle status.
func (r *SessionRepository) UpdateStatus(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()
	const query = `UPDATE sessions SET status = $3, updated_at = $4, version = version + 1 WHERE id = $1 AND version = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, session.ID, session.Version, session.Status, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update session status: %w", err)
	}
	if err := checkVersioned(res, "update session status"); err != nil {
		return err
	}
	session.Version++
	return nil
}

// ListParticipants returns live participants of the given sessions in join order.
func (r *SessionRepository) ListParticipants(ctx context.Context, sessionIDs []string) ([]models.SessionParticipant, error) {
	if len(sessionIDs) == 0 {
		return []models.SessionParticipant{}, nil
	}
	const query = `SELECT sp.session_id, sp.user_id FROM session_participants sp JOIN users u ON u.id = sp.user_id
		WHERE sp.session_id = ANY($1) AND u.deleted_at IS NULL ORDER BY sp.joined_at, sp.user_id`
	var participants []models.SessionParticipant
	if err := r.db.SelectContext(ctx, &participants, query, pq.Array(sessionIDs)); err != nil {
		return nil, fmt.Errorf("list session participants: %w", err)
	}
	return participants, nil
}

// AddParticipant links a user to a session. Re-adding an existing participant is a no-op.
func (r *SessionRepository) AddParticipant(ctx context.Context, sessionID, userID string) error {
	const query = `INSERT INTO session_participants (session_id, user_id, joined_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, sessionID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("add session participant: %w", err)
	}
	return nil
}

// RemoveParticipant unlinks a user from a session.
func (r *SessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID string) error {
	const query = `DELETE FROM session_participants WHERE session_id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, sessionID, userID); err != nil {
		return fmt.Errorf("remove session participant: %w", err)
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sqlx.Tx, sessionID string, userIDs []string) error {
	now := time.Now().UTC()
	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO session_participants (session_id, user_id, joined_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, sessionID, userID, now); err != nil {
			return fmt.Errorf("insert session participant: %w", err)
		}
	}
	return nil
}
