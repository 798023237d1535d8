package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dancepractice/practice-api/internal/models"
)

const sessionNoteColumns = auditColumns + ", session_id, author_id, content, visibility, tags, media_urls"

// SessionNoteRepository persists notes attached to sessions.
type SessionNoteRepository struct {
	db *sqlx.DB
}

func NewSessionNoteRepository(db *sqlx.DB) *SessionNoteRepository {
	return &SessionNoteRepository{db: db}
}

func (r *SessionNoteRepository) Create(ctx context.Context, note *models.SessionNote) error {
	stampNew(&note.Auditable)
	const query = `INSERT INTO session_notes (id, version, created_at, updated_at, session_id, author_id, content, visibility, tags, media_urls)
		VALUES (:id, :version, :created_at, :updated_at, :session_id, :author_id, :content, :visibility, :tags, :media_urls)`
	if _, err := r.db.NamedExecContext(ctx, query, note); err != nil {
		return fmt.Errorf("create session note: %w", err)
	}
	return nil
}

func (r *SessionNoteRepository) FindByID(ctx context.Context, id string) (*models.SessionNote, error) {
	query := `SELECT ` + sessionNoteColumns + ` FROM session_notes WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	var note models.SessionNote
	if err := r.db.GetContext(ctx, &note, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find session note: %w", err)
	}
	return &note, nil
}

// ListBySession returns a session's notes, oldest first.
func (r *SessionNoteRepository) ListBySession(ctx context.Context, sessionID string) ([]models.SessionNote, error) {
	query := `SELECT ` + sessionNoteColumns + ` FROM session_notes WHERE session_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	var notes []models.SessionNote
	if err := r.db.SelectContext(ctx, &notes, query, sessionID); err != nil {
		return nil, fmt.Errorf("list session notes: %w", err)
	}
	return notes, nil
}

func (r *SessionNoteRepository) SoftDelete(ctx context.Context, id string, version int64) error {
	return softDeleteRow(ctx, r.db, "session_notes", id, version)
}
