package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dancepractice/practice-api/internal/models"
)

const auditColumns = "id, version, created_at, updated_at, deleted_at"

// stampNew fills identity and audit fields on an entity about to be inserted.
func stampNew(a *models.Auditable) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	a.Version = 0
	a.DeletedAt = nil
}

// checkVersioned turns a zero-row optimistic write into ErrStaleVersion.
func checkVersioned(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return models.ErrStaleVersion
	}
	return nil
}

func softDeleteRow(ctx context.Context, db sqlx.ExecerContext, table, id string, version int64) error {
	query := fmt.Sprintf(`UPDATE %s SET deleted_at = $3, updated_at = $3, version = version + 1 WHERE id = $1 AND version = $2 AND deleted_at IS NULL`, table)
	res, err := db.ExecContext(ctx, query, id, version, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}
	return checkVersioned(res, "soft delete "+table)
}

// withTx runs fn inside a transaction, rolling back when fn or commit fails.
func withTx(ctx context.Context, db *sqlx.DB, op string, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", op, err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern using ESCAPE '\'.
func escapeLike(raw string) string {
	return likeEscaper.Replace(raw)
}
