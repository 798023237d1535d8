package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dancepractice/practice-api/internal/models"
)

const abuseReportColumns = auditColumns + ", reporter_id, reported_user_id, session_id, category, status, description, admin_notes, handled_at"

// AbuseReportRepository persists moderation reports.
type AbuseReportRepository struct {
	db *sqlx.DB
}

func NewAbuseReportRepository(db *sqlx.DB) *AbuseReportRepository {
	return &AbuseReportRepository{db: db}
}

func (r *AbuseReportRepository) Create(ctx context.Context, report *models.AbuseReport) error {
	stampNew(&report.Auditable)
	const query = `INSERT INTO abuse_reports (id, version, created_at, updated_at, reporter_id, reported_user_id, session_id, category, status, description, admin_notes, handled_at)
		VALUES (:id, :version, :created_at, :updated_at, :reporter_id, :reported_user_id, :session_id, :category, :status, :description, :admin_notes, :handled_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("create abuse report: %w", err)
	}
	return nil
}

func (r *AbuseReportRepository) FindByID(ctx context.Context, id string) (*models.AbuseReport, error) {
	query := `SELECT ` + abuseReportColumns + ` FROM abuse_reports WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	var report models.AbuseReport
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find abuse report: %w", err)
	}
	return &report, nil
}

// Update stores moderation fields guarded by the current version.
func (r *AbuseReportRepository) Update(ctx context.Context, report *models.AbuseReport) error {
	report.UpdatedAt = time.Now().UTC()
	const query = `UPDATE abuse_reports SET status = :status, admin_notes = :admin_notes, handled_at = :handled_at, updated_at = :updated_at, version = version + 1
		WHERE id = :id AND version = :version AND deleted_at IS NULL`
	res, err := r.db.NamedExecContext(ctx, query, report)
	if err != nil {
		return fmt.Errorf("update abuse report: %w", err)
	}
	if err := checkVersioned(res, "update abuse report"); err != nil {
		return err
	}
	report.Version++
	return nil
}

// ListByStatus returns reports in the given status, newest first.
func (r *AbuseReportRepository) ListByStatus(ctx context.Context, status models.AbuseReportStatus) ([]models.AbuseReport, error) {
	query := `SELECT ` + abuseReportColumns + ` FROM abuse_reports WHERE status = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	var reports []models.AbuseReport
	if err := r.db.SelectContext(ctx, &reports, query, status); err != nil {
		return nil, fmt.Errorf("list abuse reports: %w", err)
	}
	return reports, nil
}
