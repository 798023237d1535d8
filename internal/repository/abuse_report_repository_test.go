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

func TestAbuseReportRepositoryListByStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAbuseReportRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(columns(abuseReportColumns)).
		AddRow("r-1", 0, now, now, nil, "u-1", "u-2", nil, "HARASSMENT", "OPEN", "Rude at social", nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM abuse_reports WHERE status = $1 AND deleted_at IS NULL ORDER BY created_at DESC")).
		WithArgs(string(models.ReportOpen)).
		WillReturnRows(rows)

	reports, err := repo.ListByStatus(context.Background(), models.ReportOpen)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	require.NotNil(t, reports[0].ReportedUserID)
	assert.Equal(t, "u-2", *reports[0].ReportedUserID)
	assert.Nil(t, reports[0].SessionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAbuseReportRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAbuseReportRepository(db)

	mock.ExpectExec("UPDATE abuse_reports SET status").WillReturnResult(sqlmock.NewResult(0, 1))

	handled := time.Now().UTC()
	report := &models.AbuseReport{Auditable: models.Auditable{ID: "r-1", Version: 0}, Status: models.ReportResolved, HandledAt: &handled}
	require.NoError(t, repo.Update(context.Background(), report))
	assert.Equal(t, int64(1), report.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}
