package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancepractice/practice-api/internal/models"
)

func userRow(rows *sqlmock.Rows, id, email string, version int64) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, version, now, now, nil, "Ada", "Lovelace", nil, email, nil, nil, nil, true,
		"LEAD", 3, "NEWCOMER", "ACTIVE", nil, nil, "{DANCER}", "{}")
}

func TestUserRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := userRow(sqlmock.NewRows(columns(userColumns)), "u-1", "ada@example.com", 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE id = $1 AND deleted_at IS NULL LIMIT 1")).
		WithArgs("u-1").
		WillReturnRows(rows)

	user, err := repo.FindByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, int64(2), user.Version)
	assert.Equal(t, []string{"DANCER"}, []string(user.Roles))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("FROM users WHERE id").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	role := models.RoleInstructor
	status := models.AccountActive
	filter := models.UserFilter{Role: &role, AccountStatus: &status, Search: "Ada", Page: 2, PageSize: 10}

	where := "FROM users WHERE deleted_at IS NULL AND $1 = ANY(roles) AND account_status = $2 AND (LOWER(first_name) LIKE $3"
	mock.ExpectQuery(regexp.QuoteMeta(where) + ".*" + regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 10 OFFSET 10")).
		WithArgs("INSTRUCTOR", "ACTIVE", "%ada%").
		WillReturnRows(userRow(sqlmock.NewRows(columns(userColumns)), "u-1", "ada@example.com", 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) " + where)).
		WithArgs("INSTRUCTOR", "ACTIVE", "%ada%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	users, total, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 11, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListEscapesSearchWildcards(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	where := `FROM users WHERE deleted_at IS NULL AND (LOWER(first_name) LIKE $1 ESCAPE '\' OR`
	mock.ExpectQuery(regexp.QuoteMeta(where)).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows(columns(userColumns)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) " + where)).
		WithArgs(`%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	users, total, err := repo.List(context.Background(), models.UserFilter{Search: "50%_OFF", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListDefaults(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE deleted_at IS NULL ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(columns(userColumns)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE deleted_at IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	users, total, err := repo.List(context.Background(), models.UserFilter{SortBy: "password; DROP TABLE users"})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateStampsAudit(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Zero(t, user.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateStaleVersion(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET first_name").WillReturnResult(sqlmock.NewResult(0, 0))

	user := &models.User{Auditable: models.Auditable{ID: "u-1", Version: 3}}
	err := repo.Update(context.Background(), user)
	assert.ErrorIs(t, err, models.ErrStaleVersion)
	assert.Equal(t, int64(3), user.Version)
}

func TestUserRepositoryUpdateBumpsVersion(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET first_name").WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{Auditable: models.Auditable{ID: "u-1", Version: 3}}
	require.NoError(t, repo.Update(context.Background(), user))
	assert.Equal(t, int64(4), user.Version)
}

func TestUserRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET deleted_at = $3, updated_at = $3, version = version + 1 WHERE id = $1 AND version = $2 AND deleted_at IS NULL")).
		WithArgs("u-1", int64(1), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), "u-1", 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1)")).
		WithArgs("Ada@Example.com", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "Ada@Example.com", "")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepositoryBlocks(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_blocks (user_id, blocked_user_id, created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING")).
		WithArgs("u-1", "u-2", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_blocks b JOIN users u ON u.id = b.blocked_user_id")).
		WithArgs("u-1").
		WillReturnRows(userRow(sqlmock.NewRows(columns(userColumns)), "u-2", "grace@example.com", 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_blocks WHERE user_id = $1 AND blocked_user_id = $2")).
		WithArgs("u-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, repo.Block(ctx, "u-1", "u-2"))
	blocked, err := repo.ListBlocked(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, "u-2", blocked[0].ID)
	require.NoError(t, repo.Unblock(ctx, "u-1", "u-2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByIDsEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	users, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrefixColumns(t *testing.T) {
	assert.Equal(t, "u.id, u.version", prefixColumns("u", "id, version"))
}

func TestUserRepositoryListSchedulePreferenceIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, id FROM schedule_preferences WHERE user_id = ANY($1) AND deleted_at IS NULL")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "id"}).AddRow("u-1", "p-1").AddRow("u-1", "p-2"))

	ids, err := repo.ListSchedulePreferenceIDs(context.Background(), []string{"u-1", "u-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "p-2"}, ids["u-1"])
	assert.Empty(t, ids["u-2"])
}
