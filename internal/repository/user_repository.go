package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dancepractice/practice-api/internal/models"
)

const userColumns = auditColumns + ", first_name, last_name, display_name, email, bio, dance_goals, birth_date, profile_visible, primary_role, competitiveness_level, wsdc_level, account_status, auth_user_id, home_location_id, roles, notification_channels"

// UserRepository provides database access for dancer profiles.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a live user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindByIDs returns the live users among ids. Missing ids are silently skipped.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) AND deleted_at IS NULL`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	return users, nil
}

// ExistsByEmail reports whether another live user already uses email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND ($2 = '' OR id::text <> $2) AND deleted_at IS NULL)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, excludeID); err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return exists, nil
}

// List returns users based on filters with total count.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	baseQuery := `FROM users WHERE deleted_at IS NULL`
	var conditions []string
	var args []interface{}

	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(roles)", len(args)+1))
		args = append(args, string(*filter.Role))
	}
	if filter.AccountStatus != nil {
		conditions = append(conditions, fmt.Sprintf("account_status = $%d", len(args)+1))
		args = append(args, string(*filter.AccountStatus))
	}
	if filter.Search != "" {
		n := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%[1]d ESCAPE '\\' OR LOWER(last_name) LIKE $%[1]d ESCAPE '\\' OR LOWER(COALESCE(display_name, '')) LIKE $%[1]d ESCAPE '\\' OR LOWER(email) LIKE $%[1]d ESCAPE '\\')", n))
		args = append(args, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"email":      true,
		"first_name": true,
		"last_name":  true,
	}
	sortBy := filter.SortBy
	if !allowedSorts[sortBy] {
		sortBy = "created_at"
	}

	sortOrder := strings.ToUpper(filter.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "DESC"
	}

	page, pageSize := models.PageBounds(filter.Page, filter.PageSize)
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", userColumns, baseQuery, sortBy, sortOrder, pageSize, offset)

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	return users, total, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	stampNew(&user.Auditable)
	const query = `INSERT INTO users (id, version, created_at, updated_at, first_name, last_name, display_name, email, bio, dance_goals, birth_date, profile_visible, primary_role, competitiveness_level, wsdc_level, account_status, auth_user_id, home_location_id, roles, notification_channels)
		VALUES (:id, :version, :created_at, :updated_at, :first_name, :last_name, :display_name, :email, :bio, :dance_goals, :birth_date, :profile_visible, :primary_role, :competitiveness_level, :wsdc_level, :account_status, :auth_user_id, :home_location_id, :roles, :notification_channels)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update writes every mutable column guarded by the current version.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET first_name = :first_name, last_name = :last_name, display_name = :display_name, email = :email, bio = :bio, dance_goals = :dance_goals, birth_date = :birth_date, profile_visible = :profile_visible, primary_role = :primary_role, competitiveness_level = :competitiveness_level, wsdc_level = :wsdc_level, account_status = :account_status, auth_user_id = :auth_user_id, home_location_id = :home_location_id, roles = :roles, notification_channels = :notification_channels, updated_at = :updated_at, version = version + 1
		WHERE id = :id AND version = :version AND deleted_at IS NULL`
	res, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if err := checkVersioned(res, "update user"); err != nil {
		return err
	}
	user.Version++
	return nil
}

// UpdateStatus changes only the account status.
func (r *UserRepository) UpdateStatus(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	const query = `UPDATE users SET account_status = $3, updated_at = $4, version = version + 1 WHERE id = $1 AND version = $2 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, user.ID, user.Version, user.AccountStatus, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if err := checkVersioned(res, "update user status"); err != nil {
		return err
	}
	user.Version++
	return nil
}

// SoftDelete marks the user deleted.
func (r *UserRepository) SoftDelete(ctx context.Context, id string, version int64) error {
	return softDeleteRow(ctx, r.db, "users", id, version)
}

// ListBlocked returns the live users blocked by userID.
func (r *UserRepository) ListBlocked(ctx context.Context, userID string) ([]models.User, error) {
	query := `SELECT ` + prefixColumns("u", userColumns) + ` FROM user_blocks b JOIN users u ON u.id = b.blocked_user_id
		WHERE b.user_id = $1 AND u.deleted_at IS NULL ORDER BY b.created_at`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, fmt.Errorf("list blocked users: %w", err)
	}
	return users, nil
}

// Block records that userID blocked blockedID. Repeated blocks are no-ops.
func (r *UserRepository) Block(ctx context.Context, userID, blockedID string) error {
	const query = `INSERT INTO user_blocks (user_id, blocked_user_id, created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID, blockedID, time.Now().UTC()); err != nil {
		return fmt.Errorf("block user: %w", err)
	}
	return nil
}

// Unblock removes a block if present.
func (r *UserRepository) Unblock(ctx context.Context, userID, blockedID string) error {
	const query = `DELETE FROM user_blocks WHERE user_id = $1 AND blocked_user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, blockedID); err != nil {
		return fmt.Errorf("unblock user: %w", err)
	}
	return nil
}

// ListSchedulePreferenceIDs maps each user id to the ids of their live schedule preferences.
func (r *UserRepository) ListSchedulePreferenceIDs(ctx context.Context, userIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	const query = `SELECT user_id, id FROM schedule_preferences WHERE user_id = ANY($1) AND deleted_at IS NULL ORDER BY created_at`
	var rows []struct {
		UserID string `db:"user_id"`
		ID     string `db:"id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(userIDs)); err != nil {
		return nil, fmt.Errorf("list schedule preference ids: %w", err)
	}
	for _, row := range rows {
		result[row.UserID] = append(result[row.UserID], row.ID)
	}
	return result, nil
}

func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
