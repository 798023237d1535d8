package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/internal/validation"
	appErrors "github.com/dancepractice/practice-api/pkg/errors"
)

type userRepository interface {
	userLookup
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateStatus(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id string, version int64) error
	ListBlocked(ctx context.Context, userID string) ([]models.User, error)
	Block(ctx context.Context, userID, blockedID string) error
	Unblock(ctx context.Context, userID, blockedID string) error
	ListSchedulePreferenceIDs(ctx context.Context, userIDs []string) (map[string][]string, error)
}

// UserService handles dancer profile workflows.
type UserService struct {
	repo      userRepository
	locations locationLookup
	cache     *CacheService
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, locations locationLookup, cache *CacheService, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	return &UserService{repo: repo, locations: locations, cache: cache, validator: validate, metrics: metrics, logger: logger}
}

// List returns a page of users and pagination metadata.
func (s *UserService) List(ctx context.Context, query dto.UserListQuery) ([]dto.UserResponse, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, invalidPayload(err, "invalid user query")
	}

	page, pageSize := models.PageBounds(query.Page, query.Limit)
	filter := models.UserFilter{
		Search:    strings.TrimSpace(query.Search),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	}
	if query.Role != "" {
		role := models.UserRole(query.Role)
		filter.Role = &role
	}
	if query.AccountStatus != "" {
		status := models.AccountStatus(query.AccountStatus)
		filter.AccountStatus = &status
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list users")
	}

	responses, err := s.toResponses(ctx, users)
	if err != nil {
		return nil, nil, err
	}
	return responses, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := loadUser(ctx, s.repo, id, "user not found")
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, *user)
}

// Create registers a new dancer profile.
func (s *UserService) Create(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid user payload")
	}

	user := &models.User{
		ProfileVisible:       true,
		PrimaryRole:          models.PrimaryRoleLead,
		CompetitivenessLevel: 3,
		WsdcLevel:            models.LevelNewcomer,
		AccountStatus:        models.AccountActive,
		AuthUserID:           req.AuthUserID,
	}
	if err := s.apply(ctx, user, req); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, writeFailed(err, "failed to create user")
	}
	s.metrics.RecordEvent(EventUserCreated)
	s.logger.Info("user created", zap.String("user_id", user.ID))
	return s.toResponse(ctx, *user)
}

// Update replaces the mutable profile fields.
func (s *UserService) Update(ctx context.Context, id string, req dto.UserRequest) (*dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid user payload")
	}

	user, err := loadUser(ctx, s.repo, id, "user not found")
	if err != nil {
		return nil, err
	}

	if req.AuthUserID != nil {
		if user.AuthUserID != nil && *user.AuthUserID != *req.AuthUserID {
			return nil, invalid("auth user id cannot be changed once set")
		}
		user.AuthUserID = req.AuthUserID
	}
	if err := s.apply(ctx, user, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, writeFailed(err, "failed to update user")
	}
	s.invalidateSessions(ctx)
	return s.toResponse(ctx, *user)
}

// UpdateStatus sets only the account status.
func (s *UserService) UpdateStatus(ctx context.Context, id string, req dto.UserStatusRequest) (*dto.UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalidPayload(err, "invalid account status")
	}
	user, err := loadUser(ctx, s.repo, id, "user not found")
	if err != nil {
		return nil, err
	}
	user.AccountStatus = models.AccountStatus(req.AccountStatus)
	if err := s.repo.UpdateStatus(ctx, user); err != nil {
		return nil, writeFailed(err, "failed to update account status")
	}
	s.invalidateSessions(ctx)
	s.logger.Info("account status changed", zap.String("user_id", id), zap.String("status", req.AccountStatus))
	return s.toResponse(ctx, *user)
}

// Delete soft deletes a user.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := loadUser(ctx, s.repo, id, "user not found")
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, user.Version); err != nil {
		return writeFailed(err, "failed to delete user")
	}
	s.invalidateSessions(ctx)
	return nil
}

// invalidateSessions drops cached sessions, which embed organizer and participant summaries.
func (s *UserService) invalidateSessions(ctx context.Context) {
	s.cache.Invalidate(ctx, cacheKeySessions+"*")
}

// ListBlocked returns summaries of the users blocked by id.
func (s *UserService) ListBlocked(ctx context.Context, id string) ([]dto.UserSummary, error) {
	if _, err := loadUser(ctx, s.repo, id, "user not found"); err != nil {
		return nil, err
	}
	blocked, err := s.repo.ListBlocked(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list blocked users")
	}
	summaries := make([]dto.UserSummary, 0, len(blocked))
	for _, user := range blocked {
		summaries = append(summaries, toUserSummary(user))
	}
	return summaries, nil
}

// Block hides blockedID from id. Blocking twice is a no-op.
func (s *UserService) Block(ctx context.Context, id, blockedID string) error {
	if id == blockedID {
		return invalid("users cannot block themselves")
	}
	if _, err := loadUser(ctx, s.repo, id, "user not found"); err != nil {
		return err
	}
	if _, err := loadUser(ctx, s.repo, blockedID, "blocked user not found"); err != nil {
		return err
	}
	if err := s.repo.Block(ctx, id, blockedID); err != nil {
		return appErrors.Internal(err, "failed to block user")
	}
	return nil
}

// Unblock lifts a block if one exists.
func (s *UserService) Unblock(ctx context.Context, id, blockedID string) error {
	if _, err := loadUser(ctx, s.repo, id, "user not found"); err != nil {
		return err
	}
	if err := s.repo.Unblock(ctx, id, blockedID); err != nil {
		return appErrors.Internal(err, "failed to unblock user")
	}
	return nil
}

// apply copies the request onto user, keeping current values for omitted optional fields.
func (s *UserService) apply(ctx context.Context, user *models.User, req dto.UserRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.repo.ExistsByEmail(ctx, email, user.ID)
	if err != nil {
		return appErrors.Internal(err, "failed to check email uniqueness")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "email already exists")
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.DisplayName = req.DisplayName
	user.Email = email
	user.Bio = req.Bio
	user.DanceGoals = req.DanceGoals
	user.ProfileVisible = derefOr(req.ProfileVisible, user.ProfileVisible)
	user.CompetitivenessLevel = derefOr(req.CompetitivenessLevel, user.CompetitivenessLevel)
	if req.PrimaryRole != "" {
		user.PrimaryRole = models.PrimaryRole(req.PrimaryRole)
	}
	if req.WsdcSkillLevel != "" {
		user.WsdcLevel = models.WsdcSkillLevel(req.WsdcSkillLevel)
	}
	if req.AccountStatus != "" {
		user.AccountStatus = models.AccountStatus(req.AccountStatus)
	}

	user.BirthDate = nil
	if req.BirthDate != nil {
		birthDate, err := time.Parse(dateLayout, *req.BirthDate)
		if err != nil {
			return invalid("birth date must be formatted as YYYY-MM-DD")
		}
		user.BirthDate = &birthDate
	}

	user.Roles = stringArray(req.Roles)
	if len(user.Roles) == 0 {
		user.Roles = stringArray([]string{string(models.RoleDancer)})
	}
	user.NotificationChannels = stringArray(req.NotificationChannels)

	user.HomeLocationID = nil
	if req.HomeLocationID != nil {
		location, err := loadLocation(ctx, s.locations, *req.HomeLocationID)
		if err != nil {
			return err
		}
		user.HomeLocationID = &location.ID
	}
	return nil
}

func (s *UserService) toResponse(ctx context.Context, user models.User) (*dto.UserResponse, error) {
	responses, err := s.toResponses(ctx, []models.User{user})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *UserService) toResponses(ctx context.Context, users []models.User) ([]dto.UserResponse, error) {
	userIDs := make([]string, 0, len(users))
	var locationIDs []string
	for _, user := range users {
		userIDs = append(userIDs, user.ID)
		if user.HomeLocationID != nil {
			locationIDs = append(locationIDs, *user.HomeLocationID)
		}
	}

	preferenceIDs, err := s.repo.ListSchedulePreferenceIDs(ctx, userIDs)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load schedule preferences")
	}
	homes := map[string]models.Location{}
	if len(locationIDs) > 0 {
		if homes, err = locationsByID(ctx, s.locations, locationIDs); err != nil {
			return nil, err
		}
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		var home *models.Location
		if user.HomeLocationID != nil {
			if location, ok := homes[*user.HomeLocationID]; ok {
				home = &location
			}
		}
		responses = append(responses, toUserResponse(user, home, preferenceIDs[user.ID]))
	}
	return responses, nil
}

// isNoRows is shared by services that translate lookups themselves.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
