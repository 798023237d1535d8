package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dancepractice/practice-api/internal/dto"
	"github.com/dancepractice/practice-api/internal/models"
	"github.com/dancepractice/practice-api/pkg/response"
)

type userService interface {
	List(ctx context.Context, query dto.UserListQuery) ([]dto.UserResponse, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.UserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req dto.UserRequest) (*dto.UserResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UserStatusRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
	ListBlocked(ctx context.Context, id string) ([]dto.UserSummary, error)
	Block(ctx context.Context, id, blockedID string) error
	Unblock(ctx context.Context, id, blockedID string) error
}

// UserHandler handles dancer profile endpoints.
type UserHandler struct {
	service userService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List users
// @Description List users with pagination and filtering
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param role query string false "Role filter"
// @Param accountStatus query string false "Account status filter"
// @Param search query string false "Search term"
// @Param sortBy query string false "Sort by"
// @Param sortOrder query string false "Sort order"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserListQuery
	if !bindQuery(c, &query) {
		return
	}

	users, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, users, pagination)
}

// Get godoc
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user, nil)
}

// Create godoc
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body dto.UserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.UserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, user)
}

// Update godoc
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.UserRequest true "User payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user, nil)
}

// UpdateStatus godoc
// @Summary Change account status
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.UserStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UserStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user, nil)
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListBlocked godoc
// @Summary List blocked users
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/blocks [get]
func (h *UserHandler) ListBlocked(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	blocked, err := h.service.ListBlocked(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, blocked, nil)
}

// Block godoc
// @Summary Block a user
// @Tags Users
// @Param id path string true "User ID"
// @Param blockedId path string true "Blocked user ID"
// @Success 204
// @Router /users/{id}/blocks/{blockedId} [put]
func (h *UserHandler) Block(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	blockedID, ok := pathID(c, "blockedId")
	if !ok {
		return
	}

	if err := h.service.Block(c.Request.Context(), id, blockedID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Unblock godoc
// @Summary Unblock a user
// @Tags Users
// @Param id path string true "User ID"
// @Param blockedId path string true "Blocked user ID"
// @Success 204
// @Router /users/{id}/blocks/{blockedId} [delete]
func (h *UserHandler) Unblock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	blockedID, ok := pathID(c, "blockedId")
	if !ok {
		return
	}

	if err := h.service.Unblock(c.Request.Context(), id, blockedID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
