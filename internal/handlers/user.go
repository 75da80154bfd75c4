package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskflow-hq/taskflow-api/internal/errors"
	"github.com/taskflow-hq/taskflow-api/internal/models"
	"github.com/taskflow-hq/taskflow-api/internal/services"
)

// UserHandler coordinates user-related HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a new user and subscribes them to notifications.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		ID       string          `json:"id" binding:"required"`
		Email    string          `json:"email" binding:"required"`
		Role     models.UserRole `json:"role" binding:"required"`
		Username string          `json:"username"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "User ID, email, and role are required")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		ID:       req.ID,
		Email:    req.Email,
		Role:     req.Role,
		Username: req.Username,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully and subscription request sent.",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GetUsers returns a single user when an id query parameter is present,
// otherwise the full user list.
func (h *UserHandler) GetUsers(c *gin.Context) {
	if id, ok := c.GetQuery("id"); ok {
		user, err := h.userService.GetUser(id)
		if err != nil {
			respondUserError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	users, err := h.userService.ListUsers()
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// respondUserError maps user service errors to HTTP responses
func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingUserFields),
		errors.Is(err, services.ErrMissingUserID),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrNoUsers):
		apierrors.NotFound(c, "No users found")
	default:
		apierrors.InternalError(c, err.Error())
	}
}
