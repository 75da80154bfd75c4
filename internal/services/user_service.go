package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/taskflow-hq/taskflow-api/internal/models"
	"github.com/taskflow-hq/taskflow-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrNoUsers           = errors.New("no users found")
	ErrMissingUserFields = errors.New("user id, email, and role are required")
	ErrMissingUserID     = errors.New("user id is required")
	ErrInvalidRole       = errors.New("invalid role, allowed roles are: admin, member")
)

// UserService handles user management. Creation subscribes the user's
// address to the notification channel; a subscription failure does not
// roll back the stored record.
type UserService struct {
	users    repository.UserRepository
	notifier Notifier
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, notifier Notifier) *UserService {
	return &UserService{
		users:    users,
		notifier: notifier,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	ID       string
	Email    string
	Role     models.UserRole
	Username string
}

// CreateUser persists a new user and subscribes their address to the
// notification channel.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if input.ID == "" || input.Email == "" || input.Role == "" {
		return nil, ErrMissingUserFields
	}
	if !models.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}

	user := models.User{
		ID:       input.ID,
		Email:    input.Email,
		Role:     input.Role,
		Username: input.Username,
	}

	if err := s.users.Create(&user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.notifier.Subscribe(user.Email); err != nil {
		log.Printf("Error subscribing %s to notifications: %v", user.Email, err)
	}

	return &user, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(id string) (*models.User, error) {
	if id == "" {
		return nil, ErrMissingUserID
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// ListUsers returns all users. An empty store is reported as not found.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}
