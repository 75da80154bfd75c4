package repository

import (
	"github.com/taskflow-hq/taskflow-api/internal/models"
)

// TaskDetails holds the replaceable fields of a task. A details update
// overwrites all of them; completion tracking and files are untouched.
type TaskDetails struct {
	Title       string
	Description string
	StartDate   string
	DueDate     string
	Status      models.TaskStatus
	AssignedTo  []string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// List retrieves all tasks (full scan, no ordering guarantee)
	List() ([]models.Task, error)

	// UpdateStatus overwrites a task's status and returns the updated record
	UpdateStatus(id string, status models.TaskStatus) (*models.Task, error)

	// AppendCompletion records that userID completed the task. The append is
	// idempotent per user and runs under a row lock; when every assignee has
	// completed, the status flips to completed.
	AppendCompletion(id, userID string) (*models.Task, error)

	// ReplaceDetails overwrites the task's detail fields wholesale
	ReplaceDetails(id string, details TaskDetails) (*models.Task, error)

	// Delete removes a task by ID
	Delete(id string) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// List retrieves all users (full scan)
	List() ([]models.User, error)
}
