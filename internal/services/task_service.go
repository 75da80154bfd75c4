package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/taskflow-hq/taskflow-api/internal/directory"
	"github.com/taskflow-hq/taskflow-api/internal/models"
	"github.com/taskflow-hq/taskflow-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrMissingTaskFields = errors.New("title, startDate, dueDate and assigned_to are required")
	ErrMissingTaskID     = errors.New("task id is required")
	ErrMissingStatus     = errors.New("id and status are required")
)

// Notifier publishes task notifications.
type Notifier interface {
	Broadcast(recipients []string, subject, body string) error
	FilteredSend(recipients []string, subject, body string) error
	Subscribe(email string) error
}

// ReminderScheduler registers and tears down deadline reminders.
type ReminderScheduler interface {
	Schedule(taskID, title, dueDate string, recipients []string) error
	Cancel(taskID string) error
}

// TaskService handles task lifecycle logic and coordinates the store,
// directory, notifier and reminder scheduler. The store write is
// authoritative; notification and scheduling failures are logged and do
// not fail the operation.
type TaskService struct {
	tasks     repository.TaskRepository
	directory directory.Directory
	notifier  Notifier
	reminders ReminderScheduler
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, dir directory.Directory, notifier Notifier, reminders ReminderScheduler) *TaskService {
	return &TaskService{
		tasks:     tasks,
		directory: dir,
		notifier:  notifier,
		reminders: reminders,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	StartDate   string
	DueDate     string
	AssignedTo  []string
}

// UpdateStatusInput represents input for a status update
type UpdateStatusInput struct {
	ID         string
	Status     models.TaskStatus
	ActingUser string
}

// ReplaceDetailsInput represents input for a wholesale details update
type ReplaceDetailsInput struct {
	Title       string
	Description string
	StartDate   string
	DueDate     string
	Status      models.TaskStatus
	AssignedTo  []string
}

// CreateTask persists a new task, then notifies the assignees and
// registers a deadline reminder. Returns the generated task ID.
func (s *TaskService) CreateTask(input CreateTaskInput) (string, error) {
	if input.Title == "" || input.StartDate == "" || input.DueDate == "" || len(input.AssignedTo) == 0 {
		return "", ErrMissingTaskFields
	}

	task := models.Task{
		ID:          models.NewTaskID(),
		Title:       input.Title,
		Description: input.Description,
		Files:       models.StringList{},
		Status:      models.TaskStatusNotStarted,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		AssignedTo:  models.StringList(input.AssignedTo),
		CompletedBy: models.StringList{},
	}

	if err := s.tasks.Create(&task); err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}

	assignedEmails := s.directory.ResolveEmails(input.AssignedTo)

	if len(assignedEmails) > 0 {
		subject := fmt.Sprintf("New Task Assigned: %s", task.Title)
		body := fmt.Sprintf(
			"You have been assigned a new task:\n\n"+
				"Title: %s\n"+
				"Start Date: %s\n"+
				"Due Date: %s\n\n"+
				"Please check the system for more details.",
			task.Title, task.StartDate, task.DueDate,
		)
		if err := s.notifier.Broadcast(assignedEmails, subject, body); err != nil {
			log.Printf("Failed to send notification for task %s: %v", task.ID, err)
		}
	}

	if err := s.reminders.Schedule(task.ID, task.Title, task.DueDate, assignedEmails); err != nil {
		log.Printf("Failed to schedule reminder for task %s: %v", task.ID, err)
	}

	return task.ID, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(id string) (*models.Task, error) {
	task, err := s.tasks.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return task, nil
}

// ListTasks returns all tasks
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.tasks.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskStatus applies a status transition. A completed update records
// the acting user's completion; the status flips to completed once every
// assignee has completed, and the task's reminder is cancelled. Any other
// status overwrites the field unconditionally.
func (s *TaskService) UpdateTaskStatus(input UpdateStatusInput) (*models.Task, error) {
	if input.ID == "" || input.Status == "" {
		return nil, ErrMissingStatus
	}

	var (
		task *models.Task
		err  error
	)

	if input.Status == models.TaskStatusCompleted {
		task, err = s.tasks.AppendCompletion(input.ID, input.ActingUser)
	} else {
		task, err = s.tasks.UpdateStatus(input.ID, input.Status)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if task.Status == models.TaskStatusCompleted {
		if err := s.reminders.Cancel(task.ID); err != nil {
			log.Printf("Failed to cancel reminder for task %s: %v", task.ID, err)
		}
	}

	return task, nil
}

// ReplaceTaskDetails overwrites the task's detail fields wholesale.
// Completion tracking and attachments are untouched.
func (s *TaskService) ReplaceTaskDetails(id string, input ReplaceDetailsInput) (*models.Task, error) {
	if id == "" {
		return nil, ErrMissingTaskID
	}

	task, err := s.tasks.ReplaceDetails(id, repository.TaskDetails{
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
		Status:      input.Status,
		AssignedTo:  input.AssignedTo,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task by ID and tears down its reminder.
func (s *TaskService) DeleteTask(id string) error {
	if err := s.tasks.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if err := s.reminders.Cancel(id); err != nil {
		log.Printf("Failed to cancel reminder for task %s: %v", id, err)
	}

	return nil
}
