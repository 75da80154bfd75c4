package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/taskflow-hq/taskflow-api/internal/errors"
	"github.com/taskflow-hq/taskflow-api/internal/models"
	"github.com/taskflow-hq/taskflow-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task and kicks off its notification and
// deadline reminder.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		StartDate   string   `json:"startDate" binding:"required"`
		DueDate     string   `json:"dueDate" binding:"required"`
		AssignedTo  []string `json:"assigned_to" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "title, startDate, dueDate and assigned_to are required")
		return
	}

	id, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"message": fmt.Sprintf("Task %s added successfully and notifications sent!", id),
	})
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ListTasks returns all tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTaskStatus applies a status transition to a task.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required"`
		UserID string            `json:"user_id"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Missing 'id' or 'status'")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(services.UpdateStatusInput{
		ID:         c.Param("id"),
		Status:     req.Status,
		ActingUser: req.UserID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ReplaceTaskDetails overwrites a task's detail fields wholesale.
func (h *TaskHandler) ReplaceTaskDetails(c *gin.Context) {
	type ReplaceDetailsRequest struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		StartDate   string            `json:"start_date"`
		DueDate     string            `json:"due_date"`
		Status      models.TaskStatus `json:"status"`
		AssignedTo  []string          `json:"assigned_to"`
	}

	var req ReplaceDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.ReplaceTaskDetails(c.Param("id"), services.ReplaceDetailsInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task by ID
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := c.Param("id")

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Task with id %s has been successfully deleted", id),
	})
}

// respondTaskError maps task service errors to HTTP responses
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingTaskFields),
		errors.Is(err, services.ErrMissingTaskID),
		errors.Is(err, services.ErrMissingStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		apierrors.InternalError(c, err.Error())
	}
}
