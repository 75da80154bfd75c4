package models

import (
	"fmt"
	"math/rand"
	"time"
)

type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "not-started"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type Task struct {
	ID          string     `gorm:"primarykey;type:varchar(16)" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Files       StringList `gorm:"type:text" json:"files"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'not-started'" json:"status"`
	StartDate   string     `gorm:"type:varchar(10)" json:"start_date"`
	DueDate     string     `gorm:"type:varchar(10)" json:"due_date"`
	AssignedTo  StringList `gorm:"type:text" json:"assigned_to"`
	CompletedBy StringList `gorm:"type:text" json:"completed_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTaskID generates a task ID in the format T_XXXX.
// Collisions are not checked.
func NewTaskID() string {
	return fmt.Sprintf("T_%04d", 1000+rand.Intn(9000))
}
