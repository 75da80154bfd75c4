package repository

import (
	"github.com/taskflow-hq/taskflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves all tasks
func (r *GormTaskRepository) List() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatus overwrites a task's status and returns the updated record
func (r *GormTaskRepository) UpdateStatus(id string, status models.TaskStatus) (*models.Task, error) {
	var task models.Task

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}

		task.Status = status
		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// AppendCompletion records userID's completion of a task. The row is locked
// for the duration of the read-modify-write so two concurrent completions
// cannot both pass the length check.
func (r *GormTaskRepository) AppendCompletion(id, userID string) (*models.Task, error) {
	var task models.Task

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// SQLite has no FOR UPDATE; its writers are serialized anyway
		query := tx
		if tx.Dialector.Name() != "sqlite" {
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		if err := query.First(&task, "id = ?", id).Error; err != nil {
			return err
		}

		if userID != "" && !task.CompletedBy.Contains(userID) && len(task.CompletedBy) < len(task.AssignedTo) {
			task.CompletedBy = append(task.CompletedBy, userID)
		}

		if len(task.CompletedBy) >= len(task.AssignedTo) {
			task.Status = models.TaskStatusCompleted
		}

		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// ReplaceDetails overwrites the task's detail fields wholesale
func (r *GormTaskRepository) ReplaceDetails(id string, details TaskDetails) (*models.Task, error) {
	var task models.Task

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}

		task.Title = details.Title
		task.Description = details.Description
		task.StartDate = details.StartDate
		task.DueDate = details.DueDate
		task.Status = details.Status
		task.AssignedTo = models.StringList(details.AssignedTo)

		return tx.Save(&task).Error
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Delete removes a task by ID. The existence check and the delete run in
// one transaction.
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&task).Error
	})
}
