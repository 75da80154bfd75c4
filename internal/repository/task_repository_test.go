package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/taskflow-hq/taskflow-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskRepositoryTestSuite defines the test suite for GormTaskRepository
type TaskRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo TaskRepository
}

// SetupTest runs before each test
func (suite *TaskRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.Task{})
	suite.Require().NoError(err)

	suite.repo = NewTaskRepository(suite.db)
}

// TearDownTest runs after each test
func (suite *TaskRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskRepositoryTestSuite) createTask(assignedTo []string) *models.Task {
	task := &models.Task{
		ID:          models.NewTaskID(),
		Title:       "Test Task",
		Files:       models.StringList{},
		Status:      models.TaskStatusNotStarted,
		StartDate:   "2024-01-01",
		DueDate:     "2024-01-10",
		AssignedTo:  models.StringList(assignedTo),
		CompletedBy: models.StringList{},
	}
	suite.Require().NoError(suite.repo.Create(task))
	return task
}

// TestListRoundTrip tests that list columns survive a round trip
func (suite *TaskRepositoryTestSuite) TestListRoundTrip() {
	task := suite.createTask([]string{"u1", "u2"})

	found, err := suite.repo.FindByID(task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StringList{"u1", "u2"}, found.AssignedTo)
	assert.Equal(suite.T(), models.StringList{}, found.CompletedBy)
}

// TestAppendCompletion_CapsAtAssignees tests the completion-count bound
func (suite *TaskRepositoryTestSuite) TestAppendCompletion_CapsAtAssignees() {
	task := suite.createTask([]string{"u1"})

	updated, err := suite.repo.AppendCompletion(task.ID, "u1")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StringList{"u1"}, updated.CompletedBy)
	assert.Equal(suite.T(), models.TaskStatusCompleted, updated.Status)

	// A further completion cannot grow the list past the assignee count
	updated, err = suite.repo.AppendCompletion(task.ID, "u2")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.StringList{"u1"}, updated.CompletedBy)
}

// TestAppendCompletion_IdempotentPerUser tests per-user dedup
func (suite *TaskRepositoryTestSuite) TestAppendCompletion_IdempotentPerUser() {
	task := suite.createTask([]string{"u1", "u2"})

	_, err := suite.repo.AppendCompletion(task.ID, "u1")
	suite.Require().NoError(err)
	updated, err := suite.repo.AppendCompletion(task.ID, "u1")
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.StringList{"u1"}, updated.CompletedBy)
	assert.Equal(suite.T(), models.TaskStatusNotStarted, updated.Status)
}

// TestAppendCompletion_NoAssignees tests the fallthrough for tasks with
// nobody assigned: the status flips immediately
func (suite *TaskRepositoryTestSuite) TestAppendCompletion_NoAssignees() {
	task := suite.createTask(nil)

	updated, err := suite.repo.AppendCompletion(task.ID, "u1")
	suite.Require().NoError(err)
	assert.Empty(suite.T(), updated.CompletedBy)
	assert.Equal(suite.T(), models.TaskStatusCompleted, updated.Status)
}

// TestUpdateStatus_Overwrite tests the unconditional status overwrite
func (suite *TaskRepositoryTestSuite) TestUpdateStatus_Overwrite() {
	task := suite.createTask([]string{"u1"})

	updated, err := suite.repo.UpdateStatus(task.ID, models.TaskStatusInProgress)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, updated.Status)
}

// TestReplaceDetails_PreservesCompletion tests that a details update never
// touches completion tracking or attachments
func (suite *TaskRepositoryTestSuite) TestReplaceDetails_PreservesCompletion() {
	task := suite.createTask([]string{"u1"})
	_, err := suite.repo.AppendCompletion(task.ID, "u1")
	suite.Require().NoError(err)

	updated, err := suite.repo.ReplaceDetails(task.ID, TaskDetails{
		Title:      "Renamed",
		StartDate:  "2024-02-01",
		DueDate:    "2024-02-10",
		Status:     models.TaskStatusInProgress,
		AssignedTo: []string{"u1", "u2"},
	})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "Renamed", updated.Title)
	assert.Equal(suite.T(), models.StringList{"u1"}, updated.CompletedBy)
}

// TestDelete_Missing tests that deleting an absent task reports not found
func (suite *TaskRepositoryTestSuite) TestDelete_Missing() {
	err := suite.repo.Delete("T_0000")
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

// TestTaskRepositoryTestSuite runs the test suite
func TestTaskRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TaskRepositoryTestSuite))
}

// TestCreate_StoreWriteFailure drives the driver-level failure path
func TestCreate_StoreWriteFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := NewTaskRepository(db)
	err = repo.Create(&models.Task{ID: "T_1234", Title: "Doomed"})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
