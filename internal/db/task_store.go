package db

import (
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/yerdaulet/studytrack/internal/errors"
	"github.com/yerdaulet/studytrack/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task
type CreateTaskRequest struct {
	UserID         string
	Title          string
	Subject        string
	EstimatedHours float64
}

// CreateTask creates a new task for a user
func CreateTask(req CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, apperrors.NewValidationError("userId", "must not be empty")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("title", "must not be empty")
	}
	if req.EstimatedHours < 0 {
		return nil, apperrors.NewValidationError("estimatedHours", "must not be negative")
	}

	task := models.Task{
		UserID:         req.UserID,
		Title:          strings.TrimSpace(req.Title),
		Subject:        strings.TrimSpace(req.Subject),
		EstimatedHours: req.EstimatedHours,
	}

	if err := DB.Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// GetTask retrieves a task owned by a user
func GetTask(userID, taskID string) (*models.Task, error) {
	var task models.Task

	err := DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("task", taskID)
		}
		return nil, err
	}

	return &task, nil
}

// ListTasks retrieves all tasks for a user, oldest first
func ListTasks(userID string) ([]models.Task, error) {
	var tasks []models.Task

	err := DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// ResolveTask finds a task by full id or unique id prefix. Prefixes
// keep the CLI usable with uuid keys.
func ResolveTask(userID, idOrPrefix string) (*models.Task, error) {
	if strings.TrimSpace(idOrPrefix) == "" {
		return nil, apperrors.NewValidationError("taskId", "must not be empty")
	}

	var tasks []models.Task
	err := DB.Where("user_id = ? AND id LIKE ?", userID, idOrPrefix+"%").
		Limit(2).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	switch len(tasks) {
	case 0:
		return nil, apperrors.NewNotFoundError("task", idOrPrefix)
	case 1:
		return &tasks[0], nil
	default:
		return nil, apperrors.NewValidationError("taskId", "prefix matches more than one task")
	}
}

// AddActualHours atomically increments a task's accumulated actual
// effort. The increment happens in SQL so concurrent completions for
// the same task cannot lose updates.
func AddActualHours(userID, taskID string, hours float64) error {
	result := DB.Model(&models.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		UpdateColumn("actual_hours", gorm.Expr("actual_hours + ?", hours))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("task", taskID)
	}

	return nil
}
