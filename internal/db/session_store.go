package db

import (
	"time"

	"gorm.io/gorm"

	apperrors "github.com/yerdaulet/studytrack/internal/errors"
	"github.com/yerdaulet/studytrack/internal/models"
)

// CreateSessionIfIdle creates a new study session for a user unless an
// active one already exists. The check and the insert run in one
// transaction so a concurrent duplicate start cannot slip between them.
func CreateSessionIfIdle(userID, taskID string, startedAt time.Time) (*models.StudySession, error) {
	session := models.StudySession{
		UserID:    userID,
		TaskID:    taskID,
		StartedAt: startedAt,
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.StudySession{}).
			Where("user_id = ? AND ended_at IS NULL", userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperrors.NewConflictError("session", "finish the current session before starting another")
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	// Load the task relationship for callers that render it
	DB.Preload("Task").First(&session, "id = ?", session.ID)

	return &session, nil
}

// FindActiveSession returns the user's running session, or nil when
// there is none. Absence is not an error.
func FindActiveSession(userID string) (*models.StudySession, error) {
	var session models.StudySession

	err := DB.Where("user_id = ? AND ended_at IS NULL", userID).
		Preload("Task").
		First(&session).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

// GetOpenSession retrieves a still-running session by id for a user.
// Terminal sessions are deliberately not matched: completing twice
// must fail rather than double-count.
func GetOpenSession(userID, sessionID string) (*models.StudySession, error) {
	var session models.StudySession

	err := DB.Where("id = ? AND user_id = ? AND ended_at IS NULL", sessionID, userID).
		First(&session).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("session", sessionID)
		}
		return nil, err
	}

	return &session, nil
}

// FinalizeSession persists a session's terminal fields
func FinalizeSession(session *models.StudySession) error {
	return DB.Save(session).Error
}

// ListSessions returns all of a user's sessions, most recently created
// first, each resolved against its task.
func ListSessions(userID string) ([]models.StudySession, error) {
	var sessions []models.StudySession

	err := DB.Where("user_id = ?", userID).
		Preload("Task").
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// ListCompletedSessions returns a user's finished sessions ordered by
// start time ascending. The stable order pins the hourly tie-break in
// the analytics fold.
func ListCompletedSessions(userID string) ([]models.StudySession, error) {
	var sessions []models.StudySession

	err := DB.Where("user_id = ? AND ended_at IS NOT NULL", userID).
		Preload("Task").
		Order("started_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	return sessions, nil
}
