package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionState is the derived lifecycle state of a StudySession.
// Only EndedAt and WasCompleted are persisted; the state is computed
// so that "cancelled" and "not active" never get conflated.
type SessionState int

const (
	StateActive SessionState = iota
	StateCompleted
	StateCancelled
)

// String returns the display name of the state
func (s SessionState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// StudySession represents one time-boxed study session against a task
type StudySession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"index;not null" json:"user_id"`
	TaskID string `gorm:"not null" json:"task_id"`

	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time `gorm:"index" json:"ended_at"` // nil while the session is still running

	TotalMinutes       int    `json:"total_minutes"` // floor of elapsed time, 0 while active
	PomodorosCompleted int    `json:"pomodoros_completed"`
	WasCompleted       bool   `json:"was_completed"` // false means the session was cancelled early
	Notes              string `json:"notes"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID" json:"task"`
}

// BeforeCreate assigns an id when none was provided
func (s *StudySession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// State derives the lifecycle state from the persisted fields
func (s *StudySession) State() SessionState {
	if s.EndedAt == nil {
		return StateActive
	}
	if s.WasCompleted {
		return StateCompleted
	}
	return StateCancelled
}
