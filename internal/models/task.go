package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task represents a unit of study work with an effort estimate
type Task struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID  string `gorm:"index;not null" json:"user_id"`
	Title   string `gorm:"not null" json:"title"`
	Subject string `json:"subject"` // free-text label; empty excludes sessions from subject stats

	EstimatedHours float64 `gorm:"default:0" json:"estimated_hours"`
	ActualHours    float64 `gorm:"default:0" json:"actual_hours"` // only ever incremented by session completion

	// Relationships
	Sessions []StudySession `gorm:"foreignKey:TaskID" json:"sessions,omitempty"`
}

// BeforeCreate assigns an id when none was provided
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
