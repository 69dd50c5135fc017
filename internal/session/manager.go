// Package session implements the study-session lifecycle: starting a
// session, completing or cancelling it, and propagating the elapsed
// time into the owning task's accumulated actual hours. It owns the
// single-active-session-per-user invariant.
package session

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/yerdaulet/studytrack/internal/db"
	apperrors "github.com/yerdaulet/studytrack/internal/errors"
	"github.com/yerdaulet/studytrack/internal/models"
)

// Manager serializes lifecycle operations per user. Different users
// never contend on the same lock.
type Manager struct {
	now   func() time.Time
	locks sync.Map // userID -> *sync.Mutex
}

// NewManager creates a Manager using the server clock
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

func (m *Manager) userLock(userID string) *sync.Mutex {
	lock, _ := m.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Start begins a new study session against one of the user's tasks.
// It fails with a conflict when the user already has a running
// session; the prior session is never queued behind or auto-completed.
func (m *Manager) Start(userID, taskID string) (*models.StudySession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId", "must not be empty")
	}
	if strings.TrimSpace(taskID) == "" {
		return nil, apperrors.NewValidationError("taskId", "must not be empty")
	}

	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := db.GetTask(userID, taskID); err != nil {
		return nil, err
	}

	return db.CreateSessionIfIdle(userID, taskID, m.now())
}

// Complete finalizes a running session, recording the elapsed minutes
// and whether it finished naturally or was cancelled early. The
// session record is written first; the task aggregate increment comes
// after, so a crash in between leaves a completed session with a
// stale aggregate rather than an orphaned task update.
func (m *Manager) Complete(userID, sessionID string, pomodorosCompleted int, wasCompleted bool, notes string) (*models.StudySession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId", "must not be empty")
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.NewValidationError("sessionId", "must not be empty")
	}
	if pomodorosCompleted < 0 {
		return nil, apperrors.NewValidationError("pomodorosCompleted", "must not be negative")
	}

	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := db.GetOpenSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	elapsed := now.Sub(session.StartedAt)
	if elapsed < 0 {
		// A negative delta means a skewed or corrupted timestamp.
		// Surfacing it beats silently clamping to zero.
		return nil, apperrors.NewClockError(session.StartedAt, now)
	}

	session.EndedAt = &now
	session.TotalMinutes = int(elapsed / time.Minute)
	session.PomodorosCompleted = pomodorosCompleted
	session.WasCompleted = wasCompleted
	session.Notes = notes

	if err := db.FinalizeSession(session); err != nil {
		return nil, err
	}

	hours := float64(session.TotalMinutes) / 60.0
	if err := db.AddActualHours(userID, session.TaskID, hours); err != nil {
		// The session record is the source of truth; a vanished task
		// only costs the cached aggregate, which analytics can rebuild
		// from sessions. Warn and carry on.
		log.Printf("warning: session %s completed but task %s aggregate not updated: %v",
			session.ID, session.TaskID, err)
	}

	return session, nil
}

// Active returns the user's running session, or nil when idle
func (m *Manager) Active(userID string) (*models.StudySession, error) {
	return db.FindActiveSession(userID)
}

// List returns the user's sessions, most recent first, with tasks resolved
func (m *Manager) List(userID string) ([]models.StudySession, error) {
	return db.ListSessions(userID)
}
