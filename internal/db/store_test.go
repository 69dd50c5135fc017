package db

import (
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/yerdaulet/studytrack/internal/errors"
	"github.com/yerdaulet/studytrack/internal/models"
)

// setupTestDB points the package at a fresh sqlite file for one test
func setupTestDB(t *testing.T) {
	t.Helper()

	if err := Open(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(); err != nil {
			t.Errorf("close test database: %v", err)
		}
	})
}

func mustCreateTask(t *testing.T, userID, title, subject string, estimated float64) *models.Task {
	t.Helper()

	task, err := CreateTask(CreateTaskRequest{
		UserID:         userID,
		Title:          title,
		Subject:        subject,
		EstimatedHours: estimated,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestCreateTask_Validation(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"empty user", CreateTaskRequest{Title: "Read chapter 4"}},
		{"empty title", CreateTaskRequest{UserID: "u1"}},
		{"negative estimate", CreateTaskRequest{UserID: "u1", Title: "x", EstimatedHours: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateTask(tt.req)
			if !apperrors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGetTask_ScopedToUser(t *testing.T) {
	setupTestDB(t)

	task := mustCreateTask(t, "u1", "Linear algebra problem set", "Math", 3)

	if _, err := GetTask("u1", task.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}

	_, err := GetTask("u2", task.ID)
	if !apperrors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("cross-user lookup should be task-not-found, got %v", err)
	}
}

func TestCreateSessionIfIdle_Conflict(t *testing.T) {
	setupTestDB(t)

	task := mustCreateTask(t, "u1", "Essay draft", "English", 2)

	first, err := CreateSessionIfIdle("u1", task.ID, time.Now())
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if first.ID == "" {
		t.Fatal("session id should be assigned")
	}
	if first.Task.Title != "Essay draft" {
		t.Errorf("task relationship not loaded, got %q", first.Task.Title)
	}

	_, err = CreateSessionIfIdle("u1", task.ID, time.Now())
	if !apperrors.IsConflict(err) {
		t.Errorf("second start should conflict, got %v", err)
	}

	// A different user is unaffected
	other := mustCreateTask(t, "u2", "Essay draft", "English", 2)
	if _, err := CreateSessionIfIdle("u2", other.ID, time.Now()); err != nil {
		t.Errorf("other user's start should succeed: %v", err)
	}
}

func TestFindActiveSession(t *testing.T) {
	setupTestDB(t)

	active, err := FindActiveSession("u1")
	if err != nil {
		t.Fatalf("FindActiveSession: %v", err)
	}
	if active != nil {
		t.Fatal("expected no active session on a fresh store")
	}

	task := mustCreateTask(t, "u1", "Flashcards", "Biology", 1)
	created, err := CreateSessionIfIdle("u1", task.ID, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	active, err = FindActiveSession("u1")
	if err != nil {
		t.Fatal(err)
	}
	if active == nil || active.ID != created.ID {
		t.Error("active session lookup should return the running session")
	}
}

func TestGetOpenSession_RejectsTerminal(t *testing.T) {
	setupTestDB(t)

	task := mustCreateTask(t, "u1", "Flashcards", "Biology", 1)
	session, err := CreateSessionIfIdle("u1", task.ID, time.Now().Add(-30*time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	open, err := GetOpenSession("u1", session.ID)
	if err != nil {
		t.Fatalf("open lookup: %v", err)
	}

	now := time.Now()
	open.EndedAt = &now
	open.TotalMinutes = 30
	open.WasCompleted = true
	if err := FinalizeSession(open); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	_, err = GetOpenSession("u1", session.ID)
	if !apperrors.Is(err, apperrors.ErrSessionNotFound) {
		t.Errorf("terminal session should not be open, got %v", err)
	}
}

func TestAddActualHours(t *testing.T) {
	setupTestDB(t)

	task := mustCreateTask(t, "u1", "Lab report", "Chemistry", 4)

	if err := AddActualHours("u1", task.ID, 1.5); err != nil {
		t.Fatalf("first increment: %v", err)
	}
	if err := AddActualHours("u1", task.ID, 0.5); err != nil {
		t.Fatalf("second increment: %v", err)
	}

	got, err := GetTask("u1", task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ActualHours != 2.0 {
		t.Errorf("ActualHours = %v, want 2.0", got.ActualHours)
	}

	err = AddActualHours("u1", "missing-task", 1)
	if !apperrors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("missing task should be not-found, got %v", err)
	}
}

func TestListSessions_Order(t *testing.T) {
	setupTestDB(t)

	task := mustCreateTask(t, "u1", "Reading", "History", 2)

	base := time.Now().Add(-3 * time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		s, err := CreateSessionIfIdle("u1", task.ID, base.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		end := s.StartedAt.Add(25 * time.Minute)
		s.EndedAt = &end
		s.TotalMinutes = 25
		s.WasCompleted = true
		if err := FinalizeSession(s); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, s.ID)
	}

	sessions, err := ListSessions("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	if sessions[0].ID != ids[2] {
		t.Error("ListSessions should return most recently created first")
	}
	if sessions[0].Task.Title != "Reading" {
		t.Error("ListSessions should resolve the task relationship")
	}

	completed, err := ListCompletedSessions("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 3 {
		t.Fatalf("got %d completed sessions, want 3", len(completed))
	}
	if completed[0].ID != ids[0] {
		t.Error("ListCompletedSessions should be ordered by start time ascending")
	}
}

func TestListCompletedSessions_ExcludesActive(t *testing.T) {
	setupTestDB(t)

	task := mustCreateTask(t, "u1", "Reading", "History", 2)
	if _, err := CreateSessionIfIdle("u1", task.ID, time.Now()); err != nil {
		t.Fatal(err)
	}

	completed, err := ListCompletedSessions("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(completed) != 0 {
		t.Errorf("active session leaked into completed list")
	}
}
