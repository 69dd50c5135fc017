package analytics

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yerdaulet/studytrack/internal/db"
)

func TestFormatHour12(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12 AM"},
		{1, "1 AM"},
		{11, "11 AM"},
		{12, "12 PM"},
		{13, "1 PM"},
		{23, "11 PM"},
	}

	for _, tt := range tests {
		if got := formatHour12(tt.hour); got != tt.want {
			t.Errorf("formatHour12(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestWeeklyMomentumRule(t *testing.T) {
	in := insightInput{snap: &Snapshot{WeeklyPomodoros: 12}}
	msg, ok := weeklyMomentumRule(in)
	if !ok || !strings.Contains(msg, "12 pomodoros") {
		t.Errorf("rule = (%q, %v), want message citing the count", msg, ok)
	}

	in.snap.WeeklyPomodoros = 0
	if _, ok := weeklyMomentumRule(in); ok {
		t.Error("rule should stay silent with no weekly pomodoros")
	}
}

func TestEstimationQualityRule(t *testing.T) {
	tests := []struct {
		name      string
		accuracy  float64
		estimated float64
		wantMsg   bool
		fragment  string
	}{
		{"low accuracy warns", 40, 10, true, "30% buffer"},
		{"high accuracy praises", 90, 10, true, "Excellent"},
		{"middle band silent", 65, 10, false, ""},
		{"boundary 50 silent", 50, 10, false, ""},
		{"boundary 80 silent", 80, 10, false, ""},
		{"no estimates silent", 0, 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := insightInput{
				snap:           &Snapshot{OverallAccuracy: tt.accuracy},
				totalEstimated: tt.estimated,
			}
			msg, ok := estimationQualityRule(in)
			if ok != tt.wantMsg {
				t.Fatalf("fired = %v, want %v", ok, tt.wantMsg)
			}
			if ok && !strings.Contains(msg, tt.fragment) {
				t.Errorf("message %q missing %q", msg, tt.fragment)
			}
		})
	}
}

// Midnight is a legitimate most-productive hour and must render as
// 12 AM rather than being treated as missing data.
func TestProductiveHourRule_MidnightIsValid(t *testing.T) {
	in := insightInput{
		snap:        &Snapshot{MostProductiveHour: 0},
		hasSessions: true,
	}
	msg, ok := productiveHourRule(in)
	if !ok {
		t.Fatal("rule should fire when sessions exist")
	}
	if !strings.Contains(msg, "12 AM") {
		t.Errorf("message %q should name 12 AM", msg)
	}

	in.hasSessions = false
	if _, ok := productiveHourRule(in); ok {
		t.Error("rule should stay silent without sessions")
	}
}

func TestStreakRule(t *testing.T) {
	in := insightInput{snap: &Snapshot{StreakDays: 5}}
	msg, ok := streakRule(in)
	if !ok || !strings.Contains(msg, "5-day") {
		t.Errorf("streak message wrong: %q", msg)
	}

	in.snap.StreakDays = 0
	if _, ok := streakRule(in); ok {
		t.Error("rule should stay silent with no streak")
	}
}

func TestUnderestimatedSubjectsRule(t *testing.T) {
	tests := []struct {
		name     string
		subjects []*subjectEffort
		want     string // empty means no message
	}{
		{
			name: "two math tasks well over estimate",
			subjects: []*subjectEffort{
				{Subject: "Math", Estimated: 4, Actual: 6, TaskCount: 2},
			},
			want: "Math",
		},
		{
			name: "single task never triggers",
			subjects: []*subjectEffort{
				{Subject: "Math", Estimated: 4, Actual: 6, TaskCount: 1},
			},
		},
		{
			name: "within factor stays silent",
			subjects: []*subjectEffort{
				{Subject: "Math", Estimated: 4, Actual: 4.5, TaskCount: 2},
			},
		},
		{
			name: "joint message names every qualifying subject",
			subjects: []*subjectEffort{
				{Subject: "Math", Estimated: 4, Actual: 6, TaskCount: 2},
				{Subject: "History", Estimated: 2, Actual: 3, TaskCount: 3},
				{Subject: "Art", Estimated: 5, Actual: 5, TaskCount: 2},
			},
			want: "Math, History",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := underestimatedSubjectsRule(insightInput{subjects: tt.subjects})
			if tt.want == "" {
				if ok {
					t.Errorf("rule fired unexpectedly: %q", msg)
				}
				return
			}
			if !ok || !strings.Contains(msg, tt.want) {
				t.Errorf("message = %q, want it to contain %q", msg, tt.want)
			}
		})
	}
}

// End to end over a seeded store: every rule fires and the order of
// the pipeline is preserved.
func TestInsightPipeline_OrderAndComposition(t *testing.T) {
	if err := db.Open(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Date(2025, 3, 15, 14, 0, 0, 0, time.Local)

	// Two math tasks jointly estimated 4h with 6h actual trip the
	// underestimation rule; a large well-estimated history task keeps
	// the overall accuracy above 80 so the praise rule fires too.
	t1 := seedTask(t, "u1", "Problem set A", "Math", 2, 3)
	seedTask(t, "u1", "Problem set B", "Math", 2, 3)
	seedTask(t, "u1", "Review notes", "History", 14, 14)

	seedCompleted(t, "u1", t1.ID, now.Add(-2*time.Hour), 60, 2)
	seedCompleted(t, "u1", t1.ID, now.AddDate(0, 0, -1), 60, 1)

	snap, err := ComputeAt("u1", now)
	if err != nil {
		t.Fatal(err)
	}

	// est 18 act 20 -> accuracy 88.9, streak 2, weekly pomodoros 3
	if len(snap.Insights) != 5 {
		t.Fatalf("got %d insights (%v), want 5", len(snap.Insights), snap.Insights)
	}

	checks := []string{"pomodoros this week", "Excellent", "study best", "streak", "underestimate"}
	for i, fragment := range checks {
		if !strings.Contains(snap.Insights[i], fragment) {
			t.Errorf("insight[%d] = %q, want it to contain %q", i, snap.Insights[i], fragment)
		}
	}
}
