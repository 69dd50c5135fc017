// Package analytics derives productivity statistics from a user's
// accumulated task and session history: totals, estimation accuracy,
// subject and time-of-day breakdowns, a consecutive-day streak, and
// rule-based textual insights. Every call recomputes from the store;
// nothing here is persisted.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/yerdaulet/studytrack/internal/db"
	"github.com/yerdaulet/studytrack/internal/models"
)

const (
	recentWindowDays   = 7
	streakLookbackDays = 30
	dayKeyFormat       = "2006-01-02"
)

// TaskAccuracy scores one task's estimate against its recorded effort
type TaskAccuracy struct {
	TaskID          string  `json:"task_id"`
	Title           string  `json:"title"`
	Subject         string  `json:"subject"`
	EstimatedHours  float64 `json:"estimated_hours"`
	ActualHours     float64 `json:"actual_hours"`
	Difference      float64 `json:"difference"`
	AccuracyPercent float64 `json:"accuracy_percent"`
}

// Snapshot is the full analytics result for one user at one moment
type Snapshot struct {
	TotalPomodoros    int     `json:"total_pomodoros"`
	WeeklyPomodoros   int     `json:"weekly_pomodoros"`
	TotalHoursStudied float64 `json:"total_hours_studied"` // rounded to one decimal
	OverallAccuracy   float64 `json:"overall_accuracy"`

	TaskAccuracies []TaskAccuracy     `json:"task_accuracies"`
	SubjectHours   map[string]float64 `json:"subject_hours"`
	HourlyHours    map[int]float64    `json:"hourly_hours"`
	DailyHours     map[string]float64 `json:"daily_hours"` // exactly 7 calendar-date keys

	MostProductiveHour int `json:"most_productive_hour"` // -1 when no sessions
	StreakDays         int `json:"streak_days"`

	Insights []string `json:"insights"`
}

// subjectEffort accumulates estimate-vs-actual per subject for the
// underestimation insight. Order of appearance is preserved so the
// generated message is deterministic.
type subjectEffort struct {
	Subject   string
	Estimated float64
	Actual    float64
	TaskCount int
}

// Compute builds the analytics snapshot for a user as of now
func Compute(userID string) (*Snapshot, error) {
	return ComputeAt(userID, time.Now())
}

// ComputeAt builds the snapshot relative to an explicit clock. Only
// completed sessions contribute; an in-flight session is invisible
// until its end time is recorded.
func ComputeAt(userID string, now time.Time) (*Snapshot, error) {
	tasks, err := db.ListTasks(userID)
	if err != nil {
		return nil, err
	}
	sessions, err := db.ListCompletedSessions(userID)
	if err != nil {
		return nil, err
	}

	// The store already orders by start time, but the hourly tie-break
	// depends on it, so pin the order here rather than trusting the query.
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	snap := &Snapshot{
		SubjectHours:       make(map[string]float64),
		HourlyHours:        make(map[int]float64),
		DailyHours:         make(map[string]float64),
		TaskAccuracies:     make([]TaskAccuracy, 0, len(tasks)),
		MostProductiveHour: -1,
	}

	taskByID := make(map[string]models.Task, len(tasks))
	for _, task := range tasks {
		taskByID[task.ID] = task
	}

	// Day and hour bucketing follow the clock's location; stored
	// timestamps may round-trip through the database as UTC.
	loc := now.Location()
	today := startOfDay(now)
	weekStart := today.AddDate(0, 0, -(recentWindowDays - 1))

	// Fixed 7-entry daily map, today and the six preceding days
	for i := 0; i < recentWindowDays; i++ {
		snap.DailyHours[today.AddDate(0, 0, -i).Format(dayKeyFormat)] = 0
	}

	var totalMinutes int
	bestHourValue := 0.0
	studyDays := make(map[string]bool)

	for _, s := range sessions {
		startLocal := s.StartedAt.In(loc)
		hours := float64(s.TotalMinutes) / 60.0
		totalMinutes += s.TotalMinutes
		snap.TotalPomodoros += s.PomodorosCompleted

		if !startLocal.Before(weekStart) {
			snap.WeeklyPomodoros += s.PomodorosCompleted
		}

		// Sessions whose task carries no subject stay out of the
		// subject breakdown; they still count everywhere else.
		if task, ok := taskByID[s.TaskID]; ok && task.Subject != "" {
			snap.SubjectHours[task.Subject] += hours
		}

		hour := startLocal.Hour()
		snap.HourlyHours[hour] += hours
		if snap.MostProductiveHour == -1 || snap.HourlyHours[hour] > bestHourValue {
			bestHourValue = snap.HourlyHours[hour]
			snap.MostProductiveHour = hour
		}

		dayKey := startOfDay(startLocal).Format(dayKeyFormat)
		if _, inRange := snap.DailyHours[dayKey]; inRange {
			snap.DailyHours[dayKey] += hours
		}
		studyDays[dayKey] = true
	}

	snap.TotalHoursStudied = roundToTenth(float64(totalMinutes) / 60.0)
	snap.StreakDays = computeStreak(studyDays, today)

	var totalEstimated, totalActual float64
	subjects := make([]*subjectEffort, 0)
	subjectIndex := make(map[string]int)

	for _, task := range tasks {
		diff := task.ActualHours - task.EstimatedHours
		snap.TaskAccuracies = append(snap.TaskAccuracies, TaskAccuracy{
			TaskID:          task.ID,
			Title:           task.Title,
			Subject:         task.Subject,
			EstimatedHours:  task.EstimatedHours,
			ActualHours:     task.ActualHours,
			Difference:      diff,
			AccuracyPercent: accuracyPercent(task.EstimatedHours, task.ActualHours),
		})

		totalEstimated += task.EstimatedHours
		totalActual += task.ActualHours

		if task.Subject != "" {
			idx, ok := subjectIndex[task.Subject]
			if !ok {
				idx = len(subjects)
				subjectIndex[task.Subject] = idx
				subjects = append(subjects, &subjectEffort{Subject: task.Subject})
			}
			subjects[idx].Estimated += task.EstimatedHours
			subjects[idx].Actual += task.ActualHours
			subjects[idx].TaskCount++
		}
	}

	// Aggregate-then-compare, not an average of per-task ratios
	snap.OverallAccuracy = accuracyPercent(totalEstimated, totalActual)

	snap.Insights = buildInsights(snap, totalEstimated, len(sessions) > 0, subjects)

	return snap, nil
}

// accuracyPercent scores how close an estimate came to reality.
// Over- and under-estimation are penalized symmetrically and the
// score floors at zero. A zero estimate scores zero.
func accuracyPercent(estimated, actual float64) float64 {
	if estimated <= 0 {
		return 0
	}
	diff := math.Abs(actual - estimated)
	pct := (estimated - diff) / estimated * 100
	if pct < 0 {
		return 0
	}
	return pct
}

// computeStreak counts consecutive study days scanning backward from
// today. A quiet today keeps the streak alive; any older gap ends it.
func computeStreak(studyDays map[string]bool, today time.Time) int {
	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		day := today.AddDate(0, 0, -i).Format(dayKeyFormat)
		if studyDays[day] {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

// startOfDay truncates a time to local midnight
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
