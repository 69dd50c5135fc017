package analytics

import (
	"fmt"
	"strings"
)

// underestimateFactor flags a subject once real effort runs more than
// 20% over the estimates, provided enough tasks back the signal.
const (
	underestimateFactor   = 1.2
	underestimateMinTasks = 2
)

// insightInput is the snapshot plus the intermediate aggregates the
// rules need but the snapshot does not expose.
type insightInput struct {
	snap           *Snapshot
	totalEstimated float64
	hasSessions    bool
	subjects       []*subjectEffort
}

// insightRule inspects the aggregates and contributes at most one message
type insightRule func(in insightInput) (string, bool)

// insightRules run in a fixed order; each appends zero or one message.
var insightRules = []insightRule{
	weeklyMomentumRule,
	estimationQualityRule,
	productiveHourRule,
	streakRule,
	underestimatedSubjectsRule,
}

// buildInsights runs the rule pipeline over the finished aggregates
func buildInsights(snap *Snapshot, totalEstimated float64, hasSessions bool, subjects []*subjectEffort) []string {
	in := insightInput{
		snap:           snap,
		totalEstimated: totalEstimated,
		hasSessions:    hasSessions,
		subjects:       subjects,
	}

	insights := make([]string, 0, len(insightRules))
	for _, rule := range insightRules {
		if msg, ok := rule(in); ok {
			insights = append(insights, msg)
		}
	}
	return insights
}

func weeklyMomentumRule(in insightInput) (string, bool) {
	if in.snap.WeeklyPomodoros <= 0 {
		return "", false
	}
	return fmt.Sprintf("Great momentum! You completed %d pomodoros this week.", in.snap.WeeklyPomodoros), true
}

// estimationQualityRule warns below 50% and praises above 80%. The
// band in between produces nothing, and without any estimated effort
// there is nothing to judge.
func estimationQualityRule(in insightInput) (string, bool) {
	if in.totalEstimated <= 0 {
		return "", false
	}
	switch {
	case in.snap.OverallAccuracy < 50:
		return "Your time estimates are often off. Try adding a 30% buffer to each estimate.", true
	case in.snap.OverallAccuracy > 80:
		return fmt.Sprintf("Excellent estimation skills! Your accuracy is %.0f%%.", in.snap.OverallAccuracy), true
	}
	return "", false
}

// productiveHourRule fires whenever any completed session exists.
// Midnight is a real answer, not missing data.
func productiveHourRule(in insightInput) (string, bool) {
	if !in.hasSessions {
		return "", false
	}
	return fmt.Sprintf("You study best around %s.", formatHour12(in.snap.MostProductiveHour)), true
}

func streakRule(in insightInput) (string, bool) {
	if in.snap.StreakDays <= 0 {
		return "", false
	}
	return fmt.Sprintf("You're on a %d-day study streak. Keep it going!", in.snap.StreakDays), true
}

// underestimatedSubjectsRule names every subject whose real effort ran
// well past its estimates, in one joint message.
func underestimatedSubjectsRule(in insightInput) (string, bool) {
	var names []string
	for _, s := range in.subjects {
		if s.TaskCount >= underestimateMinTasks && s.Actual > s.Estimated*underestimateFactor {
			names = append(names, s.Subject)
		}
	}
	if len(names) == 0 {
		return "", false
	}
	return fmt.Sprintf("You tend to underestimate %s. Plan extra time for those subjects.",
		strings.Join(names, ", ")), true
}

// formatHour12 renders an hour of day on a 12-hour clock
func formatHour12(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}
