package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yerdaulet/studytrack/internal/analytics"
	"github.com/yerdaulet/studytrack/internal/tui"
)

const dailyBarWidth = 24

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your productivity analytics",
	Long: `Compute analytics over your full study history: totals, streak,
estimation accuracy, subject and hour-of-day breakdowns, and insights.`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		snap, err := analytics.Compute(currentUser())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		renderStats(snap)
	},
}

func renderStats(snap *analytics.Snapshot) {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(tui.ColorAccentBright)).
		Bold(true)
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(tui.ColorSecondaryText))
	value := lipgloss.NewStyle().
		Foreground(lipgloss.Color(tui.ColorPrimaryText)).
		Bold(true)

	fmt.Println(header.Render("📊 Study analytics"))
	fmt.Println()

	summary := [][2]string{
		{"Total hours studied", fmt.Sprintf("%.1f", snap.TotalHoursStudied)},
		{"Total pomodoros", fmt.Sprintf("%d", snap.TotalPomodoros)},
		{"Pomodoros this week", fmt.Sprintf("%d", snap.WeeklyPomodoros)},
		{"Estimation accuracy", fmt.Sprintf("%.0f%%", snap.OverallAccuracy)},
		{"Current streak", fmt.Sprintf("%d days", snap.StreakDays)},
	}
	for _, row := range summary {
		fmt.Printf("  %s %s\n", label.Render(row[0]+":"), value.Render(row[1]))
	}

	if len(snap.SubjectHours) > 0 {
		fmt.Println()
		fmt.Println(header.Render("By subject"))
		type subjectRow struct {
			name  string
			hours float64
		}
		rows := make([]subjectRow, 0, len(snap.SubjectHours))
		for name, hours := range snap.SubjectHours {
			rows = append(rows, subjectRow{name, hours})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].hours > rows[j].hours })
		for _, row := range rows {
			fmt.Printf("  %-16s %.1fh\n", row.name, row.hours)
		}
	}

	fmt.Println()
	fmt.Println(header.Render("Last 7 days"))
	renderDailyBars(snap.DailyHours)

	if len(snap.TaskAccuracies) > 0 {
		fmt.Println()
		fmt.Println(header.Render("Estimates vs reality"))
		for _, acc := range snap.TaskAccuracies {
			fmt.Printf("  %-40s est %.1fh  actual %.1fh  %3.0f%%\n",
				truncate(acc.Title, 40), acc.EstimatedHours, acc.ActualHours, acc.AccuracyPercent)
		}
	}

	if len(snap.Insights) > 0 {
		fmt.Println()
		fmt.Println(header.Render("Insights"))
		for _, insight := range snap.Insights {
			fmt.Printf("  💡 %s\n", insight)
		}
	}
}

// renderDailyBars prints one proportional bar per calendar day,
// oldest day first.
func renderDailyBars(daily map[string]float64) {
	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)

	maxHours := 0.0
	for _, hours := range daily {
		if hours > maxHours {
			maxHours = hours
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorAccentMain))

	for _, day := range days {
		hours := daily[day]
		width := 0
		if maxHours > 0 {
			width = int(hours / maxHours * dailyBarWidth)
		}
		weekday := ""
		if t, err := time.ParseInLocation("2006-01-02", day, time.Local); err == nil {
			weekday = t.Format("Mon")
		}
		fmt.Printf("  %s %s %s %.1fh\n",
			day, weekday, barStyle.Render(strings.Repeat("█", width)), hours)
	}
}
