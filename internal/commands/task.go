package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yerdaulet/studytrack/internal/db"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage study tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new study task",
	Long: `Add a new study task with an optional subject and effort estimate.

Examples:
  studytrack task add "Linear algebra problem set" --subject Math --estimate 3
  studytrack task add "Essay draft" -s English -e 2.5`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		subject, _ := cmd.Flags().GetString("subject")
		estimate, _ := cmd.Flags().GetFloat64("estimate")

		task, err := db.CreateTask(db.CreateTaskRequest{
			UserID:         currentUser(),
			Title:          strings.Join(args, " "),
			Subject:        subject,
			EstimatedHours: estimate,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ Created task %s: %s\n", shortID(task.ID), task.Title)
		if task.Subject != "" {
			fmt.Printf("   Subject: %s\n", task.Subject)
		}
		if task.EstimatedHours > 0 {
			fmt.Printf("   Estimated: %.1fh\n", task.EstimatedHours)
		}
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your study tasks",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		tasks, err := db.ListTasks(currentUser())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks yet. Add one with 'studytrack task add'.")
			return
		}

		for _, task := range tasks {
			subject := task.Subject
			if subject == "" {
				subject = "-"
			}
			fmt.Printf("%s  %-40s  %-12s  est %.1fh  actual %.1fh\n",
				shortID(task.ID), truncate(task.Title, 40), subject,
				task.EstimatedHours, task.ActualHours)
		}
	},
}

// shortID abbreviates a uuid for terminal display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	taskAddCmd.Flags().StringP("subject", "s", "", "Subject label for analytics breakdowns")
	taskAddCmd.Flags().Float64P("estimate", "e", 0, "Estimated effort in hours")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
}
