package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yerdaulet/studytrack/internal/db"
	"github.com/yerdaulet/studytrack/internal/models"
	"github.com/yerdaulet/studytrack/internal/session"
	"github.com/yerdaulet/studytrack/internal/tui"
)

// manager is shared by the session-facing commands
var manager = session.NewManager()

var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Start a study session on a task",
	Long: `Start a study session on a task. Opens the focus timer by default,
use --no-ui for a plain start. Task ids may be abbreviated to a unique prefix.

Examples:
  studytrack start 3f2a       # Start with the focus timer
  studytrack start 3f2a --no-ui`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		user := currentUser()

		task, err := db.ResolveTask(user, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		sess, err := manager.Start(user, task.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("⏱️  Studying: %s\n", task.Title)
			fmt.Printf("Started at: %s\n", sess.StartedAt.Format("15:04:05"))
			fmt.Println("Finish with 'studytrack finish' when you're done.")
			return
		}

		if err := tui.RunTimerTUI(sess, manager, cfg); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the current study session",
	Long: `Finish the active study session, recording completed pomodoros and
an optional note. Use --abandon to record an early cancellation instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		user := currentUser()

		active, err := manager.Active(user)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if active == nil {
			fmt.Println("No active study session.")
			return
		}

		pomodoros, _ := cmd.Flags().GetInt("pomodoros")
		abandon, _ := cmd.Flags().GetBool("abandon")
		note, _ := cmd.Flags().GetString("note")

		done, err := manager.Complete(user, active.ID, pomodoros, !abandon, note)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		verb := "Finished"
		if abandon {
			verb = "Abandoned"
		}
		fmt.Printf("⏹️  %s session on: %s\n", verb, active.Task.Title)
		fmt.Printf("Duration: %s (%d pomodoros)\n",
			formatMinutes(done.TotalMinutes), done.PomodorosCompleted)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current study session",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		active, err := manager.Active(currentUser())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if active == nil {
			fmt.Println("No active study session.")
			return
		}

		elapsed := time.Since(active.StartedAt)
		fmt.Printf("⏱️  Studying: %s\n", active.Task.Title)
		fmt.Printf("Started at: %s\n", active.StartedAt.Format("15:04:05"))
		fmt.Printf("Elapsed: %s\n", formatDuration(elapsed))
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List your study sessions, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		sessions, err := manager.List(currentUser())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(sessions) == 0 {
			fmt.Println("No study sessions yet.")
			return
		}

		for _, s := range sessions {
			marker := "⏱️ "
			detail := "running"
			switch s.State() {
			case models.StateCompleted:
				marker = "✅"
				detail = fmt.Sprintf("%s, %d pomodoros", formatMinutes(s.TotalMinutes), s.PomodorosCompleted)
			case models.StateCancelled:
				marker = "❌"
				detail = fmt.Sprintf("%s, abandoned", formatMinutes(s.TotalMinutes))
			}
			fmt.Printf("%s %s  %-40s  %s\n",
				marker, s.StartedAt.Format("2006-01-02 15:04"),
				truncate(s.Task.Title, 40), detail)
			if s.Notes != "" {
				fmt.Printf("   note: %s\n", s.Notes)
			}
		}
	},
}

// formatMinutes renders whole minutes as h/m text
func formatMinutes(minutes int) string {
	return formatDuration(time.Duration(minutes) * time.Minute)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d.Hours() >= 1 {
		return fmt.Sprintf("%.1fh", d.Hours())
	} else if d.Minutes() >= 1 {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.0fs", d.Seconds())
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start without the focus timer UI")

	finishCmd.Flags().IntP("pomodoros", "p", 0, "Completed focus intervals this session")
	finishCmd.Flags().Bool("abandon", false, "Record the session as cancelled early")
	finishCmd.Flags().StringP("note", "n", "", "Note to attach to the session")
}
