package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yerdaulet/studytrack/internal/config"
	"github.com/yerdaulet/studytrack/internal/models"
	"github.com/yerdaulet/studytrack/internal/session"
)

// RunTimerTUI starts the interactive focus timer for a running session
func RunTimerTUI(sess *models.StudySession, manager *session.Manager, cfg *config.Config) error {
	model := NewTimerModel(sess, manager, cfg)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Report the outcome after the TUI closes
	if m, ok := finalModel.(TimerModel); ok {
		switch {
		case m.err != nil:
			fmt.Printf("❌ Error: %v\n", m.err)
		case m.finished && m.final != nil:
			fmt.Printf("✅ Finished session on %q: %d minutes, %d pomodoros\n",
				m.sess.Task.Title, m.final.TotalMinutes, m.final.PomodorosCompleted)
		case m.abandoned && m.final != nil:
			fmt.Printf("❌ Abandoned session on %q after %d minutes\n",
				m.sess.Task.Title, m.final.TotalMinutes)
		case m.detached:
			fmt.Println("⏱️  Session left running. Finish it with 'studytrack finish'.")
		}
	}

	return nil
}
