package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"

	"github.com/yerdaulet/studytrack/internal/config"
	"github.com/yerdaulet/studytrack/internal/models"
	"github.com/yerdaulet/studytrack/internal/session"
)

// timerPhase distinguishes a focus interval from a break
type timerPhase int

const (
	phaseFocus timerPhase = iota
	phaseBreak
)

// TimerModel drives the focus countdown. Pausing only suspends the
// local countdown; the persisted session keeps running until it is
// finished or abandoned.
type TimerModel struct {
	width  int
	height int

	sess    *models.StudySession
	manager *session.Manager
	cfg     *config.Config

	phase     timerPhase
	remaining time.Duration
	total     time.Duration
	paused    bool
	pomodoros int

	bar       progress.Model
	noteInput textinput.Model
	noting    bool // the finish prompt is open

	finished  bool
	abandoned bool
	detached  bool // left the session running
	final     *models.StudySession
	err       error
}

// timerTickMsg is sent every second to advance the countdown
type timerTickMsg struct{}

// NewTimerModel creates a timer for a freshly started session
func NewTimerModel(sess *models.StudySession, manager *session.Manager, cfg *config.Config) TimerModel {
	focus := time.Duration(cfg.FocusMinutes) * time.Minute

	bar := progress.New(progress.WithSolidFill(ColorAccentMain))
	bar.ShowPercentage = false

	note := textinput.New()
	note.Placeholder = "Session note (Enter to save, leave empty to skip)"
	note.CharLimit = 500
	note.Width = 60
	note.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	note.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))

	return TimerModel{
		sess:      sess,
		manager:   manager,
		cfg:       cfg,
		phase:     phaseFocus,
		remaining: focus,
		total:     focus,
		bar:       bar,
		noteInput: note,
	}
}

// Init starts the countdown ticker
func (m TimerModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if m.finished || m.abandoned || m.detached {
			return m, nil
		}
		if !m.paused && !m.noting {
			m.remaining -= time.Second
			if m.remaining <= 0 {
				m.advancePhase()
			}
		}
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(msg.Width-10, 50)
		return m, nil

	case tea.KeyMsg:
		if m.noting {
			return m.updateNotePrompt(msg)
		}

		switch msg.String() {
		case "p", "P":
			m.paused = !m.paused
			return m, nil
		case "f", "F":
			m.noting = true
			m.noteInput.Focus()
			return m, textinput.Blink
		case "a", "A":
			m.abandoned = true
			m.final, m.err = m.manager.Complete(m.sess.UserID, m.sess.ID, m.pomodoros, false, "")
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.detached = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// updateNotePrompt handles keys while the finish prompt is open
func (m TimerModel) updateNotePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.finished = true
		m.final, m.err = m.manager.Complete(
			m.sess.UserID, m.sess.ID, m.pomodoros, true, strings.TrimSpace(m.noteInput.Value()))
		return m, tea.Quit
	case "esc":
		m.noting = false
		m.noteInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// advancePhase flips between focus and break when the countdown hits
// zero, counting a pomodoro for each full focus interval.
func (m *TimerModel) advancePhase() {
	if m.phase == phaseFocus {
		m.pomodoros++
		m.phase = phaseBreak
		m.total = time.Duration(m.cfg.ShortBreakMinutes) * time.Minute
		notify("Focus interval complete", fmt.Sprintf("Pomodoro %d done. Time for a break.", m.pomodoros))
	} else {
		m.phase = phaseFocus
		m.total = time.Duration(m.cfg.FocusMinutes) * time.Minute
		notify("Break over", "Back to studying.")
	}
	m.remaining = m.total
}

// notify sends a best-effort desktop notification
func notify(title, body string) {
	beeep.AppName = "studytrack"
	_ = beeep.Notify(title, body, "")
}

// View renders the timer
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	headerText := "🍅 FOCUS"
	headerColor := ColorAccentBright
	if m.phase == phaseBreak {
		headerText = "☕ BREAK"
	}
	if m.paused {
		headerText += "  (paused)"
		headerColor = ColorWarning
	}
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(headerColor)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	b.WriteString(header.Render(headerText))
	b.WriteString("\n\n")

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	b.WriteString(title.Render(m.sess.Task.Title))
	b.WriteString("\n\n")

	clock := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	b.WriteString(clock.Render(formatCountdown(m.remaining)))
	b.WriteString("\n\n")

	pct := 1.0
	if m.total > 0 {
		pct = 1.0 - float64(m.remaining)/float64(m.total)
	}
	barLine := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(m.width)
	b.WriteString(barLine.Render(m.bar.ViewAs(pct)))
	b.WriteString("\n\n")

	info := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Align(lipgloss.Center).
		Width(m.width)
	b.WriteString(info.Render(fmt.Sprintf("Pomodoros this session: %d  ·  Started at %s",
		m.pomodoros, m.sess.StartedAt.Format("15:04:05"))))
	b.WriteString("\n\n")

	if m.noting {
		prompt := lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(m.width)
		b.WriteString(prompt.Render(m.noteInput.View()))
		b.WriteString("\n\n")
	}

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width)
	if m.noting {
		b.WriteString(help.Render("Enter save & finish · Esc back"))
	} else {
		b.WriteString(help.Render("P pause · F finish · A abandon · Q leave running"))
	}

	return b.String()
}

// formatCountdown renders remaining time as mm:ss or h:mm:ss
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
