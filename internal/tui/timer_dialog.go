package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/tasktimer/internal/timer"
)

// TimerDialogTitle is the heading of the countdown dialog.
const TimerDialogTitle = "Timer"

// TimesUp replaces the status line once the countdown reaches zero.
const TimesUp = "Time's up"

// TimerTickMsg carries a countdown snapshot from the scheduler goroutine
// into the program loop.
type TimerTickMsg struct {
	State timer.State
}

// TimerDialog renders the shared countdown.
type TimerDialog struct {
	task  string
	width int
}

// NewTimerDialog creates a new TimerDialog.
func NewTimerDialog() *TimerDialog {
	return &TimerDialog{width: 48}
}

// SetWidth sets the dialog width.
func (d *TimerDialog) SetWidth(width int) {
	d.width = width
}

// SetTask sets the title of the task the timer was started from.
func (d *TimerDialog) SetTask(title string) {
	d.task = title
}

// Task returns the title of the task the timer was started from.
func (d *TimerDialog) Task() string {
	return d.task
}

// View renders the dialog for the given countdown state.
func (d *TimerDialog) View(s timer.State) string {
	headingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	taskStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true)

	displayStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(1, 0)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243"))

	borderColor := lipgloss.Color("63")
	status := "running"
	switch s.Phase() {
	case timer.PhaseStopped:
		borderColor = lipgloss.Color("214")
		status = TimesUp
		statusStyle = statusStyle.Foreground(lipgloss.Color("214")).Bold(true)
	case timer.PhaseIdle:
		status = "stopped"
	}

	inner := d.width - 6
	if inner < 10 {
		inner = 10
	}

	lines := []string{headingStyle.Render(TimerDialogTitle)}
	if d.task != "" {
		lines = append(lines, taskStyle.Render(truncate(d.task, inner)))
	}
	lines = append(lines,
		displayStyle.Render(s.Display()),
		statusStyle.Render(status),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 2).
		Width(d.width - 2).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}
