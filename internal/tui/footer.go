package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Footer renders the status message and keyboard hints.
type Footer struct {
	message string
	success bool
	mode    Mode
	width   int

	// Styles
	successStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	hintStyle      lipgloss.Style
	separatorStyle lipgloss.Style
}

// NewFooter creates a new Footer instance.
func NewFooter() *Footer {
	return &Footer{
		successStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")).
			Bold(true),

		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),

		separatorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("236")),
	}
}

// SetMessage sets the status message.
func (f *Footer) SetMessage(message string, success bool) {
	f.message = message
	f.success = success
}

// ClearMessage removes the status message.
func (f *Footer) ClearMessage() {
	f.message = ""
}

// Message returns the current status message.
func (f *Footer) Message() string {
	return f.message
}

// SetMode sets which screen the hints describe.
func (f *Footer) SetMode(mode Mode) {
	f.mode = mode
}

// SetWidth sets the footer width.
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// View renders the footer.
func (f *Footer) View() string {
	var left string
	if f.message != "" {
		if f.success {
			left = f.successStyle.Render("✓ " + f.message)
		} else {
			left = f.errorStyle.Render("✗ " + f.message)
		}
	}

	right := f.keyboardHints()
	if left == "" {
		return right
	}
	return left + f.separatorStyle.Render(" │ ") + right
}

// keyboardHints returns context-sensitive keyboard hints.
func (f *Footer) keyboardHints() string {
	var hints string
	switch f.mode {
	case ModeEdit:
		hints = "ctrl+s save │ tab switch field │ esc cancel"
	case ModeTimer:
		hints = "s restart │ esc/x close"
	default:
		hints = "a add │ enter edit │ d delete │ s start timer │ ↑/↓ move │ q quit"
	}
	return f.hintStyle.Render(hints)
}

// pluralize formats n with the singular or plural noun.
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
