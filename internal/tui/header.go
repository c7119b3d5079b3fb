package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// HeaderTitle is the heading above the list.
const HeaderTitle = "Your To-do List"

// Header renders the title bar.
type Header struct {
	width int
	count int
}

// NewHeader creates a new Header.
func NewHeader() *Header {
	return &Header{
		width: 80,
	}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetCount sets the number of tasks shown next to the title.
func (h *Header) SetCount(count int) {
	h.count = count
}

// View renders the header.
func (h *Header) View() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF8E53")).
		Bold(true).
		Render(HeaderTitle)

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243")).
		Italic(true).
		Render(pluralize(h.count, "task", "tasks"))

	return lipgloss.NewStyle().
		Width(h.width).
		Align(lipgloss.Center).
		MarginTop(1).
		PaddingBottom(1).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, subtitle))
}

// Height returns the header height in lines.
func (h *Header) Height() int {
	return 4 // 1 margin + title + subtitle + 1 padding
}
