package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/tasktimer/internal/tasks"
)

// EditDialogTitle is the heading of the create/edit dialog.
const EditDialogTitle = "Task Manager"

// editField identifies which input has focus.
type editField int

const (
	fieldTitle editField = iota
	fieldNotes
)

// EditDialog is the create/edit dialog: a single-line title and multi-line notes.
// It only holds the widgets; the drafts themselves live in the tasks.Store.
type EditDialog struct {
	title    textinput.Model
	notes    textarea.Model
	focus    editField
	creating bool
	width    int
}

// NewEditDialog creates a new EditDialog.
func NewEditDialog() *EditDialog {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 0
	ti.Width = 40

	ta := textarea.New()
	ta.Placeholder = "Notes"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(40)
	ta.SetHeight(4)

	return &EditDialog{
		title: ti,
		notes: ta,
		width: 48,
	}
}

// SetWidth sets the width of the dialog.
func (d *EditDialog) SetWidth(width int) {
	d.width = width
	inner := width - 6 // Account for border and padding
	if inner < 10 {
		inner = 10
	}
	d.title.Width = inner - 2 // Account for prompt
	d.notes.SetWidth(inner)
}

// Open seeds the inputs from the session drafts and focuses the title.
func (d *EditDialog) Open(s tasks.Session) tea.Cmd {
	d.creating = s.Creating()
	d.title.SetValue(s.Title)
	d.title.CursorEnd()
	d.notes.SetValue(s.Description)
	return d.focusField(fieldTitle)
}

// SwitchFocus moves focus to the other input.
func (d *EditDialog) SwitchFocus() tea.Cmd {
	if d.focus == fieldTitle {
		return d.focusField(fieldNotes)
	}
	return d.focusField(fieldTitle)
}

func (d *EditDialog) focusField(f editField) tea.Cmd {
	d.focus = f
	if f == fieldTitle {
		d.notes.Blur()
		return d.title.Focus()
	}
	d.title.Blur()
	return d.notes.Focus()
}

// Update forwards input to the focused field.
func (d *EditDialog) Update(msg tea.Msg) (*EditDialog, tea.Cmd) {
	var cmd tea.Cmd
	if d.focus == fieldTitle {
		d.title, cmd = d.title.Update(msg)
	} else {
		d.notes, cmd = d.notes.Update(msg)
	}
	return d, cmd
}

// Title returns the current title input.
func (d *EditDialog) Title() string {
	return d.title.Value()
}

// Notes returns the current notes input.
func (d *EditDialog) Notes() string {
	return d.notes.Value()
}

// View renders the dialog.
func (d *EditDialog) View() string {
	headingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("243"))

	focusedLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		Width(d.width - 2)

	subtitle := "Edit task"
	if d.creating {
		subtitle = "New task"
	}

	titleLabel, notesLabel := labelStyle, labelStyle
	if d.focus == fieldTitle {
		titleLabel = focusedLabelStyle
	} else {
		notesLabel = focusedLabelStyle
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render(EditDialogTitle),
		labelStyle.Italic(true).Render(subtitle),
		"",
		titleLabel.Render("Title"),
		d.title.View(),
		"",
		notesLabel.Render("Notes"),
		d.notes.View(),
	))
}
