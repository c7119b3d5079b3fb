package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/tasktimer/pkg/models"
)

// TaskList displays the ordered to-do list with a selection cursor.
// Each task renders as its title in bold with the description beneath.
type TaskList struct {
	tasks        []models.Task
	selected     int
	scrollOffset int
	width        int
	height       int

	// Styles
	titleStyle       lipgloss.Style
	descriptionStyle lipgloss.Style
	selectedStyle    lipgloss.Style
	cursorStyle      lipgloss.Style
	emptyStyle       lipgloss.Style
}

// NewTaskList creates a new TaskList instance.
func NewTaskList() *TaskList {
	return &TaskList{
		tasks:  make([]models.Task, 0),
		width:  80,
		height: 20,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")),

		descriptionStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),

		selectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("236")),

		cursorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true),

		emptyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}

// SetTasks replaces the displayed tasks and keeps the cursor in range.
func (l *TaskList) SetTasks(tasks []models.Task) {
	l.tasks = tasks
	if l.selected >= len(l.tasks) {
		l.selected = len(l.tasks) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	l.ensureVisible()
}

// SetSize updates the list dimensions.
func (l *TaskList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// Select moves the cursor to index if it is in range.
func (l *TaskList) Select(index int) {
	if index >= 0 && index < len(l.tasks) {
		l.selected = index
		l.ensureVisible()
	}
}

// Update handles cursor movement.
func (l *TaskList) Update(msg tea.Msg) (*TaskList, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.selected > 0 {
				l.selected--
				l.ensureVisible()
			}
		case "down", "j":
			if l.selected < len(l.tasks)-1 {
				l.selected++
				l.ensureVisible()
			}
		case "home", "g":
			l.selected = 0
			l.ensureVisible()
		case "end", "G":
			if len(l.tasks) > 0 {
				l.selected = len(l.tasks) - 1
				l.ensureVisible()
			}
		}
	}
	return l, nil
}

// visibleTasks returns how many tasks fit, assuming title plus one
// description line plus a blank separator per task.
func (l *TaskList) visibleTasks() int {
	n := l.height / 3
	if n < 1 {
		n = 1
	}
	return n
}

// ensureVisible adjusts scroll offset to keep the selected task visible.
func (l *TaskList) ensureVisible() {
	rows := l.visibleTasks()
	if l.selected < l.scrollOffset {
		l.scrollOffset = l.selected
	} else if l.selected >= l.scrollOffset+rows {
		l.scrollOffset = l.selected - rows + 1
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// View renders the list.
func (l *TaskList) View() string {
	if len(l.tasks) == 0 {
		return l.emptyStyle.Render("  No tasks yet. Press a to add one.")
	}

	end := l.scrollOffset + l.visibleTasks()
	if end > len(l.tasks) {
		end = len(l.tasks)
	}

	items := make([]string, 0, end-l.scrollOffset)
	for i := l.scrollOffset; i < end; i++ {
		items = append(items, l.renderTask(l.tasks[i], i == l.selected))
	}
	return strings.Join(items, "\n\n")
}

// renderTask renders one task: a cursor gutter, the title, and the
// description indented underneath, one output line per description line.
func (l *TaskList) renderTask(task models.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = l.cursorStyle.Render("▸ ")
	}

	maxTitleLen := l.width - 4
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := truncate(task.Title, maxTitleLen)

	lines := []string{cursor + l.titleStyle.Render(title)}
	for _, line := range strings.Split(task.Description, "\n") {
		lines = append(lines, "  "+l.descriptionStyle.Render(line))
	}

	block := strings.Join(lines, "\n")
	if selected {
		return l.selectedStyle.Render(block)
	}
	return block
}

// Selected returns the cursor position, or -1 if the list is empty.
func (l *TaskList) Selected() int {
	if len(l.tasks) == 0 {
		return -1
	}
	return l.selected
}

// SelectedTask returns the task under the cursor, or nil if none.
func (l *TaskList) SelectedTask() *models.Task {
	i := l.Selected()
	if i < 0 {
		return nil
	}
	task := l.tasks[i]
	return &task
}

// TaskCount returns the number of tasks.
func (l *TaskList) TaskCount() int {
	return len(l.tasks)
}

// truncate shortens s to max runes, ending with "..." when cut.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
