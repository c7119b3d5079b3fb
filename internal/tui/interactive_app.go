package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ShayCichocki/tasktimer/internal/logging"
	"github.com/ShayCichocki/tasktimer/internal/tasks"
	"github.com/ShayCichocki/tasktimer/internal/timer"
)

// Mode is the screen that currently receives keys.
type Mode int

const (
	ModeList Mode = iota
	ModeEdit
	ModeTimer
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeTimer:
		return "timer"
	default:
		return "list"
	}
}

// AppOption configures an App.
type AppOption func(*App)

// WithLogger sets the logger used for user actions.
func WithLogger(logger *log.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// App is the main model. It owns no task or countdown state of its own:
// key presses become calls on the store and countdown, and View renders them.
type App struct {
	store     *tasks.Store
	countdown *timer.Countdown
	logger    *log.Logger

	header      *Header
	list        *TaskList
	editor      *EditDialog
	timerDialog *TimerDialog
	footer      *Footer
	layout      *LayoutManager

	width    int
	height   int
	quitting bool
}

// NewApp creates a new App over store and countdown.
func NewApp(store *tasks.Store, countdown *timer.Countdown, opts ...AppOption) *App {
	a := &App{
		store:       store,
		countdown:   countdown,
		logger:      logging.Discard(),
		header:      NewHeader(),
		list:        NewTaskList(),
		editor:      NewEditDialog(),
		timerDialog: NewTimerDialog(),
		footer:      NewFooter(),
	}
	a.layout = NewLayoutManager(0, 0, a.header.Height())
	for _, opt := range opts {
		opt(a)
	}

	store.OnChange(func(c tasks.Change) {
		if c.AffectsList() {
			a.refresh()
		}
	})
	a.refresh()
	return a
}

// refresh reloads the list from the store.
func (a *App) refresh() {
	list, err := a.store.Tasks()
	if err != nil {
		a.logger.Error("loading tasks", "err", err)
		a.footer.SetMessage("Could not load tasks", false)
		return
	}
	a.list.SetTasks(list)
	a.header.SetCount(len(list))
}

// Mode returns the screen that currently receives keys.
func (a *App) Mode() Mode {
	switch {
	case a.store.Session().Open:
		return ModeEdit
	case a.countdown.State().Visible:
		return ModeTimer
	default:
		return ModeList
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		var cmd tea.Cmd
		switch a.Mode() {
		case ModeEdit:
			cmd = a.updateEdit(msg)
		case ModeTimer:
			cmd = a.updateTimer(msg)
		default:
			cmd = a.updateList(msg)
		}
		a.footer.SetMode(a.Mode())
		return a, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateSizes()
		return a, nil

	case TimerTickMsg:
		if msg.State.Remaining == 0 && !msg.State.Running {
			a.logger.Info("timer finished", "task", a.timerDialog.Task())
		}
		return a, nil
	}

	// Cursor blink and other widget messages go to the editor while it is open.
	if a.Mode() == ModeEdit {
		_, cmd := a.editor.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return a.quit()

	case "a", "n":
		a.footer.ClearMessage()
		a.store.OpenCreate()
		return a.editor.Open(a.store.Session())

	case "enter", "e":
		index := a.list.Selected()
		if index < 0 {
			return nil
		}
		a.footer.ClearMessage()
		if err := a.store.OpenEdit(index); err != nil {
			a.logger.Error("opening task", "index", index, "err", err)
			a.footer.SetMessage("Could not open task", false)
			return nil
		}
		return a.editor.Open(a.store.Session())

	case "d", "delete":
		task := a.list.SelectedTask()
		if task == nil {
			return nil
		}
		if err := a.store.Remove(a.list.Selected()); err != nil {
			a.logger.Error("removing task", "id", task.ID, "err", err)
			a.footer.SetMessage("Could not remove task", false)
			return nil
		}
		a.footer.SetMessage("Removed "+truncate(task.Title, 40), true)

	case "s":
		task := a.list.SelectedTask()
		if task == nil {
			return nil
		}
		a.footer.ClearMessage()
		a.timerDialog.SetTask(task.Title)
		a.countdown.Start()
		a.logger.Info("timer started", "task", task.Title, "seconds", a.countdown.Initial())

	default:
		a.list.Update(msg)
	}
	return nil
}

func (a *App) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		a.commit()
		return nil

	case "esc":
		a.store.Cancel()
		return nil

	case "tab", "shift+tab":
		return a.editor.SwitchFocus()
	}

	_, cmd := a.editor.Update(msg)
	s := a.store.Session()
	if title := a.editor.Title(); title != s.Title {
		a.store.SetDraftTitle(title)
	}
	if notes := a.editor.Notes(); notes != s.Description {
		a.store.SetDraftDescription(notes)
	}
	return cmd
}

// commit saves the dialog and reports the outcome in the footer.
func (a *App) commit() {
	creating := a.store.Session().Creating()
	res, err := a.store.Commit()
	switch {
	case errors.Is(err, tasks.ErrTaskNotFound):
		a.footer.SetMessage("This task was removed; press esc to discard", false)
		return
	case err != nil:
		a.logger.Error("saving task", "err", err)
		a.footer.SetMessage("Could not save task", false)
		return
	}

	switch res.Reason {
	case tasks.SkipEmptyTitle:
		a.footer.SetMessage("Title is required", false)
	case tasks.SkipEmptyDescription:
		a.footer.SetMessage("Notes are required", false)
	case tasks.SkipNone:
		if creating {
			a.footer.SetMessage("Task added", true)
		} else {
			a.footer.SetMessage("Task updated", true)
		}
		if n, err := a.store.Len(); err == nil && res.Created {
			a.list.Select(n - 1)
		}
	}
}

func (a *App) updateTimer(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "x":
		a.countdown.Stop()
		a.logger.Info("timer stopped", "remaining", a.countdown.State().Remaining)
	case "s":
		a.countdown.Start()
		a.logger.Info("timer restarted", "task", a.timerDialog.Task())
	}
	return nil
}

// quit cancels the countdown schedule and ends the program.
func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.countdown.Close()
	return tea.Quit
}

// updateSizes updates the sizes of child components based on terminal size.
func (a *App) updateSizes() {
	a.layout.SetSize(a.width, a.height)
	dims := a.layout.Calculate()

	a.header.SetWidth(a.width)
	a.footer.SetWidth(a.width)
	a.list.SetSize(dims.BodyWidth, dims.BodyHeight)
	a.editor.SetWidth(dims.DialogWidth)
	a.timerDialog.SetWidth(dims.DialogWidth)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var body string
	switch a.Mode() {
	case ModeEdit:
		body = a.editor.View()
	case ModeTimer:
		body = a.timerDialog.View(a.countdown.State())
	default:
		body = a.list.View()
	}

	if a.width > 0 && a.Mode() != ModeList {
		dims := a.layout.Calculate()
		body = lipgloss.Place(dims.BodyWidth, dims.BodyHeight, lipgloss.Center, lipgloss.Center, body)
	} else if a.width > 0 {
		dims := a.layout.Calculate()
		body = lipgloss.NewStyle().Height(dims.BodyHeight).MaxHeight(dims.BodyHeight).Render(body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.header.View(), body, a.footer.View())
}

// NewProgram creates a new Bubbletea program for app.
func NewProgram(app *App, altScreen bool, opts ...tea.ProgramOption) *tea.Program {
	if altScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	return tea.NewProgram(app, opts...)
}
