// Package tui provides the terminal user interface for tasktimer.
//
// The App model renders the to-do list and two dialogs on top of it:
//   - the task manager dialog, for creating a task or editing the selected one
//   - the timer dialog, showing the shared focus countdown as M:SS
//
// All task state lives in a tasks.Store and all countdown state in a
// timer.Countdown; the models here only translate key presses into calls on
// those two and render their current state.
//
// Usage:
//
//	app := tui.NewApp(store, countdown, tui.WithLogger(logger))
//	program := tui.NewProgram(app, true)
//
//	// From the countdown's tick observer
//	program.Send(tui.TimerTickMsg{State: state})
//
//	_, err := program.Run()
//
// Keys in the list: a/n add, enter/e edit, d/delete remove, s start the
// timer, q quit. In the task manager: ctrl+s save, esc cancel, tab switch
// field. In the timer: esc/x stop and close, s restart.
package tui
