package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/tasktimer/internal/config"
	"github.com/ShayCichocki/tasktimer/internal/logging"
	"github.com/ShayCichocki/tasktimer/internal/state"
	"github.com/ShayCichocki/tasktimer/internal/tasks"
	"github.com/ShayCichocki/tasktimer/internal/timer"
	"github.com/ShayCichocki/tasktimer/internal/tui"
)

// runInteractive loads configuration and runs the TUI until the user quits
// or a shutdown signal arrives.
func runInteractive(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:           cfg.Log.Level,
		File:            cfg.Log.File,
		ReportTimestamp: true,
		Prefix:          "tasktimer",
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	var program *tea.Program
	sess, err := newSession(cfg, logger, timer.NewTickerScheduler(), func(s timer.State) {
		program.Send(tui.TimerTickMsg{State: s})
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	program = tui.NewProgram(sess.app, cfg.TUI.AltScreen)

	// Set up signal handling
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig.String())
			program.Quit()
		case <-ctx.Done():
		}
	}()

	logger.Info("starting", "backend", cfg.Tasks.Backend, "duration", cfg.Timer.Duration)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	logger.Info("exited")
	return nil
}

// applyFlags lets command-line flags override loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("duration") {
		if err := config.Set(cfg, "timer.duration", flagDuration.String()); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("backend") {
		if err := config.Set(cfg, "tasks.backend", flagBackend); err != nil {
			return err
		}
	}
	return nil
}

// session holds everything one TUI run needs.
type session struct {
	store     *tasks.Store
	countdown *timer.Countdown
	app       *tui.App
	backend   io.Closer
}

// newSession wires the task store, countdown and app together. onTick is
// called from the scheduler goroutine after every tick.
func newSession(cfg *config.Config, logger *log.Logger, scheduler timer.Scheduler, onTick func(timer.State)) (*session, error) {
	collection, backend, err := newCollection(cfg.Tasks.Backend)
	if err != nil {
		return nil, err
	}

	store := tasks.NewStore(collection)
	store.OnChange(func(c tasks.Change) {
		switch c.Kind {
		case tasks.ChangeDraftEdited:
			logger.Debug("draft edited", "id", c.TaskID)
		default:
			logger.Info(string(c.Kind), "id", c.TaskID, "index", c.Index)
		}
	})

	countdown := timer.New(scheduler,
		timer.WithDuration(cfg.Timer.Duration),
		timer.WithOnTick(onTick),
	)

	app := tui.NewApp(store, countdown, tui.WithLogger(logger))

	return &session{
		store:     store,
		countdown: countdown,
		app:       app,
		backend:   backend,
	}, nil
}

// Close cancels the countdown schedule and releases the task backend.
func (s *session) Close() error {
	s.countdown.Close()
	return s.backend.Close()
}

// newCollection returns the task collection for backend.
func newCollection(backend string) (tasks.Collection, io.Closer, error) {
	switch backend {
	case config.BackendSQLite:
		db, err := state.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("opening task database: %w", err)
		}
		return state.NewTaskCollection(db), db, nil
	case config.BackendMemory, "":
		return tasks.NewMemoryCollection(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown task backend %q", backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
