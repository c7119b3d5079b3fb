// Package timer implements the single shared focus countdown.
//
// A Countdown starts at a fixed duration (25 minutes by default) and loses one
// second per tick while running. Ticks come from an injected Scheduler through a
// cancellable Handle that the Countdown owns: Start cancels the previous handle
// before scheduling a new one, and Stop, Close and reaching zero all cancel it.
//
// State machine:
//
//	Idle     --Start-->  Running
//	Running  --Tick-->   Running  (remaining > 0)
//	Running  --Tick-->   Stopped  (remaining reached 0, dialog still visible)
//	Running  --Stop-->   Idle
//	Stopped  --Stop-->   Idle
//	Stopped  --Start-->  Running  (reset to full duration)
package timer

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultDuration is the length of a countdown.
	DefaultDuration = 1500 * time.Second
	// DefaultInterval is the time between ticks.
	DefaultInterval = time.Second
)

// Phase is the countdown's position in its state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseStopped
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseStopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a snapshot of the countdown for rendering.
type State struct {
	Remaining int
	Running   bool
	Visible   bool
}

// Phase derives the state-machine phase from the snapshot.
func (s State) Phase() Phase {
	switch {
	case s.Running:
		return PhaseRunning
	case s.Visible:
		return PhaseStopped
	default:
		return PhaseIdle
	}
}

// Display returns the remaining time as M:SS.
func (s State) Display() string {
	return Format(s.Remaining)
}

// Format renders seconds as M:SS: minutes without padding, seconds always two digits.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Option configures a Countdown.
type Option func(*Countdown)

// WithDuration sets the initial duration, truncated to whole seconds.
func WithDuration(d time.Duration) Option {
	return func(c *Countdown) {
		if secs := int(d / time.Second); secs > 0 {
			c.initial = secs
		}
	}
}

// WithInterval sets the wall-clock time between scheduled ticks. Each tick
// still removes one second, so anything but DefaultInterval is for tests only.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithOnTick registers an observer called after every scheduler-driven tick
// that changed the state. It runs on the scheduler's goroutine, outside the
// countdown's lock.
func WithOnTick(fn func(State)) Option {
	return func(c *Countdown) {
		c.onTick = fn
	}
}

// Countdown is the shared focus timer.
type Countdown struct {
	mu        sync.Mutex
	scheduler Scheduler
	initial   int
	interval  time.Duration
	onTick    func(State)

	remaining int
	running   bool
	visible   bool

	handle Handle
	// gen identifies the live handle; callbacks from older handles are ignored.
	gen uint64
}

// New creates an idle Countdown driven by scheduler.
func New(scheduler Scheduler, opts ...Option) *Countdown {
	c := &Countdown{
		scheduler: scheduler,
		initial:   int(DefaultDuration / time.Second),
		interval:  DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.remaining = c.initial
	return c
}

// Start resets to the full duration, shows the dialog and begins ticking.
// Calling it while already running restarts from the full duration.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.remaining = c.initial
	c.running = true
	c.visible = true

	c.gen++
	gen := c.gen
	c.handle = c.scheduler.Every(c.interval, func() {
		c.scheduledTick(gen)
	})
}

// Stop hides the dialog and stops ticking. The remaining time is kept.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.running = false
	c.visible = false
}

// Tick removes one second. It does nothing unless the countdown is running.
// The tick that reaches zero also stops the countdown and cancels the schedule.
func (c *Countdown) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tickLocked()
}

// Close cancels any pending schedule. Used on teardown.
func (c *Countdown) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.running = false
}

// State returns a snapshot of the countdown.
func (c *Countdown) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Display returns the remaining time as M:SS.
func (c *Countdown) Display() string {
	return c.State().Display()
}

// Initial returns the configured duration in seconds.
func (c *Countdown) Initial() int {
	return c.initial
}

func (c *Countdown) scheduledTick(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.running {
		c.mu.Unlock()
		return
	}
	c.tickLocked()
	s := c.stateLocked()
	onTick := c.onTick
	c.mu.Unlock()

	if onTick != nil {
		onTick(s)
	}
}

func (c *Countdown) tickLocked() {
	if !c.running {
		return
	}
	if c.remaining-1 <= 0 {
		c.remaining = 0
		c.running = false
		c.cancelLocked()
		return
	}
	c.remaining--
}

func (c *Countdown) cancelLocked() {
	if c.handle != nil {
		c.handle.Cancel()
		c.handle = nil
	}
}

func (c *Countdown) stateLocked() State {
	return State{
		Remaining: c.remaining,
		Running:   c.running,
		Visible:   c.visible,
	}
}
