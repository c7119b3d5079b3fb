package timer

import (
	"sort"
	"sync"
	"time"
)

// Handle is a cancellable repeating schedule.
type Handle interface {
	// Cancel stops further invocations. It is idempotent and never blocks.
	Cancel()
}

// Scheduler runs a callback at a fixed cadence until the returned handle is cancelled.
type Scheduler interface {
	Every(d time.Duration, fn func()) Handle
}

// TickerScheduler is the real-time Scheduler. Each handle owns one goroutine
// and one time.Ticker, both released on Cancel.
type TickerScheduler struct{}

// NewTickerScheduler creates a TickerScheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

// Every implements Scheduler.
func (TickerScheduler) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{stop: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				// A tick and a cancel can be ready together; cancel wins.
				select {
				case <-h.stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

type tickerHandle struct {
	once sync.Once
	stop chan struct{}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() { close(h.stop) })
}

// ManualScheduler is a deterministic Scheduler driven by Advance. It is meant
// for tests of the countdown and of anything built on top of it.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	entries []*manualEntry
}

type manualEntry struct {
	every     time.Duration
	next      time.Duration
	fn        func()
	cancelled bool
	seq       int
}

// NewManualScheduler creates a ManualScheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every implements Scheduler.
func (s *ManualScheduler) Every(d time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &manualEntry{every: d, next: s.now + d, fn: fn, seq: len(s.entries)}
	s.entries = append(s.entries, e)
	return &manualHandle{s: s, e: e}
}

// Advance moves time forward by d, firing due callbacks in time order.
// Callbacks run without the scheduler lock held and may cancel handles.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		e := s.nextDue(target)
		if e == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = e.next
		e.next += e.every
		fn := e.fn
		s.mu.Unlock()

		fn()
	}
}

// nextDue returns the earliest live entry due at or before target. Caller holds mu.
func (s *ManualScheduler) nextDue(target time.Duration) *manualEntry {
	live := make([]*manualEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.cancelled && e.next <= target {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].next == live[j].next {
			return live[i].seq < live[j].seq
		}
		return live[i].next < live[j].next
	})
	return live[0]
}

// Active returns the number of schedules that have not been cancelled.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}

type manualHandle struct {
	s *ManualScheduler
	e *manualEntry
}

func (h *manualHandle) Cancel() {
	h.s.mu.Lock()
	h.e.cancelled = true
	h.s.mu.Unlock()
}
