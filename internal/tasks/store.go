// Package tasks owns the to-do list and the edit session backing the
// create/edit dialog.
//
// Callers address tasks by position because that is all a rendered list knows,
// but the edit session remembers the task by its stable ID. A task removed
// while the dialog is open therefore can never cause the save to overwrite a
// different task that shifted into its old position.
package tasks

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/tasktimer/pkg/models"
)

// Session is the transient draft state behind the edit dialog.
type Session struct {
	// TargetID is the ID of the task being edited, or "" when creating.
	TargetID    string
	Title       string
	Description string
	Open        bool
}

// Creating returns true if the session has no target task.
func (s Session) Creating() bool {
	return s.TargetID == ""
}

// SkipReason explains why a commit did not save anything.
type SkipReason string

const (
	SkipNone             SkipReason = ""
	SkipNotOpen          SkipReason = "not_open"
	SkipEmptyTitle       SkipReason = "empty_title"
	SkipEmptyDescription SkipReason = "empty_description"
)

// CommitResult reports the outcome of Store.Commit.
type CommitResult struct {
	// Saved is true if the collection was changed and the dialog closed.
	Saved bool
	// Created is true if a new task was appended rather than an existing one replaced.
	Created bool
	// TaskID is the ID of the saved task.
	TaskID string
	// Reason is set when Saved is false.
	Reason SkipReason
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the task ID generator (uuid v4 by default).
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithClock overrides the time source used for task timestamps.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		s.now = fn
	}
}

// Store manages the ordered task collection and the edit session.
// It is not safe for concurrent use; all calls come from the UI loop.
type Store struct {
	tasks     Collection
	session   Session
	listeners []func(Change)
	newID     func() string
	now       func() time.Time
}

// NewStore creates a Store over the given collection.
func NewStore(c Collection, opts ...Option) *Store {
	s := &Store{
		tasks: c,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a listener called after every state change.
func (s *Store) OnChange(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) emit(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

// Session returns a copy of the current edit session.
func (s *Store) Session() Session {
	return s.session
}

// Tasks returns the tasks in display order.
func (s *Store) Tasks() ([]models.Task, error) {
	return s.tasks.List()
}

// Len returns the number of tasks.
func (s *Store) Len() (int, error) {
	return s.tasks.Len()
}

// OpenCreate opens the dialog for a new task with empty drafts.
// Calling it while the dialog is already open clears the drafts again.
func (s *Store) OpenCreate() {
	s.session = Session{Open: true}
	s.emit(Change{Kind: ChangeSessionOpened, Index: -1})
}

// OpenEdit opens the dialog seeded from the task at index.
func (s *Store) OpenEdit(index int) error {
	task, err := s.tasks.At(index)
	if err != nil {
		return fmt.Errorf("open edit: %w", err)
	}
	s.session = Session{
		TargetID:    task.ID,
		Title:       task.Title,
		Description: task.Description,
		Open:        true,
	}
	s.emit(Change{Kind: ChangeSessionOpened, TaskID: task.ID, Index: index})
	return nil
}

// SetDraftTitle replaces the draft title.
func (s *Store) SetDraftTitle(text string) {
	s.session.Title = text
	s.emit(Change{Kind: ChangeDraftEdited, TaskID: s.session.TargetID, Index: -1})
}

// SetDraftDescription replaces the draft description.
func (s *Store) SetDraftDescription(text string) {
	s.session.Description = text
	s.emit(Change{Kind: ChangeDraftEdited, TaskID: s.session.TargetID, Index: -1})
}

// Commit writes the drafts back to the collection and closes the dialog.
//
// An empty title or description is not an error: nothing changes, the dialog
// stays open, and the result carries the skip reason so the caller may show it.
// If the task being edited was removed in the meantime, ErrTaskNotFound is
// returned and the dialog stays open.
func (s *Store) Commit() (CommitResult, error) {
	if !s.session.Open {
		return CommitResult{Reason: SkipNotOpen}, nil
	}
	if s.session.Title == "" {
		return CommitResult{Reason: SkipEmptyTitle}, nil
	}
	if s.session.Description == "" {
		return CommitResult{Reason: SkipEmptyDescription}, nil
	}

	now := s.now()
	if s.session.Creating() {
		index, err := s.tasks.Len()
		if err != nil {
			return CommitResult{}, fmt.Errorf("commit new task: %w", err)
		}
		task := models.Task{
			ID:          s.newID(),
			Title:       s.session.Title,
			Description: s.session.Description,
			CreatedAt:   now,
		}
		if err := s.tasks.Append(task); err != nil {
			return CommitResult{}, fmt.Errorf("commit new task: %w", err)
		}
		s.close()
		s.emit(Change{Kind: ChangeTaskAdded, TaskID: task.ID, Index: index})
		return CommitResult{Saved: true, Created: true, TaskID: task.ID}, nil
	}

	index, existing, err := s.find(s.session.TargetID)
	if err != nil {
		return CommitResult{}, fmt.Errorf("commit %s: %w", s.session.TargetID, err)
	}
	existing.Title = s.session.Title
	existing.Description = s.session.Description
	existing.UpdatedAt = &now
	if err := s.tasks.Replace(existing); err != nil {
		return CommitResult{}, fmt.Errorf("commit %s: %w", existing.ID, err)
	}
	s.close()
	s.emit(Change{Kind: ChangeTaskUpdated, TaskID: existing.ID, Index: index})
	return CommitResult{Saved: true, TaskID: existing.ID}, nil
}

// Cancel closes the dialog without touching the collection.
func (s *Store) Cancel() {
	s.close()
}

func (s *Store) close() {
	if !s.session.Open {
		return
	}
	s.session.Open = false
	s.emit(Change{Kind: ChangeSessionClosed, TaskID: s.session.TargetID, Index: -1})
}

// Remove deletes the task at index, preserving the order of the rest.
// An open edit session is left alone.
func (s *Store) Remove(index int) error {
	removed, err := s.tasks.RemoveAt(index)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	s.emit(Change{Kind: ChangeTaskRemoved, TaskID: removed.ID, Index: index})
	return nil
}

// find locates a task by ID and returns its current position.
func (s *Store) find(id string) (int, models.Task, error) {
	list, err := s.tasks.List()
	if err != nil {
		return -1, models.Task{}, err
	}
	for i, t := range list {
		if t.ID == id {
			return i, t, nil
		}
	}
	return -1, models.Task{}, ErrTaskNotFound
}

// IsNotFound reports whether err means the edited task disappeared.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTaskNotFound)
}
