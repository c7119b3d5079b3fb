package models

import "time"

// Task represents a single entry in the to-do list.
type Task struct {
	// ID is the stable identifier for this task. It never changes once the
	// task is created, even when other tasks are removed around it.
	ID string `json:"id"`
	// Title is the short label shown in the list.
	Title string `json:"title"`
	// Description holds free-form notes and may span multiple lines.
	Description string `json:"description"`
	// CreatedAt is when the task was first saved.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the task was last saved, if it has been edited.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Valid returns true if both title and description are non-empty.
// Whitespace counts as content; only the empty string is rejected.
func (t Task) Valid() bool {
	return t.Title != "" && t.Description != ""
}

// IsZero returns true if the task has no ID.
func (t Task) IsZero() bool {
	return t.ID == ""
}
