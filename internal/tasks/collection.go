package tasks

import (
	"fmt"

	"github.com/ShayCichocki/tasktimer/pkg/models"
)

// Collection is an ordered sequence of tasks. Insertion order is preserved
// and duplicates are allowed. Implementations live only as long as the process.
type Collection interface {
	// List returns a snapshot of all tasks in order.
	List() ([]models.Task, error)
	// Len returns the number of tasks.
	Len() (int, error)
	// At returns the task at index.
	At(index int) (models.Task, error)
	// Append adds a task at the end.
	Append(task models.Task) error
	// Replace overwrites, in place, the task with the same ID.
	Replace(task models.Task) error
	// RemoveAt deletes the task at index, shifting later tasks left by one.
	RemoveAt(index int) (models.Task, error)
}

// MemoryCollection is a slice-backed Collection.
type MemoryCollection struct {
	tasks []models.Task
}

// NewMemoryCollection creates an empty MemoryCollection.
func NewMemoryCollection() *MemoryCollection {
	return &MemoryCollection{tasks: make([]models.Task, 0)}
}

var _ Collection = (*MemoryCollection)(nil)

// List implements Collection.
func (c *MemoryCollection) List() ([]models.Task, error) {
	out := make([]models.Task, len(c.tasks))
	copy(out, c.tasks)
	return out, nil
}

// Len implements Collection.
func (c *MemoryCollection) Len() (int, error) {
	return len(c.tasks), nil
}

// At implements Collection.
func (c *MemoryCollection) At(index int) (models.Task, error) {
	if err := CheckIndex("at", index, len(c.tasks)); err != nil {
		return models.Task{}, err
	}
	return c.tasks[index], nil
}

// Append implements Collection.
func (c *MemoryCollection) Append(task models.Task) error {
	c.tasks = append(c.tasks, task)
	return nil
}

// Replace implements Collection.
func (c *MemoryCollection) Replace(task models.Task) error {
	for i := range c.tasks {
		if c.tasks[i].ID == task.ID {
			c.tasks[i] = task
			return nil
		}
	}
	return fmt.Errorf("replace %s: %w", task.ID, ErrTaskNotFound)
}

// RemoveAt implements Collection.
func (c *MemoryCollection) RemoveAt(index int) (models.Task, error) {
	if err := CheckIndex("remove", index, len(c.tasks)); err != nil {
		return models.Task{}, err
	}
	removed := c.tasks[index]
	c.tasks = append(c.tasks[:index], c.tasks[index+1:]...)
	return removed, nil
}
