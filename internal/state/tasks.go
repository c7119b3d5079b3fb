package state

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ShayCichocki/tasktimer/internal/tasks"
	"github.com/ShayCichocki/tasktimer/pkg/models"
)

// TaskCollection is a tasks.Collection stored in the in-memory database.
type TaskCollection struct {
	db *DB
}

// NewTaskCollection creates a TaskCollection over db.
func NewTaskCollection(db *DB) *TaskCollection {
	return &TaskCollection{db: db}
}

const taskColumns = `id, title, description, created_at, updated_at`

// List implements tasks.Collection.
func (c *TaskCollection) List() ([]models.Task, error) {
	rows, err := c.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	out := make([]models.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

// Len implements tasks.Collection.
func (c *TaskCollection) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// At implements tasks.Collection.
func (c *TaskCollection) At(index int) (models.Task, error) {
	n, err := c.Len()
	if err != nil {
		return models.Task{}, err
	}
	if err := tasks.CheckIndex("at", index, n); err != nil {
		return models.Task{}, err
	}

	row := c.db.QueryRow(`SELECT `+taskColumns+` FROM tasks ORDER BY position LIMIT 1 OFFSET ?`, index)
	t, err := scanTask(row)
	if err != nil {
		return models.Task{}, fmt.Errorf("get task at %d: %w", index, err)
	}
	return t, nil
}

// Append implements tasks.Collection.
func (c *TaskCollection) Append(t models.Task) error {
	_, err := c.db.Exec(`
		INSERT INTO tasks (id, position, title, description, created_at, updated_at)
		SELECT ?, COALESCE(MAX(position), 0) + 1, ?, ?, ?, ? FROM tasks
	`, t.ID, t.Title, t.Description, formatTime(t.CreatedAt), nullableTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("append task: %w", err)
	}
	return nil
}

// Replace implements tasks.Collection.
func (c *TaskCollection) Replace(t models.Task) error {
	res, err := c.db.Exec(`
		UPDATE tasks SET title = ?, description = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`, t.Title, t.Description, formatTime(t.CreatedAt), nullableTime(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("replace task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("replace %s: %w", t.ID, tasks.ErrTaskNotFound)
	}
	return nil
}

// RemoveAt implements tasks.Collection.
func (c *TaskCollection) RemoveAt(index int) (models.Task, error) {
	var removed models.Task
	err := c.db.Transaction(func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
			return fmt.Errorf("count tasks: %w", err)
		}
		if err := tasks.CheckIndex("remove", index, n); err != nil {
			return err
		}

		row := tx.QueryRow(`SELECT `+taskColumns+` FROM tasks ORDER BY position LIMIT 1 OFFSET ?`, index)
		t, err := scanTask(row)
		if err != nil {
			return fmt.Errorf("get task at %d: %w", index, err)
		}
		if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, t.ID); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		removed = t
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (models.Task, error) {
	var t models.Task
	var createdAt string
	var updatedAt sql.NullString
	if err := r.Scan(&t.ID, &t.Title, &t.Description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, tasks.ErrTaskNotFound
		}
		return models.Task{}, err
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("parse created_at of %s: %w", t.ID, err)
	}
	updated, err := parseNullableTime(updatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("parse updated_at of %s: %w", t.ID, err)
	}
	t.CreatedAt = created
	t.UpdatedAt = updated
	return t, nil
}
