package tasks

// ChangeKind identifies what a Change describes.
type ChangeKind string

const (
	ChangeTaskAdded     ChangeKind = "task_added"
	ChangeTaskUpdated   ChangeKind = "task_updated"
	ChangeTaskRemoved   ChangeKind = "task_removed"
	ChangeSessionOpened ChangeKind = "session_opened"
	ChangeSessionClosed ChangeKind = "session_closed"
	ChangeDraftEdited   ChangeKind = "draft_edited"
)

// Change is delivered to Store listeners after every state change so the
// view layer knows to redraw.
type Change struct {
	Kind ChangeKind
	// TaskID is the affected task, or "" for a session about a new task.
	TaskID string
	// Index is the task's position at the time of the change, or -1 if not applicable.
	Index int
}

// AffectsList returns true if the change altered the task collection.
func (c Change) AffectsList() bool {
	switch c.Kind {
	case ChangeTaskAdded, ChangeTaskUpdated, ChangeTaskRemoved:
		return true
	default:
		return false
	}
}
