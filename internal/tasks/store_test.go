package tasks

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ShayCichocki/tasktimer/pkg/models"
)

// newTestStore creates a Store with deterministic IDs and a fixed clock.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	fixed := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return NewStore(NewMemoryCollection(),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("task-%d", n)
		}),
		WithClock(func() time.Time { return fixed }),
	)
}

// addTask creates a task through the dialog flow and fails the test if it was not saved.
func addTask(t *testing.T, s *Store, title, description string) CommitResult {
	t.Helper()
	s.OpenCreate()
	s.SetDraftTitle(title)
	s.SetDraftDescription(description)
	res, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit(%q, %q) failed: %v", title, description, err)
	}
	return res
}

func titles(t *testing.T, s *Store) []string {
	t.Helper()
	list, err := s.Tasks()
	if err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	out := make([]string, len(list))
	for i, task := range list {
		out[i] = task.Title
	}
	return out
}

func assertTitles(t *testing.T, s *Store, want ...string) {
	t.Helper()
	got := titles(t, s)
	if len(got) != len(want) {
		t.Fatalf("titles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("titles = %v, want %v", got, want)
		}
	}
}

func TestNewStore_StartsEmptyAndClosed(t *testing.T) {
	s := newTestStore(t)

	n, err := s.Len()
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
	if s.Session().Open {
		t.Error("dialog should start closed")
	}
}

func TestStore_OpenCreate(t *testing.T) {
	s := newTestStore(t)

	s.OpenCreate()
	sess := s.Session()
	if !sess.Open {
		t.Error("OpenCreate should open the dialog")
	}
	if !sess.Creating() {
		t.Errorf("TargetID = %q, want none", sess.TargetID)
	}
	if sess.Title != "" || sess.Description != "" {
		t.Errorf("drafts = (%q, %q), want empty", sess.Title, sess.Description)
	}
}

func TestStore_OpenCreate_ClearsDraftsWhenAlreadyOpen(t *testing.T) {
	s := newTestStore(t)

	s.OpenCreate()
	s.SetDraftTitle("half typed")
	s.SetDraftDescription("notes")
	s.OpenCreate()

	sess := s.Session()
	if !sess.Open {
		t.Error("dialog should still be open")
	}
	if sess.Title != "" || sess.Description != "" {
		t.Errorf("drafts = (%q, %q), want empty", sess.Title, sess.Description)
	}
}

func TestStore_OpenCreate_AfterEditResetsTarget(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")

	if err := s.OpenEdit(0); err != nil {
		t.Fatalf("OpenEdit failed: %v", err)
	}
	s.OpenCreate()

	if !s.Session().Creating() {
		t.Error("OpenCreate should clear the edit target")
	}
}

func TestStore_Commit_AppendsInOrder(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 5; i++ {
		before, _ := s.Len()
		res := addTask(t, s, fmt.Sprintf("T%d", i), "d")
		after, _ := s.Len()

		if !res.Saved || !res.Created {
			t.Fatalf("commit %d: result = %+v, want saved+created", i, res)
		}
		if after != before+1 {
			t.Fatalf("commit %d: Len went %d -> %d, want +1", i, before, after)
		}
		if s.Session().Open {
			t.Fatalf("commit %d: dialog should close after save", i)
		}
	}

	assertTitles(t, s, "T1", "T2", "T3", "T4", "T5")
}

func TestStore_Commit_AssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	res := addTask(t, s, "Buy milk", "2%")

	if res.TaskID != "task-1" {
		t.Errorf("TaskID = %q, want %q", res.TaskID, "task-1")
	}
	list, _ := s.Tasks()
	if list[0].ID != "task-1" {
		t.Errorf("stored ID = %q, want %q", list[0].ID, "task-1")
	}
	if list[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if list[0].UpdatedAt != nil {
		t.Error("UpdatedAt should be nil for a new task")
	}
}

func TestStore_Commit_DuplicatesAllowed(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "Same", "same")
	addTask(t, s, "Same", "same")

	assertTitles(t, s, "Same", "Same")
}

func TestStore_Commit_SkipsInvalidDrafts(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        SkipReason
	}{
		{"empty title", "", "notes", SkipEmptyTitle},
		{"empty description", "title", "", SkipEmptyDescription},
		{"both empty", "", "", SkipEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			s.OpenCreate()
			s.SetDraftTitle(tt.title)
			s.SetDraftDescription(tt.description)

			res, err := s.Commit()
			if err != nil {
				t.Fatalf("Commit returned error: %v", err)
			}
			if res.Saved {
				t.Error("Commit should not save")
			}
			if res.Reason != tt.want {
				t.Errorf("Reason = %q, want %q", res.Reason, tt.want)
			}
			if n, _ := s.Len(); n != 0 {
				t.Errorf("Len() = %d, want 0", n)
			}
			if !s.Session().Open {
				t.Error("dialog should stay open after a skipped commit")
			}
		})
	}
}

func TestStore_Commit_NotOpen(t *testing.T) {
	s := newTestStore(t)

	res, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if res.Saved || res.Reason != SkipNotOpen {
		t.Errorf("result = %+v, want skip %q", res, SkipNotOpen)
	}
}

func TestStore_Scenario_SecondCommitRejected(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "Buy milk", "2%")

	s.OpenCreate()
	s.SetDraftTitle("Call mom")
	s.SetDraftDescription("")
	res, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if res.Saved {
		t.Error("second commit should be rejected")
	}

	assertTitles(t, s, "Buy milk")
}

func TestStore_OpenEdit_SeedsDrafts(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "alpha")
	addTask(t, s, "B", "bravo\nline two")

	if err := s.OpenEdit(1); err != nil {
		t.Fatalf("OpenEdit failed: %v", err)
	}
	sess := s.Session()
	if !sess.Open {
		t.Error("OpenEdit should open the dialog")
	}
	if sess.TargetID != "task-2" {
		t.Errorf("TargetID = %q, want %q", sess.TargetID, "task-2")
	}
	if sess.Title != "B" || sess.Description != "bravo\nline two" {
		t.Errorf("drafts = (%q, %q), want (%q, %q)", sess.Title, sess.Description, "B", "bravo\nline two")
	}
}

func TestStore_OpenEdit_InvalidIndex(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")

	for _, idx := range []int{-1, 1, 42} {
		err := s.OpenEdit(idx)
		if !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("OpenEdit(%d) error = %v, want ErrInvalidIndex", idx, err)
		}
		var ie *IndexError
		if !errors.As(err, &ie) {
			t.Errorf("OpenEdit(%d) error should be *IndexError, got %T", idx, err)
		} else if ie.Len != 1 {
			t.Errorf("IndexError.Len = %d, want 1", ie.Len)
		}
	}
	if s.Session().Open {
		t.Error("failed OpenEdit should not open the dialog")
	}
}

func TestStore_EditThenCommitUnchanged(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")
	addTask(t, s, "B", "b")
	addTask(t, s, "C", "c")

	before, _ := s.Tasks()
	for i := range before {
		if err := s.OpenEdit(i); err != nil {
			t.Fatalf("OpenEdit(%d) failed: %v", i, err)
		}
		res, err := s.Commit()
		if err != nil {
			t.Fatalf("Commit failed: %v", err)
		}
		if !res.Saved || res.Created {
			t.Fatalf("result = %+v, want saved update", res)
		}
	}

	after, _ := s.Tasks()
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Title != before[i].Title || after[i].Description != before[i].Description {
			t.Errorf("task %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestStore_Commit_UpdatesInPlace(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")
	addTask(t, s, "B", "b")
	addTask(t, s, "C", "c")

	if err := s.OpenEdit(1); err != nil {
		t.Fatalf("OpenEdit failed: %v", err)
	}
	s.SetDraftTitle("B2")
	s.SetDraftDescription("b2")
	res, err := s.Commit()
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if res.TaskID != "task-2" {
		t.Errorf("TaskID = %q, want %q", res.TaskID, "task-2")
	}

	assertTitles(t, s, "A", "B2", "C")
	list, _ := s.Tasks()
	if list[1].UpdatedAt == nil {
		t.Error("UpdatedAt should be set after edit")
	}
	if list[1].Description != "b2" {
		t.Errorf("Description = %q, want %q", list[1].Description, "b2")
	}
}

func TestStore_Cancel_LeavesCollection(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")

	if err := s.OpenEdit(0); err != nil {
		t.Fatalf("OpenEdit failed: %v", err)
	}
	s.SetDraftTitle("changed")
	s.Cancel()

	if s.Session().Open {
		t.Error("Cancel should close the dialog")
	}
	assertTitles(t, s, "A")
}

func TestStore_Remove(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"first", 0, []string{"B", "C", "D"}},
		{"middle", 2, []string{"A", "B", "D"}},
		{"last", 3, []string{"A", "B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			for _, title := range []string{"A", "B", "C", "D"} {
				addTask(t, s, title, "x")
			}

			if err := s.Remove(tt.index); err != nil {
				t.Fatalf("Remove(%d) failed: %v", tt.index, err)
			}
			assertTitles(t, s, tt.want...)
		})
	}
}

func TestStore_Remove_InvalidIndex(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")

	for _, idx := range []int{-1, 1, 5} {
		if err := s.Remove(idx); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("Remove(%d) error = %v, want ErrInvalidIndex", idx, err)
		}
	}
	assertTitles(t, s, "A")
}

func TestStore_Scenario_AddAddRemoveFirst(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")
	addTask(t, s, "B", "b")

	if err := s.Remove(0); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	assertTitles(t, s, "B")
}

func TestStore_RemoveWhileEditing_DoesNotCorruptNeighbour(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")
	addTask(t, s, "B", "b")
	addTask(t, s, "C", "c")

	// Edit C, then delete A so C shifts to position 1.
	if err := s.OpenEdit(2); err != nil {
		t.Fatalf("OpenEdit failed: %v", err)
	}
	if err := s.Remove(0); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	s.SetDraftTitle("C2")
	if _, err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	assertTitles(t, s, "B", "C2")
}

func TestStore_RemoveEditedTask_CommitFails(t *testing.T) {
	s := newTestStore(t)
	addTask(t, s, "A", "a")
	addTask(t, s, "B", "b")

	if err := s.OpenEdit(1); err != nil {
		t.Fatalf("OpenEdit failed: %v", err)
	}
	if err := s.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	s.SetDraftTitle("B2")

	_, err := s.Commit()
	if !IsNotFound(err) {
		t.Fatalf("Commit error = %v, want ErrTaskNotFound", err)
	}
	if !s.Session().Open {
		t.Error("dialog should stay open when the target is gone")
	}
	assertTitles(t, s, "A")
}

func TestStore_OnChange(t *testing.T) {
	s := newTestStore(t)
	var kinds []ChangeKind
	s.OnChange(func(c Change) {
		kinds = append(kinds, c.Kind)
	})

	addTask(t, s, "A", "a")
	if err := s.Remove(0); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	want := []ChangeKind{
		ChangeSessionOpened,
		ChangeDraftEdited,
		ChangeDraftEdited,
		ChangeSessionClosed,
		ChangeTaskAdded,
		ChangeTaskRemoved,
	}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("kinds[%d] = %q, want %q", i, kinds[i], want[i])
		}
	}
}

func TestStore_OnChange_SkippedCommitIsSilent(t *testing.T) {
	s := newTestStore(t)
	s.OpenCreate()

	var got []Change
	s.OnChange(func(c Change) {
		got = append(got, c)
	})
	if _, err := s.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("skipped commit emitted %v", got)
	}
}

func TestStore_AddedChangeCarriesIndex(t *testing.T) {
	s := newTestStore(t)
	var last Change
	s.OnChange(func(c Change) {
		if c.AffectsList() {
			last = c
		}
	})

	addTask(t, s, "A", "a")
	addTask(t, s, "B", "b")

	if last.Kind != ChangeTaskAdded || last.Index != 1 || last.TaskID != "task-2" {
		t.Errorf("last change = %+v, want task_added at 1 for task-2", last)
	}
}

// failingCollection returns err from every mutating call.
type failingCollection struct {
	*MemoryCollection
	err error
}

func (f *failingCollection) Append(models.Task) error { return f.err }

func TestStore_Commit_StorageError(t *testing.T) {
	boom := errors.New("disk on fire")
	s := NewStore(&failingCollection{MemoryCollection: NewMemoryCollection(), err: boom})

	s.OpenCreate()
	s.SetDraftTitle("A")
	s.SetDraftDescription("a")
	_, err := s.Commit()
	if !errors.Is(err, boom) {
		t.Fatalf("Commit error = %v, want wrapped %v", err, boom)
	}
	if !s.Session().Open {
		t.Error("dialog should stay open after a storage error")
	}
}

// lenFailingCollection fails to report its length.
type lenFailingCollection struct {
	*MemoryCollection
	err error
}

func (f *lenFailingCollection) Len() (int, error) { return 0, f.err }

func TestStore_Commit_LenErrorLeavesCollection(t *testing.T) {
	boom := errors.New("db gone")
	c := &lenFailingCollection{MemoryCollection: NewMemoryCollection(), err: boom}
	s := NewStore(c)

	var changes []Change
	s.OpenCreate()
	s.SetDraftTitle("A")
	s.SetDraftDescription("a")
	s.OnChange(func(ch Change) { changes = append(changes, ch) })

	if _, err := s.Commit(); !errors.Is(err, boom) {
		t.Fatalf("Commit error = %v, want wrapped %v", err, boom)
	}
	if list, _ := c.List(); len(list) != 0 {
		t.Errorf("len(tasks) = %d, want 0", len(list))
	}
	if len(changes) != 0 {
		t.Errorf("changes = %+v, want none", changes)
	}
	if !s.Session().Open {
		t.Error("dialog should stay open")
	}
}
