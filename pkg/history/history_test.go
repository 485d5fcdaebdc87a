package history

import (
	"context"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/journal"
	"tableflip.dev/cradle/pkg/tombstone"
)

var (
	t0  = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	day = "2026-08-31"
)

func fixture(t *testing.T) (*journal.Store, *tombstone.Registry, *History) {
	t.Helper()
	j := journal.New(nil)
	r := tombstone.NewAt(j, tombstone.DefaultGrace, func() time.Time { return t0 })
	h := New(j, r, nil)
	return j, r, h
}

// edit applies an end-time change through the record-before-mutate path.
func edit(t *testing.T, j *journal.Store, h *History, before event.Typed, end time.Time) event.Typed {
	t.Helper()
	ts := event.At(end)
	start, _, prep := before.Temporal()
	after := before.WithTemporal(start, &ts, prep)
	h.RecordEdit(before, after, day)
	if err := j.Replace(day, after); err != nil {
		t.Fatalf("replace: %v", err)
	}
	return after
}

func TestUndoExactness(t *testing.T) {
	j, _, h := fixture(t)
	feed := event.NewFeed(t0, "120ml", "bottle")
	if err := j.Insert(day, feed); err != nil {
		t.Fatalf("insert: %v", err)
	}

	after := edit(t, j, h, feed, t0.Add(25*time.Minute))

	if !h.Undo(context.Background()) {
		t.Fatal("undo reported nothing to do")
	}
	got, _ := j.Find(day, feed.ID())
	if !reflect.DeepEqual(got, feed) {
		t.Fatalf("undo not exact:\n  got %#v\n want %#v", got, feed)
	}

	if !h.Redo(context.Background()) {
		t.Fatal("redo reported nothing to do")
	}
	got, _ = j.Find(day, feed.ID())
	if !reflect.DeepEqual(got, after) {
		t.Fatalf("redo not exact:\n  got %#v\n want %#v", got, after)
	}
}

func TestStackDiscipline(t *testing.T) {
	j, _, h := fixture(t)
	feed := event.NewFeed(t0, "", "")
	if err := j.Insert(day, feed); err != nil {
		t.Fatalf("insert: %v", err)
	}

	afterU1 := edit(t, j, h, feed, t0.Add(10*time.Minute))
	cur, _ := j.Find(day, feed.ID())
	edit(t, j, h, cur, t0.Add(20*time.Minute))

	// One undo reverts only U2, landing on the post-U1 state.
	if !h.Undo(context.Background()) {
		t.Fatal("undo failed")
	}
	got, _ := j.Find(day, feed.ID())
	if !reflect.DeepEqual(got, afterU1) {
		t.Fatalf("after one undo:\n  got %#v\n want %#v", got, afterU1)
	}

	// Second undo lands on the original.
	if !h.Undo(context.Background()) {
		t.Fatal("second undo failed")
	}
	got, _ = j.Find(day, feed.ID())
	if !reflect.DeepEqual(got, feed) {
		t.Fatalf("after two undos:\n  got %#v\n want %#v", got, feed)
	}
}

func TestScenarioBAddUndoRedo(t *testing.T) {
	j, _, h := fixture(t)
	task := event.NewTask(t0, "pack hospital bag", "")
	if err := j.Insert(day, task); err != nil {
		t.Fatalf("insert: %v", err)
	}
	h.RecordAdd(task, day)

	if !h.Undo(context.Background()) {
		t.Fatal("undo of add failed")
	}
	if _, ok := j.Find(day, task.ID()); ok {
		t.Fatal("event should be absent after undoing its add")
	}

	if !h.Redo(context.Background()) {
		t.Fatal("redo of add failed")
	}
	got, ok := j.Find(day, task.ID())
	if !ok {
		t.Fatal("event should be back after redo")
	}
	if !reflect.DeepEqual(got, task) {
		t.Fatalf("redo of add not verbatim:\n  got %#v\n want %#v", got, task)
	}
}

func TestDeletionUndoRedo(t *testing.T) {
	j, r, h := fixture(t)
	sleep := event.NewSleep(t0, "morning nap")
	if err := j.Insert(day, sleep); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Record first, then delete through the tombstone path.
	h.RecordDeletion(sleep, day)
	if err := r.Delete(sleep, day); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if !h.Undo(context.Background()) {
		t.Fatal("undo of deletion failed")
	}
	got, ok := j.Find(day, sleep.ID())
	if !ok {
		t.Fatal("deletion undo should restore the event")
	}
	if !reflect.DeepEqual(got, sleep) {
		t.Fatalf("restore not verbatim:\n  got %#v\n want %#v", got, sleep)
	}

	if !h.Redo(context.Background()) {
		t.Fatal("redo of deletion failed")
	}
	if _, ok := j.Find(day, sleep.ID()); ok {
		t.Fatal("redo should re-delete the event")
	}
	if r.Len() != 1 {
		t.Fatalf("re-deletion should re-tombstone, len = %d", r.Len())
	}

	// And back once more.
	if !h.Undo(context.Background()) {
		t.Fatal("second undo failed")
	}
	got, _ = j.Find(day, sleep.ID())
	if !reflect.DeepEqual(got, sleep) {
		t.Fatal("second restore not verbatim")
	}
}

func TestUndoOfPurgedDeletionDropsSilently(t *testing.T) {
	j, _, h := fixture(t)
	now := t0
	r := tombstone.NewAt(j, time.Minute, func() time.Time { return now })
	h = New(j, r, nil)

	feed := event.NewFeed(t0, "", "")
	if err := j.Insert(day, feed); err != nil {
		t.Fatalf("insert: %v", err)
	}
	h.RecordDeletion(feed, day)
	if err := r.Delete(feed, day); err != nil {
		t.Fatalf("delete: %v", err)
	}

	now = t0.Add(2 * time.Minute)
	r.Sweep()

	if h.Undo(context.Background()) {
		t.Fatal("undo should be a silent no-op after the purge fired")
	}
	if h.CanRedo() {
		t.Fatal("a dropped undo must not feed the redo stack")
	}
	if _, ok := j.Find(day, feed.ID()); ok {
		t.Fatal("nothing should have been restored")
	}
}

func TestFreshEditClearsRedo(t *testing.T) {
	j, _, h := fixture(t)
	feed := event.NewFeed(t0, "", "")
	if err := j.Insert(day, feed); err != nil {
		t.Fatalf("insert: %v", err)
	}

	edit(t, j, h, feed, t0.Add(10*time.Minute))
	if !h.Undo(context.Background()) {
		t.Fatal("undo failed")
	}
	if !h.CanRedo() {
		t.Fatal("redo should be available after an undo")
	}

	cur, _ := j.Find(day, feed.ID())
	edit(t, j, h, cur, t0.Add(30*time.Minute))
	if h.CanRedo() {
		t.Fatal("a fresh edit must clear the redo stack")
	}
}

func TestCanUndoCanRedo(t *testing.T) {
	j, _, h := fixture(t)
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("new history should be empty")
	}
	if h.Undo(context.Background()) || h.Redo(context.Background()) {
		t.Fatal("empty stacks should no-op")
	}

	feed := event.NewFeed(t0, "", "")
	if err := j.Insert(day, feed); err != nil {
		t.Fatalf("insert: %v", err)
	}
	edit(t, j, h, feed, t0.Add(time.Minute))

	if !h.CanUndo() {
		t.Fatal("expected undo to be available")
	}
	undoDepth, redoDepth := h.Depth()
	if undoDepth != 1 || redoDepth != 0 {
		t.Fatalf("depth = (%d, %d)", undoDepth, redoDepth)
	}
}
