package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/interval"
	"tableflip.dev/cradle/pkg/store"
)

const day = "2026-08-31"

func testService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	s := New(nil, time.Hour, nil)
	s.Now = func() time.Time { return now }
	return s, &now
}

func TestAddFindDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := testService(t)

	feed, err := s.AddEvent(ctx, event.NewFeed(s.Now(), "120ml", ""), day)
	if err != nil {
		t.Fatalf("AddEvent() = %v", err)
	}
	if _, ok := s.Journal.Find(day, feed.ID()); !ok {
		t.Fatal("added event not in journal")
	}

	if err := s.DeleteEvent(ctx, feed.ID(), day); err != nil {
		t.Fatalf("DeleteEvent() = %v", err)
	}
	if _, ok := s.Journal.Find(day, feed.ID()); ok {
		t.Fatal("deleted event still in journal")
	}
	if err := s.DeleteEvent(ctx, feed.ID(), day); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestUpdateRequiresExisting(t *testing.T) {
	ctx := context.Background()
	s, _ := testService(t)

	phantom := event.NewTask(s.Now(), "bottle prep", "")
	if err := s.UpdateEvent(ctx, phantom, day); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateEvent(unknown) = %v, want ErrNotFound", err)
	}

	task, _ := s.AddEvent(ctx, phantom, day)
	edited := task.Clone()
	edited.Task.Done = true
	if err := s.UpdateEvent(ctx, edited, day); err != nil {
		t.Fatalf("UpdateEvent() = %v", err)
	}
	got, _ := s.Journal.Find(day, task.ID())
	if !got.Task.Done {
		t.Fatal("edit not visible after update")
	}
}

func TestDeleteRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := testService(t)

	goal, _ := s.AddEvent(ctx, event.NewGoal(s.Now(), "sleep through", "stretch"), day)
	if err := s.DeleteEvent(ctx, goal.ID(), day); err != nil {
		t.Fatalf("DeleteEvent() = %v", err)
	}

	restored, ok := s.RestoreEvent(ctx, goal.ID())
	if !ok {
		t.Fatal("RestoreEvent() missed inside the grace window")
	}
	if restored.Goal.Title != "sleep through" || restored.Goal.Notes != "stretch" {
		t.Fatalf("restored event differs: %+v", restored.Goal)
	}
	if _, ok := s.Journal.Find(day, goal.ID()); !ok {
		t.Fatal("restored event not back in journal")
	}

	if _, ok := s.RestoreEvent(ctx, "deadbeefdeadbeef"); ok {
		t.Fatal("RestoreEvent(unknown) = true")
	}
}

func TestUndoRedoPassthrough(t *testing.T) {
	ctx := context.Background()
	s, _ := testService(t)

	if s.CanUndo() || s.CanRedo() {
		t.Fatal("fresh service claims pending history")
	}
	feed, _ := s.AddEvent(ctx, event.NewFeed(s.Now(), "90ml", ""), day)

	if !s.Undo(ctx) {
		t.Fatal("Undo() = false")
	}
	if _, ok := s.Journal.Find(day, feed.ID()); ok {
		t.Fatal("undone addition still present")
	}
	if !s.Redo(ctx) {
		t.Fatal("Redo() = false")
	}
	got, ok := s.Journal.Find(day, feed.ID())
	if !ok || got.Feed.Amount != "90ml" {
		t.Fatalf("redo did not restore the addition verbatim: %+v", got)
	}
}

func TestNapLifecycle(t *testing.T) {
	ctx := context.Background()
	s, now := testService(t)

	nap, err := s.StartNap(ctx, day, "")
	if err != nil {
		t.Fatalf("StartNap() = %v", err)
	}
	id := nap.ID()

	*now = now.Add(5 * time.Minute)
	if err := s.PauseNap(ctx, id); err != nil {
		t.Fatalf("PauseNap() = %v", err)
	}
	// Pausing twice changes nothing.
	if err := s.PauseNap(ctx, id); err != nil {
		t.Fatalf("PauseNap() again = %v", err)
	}

	*now = now.Add(3 * time.Minute)
	if err := s.ResumeNap(ctx, id); err != nil {
		t.Fatalf("ResumeNap() = %v", err)
	}

	*now = now.Add(2 * time.Minute)
	stopped, err := s.StopNap(ctx, id)
	if err != nil {
		t.Fatalf("StopNap() = %v", err)
	}
	if got := *stopped.Sleep.ActualSeconds; got != 7*60 {
		t.Fatalf("ActualSeconds = %d, want %d", got, 7*60)
	}
	if stopped.Sleep.Ongoing || stopped.Sleep.Paused {
		t.Fatalf("stopped sleep still flagged active: %+v", stopped.Sleep)
	}

	// After finalization the clock no longer matters.
	*now = now.Add(48 * time.Hour)
	d, err := s.NapDuration(ctx, id)
	if err != nil {
		t.Fatalf("NapDuration() = %v", err)
	}
	if d != "7m" {
		t.Fatalf("NapDuration() = %q, want 7m", d)
	}
}

func TestResumeNotPaused(t *testing.T) {
	ctx := context.Background()
	s, _ := testService(t)

	nap, _ := s.StartNap(ctx, day, "")
	if err := s.ResumeNap(ctx, nap.ID()); !errors.Is(err, interval.ErrInvalidInterval) {
		t.Fatalf("ResumeNap(running) = %v, want ErrInvalidInterval", err)
	}
	got, _ := s.Journal.Find(day, nap.ID())
	if got.Sleep.Paused || len(got.Sleep.Pauses) != 0 {
		t.Fatalf("failed resume mutated state: %+v", got.Sleep)
	}
}

func TestStopWhilePausedExcludesOpenPause(t *testing.T) {
	ctx := context.Background()
	s, now := testService(t)

	nap, _ := s.StartNap(ctx, day, "")
	*now = now.Add(10 * time.Minute)
	if err := s.PauseNap(ctx, nap.ID()); err != nil {
		t.Fatalf("PauseNap() = %v", err)
	}
	*now = now.Add(30 * time.Minute)
	stopped, err := s.StopNap(ctx, nap.ID())
	if err != nil {
		t.Fatalf("StopNap() = %v", err)
	}
	if got := *stopped.Sleep.ActualSeconds; got != 10*60 {
		t.Fatalf("ActualSeconds = %d, want %d", got, 10*60)
	}
	if _, err := s.StopNap(ctx, nap.ID()); !errors.Is(err, interval.ErrInvalidInterval) {
		t.Fatalf("StopNap(stopped) = %v, want ErrInvalidInterval", err)
	}
}

func TestPauseRejectsNonSleep(t *testing.T) {
	ctx := context.Background()
	s, _ := testService(t)

	task, _ := s.AddEvent(ctx, event.NewTask(s.Now(), "refill wipes", ""), day)
	if err := s.PauseNap(ctx, task.ID()); !errors.Is(err, ErrNotSleep) {
		t.Fatalf("PauseNap(task) = %v, want ErrNotSleep", err)
	}
	if err := s.PauseNap(ctx, "deadbeefdeadbeef"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("PauseNap(unknown) = %v, want ErrNotFound", err)
	}
}

type diskConfig struct {
	path string
}

func (c diskConfig) BasePath() string           { return c.path }
func (c diskConfig) GraceWindow() time.Duration { return time.Hour }

// A recovery window opened in one process must be honored by the next, as
// long as it has not elapsed.
func TestRestoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := diskConfig{path: t.TempDir()}

	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("store.Load() = %v", err)
	}
	first := New(p, cfg.GraceWindow(), nil)
	if err := first.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() = %v", err)
	}
	feed, err := first.AddEvent(ctx, event.NewFeed(time.Now(), "120ml", "bottle"), day)
	if err != nil {
		t.Fatalf("AddEvent() = %v", err)
	}
	if err := first.DeleteEvent(ctx, feed.ID(), day); err != nil {
		t.Fatalf("DeleteEvent() = %v", err)
	}
	first.Teardown()

	p2, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("store.Load() = %v", err)
	}
	second := New(p2, cfg.GraceWindow(), nil)
	if err := second.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() = %v", err)
	}
	restored, ok := second.RestoreEvent(ctx, feed.ID())
	if !ok {
		t.Fatal("restore missed after restart, inside the grace window")
	}
	if restored.Feed.Amount != "120ml" || restored.Feed.Notes != "bottle" {
		t.Fatalf("restored event differs: %+v", restored.Feed)
	}
	if _, ok := second.Journal.Find(day, feed.ID()); !ok {
		t.Fatal("restored event not back in journal")
	}
	second.Teardown()

	// The restore consumed the persisted record; a later process finds none.
	p3, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("store.Load() = %v", err)
	}
	third := New(p3, cfg.GraceWindow(), nil)
	if err := third.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() = %v", err)
	}
	if _, ok := third.RestoreEvent(ctx, feed.ID()); ok {
		t.Fatal("restore succeeded twice for the same deletion")
	}
	if got, ok := third.Journal.Find(day, feed.ID()); !ok || got.Feed.Amount != "120ml" {
		t.Fatalf("restored event did not persist: %+v", got)
	}
}

func TestTeardownDropsTombstones(t *testing.T) {
	ctx := context.Background()
	s, _ := testService(t)

	feed, _ := s.AddEvent(ctx, event.NewFeed(s.Now(), "60ml", ""), day)
	_ = s.DeleteEvent(ctx, feed.ID(), day)
	s.Teardown()
	if _, ok := s.RestoreEvent(ctx, feed.ID()); ok {
		t.Fatal("restore succeeded after teardown")
	}
}
