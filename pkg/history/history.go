// Package history makes event mutations reversible. Edits invert by
// rewriting temporal fields; additions and deletions invert through the
// tombstone registry so a re-materialized event is field-for-field identical.
package history

import (
	"context"

	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/notify"
)

// Op distinguishes how a ChangeRecord inverts.
type Op string

const (
	OpAdd    Op = "add"
	OpEdit   Op = "edit"
	OpDelete Op = "delete"
)

// ChangeRecord captures the pre-image of one mutation. Records are created
// before the mutation is applied; for additions and deletions the old and new
// temporal fields are equal, they describe the state at record time.
type ChangeRecord struct {
	EntityID string
	Kind     event.Kind
	Day      string
	Op       Op

	OldStart event.Timestamp
	OldEnd   *event.Timestamp
	OldPrep  *event.Timestamp
	NewStart event.Timestamp
	NewEnd   *event.Timestamp
	NewPrep  *event.Timestamp
}

// IsDeletion reports whether the record inverts through the tombstone path.
func (r ChangeRecord) IsDeletion() bool {
	return r.Op == OpDelete
}

// Journal is the slice of the event store the history needs.
type Journal interface {
	Find(day, id string) (event.Typed, bool)
	Replace(day string, t event.Typed) error
}

// Tombstones is the slice of the tombstone registry the history needs.
type Tombstones interface {
	Delete(t event.Typed, day string) error
	Restore(id string) (event.Typed, string, error)
}

// History holds the undo and redo stacks. All methods run on the caller's
// goroutine; like the rest of the core it assumes a single logical writer.
type History struct {
	journal   Journal
	tombs     Tombstones
	scheduler notify.Scheduler

	undo []ChangeRecord
	redo []ChangeRecord
}

func New(j Journal, t Tombstones, s notify.Scheduler) *History {
	if s == nil {
		s = notify.Discard{}
	}
	return &History{journal: j, tombs: t, scheduler: s}
}

// RecordAdd notes a freshly inserted event. Must be called with the event as
// stored.
func (h *History) RecordAdd(added event.Typed, day string) {
	start, end, prep := added.Temporal()
	h.push(ChangeRecord{
		EntityID: added.ID(),
		Kind:     added.Kind(),
		Day:      day,
		Op:       OpAdd,
		OldStart: start, OldEnd: end, OldPrep: prep,
		NewStart: start, NewEnd: end, NewPrep: prep,
	})
}

// RecordEdit notes an update, capturing the pre-image before the mutation is
// applied to the store.
func (h *History) RecordEdit(before, after event.Typed, day string) {
	oldStart, oldEnd, oldPrep := before.Temporal()
	newStart, newEnd, newPrep := after.Temporal()
	h.push(ChangeRecord{
		EntityID: before.ID(),
		Kind:     before.Kind(),
		Day:      day,
		Op:       OpEdit,
		OldStart: oldStart, OldEnd: oldEnd, OldPrep: oldPrep,
		NewStart: newStart, NewEnd: newEnd, NewPrep: newPrep,
	})
}

// RecordDeletion notes a deletion; old and new fields both carry the state at
// deletion time for use by a redo-of-deletion.
func (h *History) RecordDeletion(deleted event.Typed, day string) {
	start, end, prep := deleted.Temporal()
	h.push(ChangeRecord{
		EntityID: deleted.ID(),
		Kind:     deleted.Kind(),
		Day:      day,
		Op:       OpDelete,
		OldStart: start, OldEnd: end, OldPrep: prep,
		NewStart: start, NewEnd: end, NewPrep: prep,
	})
}

// push appends to the undo stack and clears redo: a fresh mutation
// invalidates any previously undone chain.
func (h *History) push(r ChangeRecord) {
	h.undo = append(h.undo, r)
	h.redo = nil
}

func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// Depth reports the sizes of the undo and redo stacks.
func (h *History) Depth() (int, int) {
	return len(h.undo), len(h.redo)
}

// Undo reverts the most recent mutation. It reports whether anything changed;
// a record whose target vanished out from under it is dropped silently.
func (h *History) Undo(ctx context.Context) bool {
	if len(h.undo) == 0 {
		return false
	}
	r := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	switch r.Op {
	case OpDelete:
		restored, _, err := h.tombs.Restore(r.EntityID)
		if err != nil {
			return false
		}
		_ = h.scheduler.Schedule(ctx, restored.Generic())
	case OpAdd:
		cur, ok := h.journal.Find(r.Day, r.EntityID)
		if !ok {
			return false
		}
		if err := h.tombs.Delete(cur, r.Day); err != nil {
			return false
		}
		_ = h.scheduler.Cancel(ctx, r.EntityID)
	default:
		cur, ok := h.journal.Find(r.Day, r.EntityID)
		if !ok {
			return false
		}
		reverted := cur.WithTemporal(r.OldStart, r.OldEnd, r.OldPrep)
		if err := h.journal.Replace(r.Day, reverted); err != nil {
			return false
		}
		_ = h.scheduler.Schedule(ctx, reverted.Generic())
	}

	h.redo = append(h.redo, r)
	return true
}

// Redo reapplies the most recently undone mutation.
func (h *History) Redo(ctx context.Context) bool {
	if len(h.redo) == 0 {
		return false
	}
	r := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	switch r.Op {
	case OpDelete:
		cur, ok := h.journal.Find(r.Day, r.EntityID)
		if !ok {
			return false
		}
		if err := h.tombs.Delete(cur, r.Day); err != nil {
			return false
		}
		_ = h.scheduler.Cancel(ctx, r.EntityID)
	case OpAdd:
		restored, _, err := h.tombs.Restore(r.EntityID)
		if err != nil {
			return false
		}
		_ = h.scheduler.Schedule(ctx, restored.Generic())
	default:
		cur, ok := h.journal.Find(r.Day, r.EntityID)
		if !ok {
			return false
		}
		reapplied := cur.WithTemporal(r.NewStart, r.NewEnd, r.NewPrep)
		if err := h.journal.Replace(r.Day, reapplied); err != nil {
			return false
		}
		_ = h.scheduler.Schedule(ctx, reapplied.Generic())
	}

	h.undo = append(h.undo, r)
	return true
}
