// Package tombstone implements soft delete with a bounded recovery window.
// Deleted events are snapshotted and purged for good once the grace window
// elapses, unless restored first.
package tombstone

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/store"
)

// ErrNotFound means the id was never tombstoned or its grace window already
// elapsed and the purge fired.
var ErrNotFound = errors.New("tombstone: not found")

// DefaultGrace is the recovery window applied when none is configured.
const DefaultGrace = 600 * time.Second

// Journal is the slice of the event store the registry needs.
type Journal interface {
	Remove(day, id string) (event.Typed, bool)
	Insert(day string, t event.Typed) error
}

// Sink persists the live tombstone set so grace windows span process
// restarts. Writes are fire-and-forget; the in-memory registry is canonical.
type Sink interface {
	StoreTombstones(records []store.Tombstone) error
	LoadTombstones(ctx context.Context) ([]store.Tombstone, error)
}

// Tombstone is a retained snapshot of a deleted event.
type Tombstone struct {
	ID        string
	Kind      event.Kind
	Day       string
	Snapshot  event.Typed
	DeletedAt time.Time

	purgeAt time.Time
}

// Registry schedules purges on a min-heap of (purgeAt, id) driven by a single
// rearmed timer. The clock is injectable so the window is testable without
// wall-clock waits. Cancellation is lazy: superseded heap entries are skipped
// at sweep time because their purgeAt no longer matches the live tombstone.
type Registry struct {
	mu      sync.Mutex
	journal Journal
	grace   time.Duration
	now     func() time.Time
	sink    Sink

	byID  map[string]*Tombstone
	queue purgeQueue
	timer *time.Timer
}

// New creates a registry over the wall clock. A zero grace means DefaultGrace.
func New(j Journal, grace time.Duration) *Registry {
	return NewAt(j, grace, time.Now)
}

// NewAt is New with an injected clock.
func NewAt(j Journal, grace time.Duration, now func() time.Time) *Registry {
	if grace <= 0 {
		grace = DefaultGrace
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{
		journal: j,
		grace:   grace,
		now:     now,
		byID:    make(map[string]*Tombstone),
	}
}

// Grace returns the configured recovery window.
func (r *Registry) Grace() time.Duration {
	return r.grace
}

// Attach wires the persistence sink and reloads the tombstones it holds, so
// a recovery window opened in one process is honored in the next. Records
// whose window elapsed while no process was running are discarded on the
// spot; ids already live in the registry are left alone.
func (r *Registry) Attach(ctx context.Context, sink Sink) error {
	records, err := sink.LoadTombstones(ctx)
	if err != nil {
		return fmt.Errorf("tombstone: attach: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sink = sink
	now := r.now()
	for _, rec := range records {
		if _, ok := r.byID[rec.ID]; ok {
			continue
		}
		purgeAt := rec.DeletedAt.Add(r.grace)
		if !purgeAt.After(now) {
			continue
		}
		tomb := &Tombstone{
			ID:        rec.ID,
			Kind:      rec.Kind,
			Day:       rec.Day,
			Snapshot:  rec.Snapshot,
			DeletedAt: rec.DeletedAt.Time,
			purgeAt:   purgeAt,
		}
		r.byID[rec.ID] = tomb
		heap.Push(&r.queue, purgeEntry{at: purgeAt, id: rec.ID})
	}
	r.rearmLocked()
	r.persistLocked()
	return nil
}

// persistLocked reconciles the sink with the live set. Failure is reported
// but never returned; the in-memory registry is canonical.
func (r *Registry) persistLocked() {
	if r.sink == nil {
		return
	}
	records := make([]store.Tombstone, 0, len(r.byID))
	for _, tomb := range r.byID {
		records = append(records, store.Tombstone{
			ID:        tomb.ID,
			Kind:      tomb.Kind,
			Day:       tomb.Day,
			Snapshot:  tomb.Snapshot,
			DeletedAt: event.At(tomb.DeletedAt),
		})
	}
	if err := r.sink.StoreTombstones(records); err != nil {
		fmt.Fprintf(os.Stderr, "tombstone: sync: %v\n", err)
	}
}

// Delete removes the event from the journal, snapshots it, and schedules its
// purge. Re-deleting an id replaces the prior tombstone and its schedule
// (last delete wins).
func (r *Registry) Delete(t event.Typed, day string) error {
	if err := t.Valid(); err != nil {
		return err
	}
	id := t.ID()
	snapshot := t.Clone()
	if removed, ok := r.journal.Remove(day, id); ok {
		snapshot = removed.Clone()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	tomb := &Tombstone{
		ID:        id,
		Kind:      snapshot.Kind(),
		Day:       day,
		Snapshot:  snapshot,
		DeletedAt: now,
		purgeAt:   now.Add(r.grace),
	}
	r.byID[id] = tomb
	heap.Push(&r.queue, purgeEntry{at: tomb.purgeAt, id: id})
	r.rearmLocked()
	r.persistLocked()
	return nil
}

// Restore cancels the pending purge, reinserts the snapshot verbatim into the
// journal, and returns it. ErrNotFound after the window elapsed.
func (r *Registry) Restore(id string) (event.Typed, string, error) {
	r.mu.Lock()
	tomb, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return event.Typed{}, "", ErrNotFound
	}
	delete(r.byID, id)
	r.rearmLocked()
	r.mu.Unlock()

	if err := r.journal.Insert(tomb.Day, tomb.Snapshot); err != nil {
		return event.Typed{}, "", err
	}

	r.mu.Lock()
	r.persistLocked()
	r.mu.Unlock()
	return tomb.Snapshot, tomb.Day, nil
}

// Purge discards the tombstone for id. Idempotent: purging a missing or
// already-restored id is a no-op, which makes the restore/timer race safe.
func (r *Registry) Purge(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return
	}
	delete(r.byID, id)
	r.rearmLocked()
	r.persistLocked()
}

// Sweep purges everything whose window elapsed and rearms the timer. The
// timer calls this; tests with a fake clock call it directly.
func (r *Registry) Sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	purged := false
	for r.queue.Len() > 0 {
		head := r.queue[0]
		if head.at.After(now) {
			break
		}
		heap.Pop(&r.queue)
		if tomb, ok := r.byID[head.id]; ok && tomb.purgeAt.Equal(head.at) {
			delete(r.byID, head.id)
			purged = true
		}
	}
	r.rearmLocked()
	if purged {
		r.persistLocked()
	}
}

// Teardown cancels every outstanding purge timer and drops the in-memory
// registry. Persisted tombstone records are left in the sink untouched, so
// with a sink attached the grace window picks up where it left off on the
// next Attach; without one, teardown ends every in-flight window.
func (r *Registry) Teardown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.byID = make(map[string]*Tombstone)
	r.queue = nil
}

// Len reports the number of live tombstones.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Pending returns the live tombstone for id, if any.
func (r *Registry) Pending(id string) (Tombstone, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tomb, ok := r.byID[id]
	if !ok {
		return Tombstone{}, false
	}
	return *tomb, true
}

// rearmLocked points the single timer at the earliest live entry, dropping
// stale heap entries (restored, purged, or superseded ids) on the way.
func (r *Registry) rearmLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	for r.queue.Len() > 0 {
		head := r.queue[0]
		tomb, ok := r.byID[head.id]
		if !ok || !tomb.purgeAt.Equal(head.at) {
			heap.Pop(&r.queue)
			continue
		}
		d := head.at.Sub(r.now())
		if d < 0 {
			d = 0
		}
		r.timer = time.AfterFunc(d, r.Sweep)
		return
	}
}

type purgeEntry struct {
	at time.Time
	id string
}

type purgeQueue []purgeEntry

func (q purgeQueue) Len() int            { return len(q) }
func (q purgeQueue) Less(i, j int) bool  { return q[i].at.Before(q[j].at) }
func (q purgeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *purgeQueue) Push(x interface{}) { *q = append(*q, x.(purgeEntry)) }
func (q *purgeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}
