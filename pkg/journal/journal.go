// Package journal owns the canonical in-memory collections of typed events,
// keyed by day and id. Every mutation pushes the touched day's snapshot into
// the persistence sink, best effort.
package journal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"tableflip.dev/cradle/pkg/day"
	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/store"
)

var (
	ErrNotFound = errors.New("journal: event not found")
	ErrExists   = errors.New("journal: event already present")
)

// Store is the canonical event store. Events are held typed; the generic
// projection is derived on read and never mutated independently.
type Store struct {
	mu   sync.RWMutex
	days map[string]*bucket
	sink store.Persistence
}

type bucket struct {
	typed map[string]event.Typed
}

// New creates an empty store. sink may be nil for a purely in-memory store.
func New(sink store.Persistence) *Store {
	return &Store{
		days: make(map[string]*bucket),
		sink: sink,
	}
}

// Hydrate replaces in-memory state with everything the sink holds. Called
// once at startup so pause/resume accounting survives process restarts.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.sink == nil {
		return nil
	}
	all, err := s.sink.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("journal: hydrate: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = make(map[string]*bucket, len(all))
	for dk, events := range all {
		b := &bucket{typed: make(map[string]event.Typed, len(events))}
		for _, t := range events {
			b.typed[t.ID()] = t.Clone()
		}
		s.days[dk] = b
	}
	return nil
}

// Insert adds a new typed event under the given day.
func (s *Store) Insert(dk string, t event.Typed) error {
	if err := t.Valid(); err != nil {
		return err
	}
	if t.ID() == "" {
		return errors.New("journal: event id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.days[dk]
	if b == nil {
		b = &bucket{typed: make(map[string]event.Typed)}
		s.days[dk] = b
	}
	if _, ok := b.typed[t.ID()]; ok {
		return ErrExists
	}
	b.typed[t.ID()] = t.Clone()
	s.pushLocked(dk)
	return nil
}

// Replace swaps the stored event with the same day and id.
func (s *Store) Replace(dk string, t event.Typed) error {
	if err := t.Valid(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.days[dk]
	if b == nil {
		return ErrNotFound
	}
	if _, ok := b.typed[t.ID()]; !ok {
		return ErrNotFound
	}
	b.typed[t.ID()] = t.Clone()
	s.pushLocked(dk)
	return nil
}

// Remove deletes the event and returns its final state.
func (s *Store) Remove(dk, id string) (event.Typed, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.days[dk]
	if b == nil {
		return event.Typed{}, false
	}
	t, ok := b.typed[id]
	if !ok {
		return event.Typed{}, false
	}
	delete(b.typed, id)
	if len(b.typed) == 0 {
		delete(s.days, dk)
	}
	s.pushLocked(dk)
	return t, true
}

// Find returns a copy of the event for (day, id).
func (s *Store) Find(dk, id string) (event.Typed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.days[dk]
	if b == nil {
		return event.Typed{}, false
	}
	t, ok := b.typed[id]
	if !ok {
		return event.Typed{}, false
	}
	return t.Clone(), true
}

// Locate scans all days for an id and returns the event and its day.
func (s *Store) Locate(id string) (event.Typed, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.days))
	for dk := range s.days {
		keys = append(keys, dk)
	}
	day.Sort(keys)
	for _, dk := range keys {
		if t, ok := s.days[dk].typed[id]; ok {
			return t.Clone(), dk, true
		}
	}
	return event.Typed{}, "", false
}

// Day lists the generic projections for a day, ordered by start time.
func (s *Store) Day(dk string) []event.Event {
	typed := s.TypedDay(dk)
	out := make([]event.Event, 0, len(typed))
	for _, t := range typed {
		out = append(out, t.Generic())
	}
	return out
}

// TypedDay lists copies of the typed events for a day, ordered by start time.
func (s *Store) TypedDay(dk string) []event.Typed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(dk)
}

// Days returns every day holding at least one event, in order.
func (s *Store) Days() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.days))
	for dk := range s.days {
		keys = append(keys, dk)
	}
	day.Sort(keys)
	return keys
}

func (s *Store) snapshotLocked(dk string) []event.Typed {
	b := s.days[dk]
	if b == nil {
		return nil
	}
	out := make([]event.Typed, 0, len(b.typed))
	for _, t := range b.typed {
		out = append(out, t.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		left := out[i].Generic()
		right := out[j].Generic()
		if left.Start.Equal(right.Start.Time) {
			return left.ID < right.ID
		}
		return left.Start.Before(right.Start.Time)
	})
	return out
}

// pushLocked syncs the day's snapshot into the sink. Failure is reported but
// never returned; the in-memory state is canonical.
func (s *Store) pushLocked(dk string) {
	if s.sink == nil {
		return
	}
	if err := s.sink.StoreDay(dk, s.snapshotLocked(dk)); err != nil {
		fmt.Fprintf(os.Stderr, "journal: sync %s: %v\n", dk, err)
	}
}
