package event

import (
	"errors"
	"time"
)

// Typed is a closed union over the four typed events. Exactly one arm is
// non-nil; restore and undo paths dispatch on it without runtime type checks.
type Typed struct {
	Feed  *FeedEvent  `json:"feed,omitempty"`
	Sleep *SleepEvent `json:"sleep,omitempty"`
	Task  *TaskEvent  `json:"task,omitempty"`
	Goal  *GoalEvent  `json:"goal,omitempty"`
}

var ErrEmptyUnion = errors.New("event: no typed event set")

func NewFeed(start time.Time, amount, notes string) Typed {
	return Typed{Feed: &FeedEvent{ID: NewID(), Start: At(start), Amount: amount, Notes: notes}}
}

func NewSleep(start time.Time, notes string) Typed {
	return Typed{Sleep: &SleepEvent{ID: NewID(), Start: At(start), Ongoing: true, Notes: notes}}
}

func NewTask(start time.Time, title, notes string) Typed {
	return Typed{Task: &TaskEvent{ID: NewID(), Start: At(start), Title: title, Notes: notes}}
}

func NewGoal(start time.Time, title, notes string) Typed {
	return Typed{Goal: &GoalEvent{ID: NewID(), Start: At(start), Title: title, Notes: notes}}
}

// Valid reports whether exactly one arm is set.
func (t Typed) Valid() error {
	n := 0
	if t.Feed != nil {
		n++
	}
	if t.Sleep != nil {
		n++
	}
	if t.Task != nil {
		n++
	}
	if t.Goal != nil {
		n++
	}
	if n != 1 {
		return ErrEmptyUnion
	}
	return nil
}

func (t Typed) Kind() Kind {
	switch {
	case t.Feed != nil:
		return KindFeed
	case t.Sleep != nil:
		return KindSleep
	case t.Task != nil:
		return KindTask
	case t.Goal != nil:
		return KindGoal
	}
	return ""
}

func (t Typed) ID() string {
	switch {
	case t.Feed != nil:
		return t.Feed.ID
	case t.Sleep != nil:
		return t.Sleep.ID
	case t.Task != nil:
		return t.Task.ID
	case t.Goal != nil:
		return t.Goal.ID
	}
	return ""
}

// Generic projects the typed event into its abstract form.
func (t Typed) Generic() Event {
	switch {
	case t.Feed != nil:
		return Event{ID: t.Feed.ID, Kind: KindFeed, Start: t.Feed.Start, Notes: t.Feed.Notes, Template: t.Feed.Template}
	case t.Sleep != nil:
		return Event{ID: t.Sleep.ID, Kind: KindSleep, Start: t.Sleep.Start, Notes: t.Sleep.Notes, Template: t.Sleep.Template}
	case t.Task != nil:
		return Event{ID: t.Task.ID, Kind: KindTask, Start: t.Task.Start, Notes: t.Task.Notes, Template: t.Task.Template}
	case t.Goal != nil:
		return Event{ID: t.Goal.ID, Kind: KindGoal, Start: t.Goal.Start, Notes: t.Goal.Notes, Template: t.Goal.Template}
	}
	return Event{}
}

// Clone deep-copies the union so snapshots never alias live state.
func (t Typed) Clone() Typed {
	var out Typed
	switch {
	case t.Feed != nil:
		feed := *t.Feed
		feed.End = cloneTS(t.Feed.End)
		feed.Prep = cloneTS(t.Feed.Prep)
		out.Feed = &feed
	case t.Sleep != nil:
		sleep := *t.Sleep
		sleep.End = cloneTS(t.Sleep.End)
		sleep.PausedSince = cloneTS(t.Sleep.PausedSince)
		if t.Sleep.Pauses != nil {
			sleep.Pauses = append([]PauseInterval(nil), t.Sleep.Pauses...)
		}
		if t.Sleep.ActualSeconds != nil {
			secs := *t.Sleep.ActualSeconds
			sleep.ActualSeconds = &secs
		}
		out.Sleep = &sleep
	case t.Task != nil:
		task := *t.Task
		task.Due = cloneTS(t.Task.Due)
		out.Task = &task
	case t.Goal != nil:
		goal := *t.Goal
		goal.Target = cloneTS(t.Goal.Target)
		if t.Goal.Steps != nil {
			goal.Steps = append([]string(nil), t.Goal.Steps...)
		}
		out.Goal = &goal
	}
	return out
}

// Temporal returns the shared temporal shape: start, the kind's end-like
// instant (feed end, sleep end, task due, goal target), and prep (feed only).
func (t Typed) Temporal() (start Timestamp, end, prep *Timestamp) {
	switch {
	case t.Feed != nil:
		return t.Feed.Start, cloneTS(t.Feed.End), cloneTS(t.Feed.Prep)
	case t.Sleep != nil:
		return t.Sleep.Start, cloneTS(t.Sleep.End), nil
	case t.Task != nil:
		return t.Task.Start, cloneTS(t.Task.Due), nil
	case t.Goal != nil:
		return t.Goal.Start, cloneTS(t.Goal.Target), nil
	}
	return Timestamp{}, nil, nil
}

// WithTemporal returns a deep copy with the temporal fields replaced. Non
// temporal fields are untouched, which is what undo and redo rely on.
func (t Typed) WithTemporal(start Timestamp, end, prep *Timestamp) Typed {
	out := t.Clone()
	switch {
	case out.Feed != nil:
		out.Feed.Start = start
		out.Feed.End = cloneTS(end)
		out.Feed.Prep = cloneTS(prep)
	case out.Sleep != nil:
		out.Sleep.Start = start
		out.Sleep.End = cloneTS(end)
	case out.Task != nil:
		out.Task.Start = start
		out.Task.Due = cloneTS(end)
	case out.Goal != nil:
		out.Goal.Start = start
		out.Goal.Target = cloneTS(end)
	}
	return out
}

func cloneTS(ts *Timestamp) *Timestamp {
	if ts == nil {
		return nil
	}
	c := *ts
	return &c
}
