package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID produces a short opaque identifier for a new event.
func NewID() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:8])
}

// Event is the generic projection of a typed event. It exists only as a
// read-only view; mutations always go through the typed source.
type Event struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"kind"`
	Start    Timestamp `json:"start"`
	Notes    string    `json:"notes,omitempty"`
	Template bool      `json:"template,omitempty"`
}

// PauseInterval records one completed pause of an ongoing activity. Resume is
// strictly after Pause; intervals are appended in order and never rewritten.
type PauseInterval struct {
	Pause  Timestamp `json:"pause"`
	Resume Timestamp `json:"resume"`
}

func (p PauseInterval) Duration() time.Duration {
	return p.Resume.Sub(p.Pause.Time)
}

// FeedEvent is a single feeding. Prep, when set, is the instant preparation
// started ahead of Start.
type FeedEvent struct {
	ID       string     `json:"id"`
	Start    Timestamp  `json:"start"`
	End      *Timestamp `json:"end,omitempty"`
	Prep     *Timestamp `json:"prep,omitempty"`
	Amount   string     `json:"amount,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	Template bool       `json:"template,omitempty"`
}

// SleepEvent is a nap or night sleep. While Ongoing it accrues effective
// duration modulo Pauses; PausedSince is set iff Paused. ActualSeconds caches
// the effective duration frozen at stop time.
type SleepEvent struct {
	ID            string          `json:"id"`
	Start         Timestamp       `json:"start"`
	End           *Timestamp      `json:"end,omitempty"`
	Ongoing       bool            `json:"ongoing,omitempty"`
	Paused        bool            `json:"paused,omitempty"`
	Pauses        []PauseInterval `json:"pauses,omitempty"`
	PausedSince   *Timestamp      `json:"paused_since,omitempty"`
	ActualSeconds *int64          `json:"actual_seconds,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Template      bool            `json:"template,omitempty"`
}

// TaskEvent is a care task with an optional due instant.
type TaskEvent struct {
	ID       string     `json:"id"`
	Start    Timestamp  `json:"start"`
	Due      *Timestamp `json:"due,omitempty"`
	Done     bool       `json:"done,omitempty"`
	Title    string     `json:"title,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	Template bool       `json:"template,omitempty"`
}

// GoalEvent is a longer-horizon goal with an optional target instant and
// externally supplied breakdown steps.
type GoalEvent struct {
	ID       string     `json:"id"`
	Start    Timestamp  `json:"start"`
	Target   *Timestamp `json:"target,omitempty"`
	Title    string     `json:"title,omitempty"`
	Steps    []string   `json:"steps,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	Template bool       `json:"template,omitempty"`
}
