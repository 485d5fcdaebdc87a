// Package interval computes effective elapsed time for activities that can be
// paused and resumed. All functions are pure; callers own the state.
package interval

import (
	"errors"
	"time"

	"tableflip.dev/cradle/pkg/event"
)

// ErrInvalidInterval is returned when a resume has no matching open pause or
// the pause instant is not earlier than the resume instant.
var ErrInvalidInterval = errors.New("interval: resume without matching open pause")

// ClosedPaused sums the durations of all closed pause intervals.
func ClosedPaused(pauses []event.PauseInterval) time.Duration {
	var total time.Duration
	for _, p := range pauses {
		total += p.Duration()
	}
	return total
}

// TotalPaused is ClosedPaused plus the open pause segment up to now, when one
// exists. A paused-since instant that cannot be resolved (zero, or ahead of
// now) contributes nothing.
func TotalPaused(pauses []event.PauseInterval, pausedSince *time.Time, now time.Time) time.Duration {
	total := ClosedPaused(pauses)
	if pausedSince != nil && !pausedSince.IsZero() && pausedSince.Before(now) {
		total += now.Sub(*pausedSince)
	}
	return total
}

// EffectiveDuration returns the elapsed active time at now.
//
// A finalized activity (end non-nil) is authoritative: end minus start, no
// pause subtraction. An ongoing activity freezes its clock at pausedSince when
// paused, otherwise runs to now, minus every closed pause. The result never
// goes negative, and a corrupt pausedSince (zero, or before start) is ignored
// rather than allowed to poison the sum.
func EffectiveDuration(start time.Time, pauses []event.PauseInterval, pausedSince, end *time.Time, now time.Time) time.Duration {
	if end != nil {
		return end.Sub(start)
	}
	endpoint := now
	if ps := usable(pausedSince, start); ps != nil {
		endpoint = *ps
	}
	d := endpoint.Sub(start) - ClosedPaused(pauses)
	if d < 0 {
		return 0
	}
	return d
}

// Pause records now as the paused-since instant. The caller persists it onto
// the owning entity.
func Pause(now time.Time) event.Timestamp {
	return event.At(now)
}

// Resume closes the open pause that began at pausedSince.
func Resume(pausedSince *time.Time, now time.Time) (event.PauseInterval, error) {
	if pausedSince == nil || pausedSince.IsZero() || !pausedSince.Before(now) {
		return event.PauseInterval{}, ErrInvalidInterval
	}
	return event.PauseInterval{
		Pause:  event.At(*pausedSince),
		Resume: event.At(now),
	}, nil
}

// Stop finalizes an ongoing activity. The end instant is pausedSince when
// paused (the clock froze there), otherwise now; the returned duration is the
// effective duration at that instant, so the number shown at stop time is
// exactly the number persisted.
func Stop(start time.Time, pauses []event.PauseInterval, pausedSince *time.Time, now time.Time) (time.Time, time.Duration) {
	end := now
	if ps := usable(pausedSince, start); ps != nil {
		end = *ps
	}
	return end, EffectiveDuration(start, pauses, pausedSince, nil, now)
}

func usable(pausedSince *time.Time, start time.Time) *time.Time {
	if pausedSince == nil || pausedSince.IsZero() || pausedSince.Before(start) {
		return nil
	}
	return pausedSince
}
