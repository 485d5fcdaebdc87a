package app

import (
	"context"
	"time"

	"tableflip.dev/cradle/pkg/event"
	"tableflip.dev/cradle/pkg/interval"
	"tableflip.dev/cradle/pkg/timeutil"
)

// findSleep locates a sleep event by id across all days. Non-sleep events
// with a matching id are rejected, never silently coerced.
func (s *Service) findSleep(id string) (*event.SleepEvent, string, error) {
	t, day, ok := s.Journal.Locate(id)
	if !ok {
		return nil, "", ErrNotFound
	}
	if t.Sleep == nil {
		return nil, "", ErrNotSleep
	}
	return t.Sleep, day, nil
}

// StartNap opens an ongoing sleep for the given day. It goes through
// AddEvent so starting a nap is undoable like any other addition.
func (s *Service) StartNap(ctx context.Context, day, notes string) (event.Typed, error) {
	t := event.NewSleep(s.Now(), notes)
	return s.AddEvent(ctx, t, day)
}

// PauseNap freezes elapsed-time accrual for an ongoing sleep. Pausing an
// already paused sleep is a no-op.
func (s *Service) PauseNap(ctx context.Context, id string) error {
	sl, day, err := s.findSleep(id)
	if err != nil {
		return err
	}
	if !sl.Ongoing {
		return interval.ErrInvalidInterval
	}
	if sl.Paused {
		return nil
	}
	ts := interval.Pause(s.Now())
	sl.Paused = true
	sl.PausedSince = &ts
	return s.Journal.Replace(day, event.Typed{Sleep: sl})
}

// ResumeNap closes the open pause segment. Resuming a sleep that is not
// paused fails without touching state.
func (s *Service) ResumeNap(ctx context.Context, id string) error {
	sl, day, err := s.findSleep(id)
	if err != nil {
		return err
	}
	if !sl.Ongoing {
		return interval.ErrInvalidInterval
	}
	var since *event.Timestamp
	if sl.Paused {
		since = sl.PausedSince
	}
	seg, err := interval.Resume(timestampTime(since), s.Now())
	if err != nil {
		return err
	}
	sl.Pauses = append(sl.Pauses, seg)
	sl.Paused = false
	sl.PausedSince = nil
	return s.Journal.Replace(day, event.Typed{Sleep: sl})
}

// StopNap finalizes an ongoing sleep, fixing the end time and the actual
// awake-adjusted duration. Stopping while paused ends the open pause at the
// moment it began, so paused time never counts.
func (s *Service) StopNap(ctx context.Context, id string) (event.Typed, error) {
	sl, day, err := s.findSleep(id)
	if err != nil {
		return event.Typed{}, err
	}
	if !sl.Ongoing {
		return event.Typed{}, interval.ErrInvalidInterval
	}
	var since *event.Timestamp
	if sl.Paused {
		since = sl.PausedSince
	}
	end, actual := interval.Stop(sl.Start.Time, sl.Pauses, timestampTime(since), s.Now())
	ts := event.At(end)
	secs := int64(actual.Seconds())
	sl.End = &ts
	sl.Ongoing = false
	sl.Paused = false
	sl.PausedSince = nil
	sl.ActualSeconds = &secs
	t := event.Typed{Sleep: sl}
	if err := s.Journal.Replace(day, t); err != nil {
		return event.Typed{}, err
	}
	_ = s.Notifier.Cancel(ctx, id)
	return t, nil
}

// NapDuration reports the effective duration of a sleep as of now, formatted
// for display. Finalized sleeps report their recorded duration regardless of
// the clock.
func (s *Service) NapDuration(ctx context.Context, id string) (string, error) {
	sl, _, err := s.findSleep(id)
	if err != nil {
		return "", err
	}
	if sl.ActualSeconds != nil {
		return timeutil.FormatWindow(time.Duration(*sl.ActualSeconds) * time.Second), nil
	}
	var since *event.Timestamp
	if sl.Paused {
		since = sl.PausedSince
	}
	d := interval.EffectiveDuration(sl.Start.Time, sl.Pauses, timestampTime(since), timestampTime(sl.End), s.Now())
	return timeutil.FormatWindow(d), nil
}

func timestampTime(ts *event.Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	return &ts.Time
}
