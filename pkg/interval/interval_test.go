package interval

import (
	"testing"
	"time"

	"tableflip.dev/cradle/pkg/event"
)

var t0 = time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

func closed(fromMin, toMin int) event.PauseInterval {
	return event.PauseInterval{
		Pause:  event.At(t0.Add(time.Duration(fromMin) * time.Minute)),
		Resume: event.At(t0.Add(time.Duration(toMin) * time.Minute)),
	}
}

func TestEffectiveDurationScenarioA(t *testing.T) {
	// Start at T0, pause at T0+5m, resume at T0+8m, query at T0+10m.
	pauses := []event.PauseInterval{closed(5, 8)}
	got := EffectiveDuration(t0, pauses, nil, nil, t0.Add(10*time.Minute))
	if got != 7*time.Minute {
		t.Fatalf("duration = %v, want 7m", got)
	}
}

func TestEffectiveDurationFinalizedIsAuthoritative(t *testing.T) {
	end := t0.Add(45 * time.Minute)
	pauses := []event.PauseInterval{closed(5, 15)}
	// Pauses are not subtracted once the record is finalized.
	got := EffectiveDuration(t0, pauses, nil, &end, end.Add(time.Hour))
	if got != 45*time.Minute {
		t.Fatalf("duration = %v, want 45m", got)
	}
}

func TestEffectiveDurationFrozenWhilePaused(t *testing.T) {
	since := t0.Add(20 * time.Minute)
	a := EffectiveDuration(t0, nil, &since, nil, t0.Add(21*time.Minute))
	b := EffectiveDuration(t0, nil, &since, nil, t0.Add(3*time.Hour))
	if a != b {
		t.Fatalf("paused duration advanced: %v then %v", a, b)
	}
	if a != 20*time.Minute {
		t.Fatalf("paused duration = %v, want 20m", a)
	}
}

func TestEffectiveDurationMonotonicWhileUnpaused(t *testing.T) {
	pauses := []event.PauseInterval{closed(2, 4), closed(10, 11)}
	prev := time.Duration(-1)
	for min := 12; min <= 60; min += 3 {
		d := EffectiveDuration(t0, pauses, nil, nil, t0.Add(time.Duration(min)*time.Minute))
		if d < prev {
			t.Fatalf("duration decreased at +%dm: %v < %v", min, d, prev)
		}
		prev = d
	}
}

func TestEffectiveDurationCorruptPausedSince(t *testing.T) {
	// Paused-since before start is unusable; fall back to now, never negative.
	bad := t0.Add(-time.Hour)
	got := EffectiveDuration(t0, nil, &bad, nil, t0.Add(30*time.Minute))
	if got != 30*time.Minute {
		t.Fatalf("duration = %v, want 30m", got)
	}
	var zero time.Time
	got = EffectiveDuration(t0, nil, &zero, nil, t0.Add(10*time.Minute))
	if got != 10*time.Minute {
		t.Fatalf("duration = %v, want 10m", got)
	}
}

func TestEffectiveDurationNeverNegative(t *testing.T) {
	pauses := []event.PauseInterval{closed(0, 30)}
	if got := EffectiveDuration(t0, pauses, nil, nil, t0.Add(10*time.Minute)); got != 0 {
		t.Fatalf("duration = %v, want 0", got)
	}
}

func TestResume(t *testing.T) {
	since := t0.Add(5 * time.Minute)
	p, err := Resume(&since, t0.Add(8*time.Minute))
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if p.Duration() != 3*time.Minute {
		t.Fatalf("pause duration = %v, want 3m", p.Duration())
	}
}

func TestResumeScenarioD(t *testing.T) {
	// No open pause recorded.
	if _, err := Resume(nil, t0); err != ErrInvalidInterval {
		t.Fatalf("err = %v, want ErrInvalidInterval", err)
	}
	var zero time.Time
	if _, err := Resume(&zero, t0); err != ErrInvalidInterval {
		t.Fatalf("err = %v, want ErrInvalidInterval", err)
	}
	// Pause instant must be strictly earlier than the resume instant.
	same := t0
	if _, err := Resume(&same, t0); err != ErrInvalidInterval {
		t.Fatalf("err = %v, want ErrInvalidInterval", err)
	}
}

func TestStopWhileRunning(t *testing.T) {
	pauses := []event.PauseInterval{closed(5, 8)}
	end, dur := Stop(t0, pauses, nil, t0.Add(10*time.Minute))
	if !end.Equal(t0.Add(10 * time.Minute)) {
		t.Fatalf("end = %v", end)
	}
	if dur != 7*time.Minute {
		t.Fatalf("duration = %v, want 7m", dur)
	}
}

func TestStopWhilePausedFreezesAtPause(t *testing.T) {
	since := t0.Add(20 * time.Minute)
	end, dur := Stop(t0, nil, &since, t0.Add(2*time.Hour))
	if !end.Equal(since) {
		t.Fatalf("end = %v, want the pause instant %v", end, since)
	}
	if dur != 20*time.Minute {
		t.Fatalf("duration = %v, want 20m", dur)
	}
	// Displayed at stop == persisted: effective duration at the same now.
	if disp := EffectiveDuration(t0, nil, &since, nil, t0.Add(2*time.Hour)); disp != dur {
		t.Fatalf("display %v != persisted %v", disp, dur)
	}
}

func TestTotalPausedIncludesOpenSegment(t *testing.T) {
	since := t0.Add(10 * time.Minute)
	pauses := []event.PauseInterval{closed(2, 4)}
	got := TotalPaused(pauses, &since, t0.Add(15*time.Minute))
	if got != 7*time.Minute {
		t.Fatalf("total paused = %v, want 7m", got)
	}
	if got := TotalPaused(pauses, nil, t0); got != 2*time.Minute {
		t.Fatalf("closed-only total = %v, want 2m", got)
	}
}
