// Package day defines the day keys events are filed under.
package day

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Layout is the canonical day key format, e.g. "2026-08-31".
const Layout = "2006-01-02"

// Format renders t's local calendar day as a key.
func Format(t time.Time) string {
	return t.Local().Format(Layout)
}

// Today returns the key for the current local day.
func Today() string {
	return Format(time.Now())
}

// Parse converts a key back to the midnight instant of that local day.
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(key), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("day: parse %q: %w", key, err)
	}
	return t, nil
}

// IsKey reports whether value looks like a day key.
func IsKey(value string) bool {
	_, err := time.Parse(Layout, value)
	return err == nil
}

// Resolve turns user input into a day key: empty or "today" is today,
// "yesterday" is the prior day, anything else must already be a key.
func Resolve(input string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "today":
		return Today(), nil
	case "yesterday":
		return Format(time.Now().AddDate(0, 0, -1)), nil
	}
	trimmed := strings.TrimSpace(input)
	if !IsKey(trimmed) {
		return "", fmt.Errorf("day: %q is not a day (want %s)", input, Layout)
	}
	return trimmed, nil
}

// Sort orders day keys chronologically in place. Lexicographic order matches
// chronological order for the fixed-width layout.
func Sort(keys []string) {
	sort.Strings(keys)
}
