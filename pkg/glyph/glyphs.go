package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Noun    string
	Meaning string
	Aliases []string
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	underCode  = 4
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underCode, in, escape, resetCode)
}

// DefaultGlyphs returns the glyph table for event kinds and activity states.
func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Key:     "f",
		Symbol:  "◉",
		Noun:    "feed",
		Meaning: "feeding",
		Aliases: []string{"feed", "feeds", "f"},
	}, {
		Key:     "z",
		Symbol:  "☾",
		Noun:    "sleep",
		Meaning: "nap or night sleep",
		Aliases: []string{"sleep", "sleeps", "nap", "naps", "z"},
	}, {
		Key:     "t",
		Symbol:  "●",
		Noun:    "task",
		Meaning: "care task",
		Aliases: []string{"task", "tasks", "t"},
	}, {
		Key:     "g",
		Symbol:  "◎",
		Noun:    "goal",
		Meaning: "goal",
		Aliases: []string{"goal", "goals", "g"},
	}, {
		Key:     "",
		Symbol:  "",
		Noun:    "any",
		Meaning: "any kind",
		Aliases: []string{"any", "all"},
	}}
}

// Activity state markers used next to sleep rows.
const (
	Ongoing = "▸"
	Paused  = "‖"
	Stopped = "✓"
)

// ForNoun looks up the glyph for a kind noun, falling back to the any glyph.
func ForNoun(noun string) Glyph {
	table := DefaultGlyphs()
	for _, g := range table {
		for _, a := range g.Aliases {
			if a == noun {
				return g
			}
		}
	}
	return table[len(table)-1]
}

func (g Glyph) String() string {
	return g.Symbol
}
