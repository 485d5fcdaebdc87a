package event

import (
	"fmt"
	"strings"
)

// Kind identifies which typed event a record is.
type Kind string

const (
	KindFeed  Kind = "feed"
	KindSleep Kind = "sleep"
	KindTask  Kind = "task"
	KindGoal  Kind = "goal"
)

// AllKinds returns the supported event kinds.
func AllKinds() []Kind {
	return []Kind{KindFeed, KindSleep, KindTask, KindGoal}
}

// ParseKind converts a string (singular or plural) to a Kind.
func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "s"))
	for _, candidate := range AllKinds() {
		if candidate == k {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("event: unknown kind %q", raw)
}

func (k Kind) String() string {
	return string(k)
}
