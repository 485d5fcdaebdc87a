package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/cradle/pkg/day"
	"tableflip.dev/cradle/pkg/event"
)

// Persistence is the keyed sink the event store pushes day snapshots into.
// Writes are best effort from the caller's point of view; a failed push is
// reported but never blocks a mutation.
type Persistence interface {
	StoreDay(d string, events []event.Typed) error
	LoadDay(ctx context.Context, d string) ([]event.Typed, error)
	LoadAll(ctx context.Context) (map[string][]event.Typed, error)
	StoreTombstones(records []Tombstone) error
	LoadTombstones(ctx context.Context) ([]Tombstone, error)
	Days(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (event.Typed, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return event.Typed{}, err
	}
	var t event.Typed
	if err := json.Unmarshal(val, &t); err != nil {
		return event.Typed{}, err
	}
	if err := t.Valid(); err != nil {
		return event.Typed{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

// StoreDay reconciles the on-disk keys for a day with the snapshot: every
// event in the snapshot is written, every key no longer present is erased.
func (p *persistence) StoreDay(d string, events []event.Typed) error {
	keep := make(map[string]struct{}, len(events))
	for _, t := range events {
		if err := t.Valid(); err != nil {
			return err
		}
		key := toKey(d, t)
		keep[key] = struct{}{}
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		if err := p.d.Write(key, data); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stale []string
	for key := range p.d.Keys(ctx.Done()) {
		if dayOfKey(key) != d {
			continue
		}
		if _, ok := keep[key]; !ok {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		if err := p.d.Erase(key); err != nil {
			return err
		}
	}
	return nil
}

func (p *persistence) LoadDay(ctx context.Context, d string) ([]event.Typed, error) {
	all := make([]event.Typed, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if dayOfKey(key) != d {
			continue
		}
		t, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, t)
	}
	sortEvents(all)
	return all, nil
}

func (p *persistence) LoadAll(ctx context.Context) (map[string][]event.Typed, error) {
	all := make(map[string][]event.Typed)
	for key := range p.d.Keys(ctx.Done()) {
		dk := dayOfKey(key)
		if dk == "" {
			continue
		}
		t, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all[dk] = append(all[dk], t)
	}
	for dk := range all {
		sortEvents(all[dk])
	}
	return all, nil
}

func (p *persistence) Days(ctx context.Context) []string {
	seen := make(map[string]struct{})
	for key := range p.d.Keys(ctx.Done()) {
		if dk := dayOfKey(key); dk != "" {
			seen[dk] = struct{}{}
		}
	}
	days := make([]string, 0, len(seen))
	for dk := range seen {
		days = append(days, dk)
	}
	day.Sort(days)
	return days
}

func sortEvents(events []event.Typed) {
	sort.SliceStable(events, func(i, j int) bool {
		left := events[i].Generic()
		right := events[j].Generic()
		if left.Start.Equal(right.Start.Time) {
			return left.ID < right.ID
		}
		return left.Start.Before(right.Start.Time)
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `day-kind-id`; the day's own dashes split into path segments.
func toKey(d string, t event.Typed) string {
	return fmt.Sprintf("%s-%s-%s", d, t.Kind(), t.ID())
}

// dayOfKey recovers the day key from `yyyy-mm-dd-kind-id`.
func dayOfKey(key string) string {
	parts := strings.SplitN(key, "-", 4)
	if len(parts) < 4 {
		return ""
	}
	dk := strings.Join(parts[:3], "-")
	if !day.IsKey(dk) {
		return ""
	}
	return dk
}
