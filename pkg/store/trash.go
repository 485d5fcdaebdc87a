package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/cradle/pkg/event"
)

// trashPrefix keys tombstone records under their own diskv bucket, out of the
// way of day keys.
const trashPrefix = "trash"

// Tombstone is the persisted form of a soft-deleted event, kept so the
// recovery window spans process restarts.
type Tombstone struct {
	ID        string          `json:"id"`
	Kind      event.Kind      `json:"kind"`
	Day       string          `json:"day"`
	Snapshot  event.Typed     `json:"snapshot"`
	DeletedAt event.Timestamp `json:"deleted_at"`
}

// StoreTombstones reconciles the trash bucket with the given live set: every
// record is written, every key no longer live is erased.
func (p *persistence) StoreTombstones(records []Tombstone) error {
	keep := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if err := rec.Snapshot.Valid(); err != nil {
			return err
		}
		key := trashKey(rec)
		keep[key] = struct{}{}
		data, err := json.Marshal(rec)
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
		if !isTrashKey(key) {
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

func (p *persistence) LoadTombstones(ctx context.Context) ([]Tombstone, error) {
	all := make([]Tombstone, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if !isTrashKey(key) {
			continue
		}
		val, err := p.d.Read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		var rec Tombstone
		if err := json.Unmarshal(val, &rec); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		if err := rec.Snapshot.Valid(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, rec)
	}
	return all, nil
}

func trashKey(rec Tombstone) string {
	return fmt.Sprintf("%s-%s-%s", trashPrefix, rec.Kind, rec.ID)
}

func isTrashKey(key string) bool {
	return strings.HasPrefix(key, trashPrefix+"-")
}
