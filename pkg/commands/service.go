package commands

import (
	"context"

	"tableflip.dev/cradle/pkg/app"
	"tableflip.dev/cradle/pkg/notify"
	"tableflip.dev/cradle/pkg/store"
)

// newService wires the full stack for one invocation: config, the diskv
// sink, and a hydrated service on top.
func newService(ctx context.Context) (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	s := app.New(p, cfg.GraceWindow(), notify.Discard{})
	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
