package days

import (
	"context"
	"errors"

	"tableflip.dev/cradle/pkg/app"
	"tableflip.dev/cradle/pkg/printers"
)

type Days struct {
	Service *app.Service
}

func (n *Days) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list days, no service")
	}

	keys := n.Service.Journal.Days()
	counts := make(map[string]int, len(keys))
	for _, dk := range keys {
		counts[dk] = len(n.Service.Journal.TypedDay(dk))
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Days(keys, counts)
	return nil
}
