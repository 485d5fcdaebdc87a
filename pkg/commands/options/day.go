// Package options defines shared flag helpers for CLI commands.
package options

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO = "2006-01-02"
)

// DayOptions captures the common day selection flags.
type DayOptions struct {
	Day string
	All bool
}

// AddDayArgs wires day-related flags on the provided command.
func AddDayArgs(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().StringVarP(&o.Day, "day", "d", "today",
		`Specify the day, "today", "yesterday", or a date like 2026-08-31.`)
}

// AddAllDaysArg registers the flag that operates on every day at once.
func AddAllDaysArg(cmd *cobra.Command, o *DayOptions) {
	cmd.Flags().BoolVar(&o.All, "all", false,
		"Specify all days.")
}

// AddOptions
type AddOptions struct {
	Notes    string
	Amount   string
	OnString string
}

func AddEventArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVar(&o.OnString, "at", "",
		`Specify a start time for the event, example: --at="2026-08-31T09:15:00Z".`)
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"Free-form notes for the event.")
}

func AddAmountArg(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVarP(&o.Amount, "amount", "a", "",
		`Specify a feed amount, example: --amount=120ml.`)
}

func (o *AddOptions) GetAt() (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, o.OnString)
	if err == nil {
		return &t, nil
	}
	d, derr := time.ParseInLocation(layoutISO, o.OnString, time.Local)
	if derr != nil {
		return nil, err
	}
	return &d, nil
}
