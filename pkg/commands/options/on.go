package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/release"
)

const layoutShort = "1/2"

// OnOptions selects a single day.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2025-11-15" or --on="11/15".`)
}

// GetOn parses --on. The short month/day form takes its year from
// reference. An unset flag returns an empty date.
func (o *OnOptions) GetOn(reference release.Date) (release.Date, error) {
	return ParseDay(o.OnString, reference)
}

// ParseDay accepts YYYY-MM-DD or M/D.
func ParseDay(raw string, reference release.Date) (release.Date, error) {
	if raw == "" {
		return "", nil
	}
	if d, err := release.ParseDate(raw); err == nil {
		return d, nil
	}
	t, err := time.Parse(layoutShort, raw)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD or M/D", raw)
	}
	year := time.Now().Year()
	if y, _, _, ok := reference.Civil(); ok {
		year = y
	}
	return release.NewDate(year, t.Month(), t.Day()), nil
}

// RangeOptions bound a span of days.
type RangeOptions struct {
	From string
	To   string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		"First day of the range (default: first day of the configured month).")
	cmd.Flags().StringVar(&o.To, "to", "",
		"Last day of the range (default: last day of the configured month).")
}
