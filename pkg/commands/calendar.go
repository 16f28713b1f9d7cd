package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/config"
)

func addCalendar(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "calendar [YYYY-MM]",
		Aliases: []string{"cal"},
		Short:   "Show a month of release, marketing and deliverable events.",
		Example: `
marquee calendar
marquee calendar 2025-11
marquee calendar --week-start monday
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := cfg.Month()
			if len(args) == 1 {
				year, month, err = config.ParseMonth(args[0])
			}
			if err != nil {
				return oo.HandleError(err)
			}
			today, err := cfg.Today()
			if err != nil {
				return oo.HandleError(err)
			}
			weekStart, err := cfg.WeekStart()
			if err != nil {
				return oo.HandleError(err)
			}

			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			grid, err := svc.Month(cmd.Context(), year, month, weekStart, today)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(cmd.OutOrStdout(), grid)
			}
			printer(cmd).Calendar(grid)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

// monthBounds returns the first and last day of the configured month.
func monthBounds() (time.Time, time.Time, error) {
	year, month, err := cfg.Month()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1), nil
}
