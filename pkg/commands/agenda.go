package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/commands/options"
	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeutil"
)

func addAgenda(topLevel *cobra.Command) {
	rg := &options.RangeOptions{}
	var within string

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List upcoming events grouped by release window.",
		Example: `
marquee agenda
marquee agenda --from 2025-11-01 --to 2025-12-31
marquee agenda --within 3w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			first, last, err := monthBounds()
			if err != nil {
				return oo.HandleError(err)
			}
			today, err := cfg.Today()
			if err != nil {
				return oo.HandleError(err)
			}
			from, to := release.DateOf(first), release.DateOf(last)
			if within != "" {
				days, _, err := timeutil.ParseSpan(within)
				if err != nil {
					return oo.HandleError(err)
				}
				start, err := today.Time()
				if err != nil {
					return oo.HandleError(err)
				}
				from, to = today, release.DateOf(start.AddDate(0, 0, days))
			}
			if rg.From != "" {
				if from, err = options.ParseDay(rg.From, today); err != nil {
					return oo.HandleError(err)
				}
			}
			if rg.To != "" {
				if to, err = options.ParseDay(rg.To, today); err != nil {
					return oo.HandleError(err)
				}
			}

			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			res, err := svc.Agenda(cmd.Context(), from, to)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(cmd.OutOrStdout(), res)
			}
			printer(cmd).Agenda(res)
			return nil
		},
	}

	options.AddRangeArgs(cmd, rg)
	cmd.Flags().StringVar(&within, "within", "", `Show the span starting today, e.g. "10d" or "2w".`)
	topLevel.AddCommand(cmd)
}
