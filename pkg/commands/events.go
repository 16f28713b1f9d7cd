package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/commands/options"
	"tableflip.dev/marquee/pkg/ics"
	"tableflip.dev/marquee/pkg/timeline"
)

func addEvents(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List the projected timeline, optionally for a single day.",
		Example: `
marquee events
marquee events --on 2025-11-15
marquee events --on 10/10 --types deliverable
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := cfg.Today()
			if err != nil {
				return oo.HandleError(err)
			}
			day, err := on.GetOn(today)
			if err != nil {
				return oo.HandleError(err)
			}
			types, err := ics.ParseTypes(fo.Types)
			if err != nil {
				return oo.HandleError(err)
			}

			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			var events []timeline.Event
			title := "Timeline"
			if day != "" {
				events, err = svc.EventsOn(cmd.Context(), day)
				title = day.Short()
			} else {
				events, err = svc.Events(cmd.Context())
			}
			if err != nil {
				return oo.HandleError(err)
			}
			events = options.Events(events, types)

			if oo.JSON {
				return oo.Print(cmd.OutOrStdout(), events)
			}
			printer(cmd).Events(title, events...)
			return nil
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddTypesArg(cmd, fo)

	topLevel.AddCommand(cmd)
}
