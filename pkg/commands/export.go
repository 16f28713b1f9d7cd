package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/commands/options"
	"tableflip.dev/marquee/pkg/ics"
)

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timeline to other formats.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addExportICS(cmd)
	topLevel.AddCommand(cmd)
}

func addExportICS(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	var (
		out  string
		name string
	)

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write the timeline as an iCalendar feed, one all-day event per item.",
		Example: `
marquee export ics > releases.ics
marquee export ics --types release,deliverable --out ~/releases.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := ics.ParseTypes(fo.Types)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			events, err := svc.Events(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" {
				path, err := homedir.Expand(out)
				if err != nil {
					return oo.HandleError(err)
				}
				fh, err := os.Create(path)
				if err != nil {
					return oo.HandleError(err)
				}
				defer fh.Close()
				w = fh
			}

			err = ics.Export(w, events, ics.Options{Name: name, Stamp: time.Now().UTC(), Types: types})
			if err != nil {
				return oo.HandleError(err)
			}
			if out != "" && !oo.JSON {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			}
			return nil
		},
	}

	options.AddTypesArg(cmd, fo)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout.")
	cmd.Flags().StringVar(&name, "name", "Release Windows", "Calendar name shown by clients.")

	topLevel.AddCommand(cmd)
}
