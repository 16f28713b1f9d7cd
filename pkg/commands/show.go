package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func addShow(topLevel *cobra.Command) {
	var markdown bool
	var style string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one release window with its deadlines and deliverables.",
		Example: `
marquee show 1
marquee show 3 --markdown
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: releaseCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			w, err := svc.Release(cmd.Context(), args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(cmd.OutOrStdout(), w)
			}
			if markdown {
				if style == "" {
					style = markdownStyle()
				}
				return oo.HandleError(printer(cmd).ReleaseMarkdown(w, style))
			}
			printer(cmd).Release(w)
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the release as markdown.")
	cmd.Flags().StringVar(&style, "style", "", "Markdown style: dark, light, notty (default: detected).")

	topLevel.AddCommand(cmd)
}

// markdownStyle picks a glamour style that suits the terminal.
func markdownStyle() string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return "notty"
	}
	if termenv.NewOutput(os.Stdout).HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func releaseCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, err := service()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	windows, err := svc.Releases(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids := make([]string, 0, len(windows))
	for _, w := range windows {
		ids = append(ids, w.ID+"\t"+w.Name)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
