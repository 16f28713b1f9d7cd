package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/commands/options"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List release windows.",
		Example: `
marquee list
marquee list --status active
marquee list --source file --path ./releases.yaml --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			windows, err := svc.Releases(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			windows, err = fo.Releases(windows)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(cmd.OutOrStdout(), windows)
			}
			printer(cmd).Releases(windows...)
			return nil
		},
	}

	options.AddStatusArg(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("status", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"scheduled", "active", "completed", "cancelled"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
