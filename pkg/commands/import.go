package commands

import (
	"errors"
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/logging"
	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/store"
)

func addImport(topLevel *cobra.Command) {
	var (
		dest  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Copy release windows from a YAML or JSON file into a disk store.",
		Example: `
marquee import ./releases.yaml --to ~/.marquee/releases
marquee import ./releases.yaml --source disk --path ~/.marquee/releases
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := dest
			if target == "" && cfg.Source.Kind == string(store.KindDisk) {
				target = cfg.Source.Path
			}
			if target == "" {
				return oo.HandleError(errors.New("import needs a destination: --to or --source disk --path"))
			}

			target, err := homedir.Expand(target)
			if err != nil {
				return oo.HandleError(err)
			}

			windows, err := store.ReadFile(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			if problems := release.ValidateAll(windows); len(problems) > 0 && !force {
				for _, p := range problems {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "! "+p.String())
				}
				return oo.HandleError(fmt.Errorf("%d problem(s) in %s, use --force to import anyway", len(problems), args[0]))
			}

			disk := store.NewDisk(target, logging.New("store"))
			n, err := disk.Import(windows)
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				return oo.Print(cmd.OutOrStdout(), map[string]any{"imported": n, "path": disk.BasePath()})
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d release windows into %s\n", n, disk.BasePath())
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "to", "", "Disk store directory to import into.")
	cmd.Flags().BoolVar(&force, "force", false, "Import even when validation reports problems.")

	topLevel.AddCommand(cmd)
}
