package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/timeline"
)

func addCheck(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the release source and report windows left off the timeline.",
		Example: `
marquee check --source file --path ./releases.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			diags, problems, err := svc.Diagnostics(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			if oo.JSON {
				if err := oo.Print(cmd.OutOrStdout(), checkReport(diags, problems)); err != nil {
					return err
				}
			} else {
				printer(cmd).Diagnostics(diags, problems)
			}
			if n := len(diags) + len(problems); n > 0 {
				return fmt.Errorf("%d problem(s) found", n)
			}
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}

type checkResult struct {
	Skipped  []string `json:"skipped"`
	Problems []string `json:"problems"`
}

func checkReport(diags []timeline.Diagnostic, problems []release.Problem) checkResult {
	res := checkResult{Skipped: []string{}, Problems: []string{}}
	for _, d := range diags {
		res.Skipped = append(res.Skipped, d.String())
	}
	for _, p := range problems {
		res.Problems = append(res.Problems, p.String())
	}
	return res
}
