package commands

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/marquee/pkg/config"
	"tableflip.dev/marquee/pkg/dashboard"
	"tableflip.dev/marquee/pkg/logging"
	teaui "tableflip.dev/marquee/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	var mode string

	cmd := &cobra.Command{
		Use:   "ui [YYYY-MM]",
		Short: "Open the release dashboard.",
		Example: `
marquee ui
marquee ui 2025-11 --mode calendar
marquee ui --source disk --path ~/.marquee/releases --log-file ~/.marquee/ui.log
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("ui needs an interactive terminal")
			}
			// the alt screen owns stderr while the program runs
			if cfg.Log.File == "" {
				logging.SetOutput(io.Discard)
			}

			opts, err := uiOptions(args, mode)
			if err != nil {
				return err
			}
			svc, err := service()
			if err != nil {
				return err
			}
			return teaui.Run(cmd.Context(), svc, opts)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "list", "Initial layout: list or calendar.")

	topLevel.AddCommand(cmd)
}

func uiOptions(args []string, mode string) (teaui.Options, error) {
	year, month, err := cfg.Month()
	if len(args) == 1 {
		year, month, err = config.ParseMonth(args[0])
	}
	if err != nil {
		return teaui.Options{}, err
	}
	today, err := cfg.Today()
	if err != nil {
		return teaui.Options{}, err
	}
	weekStart, err := cfg.WeekStart()
	if err != nil {
		return teaui.Options{}, err
	}
	m, err := dashboard.ParseMode(mode)
	if err != nil {
		return teaui.Options{}, err
	}
	return teaui.Options{Year: year, Month: month, WeekStart: weekStart, Today: today, Mode: m}, nil
}
