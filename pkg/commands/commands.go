package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/marquee/pkg/app"
	"tableflip.dev/marquee/pkg/commands/options"
	"tableflip.dev/marquee/pkg/config"
	"tableflip.dev/marquee/pkg/logging"
	"tableflip.dev/marquee/pkg/printers"
	"tableflip.dev/marquee/pkg/store"
)

var (
	oo = &options.OutputOptions{}
	ro = &options.RootOptions{}

	cfg       *config.Config
	logCloser io.Closer
)

// New builds the marquee command tree.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "marquee",
		Short:         base.Wrap80("Release windows, marketing deadlines and deliverables on the command line."),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser == nil {
				return nil
			}
			return logCloser.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddRootArgs(cmd, ro)
	options.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

// AddCommands registers every subcommand on topLevel.
func AddCommands(topLevel *cobra.Command) {
	addList(topLevel)
	addShow(topLevel)
	addCalendar(topLevel)
	addEvents(topLevel)
	addAgenda(topLevel)
	addCheck(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// setup resolves config from file, env and flags and prepares logging and
// colour output.
func setup(cmd *cobra.Command) error {
	v := config.New()
	if err := bindFlags(v, cmd); err != nil {
		return err
	}
	loaded, err := config.Load(v, ro.ConfigFile)
	if err != nil {
		return err
	}
	cfg = loaded

	closer, err := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return err
	}
	logCloser = closer

	if oo.JSON || !isatty.IsTerminal(os.Stdout.Fd()) || termenv.EnvNoColor() {
		color.NoColor = true
	}
	return nil
}

var flagKeys = map[string]string{
	"source":     "source.kind",
	"path":       "source.path",
	"strict":     "source.strict",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
	"week-start": "calendar.week_start",
	"today":      "calendar.today",
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

func service() (*app.Service, error) {
	if cfg == nil {
		// shell completion skips the pre-run hooks
		loaded, err := config.Load(config.New(), ro.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	src, err := store.Open(cfg, logging.New("store"))
	if err != nil {
		return nil, err
	}
	return app.New(src, logging.New("app"), cfg.Source.Strict), nil
}

func printer(cmd *cobra.Command) *printers.PrettyPrint {
	return &printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: ro.ShowID}
}
