package options

import (
	"github.com/spf13/cobra"
)

// RootOptions are flags shared by every command.
type RootOptions struct {
	ConfigFile string
	Source     string
	Path       string
	Strict     bool
	LogLevel   string
	LogFormat  string
	LogFile    string
	WeekStart  string
	Today      string
	ShowID     bool
}

func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.ConfigFile, "config", "",
		"Config file (default is .marquee.yaml in $MARQUEE_CONFIG_PATH, ./ or $HOME).")
	f.StringVar(&o.Source, "source", "seed",
		"Release source: seed, file or disk.")
	f.StringVar(&o.Path, "path", "",
		"Path of the release file (file) or record directory (disk).")
	f.BoolVar(&o.Strict, "strict", false,
		"Refuse to load a collection with validation problems.")
	f.StringVar(&o.LogLevel, "log-level", "info",
		"Log level: debug, info, warn or error.")
	f.StringVar(&o.LogFormat, "log-format", "json",
		"Log format: json or console.")
	f.StringVar(&o.LogFile, "log-file", "",
		"Write logs to this file instead of stderr.")
	f.StringVar(&o.WeekStart, "week-start", "sunday",
		"First day of the calendar week: sunday or monday.")
	f.StringVar(&o.Today, "today", "",
		`Date highlighted as today, YYYY-MM-DD or "now".`)
	f.BoolVar(&o.ShowID, "show-id", false,
		"Show release and event ids.")
}
