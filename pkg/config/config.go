// Package config loads marquee settings from .marquee.yaml, MARQUEE_*
// environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/marquee/pkg/release"
	"tableflip.dev/marquee/pkg/store"
)

const (
	// DefaultMonth is the month the calendar opens on.
	DefaultMonth = "2025-10"
	// DefaultToday is the day highlighted as today.
	DefaultToday = "2025-10-05"
)

// Config is the resolved configuration.
type Config struct {
	Source   Source   `mapstructure:"source"`
	Calendar Calendar `mapstructure:"calendar"`
	Log      Log      `mapstructure:"log"`
}

type Source struct {
	Kind   string `mapstructure:"kind"`
	Path   string `mapstructure:"path"`
	Strict bool   `mapstructure:"strict"`
}

type Calendar struct {
	Month     string `mapstructure:"month"`
	Today     string `mapstructure:"today"`
	WeekStart string `mapstructure:"week_start"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

var _ store.Config = (*Config)(nil)

// SourceKind implements store.Config.
func (c *Config) SourceKind() string { return c.Source.Kind }

// SourcePath implements store.Config.
func (c *Config) SourcePath() string { return c.Source.Path }

// New returns a viper instance with defaults and search paths set.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("source.kind", string(store.KindSeed))
	v.SetDefault("source.path", "")
	v.SetDefault("source.strict", false)
	v.SetDefault("calendar.month", DefaultMonth)
	v.SetDefault("calendar.today", DefaultToday)
	v.SetDefault("calendar.week_start", "sunday")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

	v.SetConfigName(".marquee") // .yaml is implicit
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("MARQUEE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// Load reads the config file, if any, and resolves v into a Config. An
// explicit file replaces the search path.
func Load(v *viper.Viper, explicit string) (*Config, error) {
	if v == nil {
		v = New()
	}
	if explicit != "" {
		path, err := homedir.Expand(explicit)
		if err != nil {
			return nil, fmt.Errorf("config: expand %q: %w", explicit, err)
		}
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every value that has a fixed shape.
func (c *Config) Validate() error {
	if _, err := store.ParseKind(c.Source.Kind); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, _, err := c.Month(); err != nil {
		return err
	}
	if _, err := c.Today(); err != nil {
		return err
	}
	if _, err := c.WeekStart(); err != nil {
		return err
	}
	return nil
}

// Month parses calendar.month.
func (c *Config) Month() (int, time.Month, error) {
	raw := strings.TrimSpace(c.Calendar.Month)
	if raw == "" {
		raw = DefaultMonth
	}
	return ParseMonth(raw)
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(raw string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, fmt.Errorf("config: month %q: want YYYY-MM", raw)
	}
	return t.Year(), t.Month(), nil
}

// Today parses calendar.today. The value "now" means the local date.
func (c *Config) Today() (release.Date, error) {
	raw := strings.TrimSpace(c.Calendar.Today)
	switch strings.ToLower(raw) {
	case "":
		return release.Date(DefaultToday), nil
	case "now":
		return release.DateOf(time.Now()), nil
	}
	d, err := release.ParseDate(raw)
	if err != nil {
		return "", fmt.Errorf("config: today: %w", err)
	}
	return d, nil
}

// WeekStart parses calendar.week_start.
func (c *Config) WeekStart() (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(c.Calendar.WeekStart)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("config: week_start %q: want sunday or monday", c.Calendar.WeekStart)
	}
}
