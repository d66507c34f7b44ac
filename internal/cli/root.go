package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/praytimes/internal/config"
	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude      float64
	FlagLongitude     float64
	FlagElevation     float64
	FlagTimezone      string
	FlagMethod        string
	FlagAsr           string
	FlagHighLatitudes string
	FlagMidnight      string
	FlagImsak         string
	FlagDhuhrMinutes  float64
	FlagJSON          bool
	FlagTimeFormat    string
	FlagDate          string
	FlagLogLevel      string
	FlagColor         string
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the prayer-times CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "prayer-times",
		Short:   "Islamic prayer times CLI",
		Long:    "A CLI for Islamic prayer times, computed locally from the position of the sun.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupOutput(cmd.ErrOrStderr()); err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude in degrees, north positive")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude in degrees, east positive")
	pf.Float64Var(&FlagElevation, "elevation", 0, "Override elevation in meters above sea level")
	pf.StringVar(&FlagTimezone, "timezone", "", "IANA timezone, e.g. Asia/Riyadh (default: local zone)")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method, see 'prayer-times methods'")
	pf.StringVar(&FlagAsr, "asr", "", "Asr juristic method: standard or hanafi")
	pf.StringVar(&FlagHighLatitudes, "high-latitudes", "", "High latitude adjustment: NightMiddle, AngleBased, OneSeventh or None")
	pf.StringVar(&FlagMidnight, "midnight", "", "Midnight method, e.g. MidSunsetToSunrise or MidSunsetToFajr")
	pf.StringVar(&FlagImsak, "imsak", "", `Imsak as minutes before Fajr ("10 min") or a sun angle ("18")`)
	pf.Float64Var(&FlagDhuhrMinutes, "dhuhr-minutes", 0, "Minutes to add after solar noon for Dhuhr")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagDate, "date", "", "Compute for this date (YYYY-MM-DD) instead of today")
	pf.StringVar(&FlagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error or disabled")
	pf.StringVar(&FlagColor, "color", display.ColorAuto, "Colorize output: auto, always or never")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-times %s\n", version)
}

// setupOutput applies --log-level and --color.
func setupOutput(stderr io.Writer) error {
	if err := setupLogging(stderr, FlagLogLevel); err != nil {
		return err
	}
	if err := display.Configure(FlagColor); err != nil {
		return fmt.Errorf("--color: %w", err)
	}
	return nil
}

// setupLogging points the global logger at w. Logs never go to stdout, which
// carries the command output.
func setupLogging(w io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
	return nil
}

// loadConfig reads the config file and applies environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		path, _ := config.Path()
		return nil, fmt.Errorf("invalid config file %s:\n%w", path, err)
	}

	env, err := config.Environ()
	if err != nil {
		return nil, err
	}
	if len(env) > 0 {
		log.Debug().Int("vars", len(env)).Msg("applying environment overrides")
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, fmt.Errorf("invalid environment:\n%w", err)
	}
	return cfg, nil
}

// flagKeys maps persistent flag names to the config keys they override.
var flagKeys = []struct{ flag, key string }{
	{"latitude", "latitude"},
	{"longitude", "longitude"},
	{"elevation", "elevation"},
	{"timezone", "timezone"},
	{"method", "method"},
	{"asr", "asr"},
	{"high-latitudes", "high_latitudes"},
	{"midnight", "midnight"},
	{"imsak", "imsak"},
	{"dhuhr-minutes", "dhuhr_minutes"},
	{"time-format", "time_format"},
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := loadedConfig
	if cfg == nil {
		empty := config.Config{}
		cfg = &empty
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	// Flags go through Set so they are validated like config values.
	for _, fk := range flagKeys {
		f := lookupChanged(flags, root, fk.flag)
		if f == nil {
			continue
		}
		if err := cfg.Set(fk.key, f.Value.String()); err != nil {
			return nil, fmt.Errorf("--%s: %w", fk.flag, err)
		}
	}

	defaults := config.Defaults()
	for _, key := range config.ValidKeys {
		if v, _ := cfg.Get(key); v != "" {
			continue
		}
		if def, _ := defaults.Get(key); def != "" {
			if err := cfg.Set(key, def); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	return lookupChanged(local, persistent, name) != nil
}

func lookupChanged(local, persistent *pflag.FlagSet, name string) *pflag.Flag {
	if f := local.Lookup(name); f != nil && f.Changed {
		return f
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return f
	}
	return nil
}
