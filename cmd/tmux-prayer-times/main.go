package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/praytimes/internal/config"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/smokyabdulrahman/praytimes/praytimes"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// maxLookahead bounds the search for the next prayer.
const maxLookahead = 366

var errNoLocation = errors.New("no location: pass --latitude and --longitude or set them with 'prayer-times config set'")

// flagKeys maps flags to the config keys they override.
var flagKeys = map[string]string{
	"latitude":       "latitude",
	"longitude":      "longitude",
	"elevation":      "elevation",
	"timezone":       "timezone",
	"method":         "method",
	"asr":            "asr",
	"high-latitudes": "high_latitudes",
	"midnight":       "midnight",
	"imsak":          "imsak",
	"dhuhr-minutes":  "dhuhr_minutes",
	"time-format":    "time_format",
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer, now time.Time) error {
	fs := flag.NewFlagSet("tmux-prayer-times", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Location flags
	fs.Float64("latitude", 0, "Latitude in degrees, north positive")
	fs.Float64("longitude", 0, "Longitude in degrees, east positive")
	fs.Float64("elevation", 0, "Elevation in meters above sea level")
	fs.String("timezone", "", "IANA timezone (default: config, then the local zone)")

	// Calculation flags
	fs.String("method", "", "Calculation method, see --list-methods (default: MWL)")
	fs.String("asr", "", "Asr juristic method: standard or hanafi")
	fs.String("high-latitudes", "", "High latitude adjustment: NightMiddle, AngleBased, OneSeventh or None")
	fs.String("midnight", "", "Midnight method")
	fs.String("imsak", "", `Imsak as minutes before Fajr ("10 min") or a sun angle ("18")`)
	fs.Float64("dhuhr-minutes", 0, "Minutes to add after solar noon for Dhuhr")

	// Display flags
	format := fs.String("format", prayer.FormatNameAndTime, "Display format: "+strings.Join(prayer.Modes(), ", ")+
		", or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Remaining, .Countdown, .Hours, .Minutes, .Tomorrow")
	fs.String("time-format", "", "Time format: 12h or 24h")
	prayers := fs.String("prayers", "", "Comma-separated list of prayers to track (default: Fajr,Sunrise,Dhuhr,Asr,Maghrib,Isha)")

	// Info flags
	showVersion := fs.Bool("version", false, "Print version and exit")
	listMethods := fs.Bool("list-methods", false, "Print supported calculation methods and exit")
	logLevel := fs.String("log-level", "error", "Log level for stderr: debug, info, warn, error or disabled")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "tmux-prayer-times %s\n", version)
		return nil
	}

	if *listMethods {
		printMethods(stdout)
		return nil
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(*logLevel))
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", *logLevel, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	cfg, err := loadConfig(fs)
	if err != nil {
		return err
	}
	if !prayer.ValidFormat(*format) {
		log.Warn().Str("format", *format).Msg("unknown format, using name-and-time")
	}

	line, err := nextPrayer(cfg, *prayers, *format, now)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, line)
	return nil
}

// loadConfig merges the shared config file, the environment and the flags
// that were set on the command line, in increasing priority.
func loadConfig(fs *flag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		// Flags alone may still carry everything needed.
		log.Warn().Msgf("ignoring invalid config file:\n%v", err)
		cfg = &config.Config{}
	}

	env, err := config.Environ()
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}

	var setErr error
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || setErr != nil {
			return
		}
		if err := cfg.Set(key, f.Value.String()); err != nil {
			setErr = fmt.Errorf("--%s: %w", f.Name, err)
		}
	})
	return cfg, setErr
}

// nextPrayer formats the first selected prayer after now.
func nextPrayer(cfg *config.Config, prayersFlag, format string, now time.Time) (string, error) {
	if !cfg.HasLocation() {
		return "", errNoLocation
	}

	list := cfg.Prayers
	if prayersFlag != "" {
		list = prayersFlag
	}
	selected, err := prayer.ParseNames(list)
	if err != nil {
		return "", err
	}

	loc, err := cfg.Location()
	if err != nil {
		return "", err
	}
	now = now.In(loc)

	method := cfg.MethodOrDefault(praytimes.MWL)
	coords := cfg.Coordinates()
	opts := cfg.Options()

	day := func(date time.Time) ([]prayer.Prayer, error) {
		y, m, d := date.Date()
		noon := time.Date(y, m, d, 12, 0, 0, 0, loc)
		return prayer.FromTimes(praytimes.ComputeAt(method, noon, coords, opts), date, loc, selected)
	}

	next, _, err := prayer.FindNext(day, now, maxLookahead)
	if err != nil {
		return "", err
	}

	goTimeFmt := "15:04" // 24h
	if cfg.TimeFormat == "12h" {
		goTimeFmt = "3:04 PM"
	}
	return prayer.FormatOutput(*next, now, format, goTimeFmt), nil
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-10s %s\n", "Method", "Name")
	fmt.Fprintf(w, "  %-10s %s\n", "──────", "────")
	for _, m := range praytimes.Methods() {
		fmt.Fprintf(w, "  %-10s %s\n", m.String(), m.Description())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <Method> to select a calculation method.")
	fmt.Fprintln(w, "If omitted, the configured method or MWL is used.")
}
