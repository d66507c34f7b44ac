package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/praytimes/internal/config"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/smokyabdulrahman/praytimes/praytimes"
	"github.com/spf13/cobra"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

// errNoLocation is returned when neither flags, environment nor config
// provide coordinates.
var errNoLocation = errors.New("no location configured: pass --latitude and --longitude, " +
	"or run 'prayer-times config set latitude <deg>' and 'config set longitude <deg>'")

// schedule holds everything needed to compute prayer times for the
// effective configuration.
type schedule struct {
	cfg       *config.Config
	coords    praytimes.Coordinates
	method    praytimes.CalculationMethod
	opts      praytimes.Options
	loc       *time.Location
	selected  []string
	goTimeFmt string
	now       time.Time // current instant in loc
	day       time.Time // midnight of the requested day in loc
	explicit  bool      // day came from --date
}

// newSchedule resolves the effective configuration for cmd.
func newSchedule(cmd *cobra.Command) (*schedule, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cfg.HasLocation() {
		return nil, errNoLocation
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	selected, err := prayer.ParseNames(cfg.Prayers)
	if err != nil {
		return nil, err
	}

	s := &schedule{
		cfg:       cfg,
		coords:    cfg.Coordinates(),
		method:    cfg.MethodOrDefault(praytimes.MWL),
		opts:      cfg.Options(),
		loc:       loc,
		selected:  selected,
		goTimeFmt: goTimeFormat(cfg.TimeFormat),
		now:       nowFunc().In(loc),
	}
	s.day = startOfDay(s.now)

	if FlagDate != "" {
		d, err := time.ParseInLocation("2006-01-02", FlagDate, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: must be YYYY-MM-DD", FlagDate)
		}
		s.day = d
		s.explicit = true
	}

	if s.opts.Midnight.JafariOnly() && !s.method.IsJafari() {
		log.Warn().Str("method", s.method.String()).Str("midnight", s.opts.Midnight.String()).
			Msg("midnight method expects a Maghrib angle; Maghrib equals Sunset for this method")
	}

	log.Debug().
		Float64("latitude", s.coords.Latitude).
		Float64("longitude", s.coords.Longitude).
		Float64("elevation", s.coords.Elevation).
		Str("timezone", loc.String()).
		Str("method", s.method.String()).
		Str("asr", s.opts.Asr.String()).
		Str("high_latitudes", s.opts.HighLatitudes.String()).
		Msg("resolved schedule")
	return s, nil
}

// goTimeFormat returns the Go layout for "12h" or "24h".
func goTimeFormat(timeFormat string) string {
	if timeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// timesFor computes the raw times for the calendar day of date. The UTC
// offset is taken at local noon so daylight saving applies to the whole day.
func (s *schedule) timesFor(date time.Time) praytimes.Times {
	y, m, d := date.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, s.loc)
	times := praytimes.ComputeAt(s.method, noon, s.coords, s.opts)
	log.Debug().Str("date", noon.Format("2006-01-02")).Msg("computed prayer times")
	return times
}

// prayersFor returns the named prayers on the calendar day of date.
func (s *schedule) prayersFor(date time.Time, names []string) ([]prayer.Prayer, error) {
	return prayer.FromTimes(s.timesFor(date), startOfDay(date), s.loc, names)
}

// days returns n consecutive days starting at the requested day.
func (s *schedule) days(n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = s.day.AddDate(0, 0, i)
	}
	return out
}

// isToday reports whether date is the current local day.
func (s *schedule) isToday(date time.Time) bool {
	return date.Format("2006-01-02") == s.now.Format("2006-01-02")
}

// locationString renders the coordinates for display.
func (s *schedule) locationString() string {
	str := fmt.Sprintf("%.4f, %.4f", s.coords.Latitude, s.coords.Longitude)
	if s.coords.Elevation != 0 {
		str += ", " + strconv.FormatFloat(s.coords.Elevation, 'f', -1, 64) + " m"
	}
	return str
}

// parseDays accepts a positive integer, "week" or "month".
func parseDays(s string) (int, error) {
	switch s {
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid number of days: %q (must be a positive integer, 'week', or 'month')", s)
	}
	return n, nil
}
