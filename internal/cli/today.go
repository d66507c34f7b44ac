package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/smokyabdulrahman/praytimes/praytimes"
	"github.com/spf13/cobra"
)

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSchedule(cmd)
	if err != nil {
		return err
	}

	times := s.timesFor(s.day)
	prayers, err := prayer.FromTimes(times, s.day, s.loc, s.selected)
	if err != nil {
		return err
	}
	missing := missingPrayers(times, s.selected)

	// Current and next only make sense for the actual current day.
	var current, next *prayer.Prayer
	if s.isToday(s.day) {
		current = prayer.CurrentPrayer(prayers, s.now)
		next = prayer.NextPrayer(prayers, s.now)
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printTodayJSON(out, s, prayers, missing, current, next)
	}

	printTodayRich(out, s, prayers, missing, current, next)
	return nil
}

// missingPrayers lists the selected events the sun never reaches on this day.
func missingPrayers(times praytimes.Times, selected []string) []string {
	var missing []string
	for _, name := range selected {
		if h, err := prayer.ByName(times, name); err == nil && math.IsNaN(h) {
			missing = append(missing, name)
		}
	}
	return missing
}

// methodSummary describes the calculation settings in one line.
func methodSummary(s *schedule) string {
	parts := []string{s.method.Description()}
	if s.opts.Asr != praytimes.AsrStandard && s.opts.Asr.ShadowFactor != 0 {
		parts = append(parts, "Asr "+s.opts.Asr.Name)
	}
	if s.opts.HighLatitudes != praytimes.NightMiddle {
		parts = append(parts, "high latitudes "+s.opts.HighLatitudes.String())
	}
	return strings.Join(parts, ", ")
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, s *schedule, prayers []prayer.Prayer, missing []string, current, next *prayer.Prayer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.locationString())
	fmt.Fprintf(w, "  %s\n", s.loc.String())
	fmt.Fprintf(w, "  %s\n", s.day.Format("Monday, 02 January 2006"))
	fmt.Fprintf(w, "  %s\n", display.Gray(methodSummary(s)))
	fmt.Fprintln(w)

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, p := range prayers {
		maxNameLen = max(maxNameLen, len(p.Name))
	}
	for _, name := range missing {
		maxNameLen = max(maxNameLen, len(name))
	}

	for _, p := range prayers {
		timeStr := p.Time.Format(s.goTimeFmt)
		if p.Time.YearDay() != s.day.YearDay() {
			timeStr += " (+1)"
		}
		line := fmt.Sprintf("  %s  %s", padRight(p.Name, maxNameLen), timeStr)

		switch {
		case current != nil && p.Name == current.Name:
			// Current prayer: dimmed.
			fmt.Fprintln(w, display.Dim(line))
		case next != nil && p.Name == next.Name:
			// Next prayer: accent color + countdown.
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, s.now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			fmt.Fprintln(w, display.Accent(line)+display.Accent(suffix))
		default:
			fmt.Fprintln(w, line)
		}
	}

	for _, name := range missing {
		line := fmt.Sprintf("  %s  %s", padRight(name, maxNameLen), prayer.FormatClock(math.NaN()))
		fmt.Fprintln(w, display.Yellow(line)+display.Gray("  sun does not reach the required angle"))
	}

	fmt.Fprintln(w)
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation  `json:"location"`
	Date     string             `json:"date"`
	Method   todayJSONMethod    `json:"method"`
	Timings  map[string]*string `json:"timings"`
	Current  string             `json:"current,omitempty"`
	Next     *todayJSONNext     `json:"next,omitempty"`
}

type todayJSONLocation struct {
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation,omitempty"`
}

type todayJSONMethod struct {
	Name          string `json:"name"`
	Asr           string `json:"asr"`
	HighLatitudes string `json:"high_latitudes"`
	Midnight      string `json:"midnight"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func jsonLocation(s *schedule) todayJSONLocation {
	return todayJSONLocation{
		Timezone:  s.loc.String(),
		Latitude:  s.coords.Latitude,
		Longitude: s.coords.Longitude,
		Elevation: s.coords.Elevation,
	}
}

// jsonTimings maps lower-cased names to formatted times; events that do not
// occur are null.
func jsonTimings(prayers []prayer.Prayer, missing []string, goTimeFmt string) map[string]*string {
	timings := make(map[string]*string)
	for _, p := range prayers {
		v := p.Time.Format(goTimeFmt)
		timings[strings.ToLower(p.Name)] = &v
	}
	for _, name := range missing {
		timings[strings.ToLower(name)] = nil
	}
	return timings
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s *schedule, prayers []prayer.Prayer, missing []string, current, next *prayer.Prayer) error {
	midnight := s.opts.Midnight
	if midnight == praytimes.MidnightDefault {
		midnight = s.method.DefaultMidnight()
	}
	asr := s.opts.Asr
	if asr.ShadowFactor == 0 {
		asr = praytimes.AsrStandard
	}

	out := todayJSON{
		Location: jsonLocation(s),
		Date:     s.day.Format("2006-01-02"),
		Method: todayJSONMethod{
			Name:          s.method.String(),
			Asr:           asr.Name,
			HighLatitudes: s.opts.HighLatitudes.String(),
			Midnight:      midnight.String(),
		},
		Timings: jsonTimings(prayers, missing, s.goTimeFmt),
	}

	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}

	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(s.goTimeFmt),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now)),
		}
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// dateLabel is the short date used in table rows.
func dateLabel(t time.Time) string {
	return t.Format("Mon 02 Jan")
}
