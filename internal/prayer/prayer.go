package prayer

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/smokyabdulrahman/praytimes/praytimes"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// AllPrayerNames lists every event the calculator produces, in chronological order.
var AllPrayerNames = []string{
	"Imsak", "Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha", "Midnight",
}

// DefaultPrayerNames are the prayers tracked by default.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps full prayer names to short abbreviations.
var ShortNames = map[string]string{
	"Imsak":    "Im",
	"Fajr":     "F",
	"Sunrise":  "S",
	"Dhuhr":    "D",
	"Asr":      "A",
	"Sunset":   "St",
	"Maghrib":  "M",
	"Isha":     "I",
	"Midnight": "Mi",
}

// eveningEvents may fall after midnight at high latitudes.
var eveningEvents = map[string]bool{"Isha": true, "Midnight": true}

// ParseNames splits a comma-separated list of prayer names. An empty list
// selects DefaultPrayerNames.
func ParseNames(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return DefaultPrayerNames, nil
	}
	var names []string
	for _, n := range strings.Split(list, ",") {
		name, ok := canonicalName(strings.TrimSpace(n))
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %q", n)
		}
		names = append(names, name)
	}
	return names, nil
}

func canonicalName(n string) (string, bool) {
	for _, name := range AllPrayerNames {
		if strings.EqualFold(name, n) {
			return name, true
		}
	}
	return "", false
}

// ByName returns the hour value of the named event.
func ByName(t praytimes.Times, name string) (float64, error) {
	switch name {
	case "Imsak":
		return t.Imsak, nil
	case "Fajr":
		return t.Fajr, nil
	case "Sunrise":
		return t.Sunrise, nil
	case "Dhuhr":
		return t.Dhuhr, nil
	case "Asr":
		return t.Asr, nil
	case "Sunset":
		return t.Sunset, nil
	case "Maghrib":
		return t.Maghrib, nil
	case "Isha":
		return t.Isha, nil
	case "Midnight":
		return t.Midnight, nil
	}
	return 0, fmt.Errorf("unknown prayer name: %s", name)
}

// FromTimes converts computed hours into Prayer values on the given date in
// loc, keeping only the selected names. Each hour is rounded to the nearest
// minute. Isha or Midnight that fall before Dhuhr belong to the following
// calendar day. Events the sun never reaches (NaN) are skipped. The result
// is in chronological order.
func FromTimes(t praytimes.Times, date time.Time, loc *time.Location, selected []string) ([]Prayer, error) {
	var prayers []Prayer
	for _, name := range selected {
		h, err := ByName(t, name)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(h) {
			continue
		}

		day := date
		if eveningEvents[name] && !math.IsNaN(t.Dhuhr) && h < t.Dhuhr {
			day = date.AddDate(0, 0, 1)
		}
		mins := roundMinutes(h)
		at := time.Date(day.Year(), day.Month(), day.Day(), mins/60, mins%60, 0, 0, loc)
		prayers = append(prayers, Prayer{Name: name, Time: at})
	}

	sort.SliceStable(prayers, func(i, j int) bool {
		return prayers[i].Time.Before(prayers[j].Time)
	})
	return prayers, nil
}

// roundMinutes returns hours as whole minutes after midnight, rounded to the
// nearest minute. The result may be 1440 when h is within 30s of 24.
func roundMinutes(h float64) int {
	return int(math.Floor((h + 0.5/60) * 60))
}

// FormatClock renders an hour value as "HH:MM", or "--:--" when the event
// does not occur.
func FormatClock(h float64) string {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return "--:--"
	}
	mins := roundMinutes(h) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers for today have passed, it returns nil (caller should compute tomorrow's).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer whose time has arrived, or
// nil when now is before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// DayFunc returns the selected prayers of the calendar day starting at date.
type DayFunc func(date time.Time) ([]Prayer, error)

// FindNext returns the first prayer after now, rolling over to following days
// once the current day's prayers have passed. The search starts with the day
// before now, whose Isha or Midnight can fall after 00:00. It also returns
// the day offset the prayer was found on.
func FindNext(day DayFunc, now time.Time, maxDays int) (*Prayer, int, error) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for i := -1; i < maxDays; i++ {
		prayers, err := day(start.AddDate(0, 0, i))
		if err != nil {
			return nil, 0, err
		}
		if next := NextPrayer(prayers, now); next != nil {
			return next, i, nil
		}
	}
	return nil, 0, fmt.Errorf("could not determine next prayer within %d days", maxDays)
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
