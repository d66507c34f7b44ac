package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/smokyabdulrahman/praytimes/praytimes"
)

// key describes one settable config value. set validates and stores the
// canonical form; get returns "" when the value is unset.
type key struct {
	name  string
	usage string
	set   func(c *Config, v string) error
	get   func(c *Config) string
}

var keys = []key{
	{
		name:  "latitude",
		usage: "degrees north, -90 to 90",
		set: func(c *Config, v string) error {
			f, err := parseFloatIn(v, -90, 90)
			if err != nil {
				return err
			}
			c.Latitude = &f
			return nil
		},
		get: func(c *Config) string { return formatFloatPtr(c.Latitude) },
	},
	{
		name:  "longitude",
		usage: "degrees east, -180 to 180",
		set: func(c *Config, v string) error {
			f, err := parseFloatIn(v, -180, 180)
			if err != nil {
				return err
			}
			c.Longitude = &f
			return nil
		},
		get: func(c *Config) string { return formatFloatPtr(c.Longitude) },
	},
	{
		name:  "elevation",
		usage: "meters above sea level",
		set: func(c *Config, v string) error {
			f, err := parseFloatIn(v, -500, 10000)
			if err != nil {
				return err
			}
			c.Elevation = f
			return nil
		},
		get: func(c *Config) string { return formatFloat(c.Elevation) },
	},
	{
		name:  "timezone",
		usage: "IANA zone such as Asia/Riyadh",
		set: func(c *Config, v string) error {
			if _, err := time.LoadLocation(v); err != nil {
				return fmt.Errorf("unknown timezone %q", v)
			}
			c.Timezone = v
			return nil
		},
		get: func(c *Config) string { return c.Timezone },
	},
	{
		name:  "method",
		usage: "calculation method, see `prayer-times methods`",
		set: func(c *Config, v string) error {
			m, err := praytimes.ParseCalculationMethod(v)
			if err != nil {
				return err
			}
			c.Method = m.String()
			return nil
		},
		get: func(c *Config) string { return c.Method },
	},
	{
		name:  "asr",
		usage: "Standard or Hanafi",
		set: func(c *Config, v string) error {
			a, err := praytimes.ParseAsrMethod(v)
			if err != nil {
				return err
			}
			c.Asr = a.Name
			return nil
		},
		get: func(c *Config) string { return c.Asr },
	},
	{
		name:  "high_latitudes",
		usage: "NightMiddle, AngleBased, OneSeventh or None",
		set: func(c *Config, v string) error {
			h, err := praytimes.ParseHighLatitudesMethod(v)
			if err != nil {
				return err
			}
			c.HighLatitudes = h.String()
			return nil
		},
		get: func(c *Config) string { return c.HighLatitudes },
	},
	{
		name:  "midnight",
		usage: "Default or a midnight convention",
		set: func(c *Config, v string) error {
			m, err := praytimes.ParseMidnightMethod(v)
			if err != nil {
				return err
			}
			c.Midnight = m.String()
			return nil
		},
		get: func(c *Config) string { return c.Midnight },
	},
	{
		name:  "imsak",
		usage: `minutes before Fajr ("10 min") or a sun angle ("18")`,
		set: func(c *Config, v string) error {
			a, err := praytimes.ParseAngleOrMinutes(v)
			if err != nil {
				return err
			}
			c.Imsak = a.String()
			return nil
		},
		get: func(c *Config) string { return c.Imsak },
	},
	{
		name:  "dhuhr_minutes",
		usage: "minutes added after solar noon",
		set: func(c *Config, v string) error {
			f, err := parseFloatIn(v, 0, 60)
			if err != nil {
				return err
			}
			c.DhuhrMinutes = f
			return nil
		},
		get: func(c *Config) string { return formatFloat(c.DhuhrMinutes) },
	},
	{
		name:  "time_format",
		usage: "12h or 24h",
		set: func(c *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "12h" && v != "24h" {
				return fmt.Errorf("invalid time format %q (must be 12h or 24h)", v)
			}
			c.TimeFormat = v
			return nil
		},
		get: func(c *Config) string { return c.TimeFormat },
	},
	{
		name:  "prayers",
		usage: "comma-separated events to show",
		set: func(c *Config, v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("empty prayer list")
			}
			names, err := prayer.ParseNames(v)
			if err != nil {
				return err
			}
			c.Prayers = strings.Join(names, ",")
			return nil
		},
		get: func(c *Config) string { return c.Prayers },
	},
}

// ValidKeys lists the accepted config keys in display order.
var ValidKeys = keyNames()

func keyNames() []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.name
	}
	return names
}

func lookup(name string) (key, error) {
	for _, k := range keys {
		if k.name == name {
			return k, nil
		}
	}
	return key{}, fmt.Errorf("unknown config key %q (valid keys: %s)", name, strings.Join(ValidKeys, ", "))
}

// Usage returns a one-line description of key, or "" for unknown keys.
func Usage(name string) string {
	k, err := lookup(name)
	if err != nil {
		return ""
	}
	return k.usage
}

// Set validates value and stores it under key in canonical form.
func (c *Config) Set(name, value string) error {
	k, err := lookup(name)
	if err != nil {
		return err
	}
	return k.set(c, value)
}

// Get returns the stored value of key, or "" when it is unset.
func (c *Config) Get(name string) (string, error) {
	k, err := lookup(name)
	if err != nil {
		return "", err
	}
	return k.get(c), nil
}

func parseFloatIn(v string, lo, hi float64) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid number %q", v)
	}
	if f < lo || f > hi {
		return 0, fmt.Errorf("%g out of range [%g, %g]", f, lo, hi)
	}
	return f, nil
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
