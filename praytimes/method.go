package praytimes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit tags the magnitude carried by an AngleOrMinutes.
type Unit int

const (
	unitUnset Unit = iota
	// UnitDegrees is an angle of the sun below the horizon.
	UnitDegrees
	// UnitMinutes is a fixed offset in minutes from a reference event.
	UnitMinutes
)

// AngleOrMinutes is either a twilight angle in degrees or a minute offset.
// The unit is fixed at construction; use Degrees or Minutes to build one.
type AngleOrMinutes struct {
	value float64
	unit  Unit
}

// Degrees returns an angle below the horizon.
func Degrees(v float64) AngleOrMinutes {
	return AngleOrMinutes{value: v, unit: UnitDegrees}
}

// Minutes returns a minute offset from the reference event.
func Minutes(v float64) AngleOrMinutes {
	return AngleOrMinutes{value: v, unit: UnitMinutes}
}

func (a AngleOrMinutes) Value() float64 { return a.value }

func (a AngleOrMinutes) Unit() Unit { return a.unit }

func (a AngleOrMinutes) IsMinutes() bool { return a.unit == UnitMinutes }

// IsZero reports whether a was never constructed (the zero struct).
func (a AngleOrMinutes) IsZero() bool { return a.unit == unitUnset }

func (a AngleOrMinutes) String() string {
	switch a.unit {
	case UnitDegrees:
		return fmt.Sprintf("%g°", a.value)
	case UnitMinutes:
		return fmt.Sprintf("%g min", a.value)
	default:
		return "unset"
	}
}

// ParseAngleOrMinutes reads the form produced by String: "18°" or "18" is an
// angle, "10 min" or "10m" a minute offset.
func ParseAngleOrMinutes(s string) (AngleOrMinutes, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	build := Degrees
	switch {
	case strings.HasSuffix(v, "min"):
		v, build = strings.TrimSuffix(v, "min"), Minutes
	case strings.HasSuffix(v, "m"):
		v, build = strings.TrimSuffix(v, "m"), Minutes
	case strings.HasSuffix(v, "°"):
		v = strings.TrimSuffix(v, "°")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return AngleOrMinutes{}, fmt.Errorf("invalid angle or minutes %q", s)
	}
	return build(f), nil
}

// CalculationMethod is one of the published twilight conventions.
type CalculationMethod int

const (
	MWL CalculationMethod = iota
	ISNA
	Egypt
	Makkah
	Karachi
	Tehran
	Jafari
	France
	Russia
	Singapore
)

type methodParams struct {
	name            string
	description     string
	fajr            AngleOrMinutes
	isha            AngleOrMinutes
	maghrib         AngleOrMinutes
	defaultMidnight MidnightMethod
}

// methods is indexed by CalculationMethod and never written after init.
var methods = [...]methodParams{
	MWL: {
		name: "MWL", description: "Muslim World League",
		fajr: Degrees(18), isha: Degrees(17), maghrib: Minutes(0),
		defaultMidnight: MidSunsetToSunrise,
	},
	ISNA: {
		name: "ISNA", description: "Islamic Society of North America (ISNA)",
		fajr: Degrees(15), isha: Degrees(15), maghrib: Minutes(0),
		defaultMidnight: MidSunsetToSunrise,
	},
	Egypt: {
		name: "Egypt", description: "Egyptian General Authority of Survey",
		fajr: Degrees(19.5), isha: Degrees(17.5), maghrib: Minutes(0),
		defaultMidnight: MidSunsetToSunrise,
	},
	Makkah: {
		name: "Makkah", description: "Umm Al-Qura University, Makkah",
		fajr: Degrees(18.5), isha: Minutes(90), maghrib: Minutes(0),
		defaultMidnight: MidSunsetToSunrise,
	},
	Karachi: {
		name: "Karachi", description: "University of Islamic Sciences, Karachi",
		fajr: Degrees(18), isha: Degrees(18), maghrib: Minutes(0),
		defaultMidnight: MidSunsetToSunrise,
	},
	Tehran: {
		name: "Tehran", description: "Institute of Geophysics, University of Tehran",
		fajr: Degrees(17.7), isha: Degrees(14), maghrib: Degrees(4.5),
		defaultMidnight: MidSunsetToFajr,
	},
	Jafari: {
		name: "Jafari", description: "Shia Ithna-Ashari, Leva Institute, Qum",
		fajr: Degrees(16), isha: Degrees(14), maghrib: Degrees(4),
		defaultMidnight: MidSunsetToFajr,
	},
	France: {
		name: "France", description: "Union des Organisations Islamiques de France",
		fajr: Degrees(12), isha: Degrees(12), maghrib: Minutes(0),
		defaultMidnight: MidSunsetToSunrise,
	},
	Russia: {
		name: "Russia", description: "Spiritual Administration of Muslims of Russia",
		fajr: Degrees(16), isha: Degrees(15), maghrib: Minutes(0),
		defaultMidnight: MidSunsetToSunrise,
	},
	Singapore: {
		name: "Singapore", description: "Majlis Ugama Islam Singapura (Singapore)",
		fajr: Degrees(20), isha: Degrees(18), maghrib: Minutes(0),
		defaultMidnight: MidSunsetToSunrise,
	},
}

func (m CalculationMethod) params() methodParams {
	if m < 0 || int(m) >= len(methods) {
		return methods[MWL]
	}
	return methods[m]
}

// Fajr returns the dawn twilight angle.
func (m CalculationMethod) Fajr() AngleOrMinutes { return m.params().fajr }

// Isha returns the night twilight angle, or minutes after Maghrib.
func (m CalculationMethod) Isha() AngleOrMinutes { return m.params().isha }

// Maghrib returns the Maghrib angle, or minutes after Sunset.
func (m CalculationMethod) Maghrib() AngleOrMinutes { return m.params().maghrib }

// DefaultMidnight returns the midnight convention used when Options.Midnight
// is MidnightDefault.
func (m CalculationMethod) DefaultMidnight() MidnightMethod { return m.params().defaultMidnight }

// IsJafari reports whether the method measures midnight from Sunset to Fajr.
func (m CalculationMethod) IsJafari() bool { return m.DefaultMidnight() == MidSunsetToFajr }

func (m CalculationMethod) Description() string { return m.params().description }

func (m CalculationMethod) String() string {
	if m < 0 || int(m) >= len(methods) {
		return fmt.Sprintf("CalculationMethod(%d)", int(m))
	}
	return methods[m].name
}

// Methods returns every calculation method in table order.
func Methods() []CalculationMethod {
	out := make([]CalculationMethod, len(methods))
	for i := range methods {
		out[i] = CalculationMethod(i)
	}
	return out
}

// ParseCalculationMethod matches a method by its short name, ignoring case.
func ParseCalculationMethod(s string) (CalculationMethod, error) {
	for i, p := range methods {
		if strings.EqualFold(p.name, strings.TrimSpace(s)) {
			return CalculationMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown calculation method %q", s)
}

// AsrMethod is the juristic shadow factor used for Asr.
type AsrMethod struct {
	Name         string
	ShadowFactor float64
}

var (
	// AsrStandard is used by the Shafi'i, Maliki, Ja'fari and Hanbali schools.
	AsrStandard = AsrMethod{Name: "Standard", ShadowFactor: 1}
	// AsrHanafi doubles the shadow length.
	AsrHanafi = AsrMethod{Name: "Hanafi", ShadowFactor: 2}
)

func (a AsrMethod) String() string { return a.Name }

// ParseAsrMethod accepts "standard", "shafi" or "hanafi".
func ParseAsrMethod(s string) (AsrMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "shafi":
		return AsrStandard, nil
	case "hanafi":
		return AsrHanafi, nil
	}
	return AsrMethod{}, fmt.Errorf("unknown asr method %q", s)
}

// HighLatitudesMethod bounds twilight times when the sun does not reach the
// configured angle.
type HighLatitudesMethod int

const (
	// NightMiddle caps twilight at half the night. It is the zero value.
	NightMiddle HighLatitudesMethod = iota
	// AngleBased caps twilight at angle/60 of the night.
	AngleBased
	// OneSeventh caps twilight at a seventh of the night.
	OneSeventh
	// NoAdjustment leaves unreachable events as NaN.
	NoAdjustment
)

var highLatitudesNames = [...]string{
	NightMiddle:  "NightMiddle",
	AngleBased:   "AngleBased",
	OneSeventh:   "OneSeventh",
	NoAdjustment: "None",
}

func (h HighLatitudesMethod) String() string {
	if h < 0 || int(h) >= len(highLatitudesNames) {
		return fmt.Sprintf("HighLatitudesMethod(%d)", int(h))
	}
	return highLatitudesNames[h]
}

func ParseHighLatitudesMethod(s string) (HighLatitudesMethod, error) {
	for i, n := range highLatitudesNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return HighLatitudesMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown high latitudes method %q", s)
}

// MidnightMethod selects the two events whose midpoint is midnight.
type MidnightMethod int

const (
	// MidnightDefault defers to the calculation method's default.
	MidnightDefault MidnightMethod = iota
	MidSunsetToSunrise
	MidSunsetToFajr
	MidMaghribToSunrise
	MidMaghribToFajr
)

var midnightNames = [...]string{
	MidnightDefault:     "Default",
	MidSunsetToSunrise:  "MidSunsetToSunrise",
	MidSunsetToFajr:     "MidSunsetToFajr",
	MidMaghribToSunrise: "MidMaghribToSunrise",
	MidMaghribToFajr:    "MidMaghribToFajr",
}

// JafariOnly reports whether the method is only meaningful where Maghrib
// differs from Sunset.
func (m MidnightMethod) JafariOnly() bool {
	return m == MidMaghribToSunrise || m == MidMaghribToFajr
}

func (m MidnightMethod) String() string {
	if m < 0 || int(m) >= len(midnightNames) {
		return fmt.Sprintf("MidnightMethod(%d)", int(m))
	}
	return midnightNames[m]
}

func ParseMidnightMethod(s string) (MidnightMethod, error) {
	for i, n := range midnightNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return MidnightMethod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown midnight method %q", s)
}
