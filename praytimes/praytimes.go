// Package praytimes computes the daily Islamic prayer times for a date and a
// place on Earth using the PrayTimes astronomical algorithm.
//
// Every result is a real number of hours in [0, 24) in the local civil time
// implied by the UTC offset the caller supplies. Rounding and display are up
// to the caller. The package holds no mutable state and is safe for
// concurrent use.
package praytimes

import (
	"math"
	"time"
)

// Coordinates locates the observer. Elevation is in meters above sea level;
// negative values are treated as zero.
type Coordinates struct {
	Latitude  float64
	Longitude float64
	Elevation float64
}

// Options carries the overridable parameters of a computation. The zero
// value of every field selects its default:
//
//	Asr:           AsrStandard
//	HighLatitudes: NightMiddle
//	Midnight:      the calculation method's DefaultMidnight
//	Imsak:         Minutes(10), i.e. ten minutes before Fajr
//	DhuhrMinutes:  0
type Options struct {
	Asr           AsrMethod
	HighLatitudes HighLatitudesMethod
	Midnight      MidnightMethod
	Imsak         AngleOrMinutes
	DhuhrMinutes  float64
}

var defaultImsak = Minutes(10)

func (o Options) withDefaults(m CalculationMethod) Options {
	if o.Asr.ShadowFactor == 0 {
		o.Asr = AsrStandard
	}
	if o.Midnight == MidnightDefault {
		o.Midnight = m.DefaultMidnight()
	}
	if o.Imsak.IsZero() {
		o.Imsak = defaultImsak
	}
	return o
}

// Times holds the nine computed events as hours of the day in [0, 24).
// A field is NaN only when HighLatitudes is NoAdjustment and the sun never
// reaches the corresponding angle, or for degenerate coordinates.
type Times struct {
	Imsak    float64
	Fajr     float64
	Sunrise  float64
	Dhuhr    float64
	Asr      float64
	Sunset   float64
	Maghrib  float64
	Isha     float64
	Midnight float64
}

// Nominal hours of the day used to sample the sun's position for each event.
const (
	nominalImsak   = 5.0 / 24
	nominalFajr    = 5.0 / 24
	nominalSunrise = 6.0 / 24
	nominalDhuhr   = 12.0 / 24
	nominalAsr     = 13.0 / 24
	nominalSunset  = 18.0 / 24
	nominalMaghrib = 18.0 / 24
	nominalIsha    = 18.0 / 24
)

// event is an hour of the day, or ok=false when the sun never reaches the
// requested altitude on that day.
type event struct {
	t  float64
	ok bool
}

func (e event) value() float64 {
	if !e.ok {
		return math.NaN()
	}
	return e.t
}

// Compute returns the prayer times for the Gregorian date year-month-day at
// coordinates c. offset is the UTC offset of the desired local time in hours,
// e.g. -4 for GMT-4:00 or 3.5 for GMT+3:30. The date is not validated; see
// ValidateDate.
func Compute(method CalculationMethod, year, month, day int, offset float64, c Coordinates, opts Options) Times {
	o := opts.withDefaults(method)
	jd := julianDate(year, month, day) - c.Longitude/(15*24)
	obs := observer{jd: jd, lat: c.Latitude}

	riseSet := riseSetAngle(c.Elevation)
	imsak := obs.sunAngleTime(o.Imsak.Value(), nominalImsak, true)
	fajr := obs.sunAngleTime(method.Fajr().Value(), nominalFajr, true)
	sunrise := obs.sunAngleTime(riseSet, nominalSunrise, true)
	dhuhr := obs.midDay(nominalDhuhr)
	asr := obs.asrTime(o.Asr.ShadowFactor, nominalAsr)
	sunset := obs.sunAngleTime(riseSet, nominalSunset, false)
	maghrib := obs.sunAngleTime(method.Maghrib().Value(), nominalMaghrib, false)
	isha := obs.sunAngleTime(method.Isha().Value(), nominalIsha, false)

	shift := offset - c.Longitude/15
	for _, e := range []*event{&imsak, &fajr, &sunrise, &asr, &sunset, &maghrib, &isha} {
		e.t += shift
	}
	dhuhr += shift

	if o.HighLatitudes != NoAdjustment {
		night := TimeDiff(sunset.value(), sunrise.value())
		imsak = adjustHighLatitude(o.HighLatitudes, imsak, sunrise.value(), o.Imsak.Value(), night, true)
		fajr = adjustHighLatitude(o.HighLatitudes, fajr, sunrise.value(), method.Fajr().Value(), night, true)
		isha = adjustHighLatitude(o.HighLatitudes, isha, sunset.value(), method.Isha().Value(), night, false)
		maghrib = adjustHighLatitude(o.HighLatitudes, maghrib, sunset.value(), method.Maghrib().Value(), night, false)
	}

	t := Times{
		Imsak:   imsak.value(),
		Fajr:    fajr.value(),
		Sunrise: sunrise.value(),
		Dhuhr:   dhuhr,
		Asr:     asr.value(),
		Sunset:  sunset.value(),
		Maghrib: maghrib.value(),
		Isha:    isha.value(),
	}

	if o.Imsak.IsMinutes() {
		t.Imsak = t.Fajr - o.Imsak.Value()/60
	}
	if m := method.Maghrib(); m.IsMinutes() {
		t.Maghrib = t.Sunset + m.Value()/60
	}
	if i := method.Isha(); i.IsMinutes() {
		t.Isha = t.Maghrib + i.Value()/60
	}
	t.Dhuhr += o.DhuhrMinutes / 60

	t.Midnight = midnight(o.Midnight, t)
	return t.normalize()
}

// ComputeAt is Compute for the calendar date of t in t's location, using the
// zone offset in effect at t.
func ComputeAt(method CalculationMethod, t time.Time, c Coordinates, opts Options) Times {
	_, secs := t.Zone()
	return Compute(method, t.Year(), int(t.Month()), t.Day(), float64(secs)/3600, c, opts)
}

func (t Times) normalize() Times {
	return Times{
		Imsak:    FixHour(t.Imsak),
		Fajr:     FixHour(t.Fajr),
		Sunrise:  FixHour(t.Sunrise),
		Dhuhr:    FixHour(t.Dhuhr),
		Asr:      FixHour(t.Asr),
		Sunset:   FixHour(t.Sunset),
		Maghrib:  FixHour(t.Maghrib),
		Isha:     FixHour(t.Isha),
		Midnight: FixHour(t.Midnight),
	}
}

func midnight(m MidnightMethod, t Times) float64 {
	from, to := t.Sunset, t.Sunrise
	switch m {
	case MidSunsetToFajr:
		to = t.Fajr
	case MidMaghribToSunrise:
		from = t.Maghrib
	case MidMaghribToFajr:
		from, to = t.Maghrib, t.Fajr
	}
	return from + TimeDiff(from, to)/2
}

// riseSetAngle is the sun's depression at sunrise and sunset: refraction and
// the solar semi-diameter, plus the dip of the horizon seen from elevation.
func riseSetAngle(elevation float64) float64 {
	return 0.833 + 0.0347*math.Sqrt(math.Max(elevation, 0))
}

// adjustHighLatitude caps an event at a portion of the night measured from
// base. ccw events (Imsak, Fajr) precede base, the others follow it.
func adjustHighLatitude(method HighLatitudesMethod, e event, base, angle, night float64, ccw bool) event {
	portion := nightPortion(method, angle) * night
	var diff float64
	if ccw {
		diff = TimeDiff(e.t, base)
	} else {
		diff = TimeDiff(base, e.t)
	}
	if !e.ok || diff > portion {
		if ccw {
			return event{t: base - portion, ok: true}
		}
		return event{t: base + portion, ok: true}
	}
	return e
}

func nightPortion(method HighLatitudesMethod, angle float64) float64 {
	switch method {
	case AngleBased:
		return angle / 60
	case OneSeventh:
		return 1.0 / 7
	default:
		return 0.5
	}
}
