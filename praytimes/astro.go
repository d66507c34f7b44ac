package praytimes

import "math"

// j2000 is the Julian date of 2000-01-01 12:00 TT.
const j2000 = 2451545.0

type sunPos struct {
	declination float64 // radians
	equation    float64 // equation of time, hours
}

// julianDate converts a Gregorian calendar date to a Julian date at 0h UT,
// following Meeus, Astronomical Algorithms, ch. 7.
func julianDate(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)
	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + b - 1524.5
}

// sunPosition computes the sun's declination and the equation of time using
// the USNO low precision formulae, good to about a minute of time until 2050.
func sunPosition(jd float64) sunPos {
	d := jd - j2000
	g := math.Mod(357.529+0.98560028*d, 360)
	q := math.Mod(280.459+0.98564736*d, 360)
	l := math.Mod(q+1.915*sinDeg(g)+0.020*sinDeg(2*g), 360)
	e := 23.439 - 0.00000036*d

	ra := rad2deg(math.Atan2(cosDeg(e)*sinDeg(l), cosDeg(l))) / 15
	return sunPos{
		declination: math.Asin(sinDeg(e) * sinDeg(l)),
		equation:    q/15 - FixHour(ra),
	}
}

// FixHour wraps h into [0, 24). NaN is returned unchanged.
func FixHour(h float64) float64 {
	r := math.Mod(h, 24)
	if r < 0 {
		r += 24
	}
	if r >= 24 {
		// -tiny + 24 rounds to 24.
		r = 0
	}
	return r
}

// TimeDiff returns the circular distance in hours going forward from a to b.
func TimeDiff(a, b float64) float64 {
	return FixHour(b - a)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func sinDeg(d float64) float64 { return math.Sin(deg2rad(d)) }

func cosDeg(d float64) float64 { return math.Cos(deg2rad(d)) }
