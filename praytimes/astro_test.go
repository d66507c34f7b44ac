package praytimes

import (
	"math"
	"testing"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/nathan-osman/go-sunrise"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		y, m, d int
	}{
		{2000, 1, 1},
		{2018, 9, 5},
		{2019, 6, 9},
		{2024, 2, 29},
		{1957, 10, 4},
		{2100, 12, 31},
	}
	for _, tt := range tests {
		got := julianDate(tt.y, tt.m, tt.d)
		want := julian.CalendarGregorianToJD(tt.y, tt.m, float64(tt.d))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("julianDate(%d, %d, %d) = %v, want %v", tt.y, tt.m, tt.d, got, want)
		}
	}
	if got := julianDate(2000, 1, 1); got != 2451544.5 {
		t.Errorf("julianDate(2000, 1, 1) = %v, want 2451544.5", got)
	}
}

func TestSunPosition(t *testing.T) {
	// Near the June solstice the declination peaks at the obliquity.
	p := sunPosition(julianDate(2024, 6, 20) + 0.5)
	if d := rad2deg(p.declination); math.Abs(d-23.44) > 0.05 {
		t.Errorf("June solstice declination = %v°, want ~23.44°", d)
	}
	// Early November has the largest positive equation of time, ~16.4 min.
	p = sunPosition(julianDate(2024, 11, 3) + 0.5)
	if m := p.equation * 60; math.Abs(m-16.4) > 0.5 {
		t.Errorf("November equation of time = %v min, want ~16.4", m)
	}
}

// utcHours returns the hour of day of t in UTC.
func utcHours(t time.Time) float64 {
	t = t.UTC()
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}

func TestSunriseSunset_AgreesWithGoSunrise(t *testing.T) {
	places := []struct {
		name    string
		coords  Coordinates
		y, m, d int
	}{
		{"ontario", ontario, 2018, 9, 5},
		{"kuala lumpur", kualaLumpur, 2019, 6, 9},
		{"cape town", Coordinates{Latitude: -33.92, Longitude: 18.42}, 2024, 12, 21},
		{"london", Coordinates{Latitude: 51.5, Longitude: -0.12}, 2024, 3, 20},
	}
	const tolerance = 3.0 / 60
	for _, p := range places {
		t.Run(p.name, func(t *testing.T) {
			got := Compute(MWL, p.y, p.m, p.d, 0, p.coords, Options{})
			rise, set := sunrise.SunriseSunset(p.coords.Latitude, p.coords.Longitude, p.y, time.Month(p.m), p.d)
			if d := math.Min(TimeDiff(got.Sunrise, utcHours(rise)), TimeDiff(utcHours(rise), got.Sunrise)); d > tolerance {
				t.Errorf("sunrise %v UTC, go-sunrise %v (off by %.1f min)", got.Sunrise, utcHours(rise), d*60)
			}
			if d := math.Min(TimeDiff(got.Sunset, utcHours(set)), TimeDiff(utcHours(set), got.Sunset)); d > tolerance {
				t.Errorf("sunset %v UTC, go-sunrise %v (off by %.1f min)", got.Sunset, utcHours(set), d*60)
			}
		})
	}
}
