package praytimes

import "math"

// observer is a latitude on a longitude-corrected Julian date.
type observer struct {
	jd  float64
	lat float64 // degrees
}

// midDay returns solar noon in hours, sampling the equation of time at the
// nominal fraction of the day.
func (o observer) midDay(nominal float64) float64 {
	return FixHour(12 - sunPosition(o.jd+nominal).equation)
}

// sunAngleTime returns the hour at which the sun is angle degrees below the
// horizon, before noon when ccw is set and after it otherwise. ok is false
// when the sun never reaches that altitude at this latitude and date.
func (o observer) sunAngleTime(angle, nominal float64, ccw bool) event {
	decl := sunPosition(o.jd + nominal).declination
	noon := o.midDay(nominal)
	lat := deg2rad(o.lat)

	x := (-sinDeg(angle) - math.Sin(decl)*math.Sin(lat)) / (math.Cos(decl) * math.Cos(lat))
	if math.IsNaN(x) || x < -1 || x > 1 {
		return event{t: math.NaN()}
	}
	t := rad2deg(math.Acos(x)) / 15
	if ccw {
		return event{t: noon - t, ok: true}
	}
	return event{t: noon + t, ok: true}
}

// asrTime returns the hour at which an object's shadow is factor times its
// length plus its noon shadow.
func (o observer) asrTime(factor, nominal float64) event {
	decl := sunPosition(o.jd + nominal).declination
	angle := -math.Atan(1 / (factor + math.Tan(math.Abs(deg2rad(o.lat)-decl))))
	return o.sunAngleTime(rad2deg(angle), nominal, false)
}
