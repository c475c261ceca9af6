// Package antisolar estimates when the antisolar point reaches a given
// ecliptic longitude, which is when a target sits at opposition and is
// best placed for a TESS pointing in its hemisphere.
package antisolar

import (
	"math"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/mooncaker816/learnmeeus/v3/julian"
	"gonum.org/v1/gonum/floats"

	"github.com/oxygene76/tessobs/internal/types"
)

// DefaultSamples is one sample per hour over a 365 day year, ends inclusive
const DefaultSamples = 365*24 + 1

const j2000 = 2451545.0

// Window is the stretch of time searched for the antisolar date
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the window, bounds included
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Estimator matches a target's ecliptic longitude against the antisolar
// longitude sampled across a window.
type Estimator struct {
	samples int
}

// NewEstimator returns an Estimator taking samples points per window.
// Values below two select DefaultSamples.
func NewEstimator(samples int) *Estimator {
	if samples < 2 {
		samples = DefaultSamples
	}
	return &Estimator{samples: samples}
}

// Longitude returns the ecliptic longitude of the antisolar point in degrees,
// in [0, 360), at Julian date jd. It uses the low precision solar position
// from the USNO "Approximate Solar Coordinates" note, good to about 0.01
// degrees between 1950 and 2050.
func Longitude(jd float64) float64 {
	d := jd - j2000
	g := 357.529 + 0.98560028*d // mean anomaly
	q := 280.459 + 0.98564736*d // mean longitude
	gr := g * math.Pi / 180
	l := q + 1.915*math.Sin(gr) + 0.020*math.Sin(2*gr)
	lon := math.Mod(l+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}

// Estimate returns the sampled instant in window whose antisolar longitude is
// nearest to lon (degrees). A nil window means the target has no observing
// season and ok is false. Longitudes are compared as raw values, not around
// the circle, so lon must fall between the smallest and largest sampled
// longitude or ErrLongitudeOutOfRange is returned.
func (e *Estimator) Estimate(lon float64, window *Window) (when time.Time, ok bool, err error) {
	if window == nil {
		return time.Time{}, false, nil
	}

	jds := floats.Span(make([]float64, e.samples), julian.TimeToJD(window.Start), julian.TimeToJD(window.End))
	lons := make([]float64, len(jds))
	for i, jd := range jds {
		lons[i] = Longitude(jd)
	}

	lo, hi := floats.Min(lons), floats.Max(lons)
	if math.IsNaN(lon) || lon < lo || lon > hi {
		return time.Time{}, false, errorsmod.Wrapf(types.ErrLongitudeOutOfRange,
			"longitude %v not in sampled range [%v, %v]", lon, lo, hi)
	}

	jd := jds[nearest(lons, lon)]
	return julian.JDToTime(jd).UTC().Round(time.Second), true, nil
}

// nearest returns the index of the value closest to x. Ties go to the
// smaller value, then to the earlier index.
func nearest(values []float64, x float64) int {
	best := 0
	bestDist := math.Abs(values[0] - x)
	for i := 1; i < len(values); i++ {
		d := math.Abs(values[i] - x)
		if d < bestDist || (d == bestDist && values[i] < values[best]) {
			best, bestDist = i, d
		}
	}
	return best
}
