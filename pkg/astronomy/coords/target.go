// Package coords converts resolved target positions between the equatorial,
// ecliptic and galactic frames.
package coords

import (
	"math"

	"github.com/mooncaker816/learnmeeus/v3/base"
	"github.com/mooncaker816/learnmeeus/v3/coord"
	"github.com/mooncaker816/learnmeeus/v3/nutation"
	"github.com/soniakeys/unit"

	"github.com/oxygene76/tessobs/internal/types"
	astromath "github.com/oxygene76/tessobs/pkg/astronomy/math"
)

// obliquity is the mean obliquity of the ecliptic at J2000.0
var obliquity = coord.NewObliquity(nutation.MeanObliquity(base.J2000))

// icrsToGalactic is the ICRS to galactic rotation from the Hipparcos catalogue
// introduction (ESA 1997, vol. 1, sec. 1.5.3).
var icrsToGalactic = astromath.NewRotation([9]float64{
	-0.0548755604162154, -0.8734370902348850, -0.4838350155487132,
	+0.4941094278755837, -0.4448296299600112, +0.7469822444972189,
	-0.8676661490190047, -0.1980763734312015, +0.4559837761750669,
})

// Target is a named position on the sky. It is immutable once built.
type Target struct {
	Name       string
	Equatorial types.SkyPair // ra, dec
	Ecliptic   types.SkyPair
	Galactic   types.SkyPair // l, b
}

// NewTarget converts a resolver answer into a Target
func NewTarget(res *types.Resolution) (*Target, error) {
	ra, err := ParseRA(res.RA)
	if err != nil {
		return nil, err
	}
	dec, err := ParseDec(res.Dec)
	if err != nil {
		return nil, err
	}
	return fromEquatorial(res.MainID, &coord.Equatorial{RA: ra, Dec: dec}), nil
}

// FromEquatorial builds a Target from ICRS right ascension and declination in degrees
func FromEquatorial(name string, ra, dec float64) *Target {
	return fromEquatorial(name, &coord.Equatorial{
		RA:  unit.RAFromDeg(ra),
		Dec: unit.AngleFromDeg(dec),
	})
}

// FromEcliptic builds a Target from ecliptic longitude and latitude in degrees
func FromEcliptic(name string, lon, lat float64) *Target {
	ecl := &coord.Ecliptic{
		Lon: unit.AngleFromDeg(lon),
		Lat: unit.AngleFromDeg(lat),
	}
	eq := new(coord.Equatorial).EclToEq(ecl, obliquity)
	t := fromEquatorial(name, eq)
	// keep the caller's values rather than the round-tripped ones
	t.Ecliptic = types.SkyPair{Lon: normalizeDeg(lon), Lat: lat}
	return t
}

func fromEquatorial(name string, eq *coord.Equatorial) *Target {
	ecl := new(coord.Ecliptic).EqToEcl(eq, obliquity)
	ra := normalizeDeg(eq.RA.Deg())
	dec := eq.Dec.Deg()
	l, b := icrsToGalactic.Apply(astromath.FromSpherical(ra, dec)).Spherical()
	return &Target{
		Name:       name,
		Equatorial: types.SkyPair{Lon: ra, Lat: dec},
		Ecliptic:   types.SkyPair{Lon: normalizeDeg(ecl.Lon.Deg()), Lat: ecl.Lat.Deg()},
		Galactic:   types.SkyPair{Lon: l, Lat: b},
	}
}

// Hemisphere classifies the target against the ecliptic band of half-width
// threshold degrees. Targets inside the band are HemisphereNone.
func (t *Target) Hemisphere(threshold float64) types.Hemisphere {
	return HemisphereFor(t.Ecliptic.Lat, threshold)
}

// HemisphereFor classifies an ecliptic latitude in degrees
func HemisphereFor(lat, threshold float64) types.Hemisphere {
	switch {
	case lat < -threshold:
		return types.HemisphereSouth
	case lat > threshold:
		return types.HemisphereNorth
	default:
		return types.HemisphereNone
	}
}

func normalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
