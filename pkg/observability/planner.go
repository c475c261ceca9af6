// Package observability turns a resolved target into a TESS observing
// season estimate.
package observability

import (
	"math"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"

	"github.com/oxygene76/tessobs/internal/types"
	"github.com/oxygene76/tessobs/pkg/astronomy/antisolar"
	"github.com/oxygene76/tessobs/pkg/astronomy/coords"
	"github.com/oxygene76/tessobs/pkg/utils"
)

// Planner builds observability reports from the mission configuration
type Planner struct {
	threshold    float64
	south        antisolar.Window
	north        antisolar.Window
	missionStart time.Time
	padding      time.Duration
	multiSector  float64
	estimator    *antisolar.Estimator
}

// NewPlanner creates a Planner for the given mission constants
func NewPlanner(mission utils.MissionConfig) (*Planner, error) {
	southStart, southEnd, err := mission.SouthWindow()
	if err != nil {
		return nil, err
	}
	northStart, northEnd, err := mission.NorthWindow()
	if err != nil {
		return nil, err
	}
	return &Planner{
		threshold:    mission.HemisphereLatitudeDeg,
		south:        antisolar.Window{Start: southStart, End: southEnd},
		north:        antisolar.Window{Start: northStart, End: northEnd},
		missionStart: julian.JDToTime(mission.MissionStartJD).UTC().Round(time.Second),
		padding:      time.Duration(mission.PaddingDays) * 24 * time.Hour,
		multiSector:  mission.MultiSectorLatitudeDeg,
		estimator:    antisolar.NewEstimator(antisolar.DefaultSamples),
	}, nil
}

// Window returns the observing year for a hemisphere, or nil for
// HemisphereNone.
func (p *Planner) Window(h types.Hemisphere) *antisolar.Window {
	switch h {
	case types.HemisphereSouth:
		w := p.south
		return &w
	case types.HemisphereNorth:
		w := p.north
		return &w
	default:
		return nil
	}
}

// MissionStart returns the first instant TESS collected science data
func (p *Planner) MissionStart() time.Time {
	return p.missionStart
}

// Plan estimates when target is observable
func (p *Planner) Plan(target *coords.Target) (*types.Report, error) {
	hemisphere := target.Hemisphere(p.threshold)
	report := &types.Report{
		Name:        target.Name,
		Ecliptic:    target.Ecliptic,
		Galactic:    target.Galactic,
		Equatorial:  target.Equatorial,
		Hemisphere:  hemisphere,
		MultiSector: math.Abs(target.Ecliptic.Lat) > p.multiSector,
	}

	when, ok, err := p.estimator.Estimate(target.Ecliptic.Lon, p.Window(hemisphere))
	if err != nil {
		return nil, err
	}
	if !ok {
		return report, nil
	}

	report.Observable = true
	report.Antisolar = when
	report.Earliest = when.Add(-p.padding)
	report.Latest = when.Add(p.padding)
	if report.Earliest.Before(p.missionStart) {
		report.Earliest = p.missionStart
		report.Clamped = true
	}
	return report, nil
}
