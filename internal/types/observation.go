package types

import "time"

// Hemisphere is the ecliptic hemisphere a target falls in for TESS pointing purposes
type Hemisphere string

const (
	HemisphereNorth Hemisphere = "north"
	HemisphereSouth Hemisphere = "south"
	HemisphereNone  Hemisphere = "none"
)

// Resolution is the answer of a name lookup. RA and Dec are sexagesimal as
// returned by the resolver ("hh mm ss.sss", "+dd mm ss.ss").
type Resolution struct {
	MainID string `json:"main_id" yaml:"main_id"`
	RA     string `json:"ra" yaml:"ra"`
	Dec    string `json:"dec" yaml:"dec"`
}

// SkyPair is a longitude/latitude style coordinate pair in decimal degrees
type SkyPair struct {
	Lon float64 `json:"lon" yaml:"lon"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// Report represents the observability estimate for a single target
type Report struct {
	Name       string     `json:"name"`
	Ecliptic   SkyPair    `json:"ecliptic"`
	Galactic   SkyPair    `json:"galactic"`
	Equatorial SkyPair    `json:"equatorial"`
	Hemisphere Hemisphere `json:"hemisphere"`

	// Observable is false when the target sits inside the ecliptic band that
	// the nominal mission never pointed at. The date fields are zero then.
	Observable  bool      `json:"observable"`
	Antisolar   time.Time `json:"antisolar"`
	Earliest    time.Time `json:"earliest"`
	Latest      time.Time `json:"latest"`
	Clamped     bool      `json:"clamped"`
	MultiSector bool      `json:"multi_sector"`
}
