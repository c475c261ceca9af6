package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphericalRoundTrip(t *testing.T) {
	for _, tc := range []struct{ lon, lat float64 }{
		{0, 0}, {90, 0}, {180, -45}, {359.5, 89}, {12.25, -66.5},
	} {
		lon, lat := FromSpherical(tc.lon, tc.lat).Spherical()
		assert.InDelta(t, tc.lon, lon, 1e-9, "lon for %v", tc)
		assert.InDelta(t, tc.lat, lat, 1e-9, "lat for %v", tc)
	}
}

func TestSphericalNegativeLongitudeWraps(t *testing.T) {
	lon, _ := FromSpherical(-10, 5).Spherical()
	assert.InDelta(t, 350, lon, 1e-9)
}

func TestRotationInverse(t *testing.T) {
	// quarter turn about z
	r := NewRotation([9]float64{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	})
	v := FromSpherical(30, 10)
	got := r.Apply(v)
	lon, lat := got.Spherical()
	assert.InDelta(t, 120, lon, 1e-9)
	assert.InDelta(t, 10, lat, 1e-9)

	back := r.Inverse().Apply(got)
	assert.InDelta(t, v.X, back.X, 1e-12)
	assert.InDelta(t, v.Y, back.Y, 1e-12)
	assert.InDelta(t, v.Z, back.Z, 1e-12)
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vector3{}, Vector3{}.Normalize())
	assert.InDelta(t, 1, Vector3{X: 3, Y: 4}.Normalize().Magnitude(), 1e-12)
}
