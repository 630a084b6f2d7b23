package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	refLat = 17.1000
	refLng = 80.6000
)

func TestDistance(t *testing.T) {
	// same point
	assert.Zero(t, Distance(refLat, refLng, refLat, refLng))

	// ~1 km north: 0.009 degrees of latitude
	d := Distance(refLat+0.009, refLng, refLat, refLng)
	assert.InDelta(t, 1.0, d, 0.01)
}

func TestVerify(t *testing.T) {
	v := New(refLat, refLng, 0.5)

	lat, lng := refLat, refLng
	assert.True(t, v.Verify(&lat, &lng), "reference point is inside any positive radius")

	far := refLat + 0.009 // ~1 km away
	assert.False(t, v.Verify(&far, &lng))

	assert.False(t, v.Verify(nil, &lng), "missing latitude fails closed")
	assert.False(t, v.Verify(&lat, nil), "missing longitude fails closed")
}

func TestVerifyStrings(t *testing.T) {
	v := New(refLat, refLng, 0.5)

	assert.True(t, v.VerifyStrings("17.1000", "80.6000"))
	assert.False(t, v.VerifyStrings("", "80.6000"))
	assert.False(t, v.VerifyStrings("17.1000", ""))
	assert.False(t, v.VerifyStrings("not-a-number", "80.6000"))
	assert.False(t, v.VerifyStrings("17.1000", "80.6 east"))
}

func TestVerifyRadiusBoundary(t *testing.T) {
	v := New(refLat, refLng, 2.0)
	lat := refLat + 0.009 // ~1 km
	lng := refLng
	require.True(t, v.Verify(&lat, &lng))
}
