// Package geofence verifies that a reported GPS coordinate lies within a
// configured radius of the campus reference point. It fails closed: missing
// or malformed coordinates never verify.
package geofence

import (
	"math"
	"strconv"
)

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371

type Verifier struct {
	Lat      float64
	Lng      float64
	RadiusKM float64
}

func New(lat, lng, radiusKM float64) *Verifier {
	return &Verifier{Lat: lat, Lng: lng, RadiusKM: radiusKM}
}

// Distance returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlng1 := lng1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlng2 := lng2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlng := rlng2 - rlng1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// Verify reports whether the coordinate is inside the fence. Nil coordinates
// fail.
func (v *Verifier) Verify(lat, lng *float64) bool {
	if lat == nil || lng == nil {
		return false
	}
	return Distance(*lat, *lng, v.Lat, v.Lng) <= v.RadiusKM
}

// VerifyStrings parses decimal-degree strings and verifies them. Empty or
// non-numeric input fails.
func (v *Verifier) VerifyStrings(lat, lng string) bool {
	if lat == "" || lng == "" {
		return false
	}
	flat, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return false
	}
	flng, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return false
	}
	return v.Verify(&flat, &flng)
}
