package transform

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/onlinebacon/coriolis/internal/linalg"
)

// EarthRadiusMeters is the mean Earth radius of a spherical model.
const EarthRadiusMeters = 6371.0 * 1000.0

// LatLon returns the geographic latitude and longitude in degrees of the
// direction v. v need not be unit length. Longitude is in (-180, 180].
func LatLon(v linalg.Vec3) (lat, lon float64) {
	horiz := math.Hypot(v[0], v[2])
	lat = math.Atan2(v[1], horiz) / toRad
	lon = math.Atan2(v[0], v[2]) / toRad
	return lat, lon
}

// FromLatLon returns the unit vector at lat, lon degrees: (0, 0, 1), the
// point at 0°N 0°E, rotated by -lat about X, then by lon about Y.
func FromLatLon(lat, lon float64) linalg.Vec3 {
	v := linalg.V(0, 0, 1)
	linalg.RotateXTo(&v, v, -lat*toRad)
	linalg.RotateYTo(&v, v, lon*toRad)
	return v
}

// ToS2 converts v to an s2.Point, whose frame has Z through the north pole
// and X through longitude 0.
func ToS2(v linalg.Vec3) s2.Point {
	return s2.Point{Vector: r3.Vector{X: v[2], Y: v[0], Z: v[1]}}
}

// FromS2 is the inverse of ToS2.
func FromS2(p s2.Point) linalg.Vec3 {
	return linalg.V(p.Y, p.Z, p.X)
}

// SurfaceDistance converts an angle on the sphere to meters on Earth.
func SurfaceDistance(a s1.Angle) float64 {
	return a.Radians() * EarthRadiusMeters
}
