// Package transform holds the planet model shared by the path builder and the
// renderer: how fast the sphere turns, where it points at a given moment, and
// how positions are carried between the rotating ground frame, the inertial
// frame, the camera and geographic coordinates.
//
// All frames are unit-sphere Cartesian with Y through the north pole and Z
// through latitude 0, longitude 0. The planet turns about Y.
package transform

import (
	"math"
	"time"

	"github.com/onlinebacon/coriolis/internal/linalg"
)

// Spin is a constant angular speed about the polar axis in rad/s.
type Spin float64

const (
	// SolarDay is one turn per 24 h solar day.
	SolarDay Spin = 2 * math.Pi / secondsPerDay

	// SiderealDay is Earth's rotation rate relative to the stars (IAU value).
	SiderealDay Spin = 7.292115146706979e-5
)

// ParseSpin maps a spin name to its rate. ok is false for unknown names.
func ParseSpin(name string) (s Spin, ok bool) {
	switch name {
	case "solar", "":
		return SolarDay, true
	case "sidereal":
		return SiderealDay, true
	}
	return 0, false
}

// Angle returns the rotation in radians accumulated over elapsed.
func (s Spin) Angle(elapsed time.Duration) float64 {
	return float64(s) * elapsed.Seconds()
}

// Period returns the time for one full turn.
func (s Spin) Period() time.Duration {
	return time.Duration(2 * math.Pi / float64(s) * float64(time.Second))
}

func (s Spin) String() string {
	switch s {
	case SolarDay:
		return "solar"
	case SiderealDay:
		return "sidereal"
	}
	return "custom"
}

// Orientation returns the planet's rotation angle elapsed after departure.
// A zero epoch measures from the departure orientation, so the angle is just
// spin.Angle(elapsed). A real epoch anchors the prime meridian to the vernal
// equinox and follows GMST instead.
func Orientation(epoch time.Time, elapsed time.Duration, spin Spin) float64 {
	if epoch.IsZero() {
		return spin.Angle(elapsed)
	}
	return GMST(epoch.Add(elapsed))
}

// PlanetRotation returns the rotation the planet has made after turning by
// angle radians, as a row-vector matrix acting on ground-frame positions.
func PlanetRotation(angle float64) linalg.Mat3 {
	return linalg.RotationY(angle)
}

// Spun returns where the ground-frame position v sits once the planet has
// turned by angle radians.
func Spun(v linalg.Vec3, angle float64) linalg.Vec3 {
	return v.RotateY(angle)
}

// Despun undoes a planet rotation of angle radians; it is the inverse of Spun.
func Despun(v linalg.Vec3, angle float64) linalg.Vec3 {
	return v.RotateY(-angle)
}
