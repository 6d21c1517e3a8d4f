package geodesic

import (
	"time"

	"github.com/onlinebacon/coriolis/internal/transform"
)

// ToInertial re-expresses p, a path whose points are evenly spaced in time
// over travel, with the sphere's rotation undone at each sample: point i of
// n is taken at t_i = i·travel/(n−1) and rotated about the polar axis by
// −spin.Angle(t_i).
//
// The result is a new, fully compiled Path; p is left as it was.
func ToInertial(p *Path, travel time.Duration, spin transform.Spin) *Path {
	n := len(p.Points)
	points := make([]Point, n)
	copy(points, p.Points)
	if n < 2 {
		return Compile(points)
	}

	total := spin.Angle(travel)
	for i := range points {
		angle := total * float64(i) / float64(n-1)
		points[i].Pos = transform.Despun(points[i].Pos, angle)
	}
	return Compile(points)
}

// Inertial returns the track left on the rotating sphere by a traveller who
// goes from a to b in a straight inertial line, taking travel to do so.
//
// The destination is first carried forward by the rotation the sphere makes
// during the trip, the great circle to that spot is built, and each sample is
// then brought back by ToInertial. The result curves away from the ground
// great circle. A zero travel gives back GreatCircle(a, b, depth).
func Inertial(a, b Point, travel time.Duration, depth int, spin transform.Spin) *Path {
	return ToInertial(aimed(a, b, travel, depth, spin), travel, spin)
}

// FixedInertial returns the straight inertial great circle from a to where b
// will be once travel has elapsed, without converting it back. Its points
// belong to the non-rotating frame and are marked Fixed.
func FixedInertial(a, b Point, travel time.Duration, depth int, spin transform.Spin) *Path {
	a.Fixed, b.Fixed = true, true
	return aimed(a, b, travel, depth, spin)
}

// aimed is the great circle from a to b carried forward by the rotation made
// over travel.
func aimed(a, b Point, travel time.Duration, depth int, spin transform.Spin) *Path {
	b.Pos = transform.Spun(b.Pos, spin.Angle(travel))
	return GreatCircle(a, b, depth)
}
