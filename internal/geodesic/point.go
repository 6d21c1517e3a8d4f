// Package geodesic models travel between two points on a rotating sphere.
//
// A Path is a polyline approximating a great-circle arc, built by recursive
// bisection, with precomputed cumulative chord lengths so that a travel
// fraction maps to a position in one scan. Paths can be re-expressed from the
// rotating ground frame into the track an inertial traveller leaves on the
// turning sphere.
//
// Nothing in this package returns an error. Degenerate inputs have defined,
// silent outcomes documented on each function, because a bad frame must
// never stop an animation.
package geodesic

import (
	"github.com/onlinebacon/coriolis/internal/linalg"
	"github.com/onlinebacon/coriolis/internal/transform"
)

// Point is a position on the unit sphere with display metadata.
//
// Point is a value: assigning or passing it copies the position, so a path
// never shares storage with the caller's points.
type Point struct {
	Pos   linalg.Vec3 `json:"pos"`
	Color string      `json:"color"`

	// Fixed points are drawn with the camera-only transform; they do not
	// turn with the planet.
	Fixed bool `json:"fixed,omitempty"`

	// OnPath marks path members, which a renderer may hide as a group.
	OnPath bool `json:"on_path,omitempty"`
}

// NewPoint returns the point at lat, lon degrees.
func NewPoint(lat, lon float64, color string) Point {
	return Point{
		Pos:   transform.FromLatLon(lat, lon),
		Color: color,
	}
}

// LatLon returns the point's latitude and longitude in degrees.
func (p Point) LatLon() (lat, lon float64) {
	return transform.LatLon(p.Pos)
}

// between returns the normalized midpoint of a and b. It carries a's
// metadata. a and b must not be antipodal.
func between(a, b Point) Point {
	m := a
	linalg.AddTo(&m.Pos, a.Pos, b.Pos)
	linalg.NormalizeTo(&m.Pos, m.Pos)
	return m
}
