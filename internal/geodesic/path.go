package geodesic

import (
	"github.com/golang/geo/s1"

	"github.com/onlinebacon/coriolis/internal/transform"
)

// Segment is one chord of a Path. Start and End are the cumulative chord
// lengths at A and B.
type Segment struct {
	A      Point   `json:"a"`
	B      Point   `json:"b"`
	Length float64 `json:"length"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

// Path is an ordered polyline on the unit sphere.
//
// Segments are derived from Points in order, Segments[i].End equals
// Segments[i+1].Start, and Total equals the last End. A Path is not modified
// after Compile returns, so it may be shared between goroutines.
type Path struct {
	Points   []Point   `json:"points"`
	Segments []Segment `json:"segments"`
	Total    float64   `json:"total"`
}

// Compile builds a Path over points. The slice is owned by the Path
// afterwards.
func Compile(points []Point) *Path {
	p := &Path{Points: points}
	if len(points) > 1 {
		p.Segments = make([]Segment, 0, len(points)-1)
	}

	var total float64
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		length := a.Pos.Dist(b.Pos)
		start := total
		total += length
		p.Segments = append(p.Segments, Segment{
			A:      a,
			B:      b,
			Length: length,
			Start:  start,
			End:    total,
		})
	}
	p.Total = total
	return p
}

// PointCount returns the number of points a path of the given depth has.
// Negative depths count as 0.
func PointCount(depth int) int {
	if depth < 0 {
		depth = 0
	}
	return 1<<depth + 1
}

// GreatCircle returns the great-circle path from a to b subdivided depth
// times, 2^depth + 1 points in all. A negative depth is treated as 0, which
// gives the single chord a→b.
//
// Midpoints are normalized chord midpoints, so spacing is only approximately
// equal in arc length; it evens out as depth grows. a and b must not be
// antipodal.
func GreatCircle(a, b Point, depth int) *Path {
	if depth < 0 {
		depth = 0
	}
	points := make([]Point, 0, PointCount(depth))
	points = append(points, a)
	points = bisect(points, a, b, depth)
	points = append(points, b)
	return Compile(points)
}

// bisect appends the interior points between a and b in order.
func bisect(out []Point, a, b Point, depth int) []Point {
	if depth <= 0 {
		return out
	}
	m := between(a, b)
	out = bisect(out, a, m, depth-1)
	out = append(out, m)
	return bisect(out, m, b, depth-1)
}

// Arc returns the summed great-circle angle between consecutive points,
// the true length the chord Total approximates.
func (p *Path) Arc() s1.Angle {
	var sum s1.Angle
	for _, s := range p.Segments {
		sum += transform.ToS2(s.A.Pos).Distance(transform.ToS2(s.B.Pos))
	}
	return sum
}

// First returns the first point. The path must not be empty.
func (p *Path) First() Point { return p.Points[0] }

// Last returns the last point. The path must not be empty.
func (p *Path) Last() Point { return p.Points[len(p.Points)-1] }

// Mark returns a copy of the path whose points all carry the given display
// metadata. Positions and lengths are unchanged.
func (p *Path) Mark(color string, fixed bool) *Path {
	points := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		pt.Color = color
		pt.Fixed = fixed
		pt.OnPath = true
		points[i] = pt
	}
	return Compile(points)
}
