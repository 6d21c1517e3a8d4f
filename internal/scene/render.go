package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/s1"

	"github.com/onlinebacon/coriolis/internal/geodesic"
	"github.com/onlinebacon/coriolis/internal/linalg"
	"github.com/onlinebacon/coriolis/internal/metrics"
	"github.com/onlinebacon/coriolis/internal/transform"
)

// Sprite is a visible point projected onto the screen plane, in units of
// the sphere's radius with the sphere centred on the origin.
type Sprite struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Color  string  `json:"color"`
	OnPath bool    `json:"on_path,omitempty"`
	Fixed  bool    `json:"fixed,omitempty"`
}

// Tracker is a traveller's ground position at a frame's moment.
type Tracker struct {
	Kind    string  `json:"kind"`
	Color   string  `json:"color"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Visible bool    `json:"visible"`
}

// Frame is one rendered moment of a trip.
type Frame struct {
	Elapsed  float64          `json:"elapsed"`
	Clock    string           `json:"clock"`
	UTC      string           `json:"utc,omitempty"`
	Rotation float64          `json:"rotation_deg"`
	Camera   transform.Camera `json:"camera"`
	Sprites  []Sprite         `json:"sprites"`
	Trackers []Tracker        `json:"trackers"`
}

// Render draws the scene elapsed into the trip.
//
// Ground points turn with the planet; fixed points see only the camera.
// Points on the far hemisphere are dropped, as are path points when
// showPaths is false. Each tracker sits at elapsed/travel of its path; outside
// the trip it stays at the departure point.
func (s *Scene) Render(elapsed time.Duration, cam transform.Camera, showPaths bool) *Frame {
	start := time.Now()

	rotation := transform.Orientation(s.cfg.Epoch, elapsed, s.cfg.Spin)
	cam = cam.Tracking(rotation - s.base)
	planet := transform.PlanetTransform(rotation, cam)
	fixed := transform.PlanetTransform(s.base, cam)

	f := &Frame{
		Elapsed:  elapsed.Seconds(),
		Clock:    Clock(elapsed),
		Rotation: math.Mod(rotation/math.Pi*180, 360),
		Camera:   cam,
		Sprites:  make([]Sprite, 0, len(s.points)/2+2),
	}
	if !s.cfg.Epoch.IsZero() {
		f.UTC = s.cfg.Epoch.Add(elapsed).UTC().Format(time.RFC3339)
	}

	for _, p := range s.points {
		if p.OnPath && !showPaths {
			continue
		}
		f.Sprites = appendVisible(f.Sprites, p, planet, fixed)
	}

	fraction := s.Fraction(elapsed)
	for _, t := range []struct {
		kind  string
		color string
		path  *geodesic.Path
	}{
		{KindGround, GroundTrackerColor, s.Ground},
		{KindInertial, InertialTrackerColor, s.Inertial},
	} {
		tp := geodesic.Point{Pos: s.From.Pos, Color: t.color}
		t.path.ProgressTo(&tp.Pos, fraction)

		n := len(f.Sprites)
		f.Sprites = appendVisible(f.Sprites, tp, planet, fixed)
		lat, lon := tp.LatLon()
		f.Trackers = append(f.Trackers, Tracker{
			Kind:    t.kind,
			Color:   t.color,
			Lat:     lat,
			Lon:     lon,
			Visible: len(f.Sprites) > n,
		})
	}

	metrics.RecordFrame(time.Since(start))
	return f
}

// Fraction returns how far through the trip elapsed is. It is outside
// [0, 1] before departure and after arrival; a zero-length trip is complete
// from the start.
func (s *Scene) Fraction(elapsed time.Duration) float64 {
	if s.cfg.Travel == 0 {
		if elapsed < 0 {
			return -1
		}
		return 1
	}
	return elapsed.Seconds() / s.cfg.Travel.Seconds()
}

func appendVisible(out []Sprite, p geodesic.Point, planet, fixed linalg.Mat3) []Sprite {
	m := planet
	if p.Fixed {
		m = fixed
	}
	x, y, ok := transform.View(p.Pos, m)
	if !ok {
		return out
	}
	return append(out, Sprite{X: x, Y: y, Color: p.Color, OnPath: p.OnPath, Fixed: p.Fixed})
}

// Clock formats elapsed as HH:MM:SS rounded to the second. Hours do not
// wrap at 24.
func Clock(elapsed time.Duration) string {
	total := int64(math.Round(elapsed.Seconds()))
	sign := ""
	if total < 0 {
		sign, total = "-", -total
	}
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, total/3600, total/60%60, total%60)
}

// maxDivergence returns the largest angle between same-index points of two
// paths with equal point counts.
func maxDivergence(a, b *geodesic.Path) s1.Angle {
	var worst s1.Angle
	for i := 0; i < min(len(a.Points), len(b.Points)); i++ {
		d := transform.ToS2(a.Points[i].Pos).Distance(transform.ToS2(b.Points[i].Pos))
		if d > worst {
			worst = d
		}
	}
	return worst
}
