// Package scene assembles a trip into something that can be drawn: a
// background grid, the two endpoints, the ground, inertial and fixed inertial
// paths, and two trackers that travel along them. Rendering a moment of the
// trip yields a Frame of projected sprites.
//
// A Scene is immutable once built, so any number of goroutines may render
// from it at once.
package scene

import (
	"log/slog"
	"math"
	"time"

	"github.com/onlinebacon/coriolis/internal/geodesic"
	"github.com/onlinebacon/coriolis/internal/transform"
)

// Display colours.
const (
	GridColor            = "rgba(0, 0, 0, 0.1)"
	EndpointColor        = "#fff"
	PathColor            = "rgba(255, 255, 255, 0.5)"
	GroundTrackerColor   = "#f20"
	InertialTrackerColor = "#07f"
)

// Scene is a built trip.
type Scene struct {
	cfg    Config
	logger *slog.Logger

	// base is the planet orientation at departure.
	base float64

	// points holds every static point in draw order.
	points []geodesic.Point

	From, To geodesic.Point
	Ground   *geodesic.Path
	Inertial *geodesic.Path
	Fixed    *geodesic.Path
}

// New validates cfg and builds its scene. paths may be nil.
func New(cfg Config, logger *slog.Logger, paths *PathCache) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if spin := cfg.effectiveSpin(); spin != cfg.Spin {
		logger.Info("epoch set, using sidereal spin", "epoch", cfg.Epoch.UTC().Format(time.RFC3339))
		cfg.Spin = spin
	}

	start := time.Now()
	s := &Scene{
		cfg:    cfg,
		logger: logger,
		base:   transform.Orientation(cfg.Epoch, 0, cfg.Spin),
		From:   geodesic.NewPoint(cfg.From.Lat, cfg.From.Lon, EndpointColor),
		To:     geodesic.NewPoint(cfg.To.Lat, cfg.To.Lon, EndpointColor),
	}

	key := PathKey{From: cfg.From, To: cfg.To, Depth: cfg.Depth, Travel: cfg.Travel, Spin: cfg.Spin}

	key.Kind = KindGround
	s.Ground = paths.GetOrBuild(key, func() *geodesic.Path {
		return geodesic.GreatCircle(s.From, s.To, cfg.Depth).Mark(PathColor, false)
	})
	key.Kind = KindInertial
	s.Inertial = paths.GetOrBuild(key, func() *geodesic.Path {
		return geodesic.Inertial(s.From, s.To, cfg.Travel, cfg.Depth, cfg.Spin).Mark(PathColor, false)
	})
	key.Kind = KindFixed
	s.Fixed = paths.GetOrBuild(key, func() *geodesic.Path {
		return geodesic.FixedInertial(s.From, s.To, cfg.Travel, cfg.Depth, cfg.Spin).Mark(PathColor, true)
	})

	grid := Grid(cfg.Grid)
	s.points = make([]geodesic.Point, 0, len(grid)+2+3*len(s.Ground.Points))
	s.points = append(s.points, grid...)
	s.points = append(s.points, s.From, s.To)
	s.points = append(s.points, s.Ground.Points...)
	s.points = append(s.points, s.Inertial.Points...)
	s.points = append(s.points, s.Fixed.Points...)

	logger.Info("scene built",
		"from", cfg.From.String(),
		"to", cfg.To.String(),
		"travel_seconds", cfg.Travel.Seconds(),
		"depth", cfg.Depth,
		"spin", cfg.Spin.String(),
		"points", len(s.points),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return s, nil
}

// Config returns the configuration the scene was built with, after epoch
// handling.
func (s *Scene) Config() Config { return s.cfg }

// Grid returns the background grid: latitudes 80 down to -80 and longitudes
// 180 down to above -180, every spacing degrees. A spacing of 0 returns nil.
func Grid(spacing float64) []geodesic.Point {
	if spacing <= 0 {
		return nil
	}
	var points []geodesic.Point
	for lat := 80.0; lat >= -80; lat -= spacing {
		for lon := 180.0; lon > -180; lon -= spacing {
			points = append(points, geodesic.NewPoint(lat, lon, GridColor))
		}
	}
	return points
}

// PathSummary describes one built path.
type PathSummary struct {
	Kind      string  `json:"kind"`
	Points    int     `json:"points"`
	Segments  int     `json:"segments"`
	Chord     float64 `json:"chord"`
	Arc       float64 `json:"arc_rad"`
	DistanceM float64 `json:"distance_m"`
	End       Coord   `json:"end"`
}

// Summary describes a scene's paths.
type Summary struct {
	From          Coord         `json:"from"`
	To            Coord         `json:"to"`
	TravelSeconds float64       `json:"travel_seconds"`
	Depth         int           `json:"depth"`
	Spin          string        `json:"spin"`
	Rotation      float64       `json:"rotation_deg"`
	Paths         []PathSummary `json:"paths"`

	// MaxDivergenceM is the largest surface distance between the ground and
	// inertial tracks at the same moment.
	MaxDivergenceM float64 `json:"max_divergence_m"`
}

// Summary returns the scene's path statistics.
func (s *Scene) Summary() Summary {
	sum := Summary{
		From:           s.cfg.From,
		To:             s.cfg.To,
		TravelSeconds:  s.cfg.Travel.Seconds(),
		Depth:          s.cfg.Depth,
		Spin:           s.cfg.Spin.String(),
		Rotation:       s.cfg.Spin.Angle(s.cfg.Travel) * 180 / math.Pi,
		MaxDivergenceM: transform.SurfaceDistance(maxDivergence(s.Ground, s.Inertial)),
	}
	for _, p := range []struct {
		kind string
		path *geodesic.Path
	}{
		{KindGround, s.Ground},
		{KindInertial, s.Inertial},
		{KindFixed, s.Fixed},
	} {
		arc := p.path.Arc()
		lat, lon := p.path.Last().LatLon()
		sum.Paths = append(sum.Paths, PathSummary{
			Kind:      p.kind,
			Points:    len(p.path.Points),
			Segments:  len(p.path.Segments),
			Chord:     p.path.Total,
			Arc:       arc.Radians(),
			DistanceM: transform.SurfaceDistance(arc),
			End:       Coord{Lat: lat, Lon: lon},
		})
	}
	return sum
}
