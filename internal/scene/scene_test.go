package scene

import (
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlinebacon/coriolis/internal/geodesic"
	"github.com/onlinebacon/coriolis/internal/transform"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func testScene(t *testing.T, mutate func(*Config)) *Scene {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(cfg, testLogger(), nil)
	require.NoError(t, err)
	return s
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"default", func(*Config) {}, nil},
		{"north pole", func(c *Config) { c.To = Coord{90, 0} }, nil},
		{"same point", func(c *Config) { c.To = c.From }, nil},
		{"zero travel", func(c *Config) { c.Travel = 0 }, nil},
		{"latitude too high", func(c *Config) { c.From.Lat = 91 }, ErrLatitude},
		{"latitude NaN", func(c *Config) { c.To.Lat = math.NaN() }, ErrLatitude},
		{"negative depth", func(c *Config) { c.Depth = -1 }, ErrDepth},
		{"depth too large", func(c *Config) { c.Depth = MaxDepth + 1 }, ErrDepth},
		{"negative travel", func(c *Config) { c.Travel = -time.Second }, ErrTravel},
		{"antipodal ground", func(c *Config) { c.To = Coord{0, 180} }, ErrAntipodal},
		{"antipodal after spin", func(c *Config) {
			c.To = Coord{0, 90}
			c.Travel = 6 * time.Hour
		}, ErrAntipodal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("negative grid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Grid = -5
		assert.Error(t, cfg.Validate())
	})
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in      string
		want    Coord
		wantErr bool
	}{
		{"60,0", Coord{60, 0}, false},
		{" 12.5 , -3 ", Coord{12.5, -3}, false},
		{"-33.9,151.2", Coord{-33.9, 151.2}, false},
		{"60", Coord{}, true},
		{"x,0", Coord{}, true},
		{"0,y", Coord{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCoord(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrid(t *testing.T) {
	grid := Grid(10)
	require.Len(t, grid, 17*36)

	lat, lon := grid[0].LatLon()
	assert.InDelta(t, 80, lat, 1e-9)
	assert.InDelta(t, 180, math.Abs(lon), 1e-9)

	lat, lon = grid[len(grid)-1].LatLon()
	assert.InDelta(t, -80, lat, 1e-9)
	assert.InDelta(t, -170, lon, 1e-9)

	for _, p := range grid {
		assert.Equal(t, GridColor, p.Color)
		assert.False(t, p.OnPath)
	}

	assert.Nil(t, Grid(0))
}

func TestNewScene(t *testing.T) {
	s := testScene(t, nil)
	n := geodesic.PointCount(6)

	assert.Len(t, s.Ground.Points, n)
	assert.Len(t, s.Inertial.Points, n)
	assert.Len(t, s.Fixed.Points, n)
	assert.Len(t, s.points, 17*36+2+3*n)

	assert.Equal(t, EndpointColor, s.From.Color)
	assert.Equal(t, EndpointColor, s.To.Color)

	for _, p := range s.Ground.Points {
		assert.True(t, p.OnPath)
		assert.False(t, p.Fixed)
		assert.Equal(t, PathColor, p.Color)
	}
	for _, p := range s.Fixed.Points {
		assert.True(t, p.Fixed)
	}

	assert.True(t, s.Ground.Last().Pos.ApproxEqual(s.To.Pos, 1e-12))
	assert.True(t, s.Inertial.Last().Pos.ApproxEqual(s.To.Pos, 1e-12))
}

func TestNewSceneRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Depth = 99
	_, err := New(cfg, testLogger(), nil)
	assert.ErrorIs(t, err, ErrDepth)
}

func TestEpochForcesSiderealSpin(t *testing.T) {
	epoch := time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC)
	s := testScene(t, func(c *Config) { c.Epoch = epoch })
	assert.Equal(t, transform.SiderealDay, s.Config().Spin)

	f := s.Render(time.Hour, transform.Camera{}, false)
	assert.Equal(t, "2024-03-20T04:06:00Z", f.UTC)
	assert.Equal(t, "01:00:00", f.Clock)
}

func TestRenderDeparture(t *testing.T) {
	s := testScene(t, nil)
	f := s.Render(0, transform.Camera{}, true)

	assert.Equal(t, "00:00:00", f.Clock)
	assert.Equal(t, 0.0, f.Rotation)
	require.Len(t, f.Trackers, 2)
	for _, tr := range f.Trackers {
		assert.InDelta(t, 0, tr.Lat, 1e-9, tr.Kind)
		assert.InDelta(t, 0, tr.Lon, 1e-9, tr.Kind)
		assert.True(t, tr.Visible, tr.Kind)
	}
	assert.Equal(t, KindGround, f.Trackers[0].Kind)
	assert.Equal(t, GroundTrackerColor, f.Trackers[0].Color)
	assert.Equal(t, InertialTrackerColor, f.Trackers[1].Color)

	// Trackers are drawn last.
	last := f.Sprites[len(f.Sprites)-1]
	assert.Equal(t, InertialTrackerColor, last.Color)
	assert.InDelta(t, 0, last.X, 1e-12)
	assert.InDelta(t, 0, last.Y, 1e-12)
}

func TestRenderArrival(t *testing.T) {
	s := testScene(t, nil)
	f := s.Render(s.Config().Travel, transform.Camera{}, true)

	assert.Equal(t, "07:30:00", f.Clock)
	assert.InDelta(t, 112.5, f.Rotation, 1e-9)
	for _, tr := range f.Trackers {
		assert.InDelta(t, 60, tr.Lat, 1e-9, tr.Kind)
		assert.InDelta(t, 0, tr.Lon, 1e-9, tr.Kind)
	}
}

func TestRenderMidTripTrackersDiverge(t *testing.T) {
	s := testScene(t, nil)
	f := s.Render(s.Config().Travel/2, transform.Camera{}, true)

	ground, inertial := f.Trackers[0], f.Trackers[1]
	assert.InDelta(t, 0, ground.Lon, 1e-9)
	assert.Less(t, inertial.Lon, -1.0, "inertial traveller drifts west of the meridian")
}

func TestRenderOutsideTripStaysAtOrigin(t *testing.T) {
	s := testScene(t, nil)
	for _, elapsed := range []time.Duration{-time.Hour, s.Config().Travel + time.Hour} {
		f := s.Render(elapsed, transform.Camera{}, false)
		for _, tr := range f.Trackers {
			assert.InDelta(t, 0, tr.Lat, 1e-12, "%v %s", elapsed, tr.Kind)
			assert.InDelta(t, 0, tr.Lon, 1e-12, "%v %s", elapsed, tr.Kind)
		}
	}
}

func TestRenderShowPaths(t *testing.T) {
	s := testScene(t, nil)

	hidden := s.Render(time.Hour, transform.Camera{}, false)
	for _, sp := range hidden.Sprites {
		assert.False(t, sp.OnPath)
	}

	shown := s.Render(time.Hour, transform.Camera{}, true)
	var onPath, fixed int
	for _, sp := range shown.Sprites {
		if sp.OnPath {
			onPath++
		}
		if sp.Fixed {
			fixed++
		}
	}
	assert.Positive(t, onPath)
	assert.Positive(t, fixed)
	assert.Equal(t, len(hidden.Sprites)+onPath, len(shown.Sprites))
}

func TestRenderHidesFarSide(t *testing.T) {
	s := testScene(t, func(c *Config) { c.Grid = 0 })
	f := s.Render(0, transform.Camera{Lon: 180}, false)

	for _, tr := range f.Trackers {
		assert.False(t, tr.Visible, tr.Kind)
	}
	assert.Empty(t, f.Sprites, "both endpoints face away from the camera")
}

func TestRenderFollowCamera(t *testing.T) {
	s := testScene(t, func(c *Config) { c.Grid = 0 })
	elapsed := 3 * time.Hour

	follow := s.Render(elapsed, transform.Camera{Follow: true}, false)
	assert.InDelta(t, 45, follow.Camera.Lon, 1e-9)

	// The ground holds still: the endpoints sit where they did at departure.
	start := s.Render(0, transform.Camera{Follow: true}, false)
	require.GreaterOrEqual(t, len(follow.Sprites), 2)
	for i := 0; i < 2; i++ {
		assert.InDelta(t, start.Sprites[i].X, follow.Sprites[i].X, 1e-12)
		assert.InDelta(t, start.Sprites[i].Y, follow.Sprites[i].Y, 1e-12)
	}

	// A still camera sees the origin carried east.
	still := s.Render(elapsed, transform.Camera{}, false)
	assert.InDelta(t, math.Sin(math.Pi/4), still.Sprites[0].X, 1e-12)
}

func TestClock(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "00:00:00"},
		{27000 * time.Second, "07:30:00"},
		{59600 * time.Millisecond, "00:01:00"},
		{25 * time.Hour, "25:00:00"},
		{-61 * time.Second, "-00:01:01"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Clock(tt.elapsed))
		})
	}
}

func TestSummary(t *testing.T) {
	s := testScene(t, nil)
	sum := s.Summary()

	assert.Equal(t, 6, sum.Depth)
	assert.Equal(t, "solar", sum.Spin)
	assert.InDelta(t, 112.5, sum.Rotation, 1e-9)
	require.Len(t, sum.Paths, 3)

	ground := sum.Paths[0]
	assert.Equal(t, KindGround, ground.Kind)
	assert.Equal(t, 65, ground.Points)
	assert.Equal(t, 64, ground.Segments)
	assert.InDelta(t, math.Pi/3, ground.Arc, 1e-9)
	assert.InDelta(t, math.Pi/3*6371e3, ground.DistanceM, 1e-3)
	assert.Less(t, ground.Chord, ground.Arc)
	assert.InDelta(t, 60, ground.End.Lat, 1e-9)

	fixed := sum.Paths[2]
	assert.InDelta(t, 112.5, fixed.End.Lon, 1e-9)

	assert.Greater(t, sum.MaxDivergenceM, 100e3)
}

func TestZeroTravelFraction(t *testing.T) {
	s := testScene(t, func(c *Config) { c.Travel = 0 })
	assert.Equal(t, 1.0, s.Fraction(0))
	assert.Equal(t, -1.0, s.Fraction(-time.Second))

	f := s.Render(0, transform.Camera{}, false)
	assert.InDelta(t, 60, f.Trackers[0].Lat, 1e-9)
	assert.InDelta(t, 60, f.Trackers[1].Lat, 1e-9)
}
