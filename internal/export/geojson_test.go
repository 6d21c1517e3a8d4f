package export

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/onlinebacon/coriolis/internal/geodesic"
	"github.com/onlinebacon/coriolis/internal/scene"
	"github.com/onlinebacon/coriolis/internal/transform"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()
	cfg := scene.DefaultConfig()
	cfg.Depth = 4
	s, err := scene.New(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)), nil)
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, b []byte) []*geojson.Feature {
	t.Helper()
	var fc struct {
		Type     string             `json:"type"`
		Features []*geojson.Feature `json:"features"`
	}
	require.NoError(t, json.Unmarshal(b, &fc))
	require.Equal(t, "FeatureCollection", fc.Type)
	return fc.Features
}

func TestTrack(t *testing.T) {
	p := geodesic.GreatCircle(geodesic.NewPoint(0, 0, ""), geodesic.NewPoint(60, 0, ""), 3)
	ls := Track(p)

	require.Equal(t, 9, ls.NumCoords())
	assert.Equal(t, geom.XY, ls.Layout())
	first, last := ls.Coord(0), ls.Coord(8)
	assert.InDelta(t, 0, first.X(), 1e-9)
	assert.InDelta(t, 0, first.Y(), 1e-9)
	assert.InDelta(t, 0, last.X(), 1e-9)
	assert.InDelta(t, 60, last.Y(), 1e-9)
}

func TestTrackUnwrapsAntimeridian(t *testing.T) {
	p := geodesic.GreatCircle(geodesic.NewPoint(0, 170, ""), geodesic.NewPoint(0, -170, ""), 2)
	ls := Track(p)

	want := []float64{170, 175, 180, 185, 190}
	require.Equal(t, len(want), ls.NumCoords())
	for i, lon := range want {
		assert.InDelta(t, lon, ls.Coord(i).X(), 1e-9, "coord %d", i)
	}
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		prev, lon, want float64
	}{
		{0, 10, 10},
		{170, -175, 185},
		{-170, 175, -185},
		{540, -170, 550},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unwrap(tt.prev, tt.lon), "unwrap(%v, %v)", tt.prev, tt.lon)
	}
}

func TestSceneRoundTrip(t *testing.T) {
	s := testScene(t)
	fc := Scene(s)
	AddTrackers(fc, s.Render(s.Config().Travel/2, transform.Camera{}, false))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fc))
	features := decode(t, buf.Bytes())

	ids := make([]string, len(features))
	for i, f := range features {
		ids[i] = f.ID
	}
	assert.Equal(t, []string{"from", "to", "ground", "inertial", "fixed", "tracker-ground", "tracker-inertial"}, ids)

	to, ok := features[1].Geometry.(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 60}, to.FlatCoords())

	ground, ok := features[2].Geometry.(*geom.LineString)
	require.True(t, ok)
	assert.Equal(t, geodesic.PointCount(4), ground.NumCoords())
	assert.Equal(t, float64(geodesic.PointCount(4)), features[2].Properties["points"])
	assert.Equal(t, false, features[2].Properties["fixed"])

	fixed, ok := features[4].Geometry.(*geom.LineString)
	require.True(t, ok)
	assert.InDelta(t, 112.5, fixed.Coord(fixed.NumCoords()-1).X(), 1e-9)
	assert.Equal(t, true, features[4].Properties["fixed"])

	tracker := features[5]
	assert.Equal(t, scene.GroundTrackerColor, tracker.Properties["color"])
	assert.Equal(t, (time.Duration(27000) * time.Second / 2).Seconds(), tracker.Properties["elapsed"])
	assert.Equal(t, "03:45:00", tracker.Properties["clock"])
}
