// Package export writes scenes as GeoJSON.
//
// Positions become longitude, latitude pairs in degrees. Ground and inertial
// tracks are in the planet's frame; the fixed inertial path is in the frame
// the planet had at departure.
package export

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/onlinebacon/coriolis/internal/geodesic"
	"github.com/onlinebacon/coriolis/internal/scene"
	"github.com/onlinebacon/coriolis/internal/transform"
)

// Track returns p as a LineString. Longitudes are unwrapped so a track that
// crosses the antimeridian stays continuous; they may leave [-180, 180].
func Track(p *geodesic.Path) *geom.LineString {
	flat := make([]float64, 0, 2*len(p.Points))
	var prev float64
	for i, pt := range p.Points {
		lat, lon := pt.LatLon()
		if i > 0 {
			lon = unwrap(prev, lon)
		}
		flat = append(flat, lon, lat)
		prev = lon
	}
	return geom.NewLineStringFlat(geom.XY, flat)
}

// unwrap shifts lon by whole turns to within 180° of prev.
func unwrap(prev, lon float64) float64 {
	for lon-prev > 180 {
		lon -= 360
	}
	for lon-prev < -180 {
		lon += 360
	}
	return lon
}

func point(lat, lon float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{lon, lat})
}

// Scene returns the scene's endpoints and paths as features.
func Scene(sc *scene.Scene) *geojson.FeatureCollection {
	cfg := sc.Config()
	fc := &geojson.FeatureCollection{}

	for _, e := range []struct {
		id string
		c  scene.Coord
	}{
		{"from", cfg.From},
		{"to", cfg.To},
	} {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       e.id,
			Geometry: point(e.c.Lat, e.c.Lon),
			Properties: map[string]interface{}{
				"kind":  "endpoint",
				"color": scene.EndpointColor,
			},
		})
	}

	for _, p := range []struct {
		kind string
		path *geodesic.Path
	}{
		{scene.KindGround, sc.Ground},
		{scene.KindInertial, sc.Inertial},
		{scene.KindFixed, sc.Fixed},
	} {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       p.kind,
			Geometry: Track(p.path),
			Properties: map[string]interface{}{
				"kind":       "path",
				"color":      scene.PathColor,
				"points":     len(p.path.Points),
				"chord":      p.path.Total,
				"distance_m": transform.SurfaceDistance(p.path.Arc()),
				"fixed":      p.kind == scene.KindFixed,
			},
		})
	}
	return fc
}

// AddTrackers appends f's trackers to fc as point features.
func AddTrackers(fc *geojson.FeatureCollection, f *scene.Frame) {
	for _, t := range f.Trackers {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       "tracker-" + t.Kind,
			Geometry: point(t.Lat, t.Lon),
			Properties: map[string]interface{}{
				"kind":    "tracker",
				"color":   t.Color,
				"elapsed": f.Elapsed,
				"clock":   f.Clock,
			},
		})
	}
}

// Write encodes fc to w.
func Write(w io.Writer, fc *geojson.FeatureCollection) error {
	b, err := json.Marshal(fc)
	if err != nil {
		return errors.Wrap(err, "encoding feature collection")
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "writing feature collection")
	}
	return nil
}
