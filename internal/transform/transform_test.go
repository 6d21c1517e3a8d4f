package transform

import (
	"math"
	"testing"
	"time"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlinebacon/coriolis/internal/linalg"
)

func TestSpinAngle(t *testing.T) {
	assert.InDelta(t, 2*math.Pi, SolarDay.Angle(24*time.Hour), 1e-12)
	assert.InDelta(t, math.Pi/2, SolarDay.Angle(6*time.Hour), 1e-12)
	assert.Zero(t, SiderealDay.Angle(0))

	// A sidereal day is about 3 min 56 s shorter than a solar one.
	d := SolarDay.Period() - SiderealDay.Period()
	assert.InDelta(t, 236, d.Seconds(), 1)
}

func TestParseSpin(t *testing.T) {
	tests := []struct {
		name string
		want Spin
		ok   bool
	}{
		{"solar", SolarDay, true},
		{"", SolarDay, true},
		{"sidereal", SiderealDay, true},
		{"lunar", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSpin(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "sidereal", SiderealDay.String())
	assert.Equal(t, "custom", Spin(1).String())
}

func TestOrientation(t *testing.T) {
	assert.InDelta(t, SolarDay.Angle(2*time.Hour), Orientation(time.Time{}, 2*time.Hour, SolarDay), 1e-15)

	epoch := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, GMST(epoch.Add(time.Hour)), Orientation(epoch, time.Hour, SiderealDay))
}

func TestSpunDespunRoundTrip(t *testing.T) {
	v := FromLatLon(35, 139)
	for _, a := range []float64{0, 0.1, 1, -4, 2 * math.Pi} {
		got := Despun(Spun(v, a), a)
		assert.True(t, got.ApproxEqual(v, 1e-12), "angle %v: %v != %v", a, got, v)
	}
}

func TestFromLatLon(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     linalg.Vec3
	}{
		{"origin", 0, 0, linalg.V(0, 0, 1)},
		{"north pole", 90, 0, linalg.V(0, 1, 0)},
		{"south pole", -90, 0, linalg.V(0, -1, 0)},
		{"90 east", 0, 90, linalg.V(1, 0, 0)},
		{"90 west", 0, -90, linalg.V(-1, 0, 0)},
		{"antimeridian", 0, 180, linalg.V(0, 0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromLatLon(tt.lat, tt.lon)
			if !got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("FromLatLon(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestLatLonRoundTrip(t *testing.T) {
	for lat := -80.0; lat <= 80; lat += 20 {
		for lon := -170.0; lon <= 180; lon += 35 {
			gotLat, gotLon := LatLon(FromLatLon(lat, lon))
			if math.Abs(gotLat-lat) > 1e-9 || math.Abs(gotLon-lon) > 1e-9 {
				t.Errorf("LatLon(FromLatLon(%v, %v)) = (%v, %v)", lat, lon, gotLat, gotLon)
			}
		}
	}

	// length does not matter
	lat, lon := LatLon(linalg.V(0, 0, 1).Scale(5))
	assert.Zero(t, lat)
	assert.Zero(t, lon)
}

func TestToS2MatchesLatLng(t *testing.T) {
	for _, c := range [][2]float64{{0, 0}, {60, 0}, {-33.9, 18.4}, {40.7, -74}, {89, 179}} {
		want := s2.PointFromLatLng(s2.LatLngFromDegrees(c[0], c[1]))
		got := ToS2(FromLatLon(c[0], c[1]))
		assert.Less(t, got.Distance(want).Radians(), 1e-12, "(%v, %v): %v != %v", c[0], c[1], got, want)

		back := FromS2(got)
		assert.True(t, back.ApproxEqual(FromLatLon(c[0], c[1]), 1e-12))
	}
}

func TestSurfaceDistance(t *testing.T) {
	// a quarter of a great circle
	a := ToS2(FromLatLon(0, 0)).Distance(ToS2(FromLatLon(90, 0)))
	assert.InDelta(t, math.Pi/2*EarthRadiusMeters, SurfaceDistance(a), 1e-3)
}

func TestCameraTransform(t *testing.T) {
	// Looking from above 90°E brings that meridian to the screen centre.
	m := CameraTransform(Camera{Lon: 90})
	x, y, visible := View(FromLatLon(0, 90), m)
	require.True(t, visible)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)

	// The antipode of the centre is hidden.
	_, _, visible = View(FromLatLon(0, -90), m)
	assert.False(t, visible)

	// Tilting the camera north by the point's latitude centres it too.
	m = CameraTransform(Camera{Lat: 45, Lon: -30})
	x, y, visible = View(FromLatLon(45, -30), m)
	require.True(t, visible)
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)
}

func TestPlanetTransform(t *testing.T) {
	cam := Camera{Lat: 10, Lon: 20}
	rotation := SolarDay.Angle(5 * time.Hour)
	v := FromLatLon(12, -40)

	want := Spun(v, rotation).Apply(CameraTransform(cam))
	got := v.Apply(PlanetTransform(rotation, cam))
	assert.True(t, got.ApproxEqual(want, 1e-12), "%v != %v", got, want)

	// With no rotation the planet transform is the camera transform.
	assert.True(t, PlanetTransform(0, cam).ApproxEqual(CameraTransform(cam), 1e-15))
}

func TestCameraTracking(t *testing.T) {
	still := Camera{Lat: 10, Lon: 20}
	assert.Equal(t, still, still.Tracking(math.Pi/2))

	follow := Camera{Lat: 10, Lon: 20, Follow: true}
	got := follow.Tracking(math.Pi / 2)
	assert.InDelta(t, 110, got.Lon, 1e-12)
	assert.Equal(t, 10.0, got.Lat)

	// A following camera cancels the planet rotation.
	v := FromLatLon(30, 40)
	angle := SolarDay.Angle(5 * time.Hour)
	moved := v.Apply(PlanetTransform(angle, follow.Tracking(angle)))
	assert.True(t, moved.ApproxEqual(v.Apply(CameraTransform(follow)), 1e-12))
}
