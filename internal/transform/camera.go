package transform

import (
	"math"

	"github.com/onlinebacon/coriolis/internal/linalg"
)

const toRad = math.Pi / 180.0

// Camera is the viewing direction in degrees. Lon turns the view about the
// polar axis, Lat tilts it towards a pole.
type Camera struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Follow turns the camera with the planet, so the ground holds still and
	// the inertial track appears to drift.
	Follow bool `json:"follow,omitempty"`
}

// Tracking returns the camera to use once the planet has turned by angle
// radians since departure. Only a Follow camera moves.
func (c Camera) Tracking(angle float64) Camera {
	if c.Follow {
		c.Lon += angle / toRad
	}
	return c
}

// CameraTransform returns the camera-only transform, used for points that do
// not turn with the planet.
func CameraTransform(cam Camera) linalg.Mat3 {
	m := linalg.NewMat3().
		RotateY(-cam.Lon * toRad).
		RotateX(cam.Lat * toRad)
	return *m
}

// PlanetTransform returns the combined transform for ground-frame points:
// the planet rotation by rotation radians followed by the camera.
func PlanetTransform(rotation float64, cam Camera) linalg.Mat3 {
	m := linalg.NewMat3().
		RotateY(rotation).
		Then(CameraTransform(cam))
	return *m
}

// View projects v through m onto the screen plane. visible is false for
// points on the far hemisphere (z < 0).
func View(v linalg.Vec3, m linalg.Mat3) (x, y float64, visible bool) {
	var p linalg.Vec3
	linalg.ApplyTo(&p, v, m)
	return p[0], p[1], p[2] >= 0
}
