package linalg

import "math"

// RotationX returns the rotation by angle radians about the X axis, the
// latitude axis of the sphere model.
func RotationX(angle float64) Mat3 {
	var m Mat3
	return *RotationXTo(&m, angle)
}

// RotationY returns the rotation by angle radians about the Y axis, the
// polar (longitude) axis of the sphere model.
func RotationY(angle float64) Mat3 {
	var m Mat3
	return *RotationYTo(&m, angle)
}

// RotationXTo overwrites dst with RotationX(angle).
func RotationXTo(dst *Mat3, angle float64) *Mat3 {
	s, c := math.Sincos(angle)
	*dst = Mat3{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	}
	return dst
}

// RotationYTo overwrites dst with RotationY(angle).
func RotationYTo(dst *Mat3, angle float64) *Mat3 {
	s, c := math.Sincos(angle)
	*dst = Mat3{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	}
	return dst
}
