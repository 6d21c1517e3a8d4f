// Package linalg provides the fixed-size 3-vector and 3×3 matrix algebra used
// by the sphere model.
//
// Vectors are row vectors: a vector is transformed by right-multiplying it
// with a matrix (v' = v·M). Composing several rotations into one matrix with
// Mul and applying it to many vectors is the intended fast path.
//
// Every operation comes in two forms. Methods on Vec3 return a new value and
// leave the receiver alone. The XxxTo functions write the result into a
// caller-supplied destination and return it, so per-frame code can reuse
// scratch vectors. Inputs are taken by value, so the destination may be one
// of the operands.
package linalg

import "math"

// Vec3 is an (x, y, z) triple.
type Vec3 [3]float64

// V returns the vector (x, y, z).
func V(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// X returns the first component.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float64 { return v[2] }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return *AddTo(&v, v, o)
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return *SubTo(&v, v, o)
}

// Scale returns v * k.
func (v Vec3) Scale(k float64) Vec3 {
	return *ScaleTo(&v, v, k)
}

// Mix returns the linear blend v*(1-t) + o*t with t clamped to [0, 1].
func (v Vec3) Mix(o Vec3, t float64) Vec3 {
	return *MixTo(&v, v, o, t)
}

// Normalize returns v scaled to unit length.
// v must not be the zero vector; the result is non-finite if it is.
func (v Vec3) Normalize() Vec3 {
	return *NormalizeTo(&v, v)
}

// Apply returns v·m.
func (v Vec3) Apply(m Mat3) Vec3 {
	return *ApplyTo(&v, v, m)
}

// RotateX returns v rotated about the X axis by angle radians.
func (v Vec3) RotateX(angle float64) Vec3 {
	return *RotateXTo(&v, v, angle)
}

// RotateY returns v rotated about the Y axis by angle radians.
func (v Vec3) RotateY(angle float64) Vec3 {
	return *RotateYTo(&v, v, angle)
}

// Len returns the Euclidean norm of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Dist returns the Euclidean distance between v and o.
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// ApproxEqual reports whether every component of v is within tol of o.
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v[0]-o[0]) <= tol &&
		math.Abs(v[1]-o[1]) <= tol &&
		math.Abs(v[2]-o[2]) <= tol
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// AddTo stores a + b in dst and returns dst.
func AddTo(dst *Vec3, a, b Vec3) *Vec3 {
	dst[0] = a[0] + b[0]
	dst[1] = a[1] + b[1]
	dst[2] = a[2] + b[2]
	return dst
}

// SubTo stores a - b in dst and returns dst.
func SubTo(dst *Vec3, a, b Vec3) *Vec3 {
	dst[0] = a[0] - b[0]
	dst[1] = a[1] - b[1]
	dst[2] = a[2] - b[2]
	return dst
}

// ScaleTo stores v * k in dst and returns dst.
func ScaleTo(dst *Vec3, v Vec3, k float64) *Vec3 {
	dst[0] = v[0] * k
	dst[1] = v[1] * k
	dst[2] = v[2] * k
	return dst
}

// MixTo stores a*(1-t) + b*t in dst and returns dst.
// t is clamped to [0, 1]; NaN counts as 0.
func MixTo(dst *Vec3, a, b Vec3, t float64) *Vec3 {
	t = clamp01(t)
	inv := 1 - t
	dst[0] = a[0]*inv + b[0]*t
	dst[1] = a[1]*inv + b[1]*t
	dst[2] = a[2]*inv + b[2]*t
	return dst
}

// NormalizeTo stores v / |v| in dst and returns dst.
func NormalizeTo(dst *Vec3, v Vec3) *Vec3 {
	return ScaleTo(dst, v, 1/v.Len())
}

// ApplyTo stores v·m in dst and returns dst.
func ApplyTo(dst *Vec3, v Vec3, m Mat3) *Vec3 {
	dst[0] = v[0]*m[0] + v[1]*m[3] + v[2]*m[6]
	dst[1] = v[0]*m[1] + v[1]*m[4] + v[2]*m[7]
	dst[2] = v[0]*m[2] + v[1]*m[5] + v[2]*m[8]
	return dst
}

// RotateXTo stores v rotated about X by angle radians in dst.
func RotateXTo(dst *Vec3, v Vec3, angle float64) *Vec3 {
	return ApplyTo(dst, v, RotationX(angle))
}

// RotateYTo stores v rotated about Y by angle radians in dst.
func RotateYTo(dst *Vec3, v Vec3, angle float64) *Vec3 {
	return ApplyTo(dst, v, RotationY(angle))
}

func clamp01(t float64) float64 {
	switch {
	case !(t > 0): // also catches NaN
		return 0
	case t > 1:
		return 1
	}
	return t
}
