package linalg

import "math"

// Mat3 is a row-major 3×3 matrix: [r0c0, r0c1, r0c2, r1c0, ...].
//
// The zero value is the zero matrix, not the identity. Use Identity or
// NewMat3 to get a starting point for a chain of rotations.
type Mat3 [9]float64

// Identity returns the 3×3 identity matrix.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// NewMat3 returns a pointer to a fresh identity matrix, ready for chaining.
func NewMat3() *Mat3 {
	m := Identity()
	return &m
}

// Mul returns a·b.
func Mul(a, b Mat3) Mat3 {
	var m Mat3
	return *MulTo(&m, a, b)
}

// MulTo stores a·b in dst and returns dst. dst may be &a or &b: the operands
// are copies, so the product never reads a half-written result.
func MulTo(dst *Mat3, a, b Mat3) *Mat3 {
	dst[0] = a[0]*b[0] + a[1]*b[3] + a[2]*b[6]
	dst[1] = a[0]*b[1] + a[1]*b[4] + a[2]*b[7]
	dst[2] = a[0]*b[2] + a[1]*b[5] + a[2]*b[8]
	dst[3] = a[3]*b[0] + a[4]*b[3] + a[5]*b[6]
	dst[4] = a[3]*b[1] + a[4]*b[4] + a[5]*b[7]
	dst[5] = a[3]*b[2] + a[4]*b[5] + a[5]*b[8]
	dst[6] = a[6]*b[0] + a[7]*b[3] + a[8]*b[6]
	dst[7] = a[6]*b[1] + a[7]*b[4] + a[8]*b[7]
	dst[8] = a[6]*b[2] + a[7]*b[5] + a[8]*b[8]
	return dst
}

// Reset sets m to the identity and returns m.
func (m *Mat3) Reset() *Mat3 {
	*m = Identity()
	return m
}

// Then sets m to m·o and returns m.
func (m *Mat3) Then(o Mat3) *Mat3 {
	return MulTo(m, *m, o)
}

// RotateX sets m to m·RotationX(angle) and returns m.
func (m *Mat3) RotateX(angle float64) *Mat3 {
	return m.Then(RotationX(angle))
}

// RotateY sets m to m·RotationY(angle) and returns m.
func (m *Mat3) RotateY(angle float64) *Mat3 {
	return m.Then(RotationY(angle))
}

// Transpose returns the transpose of m. For a rotation this is its inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// ApproxEqual reports whether every element of m is within tol of o.
func (m Mat3) ApproxEqual(o Mat3, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-o[i]) > tol {
			return false
		}
	}
	return true
}
