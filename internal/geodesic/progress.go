package geodesic

import "github.com/onlinebacon/coriolis/internal/linalg"

// ProgressTo writes into dst the position a fraction of the way along p,
// measured by chord length, and reports whether it did.
//
// The target length fraction·Total is looked up in the segments in order and
// the first segment whose [Start, End] contains it wins, so a target on a
// shared boundary resolves to the earlier segment. Within the segment the
// position is the linear blend of its ends; it is not projected back onto the
// sphere. A zero-length segment yields its start.
//
// A fraction outside [0, 1], or NaN, matches no segment: dst is left
// untouched and ProgressTo returns false, so a caller that keeps the previous
// position simply holds it.
func (p *Path) ProgressTo(dst *linalg.Vec3, fraction float64) bool {
	if !inUnit(fraction) {
		return false
	}
	target := fraction * p.Total
	for i := range p.Segments {
		s := &p.Segments[i]
		if target < s.Start || target > s.End {
			continue
		}
		var local float64
		if s.Length > 0 {
			local = (target - s.Start) / s.Length
		}
		linalg.MixTo(dst, s.A.Pos, s.B.Pos, local)
		return true
	}
	return false
}

// PointAt returns the position a fraction of the way along p. ok is false
// when fraction is outside [0, 1]; the returned vector is then zero.
func (p *Path) PointAt(fraction float64) (pos linalg.Vec3, ok bool) {
	ok = p.ProgressTo(&pos, fraction)
	return pos, ok
}

// SegmentAt returns the index of the segment holding fraction, using the
// same first-match rule as ProgressTo, or -1.
func (p *Path) SegmentAt(fraction float64) int {
	if !inUnit(fraction) {
		return -1
	}
	target := fraction * p.Total
	for i, s := range p.Segments {
		if target >= s.Start && target <= s.End {
			return i
		}
	}
	return -1
}

// inUnit reports whether f is in [0, 1]. It is false for NaN.
func inUnit(f float64) bool {
	return f >= 0 && f <= 1
}
