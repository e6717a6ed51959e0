// Package mathutil provides approximate floating-point comparison and
// critically-damped smoothing primitives shared by the camera states and
// their interpolators.
package mathutil

import (
	"goki.dev/mat32/v2"
)

// Epsilon is the default tolerance for all approximate comparisons.
// It is also the minimum representable camera distance: states never let
// their distance fall below it, so offset and forward stay well-defined.
const Epsilon float32 = 1e-5

// eps resolves the optional per-call tolerance override.
func eps(override []float32) float32 {
	if len(override) > 0 {
		return override[0]
	}
	return Epsilon
}

// ApproxZero reports whether v is within tolerance of zero.
func ApproxZero(v float32, tolerance ...float32) bool {
	return mat32.Abs(v) < eps(tolerance)
}

// ApproxEqual reports whether a and b differ by less than the tolerance.
func ApproxEqual(a, b float32, tolerance ...float32) bool {
	return mat32.Abs(a-b) < eps(tolerance)
}

// ApproxZeroVec3 reports whether every component of v is within tolerance
// of zero.
func ApproxZeroVec3(v mat32.Vec3, tolerance ...float32) bool {
	e := eps(tolerance)
	return mat32.Abs(v.X) < e && mat32.Abs(v.Y) < e && mat32.Abs(v.Z) < e
}

// ApproxEqualVec3 reports whether a and b are componentwise within tolerance.
func ApproxEqualVec3(a, b mat32.Vec3, tolerance ...float32) bool {
	return ApproxZeroVec3(a.Sub(b), tolerance...)
}

// ApproxEqualQuat reports whether two quaternions represent rotations within
// tolerance of each other. q and -q describe the same rotation, so the dot
// product is compared by magnitude.
func ApproxEqualQuat(a, b mat32.Quat, tolerance ...float32) bool {
	return 1-mat32.Abs(a.Dot(b)) < eps(tolerance)
}

// ApproxCollinear reports whether a and b point along the same line, in
// either direction. Zero-length inputs are never collinear.
func ApproxCollinear(a, b mat32.Vec3, tolerance ...float32) bool {
	la, lb := a.Length(), b.Length()
	if la < Epsilon || lb < Epsilon {
		return false
	}
	d := a.Dot(b) / (la * lb)
	return 1-mat32.Abs(d) < eps(tolerance)
}

// ApproxParallel reports whether a and b point in the same direction.
func ApproxParallel(a, b mat32.Vec3, tolerance ...float32) bool {
	la, lb := a.Length(), b.Length()
	if la < Epsilon || lb < Epsilon {
		return false
	}
	return 1-a.Dot(b)/(la*lb) < eps(tolerance)
}

// ApproxAntiparallel reports whether a and b point in opposite directions.
func ApproxAntiparallel(a, b mat32.Vec3, tolerance ...float32) bool {
	return ApproxParallel(a, b.Negate(), tolerance...)
}

// ApproxOrthogonal reports whether a and b are perpendicular.
func ApproxOrthogonal(a, b mat32.Vec3, tolerance ...float32) bool {
	la, lb := a.Length(), b.Length()
	if la < Epsilon || lb < Epsilon {
		return false
	}
	return mat32.Abs(a.Dot(b)/(la*lb)) < eps(tolerance)
}

// AngleBetween returns the unsigned angle in radians between a and b,
// in [0, pi]. Degenerate inputs yield 0.
func AngleBetween(a, b mat32.Vec3) float32 {
	la, lb := a.Length(), b.Length()
	if la < Epsilon || lb < Epsilon {
		return 0
	}
	return mat32.Acos(mat32.Clamp(a.Dot(b)/(la*lb), -1, 1))
}
