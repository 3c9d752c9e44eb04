package geom

import "honnef.co/go/curve"

// EvalCubic evaluates the cubic Bézier curve with control points p0..p3 at t.
// t is not clamped; values outside [0, 1] extrapolate the curve.
func EvalCubic(p0, p1, p2, p3 Point, t float64) Point {
	return curve.CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}.Eval(t)
}
