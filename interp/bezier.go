package interp

import "github.com/brindlerun/animaflow/value"

// bezierIterations bounds the binary search used to invert x(s)=t.
const bezierIterations = 24

// bezierTolerance is the convergence tolerance for the binary search.
const bezierTolerance = 1e-6

// bezierComponent evaluates a single cubic-Bezier component at parameter s,
// given the two interior control ordinates p1, p2 (the curve always starts
// at 0 and ends at 1 on this axis).
func bezierComponent(s, p1, p2 float32) float32 {
	inv := 1 - s
	return 3*inv*inv*s*p1 + 3*inv*s*s*p2 + s*s*s
}

// bezierComponentDerivative evaluates d/ds of bezierComponent.
func bezierComponentDerivative(s, p1, p2 float32) float32 {
	inv := 1 - s
	return 3*inv*inv*p1 + 6*inv*s*(p2-p1) + 3*s*s*(1-p2)
}

// CubicBezierEase inverts x(s) = t for the cubic Bezier with interior
// control points (x1,y1) and (x2,y2) (endpoints fixed at (0,0) and (1,1)),
// then returns y(s). Uses up to 24 rounds of binary search on s in [0,1]
// with 1e-6 tolerance. The identity case (x1,y1,x2,y2) == (0,0,1,1) returns
// t exactly via a fast path, matching the property that linear easing must
// be loss-free.
func CubicBezierEase(t, x1, y1, x2, y2 float32) float32 {
	if x1 == 0 && y1 == 0 && x2 == 1 && y2 == 1 {
		return t
	}
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	lo, hi := float32(0), float32(1)
	s := t
	for i := 0; i < bezierIterations; i++ {
		x := bezierComponent(s, x1, x2)
		if abs32(x-t) < bezierTolerance {
			break
		}
		if x < t {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return bezierComponent(s, y1, y2)
}

// CubicBezierEaseDerivative returns dy/dt at parameter t for the same curve
// as CubicBezierEase, via the analytic chain rule dy/dt = (dy/ds) * (ds/dt)
// with ds/dt = 1/(dx/ds); ds/dt is treated as zero when dx/ds is
// (numerically) zero, to avoid a divide-by-zero blowup at degenerate
// control points.
func CubicBezierEaseDerivative(t, x1, y1, x2, y2 float32) float32 {
	if x1 == 0 && y1 == 0 && x2 == 1 && y2 == 1 {
		return 1
	}
	clamped := t
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}

	lo, hi := float32(0), float32(1)
	s := clamped
	for i := 0; i < bezierIterations; i++ {
		x := bezierComponent(s, x1, x2)
		if abs32(x-clamped) < bezierTolerance {
			break
		}
		if x < clamped {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}

	dxds := bezierComponentDerivative(s, x1, x2)
	dyds := bezierComponentDerivative(s, y1, y2)
	if abs32(dxds) < 1e-8 {
		return 0
	}
	return dyds / dxds
}

// BezierValue blends a toward b using the eased parameter produced by
// CubicBezierEase: bezier_value(a, b, t, ctrl) = lerp(a, b, bezier_ease(t, ctrl)).
func BezierValue(a, b value.Value, t float32, x1, y1, x2, y2 float32) value.Value {
	eased := CubicBezierEase(t, x1, y1, x2, y2)
	return Lerp(a, b, eased)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
