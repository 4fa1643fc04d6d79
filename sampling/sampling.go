// Package sampling implements per-track segment lookup: mapping a
// normalized time u in [0,1] to a structured value (and, on request, its
// derivative with respect to clip time).
package sampling

import (
	"github.com/brindlerun/animaflow/clip"
	"github.com/brindlerun/animaflow/interp"
	"github.com/brindlerun/animaflow/value"
)

// defaultOutControl and defaultInControl are the standard ease-in/out
// Bezier handles used when a keypoint does not declare its own transition.
var (
	defaultOutControl = clip.ControlPoint{X: 0.42, Y: 0.0}
	defaultInControl  = clip.ControlPoint{X: 0.58, Y: 1.0}
)

// Track returns the value sampled from track at normalized time u,
// clamping u to [0,1] and to the track's own first/last stamp for boundary
// frames. Sampling is a pure function of (track, u); it carries no hidden
// state.
//
//   - Empty track: returns Float(0.0).
//   - Single-keypoint track: returns that keypoint's value.
//   - Otherwise: locates the straddling segment via linear scan
//     (precondition: stamps non-decreasing), then either steps
//     (Bool/Text/Enum: the left value before the segment's midpoint, the
//     right value from it on) or eases between the two keypoints via the
//     segment's cubic-Bezier transition handles.
func Track(t clip.Track, u float32) value.Value {
	v, _ := sample(t, u)
	return v
}

// TrackWithDerivative is Track plus the analytic derivative of the sampled
// value with respect to clip time (seconds), using
// d(clip-time)/d(normalized-time) = segment_span, where segment_span is the
// clip-time length of the straddling segment
// (stamp[i+1]-stamp[i])*durationSeconds. Kinds without a well-defined
// derivative (Bool/Text/Enum/Record/Array/List/Tuple) report a zero
// derivative of the same shape.
func TrackWithDerivative(t clip.Track, u, durationSeconds float32) (value.Value, value.Value) {
	return sampleWithSpan(t, u, durationSeconds)
}

func clampU(u float32) float32 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

// findSegment locates the segment index i such that stamp[i] <= u <=
// stamp[i+1] via linear scan, clamping to the boundary segments for u
// outside the track's stamp range.
func findSegment(points []clip.Keypoint, u float32) int {
	if u <= points[0].Stamp {
		return 0
	}
	last := len(points) - 1
	if u >= points[last].Stamp {
		return last - 1
	}
	for i := 0; i < last; i++ {
		if u >= points[i].Stamp && u <= points[i+1].Stamp {
			return i
		}
	}
	return last - 1
}

func controlsFor(a, b clip.Keypoint) (out, in clip.ControlPoint) {
	out = defaultOutControl
	if a.Transitions.Out != nil {
		out = *a.Transitions.Out
	}
	in = defaultInControl
	if b.Transitions.In != nil {
		in = *b.Transitions.In
	}
	return out, in
}

func sample(t clip.Track, u float32) (value.Value, int) {
	points := t.Points
	switch len(points) {
	case 0:
		return value.Float(0.0), -1
	case 1:
		return points[0].Value, 0
	}

	u = clampU(u)
	i := findSegment(points, u)
	a, b := points[i], points[i+1]

	span := b.Stamp - a.Stamp
	if span <= 0 {
		return a.Value, i
	}
	s := (u - a.Stamp) / span
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}

	if a.Value.Kind().IsDiscrete() {
		return interp.Step(a.Value, b.Value, s), i
	}

	outC, inC := controlsFor(a, b)
	return interp.BezierValue(a.Value, b.Value, s, outC.X, outC.Y, inC.X, inC.Y), i
}

func sampleWithSpan(t clip.Track, u, durationSeconds float32) (value.Value, value.Value) {
	points := t.Points
	val, i := sample(t, u)
	if i < 0 || i >= len(points)-1 {
		return val, zeroDerivative(val)
	}

	a, b := points[i], points[i+1]
	span := b.Stamp - a.Stamp
	if span <= 0 || a.Value.Kind().IsDiscrete() {
		return val, zeroDerivative(val)
	}

	uc := clampU(u)
	s := (uc - a.Stamp) / span
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}

	outC, inC := controlsFor(a, b)
	deasedDs := interp.CubicBezierEaseDerivative(s, outC.X, outC.Y, inC.X, inC.Y)

	segmentSpanSeconds := span * durationSeconds
	if segmentSpanSeconds == 0 {
		return val, zeroDerivative(val)
	}
	// dvalue/ds = (b-a) * deased/ds; dvalue/d(clip-time) = dvalue/ds / segmentSpanSeconds.
	scale := deasedDs / segmentSpanSeconds
	return val, derivativeOf(a.Value, b.Value, scale)
}

// derivativeOf computes (b-a)*scale for numeric kinds, matching the
// component shape of a/b; non-numeric kinds have no derivative and report
// zero of a's shape.
func derivativeOf(a, b value.Value, scale float32) value.Value {
	switch a.Kind() {
	case value.KindFloat:
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return value.Float((bf - af) * scale)
	case value.KindVec2:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		return value.Vec2((bl[0]-al[0])*scale, (bl[1]-al[1])*scale)
	case value.KindVec3:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		return value.Vec3((bl[0]-al[0])*scale, (bl[1]-al[1])*scale, (bl[2]-al[2])*scale)
	case value.KindVec4:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		return value.Vec4((bl[0]-al[0])*scale, (bl[1]-al[1])*scale, (bl[2]-al[2])*scale, (bl[3]-al[3])*scale)
	case value.KindColorRgba:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		return value.ColorRgba((bl[0]-al[0])*scale, (bl[1]-al[1])*scale, (bl[2]-al[2])*scale, (bl[3]-al[3])*scale)
	case value.KindQuat:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		return value.Quat((bl[0]-al[0])*scale, (bl[1]-al[1])*scale, (bl[2]-al[2])*scale, (bl[3]-al[3])*scale)
	case value.KindTransform:
		at, _ := a.AsTransform()
		bt, _ := b.AsTransform()
		var pos, sc [3]float32
		var rot [4]float32
		for i := 0; i < 3; i++ {
			pos[i] = (bt.Pos[i] - at.Pos[i]) * scale
			sc[i] = (bt.Scale[i] - at.Scale[i]) * scale
		}
		for i := 0; i < 4; i++ {
			rot[i] = (bt.Rot[i] - at.Rot[i]) * scale
		}
		return value.NewTransform(value.Transform{Pos: pos, Rot: rot, Scale: sc})
	case value.KindVector:
		av, _ := a.AsVector()
		bv, _ := b.AsVector()
		if len(av) != len(bv) {
			return zeroDerivative(a)
		}
		out := make([]float32, len(av))
		for i := range av {
			out[i] = (bv[i] - av[i]) * scale
		}
		return value.Vector(out)
	default:
		return zeroDerivative(a)
	}
}

func zeroDerivative(v value.Value) value.Value {
	return v.Shape().Zero()
}
