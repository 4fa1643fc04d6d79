// Package interp implements the interpolation kernels shared by sampling,
// blending, and graph arithmetic: step, component-wise lerp, quaternion
// NLERP with shortest-arc correction, and cubic-Bezier easing with analytic
// derivatives. Every kernel is a total function of its inputs; there is no
// hidden state.
package interp

import (
	"math"

	"github.com/brindlerun/animaflow/value"
)

// NormalizeQuat renormalizes q, returning the identity rotation (0,0,0,1)
// when q's norm is (numerically) zero rather than producing NaNs.
func NormalizeQuat(q [4]float32) [4]float32 {
	norm := float32(math.Sqrt(float64(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])))
	if norm < 1e-8 {
		return [4]float32{0, 0, 0, 1}
	}
	return [4]float32{q[0] / norm, q[1] / norm, q[2] / norm, q[3] / norm}
}

// NLerpQuat interpolates between two quaternions using normalized linear
// interpolation with shortest-arc correction: b is negated first when
// dot(a,b) < 0, then the componentwise lerp is renormalized.
func NLerpQuat(a, b [4]float32, t float32) [4]float32 {
	dot := a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
	if dot < 0 {
		b = [4]float32{-b[0], -b[1], -b[2], -b[3]}
	}
	var out [4]float32
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return NormalizeQuat(out)
}

// lerpLanes linearly interpolates n float lanes.
func lerpLanes(a, b [4]float32, n int, t float32) [4]float32 {
	var out [4]float32
	for i := 0; i < n; i++ {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// Step returns a when t < 0.5, otherwise b. Used for discrete kinds
// (Bool/Text/Enum) and as the Record/Array/List/Tuple fallback for
// structurally mismatched slots.
func Step(a, b value.Value, t float32) value.Value {
	if t < 0.5 {
		return a
	}
	return b
}

// Lerp blends a toward b by t according to the data model's per-kind rule:
// component-wise for scalars/vectors/colors, NLERP for quaternions,
// piecewise trs-then-rot for transforms, recursive matching-child blend for
// containers (falling back to Step for unmatched slots), and Step for
// discrete kinds. Mismatched kinds fall back to Step(a, b, t) (fail-soft).
func Lerp(a, b value.Value, t float32) value.Value {
	if a.Kind() != b.Kind() {
		return Step(a, b, t)
	}
	switch a.Kind() {
	case value.KindFloat:
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()
		return value.Float(af + (bf-af)*t)
	case value.KindVec2:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		out := lerpLanes(al, bl, 2, t)
		return value.Vec2(out[0], out[1])
	case value.KindVec3:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		out := lerpLanes(al, bl, 3, t)
		return value.Vec3(out[0], out[1], out[2])
	case value.KindVec4:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		out := lerpLanes(al, bl, 4, t)
		return value.Vec4(out[0], out[1], out[2], out[3])
	case value.KindColorRgba:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		out := lerpLanes(al, bl, 4, t)
		return value.ColorRgba(out[0], out[1], out[2], out[3])
	case value.KindQuat:
		al, _ := a.Lanes()
		bl, _ := b.Lanes()
		out := NLerpQuat(al, bl, t)
		return value.Quat(out[0], out[1], out[2], out[3])
	case value.KindTransform:
		at, _ := a.AsTransform()
		bt, _ := b.AsTransform()
		var pos, scale [3]float32
		for i := 0; i < 3; i++ {
			pos[i] = at.Pos[i] + (bt.Pos[i]-at.Pos[i])*t
			scale[i] = at.Scale[i] + (bt.Scale[i]-at.Scale[i])*t
		}
		rot := NLerpQuat(at.Rot, bt.Rot, t)
		return value.NewTransform(value.Transform{Pos: pos, Rot: rot, Scale: scale})
	case value.KindVector:
		av, _ := a.AsVector()
		bv, _ := b.AsVector()
		if len(av) != len(bv) {
			return Step(a, b, t)
		}
		out := make([]float32, len(av))
		for i := range av {
			out[i] = av[i] + (bv[i]-av[i])*t
		}
		return value.Vector(out)
	case value.KindRecord:
		return lerpRecord(a, b, t)
	case value.KindArray, value.KindList, value.KindTuple:
		return lerpSeq(a, b, t)
	default:
		// Bool/Text/Enum: discrete, step semantics.
		return Step(a, b, t)
	}
}

func lerpRecord(a, b value.Value, t float32) value.Value {
	af, _ := a.Fields()
	out := make([]value.Field, 0, len(af))
	for _, f := range af {
		bv, ok := b.Field(f.Key)
		if !ok {
			out = append(out, f)
			continue
		}
		out = append(out, value.Field{Key: f.Key, Value: Lerp(f.Value, bv, t)})
	}
	return value.Record(out...)
}

func lerpSeq(a, b value.Value, t float32) value.Value {
	as, _ := a.Seq()
	bs, _ := b.Seq()
	n := len(as)
	out := make([]value.Value, n)
	for i := 0; i < n; i++ {
		if i >= len(bs) {
			out[i] = as[i]
			continue
		}
		out[i] = Lerp(as[i], bs[i], t)
	}
	switch a.Kind() {
	case value.KindArray:
		return value.Array(out...)
	case value.KindList:
		return value.List(out...)
	default:
		return value.Tuple(out...)
	}
}
