// Package blend implements the weighted-contribution accumulator used to
// combine multiple animation instances' outputs for the same target path
// into one finalized value.
package blend

import (
	"math"

	"github.com/brindlerun/animaflow/value"
)

// Accumulator collects weighted contributions for a single target path and
// finalizes them into one Value according to the data model's per-kind
// blend rule:
//
//   - Float/Vec2/Vec3/Vec4/ColorRgba: weighted sum divided by total weight.
//   - Quat: weighted sum of lanes, renormalized (falls back to identity on
//     a zero-norm sum, same as NLerpQuat).
//   - Transform: position and scale blended like vectors; rotation blended
//     like a quaternion.
//   - Bool/Text/Enum/Vector/Record/Array/List/Tuple: no weighted average is
//     defined, so the accumulator keeps the most recently added
//     contribution (Step semantics), whatever its weight relative to
//     earlier ones.
//
// Contributions with weight <= 0 are ignored for every kind.
//
// The zero Accumulator is ready to use. Finalize on an Accumulator that
// never received a contribution returns Float(0).
type Accumulator struct {
	started bool
	kind    value.Kind

	totalWeight float32

	sumFloat float32
	sumVec   [4]float32

	sumPos   [3]float32
	sumScale [3]float32
	sumRot   [4]float32

	last value.Value
}

// Add folds v into the running sum with the given weight. Contributions
// after the first whose kind differs from the accumulator's established
// kind are ignored.
func (a *Accumulator) Add(v value.Value, weight float32) {
	if weight <= 0 {
		return
	}
	if !a.started {
		a.start(v)
	}
	if v.Kind() != a.kind {
		return
	}

	a.last = v
	a.totalWeight += weight

	switch a.kind {
	case value.KindFloat:
		f, _ := v.AsFloat()
		a.sumFloat += f * weight
	case value.KindVec2, value.KindVec3, value.KindVec4, value.KindColorRgba:
		lanes, _ := v.Lanes()
		for i := range a.sumVec {
			a.sumVec[i] += lanes[i] * weight
		}
	case value.KindQuat:
		lanes, _ := v.Lanes()
		for i := range a.sumRot {
			a.sumRot[i] += lanes[i] * weight
		}
	case value.KindTransform:
		tr, _ := v.AsTransform()
		for i := 0; i < 3; i++ {
			a.sumPos[i] += tr.Pos[i] * weight
			a.sumScale[i] += tr.Scale[i] * weight
		}
		for i := range a.sumRot {
			a.sumRot[i] += tr.Rot[i] * weight
		}
	default:
		// Bool/Text/Enum/Vector/Record/Array/List/Tuple: Step(last), nothing to sum.
	}
}

func (a *Accumulator) start(v value.Value) {
	a.started = true
	a.kind = v.Kind()
}

// Finalize computes the blended value from the accumulated contributions.
func (a *Accumulator) Finalize() value.Value {
	if !a.started {
		return value.Float(0)
	}

	switch a.kind {
	case value.KindFloat:
		return value.Float(a.divide(a.sumFloat))
	case value.KindVec2:
		return value.Vec2(a.divide(a.sumVec[0]), a.divide(a.sumVec[1]))
	case value.KindVec3:
		return value.Vec3(a.divide(a.sumVec[0]), a.divide(a.sumVec[1]), a.divide(a.sumVec[2]))
	case value.KindVec4:
		return value.Vec4(a.divide(a.sumVec[0]), a.divide(a.sumVec[1]), a.divide(a.sumVec[2]), a.divide(a.sumVec[3]))
	case value.KindColorRgba:
		return value.ColorRgba(a.divide(a.sumVec[0]), a.divide(a.sumVec[1]), a.divide(a.sumVec[2]), a.divide(a.sumVec[3]))
	case value.KindQuat:
		n := normalizeOrIdentity(a.sumRot)
		return value.Quat(n[0], n[1], n[2], n[3])
	case value.KindTransform:
		var pos, scale [3]float32
		for i := 0; i < 3; i++ {
			pos[i] = a.divide(a.sumPos[i])
			scale[i] = a.divide(a.sumScale[i])
		}
		rot := normalizeOrIdentity(a.sumRot)
		return value.NewTransform(value.Transform{Pos: pos, Rot: rot, Scale: scale})
	default:
		// Bool/Text/Enum/Vector/Record/Array/List/Tuple: Step semantics.
		return a.last
	}
}

func (a *Accumulator) divide(sum float32) float32 {
	if a.totalWeight == 0 {
		return 0
	}
	return sum / a.totalWeight
}

func normalizeOrIdentity(q [4]float32) [4]float32 {
	var sq float32
	for _, c := range q {
		sq += c * c
	}
	if sq < 1e-16 {
		return [4]float32{0, 0, 0, 1}
	}
	norm := float32(math.Sqrt(float64(sq)))
	return [4]float32{q[0] / norm, q[1] / norm, q[2] / norm, q[3] / norm}
}
