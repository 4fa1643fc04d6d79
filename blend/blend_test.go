package blend

import (
	"math"
	"testing"

	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
)

func TestAccumulatorFloatWeightedAverage(t *testing.T) {
	var acc Accumulator
	acc.Add(value.Float(0), 1)
	acc.Add(value.Float(10), 3)
	got := acc.Finalize()
	f, _ := got.AsFloat()
	assert.InDelta(t, 7.5, f, 1e-6)
}

func TestAccumulatorVec3WeightedAverage(t *testing.T) {
	var acc Accumulator
	acc.Add(value.Vec3(0, 0, 0), 1)
	acc.Add(value.Vec3(2, 4, 6), 1)
	got := acc.Finalize()
	lanes, _ := got.Lanes()
	assert.InDelta(t, 1.0, lanes[0], 1e-6)
	assert.InDelta(t, 2.0, lanes[1], 1e-6)
	assert.InDelta(t, 3.0, lanes[2], 1e-6)
}

func TestAccumulatorQuatNormalizes(t *testing.T) {
	var acc Accumulator
	acc.Add(value.IdentityQuat(), 1)
	acc.Add(value.Quat(0, 0.70710678, 0, 0.70710678), 1)
	got := acc.Finalize()
	lanes, _ := got.Lanes()
	norm := math.Sqrt(float64(lanes[0]*lanes[0] + lanes[1]*lanes[1] + lanes[2]*lanes[2] + lanes[3]*lanes[3]))
	assert.InDelta(t, 1.0, norm, 1e-4)
}

func TestAccumulatorEmptyReturnsZeroFloat(t *testing.T) {
	var acc Accumulator
	got := acc.Finalize()
	f, _ := got.AsFloat()
	assert.Equal(t, float32(0), f)
}

func TestAccumulatorDiscreteKeepsLast(t *testing.T) {
	var acc Accumulator
	acc.Add(value.Text("a"), 5)
	acc.Add(value.Text("b"), 1)
	got := acc.Finalize()
	s, _ := got.AsText()
	assert.Equal(t, "b", s)
}

func TestAccumulatorTransformBlendsPartsSeparately(t *testing.T) {
	var acc Accumulator
	a := value.NewTransform(value.Transform{Pos: [3]float32{0, 0, 0}, Rot: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}})
	b := value.NewTransform(value.Transform{Pos: [3]float32{2, 2, 2}, Rot: [4]float32{0, 0, 0, 1}, Scale: [3]float32{3, 3, 3}})
	acc.Add(a, 1)
	acc.Add(b, 1)
	got := acc.Finalize()
	tr, _ := got.AsTransform()
	assert.InDelta(t, 1.0, tr.Pos[0], 1e-6)
	assert.InDelta(t, 2.0, tr.Scale[0], 1e-6)
}

func TestAccumulatorVectorKeepsLast(t *testing.T) {
	var acc Accumulator
	acc.Add(value.Vector([]float32{1, 2}), 1)
	acc.Add(value.Vector([]float32{3, 4, 5}), 9)
	got := acc.Finalize()
	vec, _ := got.AsVector()
	assert.Equal(t, []float32{3, 4, 5}, vec)
}

func TestAccumulatorIgnoresKindMismatch(t *testing.T) {
	var acc Accumulator
	acc.Add(value.Float(5), 1)
	acc.Add(value.Text("nope"), 9) // ignored: kind already pinned to Float
	got := acc.Finalize()
	f, _ := got.AsFloat()
	assert.InDelta(t, 5.0, f, 1e-6)
}
