package interp

import (
	"math"
	"testing"

	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
)

func TestLerpFloat(t *testing.T) {
	got := Lerp(value.Float(0), value.Float(10), 0.25)
	f, _ := got.AsFloat()
	assert.InDelta(t, 2.5, f, 1e-6)
}

func TestLerpVec3(t *testing.T) {
	got := Lerp(value.Vec3(0, 0, 0), value.Vec3(2, 4, 6), 0.5)
	lanes, n := got.Lanes()
	assert.Equal(t, 3, n)
	assert.InDelta(t, 1.0, lanes[0], 1e-6)
	assert.InDelta(t, 2.0, lanes[1], 1e-6)
	assert.InDelta(t, 3.0, lanes[2], 1e-6)
}

func TestNLerpQuatShortestArc(t *testing.T) {
	a := [4]float32{0, 0, 0, 1}
	b := [4]float32{0, 0, 0, -1} // same rotation as a, opposite hemisphere
	out := NLerpQuat(a, b, 0.5)
	// shortest-arc correction should keep it near identity, not flip through zero.
	norm := math.Sqrt(float64(out[0]*out[0] + out[1]*out[1] + out[2]*out[2] + out[3]*out[3]))
	assert.InDelta(t, 1.0, norm, 1e-4)
	assert.InDelta(t, float64(1), float64(out[3]), 1e-4)
}

func TestNLerpQuatNormalized(t *testing.T) {
	a := [4]float32{0, 0, 0, 1}
	b := [4]float32{0, 0.70710678, 0, 0.70710678}
	for _, tt := range []float32{0, 0.25, 0.5, 0.75, 1} {
		out := NLerpQuat(a, b, tt)
		norm := math.Sqrt(float64(out[0]*out[0] + out[1]*out[1] + out[2]*out[2] + out[3]*out[3]))
		assert.InDelta(t, 1.0, norm, 1e-4)
	}
}

func TestStepDiscrete(t *testing.T) {
	a := value.Text("left")
	b := value.Text("right")
	lo := Step(a, b, 0.49)
	hi := Step(a, b, 0.5)
	loS, _ := lo.AsText()
	hiS, _ := hi.AsText()
	assert.Equal(t, "left", loS)
	assert.Equal(t, "right", hiS)
}

func TestBezierIdentityFastPath(t *testing.T) {
	for _, tt := range []float32{0, 0.1, 0.37, 0.5, 0.82, 1} {
		got := CubicBezierEase(tt, 0, 0, 1, 1)
		assert.Equal(t, tt, got, "identity bezier must return t exactly")
	}
}

func TestBezierEaseBounds(t *testing.T) {
	got := CubicBezierEase(0.5, 0.42, 0, 0.58, 1)
	assert.GreaterOrEqual(t, got, float32(0))
	assert.LessOrEqual(t, got, float32(1))
}

func TestBezierDerivativeIdentity(t *testing.T) {
	d := CubicBezierEaseDerivative(0.5, 0, 0, 1, 1)
	assert.InDelta(t, 1.0, d, 1e-6)
}

func TestRecordLerpFallsBackToStepForMissingSlot(t *testing.T) {
	a := value.Record(value.Field{Key: "x", Value: value.Float(1)}, value.Field{Key: "y", Value: value.Float(2)})
	b := value.Record(value.Field{Key: "x", Value: value.Float(3)})
	got := Lerp(a, b, 0.5)
	xv, _ := got.Field("x")
	xf, _ := xv.AsFloat()
	assert.InDelta(t, 2.0, xf, 1e-6)

	yv, ok := got.Field("y")
	assert.True(t, ok)
	yf, _ := yv.AsFloat()
	assert.InDelta(t, 2.0, yf, 1e-6) // unmatched slot keeps a's contribution
}

func TestMismatchedKindFallsBackToStep(t *testing.T) {
	got := Lerp(value.Float(1), value.Text("x"), 0.9)
	assert.Equal(t, value.KindText, got.Kind())
}
