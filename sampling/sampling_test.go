package sampling

import (
	"testing"

	"github.com/brindlerun/animaflow/clip"
	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
)

func ramp(a, b float32) clip.Track {
	return clip.Track{
		ID: "t",
		Points: []clip.Keypoint{
			{Stamp: 0, Value: value.Float(a)},
			{Stamp: 1, Value: value.Float(b)},
		},
	}
}

func TestTrackEmptyReturnsZeroFloat(t *testing.T) {
	got := Track(clip.Track{}, 0.5)
	f, ok := got.AsFloat()
	assert.True(t, ok)
	assert.Equal(t, float32(0), f)
}

func TestTrackSinglePointReturnsThatValue(t *testing.T) {
	trk := clip.Track{Points: []clip.Keypoint{{Stamp: 0.3, Value: value.Float(7)}}}
	got := Track(trk, 0.9)
	f, _ := got.AsFloat()
	assert.Equal(t, float32(7), f)
}

func TestTrackIdentityCurveIsLinear(t *testing.T) {
	trk := clip.Track{
		Points: []clip.Keypoint{
			{Stamp: 0, Value: value.Float(0), Transitions: clip.Transitions{Out: &clip.ControlPoint{X: 0, Y: 0}}},
			{Stamp: 1, Value: value.Float(10), Transitions: clip.Transitions{In: &clip.ControlPoint{X: 1, Y: 1}}},
		},
	}
	got := Track(trk, 0.5)
	f, _ := got.AsFloat()
	assert.InDelta(t, 5.0, f, 1e-5)
}

func TestTrackDefaultEaseStaysWithinBounds(t *testing.T) {
	trk := ramp(0, 10)
	got := Track(trk, 0.5)
	f, _ := got.AsFloat()
	assert.GreaterOrEqual(t, f, float32(0))
	assert.LessOrEqual(t, f, float32(10))
}

func TestTrackClampsOutOfRangeU(t *testing.T) {
	trk := ramp(0, 10)
	lo := Track(trk, -1)
	hi := Track(trk, 2)
	loF, _ := lo.AsFloat()
	hiF, _ := hi.AsFloat()
	assert.Equal(t, float32(0), loF)
	assert.Equal(t, float32(10), hiF)
}

func TestTrackDiscreteHoldsLeftUntilMidpoint(t *testing.T) {
	trk := clip.Track{
		Points: []clip.Keypoint{
			{Stamp: 0, Value: value.Text("left")},
			{Stamp: 1, Value: value.Text("right")},
		},
	}
	lo := Track(trk, 0.49)
	hi := Track(trk, 0.51)
	loS, _ := lo.AsText()
	hiS, _ := hi.AsText()
	assert.Equal(t, "left", loS)
	assert.Equal(t, "right", hiS)
}

func TestTrackWithDerivativeIdentityCurveIsConstant(t *testing.T) {
	trk := clip.Track{
		Points: []clip.Keypoint{
			{Stamp: 0, Value: value.Float(0), Transitions: clip.Transitions{Out: &clip.ControlPoint{X: 0, Y: 0}}},
			{Stamp: 1, Value: value.Float(10), Transitions: clip.Transitions{In: &clip.ControlPoint{X: 1, Y: 1}}},
		},
	}
	_, deriv := TrackWithDerivative(trk, 0.5, 2.0) // duration 2s, span covers whole clip
	df, ok := deriv.AsFloat()
	assert.True(t, ok)
	// value goes 0->10 over 2 seconds linearly: slope 5/s.
	assert.InDelta(t, 5.0, df, 1e-3)
}

func TestTrackWithDerivativeDiscreteIsZero(t *testing.T) {
	trk := clip.Track{
		Points: []clip.Keypoint{
			{Stamp: 0, Value: value.Bool(false)},
			{Stamp: 1, Value: value.Bool(true)},
		},
	}
	_, deriv := TrackWithDerivative(trk, 0.5, 1.0)
	assert.Equal(t, value.KindBool, deriv.Kind())
}

func TestTrackWithDerivativeSinglePointIsZero(t *testing.T) {
	trk := clip.Track{Points: []clip.Keypoint{{Stamp: 0, Value: value.Vec3(1, 2, 3)}}}
	_, deriv := TrackWithDerivative(trk, 0.5, 1.0)
	lanes, n := deriv.Lanes()
	assert.Equal(t, 3, n)
	assert.Equal(t, [4]float32{0, 0, 0, 0}, lanes)
}
