package clip

import (
	"testing"

	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONValidClip(t *testing.T) {
	raw := []byte(`{
		"name": "ramp",
		"duration": 1000,
		"tracks": [
			{
				"id": "t1",
				"name": "t",
				"animatableId": "node.t",
				"points": [
					{"id": "k0", "stamp": 0, "value": {"type":"float","data":0}, "transitions": {"out": {"x":0,"y":0}}},
					{"id": "k1", "stamp": 1, "value": {"type":"float","data":1}, "transitions": {"in": {"x":1,"y":1}}}
				]
			}
		]
	}`)

	data, err := ParseJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), data.DurationMs)
	require.Len(t, data.Tracks, 1)
	require.Len(t, data.Tracks[0].Points, 2)
	assert.NotNil(t, data.Tracks[0].Points[0].Transitions.Out)
}

func TestParseJSONRejectsZeroDuration(t *testing.T) {
	raw := []byte(`{"name":"x","duration":0,"tracks":[]}`)
	_, err := ParseJSON(raw)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestValidateRejectsNonMonotonicStamps(t *testing.T) {
	data := AnimationData{
		Name:       "x",
		DurationMs: 1000,
		Tracks: []Track{
			{
				ID: "t1",
				Points: []Keypoint{
					{Stamp: 0.5, Value: value.Float(0)},
					{Stamp: 0.2, Value: value.Float(1)},
				},
			},
		},
	}
	assert.ErrorIs(t, data.Validate(), ErrNonMonotonicStamps)
}

func TestValidateRejectsOutOfRangeStamp(t *testing.T) {
	data := AnimationData{
		Name:       "x",
		DurationMs: 1000,
		Tracks: []Track{
			{ID: "t1", Points: []Keypoint{{Stamp: 1.5, Value: value.Float(0)}}},
		},
	}
	assert.ErrorIs(t, data.Validate(), ErrStampOutOfRange)
}

func TestValidateRejectsKindMismatch(t *testing.T) {
	data := AnimationData{
		Name:       "x",
		DurationMs: 1000,
		Tracks: []Track{
			{
				ID: "t1",
				Points: []Keypoint{
					{Stamp: 0, Value: value.Float(0)},
					{Stamp: 1, Value: value.Text("oops")},
				},
			},
		},
	}
	assert.ErrorIs(t, data.Validate(), ErrInterpolationMismatch)
}
