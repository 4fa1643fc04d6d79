package orchestrator

import (
	"testing"

	"github.com/brindlerun/animaflow/animengine"
	"github.com/brindlerun/animaflow/clip"
	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampAnim(t *testing.T) clip.AnimationData {
	t.Helper()
	return clip.AnimationData{
		Name:       "ramp",
		DurationMs: 1000,
		Tracks: []clip.Track{
			{
				ID:           "t1",
				AnimatableID: "rig.value",
				Points: []clip.Keypoint{
					{Stamp: 0, Value: value.Float(0), Transitions: clip.Transitions{Out: &clip.ControlPoint{X: 0, Y: 0}}},
					{Stamp: 1, Value: value.Float(10), Transitions: clip.Transitions{In: &clip.ControlPoint{X: 1, Y: 1}}},
				},
			},
		},
	}
}

func TestMapBlackboardPlayCommandAndInstanceUpdate(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("anim/player/1/cmd/play", value.Float(0), nil, 1, "host")
	bb.Set("anim/player/1/instance/2/weight", value.Float(0.25), nil, 1, "host")
	bb.Set("anim/player/1/instance/2/enabled", value.Bool(false), nil, 1, "host")
	bb.Set("some/unrelated/path", value.Float(1), nil, 1, "host")

	inputs := mapBlackboardToInputs(bb)
	require.Len(t, inputs.PlayerCmds, 1)
	assert.Equal(t, animengine.PlayerPlay, inputs.PlayerCmds[0].Kind)
	assert.Equal(t, animengine.PlayerId(1), inputs.PlayerCmds[0].Player)

	require.Len(t, inputs.InstanceUpdates, 2)
	for _, u := range inputs.InstanceUpdates {
		assert.Equal(t, animengine.InstId(2), u.Inst)
		if u.Weight != nil {
			assert.InDelta(t, 0.25, *u.Weight, 1e-9)
		}
		if u.Enabled != nil {
			assert.False(t, *u.Enabled)
		}
	}
}

func TestMapBlackboardSkipsUnknownActionAndWrongType(t *testing.T) {
	bb := NewBlackboard()
	bb.Set("anim/player/1/cmd/unknown_action", value.Float(0), nil, 1, "host")
	bb.Set("anim/player/1/instance/2/weight", value.Bool(true), nil, 1, "host") // wrong type

	inputs := mapBlackboardToInputs(bb)
	assert.Empty(t, inputs.PlayerCmds)
	assert.Empty(t, inputs.InstanceUpdates)
}

func TestAnimationControllerUpdateDrivesEngine(t *testing.T) {
	engine := animengine.NewEngine()
	anim, err := engine.LoadAnimation(rampAnim(t))
	require.NoError(t, err)
	player := engine.CreatePlayer("p")
	_, err = engine.AddInstance(player, anim, animengine.DefaultInstanceCfg())
	require.NoError(t, err)

	ctrl := NewAnimationController(AnimationControllerConfig{ID: "a", Engine: engine})
	bb := NewBlackboard()

	batch, _, err := ctrl.Update(0.5, bb)
	require.NoError(t, err)
	require.Equal(t, 1, batch.Len())
	f, _ := batch.Ops()[0].Value.AsFloat()
	assert.InDelta(t, 5.0, f, 1e-4)
}
