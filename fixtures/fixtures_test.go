package fixtures

import (
	"testing"

	"github.com/brindlerun/animaflow/animengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarRampPipelineLoadsAndSteps(t *testing.T) {
	demo := ScalarRampPipeline()
	require.NotEmpty(t, demo.Graph.Nodes)
	require.Len(t, demo.Steps, 1)

	expected, ok := demo.Steps[0].Expected("rig/doubled")
	require.True(t, ok)
	f, _ := expected.AsFloat()
	assert.InDelta(t, 10.0, f, 1e-9)

	_, ok = demo.Steps[0].Expected("rig/missing")
	assert.False(t, ok)
}

func TestScalarRampAnimationLoadsIntoEngine(t *testing.T) {
	demo := ScalarRampPipeline()
	engine := animengine.NewEngine()

	anim, err := engine.LoadAnimation(demo.Animation.Anim)
	require.NoError(t, err)
	player := engine.CreatePlayer(demo.Animation.PlayerName)
	_, err = engine.AddInstance(player, anim, animengine.DefaultInstanceCfg())
	require.NoError(t, err)

	out, err := engine.Update(demo.Steps[0].Delta, animengine.Inputs{})
	require.NoError(t, err)
	require.Len(t, out.Entries, 1)
	f, _ := out.Entries[0].Value.AsFloat()
	assert.InDelta(t, 5.0, f, 1e-4)
}

func TestBlendPosePipelineGraphEchoesInput(t *testing.T) {
	demo := BlendPosePipeline()
	require.Len(t, demo.Graph.Nodes, 2)
	assert.Equal(t, "blend-pose", demo.Animation.Anim.Name)
	assert.Equal(t, animengine.LoopOnce, demo.Animation.Mode)
}
