package orchestrator

import (
	"testing"

	"github.com/brindlerun/animaflow/animengine"
	"github.com/brindlerun/animaflow/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestratorRunsScalarRampFixtureEndToEnd(t *testing.T) {
	demo := fixtures.ScalarRampPipeline()

	engine := animengine.NewEngine()
	anim, err := engine.LoadAnimation(demo.Animation.Anim)
	require.NoError(t, err)
	player := engine.CreatePlayer(demo.Animation.PlayerName)
	_, err = engine.AddInstance(player, anim, animengine.DefaultInstanceCfg())
	require.NoError(t, err)

	o := New(SinglePass)
	o.WithAnimation(AnimationControllerConfig{ID: "anim", Engine: engine})
	o.WithGraph(GraphControllerConfig{ID: "graph", Spec: demo.Graph})

	require.Len(t, demo.Steps, 1)
	step := demo.Steps[0]
	_, err = o.Step(step.Delta)
	require.NoError(t, err)

	for _, expect := range step.Expect {
		entry, ok := o.Blackboard().Get(expect.Path)
		require.True(t, ok, "expected a blackboard entry at %q", expect.Path)
		want, _ := expect.Value.AsFloat()
		got, _ := entry.Value.AsFloat()
		assert.InDelta(t, want, got, 1e-4, "path %q", expect.Path)
	}
}
