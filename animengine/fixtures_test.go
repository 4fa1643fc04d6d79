package animengine_test

import (
	"testing"

	"github.com/brindlerun/animaflow/animengine"
	"github.com/brindlerun/animaflow/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineRunsScalarRampFixture(t *testing.T) {
	demo := fixtures.ScalarRampPipeline()

	e := animengine.NewEngine()
	anim, err := e.LoadAnimation(demo.Animation.Anim)
	require.NoError(t, err)
	player := e.CreatePlayer(demo.Animation.PlayerName)
	_, err = e.AddInstance(player, anim, animengine.DefaultInstanceCfg())
	require.NoError(t, err)

	require.Len(t, demo.Steps, 1)
	out, err := e.Update(demo.Steps[0].Delta, animengine.Inputs{})
	require.NoError(t, err)
	require.Len(t, out.Entries, 1)

	want, ok := demo.Steps[0].Expected("rig/value")
	require.True(t, ok)
	wantF, _ := want.AsFloat()
	gotF, _ := out.Entries[0].Value.AsFloat()
	assert.InDelta(t, wantF, gotF, 1e-4)
}
