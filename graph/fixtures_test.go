package graph_test

import (
	"testing"

	"github.com/brindlerun/animaflow/fixtures"
	"github.com/brindlerun/animaflow/graph"
	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateScalarRampFixtureDoublesInput(t *testing.T) {
	demo := fixtures.ScalarRampPipeline()

	inPath, err := pathkey.New([]string{"rig"}, "value", nil)
	require.NoError(t, err)

	rt := graph.NewGraphRuntime()
	rt.SetInput(inPath, value.Float(5), nil)
	rt.AdvanceEpoch()
	require.NoError(t, graph.Evaluate(demo.Graph, rt))

	ops := rt.Writes().Ops()
	require.Len(t, ops, 1)
	got, _ := ops[0].Value.AsFloat()
	want, ok := demo.Steps[0].Expected("rig/doubled")
	require.True(t, ok)
	wantF, _ := want.AsFloat()
	assert.InDelta(t, wantF, got, 1e-6)
}
