package graph

import (
	"testing"

	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagedInputVisibleOnlyForOneEpoch(t *testing.T) {
	path, err := pathkey.New([]string{"n"}, "x", nil)
	require.NoError(t, err)

	rt := NewGraphRuntime()
	rt.AdvanceEpoch()
	rt.SetInput(path, value.Float(7), nil)

	_, ok := rt.GetInput(path)
	assert.False(t, ok, "staged value should not be visible before advancing to its epoch")

	rt.AdvanceEpoch()
	v, ok := rt.GetInput(path)
	require.True(t, ok)
	f, _ := v.AsFloat()
	assert.InDelta(t, 7.0, f, 1e-6)

	rt.AdvanceEpoch()
	_, ok = rt.GetInput(path)
	assert.False(t, ok, "staged value should be pruned after its one visible epoch")
}

func TestTakeInputConsumesEntry(t *testing.T) {
	path, err := pathkey.New([]string{"n"}, "y", nil)
	require.NoError(t, err)

	rt := NewGraphRuntime()
	rt.AdvanceEpoch()
	rt.SetInput(path, value.Float(3), nil)
	rt.AdvanceEpoch()

	_, ok := rt.TakeInput(path)
	require.True(t, ok)
	_, ok = rt.GetInput(path)
	assert.False(t, ok)
}
