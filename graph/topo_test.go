package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderPlacesProducersBeforeConsumers(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "c", Kind: KindAdd, Inputs: map[string]PortRef{"a": {NodeID: "a"}, "b": {NodeID: "b"}}},
		{ID: "a", Kind: KindConstant},
		{ID: "b", Kind: KindConstant},
	}}
	sorted, err := order(spec)
	require.NoError(t, err)

	pos := map[string]int{}
	for i, id := range sorted {
		pos[id] = i
	}
	assert.Less(t, pos["a"], pos["c"])
	assert.Less(t, pos["b"], pos["c"])
}

func TestOrderDetectsCycle(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Kind: KindAdd, Inputs: map[string]PortRef{"x": {NodeID: "b"}}},
		{ID: "b", Kind: KindAdd, Inputs: map[string]PortRef{"x": {NodeID: "a"}}},
	}}
	_, err := order(spec)
	require.Error(t, err)
}

func TestOrderRejectsUnknownReference(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Kind: KindAdd, Inputs: map[string]PortRef{"x": {NodeID: "ghost"}}},
	}}
	_, err := order(spec)
	require.Error(t, err)
	var unknown ErrUnknownNode
	assert.ErrorAs(t, err, &unknown)
}

func TestOrderRejectsDuplicateIDs(t *testing.T) {
	spec := GraphSpec{Nodes: []NodeSpec{
		{ID: "a", Kind: KindConstant},
		{ID: "a", Kind: KindConstant},
	}}
	_, err := order(spec)
	require.Error(t, err)
	var dup ErrDuplicateNode
	assert.ErrorAs(t, err, &dup)
}
