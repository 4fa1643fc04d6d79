package graph

import (
	"fmt"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
)

// order computes a tick evaluation order for spec: a topological sort of the
// node-dependency graph induced by Inputs, so every node is evaluated after
// every node it reads from. A cycle in that dependency graph is a build-time
// error, never a tick-time one.
func order(spec GraphSpec) ([]string, error) {
	nodes, err := spec.byID()
	if err != nil {
		return nil, err
	}

	g := core.NewGraph(core.WithDirected(true), core.WithMultiEdges())
	for id := range nodes {
		if err := g.AddVertex(id); err != nil {
			return nil, fmt.Errorf("graph: build topology: %w", err)
		}
	}
	for _, n := range spec.Nodes {
		for _, ref := range n.Inputs {
			if _, ok := nodes[ref.NodeID]; !ok {
				return nil, ErrUnknownNode{From: n.ID, To: ref.NodeID}
			}
			if _, err := g.AddEdge(ref.NodeID, n.ID, 0); err != nil {
				return nil, fmt.Errorf("graph: build topology: %w", err)
			}
		}
	}

	sorted, err := dfs.TopologicalSort(g)
	if err != nil {
		return nil, ErrCycle{Detail: err.Error()}
	}
	return sorted, nil
}
