package orchestrator

import (
	"github.com/brindlerun/animaflow/common"
	"github.com/brindlerun/animaflow/graph"
	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/writebatch"
)

// Subscriptions narrows which output paths a GraphController publishes to
// the blackboard. An empty Outputs list publishes every write the graph
// produces; a non-empty list filters to just those paths.
type Subscriptions struct {
	Outputs []pathkey.TypedPath
}

// GraphControllerConfig configures one named graph wired into an
// Orchestrator.
type GraphControllerConfig struct {
	ID   string
	Spec graph.GraphSpec
	Subs Subscriptions
}

// GraphController adapts a graph spec and its runtime state into the
// blackboard-driven evaluate/publish cycle a Schedule drives each tick.
type GraphController struct {
	id      string
	spec    graph.GraphSpec
	runtime *graph.GraphRuntime
	subs    Subscriptions
}

// NewGraphController builds a controller with a fresh runtime. An empty
// cfg.ID falls back to "graph" so a zero-value config still produces a
// usable (if anonymous) controller.
func NewGraphController(cfg GraphControllerConfig) *GraphController {
	id := common.Coalesce(cfg.ID, "graph")
	return &GraphController{id: id, spec: cfg.Spec, runtime: graph.NewGraphRuntime(), subs: cfg.Subs}
}

// Evaluate pulls the current blackboard value for every Input node's
// declared path, runs one graph tick, and returns the resulting write
// batch filtered by the controller's output subscriptions.
func (c *GraphController) Evaluate(bb *Blackboard, epoch uint64, dt float32) (writebatch.WriteBatch, error) {
	for _, n := range c.spec.Nodes {
		if n.Kind != graph.KindInput {
			continue
		}
		entry, ok := bb.Get(n.Params.Path.String())
		if !ok {
			continue
		}
		c.runtime.SetInput(n.Params.Path, entry.Value, n.Params.Declared)
	}
	c.runtime.AdvanceEpoch()
	c.runtime.T += dt
	c.runtime.Dt = dt

	if err := graph.Evaluate(c.spec, c.runtime); err != nil {
		return writebatch.WriteBatch{}, err
	}
	return c.filter(c.runtime.Writes()), nil
}

func (c *GraphController) filter(batch writebatch.WriteBatch) writebatch.WriteBatch {
	if len(c.subs.Outputs) == 0 {
		return batch
	}
	allow := make(map[string]bool, len(c.subs.Outputs))
	for _, p := range c.subs.Outputs {
		allow[p.String()] = true
	}
	var filtered writebatch.WriteBatch
	for _, op := range batch.Ops() {
		if allow[op.Path.String()] {
			filtered.Append(op)
		}
	}
	return filtered
}
