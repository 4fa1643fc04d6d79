package graph

import (
	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
	"github.com/brindlerun/animaflow/writebatch"
)

// SpringState is the integration state of a Spring node: current position
// and velocity tracking a moving target, keyed to the FlatValue layout that
// produced them.
type SpringState struct {
	Layout   value.Shape
	Position []float32
	Velocity []float32
	Target   []float32
}

func newSpringState(layout value.Shape, seed []float32) *SpringState {
	return &SpringState{
		Layout:   layout,
		Position: append([]float32(nil), seed...),
		Velocity: make([]float32, len(seed)),
		Target:   append([]float32(nil), seed...),
	}
}

// DampState is the integration state of a Damp (exponential smoothing) node.
type DampState struct {
	Layout value.Shape
	Value  []float32
}

func newDampState(layout value.Shape, seed []float32) *DampState {
	return &DampState{Layout: layout, Value: append([]float32(nil), seed...)}
}

// SlewState is the integration state of a Slew (rate-limiter) node.
type SlewState struct {
	Layout value.Shape
	Value  []float32
}

func newSlewState(layout value.Shape, seed []float32) *SlewState {
	return &SlewState{Layout: layout, Value: append([]float32(nil), seed...)}
}

// nodeState is a per-node runtime state slot. Exactly one of its fields is
// non-nil for any stateful node; stateless node kinds never get an entry.
type nodeState struct {
	Spring *SpringState
	Damp   *DampState
	Slew   *SlewState
}

// stagedInput is a value waiting to become visible at a future epoch.
type stagedInput struct {
	value    value.Value
	declared *value.Shape
	epoch    uint64
}

// GraphRuntime holds one GraphSpec's evaluation state across ticks: the
// current tick's outputs, the accumulated write batch, per-node integration
// state, and the epoch-staged external inputs consumed by Input nodes.
//
// Epoch staging: SetInput at epoch E stages a value visible starting at
// epoch E+1. AdvanceEpoch moves the runtime to that next epoch, pruning any
// staged entry that was not meant for it — so a staged value is visible for
// exactly one epoch, the first one after it was staged.
type GraphRuntime struct {
	T  float32
	Dt float32

	outputs map[string]map[string]PortValue
	writes  writebatch.WriteBatch
	states  map[string]*nodeState

	staged     map[string]stagedInput
	inputEpoch uint64
}

// NewGraphRuntime constructs an empty GraphRuntime.
func NewGraphRuntime() *GraphRuntime {
	return &GraphRuntime{
		outputs: make(map[string]map[string]PortValue),
		states:  make(map[string]*nodeState),
		staged:  make(map[string]stagedInput),
	}
}

// AdvanceEpoch bumps the runtime to its next input epoch, discarding any
// staged input that does not target it.
func (r *GraphRuntime) AdvanceEpoch() {
	r.inputEpoch++
	for path, s := range r.staged {
		if s.epoch != r.inputEpoch {
			delete(r.staged, path)
		}
	}
}

// SetInput stages a value for path, visible starting the next epoch.
func (r *GraphRuntime) SetInput(path pathkey.TypedPath, v value.Value, declared *value.Shape) {
	r.staged[path.String()] = stagedInput{value: v, declared: declared, epoch: r.inputEpoch + 1}
}

// GetInput reads a staged input without consuming it; ok is false if no
// entry is staged for the current epoch.
func (r *GraphRuntime) GetInput(path pathkey.TypedPath) (value.Value, bool) {
	s, ok := r.staged[path.String()]
	if !ok || s.epoch != r.inputEpoch {
		return value.Value{}, false
	}
	return s.value, true
}

// TakeInput reads and removes a staged input (one-shot semantics), matching
// the Input node's consume-on-read contract.
func (r *GraphRuntime) TakeInput(path pathkey.TypedPath) (value.Value, bool) {
	v, ok := r.GetInput(path)
	if ok {
		delete(r.staged, path.String())
	}
	return v, ok
}

func (r *GraphRuntime) setOutput(nodeID, port string, v value.Value) {
	ports, ok := r.outputs[nodeID]
	if !ok {
		ports = make(map[string]PortValue)
		r.outputs[nodeID] = ports
	}
	ports[port] = NewPortValue(v)
}

// output reads a producer's port, applying selector (record field name or
// tuple/array index, or "" for the whole value). Missing producers or ports
// fall back to MissingInput semantics: Float(0), since no declared shape is
// available at this call site.
func (r *GraphRuntime) output(ref PortRef) value.Value {
	port := ref.OutputKey
	if port == "" {
		port = "out"
	}
	ports, ok := r.outputs[ref.NodeID]
	if !ok {
		return value.Float(0)
	}
	pv, ok := ports[port]
	if !ok {
		return value.Float(0)
	}
	if ref.Selector == "" {
		return pv.Value
	}
	if field, ok := pv.Value.Field(ref.Selector); ok {
		return field
	}
	if idx, ok := parseIndex(ref.Selector); ok {
		if item, ok := pv.Value.At(idx); ok {
			return item
		}
	}
	return value.Float(0)
}

func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Writes returns the write batch accumulated so far this tick.
func (r *GraphRuntime) Writes() writebatch.WriteBatch {
	return r.writes
}

func (r *GraphRuntime) springState(nodeID string, layout value.Shape, seed []float32) *SpringState {
	ns, ok := r.states[nodeID]
	if !ok {
		ns = &nodeState{}
		r.states[nodeID] = ns
	}
	if ns.Spring == nil || !ns.Spring.Layout.Equal(layout) {
		ns.Spring = newSpringState(layout, seed)
	}
	return ns.Spring
}

func (r *GraphRuntime) dampState(nodeID string, layout value.Shape, seed []float32) *DampState {
	ns, ok := r.states[nodeID]
	if !ok {
		ns = &nodeState{}
		r.states[nodeID] = ns
	}
	if ns.Damp == nil || !ns.Damp.Layout.Equal(layout) {
		ns.Damp = newDampState(layout, seed)
	}
	return ns.Damp
}

func (r *GraphRuntime) slewState(nodeID string, layout value.Shape, seed []float32) *SlewState {
	ns, ok := r.states[nodeID]
	if !ok {
		ns = &nodeState{}
		r.states[nodeID] = ns
	}
	if ns.Slew == nil || !ns.Slew.Layout.Equal(layout) {
		ns.Slew = newSlewState(layout, seed)
	}
	return ns.Slew
}
