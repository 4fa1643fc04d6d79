package graph

import (
	"fmt"

	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
)

// NodeKind tags a NodeSpec's evaluation behavior. Unknown tags fail at
// graph load, not at tick time.
type NodeKind string

const (
	KindConstant NodeKind = "constant"
	KindInput    NodeKind = "input"
	KindOutput   NodeKind = "output"

	KindAdd   NodeKind = "add"
	KindSub   NodeKind = "sub"
	KindMul   NodeKind = "mul"
	KindDiv   NodeKind = "div"
	KindNeg   NodeKind = "neg"
	KindAbs   NodeKind = "abs"
	KindMin   NodeKind = "min"
	KindMax   NodeKind = "max"
	KindClamp NodeKind = "clamp"

	KindSpring NodeKind = "spring"
	KindDamp   NodeKind = "damp"
	KindSlew   NodeKind = "slew"

	KindWeightedSumVector NodeKind = "weighted_sum_vector"

	KindBlendWeightedAverage NodeKind = "blend_weighted_average"
	KindBlendMultiply        NodeKind = "blend_multiply"
	KindBlendMax             NodeKind = "blend_max"
	KindDefaultBlend         NodeKind = "default_blend"

	KindCase NodeKind = "case"
	KindJoin NodeKind = "join"
)

// PortRef names the source of a node input: the producing node's id and one
// of its output ports, with an optional selector to pick a record field or
// tuple index out of that port's value (defaulting to the whole value).
type PortRef struct {
	NodeID    string
	OutputKey string
	Selector  string
}

// NodeParams carries the typed-per-kind parameters a NodeSpec needs beyond
// its wired inputs. Only the fields relevant to Kind are populated; the rest
// stay at their zero value.
type NodeParams struct {
	// Constant.
	Value value.Value

	// Input/Output.
	Path     pathkey.TypedPath
	Declared *value.Shape

	// Clamp.
	Min, Max float32

	// Spring.
	Stiffness, Damping, Mass float32

	// Damp.
	HalfLife float32

	// Slew.
	MaxRate float32

	// Case.
	CaseLabels []string

	// DefaultBlend/Join: number of variadic operand/target groups.
	OperandCount int
}

// NodeSpec is one node in a GraphSpec: its kind, parameters, named inputs,
// and declared output shapes (shapes not declared here are inferred from
// the evaluated value at tick time).
type NodeSpec struct {
	ID           string
	Kind         NodeKind
	Params       NodeParams
	Inputs       map[string]PortRef
	OutputShapes map[string]value.Shape
}

// GraphSpec is an ordered, uniquely-ided collection of NodeSpec. Order is
// declaration order; evaluation order is computed separately by topo sort.
type GraphSpec struct {
	Nodes []NodeSpec
}

// ErrDuplicateNode is returned when two NodeSpec entries share an id.
type ErrDuplicateNode struct{ ID string }

func (e ErrDuplicateNode) Error() string {
	return fmt.Sprintf("graph: duplicate node id %q", e.ID)
}

// ErrUnknownNode is returned when a PortRef names a node id that does not
// exist in the spec.
type ErrUnknownNode struct {
	From, To string
}

func (e ErrUnknownNode) Error() string {
	return fmt.Sprintf("graph: node %q references unknown node %q", e.From, e.To)
}

// ErrCycle is returned when the spec's input wiring contains a cycle.
type ErrCycle struct{ Detail string }

func (e ErrCycle) Error() string {
	return fmt.Sprintf("graph: cycle detected: %s", e.Detail)
}

// byID indexes a GraphSpec's nodes for input resolution and evaluation.
func (s GraphSpec) byID() (map[string]*NodeSpec, error) {
	idx := make(map[string]*NodeSpec, len(s.Nodes))
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if _, dup := idx[n.ID]; dup {
			return nil, ErrDuplicateNode{ID: n.ID}
		}
		idx[n.ID] = n
	}
	return idx, nil
}
