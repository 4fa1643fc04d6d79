package graph

import (
	"encoding/json"
	"fmt"

	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
)

// ErrUnknownNodeKind is returned when a graph spec's node type tag does not
// match any known NodeKind.
type ErrUnknownNodeKind struct {
	NodeID string
	Kind   string
}

func (e ErrUnknownNodeKind) Error() string {
	return fmt.Sprintf("graph: node %q: unknown node type %q", e.NodeID, e.Kind)
}

type portRefJSON struct {
	NodeID    string `json:"node_id"`
	OutputKey string `json:"output_key,omitempty"`
	Selector  string `json:"selector,omitempty"`
}

type nodeParamsJSON struct {
	Value        *value.Value `json:"value,omitempty"`
	Path         string       `json:"path,omitempty"`
	Declared     *value.Shape `json:"declared,omitempty"`
	Min          float32      `json:"min,omitempty"`
	Max          float32      `json:"max,omitempty"`
	Stiffness    float32      `json:"stiffness,omitempty"`
	Damping      float32      `json:"damping,omitempty"`
	Mass         float32      `json:"mass,omitempty"`
	HalfLife     float32      `json:"half_life,omitempty"`
	MaxRate      float32      `json:"max_rate,omitempty"`
	CaseLabels   []string     `json:"case_labels,omitempty"`
	OperandCount int          `json:"operand_count,omitempty"`
}

type nodeSpecJSON struct {
	ID           string                 `json:"id"`
	Type         string                 `json:"type"`
	Params       nodeParamsJSON         `json:"params"`
	Inputs       map[string]portRefJSON `json:"inputs"`
	OutputShapes map[string]value.Shape `json:"output_shapes,omitempty"`
}

type graphSpecJSON struct {
	Nodes []nodeSpecJSON `json:"nodes"`
}

// knownKinds lists every NodeKind tag accepted by ParseGraphSpec.
var knownKinds = map[string]NodeKind{
	string(KindConstant):             KindConstant,
	string(KindInput):                KindInput,
	string(KindOutput):               KindOutput,
	string(KindAdd):                  KindAdd,
	string(KindSub):                  KindSub,
	string(KindMul):                  KindMul,
	string(KindDiv):                  KindDiv,
	string(KindNeg):                  KindNeg,
	string(KindAbs):                  KindAbs,
	string(KindMin):                  KindMin,
	string(KindMax):                  KindMax,
	string(KindClamp):                KindClamp,
	string(KindSpring):               KindSpring,
	string(KindDamp):                 KindDamp,
	string(KindSlew):                 KindSlew,
	string(KindWeightedSumVector):    KindWeightedSumVector,
	string(KindBlendWeightedAverage): KindBlendWeightedAverage,
	string(KindBlendMultiply):        KindBlendMultiply,
	string(KindBlendMax):             KindBlendMax,
	string(KindDefaultBlend):         KindDefaultBlend,
	string(KindCase):                 KindCase,
	string(KindJoin):                 KindJoin,
}

// ParseGraphSpec decodes a graph spec from its wire JSON form (see the
// external interfaces description: `{ nodes: [ { id, type, params, inputs,
// output_shapes? } ] }`). An unrecognized node type tag fails the whole
// parse, matching the load-time (not tick-time) contract for unknown kinds.
func ParseGraphSpec(raw []byte) (GraphSpec, error) {
	var wire graphSpecJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		return GraphSpec{}, fmt.Errorf("graph: parse spec: %w", err)
	}

	spec := GraphSpec{Nodes: make([]NodeSpec, 0, len(wire.Nodes))}
	for _, n := range wire.Nodes {
		kind, ok := knownKinds[n.Type]
		if !ok {
			return GraphSpec{}, ErrUnknownNodeKind{NodeID: n.ID, Kind: n.Type}
		}

		params := NodeParams{
			Min: n.Params.Min, Max: n.Params.Max,
			Stiffness: n.Params.Stiffness, Damping: n.Params.Damping, Mass: n.Params.Mass,
			HalfLife: n.Params.HalfLife, MaxRate: n.Params.MaxRate,
			CaseLabels: n.Params.CaseLabels, OperandCount: n.Params.OperandCount,
			Declared: n.Params.Declared,
		}
		if n.Params.Value != nil {
			params.Value = *n.Params.Value
		}
		if n.Params.Path != "" {
			path, err := pathkey.Parse(n.Params.Path)
			if err != nil {
				return GraphSpec{}, fmt.Errorf("graph: node %q: %w", n.ID, err)
			}
			params.Path = path
		}

		inputs := make(map[string]PortRef, len(n.Inputs))
		for port, ref := range n.Inputs {
			inputs[port] = PortRef{NodeID: ref.NodeID, OutputKey: ref.OutputKey, Selector: ref.Selector}
		}

		spec.Nodes = append(spec.Nodes, NodeSpec{
			ID:           n.ID,
			Kind:         kind,
			Params:       params,
			Inputs:       inputs,
			OutputShapes: n.OutputShapes,
		})
	}

	if _, err := spec.byID(); err != nil {
		return GraphSpec{}, err
	}
	return spec, nil
}
