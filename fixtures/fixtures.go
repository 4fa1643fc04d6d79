// Package fixtures holds small, named demo setups shared across this
// module's test suites: a clip, a graph, a set of host inputs, and the
// per-step values a correct pipeline should produce. Keeping them in one
// place lets animengine, graph, and orchestrator tests all exercise the
// same scenarios instead of redefining ad hoc clips inline.
package fixtures

import (
	"fmt"

	"github.com/brindlerun/animaflow/animengine"
	"github.com/brindlerun/animaflow/clip"
	"github.com/brindlerun/animaflow/graph"
	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
)

// InputSeed is one host-driven blackboard write applied before a Demo's
// first step.
type InputSeed struct {
	Path  string
	Value value.Value
}

// Expectation names the value a Demo's author expects at a path after a
// Step runs.
type Expectation struct {
	Path  string
	Value value.Value
}

// Step is one tick of a Demo: the delta time to advance by and the
// blackboard values expected to hold afterward.
type Step struct {
	Delta  float32
	Expect []Expectation
}

// Expected looks up one of a Step's expectations by path.
func (s Step) Expected(path string) (value.Value, bool) {
	for _, e := range s.Expect {
		if e.Path == path {
			return e.Value, true
		}
	}
	return value.Value{}, false
}

// AnimationSetup describes the player a Demo's animation should be loaded
// into: the clip itself plus the player configuration to create it with.
type AnimationSetup struct {
	Anim       clip.AnimationData
	PlayerName string
	Mode       animengine.LoopMode
}

// Demo is a complete, runnable orchestrator scenario: one graph, one
// animation, the host inputs that seed it, and the steps a test drives it
// through.
type Demo struct {
	Description   string
	Graph         graph.GraphSpec
	Subscriptions []pathkey.TypedPath
	Animation     AnimationSetup
	InitialInputs []InputSeed
	Steps         []Step
}

func mustPath(ns []string, target string, fields []string) pathkey.TypedPath {
	p, err := pathkey.New(ns, target, fields)
	if err != nil {
		panic(fmt.Sprintf("fixtures: bad path %v/%s.%v: %v", ns, target, fields, err))
	}
	return p
}

// linearClip builds a single-track, two-keypoint clip going from `from` to
// `to` over durationMs milliseconds, bound to animatableID.
func linearClip(name, animatableID string, durationMs uint32, from, to float32) clip.AnimationData {
	return clip.AnimationData{
		Name:       name,
		DurationMs: durationMs,
		Tracks: []clip.Track{
			{
				ID:           name + "-track",
				AnimatableID: animatableID,
				Points: []clip.Keypoint{
					{Stamp: 0, Value: value.Float(from), Transitions: clip.Transitions{Out: &clip.ControlPoint{X: 0, Y: 0}}},
					{Stamp: 1, Value: value.Float(to), Transitions: clip.Transitions{In: &clip.ControlPoint{X: 1, Y: 1}}},
				},
			},
		},
	}
}

// ScalarRampPipeline is the simplest end-to-end demo: one animation track
// driving a rig value, read into a graph that doubles it and republishes
// the result under a separate path. It exercises the animation controller
// and a single graph pass together in one orchestrator step.
func ScalarRampPipeline() Demo {
	inPath := mustPath([]string{"rig"}, "value", nil)
	outPath := mustPath([]string{"rig"}, "doubled", nil)

	spec := graph.GraphSpec{Nodes: []graph.NodeSpec{
		{ID: "in", Kind: graph.KindInput, Params: graph.NodeParams{Path: inPath}},
		{ID: "two", Kind: graph.KindConstant, Params: graph.NodeParams{Value: value.Float(2)}},
		{ID: "mul", Kind: graph.KindMul, Inputs: map[string]graph.PortRef{
			"a": {NodeID: "in"},
			"b": {NodeID: "two"},
		}},
		{ID: "out", Kind: graph.KindOutput, Params: graph.NodeParams{Path: outPath}, Inputs: map[string]graph.PortRef{
			"in": {NodeID: "mul"},
		}},
	}}

	return Demo{
		Description: "a scalar ramp animation feeds a doubling graph",
		Graph:       spec,
		Animation: AnimationSetup{
			Anim:       linearClip("scalar-ramp", "rig/value", 1000, 0, 10),
			PlayerName: "fixture-player",
			Mode:       animengine.LoopRepeat,
		},
		Steps: []Step{
			{Delta: 0.5, Expect: []Expectation{
				{Path: "rig/value", Value: value.Float(5)},
				{Path: "rig/doubled", Value: value.Float(10)},
			}},
		},
	}
}

// BlendPosePipeline pairs a LoopOnce clip bound to rig/pose with a graph
// that simply republishes rig/pose under rig/pose_echo. It carries no
// instance configuration and no steps: the caller chooses how many
// instances of the clip to add, and with which weights and offsets.
func BlendPosePipeline() Demo {
	posePath := mustPath([]string{"rig"}, "pose", nil)
	echoPath := mustPath([]string{"rig"}, "pose_echo", nil)

	spec := graph.GraphSpec{Nodes: []graph.NodeSpec{
		{ID: "in", Kind: graph.KindInput, Params: graph.NodeParams{Path: posePath}},
		{ID: "out", Kind: graph.KindOutput, Params: graph.NodeParams{Path: echoPath}, Inputs: map[string]graph.PortRef{
			"in": {NodeID: "in"},
		}},
	}}

	return Demo{
		Description: "two weighted instances of one clip blend onto a shared pose path",
		Graph:       spec,
		Animation: AnimationSetup{
			Anim:       linearClip("blend-pose", "rig/pose", 1000, 0, 10),
			PlayerName: "fixture-player",
			Mode:       animengine.LoopOnce,
		},
	}
}
