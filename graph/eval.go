package graph

import (
	"math"
	"strconv"

	"github.com/brindlerun/animaflow/value"
	"github.com/brindlerun/animaflow/writebatch"
	"github.com/gechr/clog"
)

// Evaluate runs one tick of spec against runtime: topologically orders the
// nodes, clears this tick's outputs and write batch, and dispatches each
// node by kind. A build-time error (duplicate id, unknown reference, cycle)
// aborts the whole evaluation; tick-time faults (shape mismatches, absent
// inputs) degrade per-node to NaN-filled or zero-valued outputs instead.
func Evaluate(spec GraphSpec, runtime *GraphRuntime) error {
	nodes, err := spec.byID()
	if err != nil {
		clog.Error().Err(err).Msg("graph build failed")
		return err
	}
	sorted, err := order(spec)
	if err != nil {
		clog.Error().Err(err).Msg("graph build failed")
		return err
	}

	runtime.outputs = make(map[string]map[string]PortValue, len(sorted))
	runtime.writes = writebatch.WriteBatch{}

	for _, id := range sorted {
		n := nodes[id]
		evalNode(runtime, n)
	}
	return nil
}

func evalNode(r *GraphRuntime, n *NodeSpec) {
	switch n.Kind {
	case KindConstant:
		r.setOutput(n.ID, "out", n.Params.Value)

	case KindInput:
		if v, ok := r.TakeInput(n.Params.Path); ok {
			r.setOutput(n.ID, "out", v)
			return
		}
		if n.Params.Declared != nil {
			r.setOutput(n.ID, "out", n.Params.Declared.Zero())
			return
		}
		r.setOutput(n.ID, "out", value.Float(0))

	case KindOutput:
		in := r.output(n.Inputs["in"])
		shape := in.Shape()
		if flat, ok := Flatten(in); ok {
			shape = flat.Shape
		}
		r.writes.Append(writebatch.WriteOp{Path: n.Params.Path, Value: in, Shape: &shape})
		r.setOutput(n.ID, "out", in)

	case KindAdd:
		binaryArith(r, n, func(a, b float32) float32 { return a + b })
	case KindSub:
		binaryArith(r, n, func(a, b float32) float32 { return a - b })
	case KindMul:
		binaryArith(r, n, func(a, b float32) float32 { return a * b })
	case KindDiv:
		binaryArith(r, n, func(a, b float32) float32 {
			if b == 0 {
				return float32(math.NaN())
			}
			return a / b
		})
	case KindMin:
		binaryArith(r, n, func(a, b float32) float32 {
			if a < b {
				return a
			}
			return b
		})
	case KindMax:
		binaryArith(r, n, func(a, b float32) float32 {
			if a > b {
				return a
			}
			return b
		})

	case KindNeg:
		unaryArith(r, n, func(a float32) float32 { return -a })
	case KindAbs:
		unaryArith(r, n, func(a float32) float32 {
			if a < 0 {
				return -a
			}
			return a
		})
	case KindClamp:
		lo, hi := n.Params.Min, n.Params.Max
		unaryArith(r, n, func(a float32) float32 {
			if a < lo {
				return lo
			}
			if a > hi {
				return hi
			}
			return a
		})

	case KindSpring:
		evalSpring(r, n)
	case KindDamp:
		evalDamp(r, n)
	case KindSlew:
		evalSlew(r, n)

	case KindWeightedSumVector:
		evalWeightedSumVector(r, n)

	case KindBlendWeightedAverage, KindBlendMultiply, KindBlendMax:
		evalBlendPair(r, n)
	case KindDefaultBlend:
		evalDefaultBlend(r, n)

	case KindCase:
		evalCase(r, n)
	case KindJoin:
		evalJoin(r, n)

	default:
		r.setOutput(n.ID, "out", value.Float(0))
	}
}

func binaryArith(r *GraphRuntime, n *NodeSpec, op func(a, b float32) float32) {
	a := r.output(n.Inputs["a"])
	b := r.output(n.Inputs["b"])
	fa, okA := Flatten(a)
	fb, okB := Flatten(b)
	if !okA || !okB {
		r.setOutput(n.ID, "out", value.Float(float32(math.NaN())))
		return
	}
	shape, ad, bd, ok := Align(fa, fb)
	if !ok {
		r.setOutput(n.ID, "out", nanFilled(shape))
		return
	}
	out := make([]float32, shape.ScalarLen())
	for i := range out {
		out[i] = op(at(ad, i), at(bd, i))
	}
	r.setOutput(n.ID, "out", Reconstruct(shape, out))
}

func unaryArith(r *GraphRuntime, n *NodeSpec, op func(a float32) float32) {
	in := r.output(n.Inputs["in"])
	flat, ok := Flatten(in)
	if !ok {
		r.setOutput(n.ID, "out", value.Float(float32(math.NaN())))
		return
	}
	out := make([]float32, len(flat.Data))
	for i, v := range flat.Data {
		out[i] = op(v)
	}
	r.setOutput(n.ID, "out", Reconstruct(flat.Shape, out))
}

func at(data []float32, i int) float32 {
	if i < len(data) {
		return data[i]
	}
	return 0
}

func nanFilled(shape value.Shape) value.Value {
	n := shape.ScalarLen()
	data := make([]float32, n)
	nan := float32(math.NaN())
	for i := range data {
		data[i] = nan
	}
	return Reconstruct(shape, data)
}

// evalSpring integrates a damped-spring toward the "target" input, reading
// node parameters Stiffness/Damping/Mass. State resets whenever the flat
// layout of the target changes (including the first tick).
func evalSpring(r *GraphRuntime, n *NodeSpec) {
	target := r.output(n.Inputs["target"])
	flat, ok := Flatten(target)
	if !ok {
		r.setOutput(n.ID, "out", value.Float(float32(math.NaN())))
		return
	}
	st := r.springState(n.ID, flat.Shape, flat.Data)
	copy(st.Target, flat.Data)

	mass := n.Params.Mass
	if mass <= 0 {
		mass = 1
	}
	dt := r.Dt
	for i := range st.Position {
		accel := (n.Params.Stiffness*(st.Target[i]-st.Position[i]) - n.Params.Damping*st.Velocity[i]) / mass
		st.Velocity[i] += accel * dt
		st.Position[i] += st.Velocity[i] * dt
	}
	r.setOutput(n.ID, "out", Reconstruct(st.Layout, st.Position))
}

// evalDamp exponentially smooths toward "target" with a half-life in
// seconds: each tick closes the gap by a fraction derived from dt/HalfLife,
// so the value reaches half the remaining distance every HalfLife seconds.
func evalDamp(r *GraphRuntime, n *NodeSpec) {
	target := r.output(n.Inputs["target"])
	flat, ok := Flatten(target)
	if !ok {
		r.setOutput(n.ID, "out", value.Float(float32(math.NaN())))
		return
	}
	st := r.dampState(n.ID, flat.Shape, flat.Data)

	halfLife := n.Params.HalfLife
	var factor float32
	if halfLife <= 0 {
		factor = 1
	} else {
		factor = 1 - float32(math.Exp2(-float64(r.Dt)/float64(halfLife)))
	}
	for i := range st.Value {
		st.Value[i] += (flat.Data[i] - st.Value[i]) * factor
	}
	r.setOutput(n.ID, "out", Reconstruct(st.Layout, st.Value))
}

// evalSlew moves toward "target" at most MaxRate units per second per
// component.
func evalSlew(r *GraphRuntime, n *NodeSpec) {
	target := r.output(n.Inputs["target"])
	flat, ok := Flatten(target)
	if !ok {
		r.setOutput(n.ID, "out", value.Float(float32(math.NaN())))
		return
	}
	st := r.slewState(n.ID, flat.Shape, flat.Data)

	maxStep := n.Params.MaxRate * r.Dt
	for i := range st.Value {
		delta := flat.Data[i] - st.Value[i]
		if maxStep > 0 {
			if delta > maxStep {
				delta = maxStep
			} else if delta < -maxStep {
				delta = -maxStep
			}
		}
		st.Value[i] += delta
	}
	r.setOutput(n.ID, "out", Reconstruct(st.Layout, st.Value))
}

// evalWeightedSumVector reduces a "values" vector/vec-N and a broadcastable
// "weights" operand into descriptive scalar ports. A length mismatch after
// broadcast yields NaN for every port.
func evalWeightedSumVector(r *GraphRuntime, n *NodeSpec) {
	values := r.output(n.Inputs["values"])
	weights := r.output(n.Inputs["weights"])
	fv, okV := Flatten(values)
	fw, okW := Flatten(weights)
	if !okV || !okW {
		setNaNPorts(r, n.ID, "total_weighted_sum", "total_weight", "max_effective_weight", "input_count")
		return
	}
	_, vd, wd, ok := Align(fv, fw)
	if !ok {
		setNaNPorts(r, n.ID, "total_weighted_sum", "total_weight", "max_effective_weight", "input_count")
		return
	}

	var totalWeighted, totalWeight, maxEffective float32
	for i := range vd {
		w := wd[i]
		totalWeighted += vd[i] * w
		totalWeight += w
		abs := w
		if abs < 0 {
			abs = -abs
		}
		if abs > maxEffective {
			maxEffective = abs
		}
	}
	r.setOutput(n.ID, "total_weighted_sum", value.Float(totalWeighted))
	r.setOutput(n.ID, "total_weight", value.Float(totalWeight))
	r.setOutput(n.ID, "max_effective_weight", value.Float(maxEffective))
	r.setOutput(n.ID, "input_count", value.Float(float32(len(vd))))
}

func setNaNPorts(r *GraphRuntime, nodeID string, ports ...string) {
	nan := value.Float(float32(math.NaN()))
	for _, p := range ports {
		r.setOutput(nodeID, p, nan)
	}
}

// evalBlendPair folds two-operand "a"/"b" blend families by the node's kind,
// using a broadcastable "weight" input (defaulting to 0.5) for the
// weighted-average case.
func evalBlendPair(r *GraphRuntime, n *NodeSpec) {
	a := r.output(n.Inputs["a"])
	b := r.output(n.Inputs["b"])
	fa, okA := Flatten(a)
	fb, okB := Flatten(b)
	if !okA || !okB {
		r.setOutput(n.ID, "out", value.Float(float32(math.NaN())))
		return
	}
	shape, ad, bd, ok := Align(fa, fb)
	if !ok {
		r.setOutput(n.ID, "out", nanFilled(shape))
		return
	}

	weight := float32(0.5)
	if ref, wired := n.Inputs["weight"]; wired {
		if wf, ok := Flatten(r.output(ref)); ok && len(wf.Data) > 0 {
			weight = wf.Data[0]
		}
	}

	out := make([]float32, shape.ScalarLen())
	for i := range out {
		av, bv := at(ad, i), at(bd, i)
		switch n.Kind {
		case KindBlendWeightedAverage:
			out[i] = av*(1-weight) + bv*weight
		case KindBlendMultiply:
			out[i] = av * bv
		case KindBlendMax:
			if av > bv {
				out[i] = av
			} else {
				out[i] = bv
			}
		}
	}
	r.setOutput(n.ID, "out", Reconstruct(shape, out))
}

// evalDefaultBlend combines a variadic set of target_K ports against a
// "weights" vector, a "baseline", and an "offset":
//
//	out = sum(target_k * weight_k) + baseline * max(1 - sum(weight), 0) + offset
//
// baseline and offset are not normalized away by the target weights; a
// weight sum under 1 lets the baseline show through, and a weight sum at or
// above 1 zeroes the baseline term out entirely. An unwired baseline reads
// as Float(0), like any missing input. A non-numeric baseline yields a NaN
// Float; a weights vector whose length doesn't match the target count, or a
// target whose layout differs from baseline's, yields a NaN-filled value of
// baseline's layout.
func evalDefaultBlend(r *GraphRuntime, n *NodeSpec) {
	count := n.Params.OperandCount

	baseline, ok := Flatten(r.output(n.Inputs["baseline"]))
	if !ok {
		r.setOutput(n.ID, "out", value.Float(float32(math.NaN())))
		return
	}
	shape := baseline.Shape

	offset := make([]float32, shape.ScalarLen())
	if ref, wired := n.Inputs["offset"]; wired {
		if off, ok := Flatten(r.output(ref)); ok && off.Shape.Equal(shape) {
			offset = off.Data
		}
	}

	weights, ok := r.output(n.Inputs["weights"]).AsVector()
	if !ok || len(weights) != count {
		r.setOutput(n.ID, "out", nanFilled(shape))
		return
	}

	sum := make([]float32, shape.ScalarLen())
	var totalWeight float32
	for k := 1; k <= count; k++ {
		ref, wired := n.Inputs[targetKey(k)]
		if !wired {
			continue
		}
		flat, ok := Flatten(r.output(ref))
		if !ok || !flat.Shape.Equal(shape) {
			r.setOutput(n.ID, "out", nanFilled(shape))
			return
		}
		w := weights[k-1]
		totalWeight += w
		for i, v := range flat.Data {
			sum[i] += v * w
		}
	}

	baselineFactor := 1 - totalWeight
	if baselineFactor < 0 {
		baselineFactor = 0
	}
	out := make([]float32, shape.ScalarLen())
	for i := range out {
		out[i] = sum[i] + baseline.Data[i]*baselineFactor + offset[i]
	}
	r.setOutput(n.ID, "out", Reconstruct(shape, out))
}

func operandKey(k int) string {
	return "operands_" + strconv.Itoa(k)
}

func targetKey(k int) string {
	return "target_" + strconv.Itoa(k)
}

// evalCase reads a "selector" Text input and picks the matching "cases_K"
// input by comparing against Params.CaseLabels; an unmatched selector falls
// through to "default".
func evalCase(r *GraphRuntime, n *NodeSpec) {
	sel, _ := r.output(n.Inputs["selector"]).AsText()
	for k, label := range n.Params.CaseLabels {
		if label == sel {
			if ref, ok := n.Inputs[caseKey(k)]; ok {
				r.setOutput(n.ID, "out", r.output(ref))
				return
			}
		}
	}
	if ref, ok := n.Inputs["default"]; ok {
		r.setOutput(n.ID, "out", r.output(ref))
		return
	}
	r.setOutput(n.ID, "out", value.Float(0))
}

func caseKey(k int) string {
	return "cases_" + strconv.Itoa(k)
}

// evalJoin packs a variadic set of "operands_K" scalar inputs into a single
// Vector.
func evalJoin(r *GraphRuntime, n *NodeSpec) {
	count := n.Params.OperandCount
	out := make([]float32, count)
	for k := 0; k < count; k++ {
		ref, ok := n.Inputs[operandKey(k)]
		if !ok {
			continue
		}
		f, _ := r.output(ref).AsFloat()
		out[k] = f
	}
	r.setOutput(n.ID, "out", value.Vector(out))
}
