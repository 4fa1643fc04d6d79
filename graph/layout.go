// Package graph implements the node-graph runtime: a dataflow evaluator
// over a directed acyclic graph of nodes, each reading named input ports
// and producing named output ports, with a handful of node kinds carrying
// integration state across ticks.
package graph

import "github.com/brindlerun/animaflow/value"

// PortValue is an evaluated node output paired with its inferred Shape, so
// downstream nodes can align/broadcast without re-deriving it from the
// Value every time.
type PortValue struct {
	Value value.Value
	Shape value.Shape
}

// NewPortValue constructs a PortValue, inferring its Shape from v.
func NewPortValue(v value.Value) PortValue {
	return PortValue{Value: v, Shape: v.Shape()}
}

// FlatValue is a Value's numeric content flattened into a contiguous
// row-major buffer, alongside the Shape describing how to reconstruct it.
// Used by the stateful integration nodes (Spring/Damp/Slew) and by the
// arithmetic/broadcast helpers, which operate on flat float32 slices rather
// than recursing through the tagged union on every tick.
type FlatValue struct {
	Shape value.Shape
	Data  []float32
}

// Flatten reduces v to its numeric content. ok is false when v contains a
// non-numeric leaf (Bool/Text/Enum) anywhere in its structure, since those
// have no flat representation.
func Flatten(v value.Value) (FlatValue, bool) {
	switch v.Kind() {
	case value.KindFloat:
		f, _ := v.AsFloat()
		return FlatValue{Shape: value.Shape{Kind: value.KindFloat}, Data: []float32{f}}, true
	case value.KindVec2, value.KindVec3, value.KindVec4, value.KindQuat, value.KindColorRgba:
		lanes, n := v.Lanes()
		return FlatValue{Shape: value.Shape{Kind: v.Kind()}, Data: append([]float32(nil), lanes[:n]...)}, true
	case value.KindTransform:
		tr, _ := v.AsTransform()
		data := make([]float32, 0, 10)
		data = append(data, tr.Pos[:]...)
		data = append(data, tr.Rot[:]...)
		data = append(data, tr.Scale[:]...)
		return FlatValue{Shape: value.Shape{Kind: value.KindTransform}, Data: data}, true
	case value.KindVector:
		vec, _ := v.AsVector()
		return FlatValue{Shape: value.Shape{Kind: value.KindVector, Len: len(vec)}, Data: append([]float32(nil), vec...)}, true
	case value.KindRecord:
		fields, _ := v.Fields()
		ordered := append([]value.Field(nil), fields...)
		sortFieldsByKey(ordered)
		shape := value.Shape{Kind: value.KindRecord, Fields: make(map[string]value.Shape, len(ordered)), FieldOrder: make([]string, 0, len(ordered))}
		var data []float32
		for _, f := range ordered {
			flat, ok := Flatten(f.Value)
			if !ok {
				return FlatValue{}, false
			}
			shape.Fields[f.Key] = flat.Shape
			shape.FieldOrder = append(shape.FieldOrder, f.Key)
			data = append(data, flat.Data...)
		}
		return FlatValue{Shape: shape, Data: data}, true
	case value.KindArray, value.KindTuple, value.KindList:
		seq, _ := v.Seq()
		shape := value.Shape{Kind: v.Kind(), Elems: make([]value.Shape, 0, len(seq))}
		var data []float32
		for _, item := range seq {
			flat, ok := Flatten(item)
			if !ok {
				return FlatValue{}, false
			}
			shape.Elems = append(shape.Elems, flat.Shape)
			data = append(data, flat.Data...)
		}
		return FlatValue{Shape: shape, Data: data}, true
	default:
		return FlatValue{}, false
	}
}

func sortFieldsByKey(fields []value.Field) {
	for i := 1; i < len(fields); i++ {
		for j := i; j > 0 && fields[j-1].Key > fields[j].Key; j-- {
			fields[j-1], fields[j] = fields[j], fields[j-1]
		}
	}
}

// Reconstruct rebuilds a structured Value from a flat numeric buffer
// according to shape. Missing trailing data is treated as zero.
func Reconstruct(shape value.Shape, data []float32) value.Value {
	at := func(i int) float32 {
		if i < len(data) {
			return data[i]
		}
		return 0
	}
	switch shape.Kind {
	case value.KindFloat:
		return value.Float(at(0))
	case value.KindVec2:
		return value.Vec2(at(0), at(1))
	case value.KindVec3:
		return value.Vec3(at(0), at(1), at(2))
	case value.KindVec4:
		return value.Vec4(at(0), at(1), at(2), at(3))
	case value.KindQuat:
		return value.Quat(at(0), at(1), at(2), at(3))
	case value.KindColorRgba:
		return value.ColorRgba(at(0), at(1), at(2), at(3))
	case value.KindTransform:
		return value.NewTransform(value.Transform{
			Pos:   [3]float32{at(0), at(1), at(2)},
			Rot:   [4]float32{at(3), at(4), at(5), at(6)},
			Scale: [3]float32{at(7), at(8), at(9)},
		})
	case value.KindVector:
		out := make([]float32, shape.Len)
		for i := range out {
			out[i] = at(i)
		}
		return value.Vector(out)
	case value.KindRecord:
		offset := 0
		fields := make([]value.Field, 0, len(shape.FieldOrder))
		for _, k := range shape.FieldOrder {
			fs := shape.Fields[k]
			n := fs.ScalarLen()
			fields = append(fields, value.Field{Key: k, Value: Reconstruct(fs, sliceFrom(data, offset, n))})
			offset += n
		}
		return value.Record(fields...)
	case value.KindArray, value.KindTuple, value.KindList:
		offset := 0
		items := make([]value.Value, len(shape.Elems))
		for i, es := range shape.Elems {
			n := es.ScalarLen()
			items[i] = Reconstruct(es, sliceFrom(data, offset, n))
			offset += n
		}
		switch shape.Kind {
		case value.KindArray:
			return value.Array(items...)
		case value.KindList:
			return value.List(items...)
		default:
			return value.Tuple(items...)
		}
	default:
		return value.Float(0)
	}
}

func sliceFrom(data []float32, offset, n int) []float32 {
	if offset >= len(data) {
		return nil
	}
	end := offset + n
	if end > len(data) {
		end = len(data)
	}
	return data[offset:end]
}

// Align broadcasts two flat values for point-wise binary operations: equal
// shapes pass through unchanged, a scalar operand is repeated to match the
// other operand's length, and otherwise the wider operand's shape wins with
// ok=false (mismatched, non-broadcastable) signaled via the returned bool.
func Align(a, b FlatValue) (shape value.Shape, ad, bd []float32, ok bool) {
	if a.Shape.Equal(b.Shape) {
		return a.Shape, a.Data, b.Data, true
	}
	if a.Shape.Kind == value.KindFloat {
		v := float32(0)
		if len(a.Data) > 0 {
			v = a.Data[0]
		}
		return b.Shape, repeat(v, b.Shape.ScalarLen()), b.Data, true
	}
	if b.Shape.Kind == value.KindFloat {
		v := float32(0)
		if len(b.Data) > 0 {
			v = b.Data[0]
		}
		return a.Shape, a.Data, repeat(v, a.Shape.ScalarLen()), true
	}
	if a.Shape.ScalarLen() >= b.Shape.ScalarLen() {
		return a.Shape, a.Data, b.Data, false
	}
	return b.Shape, a.Data, b.Data, false
}

func repeat(v float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}
