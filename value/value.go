package value

import "fmt"

// Transform is a decomposed position/rotation/scale triple used for rigid
// transforms in the scene. Rotation is a unit quaternion (x, y, z, w).
type Transform struct {
	Pos   [3]float32
	Rot   [4]float32
	Scale [3]float32
}

// IdentityTransform returns the neutral transform: zero translation, unit
// scale, identity rotation.
func IdentityTransform() Transform {
	return Transform{
		Pos:   [3]float32{0, 0, 0},
		Rot:   [4]float32{0, 0, 0, 1},
		Scale: [3]float32{1, 1, 1},
	}
}

// Field is a single named entry of a Record, kept alongside the record's
// key order so iteration replays insertion order while lookups stay O(1)
// via the owning Value's index.
type Field struct {
	Key   string
	Value Value
}

// Value is the tagged-union runtime value described in the data model: a
// closed set of numeric leaves and structured containers. The zero Value is
// Float(0).
type Value struct {
	kind Kind

	f float32
	b bool
	s string
	// vec holds up to 4 float lanes for Vec2/Vec3/Vec4/Quat/ColorRgba.
	vec [4]float32
	tr  Transform
	// vector holds the dynamic-length payload for KindVector.
	vector []float32
	// fields holds the ordered payload for KindRecord.
	fields []Field
	// seq holds the ordered payload for Array/List/Tuple.
	seq []Value
	// enumTag/enumValue hold the KindEnum payload.
	enumTag   string
	enumValue *Value
}

// Kind returns the variant this Value currently holds.
func (v Value) Kind() Kind { return v.kind }

// Float constructs a scalar float Value.
func Float(f float32) Value { return Value{kind: KindFloat, f: f} }

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Text constructs a string Value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Vec2 constructs a 2-component vector Value.
func Vec2(x, y float32) Value { return Value{kind: KindVec2, vec: [4]float32{x, y, 0, 0}} }

// Vec3 constructs a 3-component vector Value.
func Vec3(x, y, z float32) Value { return Value{kind: KindVec3, vec: [4]float32{x, y, z, 0}} }

// Vec4 constructs a 4-component vector Value.
func Vec4(x, y, z, w float32) Value { return Value{kind: KindVec4, vec: [4]float32{x, y, z, w}} }

// Quat constructs a quaternion Value, stored as (x, y, z, w). Callers are
// responsible for normalizing inputs; kernels that produce quaternions
// always renormalize their own output.
func Quat(x, y, z, w float32) Value { return Value{kind: KindQuat, vec: [4]float32{x, y, z, w}} }

// IdentityQuat returns the identity rotation (0, 0, 0, 1).
func IdentityQuat() Value { return Quat(0, 0, 0, 1) }

// ColorRgba constructs an RGBA color Value.
func ColorRgba(r, g, b, a float32) Value {
	return Value{kind: KindColorRgba, vec: [4]float32{r, g, b, a}}
}

// NewTransform constructs a Transform Value.
func NewTransform(t Transform) Value { return Value{kind: KindTransform, tr: t} }

// Vector constructs a dynamic-length numeric vector Value. The slice is
// copied so the caller's backing array may be reused.
func Vector(data []float32) Value {
	cp := make([]float32, len(data))
	copy(cp, data)
	return Value{kind: KindVector, vector: cp}
}

// Record constructs a Record Value from ordered fields. The field order is
// the iteration order; Flatten/JSON encoding use lexicographic key order
// regardless of this order (per the data model's determinism rule).
func Record(fields ...Field) Value {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Value{kind: KindRecord, fields: cp}
}

// Array constructs a fixed-arity Array Value.
func Array(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, seq: cp}
}

// List constructs a variable-length List Value.
func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, seq: cp}
}

// Tuple constructs a heterogeneous Tuple Value.
func Tuple(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindTuple, seq: cp}
}

// Enum constructs a tagged-choice Value.
func Enum(tag string, boxed Value) Value {
	bv := boxed
	return Value{kind: KindEnum, enumTag: tag, enumValue: &bv}
}

// AsFloat returns the scalar payload and true when the Value is KindFloat.
func (v Value) AsFloat() (float32, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsBool returns the boolean payload and true when the Value is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsText returns the string payload and true when the Value is KindText.
func (v Value) AsText() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.s, true
}

// Lanes returns the up-to-4 float lanes backing Vec2/Vec3/Vec4/Quat/ColorRgba,
// and the lane count for the current kind (0 for anything else).
func (v Value) Lanes() ([4]float32, int) {
	switch v.kind {
	case KindVec2:
		return v.vec, 2
	case KindVec3:
		return v.vec, 3
	case KindVec4, KindQuat, KindColorRgba:
		return v.vec, 4
	default:
		return [4]float32{}, 0
	}
}

// AsTransform returns the Transform payload and true when the Value is
// KindTransform.
func (v Value) AsTransform() (Transform, bool) {
	if v.kind != KindTransform {
		return Transform{}, false
	}
	return v.tr, true
}

// AsVector returns the dynamic-length payload and true when the Value is
// KindVector. The returned slice aliases internal storage and must not be
// mutated by the caller.
func (v Value) AsVector() ([]float32, bool) {
	if v.kind != KindVector {
		return nil, false
	}
	return v.vector, true
}

// Fields returns the ordered field list and true when the Value is
// KindRecord. The returned slice aliases internal storage.
func (v Value) Fields() ([]Field, bool) {
	if v.kind != KindRecord {
		return nil, false
	}
	return v.fields, true
}

// Field looks up a record field by key, returning ok=false both when the
// Value isn't a record and when the key is absent.
func (v Value) Field(key string) (Value, bool) {
	if v.kind != KindRecord {
		return Value{}, false
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Seq returns the ordered element list and true when the Value is
// Array/List/Tuple. The returned slice aliases internal storage.
func (v Value) Seq() ([]Value, bool) {
	switch v.kind {
	case KindArray, KindList, KindTuple:
		return v.seq, true
	default:
		return nil, false
	}
}

// At returns the element at index i for Array/List/Tuple, or the zero Value
// and false when out of range or the wrong kind.
func (v Value) At(i int) (Value, bool) {
	seq, ok := v.Seq()
	if !ok || i < 0 || i >= len(seq) {
		return Value{}, false
	}
	return seq[i], true
}

// AsEnum returns the tag and boxed Value when the Value is KindEnum.
func (v Value) AsEnum() (string, Value, bool) {
	if v.kind != KindEnum {
		return "", Value{}, false
	}
	return v.enumTag, *v.enumValue, true
}

// Shape infers this Value's structural shape, recursing into containers so
// nested element/field shapes are available for coercion and broadcasting.
func (v Value) Shape() Shape {
	switch v.kind {
	case KindVector:
		return Shape{Kind: KindVector, Len: len(v.vector)}
	case KindRecord:
		s := Shape{Kind: KindRecord, Fields: make(map[string]Shape, len(v.fields)), FieldOrder: make([]string, 0, len(v.fields))}
		for _, f := range v.fields {
			s.Fields[f.Key] = f.Value.Shape()
			s.FieldOrder = append(s.FieldOrder, f.Key)
		}
		return s
	case KindArray, KindList, KindTuple:
		elems := make([]Shape, len(v.seq))
		for i, e := range v.seq {
			elems[i] = e.Shape()
		}
		return Shape{Kind: v.kind, Elems: elems}
	case KindEnum:
		inner := v.enumValue.Shape()
		return Shape{Kind: KindEnum, Elems: []Shape{inner}, EnumTag: v.enumTag}
	default:
		return Shape{Kind: v.kind}
	}
}

// String renders a compact debug representation; not used for wire encoding.
func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return fmt.Sprintf("Float(%g)", v.f)
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case KindText:
		return fmt.Sprintf("Text(%q)", v.s)
	case KindVec2:
		return fmt.Sprintf("Vec2(%g,%g)", v.vec[0], v.vec[1])
	case KindVec3:
		return fmt.Sprintf("Vec3(%g,%g,%g)", v.vec[0], v.vec[1], v.vec[2])
	case KindVec4:
		return fmt.Sprintf("Vec4(%g,%g,%g,%g)", v.vec[0], v.vec[1], v.vec[2], v.vec[3])
	case KindQuat:
		return fmt.Sprintf("Quat(%g,%g,%g,%g)", v.vec[0], v.vec[1], v.vec[2], v.vec[3])
	case KindColorRgba:
		return fmt.Sprintf("ColorRgba(%g,%g,%g,%g)", v.vec[0], v.vec[1], v.vec[2], v.vec[3])
	case KindTransform:
		return fmt.Sprintf("Transform(pos=%v,rot=%v,scale=%v)", v.tr.Pos, v.tr.Rot, v.tr.Scale)
	case KindVector:
		return fmt.Sprintf("Vector(%v)", v.vector)
	case KindRecord:
		return fmt.Sprintf("Record(%d fields)", len(v.fields))
	case KindArray:
		return fmt.Sprintf("Array(%d)", len(v.seq))
	case KindList:
		return fmt.Sprintf("List(%d)", len(v.seq))
	case KindTuple:
		return fmt.Sprintf("Tuple(%d)", len(v.seq))
	case KindEnum:
		return fmt.Sprintf("Enum(%s, %v)", v.enumTag, *v.enumValue)
	default:
		return "Value(?)"
	}
}
