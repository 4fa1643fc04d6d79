package value

// Shape describes a Value's structure without payload: the same Kind
// variants, recursing into container element/field shapes. Shapes drive
// coercion, broadcasting, and graph-node layout reconstruction.
type Shape struct {
	Kind Kind

	// Len is the element count for KindVector.
	Len int

	// Fields and FieldOrder describe KindRecord: Fields maps field name to
	// its shape, FieldOrder preserves the record's declared insertion order.
	Fields     map[string]Shape
	FieldOrder []string

	// Elems describes KindArray/KindList/KindTuple element shapes. For
	// KindList all elements are expected to share a shape; only Elems[0] is
	// authoritative when non-empty.
	Elems []Shape

	// EnumTag names the active case for KindEnum; Elems[0] is its shape.
	EnumTag string
}

// Zero constructs the canonical zero-valued Value for this shape: Float(0)
// for scalars, IdentityQuat for quaternions, identity Transform, empty
// containers of the declared arity, and so on. Used for MissingInput and
// Input-node fallback.
func (s Shape) Zero() Value {
	switch s.Kind {
	case KindFloat:
		return Float(0)
	case KindBool:
		return Bool(false)
	case KindText:
		return Text("")
	case KindVec2:
		return Vec2(0, 0)
	case KindVec3:
		return Vec3(0, 0, 0)
	case KindVec4:
		return Vec4(0, 0, 0, 0)
	case KindQuat:
		return IdentityQuat()
	case KindColorRgba:
		return ColorRgba(0, 0, 0, 0)
	case KindTransform:
		return NewTransform(IdentityTransform())
	case KindVector:
		return Vector(make([]float32, s.Len))
	case KindRecord:
		fields := make([]Field, 0, len(s.FieldOrder))
		for _, k := range s.FieldOrder {
			fields = append(fields, Field{Key: k, Value: s.Fields[k].Zero()})
		}
		return Record(fields...)
	case KindArray:
		items := make([]Value, len(s.Elems))
		for i, e := range s.Elems {
			items[i] = e.Zero()
		}
		return Array(items...)
	case KindList:
		return List()
	case KindTuple:
		items := make([]Value, len(s.Elems))
		for i, e := range s.Elems {
			items[i] = e.Zero()
		}
		return Tuple(items...)
	case KindEnum:
		var inner Value
		if len(s.Elems) > 0 {
			inner = s.Elems[0].Zero()
		}
		return Enum(s.EnumTag, inner)
	default:
		return Float(0)
	}
}

// ScalarLen returns the number of float32 slots needed to flatten a Value
// of this shape into a contiguous numeric buffer (see the graph package's
// layout helpers). Non-numeric leaves (Bool/Text/Enum) count as zero.
func (s Shape) ScalarLen() int {
	switch s.Kind {
	case KindFloat:
		return 1
	case KindVec2:
		return 2
	case KindVec3:
		return 3
	case KindVec4, KindQuat, KindColorRgba:
		return 4
	case KindTransform:
		return 10
	case KindVector:
		return s.Len
	case KindRecord:
		n := 0
		for _, k := range s.FieldOrder {
			n += s.Fields[k].ScalarLen()
		}
		return n
	case KindArray, KindTuple:
		n := 0
		for _, e := range s.Elems {
			n += e.ScalarLen()
		}
		return n
	default:
		return 0
	}
}

// Equal reports structural equality: same Kind, and for containers the same
// arity/field names and recursively equal element shapes. Field iteration
// order does not affect equality.
func (s Shape) Equal(o Shape) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case KindVector:
		return s.Len == o.Len
	case KindRecord:
		if len(s.Fields) != len(o.Fields) {
			return false
		}
		for k, sv := range s.Fields {
			ov, ok := o.Fields[k]
			if !ok || !sv.Equal(ov) {
				return false
			}
		}
		return true
	case KindArray, KindTuple:
		if len(s.Elems) != len(o.Elems) {
			return false
		}
		for i := range s.Elems {
			if !s.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case KindList:
		if len(s.Elems) == 0 || len(o.Elems) == 0 {
			return true
		}
		return s.Elems[0].Equal(o.Elems[0])
	case KindEnum:
		if s.EnumTag != o.EnumTag {
			return false
		}
		if len(s.Elems) == 0 || len(o.Elems) == 0 {
			return true
		}
		return s.Elems[0].Equal(o.Elems[0])
	default:
		return true
	}
}
