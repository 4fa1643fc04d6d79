// Package value implements the tagged-union runtime value carried between
// clips, the graph runtime, and the blackboard. Every Value is one of a
// closed set of Kinds; structured containers preserve insertion order so
// downstream flattening and JSON encoding stay deterministic.
package value

// Kind identifies which variant a Value or Shape currently holds.
type Kind int

const (
	// KindFloat is a scalar float32.
	KindFloat Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindText is a UTF-8 string.
	KindText
	// KindVec2 is a 2-component float vector.
	KindVec2
	// KindVec3 is a 3-component float vector.
	KindVec3
	// KindVec4 is a 4-component float vector.
	KindVec4
	// KindQuat is a unit quaternion stored as (x, y, z, w).
	KindQuat
	// KindColorRgba is a 4-component color.
	KindColorRgba
	// KindTransform is a decomposed position/rotation/scale triple.
	KindTransform
	// KindVector is a dynamic-length float slice.
	KindVector
	// KindRecord is a string-keyed mapping of named Values with insertion order.
	KindRecord
	// KindArray is a fixed-arity ordered sequence of Values.
	KindArray
	// KindList is a variable-length ordered sequence of Values.
	KindList
	// KindTuple is a heterogeneous ordered sequence of Values.
	KindTuple
	// KindEnum is a tagged choice carrying exactly one boxed Value.
	KindEnum
)

// String renders the Kind's canonical lowercase tag, used both for debug
// output and as the discriminator in the {"type":...} JSON encoding.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindVec4:
		return "vec4"
	case KindQuat:
		return "quat"
	case KindColorRgba:
		return "color_rgba"
	case KindTransform:
		return "transform"
	case KindVector:
		return "vector"
	case KindRecord:
		return "record"
	case KindArray:
		return "array"
	case KindList:
		return "list"
	case KindTuple:
		return "tuple"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether the kind carries one or more float32 lanes that
// component-wise kernels (lerp, arithmetic, accumulation) can operate on
// directly, without per-kind special casing.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindFloat, KindVec2, KindVec3, KindVec4, KindQuat, KindColorRgba, KindVector:
		return true
	default:
		return false
	}
}

// IsDiscrete reports whether the kind uses step (hold-left/hold-right)
// semantics rather than continuous blending.
func (k Kind) IsDiscrete() bool {
	switch k {
	case KindBool, KindText, KindEnum:
		return true
	default:
		return false
	}
}

// kindFromTag resolves the wire discriminator string back to a Kind.
// Unknown tags return (_, false) so callers can surface InvalidValue.
func kindFromTag(tag string) (Kind, bool) {
	switch tag {
	case "float":
		return KindFloat, true
	case "bool":
		return KindBool, true
	case "text":
		return KindText, true
	case "vec2":
		return KindVec2, true
	case "vec3":
		return KindVec3, true
	case "vec4":
		return KindVec4, true
	case "quat":
		return KindQuat, true
	case "color_rgba", "color":
		return KindColorRgba, true
	case "transform":
		return KindTransform, true
	case "vector":
		return KindVector, true
	case "record":
		return KindRecord, true
	case "array":
		return KindArray, true
	case "list":
		return KindList, true
	case "tuple":
		return KindTuple, true
	case "enum":
		return KindEnum, true
	default:
		return KindFloat, false
	}
}
