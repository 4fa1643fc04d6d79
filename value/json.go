package value

import (
	"encoding/json"
	"fmt"
	"sort"
)

// transformJSON is the wire shape of a Transform's payload.
type transformJSON struct {
	Pos   [3]float32 `json:"pos"`
	Rot   [4]float32 `json:"rot"`
	Scale [3]float32 `json:"scale"`
}

// fieldJSON is one KindRecord entry on the wire; fields are emitted in
// lexicographic key order so JSON round-trips are deterministic regardless
// of the in-memory insertion order (see Value.MarshalJSON).
type fieldJSON struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type enumJSON struct {
	Tag   string          `json:"tag"`
	Value json.RawMessage `json:"value"`
}

// wireEnvelope is the new-code {"type":...,"data":...} form emitted by
// MarshalJSON.
type wireEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the Value using the {"type","data"} discriminated
// form described in the TypedPath wire format section. This is the only
// form emitters should produce; UnmarshalJSON additionally accepts the
// legacy single-key object form for backward compatibility with older host
// crates.
func (v Value) MarshalJSON() ([]byte, error) {
	data, err := v.marshalData()
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireEnvelope{Type: v.kind.String(), Data: data})
}

func (v Value) marshalData() (json.RawMessage, error) {
	switch v.kind {
	case KindFloat:
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	case KindText:
		return json.Marshal(v.s)
	case KindVec2:
		return json.Marshal([2]float32{v.vec[0], v.vec[1]})
	case KindVec3:
		return json.Marshal([3]float32{v.vec[0], v.vec[1], v.vec[2]})
	case KindVec4, KindQuat, KindColorRgba:
		return json.Marshal(v.vec)
	case KindTransform:
		return json.Marshal(transformJSON{Pos: v.tr.Pos, Rot: v.tr.Rot, Scale: v.tr.Scale})
	case KindVector:
		return json.Marshal(v.vector)
	case KindRecord:
		keys := make([]string, len(v.fields))
		for i, f := range v.fields {
			keys[i] = f.Key
		}
		sort.Strings(keys)
		out := make([]fieldJSON, 0, len(keys))
		for _, k := range keys {
			fv, _ := v.Field(k)
			raw, err := json.Marshal(fv)
			if err != nil {
				return nil, err
			}
			out = append(out, fieldJSON{Key: k, Value: raw})
		}
		return json.Marshal(out)
	case KindArray, KindList, KindTuple:
		out := make([]json.RawMessage, len(v.seq))
		for i, e := range v.seq {
			raw, err := json.Marshal(e)
			if err != nil {
				return nil, err
			}
			out[i] = raw
		}
		return json.Marshal(out)
	case KindEnum:
		raw, err := json.Marshal(*v.enumValue)
		if err != nil {
			return nil, err
		}
		return json.Marshal(enumJSON{Tag: v.enumTag, Value: raw})
	default:
		return nil, fmt.Errorf("value: unmarshalable kind %d", v.kind)
	}
}

// UnmarshalJSON decodes a Value from either the canonical {"type","data"}
// envelope or the legacy single-key outer object (e.g. {"vec3":[1,2,3]}),
// per the Open Question on value JSON forms: parsers accept both.
func (v *Value) UnmarshalJSON(b []byte) error {
	var env wireEnvelope
	if err := json.Unmarshal(b, &env); err == nil && env.Type != "" {
		return v.unmarshalTagged(env.Type, env.Data)
	}

	var legacy map[string]json.RawMessage
	if err := json.Unmarshal(b, &legacy); err != nil {
		return fmt.Errorf("value: invalid value json: %w", err)
	}
	if len(legacy) != 1 {
		return fmt.Errorf("value: legacy value object must have exactly one key, got %d", len(legacy))
	}
	for tag, data := range legacy {
		return v.unmarshalTagged(tag, data)
	}
	return fmt.Errorf("value: empty value object")
}

func (v *Value) unmarshalTagged(tag string, data json.RawMessage) error {
	kind, ok := kindFromTag(tag)
	if !ok {
		return fmt.Errorf("value: unknown value type %q", tag)
	}
	switch kind {
	case KindFloat:
		var f float32
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*v = Float(f)
	case KindBool:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case KindText:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case KindVec2:
		var a [2]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*v = Vec2(a[0], a[1])
	case KindVec3:
		var a [3]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*v = Vec3(a[0], a[1], a[2])
	case KindVec4:
		var a [4]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*v = Vec4(a[0], a[1], a[2], a[3])
	case KindQuat:
		var a [4]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*v = Quat(a[0], a[1], a[2], a[3])
	case KindColorRgba:
		var a [4]float32
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}
		*v = ColorRgba(a[0], a[1], a[2], a[3])
	case KindTransform:
		var t transformJSON
		if err := json.Unmarshal(data, &t); err != nil {
			return err
		}
		*v = NewTransform(Transform{Pos: t.Pos, Rot: t.Rot, Scale: t.Scale})
	case KindVector:
		var fs []float32
		if err := json.Unmarshal(data, &fs); err != nil {
			return err
		}
		*v = Vector(fs)
	case KindRecord:
		var fs []fieldJSON
		if err := json.Unmarshal(data, &fs); err != nil {
			return err
		}
		fields := make([]Field, len(fs))
		for i, f := range fs {
			var fv Value
			if err := json.Unmarshal(f.Value, &fv); err != nil {
				return err
			}
			fields[i] = Field{Key: f.Key, Value: fv}
		}
		*v = Record(fields...)
	case KindArray, KindList, KindTuple:
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return err
		}
		items := make([]Value, len(raws))
		for i, r := range raws {
			if err := json.Unmarshal(r, &items[i]); err != nil {
				return err
			}
		}
		switch kind {
		case KindArray:
			*v = Array(items...)
		case KindList:
			*v = List(items...)
		default:
			*v = Tuple(items...)
		}
	case KindEnum:
		var e enumJSON
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		var boxed Value
		if len(e.Value) > 0 {
			if err := json.Unmarshal(e.Value, &boxed); err != nil {
				return err
			}
		}
		*v = Enum(e.Tag, boxed)
	default:
		return fmt.Errorf("value: unhandled kind %d", kind)
	}
	return nil
}
