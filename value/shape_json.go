package value

import "encoding/json"

// shapeJSON is the wire form of a Shape: {"type": "...", ...kind-specific}.
type shapeJSON struct {
	Type       string               `json:"type"`
	Len        int                  `json:"len,omitempty"`
	Fields     map[string]shapeJSON `json:"fields,omitempty"`
	FieldOrder []string             `json:"field_order,omitempty"`
	Elems      []shapeJSON          `json:"elems,omitempty"`
	EnumTag    string               `json:"enum_tag,omitempty"`
}

// MarshalJSON encodes the Shape for diagnostics/host transport.
func (s Shape) MarshalJSON() ([]byte, error) {
	w := shapeJSON{Type: s.Kind.String(), Len: s.Len, FieldOrder: s.FieldOrder, EnumTag: s.EnumTag}
	if s.Fields != nil {
		w.Fields = make(map[string]shapeJSON, len(s.Fields))
		for k, fs := range s.Fields {
			var buf shapeJSON
			b, err := fs.MarshalJSON()
			if err != nil {
				return nil, err
			}
			if err := json.Unmarshal(b, &buf); err != nil {
				return nil, err
			}
			w.Fields[k] = buf
		}
	}
	if s.Elems != nil {
		w.Elems = make([]shapeJSON, len(s.Elems))
		for i, e := range s.Elems {
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			var buf shapeJSON
			if err := json.Unmarshal(b, &buf); err != nil {
				return nil, err
			}
			w.Elems[i] = buf
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a Shape from its wire form.
func (s *Shape) UnmarshalJSON(b []byte) error {
	var w shapeJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	kind, ok := kindFromTag(w.Type)
	if !ok {
		return &InvalidShapeError{Tag: w.Type}
	}
	out := Shape{Kind: kind, Len: w.Len, FieldOrder: w.FieldOrder, EnumTag: w.EnumTag}
	if w.Fields != nil {
		out.Fields = make(map[string]Shape, len(w.Fields))
		for k, fs := range w.Fields {
			var inner Shape
			b2, err := json.Marshal(fs)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(b2, &inner); err != nil {
				return err
			}
			out.Fields[k] = inner
		}
	}
	if w.Elems != nil {
		out.Elems = make([]Shape, len(w.Elems))
		for i, e := range w.Elems {
			b2, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(b2, &out.Elems[i]); err != nil {
				return err
			}
		}
	}
	*s = out
	return nil
}

// InvalidShapeError reports an unrecognized shape type tag on the wire.
type InvalidShapeError struct {
	Tag string
}

func (e *InvalidShapeError) Error() string {
	return "value: unknown shape type " + e.Tag
}
