// Package writebatch implements the ordered batch of (path, value, shape?)
// writes produced by every controller each tick. Append order is
// significant: within a batch and across batches merged in the same
// pass/controller order, the last write to a given path wins.
package writebatch

import (
	"encoding/json"

	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
)

// WriteOp is a single destination write: a canonical path, the value to
// write, and an optional declared shape (useful when the value's inferred
// shape is ambiguous, e.g. an empty Vector).
type WriteOp struct {
	Path  pathkey.TypedPath
	Value value.Value
	Shape *value.Shape
}

// WriteBatch is an ordered, append-only sequence of WriteOps.
type WriteBatch struct {
	ops []WriteOp
}

// Append adds op to the end of the batch.
func (b *WriteBatch) Append(op WriteOp) {
	b.ops = append(b.ops, op)
}

// AppendBatch appends every op of other, in order, to b.
func (b *WriteBatch) AppendBatch(other WriteBatch) {
	b.ops = append(b.ops, other.ops...)
}

// Ops returns the ordered operations. The returned slice aliases internal
// storage and must not be mutated.
func (b WriteBatch) Ops() []WriteOp { return b.ops }

// Len returns the number of operations in the batch.
func (b WriteBatch) Len() int { return len(b.ops) }

// writeOpJSON is the wire form of a WriteOp described in the external
// interfaces section.
type writeOpJSON struct {
	Path  string       `json:"path"`
	Value value.Value  `json:"value"`
	Shape *value.Shape `json:"shape,omitempty"`
}

// MarshalJSON encodes the batch as an ordered JSON array of WriteOp
// envelopes.
func (b WriteBatch) MarshalJSON() ([]byte, error) {
	out := make([]writeOpJSON, len(b.ops))
	for i, op := range b.ops {
		out[i] = writeOpJSON{Path: op.Path.String(), Value: op.Value, Shape: op.Shape}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a batch from its JSON array form, preserving order.
func (b *WriteBatch) UnmarshalJSON(raw []byte) error {
	var in []writeOpJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return err
	}
	ops := make([]WriteOp, len(in))
	for i, w := range in {
		p, err := pathkey.Parse(w.Path)
		if err != nil {
			return err
		}
		ops[i] = WriteOp{Path: p, Value: w.Value, Shape: w.Shape}
	}
	b.ops = ops
	return nil
}
