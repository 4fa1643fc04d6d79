// Package orchestrator ties the node-graph runtime and the animation
// engine together behind a shared Blackboard: a last-writer-wins map from
// path to value, stepped once per tick under a chosen Schedule.
package orchestrator

import (
	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
	"github.com/brindlerun/animaflow/writebatch"
	"github.com/gechr/clog"
)

// BlackboardEntry is one path's current value, together with the
// provenance of the write that produced it.
type BlackboardEntry struct {
	Value    value.Value
	Shape    *value.Shape
	Epoch    uint64
	Source   string
	Priority uint8
}

// ConflictLog records a path being overwritten: the entry that was there
// before, and the entry that replaced it. Blackboard writes are always
// last-writer-wins; a ConflictLog is produced purely for diagnostics, not
// to veto the write.
type ConflictLog struct {
	Path           pathkey.TypedPath
	PreviousValue  *value.Value
	PreviousShape  *value.Shape
	PreviousEpoch  *uint64
	PreviousSource *string
	NewValue       value.Value
	NewShape       *value.Shape
	NewEpoch       uint64
	NewSource      string
}

// Blackboard is the shared, path-keyed value store every graph and
// animation controller reads from and writes to each tick.
type Blackboard struct {
	inner map[string]blackboardSlot
}

// blackboardSlot pairs a parsed path with its entry, so Iter can hand back
// the TypedPath without reparsing its string key.
type blackboardSlot struct {
	path  pathkey.TypedPath
	entry BlackboardEntry
}

// NewBlackboard constructs an empty Blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{inner: make(map[string]blackboardSlot)}
}

// Set parses path and stores v (with optional declared shape) at the given
// epoch and source. A malformed path is a no-op, not an error: host input
// is treated as fail-soft, matching the rest of the runtime's boundary
// behavior.
func (b *Blackboard) Set(path string, v value.Value, shape *value.Shape, epoch uint64, source string) {
	p, err := pathkey.Parse(path)
	if err != nil {
		return
	}
	b.SetEntry(p, BlackboardEntry{Value: v, Shape: shape, Epoch: epoch, Source: source})
}

// SetEntry unconditionally overwrites path's entry, returning the entry
// that was previously there, if any.
func (b *Blackboard) SetEntry(path pathkey.TypedPath, entry BlackboardEntry) (previous BlackboardEntry, hadPrevious bool) {
	key := path.String()
	slot, ok := b.inner[key]
	b.inner[key] = blackboardSlot{path: path, entry: entry}
	if ok {
		return slot.entry, true
	}
	return BlackboardEntry{}, false
}

// Get looks up path's current entry. Returns ok=false both when path fails
// to parse and when no entry exists for it.
func (b *Blackboard) Get(path string) (BlackboardEntry, bool) {
	p, err := pathkey.Parse(path)
	if err != nil {
		return BlackboardEntry{}, false
	}
	slot, ok := b.inner[p.String()]
	return slot.entry, ok
}

// Remove deletes path's entry, returning it if one existed.
func (b *Blackboard) Remove(path pathkey.TypedPath) (BlackboardEntry, bool) {
	key := path.String()
	slot, ok := b.inner[key]
	if ok {
		delete(b.inner, key)
	}
	return slot.entry, ok
}

// Iter calls fn once per (path, entry) pair currently on the blackboard.
func (b *Blackboard) Iter(fn func(pathkey.TypedPath, BlackboardEntry)) {
	for _, slot := range b.inner {
		fn(slot.path, slot.entry)
	}
}

// ApplyWriteBatch overwrites the blackboard with every op in batch,
// unconditionally (last-writer-wins), recording a ConflictLog for each
// path that already held an entry.
func (b *Blackboard) ApplyWriteBatch(batch writebatch.WriteBatch, epoch uint64, source string) []ConflictLog {
	var conflicts []ConflictLog
	for _, op := range batch.Ops() {
		newEntry := BlackboardEntry{Value: op.Value, Shape: op.Shape, Epoch: epoch, Source: source}
		previous, hadPrevious := b.SetEntry(op.Path, newEntry)
		if !hadPrevious {
			continue
		}
		conflicts = append(conflicts, ConflictLog{
			Path:           op.Path,
			PreviousValue:  &previous.Value,
			PreviousShape:  previous.Shape,
			PreviousEpoch:  &previous.Epoch,
			PreviousSource: &previous.Source,
			NewValue:       newEntry.Value,
			NewShape:       newEntry.Shape,
			NewEpoch:       epoch,
			NewSource:      source,
		})
		clog.Debug().Str("path", op.Path.String()).Str("previous_source", previous.Source).
			Str("new_source", source).Uint64("epoch", epoch).Msg("blackboard write conflict")
	}
	return conflicts
}
