package animengine

import (
	"sort"

	"github.com/brindlerun/animaflow/pathkey"
	"github.com/brindlerun/animaflow/value"
	"github.com/brindlerun/animaflow/writebatch"
)

// Change is one blended sample destined for a single write target,
// produced by one player's accumulator.
type Change struct {
	Player PlayerId
	Path   pathkey.TypedPath
	Value  value.Value
}

// EventKind discriminates the discrete, non-value signals a tick can raise
// alongside its sampled Entries.
type EventKind int

const (
	// EventPlaybackEnded fires the tick a LoopOnce player's time reaches
	// its window's end.
	EventPlaybackEnded EventKind = iota
)

// Event is a discrete signal raised during Update, separate from the
// continuous per-path Entries.
type Event struct {
	Kind   EventKind
	Player PlayerId
}

// Outputs is the result of one Engine.Update call: one Change per
// TargetHandle any player wrote to this tick, already blended across that
// player's enabled instances, plus any discrete Events raised this tick
// (e.g. a LoopOnce player finishing).
type Outputs struct {
	Entries []Change
	Events  []Event
}

// ToWriteBatch converts the outputs into an ordered WriteBatch, sorted by
// path for determinism regardless of player/instance iteration order.
func (o *Outputs) ToWriteBatch() writebatch.WriteBatch {
	entries := make([]Change, len(o.Entries))
	copy(entries, o.Entries)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path.Less(entries[j].Path)
	})

	var batch writebatch.WriteBatch
	for _, e := range entries {
		batch.Append(writebatch.WriteOp{Path: e.Path, Value: e.Value})
	}
	return batch
}
