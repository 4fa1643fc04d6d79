package animengine

import (
	"github.com/brindlerun/animaflow/clip"
	"github.com/brindlerun/animaflow/pathkey"
)

// ChannelKey names one track within one loaded clip, the unit a Resolver
// and a BindingTable both key on.
type ChannelKey struct {
	Anim     AnimId
	TrackIdx int
}

// Resolver maps a clip's track to a host-assigned write destination.
// Returning ok=false leaves that channel's binding untouched (falls back
// to the track's own AnimatableID), matching "resolver may throw; the
// engine ignores failures".
type Resolver func(key ChannelKey, animatableID string) (pathkey.TypedPath, bool)

// BindingTable is the per-clip cache of parsed write destinations for each
// track, built eagerly at LoadAnimation time from the track's own
// AnimatableID and optionally overridden later via Prebind.
type BindingTable struct {
	paths []pathkey.TypedPath // indexed by track position; zero value means unbound
	bound []bool
}

// buildDefaultBindingTable parses every track's AnimatableID into a
// TypedPath as the table's initial contents. Tracks whose AnimatableID
// fails to parse are left unbound; a clip already passed clip.Validate by
// the time it reaches here, and a malformed binding target is a wiring
// error in the scene, not a corrupt clip.
func buildDefaultBindingTable(data *clip.AnimationData) BindingTable {
	bt := BindingTable{
		paths: make([]pathkey.TypedPath, len(data.Tracks)),
		bound: make([]bool, len(data.Tracks)),
	}
	for i := range data.Tracks {
		p, err := pathkey.Parse(data.Tracks[i].AnimatableID)
		if err != nil {
			continue
		}
		bt.paths[i] = p
		bt.bound[i] = true
	}
	return bt
}

// handleFor resolves track i's write destination, falling back to
// reparsing its AnimatableID if the table holds no binding for it.
func (bt *BindingTable) handleFor(i int, tr *clip.Track) (pathkey.TypedPath, bool) {
	if i < len(bt.bound) && bt.bound[i] {
		return bt.paths[i], true
	}
	return pathkey.Parse(tr.AnimatableID)
}

// applyResolver upserts resolver overrides into the table, ignoring
// channels the resolver declines to resolve.
func (bt *BindingTable) applyResolver(anim AnimId, data *clip.AnimationData, resolve Resolver) {
	for i := range data.Tracks {
		p, ok := resolve(ChannelKey{Anim: anim, TrackIdx: i}, data.Tracks[i].AnimatableID)
		if !ok {
			continue
		}
		bt.paths[i] = p
		bt.bound[i] = true
	}
}
