// Package animengine implements the multi-clip, multi-instance animation
// engine: clip storage, players that each drive a shared time base across
// a set of instances, loop-mode folding, and per-tick sampling into a
// blended write batch.
package animengine

import "errors"

// AnimId identifies a loaded clip within an Engine.
type AnimId uint32

// PlayerId identifies a playback cursor: one time base (speed, time, loop
// mode, optional window) shared by every Instance it hosts.
type PlayerId uint32

// InstId identifies one animation bound to a player: a weight, time scale,
// start offset, and enabled flag layered on top of the player's shared
// clock.
type InstId uint32

// LoopMode selects how a time value wraps once it reaches the end of its
// domain. Each instance folds the shared clock into its own clip's
// duration under the player's mode. On the player's own clock only
// LoopOnce has an effect (it clamps into the window); LoopRepeat and
// LoopPingPong players' clocks run on unwrapped.
type LoopMode int

const (
	// LoopOnce clamps at the domain's end instead of wrapping.
	LoopOnce LoopMode = iota
	// LoopRepeat wraps back to zero (or the end, for negative direction)
	// via modular arithmetic.
	LoopRepeat
	// LoopPingPong reflects back and forth between zero and the end
	// instead of wrapping.
	LoopPingPong
)

// ErrUnknownAnim is returned when an AnimId does not refer to a loaded clip.
var ErrUnknownAnim = errors.New("animengine: unknown animation id")

// ErrUnknownInstance is returned when an InstId does not refer to a live
// instance.
var ErrUnknownInstance = errors.New("animengine: unknown instance id")

// ErrUnknownPlayer is returned when a PlayerId does not refer to a live
// player.
var ErrUnknownPlayer = errors.New("animengine: unknown player id")
