// Package clip implements the stored-clip data model: AnimationData, its
// Tracks and Keypoints, and the JSON parser that validates stamp
// monotonicity and duration at load time per the data model's invariants.
package clip

import (
	"errors"
	"fmt"

	"github.com/brindlerun/animaflow/value"
)

// ErrInvalidDuration is returned when a clip's duration is not positive.
var ErrInvalidDuration = errors.New("clip: duration_ms must be > 0")

// ErrNonMonotonicStamps is returned when a track's keypoint stamps are not
// non-decreasing.
var ErrNonMonotonicStamps = errors.New("clip: keypoint stamps must be non-decreasing")

// ErrStampOutOfRange is returned when a keypoint stamp is not finite or not
// in [0,1].
var ErrStampOutOfRange = errors.New("clip: keypoint stamp must be finite and in [0,1]")

// ErrInterpolationMismatch is returned when adjacent keypoints in a track
// carry values of different kinds; clips are built once and kind must be
// stable across a track's keypoints (the spec's InterpolationMismatch
// error, raised at clip-build time rather than at sampling time).
var ErrInterpolationMismatch = errors.New("clip: adjacent keypoints must share a value kind")

// ControlPoint is a single cubic-Bezier control point in normalized
// time/value space.
type ControlPoint struct {
	X, Y float32
}

// Transitions holds the optional per-side Bezier control points for a
// keypoint. A nil In/Out falls back to the standard ease-in/out default
// documented in the sampling contract.
type Transitions struct {
	In  *ControlPoint
	Out *ControlPoint
}

// Keypoint is a single sample in a Track: a normalized stamp in [0,1], a
// structured value, and optional per-side Bezier transitions.
type Keypoint struct {
	ID          string
	Stamp       float32
	Value       value.Value
	Transitions Transitions
}

// Track is one animated channel within a clip, addressed by AnimatableID
// (a canonical path string consumed by the binding layer).
type Track struct {
	ID           string
	Name         string
	AnimatableID string
	Points       []Keypoint
	Settings     map[string]any
}

// AnimationData is a stored clip: a named, duration-bounded collection of
// Tracks.
type AnimationData struct {
	ID         string
	Name       string
	DurationMs uint32
	Tracks     []Track
	Groups     any
}

// DurationSeconds returns the clip's duration in seconds.
func (a AnimationData) DurationSeconds() float32 {
	return float32(a.DurationMs) / 1000.0
}

// Validate checks the invariants enforced at load time: duration_ms > 0,
// every keypoint stamp finite and in [0,1], stamps non-decreasing per
// track, and adjacent keypoints sharing a value kind.
func (a AnimationData) Validate() error {
	if a.DurationMs == 0 {
		return ErrInvalidDuration
	}
	for ti, tr := range a.Tracks {
		prevStamp := float32(-1)
		for pi, kp := range tr.Points {
			if !isFiniteStamp(kp.Stamp) {
				return fmt.Errorf("%w: track %d (%s) point %d", ErrStampOutOfRange, ti, tr.ID, pi)
			}
			if kp.Stamp < prevStamp {
				return fmt.Errorf("%w: track %d (%s) point %d", ErrNonMonotonicStamps, ti, tr.ID, pi)
			}
			prevStamp = kp.Stamp
			if pi > 0 && tr.Points[pi-1].Value.Kind() != kp.Value.Kind() {
				return fmt.Errorf("%w: track %d (%s) between points %d and %d", ErrInterpolationMismatch, ti, tr.ID, pi-1, pi)
			}
		}
	}
	return nil
}

func isFiniteStamp(s float32) bool {
	if s != s { // NaN
		return false
	}
	return s >= 0 && s <= 1
}
