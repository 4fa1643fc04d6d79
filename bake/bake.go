// Package bake implements the offline baking path: sampling a clip's
// tracks at a fixed frame rate over a time window, in parallel across
// tracks, producing flat per-frame value (and optionally derivative)
// series suitable for export.
package bake

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/brindlerun/animaflow/animengine"
	"github.com/brindlerun/animaflow/clip"
	"github.com/brindlerun/animaflow/sampling"
	"github.com/brindlerun/animaflow/value"
)

// DefaultDerivativeEpsilon is the derivative epsilon a Config resolves to
// when it doesn't override it. The bake itself takes derivatives
// analytically through sampling.TrackWithDerivative and does not use the
// resolved epsilon.
const DefaultDerivativeEpsilon = 1.0 / 1024.0

// Config controls a bake pass over one clip.
type Config struct {
	// FrameRate is the target sample rate in Hz; non-finite or <= 0
	// falls back to 60.
	FrameRate float32
	// StartTime is clamped to >= 0.
	StartTime float32
	// EndTime, if set, is clamped to [StartTime, clip duration]; unset
	// defaults to the clip's duration.
	EndTime *float32
	// DerivativeEpsilon overrides DefaultDerivativeEpsilon when set and
	// finite and positive. It does not affect the baked derivatives, which
	// are analytic.
	DerivativeEpsilon *float32
}

// DefaultConfig returns the conventional 60Hz, full-clip bake
// configuration.
func DefaultConfig() Config {
	return Config{FrameRate: 60}
}

// Track is one track's baked value samples.
type Track struct {
	TargetPath string
	Values     []value.Value
}

// DerivativeTrack is one track's baked derivative samples, parallel to a
// Track's Values.
type DerivativeTrack struct {
	TargetPath string
	Values     []value.Value
}

// AnimationData is the result of baking a clip: per-track sampled values
// over [StartTime, EndTime] at FrameRate.
type AnimationData struct {
	Anim      animengine.AnimId
	FrameRate float32
	StartTime float32
	EndTime   float32
	Tracks    []Track
}

// DerivativeAnimationData parallels AnimationData with per-track
// derivative samples.
type DerivativeAnimationData struct {
	Anim      animengine.AnimId
	FrameRate float32
	StartTime float32
	EndTime   float32
	Tracks    []DerivativeTrack
}

func resolveFrameRate(cfg Config) float32 {
	fr := cfg.FrameRate
	if fr != fr || math.IsInf(float64(fr), 0) || fr <= 0 { // NaN, infinite or non-positive
		fr = 60
	}
	if fr < 1 {
		fr = 1
	}
	return fr
}

func resolveWindow(cfg Config, durationS float32) (start, end float32) {
	start = cfg.StartTime
	if start < 0 {
		start = 0
	}
	end = durationS
	if cfg.EndTime != nil {
		end = *cfg.EndTime
	}
	if end != end { // NaN
		end = durationS
	}
	if end > durationS {
		end = durationS
	}
	if end < start {
		end = start
	}
	return start, end
}

func resolveEpsilon(cfg Config) float32 {
	if cfg.DerivativeEpsilon == nil {
		return DefaultDerivativeEpsilon
	}
	eps := *cfg.DerivativeEpsilon
	if eps != eps || eps <= 0 {
		return DefaultDerivativeEpsilon
	}
	return eps
}

// Bake bakes values only, via BakeWithDerivatives and discarding the
// derivative half.
func Bake(anim animengine.AnimId, data clip.AnimationData, cfg Config) AnimationData {
	baked, _ := BakeWithDerivatives(anim, data, cfg)
	return baked
}

// BakeWithDerivatives bakes both values and derivatives, fanning the
// per-track work out across a bounded worker pool so a clip's tracks bake
// concurrently; workers are spun up for the call and torn down once every
// track has been sampled.
func BakeWithDerivatives(anim animengine.AnimId, data clip.AnimationData, cfg Config) (AnimationData, DerivativeAnimationData) {
	frameRate := resolveFrameRate(cfg)
	durationS := data.DurationSeconds()
	start, end := resolveWindow(cfg, durationS)
	span := end - start
	frameCount := int(math.Ceil(float64(span*frameRate))) + 1

	valueTracks := make([]Track, len(data.Tracks))
	derivTracks := make([]DerivativeTrack, len(data.Tracks))

	workers := max(runtime.NumCPU()-1, 1)
	pool := worker.NewDynamicWorkerPool(workers, len(data.Tracks)+1, time.Second)

	var wg sync.WaitGroup
	for i := range data.Tracks {
		wg.Add(1)
		idx := i
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				valueTracks[idx], derivTracks[idx] = bakeTrack(&data.Tracks[idx], frameCount, start, frameRate, durationS, cfg)
				return nil, nil
			},
		})
	}
	wg.Wait()

	return AnimationData{
			Anim: anim, FrameRate: frameRate, StartTime: start, EndTime: end, Tracks: valueTracks,
		}, DerivativeAnimationData{
			Anim: anim, FrameRate: frameRate, StartTime: start, EndTime: end, Tracks: derivTracks,
		}
}

func bakeTrack(tr *clip.Track, frameCount int, start, frameRate, durationS float32, cfg Config) (Track, DerivativeTrack) {
	_ = resolveEpsilon(cfg) // sampling.TrackWithDerivative uses its own analytic derivative; epsilon is reserved for a future finite-difference fallback path
	values := make([]value.Value, frameCount)
	derivatives := make([]value.Value, frameCount)
	for f := 0; f < frameCount; f++ {
		t := start + float32(f)/frameRate
		u := float32(0)
		if durationS > 0 {
			u = clamp01(t / durationS)
		}
		v, d := sampling.TrackWithDerivative(*tr, u, durationS)
		values[f] = v
		derivatives[f] = d
	}
	return Track{TargetPath: tr.AnimatableID, Values: values},
		DerivativeTrack{TargetPath: tr.AnimatableID, Values: derivatives}
}

func clamp01(f float32) float32 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
