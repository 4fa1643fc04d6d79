package animengine

import "math"

// advancePlayerTime moves a player's own clock forward by dt*speed. A
// player in LoopOnce mode additionally clamps into its [start, end]
// window; Loop/PingPong players free-run, since the clamp-equivalent
// folding happens per instance against that instance's own clip duration.
func advancePlayerTime(t, dt, speed float32, mode LoopMode, start, end float32) float32 {
	t += dt * speed
	if mode != LoopOnce {
		return t
	}
	if t > end {
		return end
	}
	if t < start {
		return start
	}
	return t
}

// foldLocal folds a local time value into an instance's own clip duration
// under the player's loop mode. A non-positive duration holds time at
// zero.
func foldLocal(localT, duration float32, mode LoopMode) float32 {
	if duration <= 0 {
		return 0
	}
	switch mode {
	case LoopRepeat:
		return fmodPositive(localT, duration)
	case LoopPingPong:
		return pingPong(localT, duration)
	default: // LoopOnce
		if localT > duration {
			return duration
		}
		if localT < 0 {
			return 0
		}
		return localT
	}
}

// fmodPositive is floating-point modulo that always returns a result in
// [0, m), matching the data model's wrap semantics for negative speeds.
func fmodPositive(t, m float32) float32 {
	r := mod32(t, m)
	if r < 0 {
		r += m
	}
	return r
}

// pingPong reflects t back and forth across [0, length], the standard
// double-period-fold construction: fold into [0, 2*length) then mirror the
// back half.
func pingPong(t, length float32) float32 {
	period := 2 * length
	t = fmodPositive(t, period)
	if t < 0 {
		t += period
	}
	if t > length {
		return period - t
	}
	return t
}

func mod32(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return float32(math.Mod(float64(a), float64(b)))
}
