// Package validation provides numeric sanitization for simulation
// configuration and per-tick inputs. The policy is to clamp invalid values
// (NaN, infinities, out-of-range) to the nearest legal value rather than
// reject them, so a bad config field can never crash or corrupt a tick.
package validation

import "math"

// Finite returns v unless it is NaN or infinite, in which case fallback
// is returned.
func Finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// NonNegative clamps v to be finite and >= 0.
func NonNegative(v float64) float64 {
	v = Finite(v, 0)
	if v < 0 {
		return 0
	}
	return v
}

// Positive clamps v to be finite and > 0, substituting fallback when it
// is not.
func Positive(v, fallback float64) float64 {
	v = Finite(v, fallback)
	if v <= 0 {
		return fallback
	}
	return v
}

// Clamp constrains v to [lo, hi], treating NaN as lo.
func Clamp(v, lo, hi float64) float64 {
	v = Finite(v, lo)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 constrains v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Axis clamps a control axis input to [-1, 1]. NaN reads as a centered
// axis, not full deflection.
func Axis(v float64) float64 {
	return Clamp(Finite(v, 0), -1, 1)
}

// TickDuration sanitizes a tick duration: NaN, infinite or negative
// durations become 0, which components treat as a no-op tick.
func TickDuration(dt float64) float64 {
	return NonNegative(dt)
}
