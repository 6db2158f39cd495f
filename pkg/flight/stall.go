// pkg/flight/stall.go
package flight

import (
	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

// StallParams configures the stall state machine.
//
// The dynamic threshold is:
//
//	threshold = BaseStallSpeed * (1 - ThrottleRelief*throttle)
//
// so holding full throttle lowers the speed at which the ship stalls by
// the configured relief fraction. Hysteresis widens the exit condition:
// the ship leaves the stall only once speed >= threshold + Hysteresis.
// A zero Hysteresis reproduces single-threshold behavior.
type StallParams struct {
	BaseStallSpeed   float64 // units/second below which the ship stalls
	ThrottleRelief   float64 // 0..1 fraction of threshold removed at full throttle
	Hysteresis       float64 // extra speed required to exit the stall
	TransitionRate   float64 // blend units/second toward 0 or 1
	StalledAuthority float64 // 0..1 control fraction remaining at full stall
}

// StallController tracks the stall state of one ship: a boolean state,
// a dynamic threshold and a continuous blend factor consumed by the
// flight controller (control authority) and the camera rig (look-at).
type StallController struct {
	params    StallParams
	stalled   bool
	blend     float64
	threshold float64
}

// NewStallController creates a stall controller with sanitized parameters.
func NewStallController(params StallParams) *StallController {
	return &StallController{
		params:    SanitizeStallParams(params),
		threshold: params.BaseStallSpeed,
	}
}

// Update advances the stall state for one tick given the ship's current
// speed and throttle setting. The blend factor moves toward its target at
// a bounded rate and is always in [0, 1].
func (s *StallController) Update(speed, throttle, dt float64) {
	dt = validation.TickDuration(dt)
	throttle = validation.Clamp01(throttle)

	s.threshold = s.params.BaseStallSpeed * (1 - s.params.ThrottleRelief*throttle)

	if s.stalled {
		if speed >= s.threshold+s.params.Hysteresis {
			s.stalled = false
		}
	} else if speed < s.threshold {
		s.stalled = true
	}

	target := 0.0
	if s.stalled {
		target = 1.0
	}
	maxStep := s.params.TransitionRate * dt
	diff := target - s.blend
	if diff > maxStep {
		diff = maxStep
	} else if diff < -maxStep {
		diff = -maxStep
	}
	s.blend = physics.Clamp01(s.blend + diff)
}

// IsStalled returns true while the ship is in the stalled state.
func (s *StallController) IsStalled() bool {
	return s.stalled
}

// Blend returns the continuous stall blend factor in [0, 1]: 0 is fully
// normal flight, 1 is fully stalled.
func (s *StallController) Blend() float64 {
	return s.blend
}

// Threshold returns the current dynamic stall-speed threshold.
func (s *StallController) Threshold() float64 {
	return s.threshold
}

// ControlMultiplier returns the fraction of full control authority
// available: 1 at blend 0, StalledAuthority at blend 1.
func (s *StallController) ControlMultiplier() float64 {
	return 1 - s.blend*(1-s.params.StalledAuthority)
}

// SanitizeStallParams clamps stall parameters to safe values.
func SanitizeStallParams(p StallParams) StallParams {
	defaults := DefaultStallParams()
	p.BaseStallSpeed = validation.NonNegative(validation.Finite(p.BaseStallSpeed, defaults.BaseStallSpeed))
	p.ThrottleRelief = validation.Clamp01(p.ThrottleRelief)
	p.Hysteresis = validation.NonNegative(p.Hysteresis)
	p.TransitionRate = validation.Positive(p.TransitionRate, defaults.TransitionRate)
	p.StalledAuthority = validation.Clamp01(p.StalledAuthority)
	return p
}

// DefaultStallParams returns sensible defaults. Hysteresis defaults to 0,
// matching the single-threshold design.
func DefaultStallParams() StallParams {
	return StallParams{
		BaseStallSpeed:   30,
		ThrottleRelief:   0.25,
		Hysteresis:       0,
		TransitionRate:   2.0,
		StalledAuthority: 0.35,
	}
}
