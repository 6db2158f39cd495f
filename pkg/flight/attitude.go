// pkg/flight/attitude.go
package flight

import (
	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

// AttitudeParams configures the attitude model for a ship class. All
// rates are per second; the model itself is a pure function of these
// parameters and the per-tick input.
type AttitudeParams struct {
	PitchRate    float64 // degrees/second
	YawRate      float64 // degrees/second
	RollRate     float64 // degrees/second
	MaxSpeed     float64 // units/second at full throttle
	Acceleration float64 // units/second^2 toward the throttle target
	StrafeSpeed  float64 // lateral units/second at full strafe input
}

// ControlInput is one tick's worth of normalized pilot input. Pitch, yaw,
// roll and strafe are in [-1, 1]; throttle is in [0, 1]. Values outside
// those ranges are clamped before use.
type ControlInput struct {
	Pitch    float64
	Yaw      float64
	Roll     float64
	Strafe   float64
	Throttle float64
}

// Sanitized returns the input with every axis clamped to its legal range.
func (in ControlInput) Sanitized() ControlInput {
	return ControlInput{
		Pitch:    validation.Axis(in.Pitch),
		Yaw:      validation.Axis(in.Yaw),
		Roll:     validation.Axis(in.Roll),
		Strafe:   validation.Axis(in.Strafe),
		Throttle: validation.Clamp01(in.Throttle),
	}
}

// AttitudeIntent is the attitude model's output for one tick: rate-limited
// rotation deltas and the speed/velocity the ship should carry after the
// tick. Rotation deltas never exceed rate x dt regardless of input size.
type AttitudeIntent struct {
	PitchDelta float64 // degrees this tick, positive = nose up
	YawDelta   float64 // degrees this tick, positive = nose right
	RollDelta  float64 // degrees this tick, positive = bank right
	Speed      float64 // speed after bounded acceleration
	Velocity   physics.Vector3
}

// ComputeIntent converts pilot input into a rotation/velocity intent for
// one tick. It is a pure function: no failure modes, NaN or negative dt
// is treated as a zero-length tick.
func ComputeIntent(params AttitudeParams, orientation physics.Basis, currentSpeed float64, input ControlInput, dt float64) AttitudeIntent {
	dt = validation.TickDuration(dt)
	input = input.Sanitized()

	intent := AttitudeIntent{
		PitchDelta: input.Pitch * params.PitchRate * dt,
		YawDelta:   input.Yaw * params.YawRate * dt,
		RollDelta:  input.Roll * params.RollRate * dt,
	}

	// Speed approaches the throttle target at bounded acceleration,
	// never instantaneously.
	target := input.Throttle * params.MaxSpeed
	maxStep := params.Acceleration * dt
	diff := target - currentSpeed
	if diff > maxStep {
		diff = maxStep
	} else if diff < -maxStep {
		diff = -maxStep
	}
	intent.Speed = physics.Clamp(currentSpeed+diff, 0, params.MaxSpeed)

	intent.Velocity = orientation.Forward.Scale(intent.Speed).
		Add(orientation.Right.Scale(input.Strafe * params.StrafeSpeed))

	return intent
}

// SanitizeAttitudeParams clamps attitude parameters to safe values.
func SanitizeAttitudeParams(p AttitudeParams) AttitudeParams {
	defaults := DefaultAttitudeParams()
	p.PitchRate = validation.Positive(p.PitchRate, defaults.PitchRate)
	p.YawRate = validation.Positive(p.YawRate, defaults.YawRate)
	p.RollRate = validation.Positive(p.RollRate, defaults.RollRate)
	p.MaxSpeed = validation.Positive(p.MaxSpeed, defaults.MaxSpeed)
	p.Acceleration = validation.Positive(p.Acceleration, defaults.Acceleration)
	p.StrafeSpeed = validation.NonNegative(p.StrafeSpeed)
	return p
}

// DefaultAttitudeParams returns sensible defaults for a mid-weight
// fighter.
func DefaultAttitudeParams() AttitudeParams {
	return AttitudeParams{
		PitchRate:    90,
		YawRate:      60,
		RollRate:     140,
		MaxSpeed:     120,
		Acceleration: 40,
		StrafeSpeed:  25,
	}
}
