// pkg/flight/attitude_test.go
package flight

import (
	"math"
	"testing"

	"github.com/opd-ai/go-dogfight/pkg/physics"
)

func TestComputeIntent_RateLimitsRotation(t *testing.T) {
	params := AttitudeParams{
		PitchRate: 90,
		YawRate:   60,
		RollRate:  140,
		MaxSpeed:  100,
	}
	dt := 0.016

	tests := []struct {
		name  string
		input ControlInput
	}{
		{name: "full_deflection", input: ControlInput{Pitch: 1, Yaw: 1, Roll: 1}},
		{name: "over_deflection_clamped", input: ControlInput{Pitch: 50, Yaw: -50, Roll: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := ComputeIntent(params, physics.IdentityBasis(), 0, tt.input, dt)

			if math.Abs(intent.PitchDelta) > params.PitchRate*dt+1e-9 {
				t.Errorf("PitchDelta %v exceeds rate*dt %v", intent.PitchDelta, params.PitchRate*dt)
			}
			if math.Abs(intent.YawDelta) > params.YawRate*dt+1e-9 {
				t.Errorf("YawDelta %v exceeds rate*dt %v", intent.YawDelta, params.YawRate*dt)
			}
			if math.Abs(intent.RollDelta) > params.RollRate*dt+1e-9 {
				t.Errorf("RollDelta %v exceeds rate*dt %v", intent.RollDelta, params.RollRate*dt)
			}
		})
	}
}

func TestComputeIntent_BoundedAcceleration(t *testing.T) {
	params := AttitudeParams{MaxSpeed: 100, Acceleration: 40}
	dt := 0.1

	intent := ComputeIntent(params, physics.IdentityBasis(), 0, ControlInput{Throttle: 1}, dt)
	if math.Abs(intent.Speed-4) > 1e-9 {
		t.Errorf("Speed after one tick = %v, expected 4", intent.Speed)
	}

	// Deceleration is bounded by the same rate.
	intent = ComputeIntent(params, physics.IdentityBasis(), 100, ControlInput{Throttle: 0}, dt)
	if math.Abs(intent.Speed-96) > 1e-9 {
		t.Errorf("Speed after throttle cut = %v, expected 96", intent.Speed)
	}
}

func TestComputeIntent_SpeedNeverExceedsMax(t *testing.T) {
	params := AttitudeParams{MaxSpeed: 100, Acceleration: 1e6}

	intent := ComputeIntent(params, physics.IdentityBasis(), 99, ControlInput{Throttle: 1}, 1)
	if intent.Speed > params.MaxSpeed {
		t.Errorf("Speed %v exceeds MaxSpeed %v", intent.Speed, params.MaxSpeed)
	}

	intent = ComputeIntent(params, physics.IdentityBasis(), 0, ControlInput{Throttle: 5}, 1)
	if intent.Speed > params.MaxSpeed {
		t.Errorf("Speed %v exceeds MaxSpeed with over-throttle", intent.Speed)
	}
}

func TestComputeIntent_ZeroAndInvalidDt(t *testing.T) {
	params := DefaultAttitudeParams()

	for _, dt := range []float64{0, -1, math.NaN()} {
		intent := ComputeIntent(params, physics.IdentityBasis(), 50, ControlInput{Pitch: 1, Throttle: 1}, dt)
		if intent.PitchDelta != 0 {
			t.Errorf("dt=%v produced PitchDelta %v, expected 0", dt, intent.PitchDelta)
		}
		if intent.Speed != 50 {
			t.Errorf("dt=%v changed speed to %v, expected 50", dt, intent.Speed)
		}
	}
}

func TestControlInput_Sanitized(t *testing.T) {
	in := ControlInput{
		Pitch:    5,
		Yaw:      -5,
		Roll:     math.NaN(),
		Strafe:   0.5,
		Throttle: 3,
	}.Sanitized()

	if in.Pitch != 1 || in.Yaw != -1 || in.Roll != 0 || in.Strafe != 0.5 || in.Throttle != 1 {
		t.Errorf("Sanitized() = %+v", in)
	}
}

func TestComputeIntent_VelocityIncludesStrafe(t *testing.T) {
	params := AttitudeParams{MaxSpeed: 100, Acceleration: 1000, StrafeSpeed: 25}
	basis := physics.IdentityBasis()

	intent := ComputeIntent(params, basis, 100, ControlInput{Throttle: 1, Strafe: 1}, 0.016)

	want := basis.Forward.Scale(intent.Speed).Add(basis.Right.Scale(25))
	if intent.Velocity != want {
		t.Errorf("Velocity = %v, expected %v", intent.Velocity, want)
	}
}
