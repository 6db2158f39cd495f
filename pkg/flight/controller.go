// pkg/flight/controller.go
package flight

import (
	"math"

	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

// Pose is a ship's position and orientation. It is owned exclusively by
// the flight controller and mutated once per tick; every other component
// reads it.
type Pose struct {
	Position    physics.Vector3
	Orientation physics.Basis
}

// FlightState is the per-tick flight bookkeeping exposed to the camera,
// weapons and HUD layers. Angles are in degrees: positive bank is right
// wing down, positive pitch is nose up, yaw is heading around world up.
type FlightState struct {
	Speed             float64
	Bank              float64
	Pitch             float64
	Yaw               float64
	Stalled           bool
	StallBlend        float64
	StallThreshold    float64
	ControlMultiplier float64
}

// FlightParams bundles the configuration for one ship's flight model.
type FlightParams struct {
	Attitude AttitudeParams
	Stall    StallParams
}

// SanitizeFlightParams clamps both parameter sets.
func SanitizeFlightParams(p FlightParams) FlightParams {
	return FlightParams{
		Attitude: SanitizeAttitudeParams(p.Attitude),
		Stall:    SanitizeStallParams(p.Stall),
	}
}

// DefaultFlightParams returns the default fighter flight model.
func DefaultFlightParams() FlightParams {
	return FlightParams{
		Attitude: DefaultAttitudeParams(),
		Stall:    DefaultStallParams(),
	}
}

// ShipFlightController turns per-tick control input into the ship's
// authoritative pose and velocity. Rotation authority is scaled by the
// stall controller's control multiplier, so a stalled ship answers the
// stick sluggishly.
type ShipFlightController struct {
	params   AttitudeParams
	pose     Pose
	velocity physics.Vector3
	state    FlightState
	stall    *StallController
}

// NewShipFlightController creates a flight controller at the given spawn
// pose. Parameters are sanitized; every query is valid immediately,
// returning zero/identity values before the first tick.
func NewShipFlightController(params FlightParams, spawn Pose) *ShipFlightController {
	params = SanitizeFlightParams(params)
	if spawn.Orientation == (physics.Basis{}) {
		spawn.Orientation = physics.IdentityBasis()
	}
	c := &ShipFlightController{
		params: params.Attitude,
		pose:   spawn,
		stall:  NewStallController(params.Stall),
	}
	c.state.ControlMultiplier = 1
	c.state.StallThreshold = c.stall.Threshold()
	return c
}

// Update advances the flight model by one tick: input -> attitude intent
// -> stall-scaled rotation -> pose integration -> state refresh.
func (c *ShipFlightController) Update(input ControlInput, dt float64) {
	dt = validation.TickDuration(dt)
	if dt == 0 {
		return
	}
	input = input.Sanitized()

	// Stall state is evaluated against the speed carried into the tick.
	c.stall.Update(c.state.Speed, input.Throttle, dt)
	authority := c.stall.ControlMultiplier()

	intent := ComputeIntent(c.params, c.pose.Orientation, c.state.Speed, input, dt)

	orient := c.pose.Orientation
	if intent.PitchDelta != 0 {
		orient = orient.Rotate(orient.Right, -physics.DegToRad(intent.PitchDelta*authority))
	}
	if intent.YawDelta != 0 {
		orient = orient.Rotate(orient.Up, physics.DegToRad(intent.YawDelta*authority))
	}
	if intent.RollDelta != 0 {
		orient = orient.Rotate(orient.Forward, -physics.DegToRad(intent.RollDelta*authority))
	}
	c.pose.Orientation = orient

	c.state.Speed = intent.Speed
	c.velocity = orient.Forward.Scale(intent.Speed).
		Add(orient.Right.Scale(input.Strafe * c.params.StrafeSpeed * authority))
	c.pose.Position = c.pose.Position.Add(c.velocity.Scale(dt))

	c.refreshState()
}

// refreshState derives the presentation angles from the orientation basis
// and copies the stall outputs.
func (c *ShipFlightController) refreshState() {
	fwd := c.pose.Orientation.Forward
	right := c.pose.Orientation.Right

	c.state.Pitch = physics.RadToDeg(math.Asin(physics.Clamp(fwd.Y, -1, 1)))
	c.state.Yaw = physics.RadToDeg(math.Atan2(fwd.X, fwd.Z))
	c.state.Bank = physics.RadToDeg(math.Asin(physics.Clamp(-right.Y, -1, 1)))

	c.state.Stalled = c.stall.IsStalled()
	c.state.StallBlend = c.stall.Blend()
	c.state.StallThreshold = c.stall.Threshold()
	c.state.ControlMultiplier = c.stall.ControlMultiplier()
}

// Pose returns the ship's current position and orientation.
func (c *ShipFlightController) Pose() Pose {
	return c.pose
}

// SetPose teleports the ship, used at spawn and respawn only.
func (c *ShipFlightController) SetPose(pose Pose) {
	if pose.Orientation == (physics.Basis{}) {
		pose.Orientation = physics.IdentityBasis()
	}
	c.pose = pose
}

// Velocity returns the velocity vector from the last tick.
func (c *ShipFlightController) Velocity() physics.Vector3 {
	return c.velocity
}

// Speed returns the current forward speed.
func (c *ShipFlightController) Speed() float64 {
	return c.state.Speed
}

// IsStalled returns true while the ship is stalled.
func (c *ShipFlightController) IsStalled() bool {
	return c.state.Stalled
}

// StallBlend returns the continuous stall blend factor in [0, 1].
func (c *ShipFlightController) StallBlend() float64 {
	return c.state.StallBlend
}

// StallThreshold returns the current dynamic stall-speed threshold.
func (c *ShipFlightController) StallThreshold() float64 {
	return c.state.StallThreshold
}

// ControlMultiplier returns the current control authority fraction.
func (c *ShipFlightController) ControlMultiplier() float64 {
	return c.state.ControlMultiplier
}

// State returns a copy of the full flight state.
func (c *ShipFlightController) State() FlightState {
	return c.state
}
