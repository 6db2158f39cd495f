// pkg/camera/rig.go
package camera

import (
	"math"

	"github.com/opd-ai/go-dogfight/pkg/flight"
	"github.com/opd-ai/go-dogfight/pkg/logging"
	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

// Target is what the rig follows. A ship's flight controller satisfies
// this directly.
type Target interface {
	Pose() flight.Pose
	Velocity() physics.Vector3
	StallBlend() float64
}

// Params configures the chase rig.
type Params struct {
	Distance    float64 // how far behind the target
	Height      float64 // how far above the target
	FollowRate  float64 // position catch-up, fraction/second
	LookAhead   float64 // meters ahead of the target the camera looks at
	FieldOfView float64 // degrees, passed through to the renderer
}

// SanitizeParams clamps rig parameters to usable values.
func SanitizeParams(p Params) Params {
	p.Distance = validation.Positive(p.Distance, 12)
	p.Height = validation.NonNegative(p.Height)
	p.FollowRate = validation.Positive(p.FollowRate, 5)
	p.LookAhead = validation.NonNegative(p.LookAhead)
	p.FieldOfView = validation.Clamp(p.FieldOfView, 30, 120)
	return p
}

// DefaultParams returns the default chase camera tuning.
func DefaultParams() Params {
	return Params{
		Distance:    14,
		Height:      4,
		FollowRate:  6,
		LookAhead:   20,
		FieldOfView: 70,
	}
}

// Rig is the third-person chase camera. It trails the target with a
// smoothed position and blends its look direction between the target's
// nose and its velocity as the target stalls, so a falling ship reads as
// falling on screen.
type Rig struct {
	params Params
	target Target
	logger *logging.Logger

	position    physics.Vector3
	lookAt      physics.Vector3
	up          physics.Vector3
	initialized bool

	loggedNoTarget bool
}

// NewRig creates a rig with sanitized parameters and no target.
func NewRig(params Params, logger *logging.Logger) *Rig {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Rig{
		params: SanitizeParams(params),
		logger: logger,
		up:     physics.Up,
	}
}

// SetTarget switches what the rig follows. The next Update snaps to the
// new target instead of sweeping across the map.
func (r *Rig) SetTarget(target Target) {
	r.target = target
	r.initialized = false
	r.loggedNoTarget = false
}

// Update advances the rig by one tick. With no target set, the rig keeps
// its last transform and logs once.
func (r *Rig) Update(dt float64) {
	if r.target == nil {
		if !r.loggedNoTarget {
			r.logger.Warn("camera rig has no target, holding last transform")
			r.loggedNoTarget = true
		}
		return
	}
	dt = validation.TickDuration(dt)
	if dt == 0 {
		return
	}

	pose := r.target.Pose()
	desired := pose.Position.
		Sub(pose.Orientation.Forward.Scale(r.params.Distance)).
		Add(pose.Orientation.Up.Scale(r.params.Height))

	if !r.initialized {
		r.position = desired
		r.initialized = true
	} else {
		// Bounded catch-up: never overshoots the desired position even at
		// a degenerate dt spike.
		t := validation.Clamp01(r.params.FollowRate * dt)
		r.position = r.position.Lerp(desired, t)
	}

	r.lookAt = r.lookTarget(pose)
	r.up = r.upHint(pose)
}

// lookTarget blends the aim point between straight ahead of the nose and
// along the velocity vector, weighted by the stall blend.
func (r *Rig) lookTarget(pose flight.Pose) physics.Vector3 {
	ahead := pose.Orientation.Forward
	vel := r.target.Velocity()
	blend := validation.Clamp01(r.target.StallBlend())

	dir := ahead
	if blend > 0 && vel.LengthSquared() > 1e-6 {
		dir = ahead.Lerp(vel.Normalize(), blend).Normalize()
		if dir == (physics.Vector3{}) {
			dir = ahead
		}
	}
	return pose.Position.Add(dir.Scale(r.params.LookAhead))
}

// upHint picks the camera's up vector. When the look direction runs
// nearly parallel to world up (a vertical dive or climb), world up would
// make the view spin, so the target's right vector stands in.
func (r *Rig) upHint(pose flight.Pose) physics.Vector3 {
	lookDir := r.lookAt.Sub(r.position).Normalize()
	if math.Abs(lookDir.Dot(physics.Up)) > 0.99 {
		return pose.Orientation.Right
	}
	return physics.Up
}

// Position returns the camera's world position.
func (r *Rig) Position() physics.Vector3 {
	return r.position
}

// LookAt returns the point the camera is looking at.
func (r *Rig) LookAt() physics.Vector3 {
	return r.lookAt
}

// Up returns the camera's up vector.
func (r *Rig) Up() physics.Vector3 {
	return r.up
}

// Orientation returns the camera's basis, looking from its position
// toward the look-at point.
func (r *Rig) Orientation() physics.Basis {
	return physics.LookRotation(r.lookAt.Sub(r.position), r.up)
}

// FieldOfView returns the configured field of view in degrees.
func (r *Rig) FieldOfView() float64 {
	return r.params.FieldOfView
}
