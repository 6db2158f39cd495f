// pkg/entity/projectile.go
package entity

import (
	"math"

	"github.com/opd-ai/go-dogfight/pkg/event"
	"github.com/opd-ai/go-dogfight/pkg/logging"
	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

// Projectile represents one in-flight munition. Its trajectory variant is
// data, not a subtype; the resolver switches on Trajectory each tick.
type Projectile struct {
	BaseEntity
	OwnerID    uint64
	Trajectory TrajectoryKind
	Damage     float64
	DamageType DamageType
	Critical   bool
	Direction  physics.Vector3
	Speed      float64
	SpawnTime  float64
	Lifetime   float64

	// Arcing parameters.
	ArcStart  physics.Vector3
	ArcTarget physics.Vector3
	ArcHeight float64
	Progress  float64

	// Homing parameters. Target is a weak reference: the entity may be
	// destroyed mid-flight, after which the projectile flies straight.
	Target             Damageable
	TurnRate           float64 // degrees/second
	MaxSpeed           float64
	HomingAcceleration float64

	// Impact parameters.
	AOERadius      float64
	KnockbackForce float64
	Penetrations   int

	resolved bool
	hitIDs   map[uint64]struct{}
}

// NewProjectile builds a projectile from a weapon's fire command. Arcing
// shots aim at the locked target's position when one is tracked, or at
// max range along the aim direction otherwise.
func NewProjectile(cmd FireCommand, now float64) *Projectile {
	stats := cmd.Stats
	p := &Projectile{
		BaseEntity:         NewBaseEntity(cmd.Origin, stats.ProjectileRadius, physics.LayerProjectiles),
		OwnerID:            cmd.OwnerID,
		Trajectory:         stats.Trajectory,
		Damage:             cmd.Damage,
		DamageType:         stats.DamageType,
		Critical:           cmd.Critical,
		Direction:          cmd.Direction.Normalize(),
		Speed:              stats.ProjectileSpeed,
		SpawnTime:          now,
		Lifetime:           stats.ProjectileLifetime,
		ArcHeight:          stats.ArcHeight,
		TurnRate:           stats.HomingTurnRate,
		MaxSpeed:           stats.ProjectileSpeed,
		HomingAcceleration: stats.HomingAcceleration,
		AOERadius:          stats.AOERadius,
		KnockbackForce:     stats.KnockbackForce,
		Penetrations:       stats.MaxPenetrations,
		hitIDs:             make(map[uint64]struct{}),
	}

	switch stats.Trajectory {
	case ArcingProjectile:
		p.ArcStart = cmd.Origin
		if cmd.Target != nil {
			p.ArcTarget = cmd.Target.GetPosition()
		} else {
			p.ArcTarget = cmd.Origin.Add(p.Direction.Scale(stats.Range))
		}
	case HomingProjectile:
		p.Target = cmd.Target
		if p.HomingAcceleration > 0 {
			// Homing shots launch slow and ramp toward max speed.
			p.Speed = stats.ProjectileSpeed * 0.25
		}
	}

	return p
}

// HasResolved reports whether the projectile has already dealt its
// damage. The flag is monotonic: once set, no further hit processing
// occurs.
func (p *Projectile) HasResolved() bool {
	return p.resolved
}

// ProjectileResolver advances projectiles and resolves their hits
// against the collision query service, pushing damage into each struck
// entity's damage sink. One resolver serves all projectiles in a game.
type ProjectileResolver struct {
	Query  physics.QueryService
	Bus    *event.Bus
	Mask   physics.Layer // layers projectiles can strike
	Logger *logging.Logger

	loggedNoQuery bool
}

// NewProjectileResolver creates a resolver over the given query service.
func NewProjectileResolver(query physics.QueryService, bus *event.Bus, mask physics.Layer, logger *logging.Logger) *ProjectileResolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ProjectileResolver{
		Query:  query,
		Bus:    bus,
		Mask:   mask,
		Logger: logger,
	}
}

// Update advances one projectile by one tick and resolves any hit.
func (r *ProjectileResolver) Update(p *Projectile, dt, now float64) {
	if p == nil || !p.Active || p.resolved {
		return
	}
	dt = validation.TickDuration(dt)
	if dt == 0 {
		return
	}
	if r.Query == nil {
		if !r.loggedNoQuery {
			r.Logger.Warn("projectile resolver has no query service, skipping updates")
			r.loggedNoQuery = true
		}
		return
	}

	expired := now-p.SpawnTime >= p.Lifetime

	switch p.Trajectory {
	case ArcingProjectile:
		r.updateArcing(p, dt, expired)
	case HomingProjectile:
		r.steerHoming(p, dt)
		r.updateLinear(p, dt, expired)
	default:
		r.updateLinear(p, dt, expired)
	}
}

// updateLinear moves a straight or homing projectile and hit-tests the
// swept segment. The per-tick raycast covers the full distance travelled
// so fast shots cannot tunnel through thin colliders.
func (r *ProjectileResolver) updateLinear(p *Projectile, dt float64, expired bool) {
	if expired {
		// Lifetime ran out before contact: the shot fizzles, no damage.
		p.Active = false
		return
	}

	step := p.Speed * dt
	for step > 0 {
		hit, ok := r.castIgnoringHits(p, step)
		if !ok {
			break
		}
		travelled := hit.Point.Distance(p.Position)
		p.Position = hit.Point
		step -= travelled

		if !r.strike(p, hit.Entity, hit.Point) {
			return // resolved
		}
		// Penetrated: keep flying through the target.
		p.Position = p.Position.Add(p.Direction.Scale(p.Radius))
		step -= p.Radius
	}
	if step > 0 {
		p.Position = p.Position.Add(p.Direction.Scale(step))
	}
	p.Velocity = p.Direction.Scale(p.Speed)

	// Broad-phase trigger check at the new position for contacts the
	// swept ray can miss (targets moving onto the projectile).
	for _, contact := range r.Query.OverlapSphere(p.Position, p.Radius, r.Mask) {
		if contact.GetID() == p.OwnerID || contact.GetID() == p.GetID() {
			continue
		}
		if _, seen := p.hitIDs[contact.GetID()]; seen {
			continue
		}
		if !r.strike(p, contact, p.Position) {
			return
		}
	}
}

// castIgnoringHits raycasts ahead of the projectile, skipping the owner
// and entities already penetrated.
func (r *ProjectileResolver) castIgnoringHits(p *Projectile, maxDist float64) (physics.RayHit, bool) {
	origin := p.Position
	remaining := maxDist
	for remaining > 0 {
		hit, ok := r.Query.Raycast(origin, p.Direction, remaining, r.Mask)
		if !ok {
			return physics.RayHit{}, false
		}
		id := hit.Entity.GetID()
		_, seen := p.hitIDs[id]
		if id != p.OwnerID && id != p.GetID() && !seen {
			return hit, true
		}
		// Step past the ignored collider and keep casting.
		advance := hit.Point.Distance(origin) + hit.Entity.GetCollider().Radius*2
		if advance <= 0 {
			return physics.RayHit{}, false
		}
		origin = origin.Add(p.Direction.Scale(advance))
		remaining -= advance
	}
	return physics.RayHit{}, false
}

// steerHoming turns the projectile toward its target at a capped rate and
// ramps speed toward the maximum. A destroyed target means straight-line
// continuation on the last heading, not an error.
func (r *ProjectileResolver) steerHoming(p *Projectile, dt float64) {
	if p.Target != nil && !p.Target.IsAlive() {
		p.Target = nil
	}
	if p.Target != nil {
		desired := p.Target.GetPosition().Sub(p.Position)
		maxTurn := physics.DegToRad(p.TurnRate) * dt
		p.Direction = physics.RotateTowards(p.Direction, desired, maxTurn)
	}
	if p.HomingAcceleration > 0 && p.Speed < p.MaxSpeed {
		p.Speed = math.Min(p.Speed+p.HomingAcceleration*dt, p.MaxSpeed)
	}
}

// updateArcing advances the arc parameter and interpolates the position
// along the start-target lob. Resolution happens at the target point when
// progress completes or the lifetime expires.
func (r *ProjectileResolver) updateArcing(p *Projectile, dt float64, expired bool) {
	total := p.ArcTarget.Distance(p.ArcStart)
	if total < 1e-6 || expired {
		p.Position = p.ArcTarget
		r.resolveImpact(p, p.ArcTarget, nil)
		return
	}

	p.Progress += p.Speed * dt / total
	if p.Progress >= 1 {
		p.Progress = 1
		p.Position = p.ArcTarget
		r.resolveImpact(p, p.ArcTarget, nil)
		return
	}

	prev := p.Position
	base := p.ArcStart.Lerp(p.ArcTarget, p.Progress)
	height := math.Sin(p.Progress*math.Pi) * p.ArcHeight
	p.Position = base.Add(physics.Up.Scale(height))
	if dt > 0 {
		p.Velocity = p.Position.Sub(prev).Scale(1 / dt)
	}

	// Mid-flight contact detonates early.
	for _, contact := range r.Query.OverlapSphere(p.Position, p.Radius, r.Mask) {
		if contact.GetID() == p.OwnerID || contact.GetID() == p.GetID() {
			continue
		}
		r.resolveImpact(p, p.Position, contact)
		return
	}
}

// strike applies a single direct hit. It returns true when the
// projectile penetrates and keeps flying, false when it resolved.
func (r *ProjectileResolver) strike(p *Projectile, target physics.Collidable, point physics.Vector3) bool {
	if p.AOERadius > 0 || p.Penetrations <= 0 {
		r.resolveImpact(p, point, target)
		return false
	}

	// Penetrating hit: full damage to this target, budget decremented,
	// flight continues.
	p.Penetrations--
	p.hitIDs[target.GetID()] = struct{}{}
	r.applyDamage(p, target, p.Damage, p.Direction.Scale(p.KnockbackForce))
	return true
}

// resolveImpact is the one-shot end of a projectile's life. The resolved
// flag guarantees damage is dealt at most once per projectile, even when
// several overlapping contacts land in the same tick.
func (r *ProjectileResolver) resolveImpact(p *Projectile, point physics.Vector3, direct physics.Collidable) {
	if p.resolved {
		return
	}
	p.resolved = true
	p.Active = false
	p.Position = point

	if p.AOERadius <= 0 {
		if direct != nil && direct.GetID() != p.OwnerID {
			r.applyDamage(p, direct, p.Damage, p.Direction.Scale(p.KnockbackForce))
		}
		return
	}

	for _, affected := range r.Query.OverlapSphere(point, p.AOERadius, r.Mask) {
		if affected.GetID() == p.OwnerID || affected.GetID() == p.GetID() {
			continue
		}
		dist := point.Distance(affected.GetPosition())
		falloff := physics.Clamp01(1 - dist/p.AOERadius)
		if falloff <= 0 {
			continue
		}
		away := affected.GetPosition().Sub(point).Normalize()
		r.applyDamage(p, affected, p.Damage*falloff, away.Scale(p.KnockbackForce*falloff))
	}
}

// applyDamage pushes damage into the target's sink and publishes the
// damage event. Knockback goes to targets that accept impulses.
func (r *ProjectileResolver) applyDamage(p *Projectile, target physics.Collidable, amount float64, impulse physics.Vector3) {
	sink, ok := target.(Damageable)
	if !ok {
		return
	}
	sink.TakeDamage(amount, p.DamageType, p.OwnerID)
	if receiver, ok := target.(ImpulseReceiver); ok && impulse != (physics.Vector3{}) {
		receiver.ApplyImpulse(impulse)
	}
	if r.Bus != nil {
		r.Bus.Publish(event.NewDamageEvent(p, target.GetID(), p.OwnerID, amount, p.Critical))
	}
}

// ResolveHitscan performs an instantaneous line-of-sight resolution for
// hitscan weapons: a single raycast out to the weapon's range, with the
// same impact rules (AOE, knockback, owner exclusion) as projectiles.
// Returns the hit and true when something was struck.
func (r *ProjectileResolver) ResolveHitscan(cmd FireCommand, now float64) (physics.RayHit, bool) {
	if r.Query == nil {
		if !r.loggedNoQuery {
			r.Logger.Warn("projectile resolver has no query service, skipping updates")
			r.loggedNoQuery = true
		}
		return physics.RayHit{}, false
	}

	// A transient projectile carries the impact parameters so hitscan and
	// projectile hits share one resolution path.
	tracer := NewProjectile(cmd, now)

	hit, ok := r.castIgnoringHits(tracer, cmd.Stats.Range)
	if !ok {
		return physics.RayHit{}, false
	}
	r.resolveImpact(tracer, hit.Point, hit.Entity)
	return hit, true
}
