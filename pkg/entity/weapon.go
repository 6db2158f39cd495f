// pkg/entity/weapon.go
package entity

import (
	"math"

	"github.com/opd-ai/go-dogfight/pkg/event"
	"github.com/opd-ai/go-dogfight/pkg/logging"
	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

// Weapon is the per-weapon state machine: heat accumulation and
// dissipation, overheat lockout and recovery, lock-on acquisition, and
// fire-rate gating. Each weapon owns its runtime state exclusively; all
// notifications go out through the event bus, fire-and-forget.
type Weapon struct {
	stats       WeaponStats
	shipID      uint64
	weaponIndex int

	heat              float64
	overheated        bool
	recoveryRemaining float64
	lastFired         float64
	hasFired          bool

	lockTarget   Damageable
	lockProgress float64
	locked       bool

	targets TargetAcquirer
	bus     *event.Bus
	rng     func() float64
	logger  *logging.Logger

	loggedNoAcquirer bool
}

// FireCommand is the weapon's output on a successful shot: everything
// the projectile resolver (or hitscan path) needs, with criticals and
// spread already applied.
type FireCommand struct {
	OwnerID     uint64
	WeaponIndex int
	Origin      physics.Vector3
	Direction   physics.Vector3
	Damage      float64
	Critical    bool
	Target      Damageable // locked target, nil unless RequiresLock
	Stats       WeaponStats
}

// NewWeapon creates a weapon bound to the owning ship. Stats are
// sanitized once here and immutable afterwards. The rng is injected so
// critical rolls and spread stay deterministic under test.
func NewWeapon(stats WeaponStats, shipID uint64, weaponIndex int, targets TargetAcquirer, bus *event.Bus, rng func() float64, logger *logging.Logger) *Weapon {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Weapon{
		stats:       SanitizeWeaponStats(stats),
		shipID:      shipID,
		weaponIndex: weaponIndex,
		targets:     targets,
		bus:         bus,
		rng:         rng,
		logger:      logger,
	}
}

// Update advances the weapon's heat and lock state for one tick. The aim
// origin and direction come from the ship's pointer-aim source, which may
// differ from raw ship forward.
func (w *Weapon) Update(aimOrigin, aimDir physics.Vector3, dt float64) {
	dt = validation.TickDuration(dt)
	if dt == 0 {
		return
	}

	w.dissipateHeat(dt)
	w.tickRecovery(dt)
	if w.stats.RequiresLock {
		w.updateLock(aimOrigin, aimDir, dt)
	}
}

// dissipateHeat cools the weapon linearly toward zero.
func (w *Weapon) dissipateHeat(dt float64) {
	if w.heat <= 0 {
		return
	}
	w.heat -= w.stats.HeatDissipation * dt
	if w.heat < 0 {
		w.heat = 0
	}
	w.publishHeatChanged()
}

// tickRecovery counts down the overheat lockout.
func (w *Weapon) tickRecovery(dt float64) {
	if !w.overheated {
		return
	}
	w.recoveryRemaining -= dt
	if w.recoveryRemaining <= 0 {
		w.recoveryRemaining = 0
		w.overheated = false
		if w.bus != nil {
			w.bus.Publish(event.NewWeaponEvent(event.WeaponCooledDown, w, w.shipID, w.weaponIndex))
		}
	}
}

// updateLock runs the lock sub-machine: acquire/switch/progress/lose.
func (w *Weapon) updateLock(aimOrigin, aimDir physics.Vector3, dt float64) {
	if w.targets == nil {
		if !w.loggedNoAcquirer {
			w.logger.Warn("lock weapon has no target acquirer, skipping lock updates",
				"ship", w.shipID, "weapon", w.weaponIndex)
			w.loggedNoAcquirer = true
		}
		return
	}

	candidate, found := w.targets.AcquireTarget(aimOrigin, aimDir, w.stats.LockRange, w.stats.LockConeDegrees, w.shipID)
	if !found {
		w.loseLock()
		return
	}

	if w.lockTarget == nil || w.lockTarget.GetID() != candidate.GetID() {
		// Tracking switches to the new candidate; progress restarts.
		w.lockTarget = candidate
		w.lockProgress = 0
		w.locked = false
		return
	}

	if w.locked {
		return
	}
	w.lockProgress += dt / w.stats.LockTime
	if w.lockProgress >= 1 {
		w.lockProgress = 1
		w.locked = true
		if w.bus != nil {
			evt := event.NewWeaponEvent(event.TargetLocked, w, w.shipID, w.weaponIndex)
			evt.TargetID = w.lockTarget.GetID()
			w.bus.Publish(evt)
		}
	}
}

// loseLock clears tracking. Publishes target_lost exactly once per
// tracked target, whether or not the lock had completed.
func (w *Weapon) loseLock() {
	if w.lockTarget == nil {
		return
	}
	lostID := w.lockTarget.GetID()
	w.lockTarget = nil
	w.lockProgress = 0
	w.locked = false
	if w.bus != nil {
		evt := event.NewWeaponEvent(event.TargetLost, w, w.shipID, w.weaponIndex)
		evt.TargetID = lostID
		w.bus.Publish(evt)
	}
}

// CanFire reports whether a fire command would succeed at the given
// simulation time: the fire interval must have elapsed, the weapon must
// not be overheated, and lock weapons must hold a completed lock.
func (w *Weapon) CanFire(now float64) bool {
	if w.hasFired && now-w.lastFired < w.stats.FireInterval() {
		return false
	}
	if w.overheated {
		return false
	}
	if w.stats.RequiresLock && !w.locked {
		return false
	}
	return true
}

// Fire attempts to fire at the given simulation time. A rejected attempt
// (cooldown, overheat, missing lock) returns false and has no side
// effects; it is a no-op, not an error. On success the weapon stamps its
// fire time, accounts heat and energy, rolls the critical check and
// returns the command for the resolver.
func (w *Weapon) Fire(now float64, aimOrigin, aimDir physics.Vector3) (FireCommand, bool) {
	if !w.CanFire(now) {
		return FireCommand{}, false
	}

	w.lastFired = now
	w.hasFired = true

	w.heat += w.stats.HeatGeneration
	if w.heat >= w.stats.MaxHeat {
		w.heat = w.stats.MaxHeat
		w.overheated = true
		w.recoveryRemaining = w.stats.OverheatCooldown
		if w.bus != nil {
			evt := event.NewWeaponEvent(event.WeaponOverheated, w, w.shipID, w.weaponIndex)
			evt.Heat = w.heat
			w.bus.Publish(evt)
		}
	}
	w.publishHeatChanged()

	// Energy draw is reported but never gates the shot.
	if w.bus != nil && w.stats.EnergyConsumption > 0 {
		evt := event.NewWeaponEvent(event.EnergyConsumed, w, w.shipID, w.weaponIndex)
		evt.Energy = w.stats.EnergyConsumption
		w.bus.Publish(evt)
	}

	damage := w.stats.Damage
	critical := false
	if w.stats.CriticalChance > 0 && w.roll() < w.stats.CriticalChance {
		damage *= w.stats.CriticalMultiplier
		critical = true
	}

	return FireCommand{
		OwnerID:     w.shipID,
		WeaponIndex: w.weaponIndex,
		Origin:      aimOrigin,
		Direction:   w.applySpread(aimDir.Normalize()),
		Damage:      damage,
		Critical:    critical,
		Target:      w.lockTarget,
		Stats:       w.stats,
	}, true
}

// applySpread perturbs the aim direction within the spread cone.
func (w *Weapon) applySpread(dir physics.Vector3) physics.Vector3 {
	if w.stats.SpreadDegrees <= 0 || dir == (physics.Vector3{}) {
		return dir
	}
	// Random deflection angle within the cone, random roll around the axis.
	deflect := physics.DegToRad(w.stats.SpreadDegrees) * w.roll()
	around := 2 * math.Pi * w.roll()

	perp := dir.Cross(physics.Up)
	if perp.LengthSquared() < 1e-12 {
		perp = dir.Cross(physics.Vector3{X: 1})
	}
	perp = perp.Normalize().RotateAround(dir, around)
	return dir.RotateAround(perp, deflect).Normalize()
}

func (w *Weapon) roll() float64 {
	if w.rng == nil {
		return 0
	}
	return w.rng()
}

func (w *Weapon) publishHeatChanged() {
	if w.bus == nil {
		return
	}
	evt := event.NewWeaponEvent(event.HeatChanged, w, w.shipID, w.weaponIndex)
	evt.Heat = w.heat
	w.bus.Publish(evt)
}

// Stats returns the weapon's immutable configuration.
func (w *Weapon) Stats() WeaponStats {
	return w.stats
}

// Heat returns the current heat, always in [0, MaxHeat].
func (w *Weapon) Heat() float64 {
	return w.heat
}

// IsOverheated returns true while the overheat lockout is active.
func (w *Weapon) IsOverheated() bool {
	return w.overheated
}

// RecoveryRemaining returns the seconds left on the overheat lockout.
func (w *Weapon) RecoveryRemaining() float64 {
	return w.recoveryRemaining
}

// IsLocked returns true once lock progress has completed and the target
// is still tracked.
func (w *Weapon) IsLocked() bool {
	return w.locked
}

// LockProgress returns the lock acquisition progress in [0, 1].
func (w *Weapon) LockProgress() float64 {
	return w.lockProgress
}

// LockTargetID returns the tracked target's ID, or 0 when none.
func (w *Weapon) LockTargetID() uint64 {
	if w.lockTarget == nil {
		return 0
	}
	return w.lockTarget.GetID()
}
