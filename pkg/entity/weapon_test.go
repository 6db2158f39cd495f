// pkg/entity/weapon_test.go
package entity

import (
	"math"
	"testing"

	"github.com/opd-ai/go-dogfight/pkg/event"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// dummyTarget is a minimal damageable body for weapon and projectile tests.
type dummyTarget struct {
	id       uint64
	pos      physics.Vector3
	radius   float64
	alive    bool
	taken    float64
	lastType DamageType
	lastSrc  uint64
	impulse  physics.Vector3
}

func newDummyTarget(id uint64, pos physics.Vector3, radius float64) *dummyTarget {
	return &dummyTarget{id: id, pos: pos, radius: radius, alive: true}
}

func (d *dummyTarget) GetID() uint64                { return d.id }
func (d *dummyTarget) GetPosition() physics.Vector3 { return d.pos }
func (d *dummyTarget) GetLayer() physics.Layer      { return physics.LayerShips }
func (d *dummyTarget) GetCollider() physics.Sphere {
	return physics.Sphere{Center: d.pos, Radius: d.radius}
}
func (d *dummyTarget) IsAlive() bool { return d.alive }
func (d *dummyTarget) TakeDamage(amount float64, damageType DamageType, sourceID uint64) {
	d.taken += amount
	d.lastType = damageType
	d.lastSrc = sourceID
}
func (d *dummyTarget) ApplyImpulse(impulse physics.Vector3) {
	d.impulse = d.impulse.Add(impulse)
}

// fixedAcquirer always returns the same candidate.
type fixedAcquirer struct {
	target Damageable
}

func (f *fixedAcquirer) AcquireTarget(origin, aimDir physics.Vector3, maxRange, coneDegrees float64, excludeID uint64) (Damageable, bool) {
	if f.target == nil || !f.target.IsAlive() {
		return nil, false
	}
	return f.target, true
}

func testGunStats() WeaponStats {
	return WeaponStats{
		Name:             "test gun",
		Trajectory:       StraightProjectile,
		Damage:           10,
		FireRate:         2,
		Range:            500,
		ProjectileSpeed:  200,
		HeatGeneration:   30,
		MaxHeat:          100,
		HeatDissipation:  20,
		OverheatCooldown: 2,
	}
}

func countEvents(bus *event.Bus, eventType event.Type) *int {
	n := new(int)
	bus.Subscribe(eventType, func(event.Event) { *n++ })
	return n
}

func TestWeapon_FireRateGating(t *testing.T) {
	w := NewWeapon(testGunStats(), 1, 0, nil, nil, nil, nil)
	aim := physics.Vector3{Z: 1}

	if _, ok := w.Fire(0, physics.Vector3{}, aim); !ok {
		t.Fatal("first shot rejected")
	}
	// FireRate 2 means a 0.5s interval.
	if _, ok := w.Fire(0.25, physics.Vector3{}, aim); ok {
		t.Error("shot accepted inside the fire interval")
	}
	if _, ok := w.Fire(0.5, physics.Vector3{}, aim); !ok {
		t.Error("shot rejected after the fire interval elapsed")
	}
}

func TestWeapon_HeatAccumulationAndOverheat(t *testing.T) {
	bus := event.NewEventBus()
	overheats := countEvents(bus, event.WeaponOverheated)
	cooldowns := countEvents(bus, event.WeaponCooledDown)

	w := NewWeapon(testGunStats(), 1, 0, nil, bus, nil, nil)
	aim := physics.Vector3{Z: 1}

	// HeatGeneration 30, MaxHeat 100: the fourth shot overheats.
	now := 0.0
	for i := 0; i < 4; i++ {
		if _, ok := w.Fire(now, physics.Vector3{}, aim); !ok {
			t.Fatalf("shot %d rejected", i)
		}
		now += 10 // long gaps, but no dissipation without Update
	}

	if !w.IsOverheated() {
		t.Fatal("weapon not overheated at max heat")
	}
	if *overheats != 1 {
		t.Errorf("weapon_overheated published %d times, expected 1", *overheats)
	}
	if _, ok := w.Fire(now+10, physics.Vector3{}, aim); ok {
		t.Error("overheated weapon fired")
	}

	// Recovery takes OverheatCooldown seconds of updates.
	w.Update(physics.Vector3{}, aim, 1)
	if !w.IsOverheated() {
		t.Error("recovered before the cooldown elapsed")
	}
	w.Update(physics.Vector3{}, aim, 1.1)
	if w.IsOverheated() {
		t.Error("still overheated after the cooldown elapsed")
	}
	if *cooldowns != 1 {
		t.Errorf("weapon_cooled_down published %d times, expected 1", *cooldowns)
	}
}

func TestWeapon_HeatDissipation(t *testing.T) {
	w := NewWeapon(testGunStats(), 1, 0, nil, nil, nil, nil)
	aim := physics.Vector3{Z: 1}

	w.Fire(0, physics.Vector3{}, aim)
	if w.Heat() != 30 {
		t.Fatalf("Heat() = %v after one shot, expected 30", w.Heat())
	}

	w.Update(physics.Vector3{}, aim, 1) // dissipation 20/s
	if math.Abs(w.Heat()-10) > 1e-9 {
		t.Errorf("Heat() = %v after 1s, expected 10", w.Heat())
	}

	w.Update(physics.Vector3{}, aim, 1)
	if w.Heat() != 0 {
		t.Errorf("Heat() = %v, expected 0 (never negative)", w.Heat())
	}
}

func TestWeapon_LockAcquisition(t *testing.T) {
	bus := event.NewEventBus()
	locks := countEvents(bus, event.TargetLocked)
	losses := countEvents(bus, event.TargetLost)

	target := newDummyTarget(9, physics.Vector3{Z: 100}, 5)
	acquirer := &fixedAcquirer{target: target}

	stats := testGunStats()
	stats.RequiresLock = true
	stats.LockTime = 1
	stats.LockRange = 500
	stats.LockConeDegrees = 30
	w := NewWeapon(stats, 1, 0, acquirer, bus, nil, nil)
	aim := physics.Vector3{Z: 1}

	// No lock yet: fire refused.
	if _, ok := w.Fire(0, physics.Vector3{}, aim); ok {
		t.Fatal("lock weapon fired without a lock")
	}

	// The first update acquires tracking; progress then accumulates at
	// dt/LockTime per update.
	w.Update(physics.Vector3{}, aim, 0.1)
	for i := 0; i < 10; i++ {
		w.Update(physics.Vector3{}, aim, 0.1)
	}
	if !w.IsLocked() {
		t.Fatalf("not locked after LockTime of tracking, progress %v", w.LockProgress())
	}
	if *locks != 1 {
		t.Errorf("target_locked published %d times, expected 1", *locks)
	}
	if w.LockTargetID() != 9 {
		t.Errorf("LockTargetID() = %d, expected 9", w.LockTargetID())
	}

	// Locked weapon fires and carries the target in the command.
	cmd, ok := w.Fire(10, physics.Vector3{}, aim)
	if !ok {
		t.Fatal("locked weapon refused to fire")
	}
	if cmd.Target == nil || cmd.Target.GetID() != 9 {
		t.Error("fire command missing the locked target")
	}

	// Target death drops the lock with a single target_lost.
	target.alive = false
	w.Update(physics.Vector3{}, aim, 0.1)
	w.Update(physics.Vector3{}, aim, 0.1)
	if w.IsLocked() {
		t.Error("still locked after target died")
	}
	if *losses != 1 {
		t.Errorf("target_lost published %d times, expected 1", *losses)
	}
}

func TestWeapon_LockSwitchResetsProgress(t *testing.T) {
	first := newDummyTarget(1, physics.Vector3{Z: 100}, 5)
	acquirer := &fixedAcquirer{target: first}

	stats := testGunStats()
	stats.RequiresLock = true
	stats.LockTime = 1
	w := NewWeapon(stats, 10, 0, acquirer, nil, nil, nil)
	aim := physics.Vector3{Z: 1}

	w.Update(physics.Vector3{}, aim, 0.1) // acquire tracking
	w.Update(physics.Vector3{}, aim, 0.5)
	if w.LockProgress() <= 0 {
		t.Fatal("no lock progress on a tracked target")
	}

	// A different candidate resets progress without completing.
	acquirer.target = newDummyTarget(2, physics.Vector3{Z: 120}, 5)
	w.Update(physics.Vector3{}, aim, 0.1)
	if w.LockProgress() != 0 {
		t.Errorf("LockProgress() = %v after target switch, expected 0", w.LockProgress())
	}
	if w.IsLocked() {
		t.Error("locked immediately after switching targets")
	}
}

func TestWeapon_CriticalRoll(t *testing.T) {
	stats := testGunStats()
	stats.CriticalChance = 0.25
	stats.CriticalMultiplier = 2

	// rng below the chance: critical.
	w := NewWeapon(stats, 1, 0, nil, nil, func() float64 { return 0.1 }, nil)
	cmd, ok := w.Fire(0, physics.Vector3{}, physics.Vector3{Z: 1})
	if !ok {
		t.Fatal("fire rejected")
	}
	if !cmd.Critical || cmd.Damage != 20 {
		t.Errorf("expected critical for 20 damage, got critical=%v damage=%v", cmd.Critical, cmd.Damage)
	}

	// rng above the chance: normal hit.
	w = NewWeapon(stats, 1, 0, nil, nil, func() float64 { return 0.9 }, nil)
	cmd, _ = w.Fire(0, physics.Vector3{}, physics.Vector3{Z: 1})
	if cmd.Critical || cmd.Damage != 10 {
		t.Errorf("expected normal hit for 10 damage, got critical=%v damage=%v", cmd.Critical, cmd.Damage)
	}
}

func TestWeapon_SpreadStaysInsideCone(t *testing.T) {
	stats := testGunStats()
	stats.SpreadDegrees = 5

	seq := []float64{0.3, 0.7, 0.99, 0.01, 0.5, 0.5}
	i := 0
	rng := func() float64 {
		v := seq[i%len(seq)]
		i++
		return v
	}
	w := NewWeapon(stats, 1, 0, nil, nil, rng, nil)

	aim := physics.Vector3{Z: 1}
	now := 0.0
	for shot := 0; shot < 3; shot++ {
		cmd, ok := w.Fire(now, physics.Vector3{}, aim)
		if !ok {
			t.Fatal("fire rejected")
		}
		angle := physics.RadToDeg(cmd.Direction.AngleBetween(aim))
		if angle > 5+1e-9 {
			t.Errorf("shot deflected %v degrees, cone is 5", angle)
		}
		now += 1
	}
}

func TestWeapon_EnergyReportedNotGating(t *testing.T) {
	bus := event.NewEventBus()
	var drawn float64
	bus.Subscribe(event.EnergyConsumed, func(e event.Event) {
		drawn += e.(*event.WeaponEvent).Energy
	})

	stats := testGunStats()
	stats.EnergyConsumption = 15
	w := NewWeapon(stats, 1, 0, nil, bus, nil, nil)

	// Fires repeatedly regardless of how much energy has been drawn.
	for shot := 0; shot < 3; shot++ {
		if _, ok := w.Fire(float64(shot), physics.Vector3{}, physics.Vector3{Z: 1}); !ok {
			t.Fatalf("shot %d rejected", shot)
		}
	}
	if drawn != 45 {
		t.Errorf("energy drawn = %v, expected 45", drawn)
	}
}
