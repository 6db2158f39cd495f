// pkg/entity/ship.go
package entity

import (
	"github.com/opd-ai/go-dogfight/pkg/event"
	"github.com/opd-ai/go-dogfight/pkg/flight"
	"github.com/opd-ai/go-dogfight/pkg/physics"
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

// impulseDecayRate controls how fast knockback velocity bleeds off, as a
// fraction per second.
const impulseDecayRate = 3.0

// Ship is a player-controlled fighter: a flight model, a weapon loadout
// and a hull. The ship owns its pose through the flight controller; the
// engine reads Position and Velocity after each Update.
type Ship struct {
	BaseEntity
	Name   string
	TeamID int

	Flight  *flight.ShipFlightController
	Weapons []*Weapon

	Hull    float64
	MaxHull float64

	Input flight.ControlInput
	// AimOrigin and AimDirection feed the weapons' lock and fire paths.
	// They default to the ship's nose but may be overridden by a pointer
	// aim source.
	AimOrigin    physics.Vector3
	AimDirection physics.Vector3
	aimOverride  bool

	impulse physics.Vector3

	bus *event.Bus
}

// NewShip creates a ship at the given spawn pose.
func NewShip(name string, teamID int, params flight.FlightParams, spawn flight.Pose, maxHull, radius float64, bus *event.Bus) *Ship {
	maxHull = validation.Positive(maxHull, 100)
	s := &Ship{
		BaseEntity: NewBaseEntity(spawn.Position, radius, physics.LayerShips),
		Name:       name,
		TeamID:     teamID,
		Flight:     flight.NewShipFlightController(params, spawn),
		Hull:       maxHull,
		MaxHull:    maxHull,
		bus:        bus,
	}
	pose := s.Flight.Pose()
	s.AimOrigin = pose.Position
	s.AimDirection = pose.Orientation.Forward
	if bus != nil {
		bus.Publish(event.NewShipEvent(event.ShipCreated, s, s.GetID(), teamID))
	}
	return s
}

// AddWeapon mounts a weapon built from the given stats and returns its
// index in the loadout.
func (s *Ship) AddWeapon(stats WeaponStats, targets TargetAcquirer, rng func() float64) int {
	idx := len(s.Weapons)
	s.Weapons = append(s.Weapons, NewWeapon(stats, s.GetID(), idx, targets, s.bus, rng, nil))
	return idx
}

// SetInput replaces the control input applied on the next Update.
func (s *Ship) SetInput(input flight.ControlInput) {
	s.Input = input
}

// SetAim overrides the weapons' aim ray. Until called, weapons aim along
// the ship's nose.
func (s *Ship) SetAim(origin, direction physics.Vector3) {
	s.AimOrigin = origin
	s.AimDirection = direction
	s.aimOverride = true
}

// ClearAim reverts weapon aim to the ship's nose.
func (s *Ship) ClearAim() {
	s.aimOverride = false
}

// Update advances the flight model and every mounted weapon by one tick.
func (s *Ship) Update(dt float64) {
	if !s.Active {
		return
	}
	dt = validation.TickDuration(dt)
	if dt == 0 {
		return
	}

	s.Flight.Update(s.Input, dt)

	pose := s.Flight.Pose()
	s.Velocity = s.Flight.Velocity()

	// Knockback rides on top of the flight model's velocity and decays.
	if s.impulse != (physics.Vector3{}) {
		s.Position = pose.Position.Add(s.impulse.Scale(dt))
		pose.Position = s.Position
		s.Flight.SetPose(pose)
		s.impulse = s.impulse.Scale(validation.Clamp(1-impulseDecayRate*dt, 0, 1))
		if s.impulse.LengthSquared() < 1e-4 {
			s.impulse = physics.Vector3{}
		}
	} else {
		s.Position = pose.Position
	}

	if !s.aimOverride {
		s.AimOrigin = pose.Position
		s.AimDirection = pose.Orientation.Forward
	}
}

// UpdateWeapons advances every mounted weapon's heat and lock state. It
// runs as a separate phase after all ships have moved so lock queries
// see this tick's positions.
func (s *Ship) UpdateWeapons(dt float64) {
	if !s.Active {
		return
	}
	for _, w := range s.Weapons {
		w.Update(s.AimOrigin, s.AimDirection, dt)
	}
}

// Fire attempts to fire the weapon at the given loadout index.
func (s *Ship) Fire(weaponIndex int, now float64) (FireCommand, bool) {
	if !s.Active || weaponIndex < 0 || weaponIndex >= len(s.Weapons) {
		return FireCommand{}, false
	}
	return s.Weapons[weaponIndex].Fire(now, s.AimOrigin, s.AimDirection)
}

// TakeDamage applies hull damage. Destruction deactivates the ship and
// publishes ship_destroyed exactly once.
func (s *Ship) TakeDamage(amount float64, damageType DamageType, sourceID uint64) {
	if !s.Active || amount <= 0 {
		return
	}
	s.Hull -= amount
	if s.Hull > 0 {
		return
	}
	s.Hull = 0
	s.Active = false
	if s.bus != nil {
		evt := event.NewShipEvent(event.ShipDestroyed, s, s.GetID(), s.TeamID)
		evt.SourceID = sourceID
		s.bus.Publish(evt)
	}
}

// IsAlive returns true while the ship has hull remaining.
func (s *Ship) IsAlive() bool {
	return s.Active && s.Hull > 0
}

// ApplyImpulse adds a decaying knockback velocity from explosions and
// projectile hits.
func (s *Ship) ApplyImpulse(impulse physics.Vector3) {
	s.impulse = s.impulse.Add(impulse)
}

// Pose returns the ship's current flight pose.
func (s *Ship) Pose() flight.Pose {
	return s.Flight.Pose()
}

// HullFraction returns remaining hull in [0, 1].
func (s *Ship) HullFraction() float64 {
	if s.MaxHull <= 0 {
		return 0
	}
	return validation.Clamp01(s.Hull / s.MaxHull)
}
