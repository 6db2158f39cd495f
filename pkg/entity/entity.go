// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// DamageType categorizes damage for resistances and presentation.
type DamageType int

const (
	Kinetic DamageType = iota
	Energy
	Explosive
)

// String returns the damage type name.
func (d DamageType) String() string {
	switch d {
	case Kinetic:
		return "Kinetic"
	case Energy:
		return "Energy"
	case Explosive:
		return "Explosive"
	default:
		return "Unknown"
	}
}

// DamageTypeFromString converts a string to a DamageType, defaulting to
// Kinetic for unknown values.
func DamageTypeFromString(s string) DamageType {
	switch s {
	case "Energy":
		return Energy
	case "Explosive":
		return Explosive
	default:
		return Kinetic
	}
}

// Damageable is the damage sink the combat simulation calls into. The
// simulation never mutates target health directly. Implementations are
// held weakly: a target may be destroyed at any tick and callers must
// check IsAlive before relying on it.
type Damageable interface {
	physics.Collidable
	TakeDamage(amount float64, damageType DamageType, sourceID uint64)
	IsAlive() bool
}

// ImpulseReceiver is optionally implemented by entities that react to
// knockback from explosions and projectile hits.
type ImpulseReceiver interface {
	ApplyImpulse(impulse physics.Vector3)
}

// BaseEntity contains common functionality for all simulation entities.
// Identity comes from the embedded ecs.BasicEntity, so IDs are unique
// across ships and projectiles.
type BaseEntity struct {
	ecs.BasicEntity
	Position physics.Vector3
	Velocity physics.Vector3
	Radius   float64
	Layer    physics.Layer
	Active   bool
}

// NewBaseEntity creates an active entity with a fresh identity.
func NewBaseEntity(position physics.Vector3, radius float64, layer physics.Layer) BaseEntity {
	return BaseEntity{
		BasicEntity: ecs.NewBasic(),
		Position:    position,
		Radius:      radius,
		Layer:       layer,
		Active:      true,
	}
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() uint64 {
	return e.BasicEntity.ID()
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector3 {
	return e.Position
}

// GetCollider returns the entity's collision sphere centered at its
// current position.
func (e *BaseEntity) GetCollider() physics.Sphere {
	return physics.Sphere{
		Center: e.Position,
		Radius: e.Radius,
	}
}

// GetLayer returns the entity's collision layer
func (e *BaseEntity) GetLayer() physics.Layer {
	return e.Layer
}

// Update integrates the entity's position from its velocity.
func (e *BaseEntity) Update(deltaTime float64) {
	e.Position = e.Position.Add(e.Velocity.Scale(deltaTime))
}
