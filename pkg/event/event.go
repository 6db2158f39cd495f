// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types. Weapon and damage notifications are fire-and-forget:
// the simulation publishes them and never waits on handlers.
const (
	ShipCreated     Type = "ship_created"
	ShipDestroyed   Type = "ship_destroyed"
	ProjectileFired Type = "projectile_fired"
	EntityDamaged   Type = "entity_damaged"
	HeatChanged     Type = "heat_changed"
	TargetLocked    Type = "target_locked"
	TargetLost      Type = "target_lost"
	WeaponOverheated Type = "weapon_overheated"
	WeaponCooledDown Type = "weapon_cooled_down"
	EnergyConsumed   Type = "energy_consumed"
	GameStarted      Type = "game_started"
	GameEnded        Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type]map[int]Handler
	nextID   int
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[int]Handler),
	}
}

// Subscribe registers a handler for a specific event type and returns a
// function that removes the subscription.
func (b *Bus) Subscribe(eventType Type, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[eventType][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[eventType], id)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.GetType()]))
	for _, h := range b.handlers[event.GetType()] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// WeaponEvent carries weapon state-machine notifications: heat changes,
// overheat transitions, energy consumption and lock progress.
type WeaponEvent struct {
	BaseEvent
	ShipID      uint64
	WeaponIndex int
	Heat        float64 // current heat for heat_changed / overheat events
	Energy      float64 // energy drawn for energy_consumed events
	TargetID    uint64  // tracked target for lock events
}

// NewWeaponEvent creates a new weapon event
func NewWeaponEvent(eventType Type, source interface{}, shipID uint64, weaponIndex int) *WeaponEvent {
	return &WeaponEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:      shipID,
		WeaponIndex: weaponIndex,
	}
}

// DamageEvent contains information about damage applied to an entity
type DamageEvent struct {
	BaseEvent
	TargetID uint64
	SourceID uint64
	Amount   float64
	Critical bool
}

// NewDamageEvent creates a new damage event
func NewDamageEvent(source interface{}, targetID, sourceID uint64, amount float64, critical bool) *DamageEvent {
	return &DamageEvent{
		BaseEvent: BaseEvent{
			EventType: EntityDamaged,
			Source:    source,
		},
		TargetID: targetID,
		SourceID: sourceID,
		Amount:   amount,
		Critical: critical,
	}
}

// ShipEvent contains information about ship lifecycle events
type ShipEvent struct {
	BaseEvent
	ShipID   uint64
	TeamID   int
	SourceID uint64 // attacker for ship_destroyed, zero otherwise
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uint64, teamID int) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID: shipID,
		TeamID: teamID,
	}
}
