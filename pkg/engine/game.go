// pkg/engine/game.go
package engine

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-dogfight/pkg/camera"
	"github.com/opd-ai/go-dogfight/pkg/config"
	"github.com/opd-ai/go-dogfight/pkg/entity"
	"github.com/opd-ai/go-dogfight/pkg/event"
	"github.com/opd-ai/go-dogfight/pkg/flight"
	"github.com/opd-ai/go-dogfight/pkg/logging"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// GameStatus tracks the match lifecycle.
type GameStatus int

const (
	GameStatusWaiting GameStatus = iota
	GameStatusActive
	GameStatusEnded
)

// maxFrameTime caps the wall-clock delta fed into the simulation so a
// paused or hitching process cannot produce a giant integration step.
const maxFrameTime = 0.1

var (
	// ErrUnknownShip is returned when an operation names a ship ID that
	// is not in the game.
	ErrUnknownShip = errors.New("unknown ship")
	// ErrUnknownShipClass is returned when spawning with a ship class
	// name absent from the config.
	ErrUnknownShipClass = errors.New("unknown ship class")
	// ErrProjectileCapReached is returned when a shot would exceed the
	// configured projectile budget.
	ErrProjectileCapReached = errors.New("projectile cap reached")
)

// Game owns the full simulation state and drives it in fixed-order
// phases each tick: flight, then weapons, then projectiles, then
// cameras. All mutation happens on the Update goroutine; concurrent
// readers take the entity lock.
type Game struct {
	Config      *config.GameConfig
	Ships       map[uint64]*entity.Ship
	Projectiles map[uint64]*entity.Projectile
	Teams       map[int]*Team
	EntityLock  sync.RWMutex

	EventBus *event.Bus
	World    *physics.World
	Resolver *entity.ProjectileResolver

	Status      GameStatus
	WinningTeam int
	CurrentTick uint64
	TimeStep    float64 // seconds per fixed step
	ElapsedTime float64 // simulation seconds since start
	LastUpdate  time.Time

	systems       *ecs.World
	cameras       map[uint64]*camera.Rig
	rng           func() float64
	logger        *logging.Logger
	everContested bool
}

// Team is a side in the match.
type Team struct {
	ID        int
	Name      string
	Color     string
	Score     int
	ShipCount int
}

// NewGame creates a game from the given configuration. Nil config means
// the built-in defaults.
func NewGame(cfg *config.GameConfig) *Game {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	g := &Game{
		Config:      cfg,
		Ships:       make(map[uint64]*entity.Ship),
		Projectiles: make(map[uint64]*entity.Projectile),
		Teams:       make(map[int]*Team),
		EventBus:    event.NewEventBus(),
		WinningTeam: -1,
		TimeStep:    1.0 / float64(tickRate),
		LastUpdate:  time.Now(),
		cameras:     make(map[uint64]*camera.Rig),
		rng:         rand.Float64,
		logger:      logging.NewLogger("engine"),
	}

	g.initSpatialIndex()
	g.initTeams()
	g.initSystems()
	g.Resolver = entity.NewProjectileResolver(g.World, g.EventBus, physics.LayerShips, g.logger)
	g.registerEventHandlers()

	return g
}

// SetRand replaces the random source used for criticals and spread.
// Tests inject a deterministic sequence here.
func (g *Game) SetRand(rng func() float64) {
	g.rng = rng
}

// initSpatialIndex creates the collision index covering the world cube.
func (g *Game) initSpatialIndex() {
	worldSize := g.Config.WorldSize
	if worldSize <= 0 {
		worldSize = 4000
	}
	g.World = physics.NewWorld(physics.Box{
		Size: physics.Vector3{X: worldSize, Y: worldSize, Z: worldSize},
	}, 10)
}

// initTeams initializes the teams from the game configuration.
func (g *Game) initTeams() {
	for i, teamConfig := range g.Config.Teams {
		g.Teams[i] = &Team{
			ID:    i,
			Name:  teamConfig.Name,
			Color: teamConfig.Color,
		}
	}
}

// initSystems registers the tick phases in priority order.
func (g *Game) initSystems() {
	g.systems = &ecs.World{}
	g.systems.AddSystem(&FlightSystem{game: g})
	g.systems.AddSystem(&WeaponSystem{game: g})
	g.systems.AddSystem(&ProjectileSystem{game: g})
	g.systems.AddSystem(&CameraSystem{game: g})
}

// registerEventHandlers wires the engine's own reactions to simulation
// events.
func (g *Game) registerEventHandlers() {
	g.EventBus.Subscribe(event.ShipDestroyed, func(e event.Event) {
		shipEvent, ok := e.(*event.ShipEvent)
		if !ok {
			return
		}
		g.handleShipDestroyed(shipEvent)
	})
}

func (g *Game) handleShipDestroyed(e *event.ShipEvent) {
	if team, ok := g.Teams[e.TeamID]; ok && team.ShipCount > 0 {
		team.ShipCount--
	}
	// Credit the attacker's team.
	if attacker, ok := g.Ships[e.SourceID]; ok {
		if team, ok := g.Teams[attacker.TeamID]; ok {
			team.Score++
		}
	}
	g.logger.Info("ship destroyed", "ship", e.ShipID, "team", e.TeamID, "by", e.SourceID)
}

// Start marks the game active and publishes game_started.
func (g *Game) Start() {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()
	if g.Status != GameStatusWaiting {
		return
	}
	g.Status = GameStatusActive
	g.LastUpdate = time.Now()
	g.EventBus.Publish(&event.BaseEvent{EventType: event.GameStarted, Source: g})
	g.logger.Info("game started", "teams", len(g.Teams), "ships", len(g.Ships))
}

// Update advances the simulation by the wall-clock time since the last
// call, capped to keep integration stable.
func (g *Game) Update() {
	now := time.Now()
	dt := now.Sub(g.LastUpdate).Seconds()
	g.LastUpdate = now
	if dt > maxFrameTime {
		dt = maxFrameTime
	}
	g.Step(dt)
}

// Step advances the simulation by exactly dt seconds: rebuild the
// collision index, run the phase systems in order, sweep dead entities
// and check the win condition.
func (g *Game) Step(dt float64) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	if g.Status != GameStatusActive || dt <= 0 {
		return
	}

	g.CurrentTick++
	g.ElapsedTime += dt

	g.rebuildIndex()
	g.systems.Update(float32(dt))
	g.sweep()
	g.checkWinCondition()
}

// rebuildIndex repopulates the spatial index from the live ships. Ships
// are the only hit targets; projectiles query, they are never queried.
func (g *Game) rebuildIndex() {
	entries := make([]physics.Collidable, 0, len(g.Ships))
	for _, ship := range g.Ships {
		if ship.Active {
			entries = append(entries, ship)
		}
	}
	g.World.Rebuild(entries)
}

// sweep removes resolved projectiles and destroyed ships from the maps.
func (g *Game) sweep() {
	for id, p := range g.Projectiles {
		if !p.Active {
			delete(g.Projectiles, id)
		}
	}
	for id, ship := range g.Ships {
		if !ship.Active {
			delete(g.Ships, id)
			delete(g.cameras, id)
		}
	}
}

// checkWinCondition ends the game by team elimination. It only engages
// once at least two teams have fielded ships, so a one-team sandbox can
// run forever.
func (g *Game) checkWinCondition() {
	alive := -1
	contested := 0
	for _, team := range g.Teams {
		if team.ShipCount > 0 {
			contested++
			alive = team.ID
		}
	}
	if contested > 1 {
		g.everContested = true
		return
	}
	if !g.everContested {
		return
	}
	g.endGame(alive)
}

func (g *Game) endGame(winningTeam int) {
	if g.Status == GameStatusEnded {
		return
	}
	g.Status = GameStatusEnded
	g.WinningTeam = winningTeam
	g.EventBus.Publish(&event.BaseEvent{EventType: event.GameEnded, Source: g})
	g.logger.Info("game ended", "winner", winningTeam, "tick", g.CurrentTick)
}

// AddShip spawns a ship of the named class for a team and returns its
// ID. The class must exist in the config.
func (g *Game) AddShip(name string, teamID int, className string, spawn flight.Pose) (uint64, error) {
	shipCfg, ok := g.Config.FindShip(className)
	if !ok {
		return 0, ErrUnknownShipClass
	}

	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	params := flightParamsFromConfig(shipCfg.Flight)
	ship := entity.NewShip(name, teamID, params, spawn, shipCfg.MaxHull, shipCfg.Radius, g.EventBus)

	targets := &entity.ConeTargetQuery{Query: g.World, Mask: physics.LayerShips}
	for _, weaponName := range shipCfg.Weapons {
		weaponCfg, ok := g.Config.FindWeapon(weaponName)
		if !ok {
			g.logger.Warn("ship class references unknown weapon", "class", className, "weapon", weaponName)
			continue
		}
		ship.AddWeapon(weaponStatsFromConfig(weaponCfg), targets, g.rng)
	}

	g.Ships[ship.GetID()] = ship
	if team, ok := g.Teams[teamID]; ok {
		team.ShipCount++
	}
	return ship.GetID(), nil
}

// RemoveShip despawns a ship without counting a kill for anyone.
func (g *Game) RemoveShip(shipID uint64) error {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	ship, ok := g.Ships[shipID]
	if !ok {
		return ErrUnknownShip
	}
	ship.Active = false
	delete(g.Ships, shipID)
	delete(g.cameras, shipID)
	if team, ok := g.Teams[ship.TeamID]; ok && team.ShipCount > 0 {
		team.ShipCount--
	}
	return nil
}

// SetShipInput sets the control input a ship applies on the next tick.
func (g *Game) SetShipInput(shipID uint64, input flight.ControlInput) error {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	ship, ok := g.Ships[shipID]
	if !ok {
		return ErrUnknownShip
	}
	ship.SetInput(input)
	return nil
}

// SetShipAim overrides a ship's weapon aim ray.
func (g *Game) SetShipAim(shipID uint64, origin, direction physics.Vector3) error {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	ship, ok := g.Ships[shipID]
	if !ok {
		return ErrUnknownShip
	}
	ship.SetAim(origin, direction)
	return nil
}

// FireWeapon attempts to fire one of a ship's weapons at the current
// simulation time. A weapon-side rejection (cooldown, overheat, missing
// lock) returns nil: it is a no-op, not an error.
func (g *Game) FireWeapon(shipID uint64, weaponIndex int) error {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	ship, ok := g.Ships[shipID]
	if !ok {
		return ErrUnknownShip
	}

	cmd, fired := ship.Fire(weaponIndex, g.ElapsedTime)
	if !fired {
		return nil
	}

	if cmd.Stats.Recoil > 0 {
		ship.ApplyImpulse(cmd.Direction.Scale(-cmd.Stats.Recoil))
	}

	if cmd.Stats.Trajectory == entity.Hitscan {
		g.Resolver.ResolveHitscan(cmd, g.ElapsedTime)
		g.EventBus.Publish(event.NewWeaponEvent(event.ProjectileFired, ship, shipID, weaponIndex))
		return nil
	}

	if len(g.Projectiles) >= g.maxProjectiles() {
		g.logger.Warn("projectile cap reached, dropping shot", "ship", shipID)
		return ErrProjectileCapReached
	}

	p := entity.NewProjectile(cmd, g.ElapsedTime)
	g.Projectiles[p.GetID()] = p
	g.EventBus.Publish(event.NewWeaponEvent(event.ProjectileFired, ship, shipID, weaponIndex))
	return nil
}

func (g *Game) maxProjectiles() int {
	if g.Config.MaxProjectiles <= 0 {
		return 512
	}
	return g.Config.MaxProjectiles
}

// AttachCamera creates (or returns) the chase camera following a ship.
func (g *Game) AttachCamera(shipID uint64) (*camera.Rig, error) {
	g.EntityLock.Lock()
	defer g.EntityLock.Unlock()

	ship, ok := g.Ships[shipID]
	if !ok {
		return nil, ErrUnknownShip
	}
	if rig, ok := g.cameras[shipID]; ok {
		return rig, nil
	}

	rig := camera.NewRig(camera.Params{
		Distance:    g.Config.Camera.Distance,
		Height:      g.Config.Camera.Height,
		FollowRate:  g.Config.Camera.FollowRate,
		LookAhead:   g.Config.Camera.LookAhead,
		FieldOfView: g.Config.Camera.FieldOfView,
	}, logging.NewLogger("camera"))
	rig.SetTarget(ship.Flight)
	g.cameras[shipID] = rig
	return rig, nil
}

// GetShip returns a ship by ID.
func (g *Game) GetShip(shipID uint64) (*entity.Ship, bool) {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()
	ship, ok := g.Ships[shipID]
	return ship, ok
}

// flightParamsFromConfig converts the config flight block into sanitized
// flight parameters. Zero-valued fields fall back to the defaults inside
// the sanitizers.
func flightParamsFromConfig(f config.Flight) flight.FlightParams {
	return flight.SanitizeFlightParams(flight.FlightParams{
		Attitude: flight.AttitudeParams{
			PitchRate:    f.PitchRate,
			YawRate:      f.YawRate,
			RollRate:     f.RollRate,
			MaxSpeed:     f.MaxSpeed,
			Acceleration: f.Acceleration,
			StrafeSpeed:  f.StrafeSpeed,
		},
		Stall: flight.StallParams{
			BaseStallSpeed:   f.BaseStallSpeed,
			ThrottleRelief:   f.ThrottleRelief,
			Hysteresis:       f.StallHysteresis,
			TransitionRate:   f.StallBlendRate,
			StalledAuthority: f.StalledAuthority,
		},
	})
}

// weaponStatsFromConfig converts a config weapon block into weapon stats.
func weaponStatsFromConfig(w config.WeaponConfig) entity.WeaponStats {
	return entity.WeaponStats{
		Name:               w.Name,
		Trajectory:         entity.TrajectoryFromString(w.Trajectory),
		DamageType:         entity.DamageTypeFromString(w.DamageType),
		Damage:             w.Damage,
		FireRate:           w.FireRate,
		Range:              w.Range,
		ProjectileSpeed:    w.ProjectileSpeed,
		HeatGeneration:     w.HeatGeneration,
		MaxHeat:            w.MaxHeat,
		HeatDissipation:    w.HeatDissipation,
		OverheatCooldown:   w.OverheatCooldown,
		EnergyConsumption:  w.EnergyConsumption,
		SpreadDegrees:      w.SpreadDegrees,
		Recoil:             w.Recoil,
		CriticalChance:     w.CriticalChance,
		CriticalMultiplier: w.CriticalMultiplier,
		KnockbackForce:     w.KnockbackForce,
		AOERadius:          w.AOERadius,
		CanPenetrate:       w.CanPenetrate,
		MaxPenetrations:    w.MaxPenetrations,
		RequiresLock:       w.RequiresLock,
		LockTime:           w.LockTime,
		LockRange:          w.LockRange,
		LockConeDegrees:    w.LockConeDegrees,
		ProjectileRadius:   w.ProjectileRadius,
		ProjectileLifetime: w.ProjectileLifetime,
		ArcHeight:          w.ArcHeight,
		HomingTurnRate:     w.HomingTurnRate,
		HomingAcceleration: w.HomingAcceleration,
	}
}
