// pkg/engine/state.go
package engine

import (
	"github.com/opd-ai/go-dogfight/pkg/entity"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// GameState is a point-in-time snapshot of the simulation, safe to hand
// to renderers and HUDs without holding the entity lock.
type GameState struct {
	Tick        uint64
	ElapsedTime float64
	Status      GameStatus
	WinningTeam int
	Ships       []ShipState
	Projectiles []ProjectileState
	Teams       []TeamState
}

// ShipState is one ship's snapshot.
type ShipState struct {
	ID       uint64
	Name     string
	TeamID   int
	Position physics.Vector3
	Velocity physics.Vector3
	Forward  physics.Vector3
	Up       physics.Vector3
	Hull     float64
	MaxHull  float64
	Speed    float64
	Stalled  bool
	Bank     float64
	Pitch    float64
	Yaw      float64
	Weapons  []WeaponState
}

// WeaponState is one weapon's snapshot.
type WeaponState struct {
	Name         string
	Heat         float64
	MaxHeat      float64
	Overheated   bool
	Locked       bool
	LockProgress float64
	LockTargetID uint64
}

// ProjectileState is one projectile's snapshot.
type ProjectileState struct {
	ID         uint64
	OwnerID    uint64
	Trajectory entity.TrajectoryKind
	Position   physics.Vector3
	Velocity   physics.Vector3
}

// TeamState is one team's snapshot.
type TeamState struct {
	ID        int
	Name      string
	Score     int
	ShipCount int
}

// GetGameState builds a snapshot of the current simulation state.
func (g *Game) GetGameState() *GameState {
	g.EntityLock.RLock()
	defer g.EntityLock.RUnlock()

	state := &GameState{
		Tick:        g.CurrentTick,
		ElapsedTime: g.ElapsedTime,
		Status:      g.Status,
		WinningTeam: g.WinningTeam,
		Ships:       make([]ShipState, 0, len(g.Ships)),
		Projectiles: make([]ProjectileState, 0, len(g.Projectiles)),
		Teams:       make([]TeamState, 0, len(g.Teams)),
	}

	for _, ship := range g.Ships {
		pose := ship.Pose()
		fs := ship.Flight.State()
		ss := ShipState{
			ID:       ship.GetID(),
			Name:     ship.Name,
			TeamID:   ship.TeamID,
			Position: pose.Position,
			Velocity: ship.Velocity,
			Forward:  pose.Orientation.Forward,
			Up:       pose.Orientation.Up,
			Hull:     ship.Hull,
			MaxHull:  ship.MaxHull,
			Speed:    fs.Speed,
			Stalled:  fs.Stalled,
			Bank:     fs.Bank,
			Pitch:    fs.Pitch,
			Yaw:      fs.Yaw,
			Weapons:  make([]WeaponState, 0, len(ship.Weapons)),
		}
		for _, w := range ship.Weapons {
			ss.Weapons = append(ss.Weapons, WeaponState{
				Name:         w.Stats().Name,
				Heat:         w.Heat(),
				MaxHeat:      w.Stats().MaxHeat,
				Overheated:   w.IsOverheated(),
				Locked:       w.IsLocked(),
				LockProgress: w.LockProgress(),
				LockTargetID: w.LockTargetID(),
			})
		}
		state.Ships = append(state.Ships, ss)
	}

	for _, p := range g.Projectiles {
		state.Projectiles = append(state.Projectiles, ProjectileState{
			ID:         p.GetID(),
			OwnerID:    p.OwnerID,
			Trajectory: p.Trajectory,
			Position:   p.Position,
			Velocity:   p.Velocity,
		})
	}

	for _, team := range g.Teams {
		state.Teams = append(state.Teams, TeamState{
			ID:        team.ID,
			Name:      team.Name,
			Score:     team.Score,
			ShipCount: team.ShipCount,
		})
	}

	return state
}
