// pkg/engine/systems.go
package engine

import (
	"github.com/EngoEngine/ecs"
)

// Phase priorities. The ecs world runs higher priorities first, which
// fixes the per-tick order: flight moves ships, weapons update heat and
// locks against the moved ships, projectiles resolve against the same
// positions, and cameras read the finished state.
const (
	flightPhase     = 40
	weaponPhase     = 30
	projectilePhase = 20
	cameraPhase     = 10
)

// FlightSystem advances every ship's flight model and pose.
type FlightSystem struct {
	game *Game
}

// Priority implements ecs.Prioritizer.
func (s *FlightSystem) Priority() int { return flightPhase }

// Update implements ecs.System.
func (s *FlightSystem) Update(dt float32) {
	for _, ship := range s.game.Ships {
		ship.Update(float64(dt))
	}
}

// Remove implements ecs.System. Entity membership lives in the game's
// maps, so there is nothing to drop here.
func (s *FlightSystem) Remove(ecs.BasicEntity) {}

// WeaponSystem advances weapon heat and lock state for every ship. It
// reindexes first: ships moved during the flight phase, and lock cones
// and projectile casts must see the post-movement positions.
type WeaponSystem struct {
	game *Game
}

// Priority implements ecs.Prioritizer.
func (s *WeaponSystem) Priority() int { return weaponPhase }

// Update implements ecs.System.
func (s *WeaponSystem) Update(dt float32) {
	s.game.rebuildIndex()
	for _, ship := range s.game.Ships {
		ship.UpdateWeapons(float64(dt))
	}
}

// Remove implements ecs.System.
func (s *WeaponSystem) Remove(ecs.BasicEntity) {}

// ProjectileSystem advances and resolves every live projectile.
type ProjectileSystem struct {
	game *Game
}

// Priority implements ecs.Prioritizer.
func (s *ProjectileSystem) Priority() int { return projectilePhase }

// Update implements ecs.System.
func (s *ProjectileSystem) Update(dt float32) {
	g := s.game
	for _, p := range g.Projectiles {
		g.Resolver.Update(p, float64(dt), g.ElapsedTime)
	}
}

// Remove implements ecs.System.
func (s *ProjectileSystem) Remove(ecs.BasicEntity) {}

// CameraSystem updates every attached chase rig after the simulation
// phases have settled.
type CameraSystem struct {
	game *Game
}

// Priority implements ecs.Prioritizer.
func (s *CameraSystem) Priority() int { return cameraPhase }

// Update implements ecs.System.
func (s *CameraSystem) Update(dt float32) {
	for _, rig := range s.game.cameras {
		rig.Update(float64(dt))
	}
}

// Remove implements ecs.System.
func (s *CameraSystem) Remove(ecs.BasicEntity) {}
