// pkg/physics/query.go
package physics

// Collidable is implemented by entities that participate in spatial
// queries. The query service holds collidables weakly: the entity may be
// deactivated or destroyed between ticks and callers must tolerate that.
type Collidable interface {
	GetID() uint64
	GetPosition() Vector3
	GetCollider() Sphere
	GetLayer() Layer
}

// RayHit describes the nearest entity struck by a raycast.
type RayHit struct {
	Point  Vector3
	Normal Vector3
	Entity Collidable
}

// QueryService is the collision/overlap query capability the combat
// simulation depends on. The simulation is agnostic to the spatial index
// behind it.
type QueryService interface {
	// Raycast returns the nearest hit along the ray within maxDistance,
	// restricted to entities on the given layers.
	Raycast(origin, direction Vector3, maxDistance float64, mask Layer) (RayHit, bool)
	// OverlapSphere returns all entities on the given layers whose
	// colliders intersect the sphere.
	OverlapSphere(center Vector3, radius float64, mask Layer) []Collidable
}
