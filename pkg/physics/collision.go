// pkg/physics/collision.go
package physics

import "math"

// Layer is a collision layer bitmask used to filter queries.
type Layer uint32

// Collision layers used by the simulation.
const (
	LayerShips Layer = 1 << iota
	LayerProjectiles
	LayerTerrain

	LayerAll Layer = ^Layer(0)
)

// Sphere represents a spherical collision shape
type Sphere struct {
	Center Vector3
	Radius float64
}

// Collides checks if two spheres are colliding
func (s Sphere) Collides(other Sphere) bool {
	return s.Center.Distance(other.Center) < s.Radius+other.Radius
}

// Contains reports whether the point lies inside the sphere.
func (s Sphere) Contains(point Vector3) bool {
	return s.Center.Distance(point) <= s.Radius
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector3
	Penetration  float64
	ContactPoint Vector3
}

// CheckCollision performs detailed collision detection between two spheres
func CheckCollision(a, b Sphere) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance > a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	penetration := a.Radius + b.Radius - distance
	normal = normal.Normalize()
	contactPoint := a.Center.Add(normal.Scale(a.Radius))

	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  penetration,
		ContactPoint: contactPoint,
	}
}

// RaySphere intersects a ray with a sphere. It returns the distance along
// the ray to the first intersection point and whether the ray hits within
// maxDistance. A ray starting inside the sphere hits at distance 0.
func RaySphere(origin, dir Vector3, sphere Sphere, maxDistance float64) (float64, bool) {
	dir = dir.Normalize()
	if dir == (Vector3{}) || maxDistance <= 0 {
		return 0, false
	}
	oc := origin.Sub(sphere.Center)
	if oc.LengthSquared() <= sphere.Radius*sphere.Radius {
		return 0, true
	}
	b := oc.Dot(dir)
	c := oc.LengthSquared() - sphere.Radius*sphere.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}
