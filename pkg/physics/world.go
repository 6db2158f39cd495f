// pkg/physics/world.go
package physics

// World is the default QueryService implementation: an octree broad phase
// with exact sphere narrow-phase tests. The simulation engine rebuilds it
// once per tick from the live entity set.
type World struct {
	bounds    Box
	capacity  int
	tree      *Octree
	maxRadius float64
}

// NewWorld creates an empty query world covering the given bounds.
func NewWorld(bounds Box, capacity int) *World {
	if capacity <= 0 {
		capacity = 10
	}
	return &World{
		bounds:   bounds,
		capacity: capacity,
		tree:     NewOctree(bounds, capacity),
	}
}

// Rebuild clears the index and inserts the given entities.
func (w *World) Rebuild(objects []Collidable) {
	w.tree.Clear()
	w.maxRadius = 0
	for _, obj := range objects {
		w.Insert(obj)
	}
}

// Insert adds a single entity to the index.
func (w *World) Insert(obj Collidable) {
	if obj == nil {
		return
	}
	if r := obj.GetCollider().Radius; r > w.maxRadius {
		w.maxRadius = r
	}
	w.tree.Insert(obj.GetPosition(), obj)
}

// OverlapSphere returns all entities on the given layers whose colliders
// intersect the query sphere.
func (w *World) OverlapSphere(center Vector3, radius float64, mask Layer) []Collidable {
	if radius < 0 {
		radius = 0
	}
	// Broad phase box is padded by the largest collider radius so entities
	// whose centers lie outside the sphere are still candidates.
	pad := radius + w.maxRadius
	area := Box{Center: center, Size: Vector3{X: pad * 2, Y: pad * 2, Z: pad * 2}}
	query := Sphere{Center: center, Radius: radius}

	var found []Collidable
	for _, obj := range w.tree.Query(area) {
		if obj.GetLayer()&mask == 0 {
			continue
		}
		if query.Collides(obj.GetCollider()) || query.Contains(obj.GetPosition()) {
			found = append(found, obj)
		}
	}
	return found
}

// Raycast returns the nearest entity hit along the ray within maxDistance.
func (w *World) Raycast(origin, direction Vector3, maxDistance float64, mask Layer) (RayHit, bool) {
	direction = direction.Normalize()
	if direction == (Vector3{}) || maxDistance <= 0 {
		return RayHit{}, false
	}

	// Broad phase: a box spanning the ray segment, padded by the largest
	// collider radius.
	end := origin.Add(direction.Scale(maxDistance))
	mid := origin.Add(end).Scale(0.5)
	pad := w.maxRadius * 2
	area := Box{
		Center: mid,
		Size: Vector3{
			X: abs(end.X-origin.X) + pad,
			Y: abs(end.Y-origin.Y) + pad,
			Z: abs(end.Z-origin.Z) + pad,
		},
	}

	var (
		best     RayHit
		bestDist float64
		hitAny   bool
	)
	for _, obj := range w.tree.Query(area) {
		if obj.GetLayer()&mask == 0 {
			continue
		}
		dist, ok := RaySphere(origin, direction, obj.GetCollider(), maxDistance)
		if !ok {
			continue
		}
		if !hitAny || dist < bestDist {
			point := origin.Add(direction.Scale(dist))
			best = RayHit{
				Point:  point,
				Normal: point.Sub(obj.GetCollider().Center).Normalize(),
				Entity: obj,
			}
			bestDist = dist
			hitAny = true
		}
	}
	return best, hitAny
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
