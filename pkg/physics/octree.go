// pkg/physics/octree.go
package physics

// Octree for spatial partitioning
type Octree struct {
	Boundary Box
	Capacity int
	Points   []Vector3
	Objects  []Collidable
	Divided  bool
	Children [8]*Octree
}

// Box represents an axis-aligned box area
type Box struct {
	Center Vector3
	Size   Vector3 // full extents along each axis
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(point Vector3) bool {
	return point.X >= b.Center.X-b.Size.X/2 &&
		point.X < b.Center.X+b.Size.X/2 &&
		point.Y >= b.Center.Y-b.Size.Y/2 &&
		point.Y < b.Center.Y+b.Size.Y/2 &&
		point.Z >= b.Center.Z-b.Size.Z/2 &&
		point.Z < b.Center.Z+b.Size.Z/2
}

// Intersects reports whether two boxes overlap.
func (b Box) Intersects(other Box) bool {
	return !(other.Center.X-other.Size.X/2 > b.Center.X+b.Size.X/2 ||
		other.Center.X+other.Size.X/2 < b.Center.X-b.Size.X/2 ||
		other.Center.Y-other.Size.Y/2 > b.Center.Y+b.Size.Y/2 ||
		other.Center.Y+other.Size.Y/2 < b.Center.Y-b.Size.Y/2 ||
		other.Center.Z-other.Size.Z/2 > b.Center.Z+b.Size.Z/2 ||
		other.Center.Z+other.Size.Z/2 < b.Center.Z-b.Size.Z/2)
}

// BoxAroundSphere returns the tightest box enclosing the sphere.
func BoxAroundSphere(s Sphere) Box {
	d := s.Radius * 2
	return Box{Center: s.Center, Size: Vector3{X: d, Y: d, Z: d}}
}

// NewOctree creates a new octree with the given boundary and capacity
func NewOctree(boundary Box, capacity int) *Octree {
	return &Octree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector3, 0, capacity),
		Objects:  make([]Collidable, 0, capacity),
		Divided:  false,
	}
}

// Insert adds an object at the given point, subdividing when the node is full
func (ot *Octree) Insert(point Vector3, object Collidable) bool {
	if !ot.Boundary.Contains(point) {
		return false
	}

	if len(ot.Points) < ot.Capacity && !ot.Divided {
		ot.Points = append(ot.Points, point)
		ot.Objects = append(ot.Objects, object)
		return true
	}

	if !ot.Divided {
		ot.Subdivide()
	}

	for _, child := range ot.Children {
		if child.Insert(point, object) {
			return true
		}
	}
	return false
}

// Subdivide splits the octree into eight octants
func (ot *Octree) Subdivide() {
	c := ot.Boundary.Center
	half := ot.Boundary.Size.Scale(0.5)
	quarter := ot.Boundary.Size.Scale(0.25)

	i := 0
	for _, dx := range []float64{-1, 1} {
		for _, dy := range []float64{-1, 1} {
			for _, dz := range []float64{-1, 1} {
				center := Vector3{
					X: c.X + dx*quarter.X,
					Y: c.Y + dy*quarter.Y,
					Z: c.Z + dz*quarter.Z,
				}
				ot.Children[i] = NewOctree(Box{Center: center, Size: half}, ot.Capacity)
				i++
			}
		}
	}

	// Reinsert stored objects into the children.
	points := ot.Points
	objects := ot.Objects
	ot.Points = nil
	ot.Objects = nil
	ot.Divided = true
	for i, p := range points {
		ot.Insert(p, objects[i])
	}
}

// Query returns all objects whose insertion point lies within the area
func (ot *Octree) Query(area Box) []Collidable {
	found := make([]Collidable, 0)

	if !ot.Boundary.Intersects(area) {
		return found
	}

	for i, point := range ot.Points {
		if area.Contains(point) {
			found = append(found, ot.Objects[i])
		}
	}

	if !ot.Divided {
		return found
	}

	for _, child := range ot.Children {
		found = append(found, child.Query(area)...)
	}

	return found
}

// Clear removes all objects, keeping the boundary and capacity.
func (ot *Octree) Clear() {
	ot.Points = ot.Points[:0]
	ot.Objects = ot.Objects[:0]
	ot.Divided = false
	ot.Children = [8]*Octree{}
}
