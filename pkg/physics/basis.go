// pkg/physics/basis.go
package physics

import "math"

// Basis is an orthonormal orientation frame. Forward is the facing
// direction, Right points starboard and Up completes the right-handed
// frame (Right = Forward x Up in world coordinates, Y up).
type Basis struct {
	Forward Vector3
	Right   Vector3
	Up      Vector3
}

// IdentityBasis returns the default orientation: facing +Z with +Y up.
func IdentityBasis() Basis {
	return Basis{
		Forward: Vector3{Z: 1},
		Right:   Vector3{X: 1},
		Up:      Vector3{Y: 1},
	}
}

// LookRotation builds a basis facing direction with the given up hint.
// A zero direction returns the identity basis. When the direction is
// parallel to the hint, a fallback axis is substituted so the result
// stays orthonormal.
func LookRotation(direction, upHint Vector3) Basis {
	forward := direction.Normalize()
	if forward == (Vector3{}) {
		return IdentityBasis()
	}
	if upHint == (Vector3{}) {
		upHint = Up
	}
	right := upHint.Normalize().Cross(forward)
	if right.LengthSquared() < 1e-12 {
		// Direction parallel to the up hint; pick any perpendicular axis.
		right = Vector3{X: 1}.Cross(forward)
		if right.LengthSquared() < 1e-12 {
			right = Vector3{Z: 1}.Cross(forward)
		}
	}
	right = right.Normalize()
	up := forward.Cross(right)
	return Basis{Forward: forward, Right: right, Up: up}
}

// Rotate returns the basis rotated around the given unit axis by angle
// radians, re-orthonormalized to counter floating point drift.
func (b Basis) Rotate(axis Vector3, angle float64) Basis {
	rotated := Basis{
		Forward: b.Forward.RotateAround(axis, angle),
		Right:   b.Right.RotateAround(axis, angle),
		Up:      b.Up.RotateAround(axis, angle),
	}
	return rotated.Orthonormalize()
}

// Orthonormalize rebuilds the basis from its forward vector so the three
// axes stay mutually perpendicular unit vectors.
func (b Basis) Orthonormalize() Basis {
	forward := b.Forward.Normalize()
	if forward == (Vector3{}) {
		return IdentityBasis()
	}
	up := b.Up.Sub(forward.Scale(forward.Dot(b.Up))).Normalize()
	if up == (Vector3{}) {
		up = Up.Sub(forward.Scale(forward.Dot(Up))).Normalize()
		if up == (Vector3{}) {
			up = Vector3{Z: 1}
		}
	}
	right := up.Cross(forward)
	return Basis{Forward: forward, Right: right, Up: up}
}

// RotateTowards rotates the from direction toward the to direction by at
// most maxRadians. When the remaining angle is within the cap the target
// direction is returned exactly; the rotation is clamped, never a snap
// past the target.
func RotateTowards(from, to Vector3, maxRadians float64) Vector3 {
	from = from.Normalize()
	to = to.Normalize()
	if from == (Vector3{}) {
		return to
	}
	if to == (Vector3{}) || maxRadians <= 0 {
		return from
	}
	angle := from.AngleBetween(to)
	if angle <= maxRadians {
		return to
	}
	axis := from.Cross(to)
	if axis.LengthSquared() < 1e-12 {
		// Opposed directions have no unique rotation plane; pick one.
		axis = from.Cross(Up)
		if axis.LengthSquared() < 1e-12 {
			axis = from.Cross(Vector3{X: 1})
		}
	}
	return from.RotateAround(axis.Normalize(), maxRadians).Normalize()
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
