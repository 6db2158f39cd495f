// pkg/physics/vector.go
package physics

import "math"

// Vector3 represents a 3D vector with x, y and z components.
// Y is the world-up axis.
type Vector3 struct {
	X float64
	Y float64
	Z float64
}

// Add returns the sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub returns the difference between two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector3) Scale(factor float64) Vector3 {
	return Vector3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to the zero vector.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length == 0 {
		return Vector3{}
	}
	return Vector3{
		X: v.X / length,
		Y: v.Y / length,
		Z: v.Z / length,
	}
}

// Distance returns the distance between two vectors
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Lerp linearly interpolates between v and other by t, clamped to [0, 1]
func (v Vector3) Lerp(other Vector3, t float64) Vector3 {
	t = Clamp01(t)
	return Vector3{
		X: v.X + (other.X-v.X)*t,
		Y: v.Y + (other.Y-v.Y)*t,
		Z: v.Z + (other.Z-v.Z)*t,
	}
}

// AngleBetween returns the angle between two vectors in radians.
// Returns 0 if either vector has zero length.
func (v Vector3) AngleBetween(other Vector3) float64 {
	la := v.Length()
	lb := other.Length()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := v.Dot(other) / (la * lb)
	return math.Acos(Clamp(cos, -1, 1))
}

// RotateAround rotates the vector around the given axis by angle radians
// using Rodrigues' rotation formula. The axis must be a unit vector.
func (v Vector3) RotateAround(axis Vector3, angle float64) Vector3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return v.Scale(cos).
		Add(axis.Cross(v).Scale(sin)).
		Add(axis.Scale(axis.Dot(v) * (1 - cos)))
}

// Up is the world up direction.
var Up = Vector3{Y: 1}

// Clamp constrains v to the range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 constrains v to the range [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}
