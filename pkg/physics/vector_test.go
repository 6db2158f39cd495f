// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func vectorsClose(a, b Vector3, tol float64) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestVector3_Add(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector3
		v2       Vector3
		expected Vector3
	}{
		{
			name:     "positive_vectors",
			v1:       Vector3{X: 3, Y: 4, Z: 5},
			v2:       Vector3{X: 1, Y: 2, Z: 3},
			expected: Vector3{X: 4, Y: 6, Z: 8},
		},
		{
			name:     "negative_vectors",
			v1:       Vector3{X: -3, Y: -4, Z: -5},
			v2:       Vector3{X: -1, Y: -2, Z: -3},
			expected: Vector3{X: -4, Y: -6, Z: -8},
		},
		{
			name:     "zero_vector",
			v1:       Vector3{},
			v2:       Vector3{X: 5, Y: -3, Z: 2},
			expected: Vector3{X: 5, Y: -3, Z: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Add(tt.v2)
			if result != tt.expected {
				t.Errorf("Add() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector3
		expected Vector3
	}{
		{
			name:     "unit_x",
			vector:   Vector3{X: 5},
			expected: Vector3{X: 1},
		},
		{
			name:     "diagonal",
			vector:   Vector3{X: 3, Y: 4},
			expected: Vector3{X: 0.6, Y: 0.8},
		},
		{
			name:     "zero_vector",
			vector:   Vector3{},
			expected: Vector3{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if !vectorsClose(result, tt.expected, epsilon) {
				t.Errorf("Normalize() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector3
		v2       Vector3
		expected Vector3
	}{
		{
			name:     "x_cross_y_is_z",
			v1:       Vector3{X: 1},
			v2:       Vector3{Y: 1},
			expected: Vector3{Z: 1},
		},
		{
			name:     "y_cross_z_is_x",
			v1:       Vector3{Y: 1},
			v2:       Vector3{Z: 1},
			expected: Vector3{X: 1},
		},
		{
			name:     "parallel_vectors",
			v1:       Vector3{X: 2},
			v2:       Vector3{X: 5},
			expected: Vector3{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Cross(tt.v2)
			if !vectorsClose(result, tt.expected, epsilon) {
				t.Errorf("Cross() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector3_AngleBetween(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector3
		v2       Vector3
		expected float64
	}{
		{
			name:     "perpendicular",
			v1:       Vector3{X: 1},
			v2:       Vector3{Y: 1},
			expected: math.Pi / 2,
		},
		{
			name:     "opposed",
			v1:       Vector3{Z: 1},
			v2:       Vector3{Z: -1},
			expected: math.Pi,
		},
		{
			name:     "same_direction",
			v1:       Vector3{X: 2, Y: 2},
			v2:       Vector3{X: 4, Y: 4},
			expected: 0,
		},
		{
			name:     "zero_vector",
			v1:       Vector3{},
			v2:       Vector3{X: 1},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.AngleBetween(tt.v2)
			if math.Abs(result-tt.expected) > epsilon {
				t.Errorf("AngleBetween() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector3_RotateAround(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector3
		axis     Vector3
		angle    float64
		expected Vector3
	}{
		{
			name:     "quarter_turn_around_y",
			vector:   Vector3{Z: 1},
			axis:     Vector3{Y: 1},
			angle:    math.Pi / 2,
			expected: Vector3{X: 1},
		},
		{
			name:     "half_turn_around_y",
			vector:   Vector3{Z: 1},
			axis:     Vector3{Y: 1},
			angle:    math.Pi,
			expected: Vector3{Z: -1},
		},
		{
			name:     "rotate_around_self",
			vector:   Vector3{Y: 1},
			axis:     Vector3{Y: 1},
			angle:    1.3,
			expected: Vector3{Y: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.RotateAround(tt.axis, tt.angle)
			if !vectorsClose(result, tt.expected, 1e-9) {
				t.Errorf("RotateAround() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector3_RotateAround_PreservesLength(t *testing.T) {
	v := Vector3{X: 3, Y: -2, Z: 7}
	axis := Vector3{X: 1, Y: 1, Z: 0}.Normalize()
	rotated := v.RotateAround(axis, 0.73)
	if math.Abs(rotated.Length()-v.Length()) > epsilon {
		t.Errorf("RotateAround changed length: %v -> %v", v.Length(), rotated.Length())
	}
}

func TestVector3_Lerp(t *testing.T) {
	a := Vector3{X: 0, Y: 10}
	b := Vector3{X: 10, Y: 0}

	mid := a.Lerp(b, 0.5)
	if !vectorsClose(mid, Vector3{X: 5, Y: 5}, epsilon) {
		t.Errorf("Lerp(0.5) = %v, expected {5 5 0}", mid)
	}

	// t outside [0, 1] is clamped.
	over := a.Lerp(b, 2)
	if over != b {
		t.Errorf("Lerp(2) = %v, expected %v", over, b)
	}
	under := a.Lerp(b, -1)
	if under != a {
		t.Errorf("Lerp(-1) = %v, expected %v", under, a)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "below", v: -5, lo: 0, hi: 10, expected: 0},
		{name: "above", v: 15, lo: 0, hi: 10, expected: 10},
		{name: "inside", v: 7, lo: 0, hi: 10, expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Clamp(tt.v, tt.lo, tt.hi); result != tt.expected {
				t.Errorf("Clamp() = %v, expected %v", result, tt.expected)
			}
		})
	}
}
