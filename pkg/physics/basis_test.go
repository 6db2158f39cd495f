// pkg/physics/basis_test.go
package physics

import (
	"math"
	"testing"
)

func basisOrthonormal(b Basis, tol float64) bool {
	if math.Abs(b.Forward.Length()-1) > tol ||
		math.Abs(b.Right.Length()-1) > tol ||
		math.Abs(b.Up.Length()-1) > tol {
		return false
	}
	return math.Abs(b.Forward.Dot(b.Right)) < tol &&
		math.Abs(b.Forward.Dot(b.Up)) < tol &&
		math.Abs(b.Right.Dot(b.Up)) < tol
}

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name      string
		direction Vector3
		upHint    Vector3
	}{
		{name: "forward_z", direction: Vector3{Z: 1}, upHint: Up},
		{name: "arbitrary", direction: Vector3{X: 1, Y: 0.5, Z: -2}, upHint: Up},
		{name: "straight_up_parallel_hint", direction: Vector3{Y: 1}, upHint: Up},
		{name: "straight_down", direction: Vector3{Y: -1}, upHint: Up},
		{name: "zero_up_hint", direction: Vector3{X: 1}, upHint: Vector3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := LookRotation(tt.direction, tt.upHint)
			if !basisOrthonormal(b, 1e-9) {
				t.Errorf("LookRotation() produced non-orthonormal basis: %+v", b)
			}
			want := tt.direction.Normalize()
			if !vectorsClose(b.Forward, want, 1e-9) {
				t.Errorf("LookRotation() forward = %v, expected %v", b.Forward, want)
			}
		})
	}
}

func TestLookRotation_ZeroDirection(t *testing.T) {
	b := LookRotation(Vector3{}, Up)
	if b != IdentityBasis() {
		t.Errorf("LookRotation(zero) = %+v, expected identity", b)
	}
}

func TestBasis_Rotate_StaysOrthonormal(t *testing.T) {
	b := IdentityBasis()
	// Many small rotations around changing axes must not accumulate drift.
	for i := 0; i < 1000; i++ {
		b = b.Rotate(b.Right, 0.01)
		b = b.Rotate(b.Up, 0.007)
		b = b.Rotate(b.Forward, -0.013)
	}
	if !basisOrthonormal(b, 1e-6) {
		t.Errorf("basis drifted after repeated rotations: %+v", b)
	}
}

func TestBasis_Rotate_YawTurnsRight(t *testing.T) {
	b := IdentityBasis()
	rotated := b.Rotate(b.Up, DegToRad(90))
	// Facing +Z, a positive rotation around +Y turns the nose toward +X.
	if !vectorsClose(rotated.Forward, Vector3{X: 1}, 1e-9) {
		t.Errorf("Rotate(up, 90deg) forward = %v, expected {1 0 0}", rotated.Forward)
	}
}

func TestRotateTowards(t *testing.T) {
	tests := []struct {
		name       string
		from       Vector3
		to         Vector3
		maxRadians float64
		wantAngle  float64 // expected remaining angle to target
	}{
		{
			name:       "within_cap_snaps_to_target",
			from:       Vector3{Z: 1},
			to:         Vector3{X: 0.1, Z: 1},
			maxRadians: 1,
			wantAngle:  0,
		},
		{
			name:       "clamped_rotation",
			from:       Vector3{Z: 1},
			to:         Vector3{X: 1},
			maxRadians: math.Pi / 4,
			wantAngle:  math.Pi / 4,
		},
		{
			name:       "zero_cap_no_motion",
			from:       Vector3{Z: 1},
			to:         Vector3{X: 1},
			maxRadians: 0,
			wantAngle:  math.Pi / 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RotateTowards(tt.from, tt.to, tt.maxRadians)
			remaining := result.AngleBetween(tt.to)
			if math.Abs(remaining-tt.wantAngle) > 1e-9 {
				t.Errorf("RotateTowards() remaining angle = %v, expected %v", remaining, tt.wantAngle)
			}
			if math.Abs(result.Length()-1) > 1e-9 {
				t.Errorf("RotateTowards() result not unit length: %v", result.Length())
			}
		})
	}
}

func TestRotateTowards_OpposedDirections(t *testing.T) {
	from := Vector3{Z: 1}
	to := Vector3{Z: -1}
	result := RotateTowards(from, to, math.Pi/2)
	// Opposed directions still rotate by the cap rather than stalling.
	moved := from.AngleBetween(result)
	if math.Abs(moved-math.Pi/2) > 1e-9 {
		t.Errorf("RotateTowards(opposed) moved %v, expected %v", moved, math.Pi/2)
	}
}
