// pkg/entity/stats_test.go
package entity

import (
	"math"
	"testing"
)

func TestSanitizeWeaponStats(t *testing.T) {
	s := SanitizeWeaponStats(WeaponStats{
		Damage:             -10,
		FireRate:           0,
		Range:              math.NaN(),
		CriticalChance:     1.5,
		CriticalMultiplier: 0.5,
		SpreadDegrees:      90,
		MaxPenetrations:    3, // CanPenetrate is false
		LockConeDegrees:    500,
	})

	if s.Damage != 0 {
		t.Errorf("Damage = %v, expected 0", s.Damage)
	}
	if s.FireRate <= 0 {
		t.Errorf("FireRate = %v, expected positive fallback", s.FireRate)
	}
	if math.IsNaN(s.Range) || s.Range <= 0 {
		t.Errorf("Range = %v, expected positive fallback", s.Range)
	}
	if s.CriticalChance != 1 {
		t.Errorf("CriticalChance = %v, expected 1", s.CriticalChance)
	}
	if s.CriticalMultiplier != 1 {
		t.Errorf("CriticalMultiplier = %v, expected floor of 1", s.CriticalMultiplier)
	}
	if s.SpreadDegrees != 45 {
		t.Errorf("SpreadDegrees = %v, expected cap of 45", s.SpreadDegrees)
	}
	if s.MaxPenetrations != 0 {
		t.Errorf("MaxPenetrations = %v without CanPenetrate, expected 0", s.MaxPenetrations)
	}
	if s.LockConeDegrees != 90 {
		t.Errorf("LockConeDegrees = %v, expected cap of 90", s.LockConeDegrees)
	}
}

func TestSanitizeWeaponStats_DefaultLifetime(t *testing.T) {
	s := SanitizeWeaponStats(WeaponStats{
		Range:           400,
		ProjectileSpeed: 200,
	})
	// Enough time to cover the range with a margin.
	if s.ProjectileLifetime < 2 {
		t.Errorf("ProjectileLifetime = %v, expected at least range/speed", s.ProjectileLifetime)
	}
}

func TestFireInterval(t *testing.T) {
	s := SanitizeWeaponStats(WeaponStats{FireRate: 4})
	if s.FireInterval() != 0.25 {
		t.Errorf("FireInterval() = %v, expected 0.25", s.FireInterval())
	}
}

func TestTrajectoryRoundTrip(t *testing.T) {
	kinds := []TrajectoryKind{Hitscan, StraightProjectile, ArcingProjectile, HomingProjectile}
	for _, k := range kinds {
		if got := TrajectoryFromString(k.String()); got != k {
			t.Errorf("TrajectoryFromString(%q) = %v, expected %v", k.String(), got, k)
		}
	}
	if got := TrajectoryFromString("garbage"); got != StraightProjectile {
		t.Errorf("unknown trajectory mapped to %v, expected StraightProjectile", got)
	}
}

func TestDamageTypeRoundTrip(t *testing.T) {
	types := []DamageType{Kinetic, Energy, Explosive}
	for _, d := range types {
		if got := DamageTypeFromString(d.String()); got != d {
			t.Errorf("DamageTypeFromString(%q) = %v, expected %v", d.String(), got, d)
		}
	}
}
