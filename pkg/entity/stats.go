// pkg/entity/stats.go
package entity

import (
	"github.com/opd-ai/go-dogfight/pkg/validation"
)

// TrajectoryKind selects how a weapon resolves fire: an instantaneous
// raycast or one of three projectile trajectories. The behavioral
// differences between weapon archetypes live entirely here, not in a
// type hierarchy.
type TrajectoryKind int

const (
	Hitscan TrajectoryKind = iota
	StraightProjectile
	ArcingProjectile
	HomingProjectile
)

// String returns the trajectory kind name.
func (t TrajectoryKind) String() string {
	switch t {
	case Hitscan:
		return "Hitscan"
	case StraightProjectile:
		return "Straight"
	case ArcingProjectile:
		return "Arcing"
	case HomingProjectile:
		return "Homing"
	default:
		return "Unknown"
	}
}

// TrajectoryFromString converts a string to a TrajectoryKind, defaulting
// to StraightProjectile for unknown values.
func TrajectoryFromString(s string) TrajectoryKind {
	switch s {
	case "Hitscan":
		return Hitscan
	case "Arcing":
		return ArcingProjectile
	case "Homing":
		return HomingProjectile
	default:
		return StraightProjectile
	}
}

// WeaponStats is the immutable per-weapon configuration, set once at
// construction and read-only thereafter.
type WeaponStats struct {
	Name               string
	Trajectory         TrajectoryKind
	Damage             float64
	FireRate           float64 // shots/second
	Range              float64
	ProjectileSpeed    float64
	DamageType         DamageType
	HeatGeneration     float64
	MaxHeat            float64
	HeatDissipation    float64 // heat units/second
	OverheatCooldown   float64 // seconds locked out after overheating
	EnergyConsumption  float64 // per shot, reported but not gating
	SpreadDegrees      float64 // half-angle of the spread cone
	Recoil             float64
	CriticalChance     float64 // 0..1
	CriticalMultiplier float64
	KnockbackForce     float64
	AOERadius          float64
	CanPenetrate       bool
	MaxPenetrations    int
	RequiresLock       bool
	LockTime           float64 // seconds of continuous tracking to lock
	LockRange          float64
	LockConeDegrees    float64 // half-angle of the lock cone around the aim
	ProjectileRadius   float64
	ProjectileLifetime float64 // seconds
	ArcHeight          float64 // peak vertical offset for arcing shots
	HomingTurnRate     float64 // degrees/second steering cap
	HomingAcceleration float64 // units/second^2 toward ProjectileSpeed
}

// SanitizeWeaponStats clamps stats to safe values so a bad config field
// can never produce NaN heat or a negative fire interval at runtime.
func SanitizeWeaponStats(s WeaponStats) WeaponStats {
	s.Damage = validation.NonNegative(s.Damage)
	s.FireRate = validation.Positive(s.FireRate, 1)
	s.Range = validation.Positive(s.Range, 100)
	s.ProjectileSpeed = validation.Positive(s.ProjectileSpeed, 100)
	s.HeatGeneration = validation.NonNegative(s.HeatGeneration)
	s.MaxHeat = validation.Positive(s.MaxHeat, 100)
	s.HeatDissipation = validation.NonNegative(s.HeatDissipation)
	s.OverheatCooldown = validation.NonNegative(s.OverheatCooldown)
	s.EnergyConsumption = validation.NonNegative(s.EnergyConsumption)
	s.SpreadDegrees = validation.Clamp(s.SpreadDegrees, 0, 45)
	s.Recoil = validation.NonNegative(s.Recoil)
	s.CriticalChance = validation.Clamp01(s.CriticalChance)
	if s.CriticalMultiplier < 1 || s.CriticalMultiplier != s.CriticalMultiplier {
		s.CriticalMultiplier = 1
	}
	s.KnockbackForce = validation.NonNegative(s.KnockbackForce)
	s.AOERadius = validation.NonNegative(s.AOERadius)
	if s.MaxPenetrations < 0 {
		s.MaxPenetrations = 0
	}
	if !s.CanPenetrate {
		s.MaxPenetrations = 0
	}
	s.LockTime = validation.Positive(s.LockTime, 1)
	s.LockRange = validation.Positive(s.LockRange, s.Range)
	s.LockConeDegrees = validation.Clamp(s.LockConeDegrees, 1, 90)
	s.ProjectileRadius = validation.Positive(s.ProjectileRadius, 0.5)
	s.ProjectileLifetime = validation.Positive(s.ProjectileLifetime, defaultLifetime(s))
	s.ArcHeight = validation.NonNegative(s.ArcHeight)
	s.HomingTurnRate = validation.NonNegative(s.HomingTurnRate)
	s.HomingAcceleration = validation.NonNegative(s.HomingAcceleration)
	return s
}

// defaultLifetime budgets enough flight time to cover the weapon's range
// with a small margin.
func defaultLifetime(s WeaponStats) float64 {
	speed := s.ProjectileSpeed
	if speed <= 0 {
		speed = 100
	}
	r := s.Range
	if r <= 0 {
		r = 100
	}
	return r / speed * 1.5
}

// FireInterval returns the minimum time between shots.
func (s WeaponStats) FireInterval() float64 {
	return 1 / s.FireRate
}
