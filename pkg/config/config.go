// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// GameConfig contains configuration for a dogfight match.
type GameConfig struct {
	WorldSize      float64        `json:"worldSize" mapstructure:"worldSize"`
	TickRate       int            `json:"tickRate" mapstructure:"tickRate"`
	MaxProjectiles int            `json:"maxProjectiles" mapstructure:"maxProjectiles"`
	Teams          []TeamConfig   `json:"teams" mapstructure:"teams"`
	Ships          []ShipConfig   `json:"ships" mapstructure:"ships"`
	Weapons        []WeaponConfig `json:"weapons" mapstructure:"weapons"`
	Camera         CameraConfig   `json:"camera" mapstructure:"camera"`
}

// TeamConfig contains configuration for a team.
type TeamConfig struct {
	Name     string `json:"name" mapstructure:"name"`
	Color    string `json:"color" mapstructure:"color"`
	MaxShips int    `json:"maxShips" mapstructure:"maxShips"`
}

// ShipConfig defines a ship class: hull, collision size, flight model and
// weapon loadout by weapon name.
type ShipConfig struct {
	Name    string   `json:"name" mapstructure:"name"`
	MaxHull float64  `json:"maxHull" mapstructure:"maxHull"`
	Radius  float64  `json:"radius" mapstructure:"radius"`
	Flight  Flight   `json:"flight" mapstructure:"flight"`
	Weapons []string `json:"weapons" mapstructure:"weapons"`
}

// Flight contains the flight model tuning for a ship class.
type Flight struct {
	PitchRate         float64 `json:"pitchRate" mapstructure:"pitchRate"`
	YawRate           float64 `json:"yawRate" mapstructure:"yawRate"`
	RollRate          float64 `json:"rollRate" mapstructure:"rollRate"`
	MaxSpeed          float64 `json:"maxSpeed" mapstructure:"maxSpeed"`
	Acceleration      float64 `json:"acceleration" mapstructure:"acceleration"`
	StrafeSpeed       float64 `json:"strafeSpeed" mapstructure:"strafeSpeed"`
	BaseStallSpeed    float64 `json:"baseStallSpeed" mapstructure:"baseStallSpeed"`
	ThrottleRelief    float64 `json:"throttleRelief" mapstructure:"throttleRelief"`
	StallHysteresis   float64 `json:"stallHysteresis" mapstructure:"stallHysteresis"`
	StallBlendRate    float64 `json:"stallBlendRate" mapstructure:"stallBlendRate"`
	StalledAuthority  float64 `json:"stalledAuthority" mapstructure:"stalledAuthority"`
}

// WeaponConfig defines one weapon archetype. Trajectory is one of
// "Hitscan", "Straight", "Arcing" or "Homing".
type WeaponConfig struct {
	Name               string  `json:"name" mapstructure:"name"`
	Trajectory         string  `json:"trajectory" mapstructure:"trajectory"`
	DamageType         string  `json:"damageType" mapstructure:"damageType"`
	Damage             float64 `json:"damage" mapstructure:"damage"`
	FireRate           float64 `json:"fireRate" mapstructure:"fireRate"`
	Range              float64 `json:"range" mapstructure:"range"`
	ProjectileSpeed    float64 `json:"projectileSpeed" mapstructure:"projectileSpeed"`
	HeatGeneration     float64 `json:"heatGeneration" mapstructure:"heatGeneration"`
	MaxHeat            float64 `json:"maxHeat" mapstructure:"maxHeat"`
	HeatDissipation    float64 `json:"heatDissipation" mapstructure:"heatDissipation"`
	OverheatCooldown   float64 `json:"overheatCooldown" mapstructure:"overheatCooldown"`
	EnergyConsumption  float64 `json:"energyConsumption" mapstructure:"energyConsumption"`
	SpreadDegrees      float64 `json:"spreadDegrees" mapstructure:"spreadDegrees"`
	Recoil             float64 `json:"recoil" mapstructure:"recoil"`
	CriticalChance     float64 `json:"criticalChance" mapstructure:"criticalChance"`
	CriticalMultiplier float64 `json:"criticalMultiplier" mapstructure:"criticalMultiplier"`
	KnockbackForce     float64 `json:"knockbackForce" mapstructure:"knockbackForce"`
	AOERadius          float64 `json:"aoeRadius" mapstructure:"aoeRadius"`
	CanPenetrate       bool    `json:"canPenetrate" mapstructure:"canPenetrate"`
	MaxPenetrations    int     `json:"maxPenetrations" mapstructure:"maxPenetrations"`
	RequiresLock       bool    `json:"requiresLock" mapstructure:"requiresLock"`
	LockTime           float64 `json:"lockTime" mapstructure:"lockTime"`
	LockRange          float64 `json:"lockRange" mapstructure:"lockRange"`
	LockConeDegrees    float64 `json:"lockConeDegrees" mapstructure:"lockConeDegrees"`
	ProjectileRadius   float64 `json:"projectileRadius" mapstructure:"projectileRadius"`
	ProjectileLifetime float64 `json:"projectileLifetime" mapstructure:"projectileLifetime"`
	ArcHeight          float64 `json:"arcHeight" mapstructure:"arcHeight"`
	HomingTurnRate     float64 `json:"homingTurnRate" mapstructure:"homingTurnRate"`
	HomingAcceleration float64 `json:"homingAcceleration" mapstructure:"homingAcceleration"`
}

// CameraConfig contains the chase camera tuning.
type CameraConfig struct {
	Distance    float64 `json:"distance" mapstructure:"distance"`
	Height      float64 `json:"height" mapstructure:"height"`
	FollowRate  float64 `json:"followRate" mapstructure:"followRate"`
	LookAhead   float64 `json:"lookAhead" mapstructure:"lookAhead"`
	FieldOfView float64 `json:"fieldOfView" mapstructure:"fieldOfView"`
}

// LoadConfig loads a configuration from a JSON file. Missing fields fall
// back to defaults; DOGFIGHT_* environment variables override scalar
// fields.
func LoadConfig(path string) (*GameConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("dogfight")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("worldSize", def.WorldSize)
	v.SetDefault("tickRate", def.TickRate)
	v.SetDefault("maxProjectiles", def.MaxProjectiles)
	v.SetDefault("camera.distance", def.Camera.Distance)
	v.SetDefault("camera.height", def.Camera.Height)
	v.SetDefault("camera.followRate", def.Camera.FollowRate)
	v.SetDefault("camera.lookAhead", def.Camera.LookAhead)
	v.SetDefault("camera.fieldOfView", def.Camera.FieldOfView)
}

// SaveConfig saves a configuration to a JSON file.
func SaveConfig(config *GameConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// FindWeapon returns the weapon config with the given name.
func (c *GameConfig) FindWeapon(name string) (WeaponConfig, bool) {
	for _, w := range c.Weapons {
		if w.Name == name {
			return w, true
		}
	}
	return WeaponConfig{}, false
}

// FindShip returns the ship config with the given name.
func (c *GameConfig) FindShip(name string) (ShipConfig, bool) {
	for _, s := range c.Ships {
		if s.Name == name {
			return s, true
		}
	}
	return ShipConfig{}, false
}

// DefaultConfig returns a default match configuration: two teams, one
// fighter class and the four weapon archetypes.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		WorldSize:      4000,
		TickRate:       60,
		MaxProjectiles: 512,
		Teams: []TeamConfig{
			{Name: "Vanguard", Color: "#FF4422", MaxShips: 4},
			{Name: "Corsairs", Color: "#2288FF", MaxShips: 4},
		},
		Ships: []ShipConfig{
			{
				Name:    "Interceptor",
				MaxHull: 100,
				Radius:  3,
				Flight: Flight{
					PitchRate:        90,
					YawRate:          60,
					RollRate:         140,
					MaxSpeed:         120,
					Acceleration:     40,
					StrafeSpeed:      25,
					BaseStallSpeed:   30,
					ThrottleRelief:   0.25,
					StallBlendRate:   2.0,
					StalledAuthority: 0.35,
				},
				Weapons: []string{"Autocannon", "Seeker Missile"},
			},
		},
		Weapons: []WeaponConfig{
			{
				Name:               "Pulse Laser",
				Trajectory:         "Hitscan",
				DamageType:         "Energy",
				Damage:             8,
				FireRate:           6,
				Range:              600,
				HeatGeneration:     9,
				MaxHeat:            100,
				HeatDissipation:    20,
				OverheatCooldown:   2.5,
				EnergyConsumption:  4,
				CriticalChance:     0.05,
				CriticalMultiplier: 2,
			},
			{
				Name:               "Autocannon",
				Trajectory:         "Straight",
				DamageType:         "Kinetic",
				Damage:             12,
				FireRate:           4,
				Range:              500,
				ProjectileSpeed:    350,
				HeatGeneration:     12,
				MaxHeat:            100,
				HeatDissipation:    18,
				OverheatCooldown:   3,
				SpreadDegrees:      1.5,
				Recoil:             2,
				CriticalChance:     0.1,
				CriticalMultiplier: 1.5,
				KnockbackForce:     6,
				CanPenetrate:       true,
				MaxPenetrations:    2,
				ProjectileRadius:   0.6,
			},
			{
				Name:             "Plasma Mortar",
				Trajectory:       "Arcing",
				DamageType:       "Explosive",
				Damage:           35,
				FireRate:         0.8,
				Range:            700,
				ProjectileSpeed:  150,
				HeatGeneration:   30,
				MaxHeat:          100,
				HeatDissipation:  15,
				OverheatCooldown: 4,
				KnockbackForce:   40,
				AOERadius:        25,
				ProjectileRadius: 1.2,
				ArcHeight:        60,
			},
			{
				Name:               "Seeker Missile",
				Trajectory:         "Homing",
				DamageType:         "Explosive",
				Damage:             28,
				FireRate:           0.5,
				Range:              900,
				ProjectileSpeed:    220,
				HeatGeneration:     20,
				MaxHeat:            100,
				HeatDissipation:    12,
				OverheatCooldown:   5,
				KnockbackForce:     25,
				AOERadius:          12,
				RequiresLock:       true,
				LockTime:           1.5,
				LockRange:          900,
				LockConeDegrees:    20,
				ProjectileRadius:   0.8,
				HomingTurnRate:     120,
				HomingAcceleration: 180,
			},
		},
		Camera: CameraConfig{
			Distance:    14,
			Height:      4,
			FollowRate:  6,
			LookAhead:   20,
			FieldOfView: 70,
		},
	}
}
