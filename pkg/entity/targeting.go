// pkg/entity/targeting.go
package entity

import (
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// TargetAcquirer is the target-query capability lock-on weapons depend
// on. Implementations return the best candidate within range of the aim
// origin and within the aim cone, or false when nothing qualifies.
type TargetAcquirer interface {
	AcquireTarget(origin, aimDir physics.Vector3, maxRange, coneDegrees float64, excludeID uint64) (Damageable, bool)
}

// ConeTargetQuery acquires lock candidates through a collision query
// service: an overlap sphere around the aim origin filtered by the aim
// cone. The candidate with the smallest angular deviation from the aim
// direction wins, which keeps tracking stable while the crosshair stays
// on one target.
type ConeTargetQuery struct {
	Query physics.QueryService
	Mask  physics.Layer
}

// AcquireTarget returns the best lock candidate for the given aim.
func (q *ConeTargetQuery) AcquireTarget(origin, aimDir physics.Vector3, maxRange, coneDegrees float64, excludeID uint64) (Damageable, bool) {
	if q == nil || q.Query == nil {
		return nil, false
	}
	aimDir = aimDir.Normalize()
	if aimDir == (physics.Vector3{}) || maxRange <= 0 {
		return nil, false
	}

	maxAngle := physics.DegToRad(coneDegrees)
	var (
		best      Damageable
		bestAngle float64
	)
	for _, candidate := range q.Query.OverlapSphere(origin, maxRange, q.Mask) {
		if candidate.GetID() == excludeID {
			continue
		}
		target, ok := candidate.(Damageable)
		if !ok || !target.IsAlive() {
			continue
		}
		toTarget := target.GetPosition().Sub(origin)
		if toTarget == (physics.Vector3{}) {
			continue
		}
		angle := aimDir.AngleBetween(toTarget)
		if angle > maxAngle {
			continue
		}
		if best == nil || angle < bestAngle {
			best = target
			bestAngle = angle
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
