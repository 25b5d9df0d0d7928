package game

import "math"

// RaycastResult describes the first solid tile a ray reached.
// Impact is false when the ray travelled its full length unobstructed.
type RaycastResult struct {
	Impact   bool
	Distance float64 // world units from the origin to the impact sample
	Fraction float64 // Distance / maxDistance
	Position Vec2    // world position of the impact sample
	Tile     *Tile
}

// raycastSteps returns the number of equal steps used to march maxDistance.
// At least RaycastSamples steps are taken, and never steps longer than
// RaycastMaxStep.
func raycastSteps(maxDistance float64) int {
	n := RaycastSamples
	if need := int(math.Ceil(maxDistance / RaycastMaxStep)); need > n {
		n = need
	}
	return n
}

// Raycast marches from origin along dir in fixed equal steps and reports the
// first sample that lands on a solid tile. Samples run from the origin up to,
// but not including, maxDistance.
//
// A zero-length dir or non-positive maxDistance samples only the origin tile.
func (tm *TileMap) Raycast(origin, dir Vec2, maxDistance float64) RaycastResult {
	unit, l := dir.Normalized()
	if l < 1e-9 || maxDistance <= 0 || math.IsNaN(maxDistance) {
		if t := tm.AtWorld(origin); tm.IsSolid(t) {
			return RaycastResult{Impact: true, Position: origin, Tile: t}
		}
		return RaycastResult{}
	}

	// A ray from inside the map leaves it within one diagonal.
	reach := math.Min(maxDistance, math.Hypot(float64(tm.Cols), float64(tm.Rows)))
	n := raycastSteps(reach)
	step := reach / float64(n)
	for i := 0; i < n; i++ {
		d := float64(i) * step
		p := origin.Add(unit.Scale(d))
		if t := tm.AtWorld(p); tm.IsSolid(t) {
			return RaycastResult{
				Impact:   true,
				Distance: d,
				Fraction: d / maxDistance,
				Position: p,
				Tile:     t,
			}
		}
	}
	return RaycastResult{}
}

// HasLineOfSightPoints returns true if no solid tile lies between a and b.
func (tm *TileMap) HasLineOfSightPoints(a, b Vec2) bool {
	dir, dist := b.Sub(a).Normalized()
	return !tm.Raycast(a, dir, dist).Impact
}
