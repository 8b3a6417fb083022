package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 64.0
)

// RaycastResult stores the result of a raycast operation.
type RaycastResult struct {
	// HitPosition is the first solid voxel the ray entered.
	HitPosition [3]int
	// AdjacentPosition is the last empty voxel before the hit, i.e. where a
	// placement edit would go.
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// Raycast walks a ray through the voxel grid and returns the first solid
// voxel between minDist and maxDist. Voxel (x,y,z) occupies the unit cube
// [x,x+1)³.
func Raycast(w *World, start, direction mgl32.Vec3, minDist, maxDist float32) RaycastResult {
	const stepSize = float32(0.02)
	steps := int(maxDist / stepSize)

	var lastEmpty [3]int
	haveEmpty := false
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		pos := start.Add(direction.Mul(dist))
		cell := [3]int{
			int(math.Floor(float64(pos.X()))),
			int(math.Floor(float64(pos.Y()))),
			int(math.Floor(float64(pos.Z()))),
		}

		if dist >= minDist && w.IsSolid(cell[0], cell[1], cell[2]) {
			if !haveEmpty {
				lastEmpty = cell
			}
			result.HitPosition = cell
			result.AdjacentPosition = lastEmpty
			result.Distance = dist
			result.Hit = true
			return result
		}
		lastEmpty = cell
		haveEmpty = true
	}

	return result
}
