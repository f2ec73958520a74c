package geometry

import (
	"math"

	"wirecanvas/internal/shape"
)

// SnapToGrid rounds v to the nearest multiple of gridSize. A non-positive
// grid leaves v untouched.
func SnapToGrid(v, gridSize float64) float64 {
	if gridSize <= 0 {
		return v
	}
	return math.Round(v/gridSize) * gridSize
}

func SnapPoint(p shape.Point, gridSize float64) shape.Point {
	return shape.Point{X: SnapToGrid(p.X, gridSize), Y: SnapToGrid(p.Y, gridSize)}
}
