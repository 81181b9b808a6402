package world

import (
	"fmt"
	"math/rand"
)

// ObstacleModel defines how densely the world interior is blocked.
// Density is the probability (0.0 to 1.0) that an interior cell is occupied.
type ObstacleModel struct {
	Density float32
}

// PopulateObstacles occupies the outer ring of w and blocks each interior
// cell with probability model.Density. A nil rng uses a randomly seeded source.
func PopulateObstacles(model ObstacleModel, w *World, rng *rand.Rand) error {
	if model.Density < 0 || model.Density > 1 {
		return fmt.Errorf("invalid ObstacleModel: density %v", model.Density)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	for row := 0; row < w.Height; row++ {
		for col := 0; col < w.Width; col++ {
			if isBorder(row, col, w.Width, w.Height) {
				w.Grid[row][col].Occupied = true
				continue
			}
			w.Grid[row][col].Occupied = rng.Float32() < model.Density
		}
	}

	return nil
}

// isBorder reports whether the cell lies on the outer ring of the grid.
func isBorder(row, col, width, height int) bool {
	return row == 0 || row == height-1 || col == 0 || col == width-1
}
