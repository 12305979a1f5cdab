package game

import "github.com/google/uuid"

// Rand is the random source used for food placement.
// Both *math/rand.Rand and *golang.org/x/exp/rand.Rand satisfy it.
type Rand interface {
	Intn(n int) int
}

// Food is a collectible item on the arena
type Food struct {
	ID  string
	Pos Position
}

// SpawnFood draws a uniformly random cell. Cells occupied by the snake or
// by other food are not excluded.
func SpawnFood(width, height int, rng Rand) Position {
	return Position{
		X: rng.Intn(width),
		Y: rng.Intn(height),
	}
}

// NewFood creates a food item with a fresh id at a random cell
func NewFood(arena Arena, rng Rand) Food {
	return Food{
		ID:  uuid.New().String(),
		Pos: SpawnFood(arena.Width, arena.Height, rng),
	}
}

// CheckEaten returns the ids of every food item sitting on head, in list order
func CheckEaten(head Position, foods []Food) []string {
	var eaten []string
	for _, f := range foods {
		if f.Pos == head {
			eaten = append(eaten, f.ID)
		}
	}
	return eaten
}
