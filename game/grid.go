package game

import "fmt"

// Position is a cell on the arena grid
type Position struct {
	X int
	Y int
}

// Add returns p shifted by d
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// InBounds reports whether pos lies inside a width x height arena.
func InBounds(pos Position, width, height int) bool {
	return pos.X >= 0 && pos.X < width && pos.Y >= 0 && pos.Y < height
}

// Arena is the fixed-size grid bounding every valid position
type Arena struct {
	Width  int
	Height int
}

// Contains reports whether pos is inside the arena
func (a Arena) Contains(pos Position) bool {
	return InBounds(pos, a.Width, a.Height)
}

// Cells returns the number of cells in the arena
func (a Arena) Cells() int {
	return a.Width * a.Height
}
