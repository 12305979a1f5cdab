package game

import "fmt"

// Direction is the heading of the snake head
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

var directionNames = [...]string{
	Left:  "left",
	Up:    "up",
	Right: "right",
	Down:  "down",
}

func (d Direction) String() string {
	if d < Left || d > Down {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection maps a direction name ("left", "up", "right", "down") to its value
func ParseDirection(name string) (Direction, bool) {
	for d, n := range directionNames {
		if n == name {
			return Direction(d), true
		}
	}
	return 0, false
}

// Opposite returns the 180° reversal of d
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Offset returns the unit step for d. Y grows upward.
func (d Direction) Offset() Position {
	switch d {
	case Left:
		return Position{X: -1}
	case Right:
		return Position{X: 1}
	case Up:
		return Position{Y: 1}
	default:
		return Position{Y: -1}
	}
}

// UpdateDirection resolves a requested heading against the current one.
// A nil request keeps current; a reversal is rejected.
func UpdateDirection(requested *Direction, current Direction) Direction {
	if requested == nil {
		return current
	}
	if *requested == current.Opposite() {
		return current
	}
	return *requested
}

// KeySet is the set of directional keys held during one sampling period
type KeySet uint8

// Hold marks d as held
func (k KeySet) Hold(d Direction) KeySet {
	return k | 1<<uint(d)
}

// Held reports whether d is held
func (k KeySet) Held(d Direction) bool {
	return k&(1<<uint(d)) != 0
}

// Union merges two key sets
func (k KeySet) Union(o KeySet) KeySet {
	return k | o
}

// keyPriority is the tie-break order when several keys are held at once.
// Left wins over Down, Down over Up, Up over Right.
var keyPriority = [...]Direction{Left, Down, Up, Right}

// RequestedDirection picks the single requested heading from held keys.
// Returns false when no directional key is held.
func RequestedDirection(held KeySet) (Direction, bool) {
	for _, d := range keyPriority {
		if held.Held(d) {
			return d, true
		}
	}
	return 0, false
}

// ParseKeys builds a KeySet from direction names, ignoring unknown names
func ParseKeys(names []string) KeySet {
	var k KeySet
	for _, n := range names {
		if d, ok := ParseDirection(n); ok {
			k = k.Hold(d)
		}
	}
	return k
}
