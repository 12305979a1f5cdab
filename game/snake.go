package game

import "errors"

// ErrNoSegments is the panic value when a snake with no segments is queried.
// An initialized snake always has a head and at least one body segment.
var ErrNoSegments = errors.New("game: snake has no segments")

// Cause tells why a round ended
type Cause int

const (
	CauseNone Cause = iota
	CauseWall
	CauseSelf
)

func (c Cause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	default:
		return "none"
	}
}

// Snake is the ordered segment list plus heading
type Snake struct {
	Segments  []Position // index 0 = head
	Direction Direction
}

// NewSnake builds the starting snake: head at start, one segment behind it, heading Up.
func NewSnake(start Position) *Snake {
	return &Snake{
		Segments:  []Position{start, start.Add(Up.Opposite().Offset())},
		Direction: Up,
	}
}

// Head returns the head segment. Panics with ErrNoSegments on an empty snake.
func (s *Snake) Head() Position {
	if len(s.Segments) == 0 {
		panic(ErrNoSegments)
	}
	return s.Segments[0]
}

// Tail returns the last segment. Panics with ErrNoSegments on an empty snake.
func (s *Snake) Tail() Position {
	if len(s.Segments) == 0 {
		panic(ErrNoSegments)
	}
	return s.Segments[len(s.Segments)-1]
}

// Len returns the number of segments including the head
func (s *Snake) Len() int {
	return len(s.Segments)
}

// Outcome is the result of one Advance
type Outcome struct {
	Collided bool
	Cause    Cause
	LastTail Position // tail position before the shift
}

// Advance moves the snake one cell along its heading and shifts the body
// follow-the-leader style. The move is applied even when it collides, and
// LastTail is always recorded. Self collision is checked against the
// pre-move segments except the tail, which vacates its cell this tick.
func Advance(s *Snake, width, height int) Outcome {
	head := s.Head()
	prev := make([]Position, len(s.Segments))
	copy(prev, s.Segments)

	newHead := head.Add(s.Direction.Offset())
	out := Outcome{LastTail: prev[len(prev)-1]}

	switch {
	case !InBounds(newHead, width, height):
		out.Collided, out.Cause = true, CauseWall
	case containsPosition(prev[:len(prev)-1], newHead):
		out.Collided, out.Cause = true, CauseSelf
	}

	// Shift segments: each takes its predecessor's old place, old tail drops
	s.Segments[0] = newHead
	for i := 1; i < len(s.Segments); i++ {
		s.Segments[i] = prev[i-1]
	}
	return out
}

// ApplyGrowth appends one segment at lastTail
func ApplyGrowth(s *Snake, lastTail Position) {
	s.Segments = append(s.Segments, lastTail)
}

func containsPosition(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
