package game

// Autopilot steers the snake when no player input arrives.
// It only ever requests a direction; the input mapper still applies.
type Autopilot struct {
	seekTicks int // ticks spent chasing food without eating
	restTicks int // ticks left before chasing food again
	lastScore int
}

// seekRestTicks is how long the autopilot ignores food after a chase
// ran out without eating.
const seekRestTicks = 20

// seekLimit bounds one chase. Visiting every cell once is the longest
// path to any reachable food.
func seekLimit(a Arena) int {
	return a.Cells()
}

// Decide returns the direction to request for the next tick.
// Returns false when no move is safe.
func (a *Autopilot) Decide(s Snapshot) (Direction, bool) {
	if len(s.Segments) == 0 {
		return 0, false
	}
	head := s.Segments[0]

	// --- Priority 1: Never reverse, never step into a wall or the body ---
	safe := make([]Direction, 0, 3)
	for _, d := range keyPriority {
		if d == s.Direction.Opposite() {
			continue
		}
		if isSafe(s, head.Add(d.Offset())) {
			safe = append(safe, d)
		}
	}
	if len(safe) == 0 {
		return 0, false
	}

	// Eating ends both the chase and the rest
	if s.Score != a.lastScore {
		a.seekTicks, a.restTicks = 0, 0
	}
	a.lastScore = s.Score

	// --- Priority 2: Seek the nearest food unless resting ---
	if a.restTicks > 0 {
		a.restTicks--
	} else if target, ok := nearestFood(head, s.Food); ok {
		best, bestDist := safe[0], manhattan(head.Add(safe[0].Offset()), target)
		for _, d := range safe[1:] {
			dist := manhattan(head.Add(d.Offset()), target)
			// Ties keep the current heading
			if dist < bestDist || (dist == bestDist && d == s.Direction) {
				best, bestDist = d, dist
			}
		}
		a.seekTicks++
		if a.seekTicks >= seekLimit(s.Arena) {
			a.seekTicks, a.restTicks = 0, seekRestTicks
		}
		return best, true
	}

	// --- Priority 3: Keep heading if safe, else any safe move ---
	for _, d := range safe {
		if d == s.Direction {
			return d, true
		}
	}
	return safe[0], true
}

// isSafe reports whether the head may enter p on the next tick.
// The tail cell is free because the tail moves away in the same tick.
func isSafe(s Snapshot, p Position) bool {
	if !s.Arena.Contains(p) {
		return false
	}
	return !containsPosition(s.Segments[:len(s.Segments)-1], p)
}

func nearestFood(from Position, foods []Food) (Position, bool) {
	if len(foods) == 0 {
		return Position{}, false
	}
	best := foods[0].Pos
	for _, f := range foods[1:] {
		if manhattan(from, f.Pos) < manhattan(from, best) {
			best = f.Pos
		}
	}
	return best, true
}

func manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
