package game

// Event is a one-shot signal living for a single tick
type Event interface {
	isEvent()
}

// GrowthEvent asks for one new tail segment
type GrowthEvent struct {
	FoodID string
}

// GameOverEvent asks for a full reset
type GameOverEvent struct {
	Cause Cause
}

func (GrowthEvent) isEvent()   {}
func (GameOverEvent) isEvent() {}

// EventQueue holds pending events in FIFO order.
// Single consumer; the world drains it every tick.
type EventQueue struct {
	pending []Event
}

// Push appends an event
func (q *EventQueue) Push(ev Event) {
	q.pending = append(q.pending, ev)
}

// Consume removes and returns every event accepted by match in FIFO order.
// Events not matched stay queued in their original order.
func (q *EventQueue) Consume(match func(Event) bool) []Event {
	var taken []Event
	kept := q.pending[:0]
	for _, ev := range q.pending {
		if match(ev) {
			taken = append(taken, ev)
		} else {
			kept = append(kept, ev)
		}
	}
	// Drop references held past the new length
	for i := len(kept); i < len(q.pending); i++ {
		q.pending[i] = nil
	}
	q.pending = kept
	return taken
}

// Len returns the pending event count
func (q *EventQueue) Len() int {
	return len(q.pending)
}

// Clear drops all pending events
func (q *EventQueue) Clear() {
	q.pending = q.pending[:0]
}

func isGrowth(ev Event) bool {
	_, ok := ev.(GrowthEvent)
	return ok
}

func isGameOver(ev Event) bool {
	_, ok := ev.(GameOverEvent)
	return ok
}
