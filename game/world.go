package game

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// World holds all simulation state. It is not safe for concurrent use;
// one goroutine owns it and drives Tick and SpawnFood.
type World struct {
	cfg   Config
	rng   Rand
	sink  Sink
	snake *Snake
	food  []Food
	queue EventQueue

	lastTail    Position
	hasLastTail bool
	requested   *Direction

	tick       uint64
	score      int
	highScore  int
	endedScore int
	rounds     int
}

// Option customizes a World
type Option func(*World)

// WithRand overrides the food placement random source
func WithRand(r Rand) Option {
	return func(w *World) { w.rng = r }
}

// WithSink attaches an entity lifecycle sink
func WithSink(s Sink) Option {
	return func(w *World) { w.sink = s }
}

// TickResult summarizes one movement tick
type TickResult struct {
	Tick     uint64
	Ate      int
	GameOver bool
	Cause    Cause
	Score    int // score of the round that just ended when GameOver is set
}

// NewWorld validates cfg and builds a running world with a fresh snake
func NewWorld(cfg Config, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new world: %w", err)
	}
	w := &World{cfg: cfg, sink: nopSink{}}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		w.rng = rand.New(rand.NewSource(uint64(seed)))
	}
	w.spawnSnake()
	return w, nil
}

// Arena returns the arena dimensions
func (w *World) Arena() Arena {
	return w.cfg.Arena
}

// Snake returns the live snake. Callers must not mutate it.
func (w *World) Snake() *Snake {
	return w.snake
}

// Food returns the active food items
func (w *World) Food() []Food {
	return w.food
}

// LastTail returns the tail position before the most recent movement tick
func (w *World) LastTail() (Position, bool) {
	return w.lastTail, w.hasLastTail
}

// Steer latches a requested heading for the next movement tick.
// A later call before the tick replaces the earlier request.
func (w *World) Steer(d Direction) {
	w.requested = &d
}

// emit queues an event for the growth and game over phases
func (w *World) emit(ev Event) {
	w.queue.Push(ev)
}

// Tick runs one movement tick: input, movement, food check, growth, game over.
func (w *World) Tick() TickResult {
	w.tick++
	res := TickResult{Tick: w.tick}

	// 1. Input mapper
	w.snake.Direction = UpdateDirection(w.requested, w.snake.Direction)
	w.requested = nil

	// 2. Movement and collision
	out := Advance(w.snake, w.cfg.Arena.Width, w.cfg.Arena.Height)
	w.lastTail, w.hasLastTail = out.LastTail, true
	if out.Collided {
		w.emit(GameOverEvent{Cause: out.Cause})
	}

	// 3. Food eaten
	for _, id := range CheckEaten(w.snake.Head(), w.food) {
		w.removeFood(id)
		w.emit(GrowthEvent{FoodID: id})
	}

	// 4. Growth, one segment per event
	res.Ate = w.applyGrowth()

	// 5. Game over
	if ev, ok := w.handleGameOver(); ok {
		res.GameOver = true
		res.Cause = ev.Cause
		res.Score = w.endedScore
	}
	return res
}

func (w *World) applyGrowth() int {
	events := w.queue.Consume(isGrowth)
	for range events {
		ApplyGrowth(w.snake, w.lastTail)
		i := len(w.snake.Segments) - 1
		w.sink.Spawn(segmentPlacement(i, w.snake.Segments[i]))
		w.score++
		if w.score > w.highScore {
			w.highScore = w.score
		}
	}
	return len(events)
}

// handleGameOver drains every pending game over event and resets once
func (w *World) handleGameOver() (GameOverEvent, bool) {
	events := w.queue.Consume(isGameOver)
	if len(events) == 0 {
		return GameOverEvent{}, false
	}
	first := events[0].(GameOverEvent)
	w.Reset()
	return first, true
}

// Reset discards all food and segments and respawns the starting snake
func (w *World) Reset() {
	for _, f := range w.food {
		w.sink.Despawn(f.ID)
	}
	w.food = nil
	for i := range w.snake.Segments {
		w.sink.Despawn(SegmentID(i))
	}
	w.endedScore = w.score
	w.score = 0
	w.rounds++
	w.requested = nil
	w.queue.Clear()
	w.spawnSnake()
}

func (w *World) spawnSnake() {
	w.snake = NewSnake(w.cfg.Start)
	for i, p := range w.snake.Segments {
		w.sink.Spawn(segmentPlacement(i, p))
	}
}

// SpawnFood places one new food item. Existing food is kept, so several
// items may be active at once.
func (w *World) SpawnFood() Food {
	f := NewFood(w.cfg.Arena, w.rng)
	w.food = append(w.food, f)
	w.sink.Spawn(foodPlacement(f))
	return f
}

func (w *World) removeFood(id string) {
	for i, f := range w.food {
		if f.ID == id {
			w.food = append(w.food[:i], w.food[i+1:]...)
			w.sink.Despawn(id)
			return
		}
	}
}

// Placements returns one placement per entity: segments head first, then food
func (w *World) Placements() []Placement {
	out := make([]Placement, 0, len(w.snake.Segments)+len(w.food))
	for i, p := range w.snake.Segments {
		out = append(out, segmentPlacement(i, p))
	}
	for _, f := range w.food {
		out = append(out, foodPlacement(f))
	}
	return out
}

// Snapshot is a copy of the world state safe to hand to other goroutines
type Snapshot struct {
	Tick      uint64
	Arena     Arena
	Segments  []Position
	Direction Direction
	Food      []Food
	Score     int
	HighScore int
	Rounds    int
}

// Snapshot copies the current state
func (w *World) Snapshot() Snapshot {
	segs := make([]Position, len(w.snake.Segments))
	copy(segs, w.snake.Segments)
	food := make([]Food, len(w.food))
	copy(food, w.food)
	return Snapshot{
		Tick:      w.tick,
		Arena:     w.cfg.Arena,
		Segments:  segs,
		Direction: w.snake.Direction,
		Food:      food,
		Score:     w.score,
		HighScore: w.highScore,
		Rounds:    w.rounds,
	}
}
