package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"gridsnake/game"
)

// InputSource reports the directional keys held since the last sample
type InputSource interface {
	SampleKeys() game.KeySet
}

// FrameObserver is notified on the loop goroutine after every state change
type FrameObserver func(snap game.Snapshot)

// GameLoop owns the world and drives it from three independent tickers:
// movement, food spawn and input sampling.
type GameLoop struct {
	world     *game.World
	conns     *ConnManager
	inputs    []InputSource
	observers []FrameObserver
	pilot     *game.Autopilot
	cfg       Config

	steered bool                     // a player requested a direction since the last move
	latest  atomic.Pointer[StateMsg] // last broadcast state, read by HTTP handlers
}

// NewGameLoop creates a game loop bound to world and conn manager.
// The conn manager is always an input source.
func NewGameLoop(world *game.World, conns *ConnManager, cfg Config) *GameLoop {
	gl := &GameLoop{
		world:  world,
		conns:  conns,
		inputs: []InputSource{conns},
		cfg:    cfg,
	}
	if cfg.Autopilot {
		gl.pilot = &game.Autopilot{}
	}
	gl.publish()
	return gl
}

// AddInput registers another input source. Call before Run.
func (gl *GameLoop) AddInput(src InputSource) {
	gl.inputs = append(gl.inputs, src)
}

// Observe registers a frame observer. Call before Run.
func (gl *GameLoop) Observe(fn FrameObserver) {
	gl.observers = append(gl.observers, fn)
}

// Latest returns the most recent state message
func (gl *GameLoop) Latest() StateMsg {
	return *gl.latest.Load()
}

// Welcome builds the welcome message for a new client
func (gl *GameLoop) Welcome(id string) WelcomeMsg {
	a := gl.world.Arena()
	return WelcomeMsg{
		Type:   MsgWelcome,
		ID:     id,
		Arena:  [2]int{a.Width, a.Height},
		TickMS: gl.cfg.MoveInterval.Milliseconds(),
	}
}

// Run starts the fixed-timestep loop. Blocks until ctx is cancelled.
func (gl *GameLoop) Run(ctx context.Context) error {
	move := time.NewTicker(gl.cfg.MoveInterval)
	defer move.Stop()
	food := time.NewTicker(gl.cfg.FoodInterval)
	defer food.Stop()
	sample := time.NewTicker(gl.cfg.SampleInterval)
	defer sample.Stop()

	log.Info().
		Dur("tick", gl.cfg.MoveInterval).
		Dur("food", gl.cfg.FoodInterval).
		Int("width", gl.world.Arena().Width).
		Int("height", gl.world.Arena().Height).
		Msg("game loop started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("game loop stopped")
			return ctx.Err()
		case <-sample.C:
			gl.sampleInput()
		case <-move.C:
			gl.moveTick()
		case <-food.C:
			gl.spawnFood()
		}
	}
}

// sampleInput polls every input source and latches the resolved direction
func (gl *GameLoop) sampleInput() {
	var held game.KeySet
	for _, src := range gl.inputs {
		held = held.Union(src.SampleKeys())
	}
	if d, ok := game.RequestedDirection(held); ok {
		gl.world.Steer(d)
		gl.steered = true
	}
}

// moveTick executes a single movement tick
func (gl *GameLoop) moveTick() {
	// 1. Autopilot fills in when nobody steered since the last move
	if gl.pilot != nil && !gl.steered {
		if d, ok := gl.pilot.Decide(gl.world.Snapshot()); ok {
			gl.world.Steer(d)
		}
	}
	gl.steered = false

	// 2. Advance the simulation
	res := gl.world.Tick()
	if res.Ate > 0 {
		log.Debug().Uint64("tick", res.Tick).Int("ate", res.Ate).Msg("food eaten")
	}

	// 3. Announce the end of a round before the fresh state
	if res.GameOver {
		log.Info().
			Uint64("tick", res.Tick).
			Str("cause", res.Cause.String()).
			Int("score", res.Score).
			Msg("game over")
		gl.conns.Broadcast(GameOverMsg{
			Type:  MsgGameOver,
			Cause: res.Cause.String(),
			Score: res.Score,
		})
	}

	// 4. Broadcast state
	gl.broadcast()
}

func (gl *GameLoop) spawnFood() {
	f := gl.world.SpawnFood()
	log.Debug().Str("food", f.ID).Int("x", f.Pos.X).Int("y", f.Pos.Y).Msg("food spawned")
	gl.broadcast()
}

func (gl *GameLoop) broadcast() {
	msg := gl.publish()
	gl.conns.Broadcast(msg)
	if len(gl.observers) == 0 {
		return
	}
	snap := gl.world.Snapshot()
	for _, fn := range gl.observers {
		fn(snap)
	}
}

// publish stores the current state for HTTP readers and returns it
func (gl *GameLoop) publish() *StateMsg {
	msg := newStateMsg(gl.world.Snapshot(), gl.world.Placements())
	gl.latest.Store(&msg)
	return &msg
}
