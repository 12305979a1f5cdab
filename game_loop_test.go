package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"gridsnake/game"
)

// fixedKeys is an input source that always reports the same keys
type fixedKeys game.KeySet

func (k fixedKeys) SampleKeys() game.KeySet { return game.KeySet(k) }

// scriptedRand feeds food placement from a fixed list
type scriptedRand struct {
	vals []int
	i    int
}

func (r *scriptedRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Game.Seed = 7
	cfg.MoveInterval = 5 * time.Millisecond
	cfg.FoodInterval = 20 * time.Millisecond
	cfg.SampleInterval = time.Millisecond
	cfg.IPCooldown = 0
	return cfg
}

func newTestLoop(t *testing.T, cfg Config, opts ...game.Option) (*GameLoop, *game.World) {
	t.Helper()
	world, err := game.NewWorld(cfg.Game, opts...)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return NewGameLoop(world, NewConnManager(), cfg), world
}

func headOf(t *testing.T, msg StateMsg) EntityDTO {
	t.Helper()
	for _, e := range msg.Entities {
		if e.Kind == string(game.KindHead) {
			return e
		}
	}
	t.Fatalf("no head in state %+v", msg)
	return EntityDTO{}
}

func TestGameLoopPublishesInitialState(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig())
	msg := loop.Latest()
	if msg.Type != MsgState || msg.Tick != 0 {
		t.Fatalf("initial state = %+v", msg)
	}
	if h := headOf(t, msg); h.X != 3 || h.Y != 3 || h.Size != game.HeadSize {
		t.Fatalf("initial head = %+v", h)
	}
}

func TestGameLoopMoveTick(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig())
	loop.moveTick()
	msg := loop.Latest()
	if msg.Tick != 1 {
		t.Fatalf("tick = %d, want 1", msg.Tick)
	}
	if h := headOf(t, msg); h.X != 3 || h.Y != 4 {
		t.Fatalf("head = (%d,%d), want (3,4)", h.X, h.Y)
	}
}

func TestGameLoopSampleInputSteersNextTick(t *testing.T) {
	loop, world := newTestLoop(t, testConfig())
	loop.AddInput(fixedKeys(game.KeySet(0).Hold(game.Left)))

	loop.sampleInput()
	if world.Snake().Direction != game.Up {
		t.Fatal("direction changed before the movement tick")
	}
	loop.moveTick()
	if head := world.Snake().Head(); head != (game.Position{X: 2, Y: 3}) {
		t.Fatalf("head = %v, want (2,3)", head)
	}
}

func TestGameLoopPriorityPicksReversalAndKeepsHeading(t *testing.T) {
	// Down outranks Right; Down is the reversal of Up and gets rejected
	loop, world := newTestLoop(t, testConfig())
	loop.AddInput(fixedKeys(game.KeySet(0).Hold(game.Right).Hold(game.Down)))

	loop.sampleInput()
	loop.moveTick()
	if head := world.Snake().Head(); head != (game.Position{X: 3, Y: 4}) {
		t.Fatalf("head = %v, want (3,4)", head)
	}
}

func TestGameLoopAutopilot(t *testing.T) {
	cfg := testConfig()
	cfg.Autopilot = true
	loop, world := newTestLoop(t, cfg, game.WithRand(&scriptedRand{vals: []int{7, 3}}))
	loop.spawnFood()

	loop.moveTick()
	if head := world.Snake().Head(); head != (game.Position{X: 4, Y: 3}) {
		t.Fatalf("autopilot head = %v, want (4,3)", head)
	}

	// Player input wins over the autopilot
	loop.AddInput(fixedKeys(game.KeySet(0).Hold(game.Up)))
	loop.sampleInput()
	loop.moveTick()
	if head := world.Snake().Head(); head != (game.Position{X: 4, Y: 4}) {
		t.Fatalf("steered head = %v, want (4,4)", head)
	}
}

func TestGameLoopObservers(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig())
	var got []uint64
	loop.Observe(func(snap game.Snapshot) { got = append(got, snap.Tick) })

	loop.moveTick()
	loop.spawnFood()
	loop.moveTick()
	if len(got) != 3 || got[0] != 1 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("observed ticks = %v, want [1 1 2]", got)
	}
}

func TestGameLoopRunStopsOnCancel(t *testing.T) {
	loop, _ := newTestLoop(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for loop.Latest().Tick == 0 {
		if time.Now().After(deadline) {
			t.Fatal("loop never ticked")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
