package main

import (
	"github.com/rs/zerolog/log"

	"gridsnake/game"
)

// logSink reports entity lifecycle at debug level
type logSink struct{}

func (logSink) Spawn(p game.Placement) {
	log.Debug().
		Str("id", p.ID).
		Str("kind", string(p.Kind)).
		Int("x", p.Pos.X).
		Int("y", p.Pos.Y).
		Float64("size", p.Size).
		Msg("spawn")
}

func (logSink) Despawn(id string) {
	log.Debug().Str("id", id).Msg("despawn")
}
