package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArena     = errors.New("arena dimensions must be positive")
	ErrStartOutOfBounds = errors.New("start snake does not fit in the arena")
)

// Default arena and spawn cell
const (
	DefaultArenaWidth  = 10
	DefaultArenaHeight = 10
	DefaultStartX      = 3
	DefaultStartY      = 3
)

// Config is the fixed configuration of a world
type Config struct {
	Arena Arena
	Start Position // head cell of a fresh snake
	Seed  int64    // 0 picks a time based seed
}

// DefaultConfig returns the classic 10x10 arena with the head at (3,3)
func DefaultConfig() Config {
	return Config{
		Arena: Arena{Width: DefaultArenaWidth, Height: DefaultArenaHeight},
		Start: Position{X: DefaultStartX, Y: DefaultStartY},
	}
}

// Validate checks that the arena is usable and the starting snake fits in it
func (c Config) Validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidArena, c.Arena.Width, c.Arena.Height)
	}
	for _, p := range NewSnake(c.Start).Segments {
		if !c.Arena.Contains(p) {
			return fmt.Errorf("%w: segment %v outside %dx%d", ErrStartOutOfBounds, p, c.Arena.Width, c.Arena.Height)
		}
	}
	return nil
}
