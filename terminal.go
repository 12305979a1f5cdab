package main

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"gridsnake/game"
)

// Each arena cell is drawn two columns wide so it looks square
const cellCols = 2

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHead   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(178, 178, 178))
	styleBody   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFood   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

var key2Dir = map[tcell.Key]game.Direction{
	tcell.KeyLeft:  game.Left,
	tcell.KeyRight: game.Right,
	tcell.KeyUp:    game.Up,
	tcell.KeyDown:  game.Down,
}

var rune2Dir = map[rune]game.Direction{
	'a': game.Left,
	'd': game.Right,
	'w': game.Up,
	's': game.Down,
}

// keyDirection maps a key event to a direction
func keyDirection(key tcell.Key, r rune) (game.Direction, bool) {
	if key == tcell.KeyRune {
		d, ok := rune2Dir[r]
		return d, ok
	}
	d, ok := key2Dir[key]
	return d, ok
}

func isQuitKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyEscape || key == tcell.KeyCtrlC || (key == tcell.KeyRune && r == 'q')
}

// Terminal is a local input source and renderer.
// Terminals report presses, not releases, so a key counts as held
// until the next sample.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex // protects keys, closed and drawing
	keys   game.KeySet
	closed bool
}

// NewTerminal initializes the terminal screen
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newTerminalWithScreen(screen), nil
}

func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	screen.HideCursor()
	screen.Clear()
	return &Terminal{screen: screen}
}

// SampleKeys returns the keys pressed since the last sample and clears them
func (t *Terminal) SampleKeys() game.KeySet {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := t.keys
	t.keys = 0
	return k
}

// press records a pressed direction
func (t *Terminal) press(d game.Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.keys = t.keys.Hold(d)
}

// Run polls terminal events until a quit key, ctx cancellation or Close.
func (t *Terminal) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			// PollEvent returns nil once the screen is finalized
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if quit := t.handle(ev); quit {
				return
			}
		}
	}
}

// handle processes one event and reports whether the player asked to quit
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuitKey(ev.Key(), ev.Rune()) {
			return true
		}
		if d, ok := keyDirection(ev.Key(), ev.Rune()); ok {
			t.press(d)
		}
	case *tcell.EventResize:
		t.mu.Lock()
		t.screen.Sync()
		t.mu.Unlock()
	}
	return false
}

// Close restores the terminal
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

// cellOrigin maps a grid coordinate to the offset of its first column or
// row inside a window of windowDim units, using the centred screen
// translation shifted to a top-left origin.
func cellOrigin(pos, windowDim, arenaDim float64) int {
	tile := windowDim / arenaDim
	return int(math.Round(game.ScreenTranslation(pos, windowDim, arenaDim) + windowDim/2 - tile/2))
}

// Draw renders a snapshot: border at (0,0), arena inside, status line below.
func (t *Terminal) Draw(snap game.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	s := t.screen
	s.Clear()

	a := snap.Arena
	winW := float64(a.Width * cellCols)
	winH := float64(a.Height)
	drawBox(s, 0, 0, a.Width*cellCols+1, a.Height+1, styleBorder)

	// Grid y grows upward, screen rows grow downward
	put := func(p game.Position, r rune, style tcell.Style) {
		col := 1 + cellOrigin(float64(p.X), winW, float64(a.Width))
		row := 1 + a.Height - 1 - cellOrigin(float64(p.Y), winH, float64(a.Height))
		for i := 0; i < cellCols; i++ {
			s.SetContent(col+i, row, r, nil, style)
		}
	}

	for _, f := range snap.Food {
		put(f.Pos, tcell.RuneDiamond, styleFood)
	}
	for i := len(snap.Segments) - 1; i >= 0; i-- {
		if i == 0 {
			put(snap.Segments[i], tcell.RuneBlock, styleHead)
		} else {
			put(snap.Segments[i], tcell.RuneCkBoard, styleBody)
		}
	}

	status := fmt.Sprintf("score %d  best %d  round %d  [arrows/wasd, q quits]", snap.Score, snap.HighScore, snap.Rounds+1)
	drawText(s, 0, a.Height+2, status, styleText)
	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func drawBox(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style) {
	for col := x1; col <= x2; col++ {
		s.SetContent(col, y1, tcell.RuneHLine, nil, style)
		s.SetContent(col, y2, tcell.RuneHLine, nil, style)
	}
	for row := y1 + 1; row < y2; row++ {
		s.SetContent(x1, row, tcell.RuneVLine, nil, style)
		s.SetContent(x2, row, tcell.RuneVLine, nil, style)
	}
	s.SetContent(x1, y1, tcell.RuneULCorner, nil, style)
	s.SetContent(x2, y1, tcell.RuneURCorner, nil, style)
	s.SetContent(x1, y2, tcell.RuneLLCorner, nil, style)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)
}
