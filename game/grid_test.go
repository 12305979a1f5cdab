package game

import "testing"

func TestInBounds(t *testing.T) {
	tests := []struct {
		name          string
		pos           Position
		width, height int
		want          bool
	}{
		{"origin", Position{0, 0}, 10, 10, true},
		{"far corner", Position{9, 9}, 10, 10, true},
		{"x at width", Position{10, 0}, 10, 10, false},
		{"y at height", Position{0, 10}, 10, 10, false},
		{"negative x", Position{-1, 5}, 10, 10, false},
		{"negative y", Position{5, -1}, 10, 10, false},
		{"1x1 arena", Position{0, 0}, 1, 1, true},
		{"non square", Position{14, 2}, 15, 3, true},
		{"non square outside", Position{2, 3}, 15, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InBounds(tt.pos, tt.width, tt.height); got != tt.want {
				t.Errorf("InBounds(%v, %d, %d) = %v, want %v", tt.pos, tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestArenaContainsMatchesInBounds(t *testing.T) {
	a := Arena{Width: 4, Height: 3}
	for x := -1; x <= a.Width; x++ {
		for y := -1; y <= a.Height; y++ {
			p := Position{x, y}
			if a.Contains(p) != InBounds(p, a.Width, a.Height) {
				t.Errorf("Contains(%v) disagrees with InBounds", p)
			}
		}
	}
	if a.Cells() != 12 {
		t.Errorf("Cells() = %d, want 12", a.Cells())
	}
}
