package game

import (
	"math"
	"testing"
)

func TestScreenTranslation(t *testing.T) {
	tests := []struct {
		name                     string
		pos, windowDim, arenaDim float64
		want                     float64
	}{
		// 500px window over 10 cells: tile 50px, cell 0 centred at -225
		{"first cell", 0, 500, 10, -225},
		{"last cell", 9, 500, 10, 225},
		{"middle", 5, 500, 10, 25},
		{"single cell arena", 0, 300, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenTranslation(tt.pos, tt.windowDim, tt.arenaDim)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScreenTranslation(%v, %v, %v) = %v, want %v", tt.pos, tt.windowDim, tt.arenaDim, got, tt.want)
			}
		})
	}
}

func TestScreenScale(t *testing.T) {
	if got := ScreenScale(HeadSize, 500, 10); math.Abs(got-40) > 1e-9 {
		t.Errorf("head scale = %v, want 40", got)
	}
	if got := ScreenScale(BodySize, 500, 10); math.Abs(got-32.5) > 1e-9 {
		t.Errorf("body scale = %v, want 32.5", got)
	}
}
