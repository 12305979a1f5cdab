package game

import "testing"

var allDirections = []Direction{Left, Up, Right, Down}

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range allDirections {
		if d.Opposite() == d {
			t.Errorf("%v.Opposite() returned itself", d)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("%v.Opposite().Opposite() = %v", d, d.Opposite().Opposite())
		}
		sum := d.Offset().Add(d.Opposite().Offset())
		if sum != (Position{}) {
			t.Errorf("offsets of %v and its opposite do not cancel: %v", d, sum)
		}
	}
}

func TestOffsetConvention(t *testing.T) {
	want := map[Direction]Position{
		Up:    {0, 1},
		Down:  {0, -1},
		Left:  {-1, 0},
		Right: {1, 0},
	}
	for d, off := range want {
		if got := d.Offset(); got != off {
			t.Errorf("%v.Offset() = %v, want %v", d, got, off)
		}
	}
}

func TestUpdateDirectionRejectsReversal(t *testing.T) {
	for _, h := range allDirections {
		rev := h.Opposite()
		if got := UpdateDirection(&rev, h); got != h {
			t.Errorf("UpdateDirection(%v, %v) = %v, want %v", rev, h, got, h)
		}
	}
}

func TestUpdateDirectionAcceptsNonReversal(t *testing.T) {
	for _, h := range allDirections {
		for _, d := range allDirections {
			if d == h.Opposite() {
				continue
			}
			req := d
			if got := UpdateDirection(&req, h); got != d {
				t.Errorf("UpdateDirection(%v, %v) = %v, want %v", d, h, got, d)
			}
		}
	}
}

func TestUpdateDirectionNoRequest(t *testing.T) {
	for _, h := range allDirections {
		if got := UpdateDirection(nil, h); got != h {
			t.Errorf("UpdateDirection(nil, %v) = %v", h, got)
		}
	}
}

func TestRequestedDirectionPriority(t *testing.T) {
	tests := []struct {
		name string
		held []Direction
		want Direction
		ok   bool
	}{
		{"none", nil, 0, false},
		{"single right", []Direction{Right}, Right, true},
		{"left beats down", []Direction{Down, Left}, Left, true},
		{"down beats up", []Direction{Up, Down}, Down, true},
		{"up beats right", []Direction{Right, Up}, Up, true},
		{"all held", allDirections, Left, true},
		{"right up down", []Direction{Right, Up, Down}, Down, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k KeySet
			for _, d := range tt.held {
				k = k.Hold(d)
			}
			got, ok := RequestedDirection(k)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("RequestedDirection(%v) = %v, %v; want %v, %v", tt.held, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseKeys(t *testing.T) {
	k := ParseKeys([]string{"up", "bogus", "left", ""})
	if !k.Held(Up) || !k.Held(Left) {
		t.Fatalf("expected up and left held, got %08b", k)
	}
	if k.Held(Down) || k.Held(Right) {
		t.Fatalf("unexpected keys held: %08b", k)
	}
	if got := k.Union(ParseKeys([]string{"right"})); !got.Held(Right) || !got.Held(Up) {
		t.Fatalf("Union lost keys: %08b", got)
	}
}

func TestDirectionStringRoundTrip(t *testing.T) {
	for _, d := range allDirections {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("north"); ok {
		t.Error("ParseDirection accepted an unknown name")
	}
}
