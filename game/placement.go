package game

import "strconv"

// Logical entity sizes as a fraction of one grid cell
const (
	HeadSize = 0.8
	BodySize = 0.65
	FoodSize = 0.8
)

// Kind is the render category of a placed entity
type Kind string

const (
	KindHead Kind = "head"
	KindBody Kind = "body"
	KindFood Kind = "food"
)

// Placement is what the core hands to a rendering sink for one entity
type Placement struct {
	ID   string
	Kind Kind
	Pos  Position
	Size float64
}

// SegmentID is the stable id of the segment at index i (0 = head)
func SegmentID(i int) string {
	return "seg-" + strconv.Itoa(i)
}

func segmentPlacement(i int, p Position) Placement {
	if i == 0 {
		return Placement{ID: SegmentID(0), Kind: KindHead, Pos: p, Size: HeadSize}
	}
	return Placement{ID: SegmentID(i), Kind: KindBody, Pos: p, Size: BodySize}
}

func foodPlacement(f Food) Placement {
	return Placement{ID: f.ID, Kind: KindFood, Pos: f.Pos, Size: FoodSize}
}

// ScreenTranslation converts a grid coordinate to a centre-origin screen
// coordinate along one axis.
func ScreenTranslation(pos, windowDim, arenaDim float64) float64 {
	tileSize := windowDim / arenaDim
	return pos/arenaDim*windowDim - windowDim/2 + tileSize/2
}

// ScreenScale converts a logical size to screen units along one axis
func ScreenScale(size, windowDim, arenaDim float64) float64 {
	return size / arenaDim * windowDim
}

// Sink receives entity lifecycle notifications from the world
type Sink interface {
	Spawn(p Placement)
	Despawn(id string)
}

type nopSink struct{}

func (nopSink) Spawn(Placement) {}
func (nopSink) Despawn(string)  {}
