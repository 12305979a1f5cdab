package main

import "gridsnake/game"

// Protocol uses single-character JSON keys to keep messages small.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "k" = keys     {"t":"k","k":["left","up"]}   (currently held directions)
//   Server → Client:
//     "w" = welcome  {"t":"w","i":"id","a":[10,10],"m":150}  (a=arena w,h; m=tick ms)
//     "s" = state    {"t":"s","n":12,"d":"up","e":[entities],"p":1,"h":4,"r":2}
//     "o" = over     {"t":"o","c":"wall","p":3}
//     "x" = error    {"t":"x","m":"Server full."}
//
// EntityDTO: {"i":"seg-0","k":"head","x":3,"y":4,"s":0.8}
//   k = head/body/food, s = size as a fraction of one cell

// Message type identifiers
const (
	MsgKeys     = "k"
	MsgWelcome  = "w"
	MsgState    = "s"
	MsgGameOver = "o"
	MsgError    = "x"
)

// ClientMessage is the base incoming message
type ClientMessage struct {
	Type string   `json:"t"`
	Keys []string `json:"k,omitempty"`
}

// WelcomeMsg is sent immediately on WebSocket connect
type WelcomeMsg struct {
	Type   string `json:"t"`
	ID     string `json:"i"`
	Arena  [2]int `json:"a"`
	TickMS int64  `json:"m"`
}

// EntityDTO is one placed entity in a state update
type EntityDTO struct {
	ID   string  `json:"i"`
	Kind string  `json:"k"`
	X    int     `json:"x"`
	Y    int     `json:"y"`
	Size float64 `json:"s"`
}

// StateMsg is broadcast after every movement tick and food spawn
type StateMsg struct {
	Type      string      `json:"t"`
	Tick      uint64      `json:"n"`
	Direction string      `json:"d"`
	Entities  []EntityDTO `json:"e"`
	Score     int         `json:"p"`
	HighScore int         `json:"h"`
	Rounds    int         `json:"r"`
}

// GameOverMsg is broadcast when a round ends
type GameOverMsg struct {
	Type  string `json:"t"`
	Cause string `json:"c"`
	Score int    `json:"p"`
}

// ErrorMsg is sent before the server closes a rejected connection
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// newStateMsg builds the state message from a world snapshot and its placements
func newStateMsg(snap game.Snapshot, placements []game.Placement) StateMsg {
	entities := make([]EntityDTO, len(placements))
	for i, p := range placements {
		entities[i] = EntityDTO{
			ID:   p.ID,
			Kind: string(p.Kind),
			X:    p.Pos.X,
			Y:    p.Pos.Y,
			Size: p.Size,
		}
	}
	return StateMsg{
		Type:      MsgState,
		Tick:      snap.Tick,
		Direction: snap.Direction.String(),
		Entities:  entities,
		Score:     snap.Score,
		HighScore: snap.HighScore,
		Rounds:    snap.Rounds,
	}
}
