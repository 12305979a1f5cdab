package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"gridsnake/game"
)

var (
	errConnClosed    = errors.New("connection closed")
	errSendQueueFull = errors.New("send queue full")
)

// Conn is one WebSocket client. Every client steers the shared snake.
// Outgoing frames go through a bounded queue drained by writeLoop, the
// only goroutine that writes to ws.
type Conn struct {
	ID string
	ws *websocket.Conn

	send chan []byte
	done chan struct{}

	mu     sync.Mutex // guards held and closed
	held   game.KeySet
	closed bool
}

// NewConn wraps ws and starts its writer
func NewConn(ws *websocket.Conn) *Conn {
	c := &Conn{
		ID:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, SendQueueLen),
		done: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

// Send encodes msg as JSON and queues it as a single text frame
func (c *Conn) Send(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %T: %w", msg, err)
	}
	return c.enqueue(data)
}

// enqueue never blocks
func (c *Conn) enqueue(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errConnClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errSendQueueFull
	}
}

func (c *Conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(WriteTimeoutMS * time.Millisecond))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("conn", c.ID).Msg("write failed")
				c.Close()
				return
			}
		}
	}
}

// HeldKeys reports the directions the client last said it is holding
func (c *Conn) HeldKeys() game.KeySet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

func (c *Conn) hold(k game.KeySet) {
	c.mu.Lock()
	c.held = k
	c.mu.Unlock()
}

// Close releases every held key, stops the writer and closes the socket.
// Queued frames are dropped. Safe to call twice.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.held = 0
	close(c.done)
	c.ws.Close()
}

// ReadLoop applies key messages until the client goes away, then calls
// onDisconnect and closes the conn.
func (c *Conn) ReadLoop(onDisconnect func(conn *Conn)) {
	defer func() {
		onDisconnect(c)
		c.Close()
	}()

	c.ws.SetReadLimit(ReadLimitBytes)
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("conn", c.ID).Msg("ws read error")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Debug().Err(err).Str("conn", c.ID).Msg("bad message")
			continue
		}
		if msg.Type != MsgKeys {
			log.Debug().Str("conn", c.ID).Str("type", msg.Type).Msg("unknown message type")
			continue
		}
		c.hold(game.ParseKeys(msg.Keys))
	}
}

// ConnManager is the registry of connected clients. It is also the
// network input source of the game loop.
type ConnManager struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

func NewConnManager() *ConnManager {
	return &ConnManager{conns: make(map[string]*Conn)}
}

// Add registers c and returns the new client count
func (m *ConnManager) Add(c *Conn) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c.ID] = c
	return len(m.conns)
}

func (m *ConnManager) Remove(c *Conn) {
	m.mu.Lock()
	delete(m.conns, c.ID)
	m.mu.Unlock()
}

func (m *ConnManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.conns)
}

// All returns the registered clients in no particular order
func (m *ConnManager) All() []*Conn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Conn, 0, len(m.conns))
	for _, c := range m.conns {
		out = append(out, c)
	}
	return out
}

// SampleKeys is the union of every client's held keys
func (m *ConnManager) SampleKeys() game.KeySet {
	var held game.KeySet
	for _, c := range m.All() {
		held = held.Union(c.HeldKeys())
	}
	return held
}

// Broadcast encodes msg once and queues it for every client. It never
// waits on a socket: a client whose queue is full is disconnected, and its
// read loop then unregisters it.
func (m *ConnManager) Broadcast(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msgf("encode %T", msg)
		return
	}
	for _, c := range m.All() {
		if err := c.enqueue(data); errors.Is(err, errSendQueueFull) {
			log.Warn().Str("conn", c.ID).Msg("client too slow, dropping")
			c.Close()
		}
	}
}
