package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gridsnake/game"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	times    map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	return &ipRateLimiter{
		times:    make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
	}
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	if last, ok := rl.times[ip]; ok {
		if now.Sub(last) < rl.cooldown {
			return false
		}
	}
	rl.times[ip] = now
	return true
}

// sweep drops entries older than the cooldown
func (rl *ipRateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.cooldown)
	for ip, t := range rl.times {
		if t.Before(cutoff) {
			delete(rl.times, ip)
		}
	}
}

// sweepEvery cleans up stale entries until ctx is done
func (rl *ipRateLimiter) sweepEvery(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  512,
	WriteBufferSize: 2048,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

// clientIP extracts the client address. X-Forwarded-For is only honoured
// when trustProxy is set, since any client can send the header.
func clientIP(r *http.Request, trustProxy bool) string {
	if fwd := r.Header.Get("X-Forwarded-For"); trustProxy && fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// newServer wires the HTTP routes around the loop and connection registry
func newServer(loop *GameLoop, conns *ConnManager, limiter *ipRateLimiter, cfg Config) http.Handler {
	mux := http.NewServeMux()

	// WebSocket handler
	mux.HandleFunc(WebSocketPath, func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, cfg.TrustProxy)

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("ws upgrade error")
			return
		}

		// Check limits after upgrade so client can receive error messages
		if cfg.MaxPlayers > 0 && conns.Count() >= cfg.MaxPlayers {
			sendErrorAndClose(ws, "Server full. Please try again later.")
			return
		}
		if !limiter.allow(ip) {
			sendErrorAndClose(ws, "Too many connections. Please wait a moment.")
			return
		}

		conn := NewConn(ws)

		// Send welcome and current state before the conn joins broadcasts
		if err := conn.Send(loop.Welcome(conn.ID)); err != nil {
			log.Warn().Err(err).Str("conn", conn.ID).Msg("welcome failed")
			conn.Close()
			return
		}
		_ = conn.Send(loop.Latest())

		players := conns.Add(conn)
		log.Info().Str("conn", conn.ID).Str("ip", ip).Int("players", players).Msg("player connected")

		onDisconnect := func(c *Conn) {
			conns.Remove(c)
			log.Info().Str("conn", c.ID).Msg("player disconnected")
		}

		// Blocking read loop, runs until client disconnects
		conn.ReadLoop(onDisconnect)
	})

	mux.HandleFunc(StatePath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(loop.Latest()); err != nil {
			log.Warn().Err(err).Msg("encode state")
		}
	})

	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})

	// Serve static client files
	if cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))
	}
	return mux
}

// setupLogging configures the global zerolog logger.
// The returned closer releases the log file, if any.
func setupLogging(cfg Config) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return f, nil
	case cfg.TUI:
		// The terminal belongs to the game screen
		log.Logger = zerolog.Nop()
	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return io.NopCloser(nil), nil
}

func main() {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	closer, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("gridsnake stopped")
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	world, err := game.NewWorld(cfg.Game, game.WithSink(logSink{}))
	if err != nil {
		return err
	}
	conns := NewConnManager()
	loop := NewGameLoop(world, conns, cfg)

	if cfg.QR {
		if err := printJoinQR(os.Stdout, cfg.PublicURL); err != nil {
			log.Warn().Err(err).Msg("qr banner")
		}
	}

	var term *Terminal
	if cfg.TUI {
		term, err = NewTerminal()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		loop.AddInput(term)
		loop.Observe(term.Draw)
		term.Draw(world.Snapshot())
	}

	errCh := make(chan error, 3)
	go func() { errCh <- loop.Run(ctx) }()

	var srv *http.Server
	if cfg.Addr != "" {
		limiter := newIPRateLimiter(cfg.IPCooldown)
		go limiter.sweepEvery(ctx, time.Minute)

		srv = &http.Server{
			Addr:              cfg.Addr,
			Handler:           newServer(loop, conns, limiter, cfg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.Addr).Msg("server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("server: %w", err)
			}
		}()
	}

	if term != nil {
		go func() {
			term.Run(ctx)
			// Leaving the terminal ends the process
			cancel()
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}
	cancel()

	if term != nil {
		term.Close()
	}
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("server shutdown")
		}
		for _, c := range conns.All() {
			c.Close()
		}
	}
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	return runErr
}
