// Package web serves the browser play endpoint. Each websocket runs its
// own single-player session: the handshake fixes the protocol version
// and difficulty, a reader pump keeps the latest held-key sample, and a
// fixed-rate loop advances the simulation and publishes snapshots.
package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/avolanis/asteroids/internal/game"
	"github.com/avolanis/asteroids/internal/protocol"
)

const (
	// Clients send held-key samples and tiny control frames; anything
	// larger is a misbehaving peer.
	maxMessageSize = 4 << 10

	helloWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	writeWait  = 10 * time.Second
)

// Options configures the play endpoint. The zero value serves with the
// default logger, stock tuning and time-based seeds.
type Options struct {
	Log    *log.Logger
	Tuning *game.Tuning

	// AllowOrigin admits cross-origin upgrades when it returns true.
	// Nil keeps the same-host policy.
	AllowOrigin func(r *http.Request) bool

	// Seed overrides the per-session seed source.
	Seed func() int64
}

// Handler upgrades requests on its route and runs one game per socket.
type Handler struct {
	log      *log.Logger
	tuning   *game.Tuning
	seed     func() int64
	upgrader websocket.Upgrader
}

func NewHandler(opts Options) *Handler {
	logger := opts.Log
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		log:    logger,
		tuning: opts.Tuning,
		seed:   opts.Seed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     opts.AllowOrigin,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.Debug("websocket upgrade refused", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	logger := h.log.With("remote", r.RemoteAddr)
	conn.SetReadLimit(maxMessageSize)

	difficulty, err := h.handshake(conn)
	if err != nil {
		logger.Debug("handshake failed", "err", err)
		return
	}

	sess, err := h.newSession(difficulty)
	if err != nil {
		h.sendError(conn, "internal", "could not start a game")
		logger.Error("session start failed", "err", err)
		return
	}

	bounds := sess.Bounds()
	welcome := protocol.Welcome{
		V:      protocol.Version,
		Width:  bounds.W,
		Height: bounds.H,
		TickHz: protocol.SimTickHz,
	}
	if err := h.send(conn, protocol.MsgWelcome, welcome); err != nil {
		logger.Debug("welcome failed", "err", err)
		return
	}

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	logger.Info("game started", "difficulty", difficulty)
	final := h.play(conn, logger, sess, difficulty)
	logger.Info("game closed", "score", final.Score, "wave", final.Wave+1, "tick", final.Tick)
}

// handshake reads the opening Hello and resolves the difficulty. The
// deadline keeps half-open sockets from parking forever.
func (h *Handler) handshake(conn *websocket.Conn) (game.Difficulty, error) {
	conn.SetReadDeadline(time.Now().Add(helloWait))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return 0, fmt.Errorf("reading hello: %w", err)
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		h.sendError(conn, "bad-handshake", err.Error())
		return 0, err
	}
	if env.T != protocol.MsgHello {
		h.sendError(conn, "bad-handshake", "first message must be hello")
		return 0, fmt.Errorf("first message %q, want %q", env.T, protocol.MsgHello)
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		h.sendError(conn, "bad-handshake", "malformed hello")
		return 0, err
	}
	if hello.V != protocol.Version {
		h.sendError(conn, "version-mismatch", fmt.Sprintf("server speaks v%d", protocol.Version))
		return 0, fmt.Errorf("client speaks v%d, server v%d", hello.V, protocol.Version)
	}
	d, err := game.ParseDifficulty(hello.Difficulty)
	if err != nil {
		h.sendError(conn, "bad-difficulty", hello.Difficulty)
		return 0, err
	}
	return d, nil
}

func (h *Handler) newSession(d game.Difficulty) (*game.Session, error) {
	seed := time.Now().UnixNano()
	if h.seed != nil {
		seed = h.seed()
	}
	cfg := game.DefaultConfig(seed)
	cfg.Difficulty = d
	cfg.Tuning = h.tuning
	return game.NewSession(cfg)
}

func (h *Handler) send(conn *websocket.Conn, t string, payload any) error {
	b, err := protocol.Encode(t, payload)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}

// sendError is best effort; the connection is closing anyway.
func (h *Handler) sendError(conn *websocket.Conn, code, reason string) {
	_ = h.send(conn, protocol.MsgError, protocol.ErrorMsg{Code: code, Reason: reason})
}
