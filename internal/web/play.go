package web

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/avolanis/asteroids/internal/game"
	"github.com/avolanis/asteroids/internal/protocol"
)

// remote collects what the reader pump hands the play loop: the latest
// held-key sample wins, restart is a one-shot flag.
type remote struct {
	mu      sync.Mutex
	input   protocol.Input
	restart bool
}

func (rm *remote) store(in protocol.Input) {
	rm.mu.Lock()
	rm.input = in
	rm.mu.Unlock()
}

func (rm *remote) requestRestart() {
	rm.mu.Lock()
	rm.restart = true
	rm.mu.Unlock()
}

// take returns the current sample and consumes any pending restart.
func (rm *remote) take() (protocol.Input, bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	in, restart := rm.input, rm.restart
	rm.restart = false
	return in, restart
}

// play owns every write on the socket; the pump only reads. A local
// frame counter drives the broadcast cadence, so a paused session keeps
// publishing even though its tick stands still.
func (h *Handler) play(conn *websocket.Conn, logger *log.Logger, sess *game.Session, difficulty game.Difficulty) game.Snapshot {
	rm := &remote{}
	done := make(chan struct{})
	go h.readPump(conn, logger, rm, done)

	ticker := time.NewTicker(time.Second / protocol.SimTickHz)
	defer ticker.Stop()

	const dt = 1.0 / protocol.SimTickHz
	broadcastEvery := protocol.SimTickHz / protocol.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}

	snap := sess.Snapshot()
	lastPing := time.Now()
	for frame := 1; ; frame++ {
		select {
		case <-done:
			return snap
		case <-ticker.C:
		}

		in, restart := rm.take()
		if restart && sess.State() == game.StateGameOver {
			fresh, err := h.newSession(difficulty)
			if err != nil {
				logger.Error("restart failed", "err", err)
				return snap
			}
			sess = fresh
			logger.Info("game restarted")
		}

		sess.Advance(game.Intent{
			Thrust:      in.Thrust,
			RotateLeft:  in.Left,
			RotateRight: in.Right,
			Fire:        in.Fire,
			Pause:       in.Pause,
		}, dt)

		if frame%broadcastEvery == 0 {
			snap = sess.Snapshot()
			if err := h.send(conn, protocol.MsgState, snap); err != nil {
				logger.Debug("state write failed", "err", err)
				return snap
			}
		}
		if time.Since(lastPing) >= pingPeriod {
			lastPing = time.Now()
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Debug("ping failed", "err", err)
				return snap
			}
		}
	}
}

// readPump drains the socket until it dies. Malformed traffic drops the
// connection; unknown message types fall through untouched.
func (h *Handler) readPump(conn *websocket.Conn, logger *log.Logger, rm *remote, done chan<- struct{}) {
	defer close(done)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("read failed", "err", err)
			}
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			logger.Debug("dropping connection on a bad envelope", "err", err)
			return
		}
		switch env.T {
		case protocol.MsgInput:
			in, err := protocol.DecodePayload[protocol.Input](env)
			if err != nil {
				logger.Debug("dropping connection on a bad input payload", "err", err)
				return
			}
			rm.store(in)
		case protocol.MsgRestart:
			rm.requestRestart()
		}
	}
}
