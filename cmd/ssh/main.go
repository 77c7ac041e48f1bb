package main

import (
	"bufio"
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/avolanis/asteroids/internal/config"
	"github.com/avolanis/asteroids/internal/draw"
	"github.com/avolanis/asteroids/internal/game"
	client "github.com/avolanis/asteroids/internal/term"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/asteroids_ed25519"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Fatal("loading .env", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	var tun *game.Tuning
	if path := config.GetEnv("ASTEROIDS_TUNING", ""); path != "" {
		t, err := config.LoadTuning(path)
		if err != nil {
			log.Fatal("loading tuning", "err", err)
		}
		tun = &t
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			gameMiddleware(tun),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Frame-by-frame input feels sluggish behind Nagle.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	)
	if err != nil {
		log.Fatal("creating server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("ssh server listening", "host", host, "port", port)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-done
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("shutdown", "err", err)
	}
}

// gameMiddleware runs one single-player game per SSH session. Sessions
// are independent; a resize or disconnect touches nobody else.
func gameMiddleware(tun *game.Tuning) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				wish.Fatalln(sess, "a PTY is required: connect with ssh -t")
				return
			}

			logger := log.With("user", sess.User(), "term", pty.Term)
			logger.Info("session started", "width", pty.Window.Width, "height", pty.Window.Height)

			tracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					tracker.update(win.Width, win.Height)
				}
			}()

			err := client.Run(client.Options{
				In:       bufio.NewReader(sess),
				Out:      sess,
				TermSize: tracker.size,
				Tuning:   tun,
			})
			if err != nil {
				logger.Error("session failed", "err", err)
			} else {
				logger.Info("session ended")
			}
			next(sess)
		}
	}
}

// sizeTracker republishes SSH window-change events as a TermSizeFunc.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) size() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).size
