package main

import (
	_ "embed"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/avolanis/asteroids/internal/config"
	"github.com/avolanis/asteroids/internal/game"
	"github.com/avolanis/asteroids/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var indexPage []byte

func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Fatal("loading .env", "err", err)
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	var tun *game.Tuning
	if path := config.GetEnv("ASTEROIDS_TUNING", ""); path != "" {
		t, err := config.LoadTuning(path)
		if err != nil {
			log.Fatal("loading tuning", "err", err)
		}
		tun = &t
	}

	opts := web.Options{Log: log.Default(), Tuning: tun}
	if config.GetEnv("WEB_ALLOW_ANY_ORIGIN", "") == "1" {
		opts.AllowOrigin = func(*http.Request) bool { return true }
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", web.NewHandler(opts))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexPage)
	})

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info("web server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal("server error", "err", err)
	}
}
