package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/avolanis/asteroids/internal/config"
	"github.com/avolanis/asteroids/internal/game"
	client "github.com/avolanis/asteroids/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "asteroids: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotenv(); err != nil {
		return err
	}

	opts := client.Options{Out: os.Stdout}

	difficulty, err := game.ParseDifficulty(config.GetEnv("ASTEROIDS_DIFFICULTY", ""))
	if err != nil {
		return err
	}
	opts.Difficulty = difficulty

	if raw := config.GetEnv("ASTEROIDS_SEED", ""); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("ASTEROIDS_SEED: %w", err)
		}
		opts.Seed = seed
	}

	if path := config.GetEnv("ASTEROIDS_TUNING", ""); path != "" {
		tun, err := config.LoadTuning(path)
		if err != nil {
			return err
		}
		opts.Tuning = &tun
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enabling raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts.In = bufio.NewReader(os.Stdin)
	return client.Run(opts)
}
