package protocol

import "github.com/avolanis/asteroids/internal/game"

// Messages the server sends.

// Welcome acknowledges a Hello and fixes the field the client lays out.
type Welcome struct {
	V      int     `json:"v"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	TickHz int     `json:"tickHz"`
}

// State is the broadcast payload: one simulation snapshot.
type State = game.Snapshot

// ErrorMsg reports a protocol failure before the server closes the
// connection.
type ErrorMsg struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}
