// Package protocol defines the wire format between the browser client
// and the play endpoint: JSON envelopes carrying a type tag and a raw
// payload, decoded in two steps.
package protocol

import "encoding/json"

// Version is bumped when the wire format changes incompatibly.
const Version = 1

const (
	MsgHello   = "hello"
	MsgWelcome = "welcome"
	MsgInput   = "input"
	MsgState   = "state"
	MsgRestart = "restart"
	MsgError   = "error"
)

// The server simulates at SimTickHz and publishes every
// SimTickHz/BroadcastHz ticks. Clients sample held keys at
// ClientInputHz; the server always applies the latest sample.
const (
	SimTickHz     = 60
	ClientInputHz = 30
	BroadcastHz   = 20
)

// Envelope wraps every message on the socket.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}
