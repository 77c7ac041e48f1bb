package protocol

import "testing"

func TestMessageConstants(t *testing.T) {
	if MsgHello != "hello" {
		t.Fatalf("MsgHello = %q, want %q", MsgHello, "hello")
	}
	if MsgWelcome != "welcome" {
		t.Fatalf("MsgWelcome = %q, want %q", MsgWelcome, "welcome")
	}
	if MsgInput != "input" {
		t.Fatalf("MsgInput = %q, want %q", MsgInput, "input")
	}
	if MsgState != "state" {
		t.Fatalf("MsgState = %q, want %q", MsgState, "state")
	}
	if MsgRestart != "restart" {
		t.Fatalf("MsgRestart = %q, want %q", MsgRestart, "restart")
	}
	if MsgError != "error" {
		t.Fatalf("MsgError = %q, want %q", MsgError, "error")
	}
}

func TestTimingConstants(t *testing.T) {
	if SimTickHz != 60 {
		t.Fatalf("SimTickHz = %d, want 60", SimTickHz)
	}
	if BroadcastHz != 20 {
		t.Fatalf("BroadcastHz = %d, want 20", BroadcastHz)
	}
	if SimTickHz%BroadcastHz != 0 {
		t.Fatalf("SimTickHz %% BroadcastHz = %d, want an even divisor", SimTickHz%BroadcastHz)
	}
	if ClientInputHz <= 0 || ClientInputHz > SimTickHz {
		t.Fatalf("ClientInputHz = %d, want within (0, %d]", ClientInputHz, SimTickHz)
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	raw, err := Encode(MsgInput, Input{Thrust: true, Left: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	env, err := DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("DecodeEnvelope: %v", err)
	}
	if env.T != MsgInput {
		t.Fatalf("envelope type = %q, want %q", env.T, MsgInput)
	}
	in, err := DecodePayload[Input](env)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if !in.Thrust || !in.Left || in.Right || in.Fire || in.Pause {
		t.Fatalf("payload round trip = %+v", in)
	}
}

func TestDecodeRejectsJunk(t *testing.T) {
	if _, err := DecodeEnvelope(nil); err == nil {
		t.Fatal("empty message decoded")
	}
	if _, err := DecodeEnvelope([]byte(`{"p":{}}`)); err == nil {
		t.Fatal("envelope without a type decoded")
	}
	if _, err := DecodeEnvelope([]byte(`not json`)); err == nil {
		t.Fatal("junk bytes decoded")
	}
	if _, err := DecodePayload[Input](Envelope{T: MsgInput}); err == nil {
		t.Fatal("empty payload decoded")
	}
	if _, err := Encode("", Input{}); err == nil {
		t.Fatal("typeless encode accepted")
	}
}
