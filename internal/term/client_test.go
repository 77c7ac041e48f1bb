package term

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/avolanis/asteroids/internal/draw"
	"github.com/avolanis/asteroids/internal/game"
	"github.com/avolanis/asteroids/internal/input"
)

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func newTestClient(t *testing.T) (*client, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c, err := newClient(Options{
		In:       strings.NewReader(""),
		Out:      &out,
		TermSize: fixedSize(80, 24),
		Seed:     42,
	})
	if err != nil {
		t.Fatalf("newClient: %v", err)
	}
	return c, &out
}

func TestLayoutPreservesAspect(t *testing.T) {
	cases := []struct {
		termW, termH           int
		cols, rows, offC, offR int
	}{
		{80, 24, 58, 22, 11, 1},
		{60, 40, 58, 21, 1, 9},
		{200, 40, 101, 38, 49, 1},
		{5, 4, 3, 1, 1, 1},
	}
	for _, tc := range cases {
		cols, rows, offC, offR := layout(tc.termW, tc.termH, 800, 600)
		if cols != tc.cols || rows != tc.rows || offC != tc.offC || offR != tc.offR {
			t.Errorf("layout(%d,%d) = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
				tc.termW, tc.termH, cols, rows, offC, offR, tc.cols, tc.rows, tc.offC, tc.offR)
		}
	}
}

func TestTitleDifficultySelect(t *testing.T) {
	c, _ := newTestClient(t)

	if err := c.stepTitle(input.Frame{Number: 3}); err != nil {
		t.Fatalf("stepTitle: %v", err)
	}
	if c.difficulty != game.DifficultyHard {
		t.Fatalf("difficulty = %v, want hard", c.difficulty)
	}

	if err := c.stepTitle(input.Frame{Number: 1}); err != nil {
		t.Fatalf("stepTitle: %v", err)
	}
	if c.difficulty != game.DifficultyEasy {
		t.Fatalf("difficulty = %v, want easy", c.difficulty)
	}

	if err := c.stepTitle(input.Frame{Confirm: true}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if c.phase != phaseGame || c.sess == nil {
		t.Fatal("confirm did not start a session")
	}
}

func TestFixedSeedGivesIdenticalSessions(t *testing.T) {
	c1, _ := newTestClient(t)
	c2, _ := newTestClient(t)

	if err := c1.startSession(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := c2.startSession(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if !reflect.DeepEqual(c1.snap, c2.snap) {
		t.Fatal("same seed produced different opening snapshots")
	}
}

func TestStepGameAdvancesSimulation(t *testing.T) {
	c, _ := newTestClient(t)
	if err := c.startSession(); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := c.stepGame(input.Frame{}); err != nil {
			t.Fatalf("stepGame: %v", err)
		}
	}
	if c.sess.Tick() != 3 || c.snap.Tick != 3 {
		t.Fatalf("tick = %d / snapshot %d, want 3", c.sess.Tick(), c.snap.Tick)
	}
}

func TestThrustSpawnsEnginePlume(t *testing.T) {
	c, _ := newTestClient(t)
	if err := c.startSession(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := c.stepGame(input.Frame{Thrust: true}); err != nil {
		t.Fatalf("stepGame: %v", err)
	}
	if len(c.fx.parts) == 0 {
		t.Fatal("thrusting produced no plume particles")
	}
}

func TestTitleFrameOutput(t *testing.T) {
	c, out := newTestClient(t)

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}

	frame := out.String()
	if !strings.Contains(frame, "A S T E R O I D S") {
		t.Fatal("title text missing from frame")
	}
	if !strings.Contains(frame, "2 normal") {
		t.Fatal("difficulty line missing from frame")
	}
	if !strings.Contains(frame, "┌") {
		t.Fatal("border missing from frame")
	}
}

func TestShipStateLookup(t *testing.T) {
	c, _ := newTestClient(t)
	if err := c.startSession(); err != nil {
		t.Fatalf("start: %v", err)
	}

	ship, ok := shipState(c.snap)
	if !ok {
		t.Fatal("opening snapshot has no ship")
	}
	if ship.Kind != game.KindShip.String() || ship.ID != 1 {
		t.Fatalf("unexpected ship entity: %+v", ship)
	}

	if _, ok := shipState(game.Snapshot{}); ok {
		t.Fatal("empty snapshot reported a ship")
	}
}
