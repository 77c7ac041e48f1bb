// Package term runs the interactive terminal client. It owns a game
// session, polls the keyboard, and redraws the world onto a half-block
// canvas at a fixed 60 fps.
package term

import (
	"io"
	"time"

	"github.com/avolanis/asteroids/internal/draw"
	"github.com/avolanis/asteroids/internal/game"
	"github.com/avolanis/asteroids/internal/input"
)

const targetFPS = 60
const frameTime = time.Second / targetFPS

// tickDt is the fixed step handed to the simulation each frame. Wall-clock
// jitter changes frame pacing, never game outcomes.
const tickDt = 1.0 / targetFPS

// restartLockoutTicks keeps a held fire key from skipping straight through
// the game over screen.
const restartLockoutTicks = 45

type phase int

const (
	phaseTitle phase = iota
	phaseGame
)

// Options configure a client run.
type Options struct {
	In         io.Reader
	Out        io.Writer
	TermSize   draw.TermSizeFunc // nil measures stdout
	Difficulty game.Difficulty
	Tuning     *game.Tuning // nil keeps defaults
	Seed       int64        // 0 seeds from the clock
}

type client struct {
	opts   Options
	out    io.Writer
	keys   *input.Stream
	sizeFn draw.TermSizeFunc

	worldW float64
	worldH float64
	canvas *draw.Canvas
	cw     *draw.ChunkWriter
	labels []label

	phase      phase
	difficulty game.Difficulty
	sess       *game.Session
	snap       game.Snapshot
	fx         *effects
	rocks      rockShapes
	best       int
	overTicks  int
	running    bool
}

func newClient(opts Options) (*client, error) {
	sizeFn := opts.TermSize
	if sizeFn == nil {
		sizeFn = draw.DefaultTermSizeFunc
	}
	termW, termH, err := sizeFn()
	if err != nil {
		return nil, err
	}

	world := game.DefaultConfig(0)
	c := &client{
		opts:       opts,
		out:        opts.Out,
		keys:       input.NewStream(opts.In),
		sizeFn:     sizeFn,
		worldW:     world.Width,
		worldH:     world.Height,
		phase:      phaseTitle,
		difficulty: opts.Difficulty,
		fx:         newEffects(world.Width),
		rocks:      rockShapes{},
		running:    true,
	}

	cols, rows, offCol, offRow := layout(termW, termH, c.worldW, c.worldH)
	c.canvas = draw.NewScaledCanvas(cols, rows, c.worldW, c.worldH)
	c.canvas.SetOffset(offCol, offRow)
	c.cw = draw.NewChunkWriter(opts.Out, offCol, offRow)
	return c, nil
}

// Run drives the client until the player quits or the input stream closes.
// The terminal is expected to be in raw mode already.
func Run(opts Options) error {
	c, err := newClient(opts)
	if err != nil {
		return err
	}

	draw.HideCursor(c.out)
	defer draw.ShowCursor(c.out)

	for c.running {
		frameStart := time.Now()

		f := c.keys.Poll()
		if f.Quit {
			c.running = false
		}
		c.resize()

		switch c.phase {
		case phaseTitle:
			err = c.stepTitle(f)
		case phaseGame:
			err = c.stepGame(f)
		}
		if err != nil {
			return err
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}

	draw.ClearScreen(c.out)
	return nil
}

// resize refits the canvas when the terminal changes. Errors are ignored;
// the previous geometry keeps working until the next successful probe.
func (c *client) resize() {
	termW, termH, err := c.sizeFn()
	if err != nil {
		return
	}
	cols, rows, offCol, offRow := layout(termW, termH, c.worldW, c.worldH)
	c.canvas.Resize(cols, rows)
	c.canvas.SetOffset(offCol, offRow)
	c.cw.SetOffset(offCol, offRow)
}

// layout fits the largest canvas with the world's aspect ratio into the
// terminal, keeping a margin cell for the border when there is room. A cell
// is one column wide and two subpixels tall.
func layout(termW, termH int, worldW, worldH float64) (cols, rows, offCol, offRow int) {
	availW, availH := termW-2, termH-2
	if availW < 2 {
		availW = termW
	}
	if availH < 2 {
		availH = termH
	}

	cols, rows = availW, availH
	wantCols := int(float64(rows) * 2 * worldW / worldH)
	if wantCols <= cols {
		cols = wantCols
	} else {
		rows = int(float64(cols) * worldH / worldW / 2)
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows, (termW - cols) / 2, (termH - rows) / 2
}

func (c *client) stepTitle(f input.Frame) error {
	switch f.Number {
	case 1:
		c.difficulty = game.DifficultyEasy
	case 2:
		c.difficulty = game.DifficultyNormal
	case 3:
		c.difficulty = game.DifficultyHard
	}
	if f.Confirm || f.Fire {
		return c.startSession()
	}
	return nil
}

func (c *client) startSession() error {
	seed := c.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := game.DefaultConfig(seed)
	cfg.Difficulty = c.difficulty
	cfg.Tuning = c.opts.Tuning

	sess, err := game.NewSession(cfg)
	if err != nil {
		return err
	}
	c.sess = sess
	c.snap = sess.Snapshot()
	c.fx.reset()
	c.rocks = rockShapes{}
	c.overTicks = 0
	c.phase = phaseGame
	return nil
}

func (c *client) stepGame(f input.Frame) error {
	in := game.Intent{
		Thrust:      f.Thrust,
		RotateLeft:  f.Left,
		RotateRight: f.Right,
		Fire:        f.Fire,
		Pause:       f.Pause,
	}

	prev := c.snap
	c.sess.Advance(in, tickDt)
	c.snap = c.sess.Snapshot()

	c.fx.observe(prev, c.snap)
	if in.Thrust && c.sess.State() == game.StatePlaying {
		if ship, ok := shipState(c.snap); ok {
			c.fx.thrust(ship.X, ship.Y, ship.Heading, ship.Radius)
		}
	}
	c.fx.update(tickDt)

	if c.snap.Score > c.best {
		c.best = c.snap.Score
	}

	if c.sess.State() == game.StateGameOver {
		c.overTicks++
		if c.overTicks > restartLockoutTicks && (f.Confirm || f.Fire) {
			return c.startSession()
		}
	} else {
		c.overTicks = 0
	}
	return nil
}

func shipState(snap game.Snapshot) (game.EntityState, bool) {
	for _, e := range snap.Entities {
		if e.Kind == game.KindShip.String() {
			return e, true
		}
	}
	return game.EntityState{}, false
}

func (c *client) drawFrame() error {
	draw.ClearScreen(c.cw)
	c.canvas.Clear()
	c.labels = c.labels[:0]

	switch c.phase {
	case phaseTitle:
		c.drawTitle()
	case phaseGame:
		c.renderWorld(c.snap)
		c.fx.render(c.canvas)
		c.canvas.Render(c.cw)
		for _, l := range c.labels {
			c.cw.WriteAt(l.col, l.row, l.text)
		}
		c.drawHUD(c.snap)
		switch c.sess.State() {
		case game.StatePaused:
			c.drawPauseOverlay()
		case game.StateGameOver:
			c.drawGameOver(c.snap)
		}
	}

	c.canvas.RenderBorder(c.cw)
	return c.cw.Flush()
}
