package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/avolanis/asteroids/internal/config"
	"github.com/avolanis/asteroids/internal/game"
)

const (
	tps = 60
	dt  = 1.0 / tps

	// restartLockoutTicks keeps a held key from skipping the game over
	// screen before the player has seen it.
	restartLockoutTicks = 45
)

var fgColor = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}

// App adapts a session to ebiten's Update/Draw/Layout loop. Update runs
// at a fixed TPS, so the simulation sees the same dt every tick.
type App struct {
	sess       *game.Session
	snap       game.Snapshot
	difficulty game.Difficulty
	tuning     *game.Tuning
	seed       int64

	width, height int
	best          int
	overTicks     int
	prevRestart   bool
}

func newApp(difficulty game.Difficulty, tun *game.Tuning, seed int64) (*App, error) {
	world := game.DefaultConfig(0)
	a := &App{
		difficulty: difficulty,
		tuning:     tun,
		seed:       seed,
		width:      int(world.Width),
		height:     int(world.Height),
	}
	if err := a.newSession(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) newSession() error {
	seed := a.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := game.DefaultConfig(seed)
	cfg.Difficulty = a.difficulty
	cfg.Tuning = a.tuning

	sess, err := game.NewSession(cfg)
	if err != nil {
		return err
	}
	a.sess = sess
	a.snap = sess.Snapshot()
	a.overTicks = 0
	return nil
}

func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	in := game.Intent{
		Thrust:      ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		RotateLeft:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		RotateRight: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:        ebiten.IsKeyPressed(ebiten.KeySpace),
		Pause:       ebiten.IsKeyPressed(ebiten.KeyP),
	}
	a.sess.Advance(in, dt)
	a.snap = a.sess.Snapshot()
	if a.snap.Score > a.best {
		a.best = a.snap.Score
	}

	restart := ebiten.IsKeyPressed(ebiten.KeyEnter)
	if a.sess.State() == game.StateGameOver {
		a.overTicks++
		if a.overTicks > restartLockoutTicks && restart && !a.prevRestart {
			if err := a.newSession(); err != nil {
				return err
			}
		}
	} else {
		a.overTicks = 0
	}
	a.prevRestart = restart
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	for _, e := range a.snap.Entities {
		switch e.Kind {
		case game.KindShip.String():
			a.drawShip(screen, e)
		case game.KindAsteroid.String():
			drawRock(screen, e)
		case game.KindBullet.String():
			ebitenutil.DrawLine(screen, e.X, e.Y,
				e.X-math.Cos(e.Heading)*4, e.Y-math.Sin(e.Heading)*4, fgColor)
		case game.KindSaucer.String():
			drawSaucer(screen, e)
		case game.KindPowerUp.String():
			strokeCircle(screen, e.X, e.Y, e.Radius)
			ebitenutil.DebugPrintAt(screen, powerUpGlyph(e.Effect), int(e.X)-3, int(e.Y)-8)
		}
	}
	a.drawHUD(screen)
}

func (a *App) drawShip(screen *ebiten.Image, e game.EntityState) {
	if a.snap.Shielded {
		strokeCircle(screen, e.X, e.Y, e.Radius*1.5)
		if (a.snap.Tick/6)%2 == 1 {
			return
		}
	}
	nx := e.X + math.Cos(e.Heading)*e.Radius
	ny := e.Y + math.Sin(e.Heading)*e.Radius
	lx := e.X + math.Cos(e.Heading+2.5)*e.Radius*0.7
	ly := e.Y + math.Sin(e.Heading+2.5)*e.Radius*0.7
	rx := e.X + math.Cos(e.Heading-2.5)*e.Radius*0.7
	ry := e.Y + math.Sin(e.Heading-2.5)*e.Radius*0.7
	ebitenutil.DrawLine(screen, nx, ny, lx, ly, fgColor)
	ebitenutil.DrawLine(screen, lx, ly, rx, ry, fgColor)
	ebitenutil.DrawLine(screen, rx, ry, nx, ny, fgColor)
}

// jitterFrac is a per-vertex radius fraction hashed from the entity ID,
// so a rock keeps one silhouette for its whole life.
func jitterFrac(id uint64, i int) float64 {
	h := uint32(id)*374761393 + uint32(i)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return 0.7 + float64(h>>8)/float64(1<<24)*0.6
}

func drawRock(screen *ebiten.Image, e game.EntityState) {
	n := 8 + int(e.ID%5)
	px := e.X + jitterFrac(e.ID, 0)*e.Radius
	py := e.Y
	for i := 1; i <= n; i++ {
		a := 2 * math.Pi * float64(i%n) / float64(n)
		f := jitterFrac(e.ID, i%n)
		x := e.X + math.Cos(a)*f*e.Radius
		y := e.Y + math.Sin(a)*f*e.Radius
		ebitenutil.DrawLine(screen, px, py, x, y, fgColor)
		px, py = x, y
	}
}

func drawSaucer(screen *ebiten.Image, e game.EntityState) {
	r := e.Radius
	hull := [][4]float64{
		{e.X - r, e.Y, e.X - r*0.45, e.Y - r*0.4},
		{e.X - r*0.45, e.Y - r*0.4, e.X + r*0.45, e.Y - r*0.4},
		{e.X + r*0.45, e.Y - r*0.4, e.X + r, e.Y},
		{e.X + r, e.Y, e.X + r*0.45, e.Y + r*0.4},
		{e.X + r*0.45, e.Y + r*0.4, e.X - r*0.45, e.Y + r*0.4},
		{e.X - r*0.45, e.Y + r*0.4, e.X - r, e.Y},
		{e.X - r, e.Y, e.X + r, e.Y},
		{e.X - r*0.35, e.Y - r*0.4, e.X - r*0.15, e.Y - r*0.75},
		{e.X - r*0.15, e.Y - r*0.75, e.X + r*0.15, e.Y - r*0.75},
		{e.X + r*0.15, e.Y - r*0.75, e.X + r*0.35, e.Y - r*0.4},
	}
	for _, l := range hull {
		ebitenutil.DrawLine(screen, l[0], l[1], l[2], l[3], fgColor)
	}
}

func strokeCircle(screen *ebiten.Image, cx, cy, r float64) {
	const steps = 24
	for i := 0; i < steps; i++ {
		a0 := 2 * math.Pi * float64(i) / steps
		a1 := 2 * math.Pi * float64(i+1) / steps
		ebitenutil.DrawLine(screen,
			cx+math.Cos(a0)*r, cy+math.Sin(a0)*r,
			cx+math.Cos(a1)*r, cy+math.Sin(a1)*r, fgColor)
	}
}

func powerUpGlyph(effect string) string {
	switch effect {
	case game.EffectAmmo.String():
		return "A"
	case game.EffectRapidFire.String():
		return "R"
	case game.EffectBonusScore.String():
		return "$"
	case game.EffectShield.String():
		return "S"
	}
	return "?"
}

func (a *App) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Score %d   Lives %d   Wave %d   Ammo %d",
			a.snap.Score, a.snap.Lives, a.snap.Wave+1, a.snap.Ammo), 10, 10)

	switch a.sess.State() {
	case game.StatePaused:
		printCentered(screen, a.width, a.height/2, "P A U S E D  -  p resumes")
	case game.StateGameOver:
		printCentered(screen, a.width, a.height/2-10,
			fmt.Sprintf("G A M E  O V E R  -  score %d   best %d", a.snap.Score, a.best))
		if a.overTicks > restartLockoutTicks {
			printCentered(screen, a.width, a.height/2+10, "enter restarts  -  esc quits")
		}
	}
}

// printCentered centers debug text horizontally; the debug font runs six
// pixels per glyph.
func printCentered(screen *ebiten.Image, width, y int, s string) {
	ebitenutil.DebugPrintAt(screen, s, (width-len(s)*6)/2, y)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

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

	difficulty, err := game.ParseDifficulty(config.GetEnv("ASTEROIDS_DIFFICULTY", ""))
	if err != nil {
		return err
	}

	var seed int64
	if raw := config.GetEnv("ASTEROIDS_SEED", ""); raw != "" {
		if seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return fmt.Errorf("ASTEROIDS_SEED: %w", err)
		}
	}

	var tun *game.Tuning
	if path := config.GetEnv("ASTEROIDS_TUNING", ""); path != "" {
		t, err := config.LoadTuning(path)
		if err != nil {
			return err
		}
		tun = &t
	}

	app, err := newApp(difficulty, tun, seed)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(app.width, app.height)
	ebiten.SetWindowTitle("Asteroids")
	ebiten.SetTPS(tps)
	return ebiten.RunGame(app)
}
