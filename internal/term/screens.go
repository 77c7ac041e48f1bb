package term

import (
	"fmt"
	"strings"

	"github.com/avolanis/asteroids/internal/draw"
	"github.com/avolanis/asteroids/internal/game"
)

// centered writes a line horizontally centered in the render area. Rows are
// 1-based canvas rows.
func (c *client) centered(row int, s string) {
	col := (c.canvas.Cols()-len(s))/2 + 1
	if col < 1 {
		col = 1
	}
	c.cw.WriteAt(col, row, s)
}

func (c *client) drawTitle() {
	mid := c.canvas.Rows() / 2

	c.centered(mid-4, "A S T E R O I D S")
	if c.best > 0 {
		c.centered(mid-2, fmt.Sprintf("Best %d", c.best))
	}
	c.centered(mid, c.difficultyLine())
	c.centered(mid+2, "enter or space to launch")
	c.centered(mid+4, "a/d rotate  w thrust  space fire  p pause  q quit")
}

func (c *client) difficultyLine() string {
	entries := []struct {
		d     game.Difficulty
		label string
	}{
		{game.DifficultyEasy, "1 easy"},
		{game.DifficultyNormal, "2 normal"},
		{game.DifficultyHard, "3 hard"},
	}

	parts := make([]string, 0, len(entries))
	for _, en := range entries {
		if en.d == c.difficulty {
			parts = append(parts, "["+en.label+"]")
		} else {
			parts = append(parts, " "+en.label+" ")
		}
	}
	return strings.Join(parts, "  ")
}

func (c *client) drawHUD(snap game.Snapshot) {
	cols := c.canvas.Cols()
	rows := c.canvas.Rows()

	c.cw.WriteAt(2, 1, fmt.Sprintf("Score %d", snap.Score))
	lives := fmt.Sprintf("Lives %d", snap.Lives)
	c.cw.WriteAt(cols-len(lives)-1, 1, lives)

	c.cw.WriteAt(2, rows, "Ammo "+ammoBar(snap.Ammo, c.sess.Tuning().AmmoMax))

	status := fmt.Sprintf("Wave %d", snap.Wave+1)
	if snap.RapidFire {
		status = "RAPID  " + status
	}
	if snap.Shielded {
		status = "SHIELD  " + status
	}
	c.cw.WriteAt(cols-len(status)-1, rows, status)
}

// ammoBar renders a ten-segment gauge. Partial charge rounds down, so a
// segment lights only once fully earned.
func ammoBar(ammo, maxAmmo int) string {
	if maxAmmo <= 0 {
		return ""
	}
	filled := ammo * 10 / maxAmmo
	if filled > 10 {
		filled = 10
	}

	var sb strings.Builder
	for i := 0; i < 10; i++ {
		if i < filled {
			sb.WriteRune(draw.BlockFull)
		} else {
			sb.WriteRune(draw.BlockLight)
		}
	}
	return sb.String()
}

func (c *client) drawPauseOverlay() {
	mid := c.canvas.Rows() / 2
	c.centered(mid, "P A U S E D")
	c.centered(mid+2, "p resumes")
}

func (c *client) drawGameOver(snap game.Snapshot) {
	mid := c.canvas.Rows() / 2

	c.centered(mid-2, "G A M E  O V E R")
	c.centered(mid, fmt.Sprintf("Score %d   Best %d", snap.Score, c.best))
	if c.overTicks > restartLockoutTicks {
		c.centered(mid+2, "enter restarts  -  q quits")
	}
}
