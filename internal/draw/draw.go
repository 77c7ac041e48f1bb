// Package draw renders vector shapes into a terminal using half-block
// characters, doubling the vertical resolution of the character grid.
package draw

// Point is a 2D coordinate in world space.
type Point struct {
	X, Y float64
}

// Block characters used by the canvas renderer and the HUD gauges.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
