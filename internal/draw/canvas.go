package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Canvas is a monochrome pixel buffer mapped onto a terminal cell grid.
// Each cell holds two vertically stacked pixels rendered with half-block
// characters, so a cols x rows terminal exposes a cols x rows*2 pixel grid.
// Drawing calls take world coordinates and are scaled to pixels, which lets
// the simulation keep one coordinate space regardless of terminal size.
type Canvas struct {
	cols    int
	rows    int
	subRows int    // rows * 2
	cells   []bool // flat, indexed [subRow*cols + col]

	// World dimensions the pixel grid is scaled from.
	worldW float64
	worldH float64
	scaleX float64
	scaleY float64

	// Cell offsets applied at render time, used to center the playfield
	// when the terminal is larger than the render area.
	offsetCol int
	offsetRow int

	// Per-frame scratch, reused to keep the render loop allocation free.
	renderBuf strings.Builder
	numBuf    [20]byte
	scaledPts []Point
	scanBuf   []float64
	polyBuf   []Point
}

// NewCanvas creates a canvas with a 1:1 world-to-pixel mapping, so the
// world spans cols x rows*2 units.
func NewCanvas(cols, rows int) *Canvas {
	return NewScaledCanvas(cols, rows, float64(cols), float64(rows*2))
}

// NewScaledCanvas creates a canvas that maps a worldW x worldH coordinate
// space onto a cols x rows terminal area.
func NewScaledCanvas(cols, rows int, worldW, worldH float64) *Canvas {
	c := &Canvas{worldW: worldW, worldH: worldH}
	c.Resize(cols, rows)
	return c
}

// Resize adjusts the canvas to a new terminal area, keeping the world
// dimensions. The pixel buffer is reallocated and cleared when the cell
// count changes.
func (c *Canvas) Resize(cols, rows int) {
	subRows := rows * 2
	if cols != c.cols || rows != c.rows {
		c.cells = make([]bool, subRows*cols)
		c.cols = cols
		c.rows = rows
		c.subRows = subRows
	}
	c.scaleX = float64(cols) / c.worldW
	c.scaleY = float64(subRows) / c.worldH
}

// SetOffset positions the render area. Offsets are 0-based cell counts; the
// canvas occupies the terminal rectangle starting at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the cell column offset of the render area.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the cell row offset of the render area.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// Cols returns the width of the render area in terminal cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height of the render area in terminal cells.
func (c *Canvas) Rows() int { return c.rows }

// Clear resets every pixel.
func (c *Canvas) Clear() {
	clear(c.cells)
}

func (c *Canvas) setPixel(px, py int) {
	if px >= 0 && px < c.cols && py >= 0 && py < c.subRows {
		c.cells[py*c.cols+px] = true
	}
}

// Set lights the pixel nearest to the world coordinate (x, y).
func (c *Canvas) Set(x, y float64) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)))
}

// DrawLine rasterizes the segment from a to b with Bresenham's algorithm.
func (c *Canvas) DrawLine(a, b Point) {
	x1 := int(math.Round(a.X * c.scaleX))
	y1 := int(math.Round(a.Y * c.scaleY))
	x2 := int(math.Round(b.X * c.scaleX))
	y2 := int(math.Round(b.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws the outline of a polygon, filling the interior first
// when filled is set. Fewer than three points is a no-op.
func (c *Canvas) DrawPolygon(pts []Point, filled bool) {
	if len(pts) < 3 {
		return
	}
	if filled {
		c.fillPolygon(pts)
	}
	for i := range pts {
		c.DrawLine(pts[i], pts[(i+1)%len(pts)])
	}
}

// DrawCircle draws a world-space circle outline. The two axes can carry
// different scale factors, so the ring is traced parametrically in pixel
// space rather than with a midpoint rasterizer.
func (c *Canvas) DrawCircle(center Point, r float64) {
	rx := r * c.scaleX
	ry := r * c.scaleY
	cx := center.X * c.scaleX
	cy := center.Y * c.scaleY

	// One step per pixel of circumference keeps the ring gap free.
	steps := int(math.Ceil(2 * math.Pi * math.Max(rx, ry)))
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.setPixel(int(math.Round(cx+rx*math.Cos(a))), int(math.Round(cy+ry*math.Sin(a))))
	}
}

// fillPolygon fills the interior with an even-odd scanline pass over the
// pixel grid.
func (c *Canvas) fillPolygon(pts []Point) {
	if cap(c.scaledPts) < len(pts) {
		c.scaledPts = make([]Point, len(pts))
	}
	scaled := c.scaledPts[:len(pts)]
	for i, p := range pts {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5

		hits := c.scanBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				hits = append(hits, p1.X+t*(p2.X-p1.X))
			}
		}
		c.scanBuf = hits

		sort.Float64s(hits)
		for i := 0; i+1 < len(hits); i += 2 {
			for x := int(math.Ceil(hits[i])); x <= int(math.Floor(hits[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Render writes the frame as half-block characters. Empty cells are skipped
// and runs of adjacent glyphs share a single cursor move, which keeps frames
// small on slow links. Output is chunked the same way ChunkWriter flushes.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.cols * c.rows / 2)

	for row := 0; row < c.rows; row++ {
		top := row * 2 * c.cols
		bottom := top + c.cols
		prev := -2 // forces a cursor move for the first glyph of each row
		for col := 0; col < c.cols; col++ {
			var ch rune
			switch {
			case c.cells[top+col] && c.cells[bottom+col]:
				ch = BlockFull
			case c.cells[top+col]:
				ch = BlockUpperHalf
			case c.cells[bottom+col]:
				ch = BlockLowerHalf
			default:
				continue
			}
			if col != prev+1 {
				c.renderBuf.WriteString("\033[")
				c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
				c.renderBuf.WriteByte(';')
				c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
				c.renderBuf.WriteByte('H')
			}
			c.renderBuf.WriteRune(ch)
			prev = col
		}
	}

	writeChunked(w, c.renderBuf.String())
}

// RenderBorder draws a box around the render area in the margin left by the
// offsets. Sides are drawn only where at least one cell of margin exists on
// that axis, corners only when both margins do.
func (c *Canvas) RenderBorder(w io.Writer) {
	sides := c.offsetCol >= 1
	caps := c.offsetRow >= 1
	if !sides && !caps {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1

	var buf strings.Builder
	buf.Grow((c.cols + c.rows) * 8)

	if caps {
		bar := strings.Repeat("─", c.cols)
		if sides {
			writeCursorTo(&buf, left, top)
			buf.WriteString("┌" + bar + "┐")
			writeCursorTo(&buf, left, bottom)
			buf.WriteString("└" + bar + "┘")
		} else {
			writeCursorTo(&buf, c.offsetCol+1, top)
			buf.WriteString(bar)
			writeCursorTo(&buf, c.offsetCol+1, bottom)
			buf.WriteString(bar)
		}
	}
	if sides {
		startRow := c.offsetRow + 1
		endRow := c.offsetRow + c.rows
		for row := startRow; row <= endRow; row++ {
			writeCursorTo(&buf, left, row)
			buf.WriteString("│")
			writeCursorTo(&buf, right, row)
			buf.WriteString("│")
		}
	}

	writeChunked(w, buf.String())
}

// WorldToCell converts a world coordinate to the 1-based cell it lands in
// within the render area. Useful for anchoring text to objects; write the
// text through a ChunkWriter so the centering offset applies once.
func (c *Canvas) WorldToCell(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// ScratchPoints returns a reused slice of n points for building per-frame
// polygon geometry without allocating. The slice is valid until the next
// call on the same canvas.
func (c *Canvas) ScratchPoints(n int) []Point {
	if cap(c.polyBuf) < n {
		c.polyBuf = make([]Point, n)
	}
	return c.polyBuf[:n]
}
