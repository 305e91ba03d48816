package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a braille raster: every cell holds a 2x4 grid of micro-pixels,
// an ink color and an optional overlay glyph.
type canvas struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	ink   [][]Color // last color drawn into the cell
	glyph [][]rune  // overlay glyph, 0 when unset
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h}
	c.m = make([][]uint8, h)
	c.ink = make([][]Color, h)
	c.glyph = make([][]rune, h)
	for i := 0; i < h; i++ {
		c.m[i] = make([]uint8, w)
		c.ink[i] = make([]Color, w)
		c.glyph[i] = make([]rune, w)
	}
	return c
}

// dot bit for micro column rx (0..1) and row ry (0..3)
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (c *canvas) setPixel(mx, my int, col Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= c.h || cx >= c.w {
		return
	}
	c.m[cy][cx] |= dotBits[rx][ry]
	c.ink[cy][cx] = col
}

// drawLine draws a line on the microgrid using Bresenham. A dash > 0 skips
// every other run of dash pixels.
func (c *canvas) drawLine(x0, y0, x1, y1 int, col Color, dash int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for step := 0; ; step++ {
		if dash <= 0 || (step/dash)%2 == 0 {
			c.setPixel(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// put places a glyph over a cell.
func (c *canvas) put(cx, cy int, r rune, col Color) {
	if cx < 0 || cy < 0 || cx >= c.w || cy >= c.h {
		return
	}
	c.glyph[cy][cx] = r
	c.ink[cy][cx] = col
}

// text writes s starting at cell (cx, cy), clipped to the canvas.
func (c *canvas) text(cx, cy int, s string, col Color) {
	for i, r := range []rune(s) {
		c.put(cx+i, cy, r, col)
	}
}

// lines renders the canvas, coloring runs of equally inked cells unless
// plain is set.
func (c *canvas) lines(plain bool) []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		var run []rune
		var runInk Color
		flush := func() {
			if len(run) == 0 {
				return
			}
			if plain || runInk == "" {
				b.WriteString(string(run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(runInk.Terminal()).Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			r := ' '
			switch {
			case c.glyph[y][x] != 0:
				r = c.glyph[y][x]
			case c.m[y][x] != 0:
				r = rune(0x2800 + int(c.m[y][x]))
			}
			ink := c.ink[y][x]
			if r == ' ' {
				ink = ""
			}
			if ink != runInk {
				flush()
				runInk = ink
			}
			run = append(run, r)
		}
		flush()
		out[y] = b.String()
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
