package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas is a fixed-size grid of terminal cells. Rendered blocks are pasted
// onto it at absolute positions; anything outside the grid is clipped.
//
// A cell holds one grapheme. The cell to the right of a double-width
// grapheme holds "" and renders as nothing.
type canvas struct {
	w, h  int
	cells [][]string
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([][]string, c.h)
	for y := range c.cells {
		row := make([]string, c.w)
		for x := range row {
			row[x] = " "
		}
		c.cells[y] = row
	}
	return c
}

// set writes g of display width gw at (x, y), repairing any double-width
// grapheme it splits.
func (c *canvas) set(x, y int, g string, gw int) {
	if y < 0 || y >= c.h || x < 0 || x+gw > c.w {
		return
	}
	row := c.cells[y]
	if row[x] == "" && x > 0 {
		row[x-1] = " "
	}
	end := x + gw
	if end < c.w && row[end] == "" {
		row[end] = " "
	}
	row[x] = g
	for i := x + 1; i < end; i++ {
		row[i] = ""
	}
}

// put writes a single line starting at (x, y). Styling is stripped.
func (c *canvas) put(x, y int, line string) {
	col := x
	for _, r := range ansi.Strip(line) {
		g := string(r)
		gw := ansi.StringWidth(g)
		if gw == 0 {
			continue
		}
		c.set(col, y, g, gw)
		col += gw
		if col >= c.w {
			return
		}
	}
}

// paste writes a multi-line block with its top-left corner at (x, y).
func (c *canvas) paste(x, y int, block string) {
	for i, line := range strings.Split(block, "\n") {
		c.put(x, y+i, line)
	}
}

type borderRunes struct {
	tl, tr, bl, br, h, v string
}

var (
	thinBorder  = borderRunes{"┌", "┐", "└", "┘", "─", "│"}
	heavyBorder = borderRunes{"┏", "┓", "┗", "┛", "━", "┃"}
)

// box draws a border around the w x h rectangle at (x, y) with label on the
// top edge. Boxes smaller than 2x2 are not drawn.
func (c *canvas) box(x, y, w, h int, b borderRunes, label string) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	for i := x + 1; i < right; i++ {
		c.set(i, y, b.h, 1)
		c.set(i, bottom, b.h, 1)
	}
	for j := y + 1; j < bottom; j++ {
		c.set(x, j, b.v, 1)
		c.set(right, j, b.v, 1)
	}
	c.set(x, y, b.tl, 1)
	c.set(right, y, b.tr, 1)
	c.set(x, bottom, b.bl, 1)
	c.set(right, bottom, b.br, 1)

	if label != "" && w > 4 {
		c.put(x+2, y, ansi.Truncate(" "+label+" ", w-4, "…"))
	}
}

// String renders the grid, one line per row.
func (c *canvas) String() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, g := range row {
			b.WriteString(g)
		}
	}
	return b.String()
}
