// Package canvas provides the growable 2D character grid the renderer composites into.
//
// Cells are stored column-major (cells[x][y]) with inclusive bounds: a canvas
// created with New(3, 1) has columns 0..3 and rows 0..1. Every cell carries a
// parallel core.Role tag describing what drew it, so colorizers and the
// bottom-to-top flip can tell label text from line work.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
//
// A Canvas is not safe for concurrent writes. Each render owns its canvases.
package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"gridart/core"
)

// continuation marks the second cell covered by a wide rune.
const continuation = '\x00'

// Canvas is a mutable character grid with a role layer.
type Canvas struct {
	cells [][]rune
	roles [][]core.Role
}

// New creates a canvas whose maximum column is maxX and maximum row is maxY.
// Negative bounds are clamped to zero, so the smallest canvas is 1x1.
func New(maxX, maxY int) *Canvas {
	c := &Canvas{}
	c.grow(max(maxX, 0), max(maxY, 0))
	return c
}

// MaxX returns the highest column index.
func (c *Canvas) MaxX() int {
	return len(c.cells) - 1
}

// MaxY returns the highest row index.
func (c *Canvas) MaxY() int {
	if len(c.cells) == 0 {
		return -1
	}
	return len(c.cells[0]) - 1
}

// Size returns the number of columns and rows.
func (c *Canvas) Size() (width, height int) {
	return c.MaxX() + 1, c.MaxY() + 1
}

// Resize grows the canvas so that maxX and maxY are valid indices.
// Existing content is preserved and the canvas never shrinks.
func (c *Canvas) Resize(maxX, maxY int) {
	c.grow(max(maxX, c.MaxX()), max(maxY, c.MaxY()))
}

func (c *Canvas) grow(maxX, maxY int) {
	if maxX == c.MaxX() && maxY == c.MaxY() {
		return
	}
	cells := make([][]rune, maxX+1)
	roles := make([][]core.Role, maxX+1)
	for x := range cells {
		cells[x] = make([]rune, maxY+1)
		roles[x] = make([]core.Role, maxY+1)
		for y := range cells[x] {
			if x < len(c.cells) && y < len(c.cells[x]) {
				cells[x][y] = c.cells[x][y]
				roles[x][y] = c.roles[x][y]
			} else {
				cells[x][y] = ' '
			}
		}
	}
	c.cells = cells
	c.roles = roles
}

// Get returns the character at (x, y), or a space outside the canvas.
func (c *Canvas) Get(x, y int) rune {
	if !c.inBounds(x, y) {
		return ' '
	}
	return c.cells[x][y]
}

// Role returns the role tag at (x, y), or RoleNone outside the canvas.
func (c *Canvas) Role(x, y int) core.Role {
	if !c.inBounds(x, y) {
		return core.RoleNone
	}
	return c.roles[x][y]
}

// Set writes a character without a role. See SetWithRole.
func (c *Canvas) Set(x, y int, r rune) {
	c.SetWithRole(x, y, r, core.RoleNone)
}

// SetWithRole writes a character and its role, growing the canvas when the
// position lies past the current bounds. Negative positions are ignored.
func (c *Canvas) SetWithRole(x, y int, r rune, role core.Role) {
	if x < 0 || y < 0 {
		return
	}
	if x > c.MaxX() || y > c.MaxY() {
		c.Resize(x, y)
	}
	c.cells[x][y] = r
	c.roles[x][y] = role
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x <= c.MaxX() && y <= c.MaxY()
}

// Copy returns a deep copy of the canvas.
func (c *Canvas) Copy() *Canvas {
	cp := &Canvas{
		cells: make([][]rune, len(c.cells)),
		roles: make([][]core.Role, len(c.roles)),
	}
	for x := range c.cells {
		cp.cells[x] = append([]rune(nil), c.cells[x]...)
		cp.roles[x] = append([]core.Role(nil), c.roles[x]...)
	}
	return cp
}

// Blank returns an empty canvas with the same bounds.
func (c *Canvas) Blank() *Canvas {
	return New(c.MaxX(), c.MaxY())
}

// DrawText writes text starting at (x, y). Wide runes cover two cells and
// zero-width runes are dropped.
func (c *Canvas) DrawText(x, y int, text string, role core.Role) {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.SetWithRole(x, y, r, role)
		if w == 2 {
			c.SetWithRole(x+1, y, continuation, role)
		}
		x += w
	}
}

// DrawBox draws a rectangle outline with corners at (x0,y0) and (x1,y1).
func (c *Canvas) DrawBox(x0, y0, x1, y1 int, style BoxStyle, role core.Role) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for x := x0 + 1; x < x1; x++ {
		c.SetWithRole(x, y0, style.Horizontal, role)
		c.SetWithRole(x, y1, style.Horizontal, role)
	}
	for y := y0 + 1; y < y1; y++ {
		c.SetWithRole(x0, y, style.Vertical, role)
		c.SetWithRole(x1, y, style.Vertical, role)
	}
	c.SetWithRole(x0, y0, style.TopLeft, role)
	c.SetWithRole(x1, y0, style.TopRight, role)
	c.SetWithRole(x0, y1, style.BottomLeft, role)
	c.SetWithRole(x1, y1, style.BottomRight, role)
}

// Row returns row y as a string, skipping wide-rune continuation cells.
func (c *Canvas) Row(y int) string {
	var sb strings.Builder
	for x := 0; x <= c.MaxX(); x++ {
		if r := c.cells[x][y]; r != continuation {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// String returns the canvas row by row joined with newlines.
// Every column up to the bound is emitted, trailing spaces included.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow((c.MaxX() + 2) * (c.MaxY() + 1))
	for y := 0; y <= c.MaxY(); y++ {
		sb.WriteString(c.Row(y))
		if y != c.MaxY() {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
