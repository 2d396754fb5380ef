package canvas

import (
	"unicode"

	"gridart/core"
)

// MergeOptions controls how overlay cells combine with the cells beneath them.
type MergeOptions struct {
	// UseASCII disables box-drawing junction merging and joins crossing
	// ASCII lines into '+' instead.
	UseASCII bool
	// ProtectText keeps alphanumeric cells when an alphanumeric overlay
	// cell would land on them, so crossing labels do not garble each other.
	ProtectText bool
}

// Merge composites overlays onto a copy of base, each shifted by offset.
// The result grows to fit every overlay. Space cells in an overlay are
// transparent, overlapping line glyphs merge into junctions and everything
// else overwrites. base is left untouched.
func Merge(base *Canvas, offset core.DrawingCoord, opts MergeOptions, overlays ...*Canvas) *Canvas {
	maxX, maxY := base.MaxX(), base.MaxY()
	for _, o := range overlays {
		maxX = max(maxX, o.MaxX()+offset.X)
		maxY = max(maxY, o.MaxY()+offset.Y)
	}

	merged := base.Copy()
	merged.Resize(maxX, maxY)

	for _, o := range overlays {
		for x := 0; x <= o.MaxX(); x++ {
			for y := 0; y <= o.MaxY(); y++ {
				c := o.cells[x][y]
				if c == ' ' {
					continue
				}
				mx, my := x+offset.X, y+offset.Y
				if mx < 0 || my < 0 {
					continue
				}
				merged.mergeCell(mx, my, c, o.roles[x][y], opts)
			}
		}
	}
	return merged
}

func (c *Canvas) mergeCell(x, y int, incoming rune, role core.Role, opts MergeOptions) {
	current := c.cells[x][y]
	switch {
	case opts.ProtectText && isTextRune(current) && isTextRune(incoming):
		// keep the existing label character
	case !opts.UseASCII && IsJunction(current) && IsJunction(incoming):
		c.cells[x][y] = MergeJunctions(current, incoming)
	case opts.UseASCII && isASCIILine(current) && isASCIILine(incoming):
		c.cells[x][y] = mergeASCII(current, incoming)
	default:
		c.cells[x][y] = incoming
		c.roles[x][y] = role
	}
}

func isTextRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
