package render

import (
	"gridart/core"
	"gridart/diagram"
)

// lineGlyphs are the characters one edge style draws with.
type lineGlyphs struct {
	horizontal, vertical rune
	// falling runs top-left to bottom-right, rising bottom-left to top-right.
	falling, rising rune
}

var (
	solidLine  = lineGlyphs{'─', '│', '╲', '╱'}
	dottedLine = lineGlyphs{'┄', '┆', '╲', '╱'}
	thickLine  = lineGlyphs{'━', '┃', '╲', '╱'}

	solidASCII  = lineGlyphs{'-', '|', '\\', '/'}
	dottedASCII = lineGlyphs{'.', ':', '\\', '/'}
	thickASCII  = lineGlyphs{'=', '|', '\\', '/'}
)

func glyphsFor(style string, useASCII bool) lineGlyphs {
	switch {
	case style == diagram.StyleDotted && useASCII:
		return dottedASCII
	case style == diagram.StyleDotted:
		return dottedLine
	case style == diagram.StyleThick && useASCII:
		return thickASCII
	case style == diagram.StyleThick:
		return thickLine
	case useASCII:
		return solidASCII
	default:
		return solidLine
	}
}

// line returns the glyph for a step in direction dir.
func (l lineGlyphs) line(dir core.Direction) rune {
	switch dir {
	case core.Left, core.Right:
		return l.horizontal
	case core.Up, core.Down:
		return l.vertical
	case core.UpperLeft, core.LowerRight:
		return l.falling
	default:
		return l.rising
	}
}

// arrowHead returns the arrow pointing along dir.
func arrowHead(dir core.Direction, useASCII bool) rune {
	if useASCII {
		switch dir {
		case core.Up, core.UpperLeft, core.UpperRight:
			return '^'
		case core.Left:
			return '<'
		case core.Right:
			return '>'
		default:
			return 'v'
		}
	}
	switch dir {
	case core.Up:
		return '▲'
	case core.Down:
		return '▼'
	case core.Left:
		return '◄'
	case core.Right:
		return '►'
	case core.UpperLeft:
		return '◤'
	case core.UpperRight:
		return '◥'
	case core.LowerLeft:
		return '◣'
	default:
		return '◢'
	}
}

// corner returns the glyph joining a segment travelling in dir `in` to one
// leaving in dir `out`.
func corner(in, out core.Direction, useASCII bool) rune {
	if useASCII {
		return '+'
	}
	switch {
	case (in == core.Right && out == core.Down) || (in == core.Up && out == core.Left):
		return '┐'
	case (in == core.Right && out == core.Up) || (in == core.Down && out == core.Left):
		return '┘'
	case (in == core.Left && out == core.Down) || (in == core.Up && out == core.Right):
		return '┌'
	case (in == core.Left && out == core.Up) || (in == core.Down && out == core.Right):
		return '└'
	default:
		return '┼'
	}
}

// boxStart returns the junction drawn where an edge meets a node border on
// the side dir names.
func boxStart(dir core.Direction, useASCII bool) rune {
	if useASCII {
		return '+'
	}
	switch dir {
	case core.Up:
		return '┴'
	case core.Down:
		return '┬'
	case core.Left:
		return '┤'
	default:
		return '├'
	}
}
