// Package validation checks rendered diagrams for broken line work and for
// characters outside the requested charset.
package validation

import (
	"fmt"
	"strings"
)

// arms are the directions a glyph's strokes leave its cell.
type arms uint8

const (
	north arms = 1 << iota
	south
	east
	west
)

var directions = []struct {
	arm, back arms
	dx, dy    int
	name      string
}{
	{north, south, 0, -1, "north"},
	{south, north, 0, 1, "south"},
	{east, west, 1, 0, "east"},
	{west, east, -1, 0, "west"},
}

// glyph describes how a line-drawing character must connect.
type glyph struct {
	name string
	arms arms
	// open glyphs may end in empty space; the rest must meet a neighbour
	// on every arm.
	open bool
}

const all = north | south | east | west

var glyphs = map[rune]glyph{
	'─': {"Horizontal line", east | west, true},
	'━': {"Horizontal line", east | west, true},
	'┄': {"Horizontal line", east | west, true},
	'═': {"Horizontal line", east | west, true},
	'-': {"Horizontal line", east | west, true},
	'=': {"Horizontal line", east | west, true},
	'│': {"Vertical line", north | south, true},
	'┃': {"Vertical line", north | south, true},
	'┆': {"Vertical line", north | south, true},
	'║': {"Vertical line", north | south, true},
	'|': {"Vertical line", north | south, true},
	'+': {"Cross", all, true},
	'╱': {"Diagonal", all, true},
	'╲': {"Diagonal", all, true},

	'┌': {"Top-left corner", south | east, false},
	'╭': {"Top-left corner", south | east, false},
	'╔': {"Top-left corner", south | east, false},
	'┏': {"Top-left corner", south | east, false},
	'┐': {"Top-right corner", south | west, false},
	'╮': {"Top-right corner", south | west, false},
	'╗': {"Top-right corner", south | west, false},
	'┓': {"Top-right corner", south | west, false},
	'└': {"Bottom-left corner", north | east, false},
	'╰': {"Bottom-left corner", north | east, false},
	'╚': {"Bottom-left corner", north | east, false},
	'┗': {"Bottom-left corner", north | east, false},
	'┘': {"Bottom-right corner", north | west, false},
	'╯': {"Bottom-right corner", north | west, false},
	'╝': {"Bottom-right corner", north | west, false},
	'┛': {"Bottom-right corner", north | west, false},
	'├': {"Tee-right", north | south | east, false},
	'┤': {"Tee-left", north | south | west, false},
	'┬': {"Tee-down", east | west | south, false},
	'┴': {"Tee-up", east | west | north, false},
	'┼': {"Cross", all, false},

	'▲': {"Up arrow", south, false},
	'▼': {"Down arrow", north, false},
	'►': {"Right arrow", west, false},
	'▶': {"Right arrow", west, false},
	'◄': {"Left arrow", east, false},
	'◀': {"Left arrow", east, false},
}

func (g glyph) straight() bool {
	return g.arms == east|west || g.arms == north|south
}

// ValidationError is one problem found in a rendered diagram.
type ValidationError struct {
	X, Y    int
	Char    rune
	Context string
	Message string
}

// String formats the error with its position.
func (e ValidationError) String() string {
	return fmt.Sprintf("(%d,%d) '%c' [%s]: %s", e.X, e.Y, e.Char, e.Context, e.Message)
}

// LineValidator checks that adjacent line-drawing characters join up.
type LineValidator struct {
	errors []ValidationError
	// strictMode also rejects straight lines that end in empty space.
	strictMode bool
}

// NewLineValidator creates a validator with default settings.
func NewLineValidator() *LineValidator {
	return &LineValidator{}
}

// SetStrictMode enables or disables strict validation.
func (v *LineValidator) SetStrictMode(strict bool) {
	v.strictMode = strict
}

// Validate checks every line-drawing character of a rendered diagram.
//
// Every arm of a glyph must meet either a glyph with an arm pointing back,
// or a character the validator does not know, such as label text. Corners,
// tees and arrows must not end in empty space; plain lines may.
func (v *LineValidator) Validate(diagram string) []ValidationError {
	v.errors = nil
	grid := toGrid(diagram)

	for y, row := range grid {
		for x, r := range row {
			g, ok := glyphs[r]
			if !ok {
				continue
			}
			v.checkGlyph(grid, x, y, r, g)
		}
	}
	return v.errors
}

func (v *LineValidator) checkGlyph(grid [][]rune, x, y int, r rune, g glyph) {
	for _, d := range directions {
		n := charAt(grid, x+d.dx, y+d.dy)
		ng, known := glyphs[n]

		if g.arms&d.arm == 0 {
			continue
		}

		switch {
		case n == ' ':
			if !g.open || (v.strictMode && g.straight()) {
				v.addError(x, y, r, d.name+"=space",
					"%s has nothing to connect to on the %s", g.name, d.name)
			}
		case known && ng.arms&d.back == 0:
			v.addError(x, y, r, fmt.Sprintf("%s=%c", d.name, n),
				"%s cannot connect to %c on the %s", g.name, n, d.name)
		}
	}
}

// CheckASCII reports every character outside printable ASCII.
func CheckASCII(diagram string) []ValidationError {
	var errs []ValidationError
	for y, row := range toGrid(diagram) {
		for x, r := range row {
			if r < 0x20 || r > 0x7e {
				errs = append(errs, ValidationError{
					X: x, Y: y, Char: r,
					Context: "charset",
					Message: fmt.Sprintf("non-ASCII character %U", r),
				})
			}
		}
	}
	return errs
}

func toGrid(diagram string) [][]rune {
	lines := strings.Split(strings.TrimRight(diagram, "\n"), "\n")
	grid := make([][]rune, len(lines))
	for i, line := range lines {
		grid[i] = []rune(line)
	}
	return grid
}

func charAt(grid [][]rune, x, y int) rune {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return ' '
	}
	return grid[y][x]
}

func (v *LineValidator) addError(x, y int, char rune, context, format string, args ...interface{}) {
	v.errors = append(v.errors, ValidationError{
		X:       x,
		Y:       y,
		Char:    char,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	})
}
