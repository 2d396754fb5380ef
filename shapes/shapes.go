// Package shapes is the node shape registry. Each shape kind maps to a
// renderer that sizes a label into a node's 3x3 grid block and draws the
// node outline as a canvas fragment.
//
// Every shape shares the same block geometry, so edges attach to the same
// border cells whatever the outline looks like.
package shapes

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"gridart/canvas"
	"gridart/core"
	"gridart/geometry"
)

// Kind identifies a node shape.
type Kind int

const (
	Rectangle Kind = iota
	Rounded
	Stadium
	Circle
	Diamond
	Hexagon
	Subroutine
	Cylinder
	Asymmetric
	numKinds
)

var kindNames = [numKinds]string{
	Rectangle:  "rectangle",
	Rounded:    "rounded",
	Stadium:    "stadium",
	Circle:     "circle",
	Diamond:    "diamond",
	Hexagon:    "hexagon",
	Subroutine: "subroutine",
	Cylinder:   "cylinder",
	Asymmetric: "asymmetric",
}

// String returns the shape tag.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return kindNames[Rectangle]
	}
	return kindNames[k]
}

// Kinds returns every known shape kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// aliases maps alternative tags onto kinds.
var aliases = map[string]Kind{
	"rect":     Rectangle,
	"box":      Rectangle,
	"round":    Rounded,
	"pill":     Stadium,
	"rhombus":  Diamond,
	"decision": Diamond,
	"hex":      Hexagon,
	"database": Cylinder,
	"db":       Cylinder,
	"flag":     Asymmetric,
}

// ParseKind resolves a shape tag. Unknown or empty tags yield Rectangle.
func ParseKind(tag string) Kind {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for k, name := range kindNames {
		if name == tag {
			return Kind(k)
		}
	}
	if k, ok := aliases[tag]; ok {
		return k
	}
	return Rectangle
}

// Dimensions is the space a node needs on the grid.
// Columns and Rows are the widths and heights of the three grid cells the
// node spans along each axis: border, content, border.
type Dimensions struct {
	Width     int
	Height    int
	LabelArea int
	Columns   [3]int
	Rows      [3]int
}

// Style selects the glyph set for a node outline.
type Style struct {
	UseASCII bool
	// Border names a box style (sharp, rounded, double, thick).
	// Only rectangles honour it.
	Border string
}

// AttachFunc maps a block direction to the fragment-relative cell where an
// edge meets the node outline.
type AttachFunc func(core.Direction) core.DrawingCoord

// Renderer sizes and draws one kind of node.
type Renderer interface {
	Size(label string, padding int) Dimensions
	Render(label string, dims Dimensions, style Style) (*canvas.Canvas, AttachFunc)
}

// registry is the static dispatch table, indexed by Kind.
var registry = [numKinds]Renderer{
	Rectangle:  outline{unicode: canvas.SharpBox, styled: true},
	Rounded:    outline{unicode: canvas.RoundedBox},
	Stadium:    outline{unicode: canvas.RoundedBox, left: '(', right: ')', extra: 2},
	Circle:     outline{unicode: canvas.RoundedBox, left: '(', right: ')', allRows: true, extra: 2},
	Diamond:    outline{unicode: slanted('─'), ascii: slantedASCII, left: '<', right: '>', extra: 2},
	Hexagon:    outline{unicode: slanted('─'), ascii: slantedASCII, extra: 2},
	Subroutine: outline{unicode: canvas.SharpBox, inner: true, extra: 2},
	Cylinder:   outline{unicode: canvas.RoundedBox, rim: true},
	Asymmetric: outline{unicode: canvas.SharpBox, left: '>', extra: 2},
}

// Lookup returns the renderer for k, falling back to the rectangle renderer.
func Lookup(k Kind) Renderer {
	if k < 0 || k >= numKinds {
		return registry[Rectangle]
	}
	return registry[k]
}

func slanted(horizontal rune) canvas.BoxStyle {
	return canvas.BoxStyle{
		TopLeft:     '╱',
		TopRight:    '╲',
		BottomLeft:  '╲',
		BottomRight: '╱',
		Horizontal:  horizontal,
		Vertical:    '│',
	}
}

var slantedASCII = canvas.BoxStyle{
	TopLeft:     '/',
	TopRight:    '\\',
	BottomLeft:  '\\',
	BottomRight: '/',
	Horizontal:  '-',
	Vertical:    '|',
}

// outline draws a box with optional decorations. All shapes are variations
// of it.
type outline struct {
	unicode canvas.BoxStyle
	ascii   canvas.BoxStyle // zero value means canvas.ASCIIBox
	// left and right replace the side borders on the label row,
	// or on every interior row when allRows is set.
	left, right rune
	allRows     bool
	// extra widens the content column to make room for decorations.
	extra int
	rim   bool // cylinder lip below the top border
	inner bool // subroutine bars inside the side borders
	// styled outlines take their box style from Style.Border.
	styled bool
}

func (o outline) Size(label string, padding int) Dimensions {
	lw := runewidth.StringWidth(label)
	content := 2*padding + lw + o.extra
	d := Dimensions{
		LabelArea: lw,
		Columns:   [3]int{1, content, 1},
		Rows:      [3]int{1, 1 + 2*padding, 1},
	}
	d.Width = d.Columns[0] + d.Columns[1] + d.Columns[2]
	d.Height = d.Rows[0] + d.Rows[1] + d.Rows[2]
	return d
}

func (o outline) boxStyle(style Style) canvas.BoxStyle {
	switch {
	case style.UseASCII && o.ascii != (canvas.BoxStyle{}):
		return o.ascii
	case style.UseASCII:
		return canvas.ASCIIBox
	case o.styled:
		return canvas.LookupBoxStyle(style.Border, false)
	default:
		return o.unicode
	}
}

func (o outline) Render(label string, dims Dimensions, style Style) (*canvas.Canvas, AttachFunc) {
	w := dims.Columns[0] + dims.Columns[1]
	h := dims.Rows[0] + dims.Rows[1]
	c := canvas.New(w, h)
	box := o.boxStyle(style)
	c.DrawBox(0, 0, w, h, box, core.RoleNodeBorder)

	labelRow := h / 2
	for y := 1; y < h; y++ {
		if !o.allRows && y != labelRow {
			continue
		}
		if o.left != 0 {
			c.SetWithRole(0, y, o.left, core.RoleNodeBorder)
		}
		if o.right != 0 {
			c.SetWithRole(w, y, o.right, core.RoleNodeBorder)
		}
	}

	if o.rim && labelRow > 1 {
		left, mid, right := '├', '─', '┤'
		if style.UseASCII {
			left, mid, right = '+', '-', '+'
		}
		c.SetWithRole(0, 1, left, core.RoleNodeBorder)
		for x := 1; x < w; x++ {
			c.SetWithRole(x, 1, mid, core.RoleNodeBorder)
		}
		c.SetWithRole(w, 1, right, core.RoleNodeBorder)
	}

	if o.inner && w >= 4 {
		for y := 1; y < h; y++ {
			c.SetWithRole(1, y, box.Vertical, core.RoleNodeBorder)
			c.SetWithRole(w-1, y, box.Vertical, core.RoleNodeBorder)
		}
	}

	lw := runewidth.StringWidth(label)
	c.DrawText(w/2-geometry.CeilDiv(lw, 2)+1, labelRow, label, core.RoleNodeText)

	return c, blockAttach(dims)
}

// blockAttach returns the attachment points of a node block: the middle of
// each side, the corners, and the centre of the content cell.
func blockAttach(dims Dimensions) AttachFunc {
	w := dims.Columns[0] + dims.Columns[1]
	h := dims.Rows[0] + dims.Rows[1]
	ux := dims.Columns[0] - dims.Columns[0]/2 + dims.Columns[1]/2
	uy := dims.Rows[0] - dims.Rows[0]/2 + dims.Rows[1]/2
	return func(dir core.Direction) core.DrawingCoord {
		switch dir {
		case core.Up:
			return core.DrawingCoord{X: ux, Y: 0}
		case core.Down:
			return core.DrawingCoord{X: ux, Y: h}
		case core.Left:
			return core.DrawingCoord{X: 0, Y: uy}
		case core.Right:
			return core.DrawingCoord{X: w, Y: uy}
		case core.UpperLeft:
			return core.DrawingCoord{X: 0, Y: 0}
		case core.UpperRight:
			return core.DrawingCoord{X: w, Y: 0}
		case core.LowerLeft:
			return core.DrawingCoord{X: 0, Y: h}
		case core.LowerRight:
			return core.DrawingCoord{X: w, Y: h}
		default:
			return core.DrawingCoord{X: ux, Y: uy}
		}
	}
}
