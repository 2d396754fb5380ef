// Package core contains the fundamental types shared by the gridart layout and drawing packages.
package core

import "fmt"

// GridCoord is a position on the abstract placement lattice.
// Nodes occupy a 3x3 block of grid cells, edges route through single cells.
type GridCoord struct {
	X, Y int
}

// Offset returns the cell inside the 3x3 block starting at c that dir points at.
func (c GridCoord) Offset(dir Direction) GridCoord {
	return GridCoord{X: c.X + dir.X, Y: c.Y + dir.Y}
}

// String returns the coordinate as "(x,y)".
func (c GridCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// DrawingCoord is a character cell position on the rendered canvas.
type DrawingCoord struct {
	X, Y int
}

// Add returns the sum of two drawing coordinates.
func (c DrawingCoord) Add(o DrawingCoord) DrawingCoord {
	return DrawingCoord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Direction is a unit offset into a node's 3x3 grid block.
// It doubles as the direction between two coordinates.
type Direction struct {
	X, Y int
}

// The nine block positions. Up is the top-middle cell, Middle the centre.
var (
	Up         = Direction{1, 0}
	Down       = Direction{1, 2}
	Left       = Direction{0, 1}
	Right      = Direction{2, 1}
	UpperLeft  = Direction{0, 0}
	UpperRight = Direction{2, 0}
	LowerLeft  = Direction{0, 2}
	LowerRight = Direction{2, 2}
	Middle     = Direction{1, 1}
)

// Opposite returns the mirrored block position.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case UpperLeft:
		return LowerRight
	case UpperRight:
		return LowerLeft
	case LowerLeft:
		return UpperRight
	case LowerRight:
		return UpperLeft
	default:
		return Middle
	}
}

// String returns the name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case UpperLeft:
		return "UpperLeft"
	case UpperRight:
		return "UpperRight"
	case LowerLeft:
		return "LowerLeft"
	case LowerRight:
		return "LowerRight"
	case Middle:
		return "Middle"
	default:
		return fmt.Sprintf("Direction(%d,%d)", d.X, d.Y)
	}
}

// DirectionBetween returns the direction of travel from (x1,y1) to (x2,y2).
// Identical points report Middle.
func DirectionBetween(x1, y1, x2, y2 int) Direction {
	switch {
	case x1 == x2 && y1 == y2:
		return Middle
	case x1 == x2:
		if y1 < y2 {
			return Down
		}
		return Up
	case y1 == y2:
		if x1 < x2 {
			return Right
		}
		return Left
	case x1 < x2:
		if y1 < y2 {
			return LowerRight
		}
		return UpperRight
	default:
		if y1 < y2 {
			return LowerLeft
		}
		return UpperLeft
	}
}

// GridDirection returns the direction of travel between two grid coordinates.
func GridDirection(from, to GridCoord) Direction {
	return DirectionBetween(from.X, from.Y, to.X, to.Y)
}

// DrawingDirection returns the direction of travel between two drawing coordinates.
func DrawingDirection(from, to DrawingCoord) Direction {
	return DirectionBetween(from.X, from.Y, to.X, to.Y)
}

// Role tags a canvas cell with what drew it, for colorization and flipping.
type Role uint8

const (
	RoleNone Role = iota
	RoleNodeBorder
	RoleNodeText
	RoleEdgeLine
	RoleEdgeCorner
	RoleArrowHead
	RoleEdgeLabel
	RoleSubgraphBorder
	RoleSubgraphLabel
)

// IsText reports whether cells with this role hold label text.
func (r Role) IsText() bool {
	return r == RoleNodeText || r == RoleEdgeLabel || r == RoleSubgraphLabel
}

// String returns the role name used in theme files.
func (r Role) String() string {
	switch r {
	case RoleNodeBorder:
		return "node_border"
	case RoleNodeText:
		return "node_text"
	case RoleEdgeLine:
		return "edge_line"
	case RoleEdgeCorner:
		return "edge_corner"
	case RoleArrowHead:
		return "arrow_head"
	case RoleEdgeLabel:
		return "edge_label"
	case RoleSubgraphBorder:
		return "subgraph_border"
	case RoleSubgraphLabel:
		return "subgraph_label"
	default:
		return "none"
	}
}

// Roles lists every role that draws something, in declaration order.
func Roles() []Role {
	return []Role{
		RoleNodeBorder, RoleNodeText, RoleEdgeLine, RoleEdgeCorner,
		RoleArrowHead, RoleEdgeLabel, RoleSubgraphBorder, RoleSubgraphLabel,
	}
}

// ParseRole returns the role whose String form is name.
func ParseRole(name string) (Role, bool) {
	for _, r := range Roles() {
		if r.String() == name {
			return r, true
		}
	}
	return RoleNone, false
}
