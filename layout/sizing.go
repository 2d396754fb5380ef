package layout

import (
	"gridart/core"
	"gridart/shapes"
)

// subgraphHeaderRows is the extra spacing reserved above the topmost node of
// a subgraph entered from outside, room for the border and its label.
const subgraphHeaderRows = 4

// SizeGrid records the column widths and row heights every placed node
// needs. Shared indices keep the largest value seen.
func (g *Graph) SizeGrid() {
	for _, n := range g.Nodes {
		g.setColumnWidth(n)
	}
}

func (g *Graph) setColumnWidth(n *Node) {
	n.dims = shapes.Lookup(n.Shape).Size(n.Label, g.Config.BoxBorderPadding)
	gc := *n.GridCoord

	for i, w := range n.dims.Columns {
		g.ColumnWidth[gc.X+i] = max(g.ColumnWidth[gc.X+i], w)
	}
	for i, h := range n.dims.Rows {
		g.RowHeight[gc.Y+i] = max(g.RowHeight[gc.Y+i], h)
	}

	// spacing before the block
	if gc.X > 0 {
		g.ColumnWidth[gc.X-1] = max(g.ColumnWidth[gc.X-1], g.Config.PaddingX)
	}
	if gc.Y > 0 {
		padding := g.Config.PaddingY
		if g.needsSubgraphHeader(n) {
			padding += subgraphHeaderRows
		}
		g.RowHeight[gc.Y-1] = max(g.RowHeight[gc.Y-1], padding)
	}
}

// needsSubgraphHeader reports whether n is the topmost node of its subgraph
// and is the target of an edge from outside that subgraph.
func (g *Graph) needsSubgraphHeader(n *Node) bool {
	sg := g.NodeSubgraph(n)
	if sg == nil {
		return false
	}
	for _, m := range sg.Nodes {
		if m.GridCoord != nil && m.GridCoord.Y < n.GridCoord.Y {
			return false
		}
	}
	for _, e := range g.Edges {
		if e.To == n && !sg.Contains(e.From) {
			return true
		}
	}
	return false
}

// IncreaseGridSizeForPath gives every column and row a route passes through
// a minimal size so parallel routes keep a visible gap. Cells off the
// lattice are ignored.
func (g *Graph) IncreaseGridSizeForPath(path []core.GridCoord) {
	for _, c := range path {
		if c.X < 0 || c.Y < 0 {
			continue
		}
		if _, ok := g.ColumnWidth[c.X]; !ok {
			g.ColumnWidth[c.X] = g.Config.PaddingX / 2
		}
		if _, ok := g.RowHeight[c.Y]; !ok {
			g.RowHeight[c.Y] = g.Config.PaddingY / 2
		}
	}
}

// GridToDrawing converts a lattice cell to the character at its centre.
func (g *Graph) GridToDrawing(c core.GridCoord) core.DrawingCoord {
	x, y := 0, 0
	for col := 0; col < c.X; col++ {
		x += g.ColumnWidth[col]
	}
	for row := 0; row < c.Y; row++ {
		y += g.RowHeight[row]
	}
	return core.DrawingCoord{
		X: x + g.ColumnWidth[c.X]/2 + g.OffsetX,
		Y: y + g.RowHeight[c.Y]/2 + g.OffsetY,
	}
}

// GridToDrawingDir converts the cell dir points at inside the block
// starting at c.
func (g *Graph) GridToDrawingDir(c core.GridCoord, dir core.Direction) core.DrawingCoord {
	return g.GridToDrawing(c.Offset(dir))
}

// LineToDrawing converts a lattice path to drawing coordinates.
func (g *Graph) LineToDrawing(line []core.GridCoord) []core.DrawingCoord {
	out := make([]core.DrawingCoord, len(line))
	for i, c := range line {
		out[i] = g.GridToDrawing(c)
	}
	return out
}

// gridExtent returns the total width and height of the lattice in characters.
func (g *Graph) gridExtent() (width, height int) {
	for _, w := range g.ColumnWidth {
		width += w
	}
	for _, h := range g.RowHeight {
		height += h
	}
	return width, height
}
