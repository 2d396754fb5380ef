package layout

import (
	"gridart/canvas"
	"gridart/core"
	"gridart/shapes"
)

const (
	subgraphPadding    = 2 // space between members and the border
	subgraphLabelSpace = 2 // extra rows above the members for the label
	subgraphMinSpacing = 1 // gap kept between sibling subgraphs
)

// Finalize converts every node to drawing coordinates and renders its
// outline, computes subgraph bounding boxes, sizes the canvas from the
// lattice and shifts everything so no coordinate is negative. Top-level
// subgraphs that come too close widen the lattice between them and the
// pass repeats.
func (g *Graph) Finalize() {
	for pass := 0; ; pass++ {
		for _, n := range g.Nodes {
			dc := g.GridToDrawing(*n.GridCoord)
			n.DrawingCoord = &dc
			n.Drawing, n.Attach = g.renderNode(n)
		}
		g.calculateSubgraphBoundingBoxes()
		if pass == len(g.Subgraphs) || !g.ensureSubgraphSpacing() {
			break
		}
	}

	width, height := g.gridExtent()
	g.Canvas = canvas.New(width-1, height-1)
	g.offsetForSubgraphs()
}

// renderNode draws a node into the space its lattice cells provide.
func (g *Graph) renderNode(n *Node) (*canvas.Canvas, shapes.AttachFunc) {
	gc := *n.GridCoord
	dims := n.dims
	for i := 0; i < 3; i++ {
		dims.Columns[i] = g.ColumnWidth[gc.X+i]
		dims.Rows[i] = g.RowHeight[gc.Y+i]
	}
	style := shapes.Style{UseASCII: g.Config.UseASCII, Border: n.Hints["border"]}
	return shapes.Lookup(n.Shape).Render(n.Label, dims, style)
}

func (g *Graph) calculateSubgraphBoundingBoxes() {
	done := map[*Subgraph]bool{}
	for _, sg := range g.Subgraphs {
		g.subgraphBoundingBox(sg, done)
	}
}

// subgraphBoundingBox computes the box of sg from its children's boxes and
// its members' outlines, children first.
func (g *Graph) subgraphBoundingBox(sg *Subgraph, done map[*Subgraph]bool) {
	if done[sg] {
		return
	}
	done[sg] = true
	if !sg.HasBox() {
		return
	}

	const inf = 1 << 30
	minX, minY, maxX, maxY := inf, inf, -inf, -inf

	for _, child := range sg.Children {
		g.subgraphBoundingBox(child, done)
		if !child.HasBox() {
			continue
		}
		minX, minY = min(minX, child.MinX), min(minY, child.MinY)
		maxX, maxY = max(maxX, child.MaxX), max(maxY, child.MaxY)
	}

	for _, n := range sg.Nodes {
		if n.DrawingCoord == nil || n.Drawing == nil {
			continue
		}
		minX, minY = min(minX, n.DrawingCoord.X), min(minY, n.DrawingCoord.Y)
		maxX = max(maxX, n.DrawingCoord.X+n.Drawing.MaxX())
		maxY = max(maxY, n.DrawingCoord.Y+n.Drawing.MaxY())
	}

	sg.MinX = minX - subgraphPadding
	sg.MinY = minY - subgraphPadding - subgraphLabelSpace
	sg.MaxX = maxX + subgraphPadding
	sg.MaxY = maxY + subgraphPadding
	g.Logger.Debug("subgraph bounds", "subgraph", sg.Name,
		"min_x", sg.MinX, "min_y", sg.MinY, "max_x", sg.MaxX, "max_y", sg.MaxY)
}

// ensureSubgraphSpacing keeps top-level subgraphs at least
// subgraphMinSpacing apart. For each pair that comes closer, the spacing
// column (or row) between their members grows by the shortfall, along the
// axis needing less. It reports whether the lattice changed; boxes must
// then be recomputed.
func (g *Graph) ensureSubgraphSpacing() bool {
	var roots []*Subgraph
	for _, sg := range g.Subgraphs {
		if sg.Parent == nil && sg.HasBox() {
			roots = append(roots, sg)
		}
	}

	grew := false
	for i := 0; i < len(roots); i++ {
		for j := i + 1; j < len(roots); j++ {
			if g.spreadApart(roots[i], roots[j]) {
				grew = true
			}
		}
	}
	return grew
}

func (g *Graph) spreadApart(a, b *Subgraph) bool {
	needX := shortfall(a.MinX, a.MaxX, b.MinX, b.MaxX)
	needY := shortfall(a.MinY, a.MaxY, b.MinY, b.MaxY)
	if needX <= 0 || needY <= 0 {
		return false
	}

	colOK, col := g.gapBetween(a, b, func(c core.GridCoord) int { return c.X })
	rowOK, row := g.gapBetween(a, b, func(c core.GridCoord) int { return c.Y })
	switch {
	case colOK && (!rowOK || needX <= needY):
		g.ColumnWidth[col] += needX
		g.Logger.Debug("separated subgraphs", "a", a.Name, "b", b.Name, "column", col, "by", needX)
	case rowOK:
		g.RowHeight[row] += needY
		g.Logger.Debug("separated subgraphs", "a", a.Name, "b", b.Name, "row", row, "by", needY)
	default:
		g.Logger.Debug("subgraphs share lattice columns and rows", "a", a.Name, "b", b.Name)
		return false
	}
	return true
}

// shortfall returns how many characters the later of two ranges must move
// to sit subgraphMinSpacing clear of the earlier one.
func shortfall(aMin, aMax, bMin, bMax int) int {
	if aMin > bMin {
		aMin, aMax, bMin, bMax = bMin, bMax, aMin, aMax
	}
	return aMax + subgraphMinSpacing + 1 - bMin
}

// gapBetween finds the spacing index just past the members of whichever
// subgraph comes first along an axis, provided the other subgraph's members
// all start beyond it.
func (g *Graph) gapBetween(a, b *Subgraph, axis func(core.GridCoord) int) (bool, int) {
	aLo, aHi := memberSpan(a, axis)
	bLo, bHi := memberSpan(b, axis)
	if aLo > bLo {
		aHi, bLo = bHi, aLo
	}
	gap := aHi + 1
	return gap < bLo, gap
}

// memberSpan returns the first and last lattice index a subgraph's member
// blocks cover along an axis.
func memberSpan(sg *Subgraph, axis func(core.GridCoord) int) (lo, hi int) {
	lo, hi = 1<<30, -1<<30
	for _, n := range sg.Nodes {
		lo = min(lo, axis(*n.GridCoord))
		hi = max(hi, axis(*n.GridCoord)+2)
	}
	return lo, hi
}

// offsetForSubgraphs shifts subgraph boxes and node coordinates so the
// smallest subgraph coordinate becomes zero. The shift is recorded in
// OffsetX/OffsetY so later lattice conversions include it.
func (g *Graph) offsetForSubgraphs() {
	minX, minY := 0, 0
	for _, sg := range g.Subgraphs {
		if !sg.HasBox() {
			continue
		}
		minX, minY = min(minX, sg.MinX), min(minY, sg.MinY)
	}
	if minX >= 0 && minY >= 0 {
		return
	}

	dx, dy := -minX, -minY
	g.OffsetX, g.OffsetY = dx, dy
	for _, sg := range g.Subgraphs {
		sg.MinX += dx
		sg.MinY += dy
		sg.MaxX += dx
		sg.MaxY += dy
	}
	for _, n := range g.Nodes {
		n.DrawingCoord.X += dx
		n.DrawingCoord.Y += dy
	}
	g.Canvas.Resize(g.Canvas.MaxX()+dx, g.Canvas.MaxY()+dy)
	g.Logger.Debug("applied subgraph offset", "dx", dx, "dy", dy)
}
