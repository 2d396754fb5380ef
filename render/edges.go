package render

import (
	"github.com/mattn/go-runewidth"

	"gridart/canvas"
	"gridart/core"
	"gridart/layout"
)

var origin = core.DrawingCoord{}

// edgeLayers holds one edge's drawing split by kind, so each kind can be
// composited over every edge's previous kind.
type edgeLayers struct {
	lines, corners, arrows, starts, labels *canvas.Canvas
}

// drawEdges composites every edge onto c: all lines, then corners, arrow
// heads, box starts and finally labels.
func drawEdges(g *layout.Graph, c *canvas.Canvas, opts canvas.MergeOptions) *canvas.Canvas {
	var lines, corners, arrows, starts, labels []*canvas.Canvas
	for _, e := range g.Edges {
		if len(e.Path) < 2 {
			continue
		}
		l := drawEdge(g, e)
		lines = append(lines, l.lines)
		corners = append(corners, l.corners)
		arrows = append(arrows, l.arrows)
		starts = append(starts, l.starts)
		labels = append(labels, l.labels)
	}

	c = canvas.Merge(c, origin, opts, lines...)
	c = canvas.Merge(c, origin, opts, corners...)
	c = canvas.Merge(c, origin, opts, arrows...)
	c = canvas.Merge(c, origin, opts, starts...)

	textOpts := opts
	textOpts.ProtectText = true
	return canvas.Merge(c, origin, textOpts, labels...)
}

func drawEdge(g *layout.Graph, e *layout.Edge) edgeLayers {
	blank := func() *canvas.Canvas { return g.Canvas.Blank() }
	l := edgeLayers{lines: blank(), corners: blank(), arrows: blank(), starts: blank(), labels: blank()}
	ascii := g.Config.UseASCII

	drawn := drawPath(g, l.lines, e.Path, glyphsFor(e.Style, ascii))
	drawCorners(g, l.corners, e.Path, ascii)
	if e.Arrow {
		drawArrowHead(g, l.arrows, e.Path, drawn, ascii)
	}
	start := e.From.DrawingCoord.Add(e.From.Attach(e.StartDir))
	l.starts.SetWithRole(start.X, start.Y, boxStart(e.StartDir, ascii), core.RoleEdgeCorner)
	if !e.Arrow {
		end := e.To.DrawingCoord.Add(e.To.Attach(e.EndDir))
		l.starts.SetWithRole(end.X, end.Y, boxStart(e.EndDir, ascii), core.RoleEdgeCorner)
	}
	if e.Text != "" && len(e.LabelLine) == 2 {
		drawLabel(g, l.labels, e.LabelLine, e.Text)
	}
	return l
}

// drawPath draws the straight segments between consecutive path points.
// Each segment skips its first cell, which is the node border for the
// first segment and a corner for the rest, and stops one cell short of its
// end. It returns the cells drawn per segment.
func drawPath(g *layout.Graph, c *canvas.Canvas, path []core.GridCoord, glyphs lineGlyphs) [][]core.DrawingCoord {
	var drawn [][]core.DrawingCoord
	prev := g.GridToDrawing(path[0])
	for _, p := range path[1:] {
		next := g.GridToDrawing(p)
		if next == prev {
			continue
		}
		drawn = append(drawn, drawLine(c, prev, next, glyphs))
		prev = next
	}
	return drawn
}

// drawLine draws from one cell past from to one cell before to. Diagonal
// lines only occur on fallback routes.
func drawLine(c *canvas.Canvas, from, to core.DrawingCoord, glyphs lineGlyphs) []core.DrawingCoord {
	dir := core.DrawingDirection(from, to)
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)
	start := core.DrawingCoord{X: from.X + sx, Y: from.Y + sy}
	end := core.DrawingCoord{X: to.X - sx, Y: to.Y - sy}

	nx, ny := steps(start.X, end.X, sx), steps(start.Y, end.Y, sy)
	if nx == 0 || ny == 0 {
		return nil
	}
	n := max(nx, ny)
	glyph := glyphs.line(dir)

	drawn := make([]core.DrawingCoord, 0, n)
	for i := 0; i < n; i++ {
		p := core.DrawingCoord{
			X: start.X + sx*min(i, nx-1),
			Y: start.Y + sy*min(i, ny-1),
		}
		c.SetWithRole(p.X, p.Y, glyph, core.RoleEdgeLine)
		drawn = append(drawn, p)
	}
	return drawn
}

// steps counts the cells from a to b moving by s. A zero s means the axis
// does not move and counts as unbounded. It returns 0 when a is already
// past b.
func steps(a, b, s int) int {
	if s == 0 {
		return 1
	}
	n := (b-a)*s + 1
	return max(n, 0)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// drawCorners draws a corner at every turning point of the path.
func drawCorners(g *layout.Graph, c *canvas.Canvas, path []core.GridCoord, ascii bool) {
	for i := 1; i < len(path)-1; i++ {
		in := core.GridDirection(path[i-1], path[i])
		out := core.GridDirection(path[i], path[i+1])
		p := g.GridToDrawing(path[i])
		c.SetWithRole(p.X, p.Y, corner(in, out, ascii), core.RoleEdgeCorner)
	}
}

// drawArrowHead replaces the last drawn cell with an arrow pointing along
// the final segment. When the final segment had no room for a line the
// arrow goes on the cell before the end point.
func drawArrowHead(g *layout.Graph, c *canvas.Canvas, path []core.GridCoord, drawn [][]core.DrawingCoord, ascii bool) {
	from := g.GridToDrawing(path[len(path)-2])
	to := g.GridToDrawing(path[len(path)-1])
	dir := core.DrawingDirection(from, to)

	var at core.DrawingCoord
	if n := len(drawn); n > 0 && len(drawn[n-1]) > 0 {
		last := drawn[n-1]
		at = last[len(last)-1]
		if len(last) > 1 {
			dir = core.DrawingDirection(last[0], at)
		}
	} else {
		at = core.DrawingCoord{X: to.X - sign(to.X-from.X), Y: to.Y - sign(to.Y-from.Y)}
	}
	c.SetWithRole(at.X, at.Y, arrowHead(dir, ascii), core.RoleArrowHead)
}

// drawLabel centres text on the label segment.
func drawLabel(g *layout.Graph, c *canvas.Canvas, line []core.GridCoord, text string) {
	a, b := g.GridToDrawing(line[0]), g.GridToDrawing(line[1])
	minX, maxX := min(a.X, b.X), max(a.X, b.X)
	minY, maxY := min(a.Y, b.Y), max(a.Y, b.Y)
	x := minX + (maxX-minX)/2 - runewidth.StringWidth(text)/2
	y := minY + (maxY-minY)/2
	c.DrawText(x, y, text, core.RoleEdgeLabel)
}
