package layout

import (
	"github.com/mattn/go-runewidth"

	"gridart/core"
	"gridart/diagram"
	"gridart/pathfinding"
)

// routeMargin is how far past the occupied lattice a route may wander.
const routeMargin = 2 * levelStep

// RouteEdges computes the path and label segment of every edge.
func (g *Graph) RouteEdges() {
	for _, e := range g.Edges {
		g.DeterminePath(e)
		g.IncreaseGridSizeForPath(e.Path)
		g.DetermineLabelLine(e)
	}
}

// DeterminePath routes an edge twice, from the preferred and from the
// alternative attachment directions, and keeps the route with fewer turns.
// Ties go to the preferred route.
func (g *Graph) DeterminePath(e *Edge) {
	preferred, preferredEnd, alternative, alternativeEnd := g.startAndEndDirs(e)

	preferredPath := pathfinding.MergePath(g.Route(
		e.From.GridCoord.Offset(preferred),
		e.To.GridCoord.Offset(preferredEnd),
	))
	alternativePath := pathfinding.MergePath(g.Route(
		e.From.GridCoord.Offset(alternative),
		e.To.GridCoord.Offset(alternativeEnd),
	))

	if len(preferredPath) <= len(alternativePath) {
		e.Path, e.StartDir, e.EndDir = preferredPath, preferred, preferredEnd
	} else {
		e.Path, e.StartDir, e.EndDir = alternativePath, alternative, alternativeEnd
	}
	g.Logger.Debug("routed edge",
		"from", e.From.Name,
		"to", e.To.Name,
		"crosses_subgraph", g.CrossesSubgraph(e),
		"path", pathfinding.PathToString(e.Path))
}

// Route finds a lattice path between two cells avoiding node blocks.
// When no path exists it falls back to the direct segment [from, to].
func (g *Graph) Route(from, to core.GridCoord) []core.GridCoord {
	path, err := g.FindRoute(from, to)
	if err != nil {
		g.Logger.Warn("no route, drawing direct line", "from", from, "to", to, "err", err)
		return []core.GridCoord{from, to}
	}
	return path
}

// FindRoute is Route without the fallback.
func (g *Graph) FindRoute(from, to core.GridCoord) ([]core.GridCoord, error) {
	return pathfinding.FindPath(from, to, g.IsFree, g.routeBounds(from, to))
}

func (g *Graph) routeBounds(from, to core.GridCoord) pathfinding.Bounds {
	b := pathfinding.Bounds{MaxX: max(from.X, to.X), MaxY: max(from.Y, to.Y)}
	for c := range g.grid {
		b.MaxX = max(b.MaxX, c.X)
		b.MaxY = max(b.MaxY, c.Y)
	}
	b.MaxX += routeMargin
	b.MaxY += routeMargin
	return b
}

// startAndEndDirs picks the preferred and alternative attachment directions
// for an edge from the relative position of its endpoints and the flow.
func (g *Graph) startAndEndDirs(e *Edge) (preferred, preferredEnd, alternative, alternativeEnd core.Direction) {
	lr := g.Direction == diagram.DirectionLR
	if e.IsSelfLoop() {
		if lr {
			return core.Right, core.Down, core.Down, core.Right
		}
		return core.Down, core.Right, core.Right, core.Down
	}

	d := core.GridDirection(*e.From.GridCoord, *e.To.GridCoord)
	switch d {
	case core.LowerRight:
		if lr {
			return core.Down, core.Left, core.Right, core.Up
		}
		return core.Right, core.Up, core.Down, core.Left
	case core.UpperRight:
		if lr {
			return core.Up, core.Left, core.Right, core.Down
		}
		return core.Right, core.Down, core.Up, core.Left
	case core.LowerLeft:
		if lr {
			return core.Down, core.Down, core.Left, core.Up
		}
		return core.Left, core.Up, core.Down, core.Right
	case core.UpperLeft:
		if lr {
			return core.Down, core.Down, core.Left, core.Down
		}
		return core.Right, core.Right, core.Up, core.Right
	}

	// Straight edges that run against the flow go around the side.
	switch {
	case lr && d == core.Left:
		return core.Down, core.Down, core.Left, core.Right
	case !lr && d == core.Up:
		return core.Right, core.Right, core.Up, core.Down
	}
	return d, d.Opposite(), d, d.Opposite()
}

// DetermineLabelLine picks the path segment an edge label is centred on:
// the first segment wide enough for the text, otherwise the widest. The
// segment's middle column grows to fit the label.
func (g *Graph) DetermineLabelLine(e *Edge) {
	if e.Text == "" || len(e.Path) < 2 {
		return
	}
	labelWidth := runewidth.StringWidth(e.Text)

	var best []core.GridCoord
	bestWidth := -1
	for i := 1; i < len(e.Path); i++ {
		line := e.Path[i-1 : i+1]
		w := g.lineWidth(line)
		if w >= labelWidth {
			best = line
			break
		}
		if w > bestWidth {
			best, bestWidth = line, w
		}
	}

	minX, maxX := min(best[0].X, best[1].X), max(best[0].X, best[1].X)
	middleX := minX + (maxX-minX)/2
	g.ColumnWidth[middleX] = max(g.ColumnWidth[middleX], labelWidth+2)
	e.LabelLine = []core.GridCoord{best[0], best[1]}
}

// lineWidth sums the widths of the columns at a segment's endpoints.
func (g *Graph) lineWidth(line []core.GridCoord) int {
	w := 0
	for _, c := range line {
		w += g.ColumnWidth[c.X]
	}
	return w
}
