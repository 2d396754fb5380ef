package layout

import (
	"gridart/core"
	"gridart/diagram"
)

// levelStep is the lattice distance between consecutive levels and between
// siblings on one level: a 3x3 block plus one spacing cell.
const levelStep = 4

// PlaceNodes assigns every node a block on the lattice.
//
// Nodes that are never the target of an edge are roots and go on level 0,
// one step apart. Walking nodes in declaration order, every placed node
// puts its unplaced children one level deeper, using a high-water mark per
// level so siblings do not collide. Nodes left over (cycles with no root)
// promote the first of them to an extra root and the walk repeats.
func (g *Graph) PlaceNodes() {
	highest := map[int]int{}
	roots := g.roots()

	var external, internal []*Node
	for _, n := range roots {
		if g.NodeSubgraph(n) == nil {
			external = append(external, n)
		} else if len(g.Children(n)) > 0 {
			internal = append(internal, n)
		}
	}
	separate := g.Direction == diagram.DirectionLR && len(external) > 0 && len(internal) > 0

	if separate {
		// Subgraph roots move one level in to leave room for the border.
		for _, n := range roots {
			if !contains(internal, n) {
				g.placeAtLevel(n, 0, highest)
			}
		}
		for _, n := range internal {
			g.placeAtLevel(n, levelStep, highest)
		}
	} else {
		for _, n := range roots {
			g.placeAtLevel(n, 0, highest)
		}
	}

	for {
		g.placeChildren(highest)
		next := g.firstUnplaced()
		if next == nil {
			break
		}
		g.Logger.Debug("no root reaches node, promoting it", "node", next.Name)
		g.placeAtLevel(next, 0, highest)
	}
}

// roots returns the nodes no edge points at, ignoring self loops.
func (g *Graph) roots() []*Node {
	targeted := make(map[*Node]bool, len(g.Nodes))
	for _, e := range g.Edges {
		if !e.IsSelfLoop() {
			targeted[e.To] = true
		}
	}
	var roots []*Node
	for _, n := range g.Nodes {
		if !targeted[n] {
			roots = append(roots, n)
		}
	}
	return roots
}

// placeChildren walks nodes in declaration order until no placed node has
// an unplaced child left.
func (g *Graph) placeChildren(highest map[int]int) {
	for progress := true; progress; {
		progress = false
		for _, n := range g.Nodes {
			if n.GridCoord == nil {
				continue
			}
			childLevel := g.level(*n.GridCoord) + levelStep
			for _, child := range g.Children(n) {
				if child.GridCoord != nil {
					continue
				}
				g.placeAtLevel(child, childLevel, highest)
				progress = true
			}
		}
	}
}

// placeAtLevel reserves the next free slot on a level and advances the
// level's high-water mark past it.
func (g *Graph) placeAtLevel(n *Node, level int, highest map[int]int) {
	requested := core.GridCoord{X: highest[level], Y: level}
	if g.Direction == diagram.DirectionLR {
		requested = core.GridCoord{X: level, Y: highest[level]}
	}
	placed := g.ReserveSpot(n, requested)
	highest[level] = g.position(placed) + levelStep
}

// level returns the coordinate along the flow axis.
func (g *Graph) level(c core.GridCoord) int {
	if g.Direction == diagram.DirectionLR {
		return c.X
	}
	return c.Y
}

// position returns the coordinate across the flow axis.
func (g *Graph) position(c core.GridCoord) int {
	if g.Direction == diagram.DirectionLR {
		return c.Y
	}
	return c.X
}

func (g *Graph) firstUnplaced() *Node {
	for _, n := range g.Nodes {
		if n.GridCoord == nil {
			return n
		}
	}
	return nil
}

// ReserveSpot claims the 3x3 block at requested for n. When any cell of the
// block is taken, the request moves one step across the flow axis (down
// for LR, right for TD) until a free block is found. The claimed block's
// top-left cell is recorded on the node and returned.
func (g *Graph) ReserveSpot(n *Node, requested core.GridCoord) core.GridCoord {
	c := requested
	for attempts := 0; attempts <= len(g.grid) && g.blockTaken(c); attempts++ {
		if g.Direction == diagram.DirectionLR {
			c.Y += levelStep
		} else {
			c.X += levelStep
		}
	}

	for dx := 0; dx < 3; dx++ {
		for dy := 0; dy < 3; dy++ {
			g.grid[core.GridCoord{X: c.X + dx, Y: c.Y + dy}] = n
		}
	}
	n.GridCoord = &c
	g.Logger.Debug("placed node", "node", n.Name, "requested", requested, "coord", c)
	return c
}

func (g *Graph) blockTaken(c core.GridCoord) bool {
	for dx := 0; dx < 3; dx++ {
		for dy := 0; dy < 3; dy++ {
			if g.grid[core.GridCoord{X: c.X + dx, Y: c.Y + dy}] != nil {
				return true
			}
		}
	}
	return false
}

func contains(nodes []*Node, n *Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}
