package connections

import (
	"fmt"

	"gridart/core"
	"gridart/diagram"
	"gridart/layout"
	"gridart/pathfinding"
)

// MinBundleSize is the smallest number of edges that form a bundle.
const MinBundleSize = 2

// AnalyzeEdgeBundles finds fan-in and fan-out bundles and records them on
// the graph. It only runs for top-down layouts; left-to-right edges already
// meet at corners.
//
// Fan-in groups (edges sharing a target) are claimed first. Fan-out groups
// (edges sharing a source) are formed from the edges still unclaimed, so an
// edge belongs to at most one bundle.
func AnalyzeEdgeBundles(g *layout.Graph) {
	if g.Direction != diagram.DirectionTD {
		return
	}

	for _, grp := range GroupEdges(g.Edges, ByTarget) {
		if CanBundle(g, grp.Edges) {
			addBundle(g, layout.FanIn, grp)
		}
	}

	var unclaimed []*layout.Edge
	for _, e := range g.Edges {
		if e.BundleID < 0 {
			unclaimed = append(unclaimed, e)
		}
	}
	for _, grp := range GroupEdges(unclaimed, BySource) {
		if CanBundle(g, grp.Edges) {
			addBundle(g, layout.FanOut, grp)
		}
	}
}

// CanBundle reports whether a group of edges may share a junction: there
// are at least MinBundleSize of them, they share a style, none is labeled
// or a self loop, and each pairs the same source and target subgraphs as
// the first.
func CanBundle(g *layout.Graph, edges []*layout.Edge) bool {
	if len(edges) < MinBundleSize {
		return false
	}
	first := edges[0]
	fromSG, toSG := g.NodeSubgraph(first.From), g.NodeSubgraph(first.To)
	for _, e := range edges {
		if e.Text != "" || e.IsSelfLoop() || e.Style != first.Style {
			return false
		}
		if g.NodeSubgraph(e.From) != fromSG || g.NodeSubgraph(e.To) != toSG {
			return false
		}
	}
	return true
}

func addBundle(g *layout.Graph, kind layout.BundleKind, grp EdgeGroup) {
	b := &layout.Bundle{
		ID:         len(g.Bundles),
		Kind:       kind,
		Edges:      grp.Edges,
		SharedNode: grp.Node,
	}
	for _, e := range grp.Edges {
		if e.BundleID >= 0 {
			panic(fmt.Sprintf("edge %s->%s claimed by bundles %d and %d", e.From.Name, e.To.Name, e.BundleID, b.ID))
		}
		e.BundleID = b.ID
		if kind == layout.FanIn {
			b.OtherNodes = append(b.OtherNodes, e.From)
		} else {
			b.OtherNodes = append(b.OtherNodes, e.To)
		}
	}
	g.Bundles = append(g.Bundles, b)
	g.Logger.Debug("bundled edges", "kind", kind, "shared", grp.Key, "edges", len(grp.Edges))
}

// JunctionPoint returns the lattice cell where a bundle's edges meet.
// Fan-in junctions sit one cell before the shared target's entry side,
// fan-out junctions one cell past the shared source's whole block.
func JunctionPoint(b *layout.Bundle, direction string) core.GridCoord {
	c := *b.SharedNode.GridCoord
	lr := direction == diagram.DirectionLR
	switch {
	case b.Kind == layout.FanIn && lr:
		return core.GridCoord{X: c.X - 1, Y: c.Y + 1}
	case b.Kind == layout.FanIn:
		return core.GridCoord{X: c.X + 1, Y: c.Y - 1}
	case lr:
		return core.GridCoord{X: c.X + 3, Y: c.Y + 1}
	default:
		return core.GridCoord{X: c.X + 1, Y: c.Y + 3}
	}
}

// ProcessBundles replaces each bundle member's path with a route through
// the bundle's junction point. Run after RouteEdges and before Finalize.
//
// A bundle whose junction is off the lattice or taken by a node, or whose
// legs cannot all be routed, is dissolved: its edges keep the paths
// RouteEdges gave them. Surviving bundles are renumbered.
func ProcessBundles(g *layout.Graph) {
	exit, entry := core.Down, core.Up
	if g.Direction == diagram.DirectionLR {
		exit, entry = core.Right, core.Left
	}

	kept := make([]*layout.Bundle, 0, len(g.Bundles))
	for _, b := range g.Bundles {
		if !routeBundle(g, b, exit, entry) {
			for _, e := range b.Edges {
				e.BundleID = -1
				e.PathToJunction = nil
			}
			g.Logger.Debug("dissolved bundle", "kind", b.Kind, "shared", b.SharedNode.Name,
				"junction", JunctionPoint(b, g.Direction))
			continue
		}
		b.ID = len(kept)
		for _, e := range b.Edges {
			e.BundleID = b.ID
		}
		kept = append(kept, b)
	}
	g.Bundles = kept
}

// routeBundle routes every leg of b through its junction and commits the
// result only when all of them succeed.
func routeBundle(g *layout.Graph, b *layout.Bundle, exit, entry core.Direction) bool {
	junction := JunctionPoint(b, g.Direction)
	if !g.IsFree(junction) {
		return false
	}
	shared := *b.SharedNode.GridCoord

	var sharedPath []core.GridCoord
	var err error
	if b.Kind == layout.FanIn {
		sharedPath, err = g.FindRoute(junction, shared.Offset(entry))
	} else {
		sharedPath, err = g.FindRoute(shared.Offset(exit), junction)
	}
	if err != nil {
		return false
	}
	sharedPath = pathfinding.MergePath(sharedPath)

	legs := make([][]core.GridCoord, len(b.Edges))
	for i, e := range b.Edges {
		var leg []core.GridCoord
		if b.Kind == layout.FanIn {
			leg, err = g.FindRoute(e.From.GridCoord.Offset(exit), junction)
		} else {
			leg, err = g.FindRoute(junction, e.To.GridCoord.Offset(entry))
		}
		if err != nil {
			return false
		}
		legs[i] = pathfinding.MergePath(leg)
	}

	b.JunctionPoint = &junction
	b.SharedPath = sharedPath
	for i, e := range b.Edges {
		e.PathToJunction = legs[i]
		if b.Kind == layout.FanIn {
			e.Path = join(legs[i], sharedPath)
		} else {
			e.Path = join(sharedPath, legs[i])
		}
		e.StartDir, e.EndDir = exit, entry
		g.IncreaseGridSizeForPath(e.Path)
	}

	g.Logger.Debug("routed bundle", "kind", b.Kind, "shared", b.SharedNode.Name,
		"junction", junction, "shared_path", pathfinding.PathToString(sharedPath))
	return true
}

// join concatenates two paths that meet at a common point, dropping the
// duplicate.
func join(first, second []core.GridCoord) []core.GridCoord {
	full := make([]core.GridCoord, 0, len(first)+len(second))
	full = append(full, first...)
	if len(second) > 0 {
		full = append(full, second[1:]...)
	}
	return pathfinding.MergePath(full)
}
