// Package layout is the grid layout engine. It places every node on an
// integer lattice as a 3x3 block, sizes the lattice columns and rows from
// node content, routes edges between blocks and converts lattice positions
// into character coordinates.
//
// A Graph is built once per render and mutated in place through its phases:
//
//	g := layout.New(d, cfg, logger)
//	g.PlaceNodes()
//	g.SizeGrid()
//	g.RouteEdges()
//	g.Finalize()
//
// Each Graph owns its occupancy map and canvas; nothing is shared between
// graphs, so separate renders may run concurrently.
package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"gridart/canvas"
	"gridart/config"
	"gridart/core"
	"gridart/diagram"
	"gridart/shapes"
)

// Node is a diagram node being laid out.
type Node struct {
	Name  string
	Label string
	Index int // position in Graph.Nodes
	Shape shapes.Kind
	Hints map[string]string

	// GridCoord is the top-left cell of the node's block, nil until placed.
	GridCoord *core.GridCoord
	// DrawingCoord is the top-left character of the node's box.
	DrawingCoord *core.DrawingCoord
	// Drawing is the rendered node outline, set by Finalize.
	Drawing *canvas.Canvas
	// Attach maps a block direction to a cell on the outline, relative to
	// DrawingCoord.
	Attach shapes.AttachFunc

	dims shapes.Dimensions
}

// Edge is a directed connection being routed.
type Edge struct {
	From, To *Node
	Text     string
	Style    string
	Arrow    bool

	// Path is the full route as turning points, endpoints included.
	Path []core.GridCoord
	// LabelLine is the two-point segment of Path the label is centred on.
	LabelLine []core.GridCoord
	StartDir  core.Direction
	EndDir    core.Direction

	// PathToJunction is the edge's own leg of a bundled route.
	PathToJunction []core.GridCoord
	// BundleID indexes Graph.Bundles, or -1 when the edge is not bundled.
	BundleID int
}

// IsSelfLoop reports whether the edge starts and ends on the same node.
func (e *Edge) IsSelfLoop() bool {
	return e.From == e.To
}

// BundleKind distinguishes converging and diverging bundles.
type BundleKind int

const (
	FanIn BundleKind = iota
	FanOut
)

// String returns "fan-in" or "fan-out".
func (k BundleKind) String() string {
	if k == FanOut {
		return "fan-out"
	}
	return "fan-in"
}

// Bundle is a group of parallel edges routed through one junction point.
type Bundle struct {
	ID   int
	Kind BundleKind
	// Edges are the members, two or more.
	Edges []*Edge
	// SharedNode is the common target (fan-in) or source (fan-out).
	SharedNode *Node
	// OtherNodes holds the far endpoint of each member, parallel to Edges.
	OtherNodes    []*Node
	JunctionPoint *core.GridCoord
	// SharedPath runs between the junction and the shared node.
	SharedPath []core.GridCoord
}

// Subgraph is a container of nodes drawn with its own border.
type Subgraph struct {
	Name  string
	Label string
	// Nodes holds direct and nested members.
	Nodes    []*Node
	Parent   *Subgraph
	Children []*Subgraph
	Depth    int

	// Bounding box in drawing coordinates, inclusive.
	MinX, MinY, MaxX, MaxY int
}

// Contains reports whether n is a member of the subgraph or one of its
// descendants.
func (s *Subgraph) Contains(n *Node) bool {
	for _, m := range s.Nodes {
		if m == n {
			return true
		}
	}
	return false
}

// HasBox reports whether the subgraph has members and therefore a border.
func (s *Subgraph) HasBox() bool {
	return len(s.Nodes) > 0
}

// Graph is the per-render layout state.
type Graph struct {
	Nodes     []*Node
	Edges     []*Edge
	Subgraphs []*Subgraph // every subgraph, parents before children
	Bundles   []*Bundle

	// ColumnWidth and RowHeight map lattice indices to character sizes.
	ColumnWidth map[int]int
	RowHeight   map[int]int

	Canvas *canvas.Canvas
	Config config.Render
	// Direction is the layout flow, TD or LR. Bottom-to-top graphs are laid
	// out as TD and Flip is set.
	Direction string
	Flip      bool

	// OffsetX and OffsetY shift every drawing coordinate so subgraph
	// borders stay on the canvas.
	OffsetX, OffsetY int

	Logger *log.Logger

	grid         map[core.GridCoord]*Node
	nodeSubgraph map[*Node]*Subgraph
	byName       map[string]*Node
}

// New builds a graph from a diagram. The diagram's own direction wins over
// cfg.Direction. A nil logger discards output.
func New(d *diagram.Diagram, cfg config.Render, logger *log.Logger) *Graph {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	flow := cfg.Flow()
	if d.Direction != "" {
		flow = config.Render{Direction: d.Direction}.Flow()
	}

	g := &Graph{
		ColumnWidth:  map[int]int{},
		RowHeight:    map[int]int{},
		Config:       cfg,
		Direction:    flow,
		Logger:       logger,
		grid:         map[core.GridCoord]*Node{},
		nodeSubgraph: map[*Node]*Subgraph{},
		byName:       map[string]*Node{},
	}
	if flow == diagram.DirectionBT {
		g.Direction = diagram.DirectionTD
		g.Flip = true
	}

	for _, dn := range d.Nodes {
		if _, dup := g.byName[dn.ID]; dup {
			continue
		}
		n := &Node{
			Name:  dn.ID,
			Label: dn.DisplayLabel(),
			Index: len(g.Nodes),
			Shape: shapes.ParseKind(dn.Shape),
			Hints: dn.Hints,
		}
		g.Nodes = append(g.Nodes, n)
		g.byName[n.Name] = n
	}

	for _, de := range d.Edges {
		from, to := g.byName[de.From], g.byName[de.To]
		if from == nil || to == nil {
			g.Logger.Warn("skipping edge with unknown endpoint", "from", de.From, "to", de.To)
			continue
		}
		g.Edges = append(g.Edges, &Edge{
			From:     from,
			To:       to,
			Text:     de.Label,
			Style:    de.LineStyle(),
			Arrow:    !de.Undirected,
			BundleID: -1,
		})
	}

	g.buildSubgraphs(d)

	g.Logger.Debug("graph built",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"subgraphs", len(g.Subgraphs),
		"direction", g.Direction,
		"flip", g.Flip)
	return g
}

func (g *Graph) buildSubgraphs(d *diagram.Diagram) {
	index := map[*diagram.Subgraph]*Subgraph{}
	d.Walk(func(ds *diagram.Subgraph, parent *diagram.Subgraph) {
		sg := &Subgraph{Name: ds.ID, Label: ds.DisplayLabel()}
		if parent != nil {
			sg.Parent = index[parent]
			sg.Parent.Children = append(sg.Parent.Children, sg)
			sg.Depth = sg.Parent.Depth + 1
		}
		index[ds] = sg
		g.Subgraphs = append(g.Subgraphs, sg)

		for _, id := range ds.Nodes {
			n := g.byName[id]
			if n == nil {
				continue
			}
			if cur, ok := g.nodeSubgraph[n]; !ok || sg.Depth > cur.Depth {
				g.nodeSubgraph[n] = sg
			}
			for s := sg; s != nil; s = s.Parent {
				if !s.Contains(n) {
					s.Nodes = append(s.Nodes, n)
				}
			}
		}
	})
}

// NodeByName returns the node with the given name, or nil.
func (g *Graph) NodeByName(name string) *Node {
	return g.byName[name]
}

// NodeSubgraph returns the innermost subgraph containing n, or nil.
func (g *Graph) NodeSubgraph(n *Node) *Subgraph {
	return g.nodeSubgraph[n]
}

// CrossesSubgraph reports whether an edge's endpoints sit in different
// innermost subgraphs.
func (g *Graph) CrossesSubgraph(e *Edge) bool {
	return g.NodeSubgraph(e.From) != g.NodeSubgraph(e.To)
}

// Children returns the targets of n's outgoing edges in edge order.
func (g *Graph) Children(n *Node) []*Node {
	var children []*Node
	for _, e := range g.Edges {
		if e.From == n {
			children = append(children, e.To)
		}
	}
	return children
}

// Bundle returns the bundle the edge belongs to, or nil.
func (g *Graph) Bundle(e *Edge) *Bundle {
	if e.BundleID < 0 || e.BundleID >= len(g.Bundles) {
		return nil
	}
	return g.Bundles[e.BundleID]
}

// OwnerAt returns the node occupying a lattice cell, or nil.
func (g *Graph) OwnerAt(c core.GridCoord) *Node {
	return g.grid[c]
}

// IsFree reports whether a lattice cell may be routed through: it lies in
// the non-negative quadrant and no node occupies it.
func (g *Graph) IsFree(c core.GridCoord) bool {
	return c.X >= 0 && c.Y >= 0 && g.grid[c] == nil
}
