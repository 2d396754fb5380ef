// Package diagram defines the parsed graph description the renderer consumes:
// nodes, edges and nested subgraphs, plus a flow direction.
//
// Diagrams come from the importers (Mermaid text, JSON or YAML documents)
// and are never modified by the renderer.
package diagram

// Flow directions.
const (
	DirectionTD = "TD" // top-down
	DirectionTB = "TB" // alias of TD
	DirectionLR = "LR" // left-to-right
	DirectionBT = "BT" // bottom-to-top, rendered as TD then flipped
)

// Edge line styles.
const (
	StyleSolid  = "solid"
	StyleDotted = "dotted"
	StyleThick  = "thick"
)

// Node is a box in the diagram.
type Node struct {
	ID    string            `json:"id" yaml:"id" validate:"required"`
	Label string            `json:"label,omitempty" yaml:"label,omitempty"`
	Shape string            `json:"shape,omitempty" yaml:"shape,omitempty"`
	Hints map[string]string `json:"hints,omitempty" yaml:"hints,omitempty"` // Visual hints (border, color)
}

// DisplayLabel returns the label, or the ID when no label is set.
func (n Node) DisplayLabel() string {
	if n.Label == "" {
		return n.ID
	}
	return n.Label
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From       string `json:"from" yaml:"from" validate:"required"`
	To         string `json:"to" yaml:"to" validate:"required"`
	Label      string `json:"label,omitempty" yaml:"label,omitempty"`
	Style      string `json:"style,omitempty" yaml:"style,omitempty" validate:"omitempty,oneof=solid dotted thick"`
	Undirected bool   `json:"undirected,omitempty" yaml:"undirected,omitempty"` // Draw without an arrow head
}

// LineStyle returns the edge style, defaulting to solid.
func (e Edge) LineStyle() string {
	if e.Style == "" {
		return StyleSolid
	}
	return e.Style
}

// Subgraph is a named container of nodes. Subgraphs nest through Children.
type Subgraph struct {
	ID       string     `json:"id" yaml:"id" validate:"required"`
	Label    string     `json:"label,omitempty" yaml:"label,omitempty"`
	Nodes    []string   `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Children []Subgraph `json:"children,omitempty" yaml:"children,omitempty" validate:"dive"`
}

// DisplayLabel returns the label, or the ID when no label is set.
func (s Subgraph) DisplayLabel() string {
	if s.Label == "" {
		return s.ID
	}
	return s.Label
}

// Diagram is a complete graph description.
type Diagram struct {
	Direction string     `json:"direction,omitempty" yaml:"direction,omitempty" validate:"omitempty,oneof=TD TB LR BT"`
	Nodes     []Node     `json:"nodes" yaml:"nodes" validate:"dive"`
	Edges     []Edge     `json:"edges,omitempty" yaml:"edges,omitempty" validate:"dive"`
	Subgraphs []Subgraph `json:"subgraphs,omitempty" yaml:"subgraphs,omitempty" validate:"dive"`
}

// IsEmpty reports whether the diagram has nothing to draw. Subgraphs
// without nodes draw nothing.
func (d *Diagram) IsEmpty() bool {
	return d == nil || len(d.Nodes) == 0
}

// NodeByID returns the node with the given ID.
func (d *Diagram) NodeByID(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Walk calls fn for every subgraph, parents before children.
func (d *Diagram) Walk(fn func(s *Subgraph, parent *Subgraph)) {
	var walk func(list []Subgraph, parent *Subgraph)
	walk = func(list []Subgraph, parent *Subgraph) {
		for i := range list {
			fn(&list[i], parent)
			walk(list[i].Children, &list[i])
		}
	}
	walk(d.Subgraphs, nil)
}

// Clone creates a deep copy of the diagram.
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}

	clone := &Diagram{
		Direction: d.Direction,
		Nodes:     make([]Node, len(d.Nodes)),
		Edges:     append([]Edge(nil), d.Edges...),
		Subgraphs: cloneSubgraphs(d.Subgraphs),
	}

	for i, node := range d.Nodes {
		clone.Nodes[i] = node
		if node.Hints != nil {
			clone.Nodes[i].Hints = make(map[string]string, len(node.Hints))
			for k, v := range node.Hints {
				clone.Nodes[i].Hints[k] = v
			}
		}
	}

	return clone
}

func cloneSubgraphs(list []Subgraph) []Subgraph {
	if list == nil {
		return nil
	}
	out := make([]Subgraph, len(list))
	for i, s := range list {
		out[i] = Subgraph{
			ID:       s.ID,
			Label:    s.Label,
			Nodes:    append([]string(nil), s.Nodes...),
			Children: cloneSubgraphs(s.Children),
		}
	}
	return out
}
