package export

import (
	"fmt"
	"regexp"
	"strings"

	"gridart/diagram"
	"gridart/errors"
	"gridart/shapes"
)

// MermaidExporter exports diagrams to Mermaid flowchart syntax. The output
// is accepted by the Mermaid importer, so a diagram survives the round trip
// as long as its node ids are valid Mermaid ids.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

var mermaidID = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)

// shapeDelimiters maps shape kinds to their Mermaid delimiters.
var shapeDelimiters = map[shapes.Kind][2]string{
	shapes.Rectangle:  {"[", "]"},
	shapes.Rounded:    {"(", ")"},
	shapes.Stadium:    {"([", "])"},
	shapes.Circle:     {"((", "))"},
	shapes.Diamond:    {"{", "}"},
	shapes.Hexagon:    {"{{", "}}"},
	shapes.Subroutine: {"[[", "]]"},
	shapes.Cylinder:   {"[(", ")]"},
	shapes.Asymmetric: {">", "]"},
}

// Export writes nodes first, then subgraph blocks listing their members,
// then edges. Node ids that are not valid Mermaid ids are replaced by n<i>
// and keep their original id as the label.
func (e *MermaidExporter) Export(d *diagram.Diagram) (string, error) {
	if d == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "diagram is nil")
	}

	direction := d.Direction
	if direction == "" {
		direction = diagram.DirectionTD
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "graph %s\n", direction)

	ids := make(map[string]string, len(d.Nodes))
	for i, node := range d.Nodes {
		id, label := node.ID, node.Label
		if !mermaidID.MatchString(id) {
			id = fmt.Sprintf("n%d", i)
			if label == "" {
				label = node.ID
			}
		}
		ids[node.ID] = id

		if node.Shape == "" && label == "" {
			fmt.Fprintf(&sb, "    %s\n", id)
			continue
		}
		if label == "" {
			label = id
		}
		delim := shapeDelimiters[shapes.ParseKind(node.Shape)]
		fmt.Fprintf(&sb, "    %s%s%s%s\n", id, delim[0], e.escapeLabel(label), delim[1])
	}

	var writeSubgraph func(s diagram.Subgraph, depth int)
	writeSubgraph = func(s diagram.Subgraph, depth int) {
		indent := strings.Repeat("    ", depth)
		if s.Label != "" && s.Label != s.ID {
			fmt.Fprintf(&sb, "%ssubgraph %s [%s]\n", indent, s.ID, e.escapeLabel(s.Label))
		} else {
			fmt.Fprintf(&sb, "%ssubgraph %s\n", indent, s.ID)
		}
		for _, member := range s.Nodes {
			fmt.Fprintf(&sb, "%s    %s\n", indent, ids[member])
		}
		for _, child := range s.Children {
			writeSubgraph(child, depth+1)
		}
		fmt.Fprintf(&sb, "%send\n", indent)
	}
	for _, s := range d.Subgraphs {
		writeSubgraph(s, 1)
	}

	for _, edge := range d.Edges {
		from, ok := ids[edge.From]
		if !ok {
			continue
		}
		to, ok := ids[edge.To]
		if !ok {
			continue
		}

		link := e.link(edge)
		if edge.Label != "" {
			fmt.Fprintf(&sb, "    %s %s|%s| %s\n", from, link, e.escapeLabel(edge.Label), to)
		} else {
			fmt.Fprintf(&sb, "    %s %s %s\n", from, link, to)
		}
	}

	return sb.String(), nil
}

// link returns the Mermaid link operator for an edge's style and direction.
func (e *MermaidExporter) link(edge diagram.Edge) string {
	switch edge.LineStyle() {
	case diagram.StyleDotted:
		if edge.Undirected {
			return "-.-"
		}
		return "-.->"
	case diagram.StyleThick:
		if edge.Undirected {
			return "==="
		}
		return "==>"
	default:
		if edge.Undirected {
			return "---"
		}
		return "-->"
	}
}

// escapeLabel quotes labels holding delimiter characters. Mermaid has no
// escape for a quote inside quotes, so quotes become the #quot; entity.
func (e *MermaidExporter) escapeLabel(label string) string {
	if !strings.ContainsAny(label, `[](){}|<>"`) {
		return label
	}
	label = strings.ReplaceAll(label, `"`, "#quot;")
	label = strings.ReplaceAll(label, "|", "#124;")
	return `"` + label + `"`
}

// Extension returns the recommended file extension
func (e *MermaidExporter) Extension() string {
	return ".mmd"
}

// FormatName returns the format name
func (e *MermaidExporter) FormatName() string {
	return "Mermaid"
}
