package importer

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"gridart/diagram"
	"gridart/errors"
)

// MermaidImporter imports Mermaid flowcharts.
//
// The supported subset covers the header (graph or flowchart with TD, TB,
// LR or BT), node shapes, solid/dotted/thick links with and without arrow
// heads, link labels in both the pipe and inline form, chains, the &
// operator, nested subgraphs and %% comments. Styling statements (style,
// classDef, class, linkStyle, click) are accepted and ignored.
type MermaidImporter struct{}

// NewMermaidImporter creates a new Mermaid importer
func NewMermaidImporter() *MermaidImporter {
	return &MermaidImporter{}
}

var (
	headerPattern   = regexp.MustCompile(`^(?:graph|flowchart)(?:\s+([A-Za-z]{2}))?$`)
	subgraphPattern = regexp.MustCompile(`^subgraph\s+([^\s\[]+)\s*(?:\[(.*)\])?$`)
	idPattern       = regexp.MustCompile(`^[\p{L}\p{N}_]+`)
	classPattern    = regexp.MustCompile(`^:::[\w-]+`)

	// pipeLink matches -->, ---, -.->, -.-, ==>, === and their longer
	// forms, with an optional |label|.
	pipeLink = regexp.MustCompile(`^(-{2,}>|-{3,}|-\.+->|-\.+-|={2,}>|={3,})(?:\s*\|([^|]*)\|)?`)
	// textLink matches the inline label form: -- text -->, -. text .->,
	// == text ==>.
	textLink = regexp.MustCompile(`^(--|-\.|==)\s*([^|>]+?)\s*(-{2,}>|-{3,}|\.+->|\.+-|={2,}>|={3,})`)
)

// ignoredStatements are styling keywords that carry no structure.
var ignoredStatements = []string{"style ", "classDef ", "class ", "linkStyle ", "click ", "direction "}

// nodeShapes maps Mermaid shape delimiters to shape tags, longest opener first.
var nodeShapes = []struct {
	open, close, shape string
}{
	{"(((", ")))", "circle"},
	{"([", "])", "stadium"},
	{"((", "))", "circle"},
	{"[[", "]]", "subroutine"},
	{"[(", ")]", "cylinder"},
	{"{{", "}}", "hexagon"},
	{"[", "]", "rectangle"},
	{"(", ")", "rounded"},
	{"{", "}", "diamond"},
	{">", "]", "asymmetric"},
}

// CanImport checks if the first statement is a flowchart header.
func (m *MermaidImporter) CanImport(content string) bool {
	stmts := statements(content)
	return len(stmts) > 0 && headerPattern.MatchString(stmts[0].text)
}

// Import parses a flowchart and validates the resulting diagram.
func (m *MermaidImporter) Import(content string) (*diagram.Diagram, error) {
	p := newFlowchartParser()
	if err := p.parse(content); err != nil {
		return nil, err
	}
	d := p.result()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// FormatName returns the format name
func (m *MermaidImporter) FormatName() string {
	return "Mermaid"
}

// Extensions returns common file extensions
func (m *MermaidImporter) Extensions() []string {
	return []string{".mmd", ".mermaid"}
}

type statement struct {
	text string
	line int
}

// statements returns the non-empty, non-comment lines of content, trimmed
// and without a trailing semicolon.
func statements(content string) []statement {
	var out []statement
	sc := bufio.NewScanner(strings.NewReader(content))
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%%") {
			continue
		}
		text = strings.TrimSpace(strings.TrimSuffix(text, ";"))
		if text == "" {
			continue
		}
		out = append(out, statement{text: text, line: n})
	}
	return out
}

// subgraphBuilder collects a subgraph while its block is open.
type subgraphBuilder struct {
	id, label string
	nodes     []string
	children  []*subgraphBuilder
}

func (b *subgraphBuilder) build() diagram.Subgraph {
	s := diagram.Subgraph{ID: b.id, Label: b.label, Nodes: b.nodes}
	for _, c := range b.children {
		s.Children = append(s.Children, c.build())
	}
	return s
}

// flowchartParser builds a diagram statement by statement. A node joins
// the first subgraph block it is mentioned in; later mentions elsewhere
// leave it there.
type flowchartParser struct {
	d      *diagram.Diagram
	nodes  map[string]int
	member map[string]bool
	open   []*subgraphBuilder
	roots  []*subgraphBuilder
	line   int
}

func newFlowchartParser() *flowchartParser {
	return &flowchartParser{
		d:      &diagram.Diagram{},
		nodes:  map[string]int{},
		member: map[string]bool{},
	}
}

func (p *flowchartParser) errorf(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidFormat, "mermaid line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *flowchartParser) parse(content string) error {
	stmts := statements(content)
	if len(stmts) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "mermaid: empty input")
	}

	p.line = stmts[0].line
	if err := p.header(stmts[0].text); err != nil {
		return err
	}

	for _, st := range stmts[1:] {
		p.line = st.line
		if err := p.statement(st.text); err != nil {
			return err
		}
	}

	if len(p.open) > 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "mermaid: subgraph %q is never closed", p.open[len(p.open)-1].id)
	}
	return nil
}

func (p *flowchartParser) header(text string) error {
	m := headerPattern.FindStringSubmatch(text)
	if m == nil {
		return p.errorf("expected a graph or flowchart header, got %q", text)
	}
	switch dir := strings.ToUpper(m[1]); dir {
	case "":
		p.d.Direction = diagram.DirectionTD
	case diagram.DirectionTD, diagram.DirectionTB, diagram.DirectionLR, diagram.DirectionBT:
		p.d.Direction = dir
	default:
		return p.errorf("unsupported direction %q", m[1])
	}
	return nil
}

func (p *flowchartParser) statement(text string) error {
	switch {
	case text == "end":
		if len(p.open) == 0 {
			return p.errorf("end without subgraph")
		}
		p.open = p.open[:len(p.open)-1]
		return nil
	case strings.HasPrefix(text, "subgraph ") || text == "subgraph":
		return p.subgraph(text)
	}
	for _, kw := range ignoredStatements {
		if strings.HasPrefix(text, kw) {
			return nil
		}
	}
	return p.chain(text)
}

func (p *flowchartParser) subgraph(text string) error {
	b := &subgraphBuilder{}
	rest := strings.TrimSpace(strings.TrimPrefix(text, "subgraph"))
	switch m := subgraphPattern.FindStringSubmatch(text); {
	case rest == "":
		return p.errorf("subgraph needs an id")
	case m != nil:
		b.id, b.label = unquote(m[1]), unquote(m[2])
	default:
		// A bare title doubles as the id.
		b.id = unquote(rest)
		b.label = b.id
	}

	if n := len(p.open); n > 0 {
		parent := p.open[n-1]
		parent.children = append(parent.children, b)
	} else {
		p.roots = append(p.roots, b)
	}
	p.open = append(p.open, b)
	return nil
}

// chain parses "group (link group)*" where a group is one or more node
// references joined by &. Every link connects each node on its left to
// each node on its right.
func (p *flowchartParser) chain(text string) error {
	c := &cursor{s: text}
	left, err := p.group(c)
	if err != nil {
		return err
	}
	for {
		c.skipSpace()
		if c.done() {
			return nil
		}
		l, ok := readLink(c)
		if !ok {
			return p.errorf("unexpected %q", c.rest())
		}
		right, err := p.group(c)
		if err != nil {
			return err
		}
		for _, from := range left {
			for _, to := range right {
				p.d.Edges = append(p.d.Edges, diagram.Edge{
					From:       from,
					To:         to,
					Label:      l.label,
					Style:      l.style,
					Undirected: l.undirected,
				})
			}
		}
		left = right
	}
}

func (p *flowchartParser) group(c *cursor) ([]string, error) {
	var ids []string
	for {
		c.skipSpace()
		id, err := p.nodeRef(c)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		c.skipSpace()
		if !c.consume("&") {
			return ids, nil
		}
	}
}

// nodeRef reads an id with an optional shape and class suffix and records
// the node. A later definition replaces an earlier label and shape.
func (p *flowchartParser) nodeRef(c *cursor) (string, error) {
	id := idPattern.FindString(c.rest())
	if id == "" {
		if c.done() {
			return "", p.errorf("expected a node id at end of line")
		}
		return "", p.errorf("expected a node id at %q", c.rest())
	}
	c.pos += len(id)

	var label, shape string
	for _, s := range nodeShapes {
		if !c.consume(s.open) {
			continue
		}
		l, err := readLabel(c, s.close)
		if err != nil {
			return "", p.errorf("node %s: %v", id, err)
		}
		label, shape = l, s.shape
		break
	}
	if m := classPattern.FindString(c.rest()); m != "" {
		c.pos += len(m)
	}

	p.addNode(id, label, shape)
	return id, nil
}

func (p *flowchartParser) addNode(id, label, shape string) {
	i, ok := p.nodes[id]
	if !ok {
		i = len(p.d.Nodes)
		p.nodes[id] = i
		p.d.Nodes = append(p.d.Nodes, diagram.Node{ID: id})
	}
	if shape != "" {
		p.d.Nodes[i].Shape = shape
		if label != id {
			p.d.Nodes[i].Label = label
		}
	}

	if n := len(p.open); n > 0 && !p.member[id] {
		p.member[id] = true
		inner := p.open[n-1]
		inner.nodes = append(inner.nodes, id)
	}
}

func (p *flowchartParser) result() *diagram.Diagram {
	for _, b := range p.roots {
		p.d.Subgraphs = append(p.d.Subgraphs, b.build())
	}
	return p.d
}

type link struct {
	label      string
	style      string
	undirected bool
}

func readLink(c *cursor) (link, bool) {
	var arrow, label string
	if m := pipeLink.FindStringSubmatch(c.rest()); m != nil {
		c.pos += len(m[0])
		arrow, label = m[1], m[2]
	} else if m := textLink.FindStringSubmatch(c.rest()); m != nil {
		c.pos += len(m[0])
		arrow, label = m[1]+m[3], m[2]
	} else {
		return link{}, false
	}

	l := link{
		label:      unquote(label),
		style:      diagram.StyleSolid,
		undirected: !strings.HasSuffix(arrow, ">"),
	}
	switch {
	case strings.Contains(arrow, "."):
		l.style = diagram.StyleDotted
	case strings.Contains(arrow, "="):
		l.style = diagram.StyleThick
	}
	return l, true
}

// readLabel reads shape text up to closer. Quoted text may contain the
// closing delimiter.
func readLabel(c *cursor, closer string) (string, error) {
	if strings.HasPrefix(c.rest(), `"`) {
		end := strings.IndexByte(c.s[c.pos+1:], '"')
		if end < 0 {
			return "", fmt.Errorf("unterminated quote")
		}
		label := c.s[c.pos+1 : c.pos+1+end]
		c.pos += end + 2
		if !c.consume(closer) {
			return "", fmt.Errorf("missing %q", closer)
		}
		return label, nil
	}

	end := strings.Index(c.rest(), closer)
	if end < 0 {
		return "", fmt.Errorf("missing %q", closer)
	}
	label := strings.TrimSpace(c.rest()[:end])
	c.pos += end + len(closer)
	return label, nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// cursor walks a statement left to right.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) rest() string { return c.s[c.pos:] }

func (c *cursor) done() bool { return c.pos >= len(c.s) }

func (c *cursor) skipSpace() {
	for c.pos < len(c.s) && (c.s[c.pos] == ' ' || c.s[c.pos] == '\t') {
		c.pos++
	}
}

func (c *cursor) consume(prefix string) bool {
	if strings.HasPrefix(c.rest(), prefix) {
		c.pos += len(prefix)
		return true
	}
	return false
}
