package render

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridart/config"
	"gridart/diagram"
	"gridart/errors"
	"gridart/layout"
	"gridart/validation"
)

func flow(direction string, edges ...diagram.Edge) *diagram.Diagram {
	d := &diagram.Diagram{Direction: direction}
	seen := map[string]bool{}
	for _, e := range edges {
		for _, id := range []string{e.From, e.To} {
			if !seen[id] {
				seen[id] = true
				d.Nodes = append(d.Nodes, diagram.Node{ID: id})
			}
		}
	}
	d.Edges = edges
	return d
}

func edge(from, to string) diagram.Edge {
	return diagram.Edge{From: from, To: to}
}

func lines(rows ...string) string {
	return strings.Join(rows, "\n")
}

func TestRenderTwoNodes(t *testing.T) {
	out, err := Render(flow("TD", edge("A", "B")), config.DefaultRender())
	require.NoError(t, err)

	want := lines(
		"┌───┐",
		"│   │",
		"│ A │",
		"│   │",
		"└─┬─┘",
		"  │  ",
		"  │  ",
		"  │  ",
		"  │  ",
		"  ▼  ",
		"┌───┐",
		"│   │",
		"│ B │",
		"│   │",
		"└───┘",
	)
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "┼")
	assert.Empty(t, validation.NewLineValidator().Validate(out))
}

func TestRenderFanIn(t *testing.T) {
	d := flow("TD", edge("A", "C"), edge("B", "C"))

	g, err := NewRenderer(nil).Layout(d, config.DefaultRender())
	require.NoError(t, err)
	require.Len(t, g.Bundles, 1)
	b := g.Bundles[0]
	assert.Equal(t, layout.FanIn, b.Kind)
	assert.Len(t, b.Edges, 2)
	require.NotNil(t, b.JunctionPoint)
	c := g.NodeByName("C").GridCoord
	assert.Less(t, b.JunctionPoint.Y, c.Y, "junction must sit above C's block")

	out, err := Render(d, config.DefaultRender())
	require.NoError(t, err)
	want := lines(
		"┌───┐     ┌───┐",
		"│   │     │   │",
		"│ A │     │ B │",
		"│   │     │   │",
		"└─┬─┘     └─┬─┘",
		"  │         │  ",
		"  │         │  ",
		"  ├─────────┘  ",
		"  │            ",
		"  ▼            ",
		"┌───┐          ",
		"│   │          ",
		"│ C │          ",
		"│   │          ",
		"└───┘          ",
	)
	assert.Equal(t, want, out)
	assert.Empty(t, validation.NewLineValidator().Validate(out))
}

func TestRenderASCII(t *testing.T) {
	cfg := config.DefaultRender()
	cfg.UseASCII = true

	out, err := Render(flow("TD", edge("A", "B")), cfg)
	require.NoError(t, err)
	want := lines(
		"+---+",
		"|   |",
		"| A |",
		"|   |",
		"+-+-+",
		"  |  ",
		"  |  ",
		"  |  ",
		"  |  ",
		"  v  ",
		"+---+",
		"|   |",
		"| B |",
		"|   |",
		"+---+",
	)
	assert.Equal(t, want, out)
}

func TestRenderASCIICharset(t *testing.T) {
	cfg := config.DefaultRender()
	cfg.UseASCII = true

	d := &diagram.Diagram{
		Direction: "TD",
		Nodes: []diagram.Node{
			{ID: "A", Label: "start", Shape: "stadium"},
			{ID: "B", Shape: "diamond"},
			{ID: "C", Shape: "cylinder"},
			{ID: "D", Shape: "hexagon"},
			{ID: "E", Shape: "circle"},
		},
		Edges: []diagram.Edge{
			{From: "A", To: "B", Label: "go"},
			{From: "B", To: "C", Style: diagram.StyleDotted},
			{From: "B", To: "D", Style: diagram.StyleThick},
			{From: "C", To: "E"},
			{From: "D", To: "E"},
			{From: "E", To: "A"},
		},
		Subgraphs: []diagram.Subgraph{{ID: "store", Label: "storage", Nodes: []string{"C", "D"}}},
	}

	for _, direction := range []string{"TD", "LR", "BT"} {
		t.Run(direction, func(t *testing.T) {
			d.Direction = direction
			out, err := Render(d, cfg)
			require.NoError(t, err)
			assert.Empty(t, validation.CheckASCII(out))
			assert.Contains(t, out, "storage")
		})
	}
}

func TestRenderLeftToRight(t *testing.T) {
	out, err := Render(flow("LR", edge("A", "B")), config.DefaultRender())
	require.NoError(t, err)
	want := lines(
		"┌───┐     ┌───┐",
		"│   │     │   │",
		"│ A ├────►│ B │",
		"│   │     │   │",
		"└───┘     └───┘",
	)
	assert.Equal(t, want, out)
}

func TestRenderBottomToTop(t *testing.T) {
	out, err := Render(flow("BT", edge("A", "B")), config.DefaultRender())
	require.NoError(t, err)
	want := lines(
		"┌───┐",
		"│   │",
		"│ B │",
		"│   │",
		"└───┘",
		"  ▲  ",
		"  │  ",
		"  │  ",
		"  │  ",
		"  │  ",
		"┌─┴─┐",
		"│   │",
		"│ A │",
		"│   │",
		"└───┘",
	)
	assert.Equal(t, want, out)
}

func TestRenderConfigDirection(t *testing.T) {
	cfg := config.DefaultRender()
	cfg.Direction = "LR"

	fromConfig, err := Render(flow("", edge("A", "B")), cfg)
	require.NoError(t, err)
	explicit, err := Render(flow("LR", edge("A", "B")), config.DefaultRender())
	require.NoError(t, err)
	assert.Equal(t, explicit, fromConfig)
}

func TestRenderEdgeStyles(t *testing.T) {
	tests := []struct {
		name     string
		edge     diagram.Edge
		contains []string
		absent   []string
	}{
		{"dotted", diagram.Edge{From: "A", To: "B", Style: diagram.StyleDotted}, []string{"┆", "▼"}, nil},
		{"thick", diagram.Edge{From: "A", To: "B", Style: diagram.StyleThick}, []string{"┃", "▼"}, nil},
		{"undirected", diagram.Edge{From: "A", To: "B", Undirected: true}, []string{"└─┬─┘", "┌─┴─┐"}, []string{"▼"}},
		{"labeled", diagram.Edge{From: "A", To: "B", Label: "yes"}, []string{"yes", "┌─────┐"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(flow("TD", tt.edge), config.DefaultRender())
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out, s)
			}
			assert.Empty(t, validation.NewLineValidator().Validate(out))
		})
	}
}

func TestRenderSubgraph(t *testing.T) {
	d := flow("TD", edge("A", "B"))
	d.Subgraphs = []diagram.Subgraph{{ID: "s", Label: "group", Nodes: []string{"A", "B"}}}

	g, err := NewRenderer(nil).Layout(d, config.DefaultRender())
	require.NoError(t, err)
	require.Len(t, g.Subgraphs, 1)
	sg := g.Subgraphs[0]

	assert.GreaterOrEqual(t, sg.MinX, 0)
	assert.GreaterOrEqual(t, sg.MinY, 0)
	for _, n := range g.Nodes {
		assert.GreaterOrEqual(t, n.DrawingCoord.X, 0)
		assert.GreaterOrEqual(t, n.DrawingCoord.Y, 0)
		assert.LessOrEqual(t, sg.MinX, n.DrawingCoord.X-2, n.Name)
		assert.LessOrEqual(t, sg.MinY, n.DrawingCoord.Y-2, n.Name)
		assert.GreaterOrEqual(t, sg.MaxX, n.DrawingCoord.X+n.Drawing.MaxX()+2, n.Name)
		assert.GreaterOrEqual(t, sg.MaxY, n.DrawingCoord.Y+n.Drawing.MaxY()+2, n.Name)
	}

	out, err := Render(d, config.DefaultRender())
	require.NoError(t, err)
	rows := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(rows[0], "┌"), "border starts at the origin:\n%s", out)
	assert.Contains(t, rows[1], "group")
	assert.Empty(t, validation.NewLineValidator().Validate(out))
}

func TestRenderEmpty(t *testing.T) {
	out, err := Render(&diagram.Diagram{}, config.DefaultRender())
	require.NoError(t, err)
	assert.Equal(t, "", out)

	c, err := NewRenderer(nil).RenderCanvas(&diagram.Diagram{}, config.DefaultRender())
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestRenderInvalidDiagram(t *testing.T) {
	_, err := Render(nil, config.DefaultRender())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	d := flow("TD", edge("A", "B"))
	d.Edges = append(d.Edges, edge("A", "missing"))
	_, err = Render(d, config.DefaultRender())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestRenderUnknownShapeFallsBack(t *testing.T) {
	d := flow("TD", edge("A", "B"))
	plain, err := Render(d, config.DefaultRender())
	require.NoError(t, err)

	d.Nodes[0].Shape = "trapezoid"
	out, err := Render(d, config.DefaultRender())
	require.NoError(t, err)
	assert.Equal(t, plain, out)
}

func TestRenderIsIdempotent(t *testing.T) {
	d := flow("TD", edge("A", "B"), edge("A", "C"), edge("B", "D"), edge("C", "D"), edge("D", "A"))
	first, err := Render(d, config.DefaultRender())
	require.NoError(t, err)
	second, err := Render(d, config.DefaultRender())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderConcurrently(t *testing.T) {
	d := flow("TD", edge("A", "B"), edge("A", "C"), edge("B", "D"), edge("C", "D"))
	d.Subgraphs = []diagram.Subgraph{{ID: "s", Nodes: []string{"B", "C"}}}
	want, err := Render(d, config.DefaultRender())
	require.NoError(t, err)

	r := NewRenderer(nil)
	var wg sync.WaitGroup
	outs := make([]string, 8)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], _ = r.Render(d, config.DefaultRender())
		}(i)
	}
	wg.Wait()

	for i, out := range outs {
		assert.Equal(t, want, out, "goroutine %d", i)
	}
}

func TestRenderColored(t *testing.T) {
	d := flow("TD", edge("A", "B"))
	plain, err := Render(d, config.DefaultRender())
	require.NoError(t, err)

	r := NewRenderer(nil)
	cfg := config.DefaultRender()
	none, err := r.RenderColored(d, cfg)
	require.NoError(t, err)
	assert.Equal(t, plain, none)

	cfg.ColorMode = config.ColorTrueColor
	colored, err := r.RenderColored(d, cfg)
	require.NoError(t, err)
	assert.Contains(t, colored, "\x1b[")
	assert.Contains(t, colored, "A")
}

func TestRendererValidatorLogs(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(log.New(&buf))
	r.SetValidator(validation.NewLineValidator())

	_, err := r.Render(flow("TD", edge("A", "B")), config.DefaultRender())
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "output validation")
}

func TestRenderCycleKeepsLabels(t *testing.T) {
	d := flow("TD", edge("A", "B"), edge("B", "C"), edge("C", "A"), edge("B", "A"))

	g, err := NewRenderer(nil).Layout(d, config.DefaultRender())
	require.NoError(t, err)
	assert.Empty(t, g.Bundles, "the fan-in on A has no room above row 0")

	out, err := Render(d, config.DefaultRender())
	require.NoError(t, err)
	for _, name := range []string{"A", "B", "C"} {
		assert.Regexp(t, `[│├┤] `+name+` [│├┤]`, out)
	}
}

func TestRenderSubgraphLabelKeepsEdgeVisible(t *testing.T) {
	tests := []struct {
		name      string
		subgraphs []diagram.Subgraph
		labels    []string
	}{
		{
			name:      "single",
			subgraphs: []diagram.Subgraph{{ID: "s", Label: "S", Nodes: []string{"A"}}},
			labels:    []string{"S│"},
		},
		{
			name: "nested",
			subgraphs: []diagram.Subgraph{{
				ID: "outer", Label: "outer",
				Children: []diagram.Subgraph{{ID: "inner", Label: "inner", Nodes: []string{"A"}}},
			}},
			// the inner box is too narrow to move its label off the line
			labels: []string{"outer", "in│er"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := flow("TD", edge("X", "A"))
			d.Subgraphs = tt.subgraphs
			out, err := Render(d, config.DefaultRender())
			require.NoError(t, err)

			rows := strings.Split(out, "\n")
			start := -1
			col := -1
			for y, row := range rows {
				if x := strings.IndexRune(row, '┬'); x >= 0 {
					start, col = y, len([]rune(row[:x]))
					break
				}
			}
			require.GreaterOrEqual(t, start, 0, "no edge leaves X:\n%s", out)

			reached := false
			for y := start + 1; y < len(rows) && !reached; y++ {
				r := []rune(rows[y])
				require.Greater(t, len(r), col)
				assert.Contains(t, "│┼▼", string(r[col]), "row %d hides the edge:\n%s", y, out)
				reached = r[col] == '▼'
			}
			assert.True(t, reached, "edge never reaches A:\n%s", out)
			for _, label := range tt.labels {
				assert.Contains(t, out, label)
			}
		})
	}
}
