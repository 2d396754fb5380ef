// Package render turns a diagram into text. It runs the layout phases in
// order, composites node outlines, edges and subgraph borders onto one
// canvas and serializes it.
//
// The zero-configuration entry point is the package-level Render:
//
//	out, err := render.Render(d, config.DefaultRender())
//
// A Renderer adds logging, output validation and colour.
package render

import (
	"io"

	"github.com/charmbracelet/log"

	"gridart/canvas"
	"gridart/config"
	"gridart/connections"
	"gridart/diagram"
	"gridart/errors"
	"gridart/layout"
	"gridart/theme"
	"gridart/validation"
)

// maxReportedIssues caps how many validation issues are logged per render.
const maxReportedIssues = 5

// Renderer renders diagrams. A Renderer holds no per-render state and may
// be shared between goroutines.
type Renderer struct {
	// Logger receives phase diagnostics. Nil discards them.
	Logger *log.Logger
	// Theme colours RenderColored output. Nil means theme.Default.
	Theme *theme.Theme
	// Output is the terminal RenderColored output is meant for. It is only
	// consulted to detect the colour profile in auto mode.
	Output io.Writer

	validator *validation.LineValidator
}

// NewRenderer creates a renderer logging to logger.
func NewRenderer(logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Renderer{Logger: logger}
}

// SetValidator enables output validation. Issues are logged as warnings
// and never fail the render.
func (r *Renderer) SetValidator(v *validation.LineValidator) {
	r.validator = v
}

// Render renders d with a default Renderer.
func Render(d *diagram.Diagram, cfg config.Render) (string, error) {
	return NewRenderer(nil).Render(d, cfg)
}

// Render renders d as plain text. An empty diagram renders as "".
func (r *Renderer) Render(d *diagram.Diagram, cfg config.Render) (string, error) {
	c, err := r.RenderCanvas(d, cfg)
	if err != nil || c == nil {
		return "", err
	}
	out := c.String()
	r.validate(out, cfg)
	return out, nil
}

// RenderColored renders d with ANSI colour escapes chosen by the theme and
// cfg.ColorMode. Colour mode none produces the same text as Render.
func (r *Renderer) RenderColored(d *diagram.Diagram, cfg config.Render) (string, error) {
	c, err := r.RenderCanvas(d, cfg)
	if err != nil || c == nil {
		return "", err
	}
	r.validate(c.String(), cfg)

	t := r.Theme
	if t == nil {
		t = theme.Default()
	}
	return theme.NewPainter(t, theme.ProfileFor(cfg.ColorMode, r.Output)).Paint(c), nil
}

// RenderCanvas renders d onto a canvas with a role layer. It returns a nil
// canvas for an empty diagram.
func (r *Renderer) RenderCanvas(d *diagram.Diagram, cfg config.Render) (*canvas.Canvas, error) {
	g, err := r.Layout(d, cfg)
	if err != nil || g == nil {
		return nil, err
	}
	return draw(g), nil
}

// Layout validates d and runs every layout phase, leaving the graph ready
// to draw. It returns a nil graph for an empty diagram.
func (r *Renderer) Layout(d *diagram.Diagram, cfg config.Render) (*layout.Graph, error) {
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil diagram")
	}
	if d.IsEmpty() {
		return nil, nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	g := layout.New(d, cfg, r.logger())
	connections.AnalyzeEdgeBundles(g)
	g.PlaceNodes()
	g.SizeGrid()
	g.RouteEdges()
	connections.ProcessBundles(g)
	g.Finalize()
	return g, nil
}

func (r *Renderer) validate(out string, cfg config.Render) {
	if r.validator == nil {
		return
	}
	issues := r.validator.Validate(out)
	if cfg.UseASCII {
		issues = append(issues, validation.CheckASCII(out)...)
	}
	for i, issue := range issues {
		if i == maxReportedIssues {
			r.logger().Warn("more validation issues", "count", len(issues)-maxReportedIssues)
			break
		}
		r.logger().Warn("output validation", "issue", issue.String())
	}
}

func (r *Renderer) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

// draw composites a finalized graph: subgraph borders, node outlines,
// edges, then subgraph labels. Bottom-to-top graphs are flipped last.
func draw(g *layout.Graph) *canvas.Canvas {
	opts := canvas.MergeOptions{UseASCII: g.Config.UseASCII}

	c := g.Canvas
	c = canvas.Merge(c, origin, opts, subgraphBorders(g))
	for _, n := range g.Nodes {
		c = canvas.Merge(c, *n.DrawingCoord, opts, n.Drawing)
	}
	c = drawEdges(g, c, opts)
	c = canvas.Merge(c, origin, opts, subgraphLabels(g, c))

	if g.Flip {
		c.FlipVertically()
	}
	g.Canvas = c
	g.Logger.Debug("drew diagram", "width", c.MaxX()+1, "height", c.MaxY()+1)
	return c
}
