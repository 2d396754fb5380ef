package export

import (
	"fmt"

	"gridart/config"
	"gridart/diagram"
	"gridart/render"
)

// TextExporter exports diagrams as rendered drawings.
type TextExporter struct {
	renderer *render.Renderer
	cfg      config.Render
}

// NewTextExporter creates a text exporter. A nil renderer or config means
// the defaults.
func NewTextExporter(r *render.Renderer, cfg *config.Render) *TextExporter {
	if r == nil {
		r = render.NewRenderer(nil)
	}
	c := config.DefaultRender()
	if cfg != nil {
		c = *cfg
	}
	return &TextExporter{renderer: r, cfg: c}
}

// Export renders the diagram.
func (e *TextExporter) Export(d *diagram.Diagram) (string, error) {
	out, err := e.renderer.Render(d, e.cfg)
	if err != nil {
		return "", fmt.Errorf("render diagram: %w", err)
	}
	return out, nil
}

func (e *TextExporter) Extension() string {
	return ".txt"
}

func (e *TextExporter) FormatName() string {
	return "Text"
}
