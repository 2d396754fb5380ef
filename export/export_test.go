package export_test

import (
	"strings"
	"testing"

	"gridart/config"
	"gridart/diagram"
	"gridart/export"
	"gridart/importer"
	"gridart/render"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{"text", export.FormatText, false},
		{"txt", export.FormatText, false},
		{"ascii", export.FormatText, false},
		{"mermaid", export.FormatMermaid, false},
		{"MMD", export.FormatMermaid, false},
		{"json", export.FormatJSON, false},
		{"yml", export.FormatYAML, false},
		{"plantuml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewExporter(t *testing.T) {
	for _, format := range export.AvailableFormats() {
		e, err := export.NewExporter(format)
		if err != nil {
			t.Fatalf("NewExporter(%s) failed: %v", format, err)
		}
		if e.Extension() == "" || e.FormatName() == "" {
			t.Errorf("%s exporter has no extension or name", format)
		}
		if export.FormatDescriptions()[format] == "" {
			t.Errorf("%s has no description", format)
		}
	}

	if _, err := export.NewExporter("svg"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func sampleDiagram() *diagram.Diagram {
	return &diagram.Diagram{
		Direction: "LR",
		Nodes: []diagram.Node{
			{ID: "start", Label: "Start", Shape: "stadium"},
			{ID: "check", Label: "ok?", Shape: "diamond"},
			{ID: "db", Label: "Store (primary)", Shape: "cylinder"},
			{ID: "done"},
		},
		Edges: []diagram.Edge{
			{From: "start", To: "check", Style: diagram.StyleSolid},
			{From: "check", To: "db", Label: "yes", Style: diagram.StyleThick},
			{From: "check", To: "done", Label: "no", Style: diagram.StyleDotted},
			{From: "db", To: "done", Style: diagram.StyleSolid, Undirected: true},
		},
		Subgraphs: []diagram.Subgraph{
			{ID: "backend", Label: "Back end", Nodes: []string{"check"}, Children: []diagram.Subgraph{
				{ID: "storage", Nodes: []string{"db"}},
			}},
		},
	}
}

func TestMermaidExport(t *testing.T) {
	out, err := export.NewMermaidExporter().Export(sampleDiagram())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	expected := []string{
		"graph LR",
		"    start([Start])",
		"    check{ok?}",
		`    db[("Store (primary)")]`,
		"    done",
		"    subgraph backend [Back end]",
		"        check",
		"        subgraph storage",
		"            db",
		"        end",
		"    end",
		"    start --> check",
		"    check ==>|yes| db",
		"    check -.->|no| done",
		"    db --- done",
	}
	if got := strings.TrimRight(out, "\n"); got != strings.Join(expected, "\n") {
		t.Errorf("unexpected Mermaid output:\n%s\nwant:\n%s", got, strings.Join(expected, "\n"))
	}
}

func TestMermaidRoundTrip(t *testing.T) {
	original := sampleDiagram()
	out, err := export.NewMermaidExporter().Export(original)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	imported, err := importer.NewMermaidImporter().Import(out)
	if err != nil {
		t.Fatalf("Import failed: %v\n%s", err, out)
	}

	for _, doc := range []export.Exporter{export.NewJSONExporter(), export.NewYAMLExporter()} {
		want, _ := doc.Export(original)
		got, _ := doc.Export(imported)
		if want != got {
			t.Errorf("%s round trip differs:\n%s\nwant:\n%s", doc.FormatName(), got, want)
		}
	}
}

func TestMermaidExportRenamesInvalidIDs(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: []diagram.Node{{ID: "api-gateway"}, {ID: "svc"}},
		Edges: []diagram.Edge{{From: "api-gateway", To: "svc"}},
	}
	out, err := export.NewMermaidExporter().Export(d)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(out, "n0[api-gateway]") || !strings.Contains(out, "n0 --> svc") {
		t.Errorf("invalid id not replaced:\n%s", out)
	}
}

func TestTextExporter(t *testing.T) {
	d := sampleDiagram()
	want, err := render.Render(d, config.DefaultRender())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got, err := export.NewTextExporter(nil, nil).Export(d)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if got != want {
		t.Errorf("text export differs from render output")
	}

	cfg := config.DefaultRender()
	cfg.UseASCII = true
	ascii, err := export.NewTextExporter(render.NewRenderer(nil), &cfg).Export(d)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	for _, r := range ascii {
		if r > 0x7e || (r < 0x20 && r != '\n') {
			t.Fatalf("non-ASCII rune %U in ASCII export", r)
		}
	}

	if _, err := export.NewTextExporter(nil, nil).Export(nil); err == nil {
		t.Error("expected error for nil diagram")
	}
}

func TestDocumentExporters(t *testing.T) {
	d := sampleDiagram()

	j, err := export.NewJSONExporter().Export(d)
	if err != nil {
		t.Fatalf("JSON export failed: %v", err)
	}
	back, err := diagram.ReadJSON(strings.NewReader(j))
	if err != nil {
		t.Fatalf("JSON output does not read back: %v", err)
	}
	if len(back.Nodes) != len(d.Nodes) || len(back.Subgraphs[0].Children) != 1 {
		t.Errorf("JSON lost structure: %+v", back)
	}

	y, err := export.NewYAMLExporter().Export(d)
	if err != nil {
		t.Fatalf("YAML export failed: %v", err)
	}
	if !strings.Contains(y, "direction: LR") {
		t.Errorf("YAML missing direction:\n%s", y)
	}
}
