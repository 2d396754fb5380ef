// Package export converts diagrams to text formats: the rendered drawing
// itself, Mermaid flowchart source, and the JSON and YAML documents.
package export

import (
	"strings"

	"gridart/diagram"
	"gridart/errors"
)

// Format represents an export format
type Format string

const (
	// FormatText exports the rendered ASCII/Unicode drawing
	FormatText Format = "text"
	// FormatMermaid exports to Mermaid flowchart syntax
	FormatMermaid Format = "mermaid"
	// FormatJSON exports the JSON diagram document
	FormatJSON Format = "json"
	// FormatYAML exports the YAML diagram document
	FormatYAML Format = "yaml"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a diagram to the target format
	Export(d *diagram.Diagram) (string, error)
	// Extension returns the recommended file extension for this format
	Extension() string
	// FormatName returns a human-readable name for this format
	FormatName() string
}

// NewExporter creates an exporter for the specified format. The text
// exporter uses the default render configuration; see NewTextExporter.
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatText:
		return NewTextExporter(nil, nil), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatYAML:
		return NewYAMLExporter(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "ascii":
		return FormatText, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", s)
	}
}

// AvailableFormats returns a list of all available export formats
func AvailableFormats() []Format {
	return []Format{
		FormatText,
		FormatMermaid,
		FormatJSON,
		FormatYAML,
	}
}

// FormatDescriptions returns human-readable descriptions of all formats
func FormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatText:    "ASCII/Unicode drawing",
		FormatMermaid: "Mermaid flowchart syntax (for Markdown)",
		FormatJSON:    "JSON diagram document",
		FormatYAML:    "YAML diagram document",
	}
}
