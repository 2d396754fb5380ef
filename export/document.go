package export

import (
	"strings"

	"gridart/diagram"
)

// JSONExporter exports diagrams to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a diagram to JSON
func (e *JSONExporter) Export(d *diagram.Diagram) (string, error) {
	var sb strings.Builder
	if err := diagram.WriteJSON(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Extension returns the file extension for JSON
func (e *JSONExporter) Extension() string {
	return ".json"
}

// FormatName returns the format name
func (e *JSONExporter) FormatName() string {
	return "JSON"
}

// YAMLExporter exports diagrams to YAML format
type YAMLExporter struct{}

// NewYAMLExporter creates a new YAML exporter
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Export converts a diagram to YAML
func (e *YAMLExporter) Export(d *diagram.Diagram) (string, error) {
	var sb strings.Builder
	if err := diagram.WriteYAML(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *YAMLExporter) Extension() string {
	return ".yaml"
}

func (e *YAMLExporter) FormatName() string {
	return "YAML"
}
