package importer

import (
	"regexp"
	"strings"

	"gridart/diagram"
)

// JSONImporter imports JSON diagram documents.
type JSONImporter struct{}

// NewJSONImporter creates a JSON document importer.
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// CanImport reports whether content is a JSON object.
func (j *JSONImporter) CanImport(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "{")
}

// Import decodes and validates the document.
func (j *JSONImporter) Import(content string) (*diagram.Diagram, error) {
	return diagram.ReadJSON(strings.NewReader(content))
}

func (j *JSONImporter) FormatName() string {
	return "JSON"
}

func (j *JSONImporter) Extensions() []string {
	return []string{".json"}
}

// YAMLImporter imports YAML diagram documents.
type YAMLImporter struct{}

// NewYAMLImporter creates a YAML document importer.
func NewYAMLImporter() *YAMLImporter {
	return &YAMLImporter{}
}

var yamlTopLevelKey = regexp.MustCompile(`(?m)^(direction|nodes|edges|subgraphs)\s*:`)

// CanImport reports whether content has one of the document's top-level
// keys at the start of a line.
func (y *YAMLImporter) CanImport(content string) bool {
	return yamlTopLevelKey.MatchString(content)
}

// Import decodes and validates the document.
func (y *YAMLImporter) Import(content string) (*diagram.Diagram, error) {
	return diagram.ReadYAML(strings.NewReader(content))
}

func (y *YAMLImporter) FormatName() string {
	return "YAML"
}

func (y *YAMLImporter) Extensions() []string {
	return []string{".yaml", ".yml"}
}
