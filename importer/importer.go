// Package importer turns diagram source text into a diagram.Diagram.
//
// Three formats are supported: a subset of the Mermaid flowchart language
// and the JSON and YAML diagram documents defined by the diagram package.
// A Registry detects the format of unlabelled input.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gridart/diagram"
	"gridart/errors"
)

// Importer interface defines methods for importing diagrams from one format
type Importer interface {
	// CanImport checks if the given content looks like this format
	CanImport(content string) bool

	// Import converts the input content into a validated diagram
	Import(content string) (*diagram.Diagram, error)

	// FormatName returns the human-readable name of the format
	FormatName() string

	// Extensions returns common file extensions for this format
	Extensions() []string
}

// Registry manages available importers. Detection tries importers in
// registration order.
type Registry struct {
	importers []Importer
}

// NewRegistry creates a registry holding the Mermaid, JSON and YAML importers.
func NewRegistry() *Registry {
	return &Registry{
		importers: []Importer{
			NewMermaidImporter(),
			NewJSONImporter(),
			NewYAMLImporter(),
		},
	}
}

// Register adds a new importer to the registry
func (r *Registry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// Detect returns the first importer that accepts content.
func (r *Registry) Detect(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unable to detect diagram format")
}

// Import imports content using auto-detection.
func (r *Registry) Import(content string) (*diagram.Diagram, error) {
	imp, err := r.Detect(content)
	if err != nil {
		return nil, err
	}
	return imp.Import(content)
}

// ImportFormat imports content with the named format. Names are matched
// case-insensitively; "auto" and "" detect the format.
func (r *Registry) ImportFormat(content, format string) (*diagram.Diagram, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == "auto" {
		return r.Import(content)
	}

	for _, imp := range r.importers {
		if strings.ToLower(imp.FormatName()) == format {
			return imp.Import(content)
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", format)
}

// ForExtension returns the importer registered for the extension of path.
func (r *Registry) ForExtension(path string) (Importer, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	for _, imp := range r.importers {
		for _, e := range imp.Extensions() {
			if e == ext {
				return imp, true
			}
		}
	}
	return nil, false
}

// ImportFile reads path and imports it, choosing the importer by extension
// and falling back to detection.
func (r *Registry) ImportFile(path string) (*diagram.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if imp, ok := r.ForExtension(path); ok {
		return imp.Import(string(data))
	}
	return r.Import(string(data))
}

// Formats returns the names of the registered formats.
func (r *Registry) Formats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.FormatName()
	}
	return formats
}
