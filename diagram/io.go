package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gridart/errors"
)

// ReadJSON decodes and validates a JSON diagram document:
//
//	{
//	  "direction": "LR",
//	  "nodes": [{"id": "a"}, {"id": "b", "label": "Build", "shape": "rounded"}],
//	  "edges": [{"from": "a", "to": "b", "label": "then"}],
//	  "subgraphs": [{"id": "ci", "nodes": ["b"]}]
//	}
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadYAML decodes and validates a YAML diagram document with the same
// fields as ReadJSON. ReadYAML does not close r.
func ReadYAML(r io.Reader) (*Diagram, error) {
	var d Diagram
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads a diagram document from path, choosing the decoder by file
// extension: .json, .yaml or .yml.
func Load(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON(f)
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported diagram document extension %q", ext)
	}
}

// WriteJSON encodes the diagram as indented JSON.
func WriteJSON(w io.Writer, d *Diagram) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteYAML encodes the diagram as YAML.
func WriteYAML(w io.Writer, d *Diagram) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
