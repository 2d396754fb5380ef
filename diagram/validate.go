package diagram

import (
	"github.com/go-playground/validator/v10"

	"gridart/errors"
)

// validate is the shared struct validator.
var validate = validator.New()

// Validate checks the diagram's fields and references.
//
// Validate returns an ErrCodeInvalidInput error if:
//   - A field fails its constraint (missing IDs, unknown edge style or direction)
//   - Two nodes or two subgraphs share an ID
//   - An edge or subgraph references an unknown node
//   - A node belongs to two subgraphs that are not nested in one another
func (d *Diagram) Validate() error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidInput, "diagram is nil")
	}
	if err := validate.Struct(d); err != nil {
		return formatValidationError(err)
	}

	known := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if known[n.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		known[n.ID] = true
	}

	for i, e := range d.Edges {
		if !known[e.From] {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d references unknown node %q", i, e.From)
		}
		if !known[e.To] {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d references unknown node %q", i, e.To)
		}
	}

	return d.validateSubgraphs(known)
}

func (d *Diagram) validateSubgraphs(known map[string]bool) error {
	seen := map[string]bool{}
	parents := map[string]string{}
	owner := map[string]string{}
	var err error

	d.Walk(func(s *Subgraph, parent *Subgraph) {
		if err != nil {
			return
		}
		if seen[s.ID] {
			err = errors.New(errors.ErrCodeInvalidInput, "duplicate subgraph id %q", s.ID)
			return
		}
		seen[s.ID] = true
		if parent != nil {
			parents[s.ID] = parent.ID
		}
		for _, id := range s.Nodes {
			if !known[id] {
				err = errors.New(errors.ErrCodeInvalidInput, "subgraph %q references unknown node %q", s.ID, id)
				return
			}
			if prev, ok := owner[id]; ok && !related(parents, prev, s.ID) {
				err = errors.New(errors.ErrCodeInvalidInput, "node %q belongs to both %q and %q", id, prev, s.ID)
				return
			}
			owner[id] = s.ID
		}
	})
	return err
}

// related reports whether one subgraph is an ancestor of the other.
func related(parents map[string]string, a, b string) bool {
	return isAncestor(parents, a, b) || isAncestor(parents, b, a)
}

func isAncestor(parents map[string]string, ancestor, id string) bool {
	for cur, ok := id, true; ok; cur, ok = parents[cur] {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// formatValidationError converts validator errors to a coded error naming
// the first failing field.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid diagram")
	}

	e := validationErrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return errors.New(errors.ErrCodeInvalidInput, "%s: field is required", field)
	case "oneof":
		return errors.New(errors.ErrCodeInvalidInput, "%s: %q is not one of [%s]", field, e.Value(), e.Param())
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s: validation failed (%s)", field, e.Tag())
	}
}
