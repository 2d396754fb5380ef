package layout

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gridart/config"
	"gridart/core"
	"gridart/diagram"
)

// randomDiagram builds a diagram with n nodes and edges picked from pairs.
func randomDiagram(direction string, n int, pairs []int) *diagram.Diagram {
	d := &diagram.Diagram{Direction: direction}
	for i := 0; i < n; i++ {
		d.Nodes = append(d.Nodes, diagram.Node{ID: fmt.Sprintf("n%d", i)})
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		d.Edges = append(d.Edges, diagram.Edge{
			From: fmt.Sprintf("n%d", pairs[i]%n),
			To:   fmt.Sprintf("n%d", pairs[i+1]%n),
		})
	}
	return d
}

// TestPlacementProperties checks that placement claims disjoint blocks for
// every node whatever the graph shape.
func TestPlacementProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("no cell is reserved twice", prop.ForAll(
		func(lr bool, n int, pairs []int) bool {
			direction := "TD"
			if lr {
				direction = "LR"
			}
			g := New(randomDiagram(direction, n, pairs), config.DefaultRender(), nil)
			g.PlaceNodes()

			claimed := map[core.GridCoord]*Node{}
			for _, node := range g.Nodes {
				if node.GridCoord == nil {
					return false
				}
				for dx := 0; dx < 3; dx++ {
					for dy := 0; dy < 3; dy++ {
						c := core.GridCoord{X: node.GridCoord.X + dx, Y: node.GridCoord.Y + dy}
						if owner, taken := claimed[c]; taken && owner != node {
							return false
						}
						claimed[c] = node
						if g.OwnerAt(c) != node {
							return false
						}
					}
				}
			}
			return true
		},
		gen.Bool(),
		gen.IntRange(1, 12),
		gen.SliceOf(gen.IntRange(0, 11)),
	))

	properties.Property("routes start and end on their node blocks", prop.ForAll(
		func(n int, pairs []int) bool {
			g := layoutGraph(randomDiagram("TD", n, pairs))
			for _, e := range g.Edges {
				if len(e.Path) < 2 {
					return false
				}
				if e.Path[0] != e.From.GridCoord.Offset(e.StartDir) {
					return false
				}
				if e.Path[len(e.Path)-1] != e.To.GridCoord.Offset(e.EndDir) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.SliceOf(gen.IntRange(0, 7)),
	))

	properties.TestingRun(t)
}
