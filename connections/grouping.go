// Package connections groups parallel edges into fan-in and fan-out bundles
// and reroutes bundle members through a shared junction point.
package connections

import "gridart/layout"

// EdgeGroup is a set of edges sharing one endpoint.
type EdgeGroup struct {
	// Key is the shared node's name.
	Key string
	// Node is the shared endpoint.
	Node  *layout.Node
	Edges []*layout.Edge
}

// GroupEdges groups edges by the node key returns for each. Groups appear
// in the order their first edge appears, and edges keep their order.
func GroupEdges(edges []*layout.Edge, key func(*layout.Edge) *layout.Node) []EdgeGroup {
	index := map[*layout.Node]int{}
	var groups []EdgeGroup

	for _, e := range edges {
		n := key(e)
		if i, ok := index[n]; ok {
			groups[i].Edges = append(groups[i].Edges, e)
			continue
		}
		index[n] = len(groups)
		groups = append(groups, EdgeGroup{Key: n.Name, Node: n, Edges: []*layout.Edge{e}})
	}
	return groups
}

// ByTarget keys an edge by its target node.
func ByTarget(e *layout.Edge) *layout.Node { return e.To }

// BySource keys an edge by its source node.
func BySource(e *layout.Edge) *layout.Node { return e.From }
