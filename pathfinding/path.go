package pathfinding

import (
	"strings"

	"gridart/core"
	"gridart/geometry"
)

// MergePath drops every interior point that continues in the same direction
// as the point before it, leaving the endpoints and the turning points.
func MergePath(path []core.GridCoord) []core.GridCoord {
	if len(path) <= 2 {
		return path
	}

	merged := []core.GridCoord{path[0]}
	for i := 1; i < len(path)-1; i++ {
		if core.GridDirection(path[i-1], path[i]) != core.GridDirection(path[i], path[i+1]) {
			merged = append(merged, path[i])
		}
	}
	return append(merged, path[len(path)-1])
}

// Length returns the number of grid steps along a path of straight segments.
func Length(path []core.GridCoord) int {
	n := 0
	for i := 1; i < len(path); i++ {
		n += geometry.ManhattanDistance(path[i-1].X, path[i-1].Y, path[i].X, path[i].Y)
	}
	return n
}

// PathToString formats a path as "(x,y) -> (x,y)".
func PathToString(path []core.GridCoord) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = p.String()
	}
	return strings.Join(parts, " -> ")
}
