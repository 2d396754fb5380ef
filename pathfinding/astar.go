// Package pathfinding routes edges across the layout grid.
//
// FindPath is an A* search over the 4-neighbourhood of grid cells. Moves
// cost one step each and the heuristic is the Manhattan distance plus one
// when the remaining route needs a turn, which steers the search towards
// routes with fewer bends.
package pathfinding

import (
	"container/heap"
	"errors"

	"gridart/core"
	"gridart/geometry"
)

// DefaultMaxNodes caps how many cells one search may expand.
const DefaultMaxNodes = 50000

var (
	// ErrNoPath is returned when the target cannot be reached.
	ErrNoPath = errors.New("pathfinding: no path found")
	// ErrNodeLimit is returned when a search expands more than its budget.
	ErrNodeLimit = errors.New("pathfinding: exceeded node limit")
)

// Bounds limits the search area. Both corners are inclusive.
type Bounds struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether c lies inside the bounds.
func (b Bounds) Contains(c core.GridCoord) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// searchNode is a cell on the open list.
type searchNode struct {
	coord    core.GridCoord
	priority int
	seq      int // insertion order, breaks priority ties
	index    int // index in the heap
}

// nodeQueue is a priority queue of search nodes, lowest priority first.
type nodeQueue []*searchNode

func (nq nodeQueue) Len() int { return len(nq) }

func (nq nodeQueue) Less(i, j int) bool {
	if nq[i].priority != nq[j].priority {
		return nq[i].priority < nq[j].priority
	}
	return nq[i].seq < nq[j].seq
}

func (nq nodeQueue) Swap(i, j int) {
	nq[i], nq[j] = nq[j], nq[i]
	nq[i].index = i
	nq[j].index = j
}

func (nq *nodeQueue) Push(x any) {
	node := x.(*searchNode)
	node.index = len(*nq)
	*nq = append(*nq, node)
}

func (nq *nodeQueue) Pop() any {
	old := *nq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*nq = old[:n-1]
	return node
}

// neighbours are tried in this order: right, left, down, up.
var neighbours = [4]core.GridCoord{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}

// Heuristic estimates the remaining cost between two cells: the Manhattan
// distance, plus one if the cells are not on a common row or column.
func Heuristic(a, b core.GridCoord) int {
	dx, dy := geometry.Abs(a.X-b.X), geometry.Abs(a.Y-b.Y)
	if dx == 0 || dy == 0 {
		return dx + dy
	}
	return dx + dy + 1
}

// Finder runs A* searches with a fixed expansion budget.
type Finder struct {
	MaxNodes int
}

// FindPath finds a route from one cell to another using the default budget.
// See Finder.FindPath.
func FindPath(from, to core.GridCoord, isFree func(core.GridCoord) bool, bounds Bounds) ([]core.GridCoord, error) {
	return Finder{MaxNodes: DefaultMaxNodes}.FindPath(from, to, isFree, bounds)
}

// FindPath returns the cells of a shortest 4-connected route from one cell
// to another, both included. isFree reports whether a cell may be entered.
// The target is always enterable. Cells outside bounds are never visited.
func (f Finder) FindPath(from, to core.GridCoord, isFree func(core.GridCoord) bool, bounds Bounds) ([]core.GridCoord, error) {
	if from == to {
		return []core.GridCoord{from}, nil
	}
	maxNodes := f.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	open := &nodeQueue{}
	heap.Init(open)
	seq := 0
	heap.Push(open, &searchNode{coord: from, seq: seq})

	costSoFar := map[core.GridCoord]int{from: 0}
	cameFrom := map[core.GridCoord]core.GridCoord{}

	expanded := 0
	for open.Len() > 0 {
		expanded++
		if expanded > maxNodes {
			return nil, ErrNodeLimit
		}

		current := heap.Pop(open).(*searchNode).coord
		if current == to {
			return reconstruct(cameFrom, from, to), nil
		}

		for _, d := range neighbours {
			next := core.GridCoord{X: current.X + d.X, Y: current.Y + d.Y}
			if !bounds.Contains(next) {
				continue
			}
			if next != to && !isFree(next) {
				continue
			}

			newCost := costSoFar[current] + 1
			if cost, seen := costSoFar[next]; seen && newCost >= cost {
				continue
			}
			costSoFar[next] = newCost
			cameFrom[next] = current
			seq++
			heap.Push(open, &searchNode{
				coord:    next,
				priority: newCost + Heuristic(next, to),
				seq:      seq,
			})
		}
	}

	return nil, ErrNoPath
}

func reconstruct(cameFrom map[core.GridCoord]core.GridCoord, from, to core.GridCoord) []core.GridCoord {
	path := []core.GridCoord{to}
	for current := to; current != from; {
		current = cameFrom[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
