package query

import (
	"slices"

	"github.com/sanonone/neuronet/pkg/graph"
)

// ShortestPath returns a minimum-hop path from origin to destination,
// both included. Ties between equal-length paths follow neighbor order, the
// same discovery order BFS uses. An unreachable destination yields an empty,
// non-nil path and no error.
func ShortestPath(g Graph, origin, destination int) ([]int, error) {
	n := g.NumNodes()
	if err := graph.CheckNode(origin, n); err != nil {
		return nil, err
	}
	if err := graph.CheckNode(destination, n); err != nil {
		return nil, err
	}
	if origin == destination {
		return []int{origin}, nil
	}

	visited := newBitSet(n)
	visited.testAndSet(uint32(origin))
	parent := make([]uint32, n)

	queue := []uint32{uint32(origin)}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, nb := range g.Neighbors(int(cur)) {
			if visited.testAndSet(nb) {
				continue
			}
			parent[nb] = cur
			if int(nb) == destination {
				return tracePath(parent, origin, destination), nil
			}
			queue = append(queue, nb)
		}
	}
	return []int{}, nil
}

func tracePath(parent []uint32, origin, destination int) []int {
	var path []int
	for cur := destination; cur != origin; cur = int(parent[cur]) {
		path = append(path, cur)
	}
	path = append(path, origin)
	slices.Reverse(path)
	return path
}
