package query

import "github.com/sanonone/neuronet/pkg/graph"

// BFS runs a level-order traversal from start and returns every discovered
// node with its level, in discovery order. Nodes at level maxDepth are
// reported but not expanded; a negative maxDepth yields only the start node.
func BFS(g Graph, start, maxDepth int) ([]Visit, error) {
	n := g.NumNodes()
	if err := graph.CheckNode(start, n); err != nil {
		return nil, err
	}

	visited := newBitSet(n)
	visited.testAndSet(uint32(start))

	// The result doubles as the FIFO queue: entries are appended in discovery
	// order and levels never decrease along it.
	result := []Visit{{Node: start, Level: 0}}
	for head := 0; head < len(result); head++ {
		cur := result[head]
		if cur.Level >= maxDepth {
			break
		}
		for _, nb := range g.Neighbors(cur.Node) {
			if !visited.testAndSet(nb) {
				result = append(result, Visit{Node: int(nb), Level: cur.Level + 1})
			}
		}
	}
	return result, nil
}

type dfsFrame struct {
	node  int
	depth int
	next  int // index of the next neighbor to try
}

// DFS runs a depth-limited pre-order traversal from start, following
// out-neighbors in stored order, and returns nodes in visitation order.
// Descent stops once maxDepth hops from start have been taken.
//
// The traversal keeps an explicit frame stack instead of recursing, so its
// memory is bounded by the depth reached rather than the goroutine stack.
func DFS(g Graph, start, maxDepth int) ([]int, error) {
	n := g.NumNodes()
	if err := graph.CheckNode(start, n); err != nil {
		return nil, err
	}

	visited := newBitSet(n)
	visited.testAndSet(uint32(start))
	order := []int{start}
	if maxDepth <= 0 {
		return order, nil
	}

	stack := []dfsFrame{{node: start}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		nbrs := g.Neighbors(top.node)

		descended := false
		for top.next < len(nbrs) {
			nb := nbrs[top.next]
			top.next++
			if visited.testAndSet(nb) {
				continue
			}
			order = append(order, int(nb))
			if top.depth+1 < maxDepth {
				stack = append(stack, dfsFrame{node: int(nb), depth: top.depth + 1})
				descended = true
				break
			}
		}
		if !descended {
			stack = stack[:len(stack)-1]
		}
	}
	return order, nil
}
