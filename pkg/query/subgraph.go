package query

import "github.com/sanonone/neuronet/pkg/graph"

// InducedEdges returns every edge whose endpoints both belong to nodes.
//
// Only the partitions of the selected nodes are scanned, so the cost follows
// the sum of their out-degrees rather than the size of the graph. Repeated
// ids in nodes are ignored; edges come out grouped by origin in first-seen
// order, then in stored neighbor order. Multi-edges appear as many times as
// they were loaded.
func InducedEdges(g Graph, nodes []int) ([]Edge, error) {
	n := g.NumNodes()
	members := make(map[uint32]struct{}, len(nodes))
	origins := make([]int, 0, len(nodes))
	for _, node := range nodes {
		if err := graph.CheckNode(node, n); err != nil {
			return nil, err
		}
		if _, dup := members[uint32(node)]; dup {
			continue
		}
		members[uint32(node)] = struct{}{}
		origins = append(origins, node)
	}

	edges := []Edge{}
	for _, o := range origins {
		for _, d := range g.Neighbors(o) {
			if _, ok := members[d]; ok {
				edges = append(edges, Edge{Origin: o, Destination: int(d)})
			}
		}
	}
	return edges, nil
}

// PathEdges returns the consecutive edges along path.
func PathEdges(path []int) []Edge {
	if len(path) < 2 {
		return []Edge{}
	}
	edges := make([]Edge, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		edges = append(edges, Edge{Origin: path[i], Destination: path[i+1]})
	}
	return edges
}
