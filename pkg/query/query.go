// Package query implements the read-only algorithms NeuroNet answers over a
// built graph: bounded traversal, unweighted shortest path, degree ranking,
// node selection and induced-subgraph extraction.
//
// Every function allocates its own transient state (visited markers, queues,
// heaps) and never writes to the graph, so independent calls may run
// concurrently against the same graph.
package query

import "math"

// Graph is the read contract the algorithms depend on. *graph.Graph
// satisfies it.
type Graph interface {
	NumNodes() int
	// Neighbors returns node's out-neighbors in stored order. Callers only
	// pass valid ids.
	Neighbors(node int) []uint32
}

// NoDepthLimit makes BFS and DFS explore everything reachable from start.
const NoDepthLimit = math.MaxInt

// Visit is a node discovered by BFS together with its hop distance from the
// start node.
type Visit struct {
	Node  int `json:"node"`
	Level int `json:"level"`
}

// NodeDegree pairs a node with its out-degree.
type NodeDegree struct {
	Node   int `json:"node"`
	Degree int `json:"degree"`
}

// Edge is a directed edge origin->destination.
type Edge struct {
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
}
