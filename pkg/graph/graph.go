// Package graph implements the immutable compressed adjacency store used by
// NeuroNet to hold very large directed edge lists in memory.
//
// A Graph is laid out in CSR form: an offsets array indexed by node and a flat
// neighbors array holding every destination contiguously per source.
//
//	edges:     0->1, 0->2, 1->2, 2->0
//	offsets:   [0, 2, 3, 4]
//	neighbors: [1, 2, 2, 0]
//
// The neighbors of node i live in neighbors[offsets[i]:offsets[i+1]], in the
// order they appeared in the input. A Graph never changes once built, so any
// number of goroutines may read it concurrently without locking.
package graph

import (
	"time"
	"unsafe"
)

// Graph is a built, read-only CSR adjacency structure. Use a Builder or one of
// the Load functions to obtain one.
type Graph struct {
	numNodes int
	numEdges int

	offsets   []uint64 // len numNodes+1
	neighbors []uint32 // len numEdges
	inDegree  []uint32 // len numNodes

	// Cached at build time.
	maxNode   int
	maxDegree int
	buildTime time.Duration
}

// NumNodes returns the number of nodes, max(observed id) + 1.
func (g *Graph) NumNodes() int { return g.numNodes }

// NumEdges returns the number of edges, duplicates included.
func (g *Graph) NumEdges() int { return g.numEdges }

// Neighbors returns the destinations of node's outgoing edges in input order.
// The returned slice aliases the store and must not be modified.
// It returns nil for an invalid node.
func (g *Graph) Neighbors(node int) []uint32 {
	if node < 0 || node >= g.numNodes {
		return nil
	}
	return g.neighbors[g.offsets[node]:g.offsets[node+1]]
}

// OutDegree returns the number of edges leaving node.
func (g *Graph) OutDegree(node int) (int, error) {
	if err := CheckNode(node, g.numNodes); err != nil {
		return 0, err
	}
	return int(g.offsets[node+1] - g.offsets[node]), nil
}

// InDegree returns the number of edges arriving at node.
func (g *Graph) InDegree(node int) (int, error) {
	if err := CheckNode(node, g.numNodes); err != nil {
		return 0, err
	}
	return int(g.inDegree[node]), nil
}

// HasEdge reports whether at least one edge origin->destination exists.
// Partitions keep input order, so this is a linear scan of origin's edges.
func (g *Graph) HasEdge(origin, destination int) bool {
	if origin < 0 || origin >= g.numNodes || destination < 0 || destination >= g.numNodes {
		return false
	}
	d := uint32(destination)
	for _, n := range g.Neighbors(origin) {
		if n == d {
			return true
		}
	}
	return false
}

// MaxOutDegree returns the node with the largest out-degree and that degree.
// Ties go to the smallest id. An empty graph reports (0, 0).
func (g *Graph) MaxOutDegree() (node, degree int) {
	return g.maxNode, g.maxDegree
}

// BuildDuration is the wall-clock time spent compiling the CSR arrays.
func (g *Graph) BuildDuration() time.Duration { return g.buildTime }

// MemoryBytes is the resident size of the offsets, neighbors and in-degree
// arrays.
func (g *Graph) MemoryBytes() int64 {
	return int64(len(g.offsets))*int64(unsafe.Sizeof(uint64(0))) +
		int64(len(g.neighbors))*int64(unsafe.Sizeof(uint32(0))) +
		int64(len(g.inDegree))*int64(unsafe.Sizeof(uint32(0)))
}

// MemoryMB is MemoryBytes expressed in decimal megabytes.
func (g *Graph) MemoryMB() float64 {
	return float64(g.MemoryBytes()) / 1_000_000
}

// Density is edges / nodes², or 0 for an empty graph.
func (g *Graph) Density() float64 {
	if g.numNodes == 0 {
		return 0
	}
	n := float64(g.numNodes)
	return float64(g.numEdges) / (n * n)
}
