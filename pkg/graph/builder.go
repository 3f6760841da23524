package graph

import (
	"fmt"
	"math"
	"time"
)

// MaxNodeID is the largest node id a Graph can hold. Ids are stored as uint32.
const MaxNodeID = math.MaxUint32 - 1

// Builder accumulates edges and compiles them into a Graph.
//
// Edges are buffered as two compact uint32 columns until Build runs; the
// buffer is released as soon as the CSR arrays exist. A Builder is not safe
// for concurrent use.
type Builder struct {
	srcs []uint32
	dsts []uint32
}

// NewBuilder returns a Builder preallocated for edgeHint edges.
func NewBuilder(edgeHint int) *Builder {
	if edgeHint < 0 {
		edgeHint = 0
	}
	return &Builder{
		srcs: make([]uint32, 0, edgeHint),
		dsts: make([]uint32, 0, edgeHint),
	}
}

// AddEdge appends the directed edge origin->destination. Duplicates and
// self-loops are kept as given.
func (b *Builder) AddEdge(origin, destination int) error {
	if origin < 0 || origin > MaxNodeID {
		return fmt.Errorf("origin %d: %w", origin, &OutOfRangeError{Node: origin, NumNodes: MaxNodeID + 1})
	}
	if destination < 0 || destination > MaxNodeID {
		return fmt.Errorf("destination %d: %w", destination, &OutOfRangeError{Node: destination, NumNodes: MaxNodeID + 1})
	}
	b.srcs = append(b.srcs, uint32(origin))
	b.dsts = append(b.dsts, uint32(destination))
	return nil
}

// Len returns the number of buffered edges.
func (b *Builder) Len() int { return len(b.srcs) }

// Build compiles the buffered edges into a Graph and empties the Builder.
//
// Pass 1 finds the node count and counts out- and in-degree. Pass 2 turns the
// out-degree counts into offsets with a prefix sum and places every
// destination at its source's write cursor, which keeps input order inside
// each partition.
func (b *Builder) Build() *Graph {
	start := time.Now()

	srcs, dsts := b.srcs, b.dsts
	b.srcs, b.dsts = nil, nil

	// Pass 1
	numNodes := 0
	for i := range srcs {
		if n := int(srcs[i]) + 1; n > numNodes {
			numNodes = n
		}
		if n := int(dsts[i]) + 1; n > numNodes {
			numNodes = n
		}
	}
	numEdges := len(srcs)

	offsets := make([]uint64, numNodes+1)
	inDegree := make([]uint32, numNodes)
	for i := range srcs {
		offsets[srcs[i]+1]++
		inDegree[dsts[i]]++
	}

	// Pass 2
	for i := 1; i <= numNodes; i++ {
		offsets[i] += offsets[i-1]
	}

	neighbors := make([]uint32, numEdges)
	cursor := make([]uint64, numNodes)
	copy(cursor, offsets[:numNodes])
	for i := range srcs {
		s := srcs[i]
		neighbors[cursor[s]] = dsts[i]
		cursor[s]++
	}

	g := &Graph{
		numNodes:  numNodes,
		numEdges:  numEdges,
		offsets:   offsets,
		neighbors: neighbors,
		inDegree:  inDegree,
	}
	for i := 0; i < numNodes; i++ {
		if d := int(offsets[i+1] - offsets[i]); d > g.maxDegree {
			g.maxNode, g.maxDegree = i, d
		}
	}
	g.buildTime = time.Since(start)
	return g
}
