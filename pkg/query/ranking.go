package query

import (
	"container/heap"
	"slices"
)

// TopKByDegree returns the k nodes with the largest out-degree, sorted by
// descending degree with ascending node id breaking ties.
//
// For k < NumNodes it keeps a bounded heap of k entries, so the cost is
// O(n log k) and memory O(k). k >= NumNodes ranks every node; k <= 0 returns
// an empty slice.
func TopKByDegree(g Graph, k int) []NodeDegree {
	n := g.NumNodes()
	if k <= 0 || n == 0 {
		return []NodeDegree{}
	}

	if k >= n {
		all := make([]NodeDegree, n)
		for i := range all {
			all[i] = NodeDegree{Node: i, Degree: len(g.Neighbors(i))}
		}
		slices.SortFunc(all, compareRank)
		return all
	}

	h := make(rankHeap, 0, k)
	for i := 0; i < n; i++ {
		c := NodeDegree{Node: i, Degree: len(g.Neighbors(i))}
		if h.Len() < k {
			heap.Push(&h, c)
			continue
		}
		if ranksBefore(c, h[0]) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	out := make([]NodeDegree, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(NodeDegree)
	}
	return out
}
