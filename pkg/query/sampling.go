package query

import (
	"math/rand/v2"

	"github.com/tidwall/btree"
)

// NodesInRange returns the valid node ids in [lo, hi) in ascending order.
// The range is clipped to [0, NumNodes); an empty or inverted range yields an
// empty slice.
func NodesInRange(g Graph, lo, hi int) []int {
	lo = max(lo, 0)
	hi = min(hi, g.NumNodes())
	if lo >= hi {
		return []int{}
	}
	nodes := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		nodes = append(nodes, i)
	}
	return nodes
}

// RandomSample draws k distinct node ids uniformly without replacement and
// returns them in ascending order. k >= NumNodes returns every node once.
// A nil rng uses the package-level source.
//
// It uses Floyd's algorithm, which needs exactly k draws whatever the ratio
// of k to NumNodes, with an ordered set for membership.
func RandomSample(g Graph, k int, rng *rand.Rand) []int {
	n := g.NumNodes()
	if k <= 0 {
		return []int{}
	}
	if k >= n {
		return NodesInRange(g, 0, n)
	}

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	var chosen btree.Set[uint32]
	for j := n - k; j < n; j++ {
		t := uint32(intN(j + 1))
		if chosen.Contains(t) {
			t = uint32(j)
		}
		chosen.Insert(t)
	}

	sample := make([]int, 0, k)
	chosen.Scan(func(id uint32) bool {
		sample = append(sample, int(id))
		return true
	})
	return sample
}
