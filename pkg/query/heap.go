package query

// rankHeap is a min-heap of NodeDegree ordered by rank: the entry that ranks
// last (lowest degree, then highest id) is always at the top. TopKByDegree
// uses it to hold the k best nodes seen so far, evicting the top whenever a
// better node shows up.
type rankHeap []NodeDegree

func (h rankHeap) Len() int { return len(h) }

// Less puts the worse-ranked entry first.
func (h rankHeap) Less(i, j int) bool { return ranksBefore(h[j], h[i]) }

func (h rankHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankHeap) Push(x any) { *h = append(*h, x.(NodeDegree)) }

func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// ranksBefore reports whether a ranks ahead of b: higher degree first,
// ascending node id on ties.
func ranksBefore(a, b NodeDegree) bool {
	if a.Degree != b.Degree {
		return a.Degree > b.Degree
	}
	return a.Node < b.Node
}

func compareRank(a, b NodeDegree) int {
	switch {
	case ranksBefore(a, b):
		return -1
	case ranksBefore(b, a):
		return 1
	}
	return 0
}
