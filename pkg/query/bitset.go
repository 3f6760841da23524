package query

// bitSet is a fixed-size visited marker, one bit per node.
type bitSet struct {
	buckets []uint64
}

func newBitSet(size int) *bitSet {
	return &bitSet{
		buckets: make([]uint64, (size>>6)+1), // >> 6 == / 64
	}
}

// testAndSet marks n and reports whether it was already marked.
func (bs *bitSet) testAndSet(n uint32) bool {
	idx, mask := n>>6, uint64(1)<<(n&63) // n & 63 == n % 64
	if bs.buckets[idx]&mask != 0 {
		return true
	}
	bs.buckets[idx] |= mask
	return false
}

func (bs *bitSet) has(n uint32) bool {
	return bs.buckets[n>>6]&(uint64(1)<<(n&63)) != 0
}
