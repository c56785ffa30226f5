package search

// openEntry is one push into the open set. A cell may have several live entries;
// only the one whose g matches the cell's best g is current
type openEntry struct {
	idx int    // Flat grid index (row*size + col)
	f   int    // g + h at push time
	g   int    // g at push time, used to detect stale entries
	seq uint64 // Push sequence, breaks f ties in insertion order
}

func (a openEntry) less(b openEntry) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	return a.seq < b.seq
}

// openSet is a binary min-heap ordered by (f, seq)
type openSet []openEntry

func (h openSet) len() int { return len(h) }

func (h *openSet) push(e openEntry) {
	*h = append(*h, e)
	// Sift up
	i := len(*h) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !(*h)[i].less((*h)[parent]) {
			break
		}
		(*h)[parent], (*h)[i] = (*h)[i], (*h)[parent]
		i = parent
	}
}

func (h *openSet) pop() openEntry {
	old := *h
	n := len(old)
	e := old[0]
	old[0] = old[n-1]
	*h = old[:n-1]

	// Sift down
	i := 0
	for {
		left := 2*i + 1
		if left >= len(*h) {
			break
		}
		smallest := left
		if right := left + 1; right < len(*h) && (*h)[right].less((*h)[left]) {
			smallest = right
		}
		if !(*h)[smallest].less((*h)[i]) {
			break
		}
		(*h)[i], (*h)[smallest] = (*h)[smallest], (*h)[i]
		i = smallest
	}
	return e
}
