package solver

// entry is a frontier element. Stale entries (a cell pushed again with a
// lower cost) are skipped when popped.
type entry struct {
	idx int // row-major cell index
	f   int // g + h
	g   int
	seq int // insertion order, breaks f ties
}

// frontier is a min-heap on (f, seq) implementing container/heap.Interface.
type frontier []entry

func (pq frontier) Len() int { return len(pq) }

func (pq frontier) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq frontier) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *frontier) Push(x interface{}) {
	*pq = append(*pq, x.(entry))
}

func (pq *frontier) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]
	return e
}
