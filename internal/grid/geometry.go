package grid

// offsets4 lists the orthogonal moves N, E, S, W as (dRow, dCol).
var offsets4 = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|, the exact step count
// between two cells on an obstacle-free 4-connected grid.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

// Adjacent reports whether a and b differ by exactly one orthogonal step.
func Adjacent(a, b Cell) bool {
	return Manhattan(a, b) == 1
}

// Neighbors appends to buf the passable 4-connected neighbors of c and
// returns the extended slice. Order is N, E, S, W.
func (g *Grid) Neighbors(c Cell, buf []Cell) []Cell {
	for _, d := range offsets4 {
		n := Cell{Row: c.Row + d[0], Col: c.Col + d[1]}
		if g.Passable(n) {
			buf = append(buf, n)
		}
	}
	return buf
}

// ValidPath reports whether p is a non-empty walk of passable cells where
// every consecutive pair is 4-adjacent.
func (g *Grid) ValidPath(p Path) bool {
	if len(p) == 0 {
		return false
	}
	for i, c := range p {
		if !g.Passable(c) {
			return false
		}
		if i > 0 && !Adjacent(p[i-1], c) {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
