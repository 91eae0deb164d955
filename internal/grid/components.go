package grid

// Components labels the 4-connected regions of passable cells.
// Returns a slice of components; each component is a slice of row-major
// cell indices in BFS order. Components are ordered by their first cell in
// row-major scan order.
//
// Time:   O(R·C).
// Memory: O(R·C) for visited flags and output.
func Components(g *Grid) [][]int {
	total := g.Size()
	seen := make([]bool, total)
	var comps [][]int

	for i0 := 0; i0 < total; i0++ {
		if !g.open[i0] || seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true

		for qi := 0; qi < len(queue); qi++ {
			u := g.CellAt(queue[qi])
			for _, d := range offsets4 {
				v := Cell{Row: u.Row + d[0], Col: u.Col + d[1]}
				if !g.Passable(v) {
					continue
				}
				vi := g.Index(v)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, queue)
	}
	return comps
}

// ComponentStats summarizes the open region of a grid.
type ComponentStats struct {
	Count    int     `json:"count"`
	OpenArea int     `json:"open_area"`
	MeanArea float64 `json:"mean_area"`
	MaxArea  int     `json:"max_area"`
}

// Stats computes ComponentStats from the output of Components.
func Stats(comps [][]int) ComponentStats {
	s := ComponentStats{Count: len(comps)}
	for _, c := range comps {
		s.OpenArea += len(c)
		if len(c) > s.MaxArea {
			s.MaxArea = len(c)
		}
	}
	if s.Count > 0 {
		s.MeanArea = float64(s.OpenArea) / float64(s.Count)
	}
	return s
}
