package grid

import "strings"

// ASCII renders g one line per row: '#' for walls, '.' for open cells and
// '*' for cells on path (which may be nil).
func ASCII(g *Grid, path Path) string {
	onPath := make(map[Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var b strings.Builder
	b.Grow(g.Rows() * (g.Cols() + 1))
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := Cell{Row: r, Col: c}
			switch {
			case onPath[cell]:
				b.WriteByte('*')
			case g.Passable(cell):
				b.WriteByte('.')
			default:
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
