package grid

import (
	"fmt"
)

// Cell is a (row, col) coordinate within a Grid. It is a comparable value
// type and can be used as a map key.
type Cell struct {
	Row int
	Col int
}

// String formats the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Path is an ordered sequence of 4-adjacent cells from a start to an end.
// A nil Path means no path was found.
type Path []Cell

// Len returns the number of steps in the path (cells minus one), or -1 for
// an empty path.
func (p Path) Len() int {
	return len(p) - 1
}

// Grid is an immutable rectangular traversability map. A true cell is
// passable, a false cell is a wall.
//
// Cells are stored row-major; Index and CellAt convert between a Cell and
// its flat index.
type Grid struct {
	rows, cols int
	open       []bool
}

// New builds a Grid from a rectangular [][]bool where true marks a passable
// cell. The input is copied.
// Returns ErrEmptyGrid if cells has no rows or no columns,
// ErrNonRectangular if any row length differs.
func New(cells [][]bool) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(cells), len(cells[0])
	g := &Grid{rows: rows, cols: cols, open: make([]bool, rows*cols)}
	for r, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(row), cols)
		}
		copy(g.open[r*cols:], row)
	}
	return g, nil
}

// FromWire builds a Grid from the wire representation, where 1 is a wall
// and 0 is passable.
//
// Parameters:
//   - values: Rows of 0/1 cells, as sent by clients of the MCP tools.
//     Row 0 is the top of the maze.
//
// Returns:
//   - *Grid: A new grid that shares no memory with values.
//   - error: Non-nil if values is not a usable grid. No partial grid is
//     returned.
//
// The wire polarity is the inverse of Passable: a cell that is 1 on the
// wire reports Passable false.
//
// # Errors
//
//   - ErrEmptyGrid if values has no rows or its first row is empty
//   - ErrNonRectangular if a row length differs from the first row
//   - ErrInvalidWireValue if a cell is neither 0 nor 1, with its position
func FromWire(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	g := &Grid{rows: rows, cols: cols, open: make([]bool, rows*cols)}
	for r, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(row), cols)
		}
		for c, v := range row {
			switch v {
			case 0:
				g.open[r*cols+c] = true
			case 1:
			default:
				return nil, fmt.Errorf("%w: got %d at (%d,%d)", ErrInvalidWireValue, v, r, c)
			}
		}
	}
	return g, nil
}

// ToWire returns the wire representation of g: 1 for walls, 0 for passable
// cells. Note this is the inverse of Passable.
func (g *Grid) ToWire() [][]int {
	out := make([][]int, g.rows)
	for r := 0; r < g.rows; r++ {
		row := make([]int, g.cols)
		for c := 0; c < g.cols; c++ {
			if !g.open[r*g.cols+c] {
				row[c] = 1
			}
		}
		out[r] = row
	}
	return out
}

// Bools returns a copy of the grid as [][]bool, true for passable.
func (g *Grid) Bools() [][]bool {
	out := make([][]bool, g.rows)
	for r := range out {
		out[r] = make([]bool, g.cols)
		copy(out[r], g.open[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Rows returns the number of rows. A nil grid has zero rows.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return g.rows
}

// Cols returns the number of columns. A nil grid has zero columns.
func (g *Grid) Cols() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// Size returns rows*cols.
func (g *Grid) Size() int {
	return g.Rows() * g.Cols()
}

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows() && c.Col >= 0 && c.Col < g.Cols()
}

// Passable reports whether c is in bounds and open.
func (g *Grid) Passable(c Cell) bool {
	return g.InBounds(c) && g.open[c.Row*g.cols+c.Col]
}

// OpenCount returns the number of passable cells.
func (g *Grid) OpenCount() int {
	n := 0
	for _, o := range g.open {
		if o {
			n++
		}
	}
	return n
}

// Index maps c to its row-major index. c must be in bounds.
func (g *Grid) Index(c Cell) int {
	return c.Row*g.cols + c.Col
}

// CellAt converts a row-major index back to a Cell.
func (g *Grid) CellAt(idx int) Cell {
	return Cell{Row: idx / g.cols, Col: idx % g.cols}
}

// Equal reports whether g and o have the same shape and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.Rows() != o.Rows() || g.Cols() != o.Cols() {
		return false
	}
	if g.Size() == 0 {
		return true
	}
	for i := range g.open {
		if g.open[i] != o.open[i] {
			return false
		}
	}
	return true
}

// CellsFromWire converts [[row, col], ...] pairs to cells. Every pair must
// hold exactly two values; a short or long pair wraps ErrInvalidCoordinate
// and names its index. Bounds are not checked here.
func CellsFromWire(pairs [][]int) ([]Cell, error) {
	cells := make([]Cell, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("%w: entry %d is %v", ErrInvalidCoordinate, i, p)
		}
		cells[i] = Cell{Row: p[0], Col: p[1]}
	}
	return cells, nil
}

// ToWire converts the path to [[row, col], ...]. A nil path stays nil so it
// encodes as JSON null.
func (p Path) ToWire() [][2]int {
	if p == nil {
		return nil
	}
	out := make([][2]int, len(p))
	for i, c := range p {
		out[i] = [2]int{c.Row, c.Col}
	}
	return out
}
