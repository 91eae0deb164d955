package solver

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/ironsheep/maze-tools-mcp/internal/grid"
)

// Stats describes the work done by a solve call.
type Stats struct {
	// Searches is the number of best-first searches run (1 for Solve,
	// |starts|×|ends| for SolveAllPairs).
	Searches int `json:"searches"`
	// Expanded is the total number of cells finalized across all searches.
	Expanded int `json:"expanded"`
	// Pushed is the total number of frontier insertions.
	Pushed int `json:"pushed"`
}

// Solve returns a shortest 4-connected path from any cell in starts to any
// cell in ends, or nil if no start can reach any end.
//
// Parameters:
//   - g: The traversability grid. It is only read, so one grid may be
//     solved from several goroutines at once.
//   - starts: Candidate start cells. Duplicates are harmless and cells on
//     walls take no part in the search.
//   - ends: Candidate end cells, treated the same way as starts.
//
// Returns:
//   - grid.Path: The cells from the chosen start to the chosen end,
//     inclusive. A start that is also a passable end gives a one-cell path.
//     nil means no passable start reaches any passable end, which is a
//     normal outcome and not an error.
//   - error: Non-nil only when the input itself is invalid.
//
// A single A* search is run with every passable start seeded at cost 0 and
// the heuristic h(c) = min over passable ends of Manhattan(c, end). That
// heuristic is admissible and consistent, so the first end popped from the
// frontier closes an optimal path and the result is never longer than the
// best individual (start, end) pair. Frontier ties break on insertion
// order, so equal inputs always give the same path.
//
// # Errors
//
//   - ErrEmptyGrid if g is nil or has no cells (checked first)
//   - ErrEmptyEndpointSet if starts or ends is empty
//   - ErrInvalidCell, wrapped with the cell and grid size, if any start or
//     end lies outside g
func Solve(g *grid.Grid, starts, ends []grid.Cell) (grid.Path, error) {
	p, _, err := SolveWithStats(g, starts, ends)
	return p, err
}

// SolveWithStats is Solve that also reports search statistics.
func SolveWithStats(g *grid.Grid, starts, ends []grid.Cell) (grid.Path, Stats, error) {
	if err := validate(g, starts, ends); err != nil {
		return nil, Stats{}, err
	}
	s := newSearch(g, ends)
	p := s.run(starts)
	return p, Stats{Searches: 1, Expanded: s.expanded, Pushed: s.pushed}, nil
}

// SolvePair runs A* from start to end with the Manhattan heuristic.
// Returns nil if end is unreachable or either cell is a wall; start == end
// on a passable cell yields the single-cell path.
func SolvePair(g *grid.Grid, start, end grid.Cell) (grid.Path, error) {
	starts, ends := []grid.Cell{start}, []grid.Cell{end}
	if err := validate(g, starts, ends); err != nil {
		return nil, err
	}
	return newSearch(g, ends).run(starts), nil
}

// SolveAllPairs evaluates every (start, end) combination independently and
// keeps the path with the fewest cells; ties go to the first found in
// starts-major iteration order. It returns the same length as Solve but
// repeats work across pairs.
func SolveAllPairs(g *grid.Grid, starts, ends []grid.Cell) (grid.Path, Stats, error) {
	if err := validate(g, starts, ends); err != nil {
		return nil, Stats{}, err
	}
	var (
		best  grid.Path
		stats Stats
	)
	for _, st := range starts {
		for _, en := range ends {
			s := newSearch(g, []grid.Cell{en})
			p := s.run([]grid.Cell{st})
			stats.Searches++
			stats.Expanded += s.expanded
			stats.Pushed += s.pushed
			if len(p) > 0 && (best == nil || len(p) < len(best)) {
				best = p
			}
		}
	}
	return best, stats, nil
}

func validate(g *grid.Grid, starts, ends []grid.Cell) error {
	if g.Rows() == 0 || g.Cols() == 0 {
		return ErrEmptyGrid
	}
	if len(starts) == 0 || len(ends) == 0 {
		return ErrEmptyEndpointSet
	}
	for _, c := range starts {
		if !g.InBounds(c) {
			return fmt.Errorf("%w: start %v in %dx%d grid", ErrInvalidCell, c, g.Rows(), g.Cols())
		}
	}
	for _, c := range ends {
		if !g.InBounds(c) {
			return fmt.Errorf("%w: end %v in %dx%d grid", ErrInvalidCell, c, g.Rows(), g.Cols())
		}
	}
	return nil
}

// search holds the state of one best-first search. It is created, run and
// dropped within a single call.
type search struct {
	g       *grid.Grid
	targets []grid.Cell // passable ends only
	isEnd   []bool
	cost    []int // best known g per cell, math.MaxInt if unseen
	prev    []int // predecessor index, -1 for seeds
	visited []bool
	pq      frontier
	seq     int

	expanded int
	pushed   int
}

func newSearch(g *grid.Grid, ends []grid.Cell) *search {
	n := g.Size()
	s := &search{
		g:       g,
		isEnd:   make([]bool, n),
		cost:    make([]int, n),
		prev:    make([]int, n),
		visited: make([]bool, n),
	}
	for i := range s.cost {
		s.cost[i] = math.MaxInt
		s.prev[i] = -1
	}
	for _, e := range ends {
		if g.Passable(e) && !s.isEnd[g.Index(e)] {
			s.isEnd[g.Index(e)] = true
			s.targets = append(s.targets, e)
		}
	}
	return s
}

// heuristic is the Manhattan distance to the nearest target.
func (s *search) heuristic(c grid.Cell) int {
	best := math.MaxInt
	for _, t := range s.targets {
		if d := grid.Manhattan(c, t); d < best {
			best = d
		}
	}
	return best
}

func (s *search) push(idx, cost int) {
	s.cost[idx] = cost
	heap.Push(&s.pq, entry{idx: idx, g: cost, f: cost + s.heuristic(s.g.CellAt(idx)), seq: s.seq})
	s.seq++
	s.pushed++
}

func (s *search) run(starts []grid.Cell) grid.Path {
	if len(s.targets) == 0 {
		return nil
	}
	for _, st := range starts {
		if !s.g.Passable(st) {
			continue
		}
		if idx := s.g.Index(st); s.cost[idx] != 0 {
			s.push(idx, 0)
		}
	}

	var nbrs []grid.Cell
	for s.pq.Len() > 0 {
		cur := heap.Pop(&s.pq).(entry)
		if s.visited[cur.idx] || cur.g > s.cost[cur.idx] {
			continue
		}
		if s.isEnd[cur.idx] {
			return s.reconstruct(cur.idx)
		}
		s.visited[cur.idx] = true
		s.expanded++

		nbrs = s.g.Neighbors(s.g.CellAt(cur.idx), nbrs[:0])
		for _, n := range nbrs {
			ni := s.g.Index(n)
			if s.visited[ni] {
				continue
			}
			if tentative := cur.g + 1; tentative < s.cost[ni] {
				s.prev[ni] = cur.idx
				s.push(ni, tentative)
			}
		}
	}
	return nil
}

// reconstruct follows predecessor links from idx back to a seed and returns
// the path in start-to-end order.
func (s *search) reconstruct(idx int) grid.Path {
	var p grid.Path
	for ; idx != -1; idx = s.prev[idx] {
		p = append(p, s.g.CellAt(idx))
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}
