// Package solver finds shortest paths on a grid.Grid.
//
// Movement is 4-connected with unit step cost. The search is A* with the
// Manhattan distance heuristic, which is admissible and consistent on such
// grids: the first time a target is popped from the frontier its cost is
// optimal.
//
// Solve answers "shortest path from any of a set of starts to any of a set
// of ends" with one multi-source, multi-target search. SolveAllPairs keeps
// the per-pair formulation (every start × end searched on its own, fewest
// cells wins) and SolvePair searches a single pair.
//
// A missing path is a normal result and is returned as a nil grid.Path with
// a nil error. Errors are reserved for invalid input:
//
//   - ErrEmptyGrid: nil grid or zero rows/columns
//   - ErrEmptyEndpointSet: no starts or no ends
//   - ErrInvalidCell: a start or end outside the grid
//
// Search state is allocated per call; concurrent calls on the same Grid are
// safe because grids are immutable.
package solver
