package solver

import (
	"errors"

	"github.com/ironsheep/maze-tools-mcp/internal/grid"
)

// Sentinel errors for solver input validation. "No path" is not an error:
// it is reported as a nil grid.Path.
var (
	// ErrEmptyGrid indicates a nil grid or one with zero rows or columns.
	ErrEmptyGrid = grid.ErrEmptyGrid
	// ErrEmptyEndpointSet indicates an empty start or end set.
	ErrEmptyEndpointSet = errors.New("solver: start and end sets must be non-empty")
	// ErrInvalidCell indicates a start or end outside the grid bounds.
	ErrInvalidCell = errors.New("solver: cell outside grid bounds")
)
