package grid

import (
	"errors"

	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
)

// Sentinel errors for grid construction and building.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrInvalidWireValue indicates a wire grid value other than 0 or 1.
	ErrInvalidWireValue = errors.New("grid: wire cells must be 0 (open) or 1 (wall)")
	// ErrInvalidCoordinate indicates a wire coordinate that is not a [row, col] pair.
	ErrInvalidCoordinate = errors.New("grid: coordinates must be [row, col] pairs")
	// ErrEmptyImage indicates the image (after cropping and resizing) has zero width or height.
	ErrEmptyImage = errors.New("grid: image has zero width or height")
	// ErrInvalidOptions indicates builder options outside their allowed ranges.
	ErrInvalidOptions = errors.New("grid: invalid build options")
	// ErrImageDecode indicates the input bytes are not a decodable image.
	ErrImageDecode = imaging.ErrImageDecode
)
