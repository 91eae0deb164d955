package grid

import "math"

// AdaptiveSize picks a grid resolution from the open-region structure of a
// full-resolution binarized grid.
//
// The target cell count is area / (mean component area × SpacingFactor),
// distributed over rows and columns with the aspect ratio of g. Each side
// is floored at MinResolution and capped at MaxDimension, and is never
// larger than the matching side of g: an image smaller than MinResolution
// keeps its own size. When g has no open cells each side is
// FallbackDimension, again no larger than g.
func AdaptiveSize(g *Grid, opts Options) (rows, cols int) {
	stats := Stats(Components(g))
	if stats.Count == 0 {
		return clampDim(opts.FallbackDimension, g.Rows(), opts),
			clampDim(opts.FallbackDimension, g.Cols(), opts)
	}

	area := float64(g.Size())
	target := area / (stats.MeanArea * opts.SpacingFactor)
	aspect := float64(g.Cols()) / float64(g.Rows())

	rows = int(math.Sqrt(target / aspect))
	cols = int(math.Sqrt(target * aspect))
	return clampDim(rows, g.Rows(), opts), clampDim(cols, g.Cols(), opts)
}

// clampDim bounds one side to [min(MinResolution, working), working],
// then to MaxDimension.
func clampDim(v, working int, opts Options) int {
	floor := opts.MinResolution
	if floor > working {
		floor = working
	}
	if v > working {
		v = working
	}
	if v < floor {
		v = floor
	}
	if opts.MaxDimension > 0 && v > opts.MaxDimension {
		v = opts.MaxDimension
	}
	return v
}
