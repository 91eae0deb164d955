package grid

import (
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/maze-tools-mcp/internal/imaging"
)

// ThresholdPolicy selects how the binarization threshold is obtained.
type ThresholdPolicy string

const (
	// ThresholdFixed uses Options.Threshold as given.
	ThresholdFixed ThresholdPolicy = "fixed"
	// ThresholdOtsu derives the threshold from the image histogram.
	ThresholdOtsu ThresholdPolicy = "otsu"
)

// Default builder settings.
//
// A maze is usually one connected open region, so the mean component area
// is close to the open area and adaptive sizing yields about
// 1 / (open fraction × DefaultSpacingFactor) cells. With 0.0001 a maze that
// is half open gets about 20000 cells (roughly 140 per side on a square
// image), fine enough for one- and two-pixel walls of a 200px working
// image to survive the nearest-neighbor resize. Noisy images with many
// small regions hit the working-size cap instead.
const (
	DefaultThreshold         = 200
	DefaultMaxDimension      = 200
	DefaultSpacingFactor     = 0.0001
	DefaultMinResolution     = 30
	DefaultFallbackDimension = 50
)

// Options controls how an image is turned into a Grid.
type Options struct {
	// Threshold is the binarization level (0-255). Pixels with intensity
	// >= Threshold are passable; strictly darker pixels are walls.
	Threshold int
	// ThresholdPolicy chooses between the fixed Threshold and Otsu's method.
	// Empty means ThresholdFixed.
	ThresholdPolicy ThresholdPolicy
	// MaxDimension bounds the working image: larger images are
	// downsampled (nearest-neighbor, aspect preserved) to fit.
	MaxDimension int
	// AdaptiveSizing derives the grid resolution from the size of the open
	// regions instead of using one cell per working pixel.
	AdaptiveSizing bool
	// SpacingFactor scales the mean open-component area into the area
	// covered by one grid cell (adaptive sizing only).
	SpacingFactor float64
	// MinResolution floors each adaptive grid dimension.
	MinResolution int
	// FallbackDimension is the square grid size used by adaptive sizing
	// when the image has no open region.
	FallbackDimension int
	// Luminance selects the grayscale conversion.
	Luminance imaging.Luminance
	// Region optionally restricts the build to part of the image.
	Region *imaging.Region
	// Debug logs the distinct intensities and an ASCII dump of the grid.
	Debug bool
}

// DefaultOptions returns threshold 200, max dimension 200, adaptive sizing
// off, fixed threshold policy and Rec.601 luminance.
func DefaultOptions() Options {
	return Options{
		Threshold:         DefaultThreshold,
		ThresholdPolicy:   ThresholdFixed,
		MaxDimension:      DefaultMaxDimension,
		SpacingFactor:     DefaultSpacingFactor,
		MinResolution:     DefaultMinResolution,
		FallbackDimension: DefaultFallbackDimension,
		Luminance:         imaging.LuminanceRec601,
	}
}

// Validate checks option ranges. All failures wrap ErrInvalidOptions.
func (o Options) Validate() error {
	if o.Threshold < 0 || o.Threshold > 255 {
		return fmt.Errorf("%w: threshold %d outside 0-255", ErrInvalidOptions, o.Threshold)
	}
	switch o.ThresholdPolicy {
	case "", ThresholdFixed, ThresholdOtsu:
	default:
		return fmt.Errorf("%w: unknown threshold policy %q", ErrInvalidOptions, o.ThresholdPolicy)
	}
	if o.MaxDimension < 1 {
		return fmt.Errorf("%w: max dimension must be positive, got %d", ErrInvalidOptions, o.MaxDimension)
	}
	if o.AdaptiveSizing {
		if o.SpacingFactor <= 0 {
			return fmt.Errorf("%w: spacing factor must be positive, got %g", ErrInvalidOptions, o.SpacingFactor)
		}
		if o.MinResolution < 1 || o.FallbackDimension < 1 {
			return fmt.Errorf("%w: adaptive resolutions must be positive", ErrInvalidOptions)
		}
	}
	if _, err := imaging.ParseLuminance(string(o.Luminance)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return nil
}

// Result is the outcome of a grid build.
type Result struct {
	Grid *Grid
	// Threshold is the level actually applied (differs from
	// Options.Threshold under ThresholdOtsu).
	Threshold int
	// WorkingWidth and WorkingHeight are the image size after cropping and
	// FitWithin, before any adaptive resize.
	WorkingWidth  int
	WorkingHeight int
	// Intensities lists the distinct gray values of the working image.
	Intensities []uint8
}

// Build decodes data and converts it into a Grid.
//
// Parameters:
//   - data: Encoded image bytes. PNG, JPEG and GIF are recognized by their
//     content, not by any file name.
//   - opts: Build settings. Start from DefaultOptions and override fields;
//     a zero Options fails validation.
//
// Returns:
//   - *Result: The grid plus the threshold actually applied, the working
//     image size and the distinct intensities seen, so a caller can tell
//     why a maze came out solid or empty.
//   - error: Non-nil if the options, the bytes or the image are unusable.
//
// Options are validated before any decoding work is done.
//
// # Errors
//
//   - ErrInvalidOptions for out-of-range options or a region outside the image
//   - ErrImageDecode if data is empty or not a supported image
//   - ErrEmptyImage if the image has zero width or height
func Build(data []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	img, _, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	return BuildImage(img, opts)
}

// BuildImage converts an already decoded image into a Grid. The pipeline is:
// crop, grayscale, fit within MaxDimension, resolve threshold, optional
// adaptive resize, binarize. It is deterministic: equal inputs always give
// bit-identical grids.
func BuildImage(img image.Image, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	if opts.Region != nil {
		cropped, err := imaging.Crop(img, *opts.Region)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
		img = cropped
	}

	gray := imaging.Grayscale(img, opts.Luminance)
	gray = imaging.FitWithin(gray, opts.MaxDimension)
	bounds := gray.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, ErrEmptyImage
	}

	hist := imaging.Histogram(gray)
	threshold := opts.Threshold
	if opts.ThresholdPolicy == ThresholdOtsu {
		threshold = imaging.OtsuThreshold(hist)
	}

	res := &Result{
		Threshold:     threshold,
		WorkingWidth:  bounds.Dx(),
		WorkingHeight: bounds.Dy(),
		Intensities:   imaging.UniqueIntensities(hist),
	}

	g := binarize(gray, threshold)
	if opts.AdaptiveSizing {
		rows, cols := AdaptiveSize(g, opts)
		g = binarize(imaging.ResizeNearest(gray, cols, rows), threshold)
	}
	res.Grid = g

	if opts.Debug {
		log.Printf("grid: working image %dx%d, threshold %d, intensities %v",
			res.WorkingWidth, res.WorkingHeight, threshold, res.Intensities)
		log.Printf("grid: %dx%d, %d open cells\n%s", g.Rows(), g.Cols(), g.OpenCount(), ASCII(g, nil))
	}
	return res, nil
}

// binarize marks pixels with intensity >= threshold as passable.
func binarize(gray *image.Gray, threshold int) *Grid {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	g := &Grid{rows: h, cols: w, open: make([]bool, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.open[y*w+x] = int(gray.Pix[gray.PixOffset(x, y)]) >= threshold
		}
	}
	return g
}
