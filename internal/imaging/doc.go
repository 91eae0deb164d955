// Package imaging provides the pixel-level operations that turn a maze image
// into a single-channel intensity raster ready for binarization.
//
// This package implements decoding, caching, region cropping, grayscale
// conversion, nearest-neighbor resizing and intensity histograms. All
// operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward. Every *image.Gray returned by this package is anchored
// at (0,0).
//
// # Intensity Pipeline
//
// The grid builder uses the package in this order:
//
//  1. Decode: raw bytes to image.Image (ErrImageDecode on failure)
//  2. Crop: optional Region of interest
//  3. Grayscale: Rec.601 luma (default) or CIE L* lightness
//  4. FitWithin: nearest-neighbor downsample to a maximum working dimension
//  5. Histogram / OtsuThreshold: optional data-driven threshold
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// pure and never modify their inputs.
package imaging
