// Package grid converts maze images into immutable traversability grids.
//
// A Grid is a rectangular boolean matrix in which true marks a passable
// cell. Polarity is fixed: a pixel is passable iff its grayscale intensity
// is >= the threshold, so dark ink on a light background is wall. The wire
// form used by clients is inverted (1 = wall, 0 = open); see FromWire and
// ToWire.
//
// Build runs the whole pipeline on encoded image bytes; BuildImage starts
// from a decoded image. Both are pure: no state is kept between calls, so
// concurrent callers each get an independent Grid.
//
// Adaptive sizing labels the 4-connected open regions (Components) and
// chooses a resolution so that each grid cell covers roughly the mean open
// region area scaled by Options.SpacingFactor. The constants are tuning
// policy, not invariants.
package grid
