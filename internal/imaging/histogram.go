package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/histogram"
)

// Histogram counts pixels per intensity value (256 bins) of a grayscale image.
func Histogram(gray *image.Gray) []int {
	// Gray pixels convert to RGBA with R == G == B, so the red channel
	// carries the intensity distribution.
	h := histogram.NewRGBAHistogram(gray)
	bins := make([]int, 256)
	copy(bins, h.R.Bins)
	return bins
}

// UniqueIntensities returns the distinct intensity values present in hist,
// in ascending order.
func UniqueIntensities(hist []int) []uint8 {
	var out []uint8
	for v, n := range hist {
		if n > 0 && v < 256 {
			out = append(out, uint8(v))
		}
	}
	return out
}

// OtsuThreshold picks the threshold T that maximizes the between-class
// variance of the two classes {v < T} and {v >= T}.
//
// Returns a value in 1..255 for images with at least two distinct
// intensities. A uniform image has no separating threshold; for it the
// returned value is the single intensity plus one (capped at 255), which
// makes every pixel fall on the dark side unless the image is pure white.
func OtsuThreshold(hist []int) int {
	total := 0
	sum := 0.0
	for v, n := range hist {
		total += n
		sum += float64(v * n)
	}
	if total == 0 {
		return 128
	}

	unique := UniqueIntensities(hist)
	if len(unique) == 1 {
		t := int(unique[0]) + 1
		if t > 255 {
			t = 255
		}
		return t
	}

	var (
		best     = -1.0
		bestT    = 128
		wBelow   = 0
		sumBelow = 0.0
	)
	// Candidate T: class below holds intensities 0..T-1.
	for t := 1; t < len(hist); t++ {
		wBelow += hist[t-1]
		sumBelow += float64((t - 1) * hist[t-1])
		wAbove := total - wBelow
		if wBelow == 0 || wAbove == 0 {
			continue
		}
		mBelow := sumBelow / float64(wBelow)
		mAbove := (sum - sumBelow) / float64(wAbove)
		between := float64(wBelow) * float64(wAbove) * (mBelow - mAbove) * (mBelow - mAbove)
		if between > best {
			best = between
			bestT = t
		}
	}
	return bestT
}
