package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// FitWithin downsamples gray so that neither side exceeds maxDim, keeping
// the aspect ratio. Images already within bounds are returned unchanged;
// FitWithin never upsamples.
//
// Nearest-neighbor sampling is used so every output pixel is a copy of some
// input pixel: thin walls may disappear but are never smeared into
// intermediate intensities that could flip to passable.
func FitWithin(gray *image.Gray, maxDim int) *image.Gray {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return gray
	}

	var nw, nh int
	if w >= h {
		nw = maxDim
		nh = (h*maxDim + w/2) / w
	} else {
		nh = maxDim
		nw = (w*maxDim + h/2) / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return ResizeNearest(gray, nw, nh)
}

// ResizeNearest resizes gray to exactly width x height pixels using
// nearest-neighbor sampling.
func ResizeNearest(gray *image.Gray, width, height int) *image.Gray {
	if width < 1 || height < 1 {
		return image.NewGray(image.Rect(0, 0, 0, 0))
	}
	if gray.Bounds().Dx() == width && gray.Bounds().Dy() == height {
		return gray
	}

	src := imaging.Resize(gray, width, height, imaging.NearestNeighbor)
	dst := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.Pix[dst.PixOffset(x, y)] = src.Pix[src.PixOffset(x, y)]
		}
	}
	return dst
}
