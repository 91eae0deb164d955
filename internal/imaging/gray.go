package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Luminance selects how color pixels are reduced to a single intensity.
type Luminance string

const (
	// LuminanceRec601 weights channels with ITU-R BT.601
	// (0.299*R + 0.587*G + 0.114*B). This is the default.
	LuminanceRec601 Luminance = "rec601"

	// LuminancePerceptual uses the CIE L* lightness of the pixel, scaled to
	// 0-255. Mid-tone colored walls separate better from a white background.
	LuminancePerceptual Luminance = "perceptual"
)

// ParseLuminance maps a user supplied name to a Luminance. The empty string
// selects LuminanceRec601.
func ParseLuminance(name string) (Luminance, error) {
	switch Luminance(name) {
	case "", LuminanceRec601:
		return LuminanceRec601, nil
	case LuminancePerceptual:
		return LuminancePerceptual, nil
	default:
		return "", fmt.Errorf("unknown luminance mode: %s", name)
	}
}

// Grayscale converts img to a single-channel 8-bit image anchored at (0,0).
//
// Fully transparent pixels carry no color information; they are treated as
// white background in both modes.
func Grayscale(img image.Image, mode Luminance) *image.Gray {
	switch mode {
	case LuminancePerceptual:
		return perceptualGray(img)
	default:
		return rec601Gray(img)
	}
}

func rec601Gray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	src := imaging.Grayscale(img)
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			i := src.PixOffset(x, y)
			if src.Pix[i+3] == 0 {
				dst.Pix[dst.PixOffset(x, y)] = 0xFF
				continue
			}
			// imaging.Grayscale writes the same value to R, G and B
			dst.Pix[dst.PixOffset(x, y)] = src.Pix[i]
		}
	}
	return dst
}

func perceptualGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c, ok := colorful.MakeColor(img.At(x+bounds.Min.X, y+bounds.Min.Y))
			if !ok {
				dst.Pix[dst.PixOffset(x, y)] = 0xFF
				continue
			}
			l, _, _ := c.Lab()
			dst.Pix[dst.PixOffset(x, y)] = uint8(math.Round(clampUnit(l) * 255))
		}
	}
	return dst
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
