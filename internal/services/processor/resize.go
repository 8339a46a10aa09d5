package processor

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Resize fits img inside maxWidth x maxHeight preserving aspect ratio and
// never enlarging. A non-positive bound leaves that dimension unconstrained.
func (p *ImageProcessor) Resize(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width, height := fitInside(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if width == bounds.Dx() && height == bounds.Dy() {
		return img
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

func fitInside(srcWidth, srcHeight, maxWidth, maxHeight int) (int, int) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return srcWidth, srcHeight
	}

	scale := 1.0
	if maxWidth > 0 {
		scale = math.Min(scale, float64(maxWidth)/float64(srcWidth))
	}
	if maxHeight > 0 {
		scale = math.Min(scale, float64(maxHeight)/float64(srcHeight))
	}
	if scale >= 1 {
		return srcWidth, srcHeight
	}

	width := max(1, int(math.Round(float64(srcWidth)*scale)))
	height := max(1, int(math.Round(float64(srcHeight)*scale)))
	return width, height
}
