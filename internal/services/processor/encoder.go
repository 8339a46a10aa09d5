package processor

import (
	"fmt"
	"image"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-delivery/internal/models"
)

// Encode writes img in the given format. PNG is lossless and ignores quality;
// out-of-range quality values are clamped to 1..100 for the lossy formats.
func (p *ImageProcessor) Encode(w io.Writer, img image.Image, format models.OutputFormat, quality int) error {
	var err error
	switch format {
	case models.FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case models.FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(clampQuality(quality)))
	case models.FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Quality: float32(clampQuality(quality))})
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

func clampQuality(quality int) int {
	return min(100, max(1, quality))
}
