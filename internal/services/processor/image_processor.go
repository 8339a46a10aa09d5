package processor

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// FallbackDimension is used for the rounding mask when neither an explicit
// dimension nor decodable metadata is available.
const FallbackDimension = 100

type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Decode decodes any registered format (jpeg, png, gif, bmp, tiff, webp).
func (p *ImageProcessor) Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Metadata reads the stored dimensions without decoding pixel data.
func (p *ImageProcessor) Metadata(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image metadata: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
