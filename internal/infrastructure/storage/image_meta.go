package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

// ImageProcessor decodes carousel images and produces the thumbnail variant.
// The width floor matches the one enforced at request time; the worker
// re-checks the actual bytes because the request phase only saw declared
// metadata.
type ImageProcessor struct {
	MinWidth int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MinWidth: 1200}
}

// Probe decodes only the image header and returns format and dimensions.
func (p *ImageProcessor) Probe(data []byte) (format string, width, height int, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("not an image: %w", err)
	}
	return format, cfg.Width, cfg.Height, nil
}

// Validate checks the decoded bytes against the carousel rules.
func (p *ImageProcessor) Validate(data []byte) error {
	format, width, _, err := p.Probe(data)
	if err != nil {
		return err
	}
	switch format {
	case "jpeg", "png", "webp":
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png/webp)", format)
	}
	if width < p.MinWidth {
		return fmt.Errorf("image width %dpx below %dpx minimum", width, p.MinWidth)
	}
	return nil
}

// Thumbnail resizes the image to fit within size x size and encodes it as
// JPEG quality 90.
func (p *ImageProcessor) Thumbnail(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}
	resized := imaging.Fit(img, size, size, imaging.Lanczos)
	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode thumbnail: %w", err)
	}
	return b.Bytes(), nil
}
