package layout

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Register image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrUnreadableImage indicates a payload that is not a supported raster image.
var ErrUnreadableImage = errors.New("unreadable image")

// ImageInfo describes the real raster data behind an image record.
type ImageInfo struct {
	// Format is the decoder name (png, jpeg, gif, bmp, webp).
	Format string
	Width  int
	Height int
}

// Probe decodes the image header without decoding the pixels.
func Probe(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

