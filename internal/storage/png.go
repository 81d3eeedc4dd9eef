package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrInvalidImage = errors.New("body is not a valid image")

// MaxPixels bounds width*height. Decoders allocate the whole pixel buffer from
// the header before reading any data, so larger images are refused up front.
const MaxPixels = 25_000_000

// NormalizePNG checks that raw is a decodable image and returns it as PNG.
// PNG input comes back unchanged so uploads round-trip byte for byte.
func NormalizePNG(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: empty %s image", ErrInvalidImage, format)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %s image of %dx%d exceeds %d pixels", ErrInvalidImage, format, cfg.Width, cfg.Height, MaxPixels)
	}

	// The header can be fine while the pixel data is truncated, so decode fully.
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	if format == "png" {
		return raw, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
