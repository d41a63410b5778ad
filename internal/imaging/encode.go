package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// EncodePNG reads the image at path, decodes it in any registered format,
// and re-renders it as a PNG with an alpha channel. The conversion happens
// entirely in memory; no temporary file is written.
func EncodePNG(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	// Normalize to NRGBA so the output PNG always carries an alpha channel,
	// regardless of the source color model.
	bounds := img.Bounds()
	rgba := image.NewNRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode %s image as PNG: %w", format, err)
	}

	return buf.Bytes(), nil
}

// DataURL encodes the image at path as a data: URI suitable for embedding
// in a chat-completion image_url payload.
func DataURL(path string) (string, error) {
	data, err := EncodePNG(path)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}
