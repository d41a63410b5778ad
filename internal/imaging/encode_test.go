package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestJPEG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
}

func TestEncodePNG(t *testing.T) {
	tmpDir := t.TempDir()
	jpegPath := filepath.Join(tmpDir, "scan.jpg")
	writeTestJPEG(t, jpegPath)

	data, err := EncodePNG(jpegPath)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Output is not valid PNG: %v", err)
	}

	if _, ok := img.(*image.NRGBA); !ok {
		t.Errorf("Expected NRGBA output, got %T", img)
	}

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 4x4 output, got %v", img.Bounds())
	}
}

func TestEncodePNGMissingFile(t *testing.T) {
	_, err := EncodePNG(filepath.Join(t.TempDir(), "does-not-exist.png"))
	if err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestEncodePNGNotAnImage(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notes.txt")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := EncodePNG(path)
	if err == nil {
		t.Fatal("Expected decode error, got nil")
	}
}

func TestDataURL(t *testing.T) {
	tmpDir := t.TempDir()
	jpegPath := filepath.Join(tmpDir, "scan.jpg")
	writeTestJPEG(t, jpegPath)

	url, err := DataURL(jpegPath)
	if err != nil {
		t.Fatalf("DataURL failed: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(url, prefix) {
		t.Fatalf("Expected data URL prefix %q, got %q", prefix, url[:min(len(url), 40)])
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
	if err != nil {
		t.Fatalf("Payload is not valid base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("Decoded payload is not valid PNG: %v", err)
	}
}
