// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// encodePNG renders a flat test image of the given size.
func encodePNG(t *testing.T, width, height int) *bytes.Reader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestThumbnailResizesLargeImage(t *testing.T) {
	src := encodePNG(t, 800, 600)

	thumb, err := Thumbnail(src, ThumbMaxWidth)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if thumb == nil {
		t.Fatal("expected a thumbnail for an 800px image")
	}

	// The result is a JPEG constrained to the max width with the aspect
	// ratio preserved.
	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format: got %q, want jpeg", format)
	}
	if cfg.Width != ThumbMaxWidth {
		t.Errorf("width: got %d, want %d", cfg.Width, ThumbMaxWidth)
	}
	if cfg.Height != 300 {
		t.Errorf("height: got %d, want 300", cfg.Height)
	}
}

func TestThumbnailSkipsSmallImage(t *testing.T) {
	src := encodePNG(t, 200, 150)

	thumb, err := Thumbnail(src, ThumbMaxWidth)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if thumb != nil {
		t.Error("images narrower than the max width need no thumbnail")
	}
}

func TestThumbnailDecodesJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 500, 500))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	thumb, err := Thumbnail(bytes.NewReader(buf.Bytes()), ThumbMaxWidth)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if thumb == nil {
		t.Fatal("expected a thumbnail")
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	if _, err := Thumbnail(bytes.NewReader([]byte("not an image at all")), ThumbMaxWidth); err == nil {
		t.Error("expected an error for non-image data")
	}
}
