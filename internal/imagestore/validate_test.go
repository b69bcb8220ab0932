package imagestore

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func TestValidateImageFormats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, img) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, img, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, img) },
	}

	for want, encode := range encoders {
		var buf bytes.Buffer
		if err := encode(&buf); err != nil {
			t.Fatal(err)
		}
		format, err := ValidateImage(buf.Bytes())
		if err != nil {
			t.Errorf("%s: unexpected error: %v", want, err)
			continue
		}
		if format != want {
			t.Errorf("detected format %q, want %q", format, want)
		}
	}
}

func TestValidateImageRejectsGarbage(t *testing.T) {
	if _, err := ValidateImage([]byte("definitely not an image")); err == nil {
		t.Fatal("expected error for garbage bytes")
	}
}

func TestValidateImageRejectsEmpty(t *testing.T) {
	if _, err := ValidateImage(nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}
