package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func testPhoto(t *testing.T, w, h int, encode func(*bytes.Buffer, image.Image)) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 120, 255})
		}
	}
	var buf bytes.Buffer
	encode(&buf, img)
	return buf.Bytes()
}

func asJPEG(buf *bytes.Buffer, img image.Image) {
	jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
}

func asPNG(buf *bytes.Buffer, img image.Image) {
	png.Encode(buf, img)
}

func TestProcessJPEG(t *testing.T) {
	result, err := Process(bytes.NewReader(testPhoto(t, 100, 100, asJPEG)))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
	if len(result.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNGConvertedToJPEG(t *testing.T) {
	result, err := Process(bytes.NewReader(testPhoto(t, 100, 100, asPNG)))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg (always outputs JPEG), got %s", result.MIME)
	}
}

func TestProcessDownscale(t *testing.T) {
	result, err := Process(bytes.NewReader(testPhoto(t, 2048, 1536, asJPEG)))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %dx%d, got %dx%d", MaxDimension, MaxDimension, bounds.Dx(), bounds.Dy())
	}
	// Aspect ratio preserved: 2048x1536 -> 1024x768.
	if bounds.Dx() != 1024 || bounds.Dy() != 768 {
		t.Errorf("expected 1024x768, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(bytes.NewReader(testPhoto(t, 50, 50, asJPEG)))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small image should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	if _, err := Process(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessGIFRejected(t *testing.T) {
	if _, err := Process(bytes.NewReader([]byte("GIF89a..."))); err == nil {
		t.Error("expected error for GIF")
	}
}

func TestDataURL(t *testing.T) {
	result, err := Process(bytes.NewReader(testPhoto(t, 10, 10, asJPEG)))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	url := DataURL(result)
	if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
		t.Errorf("unexpected data URL prefix: %.40s", url)
	}
}
