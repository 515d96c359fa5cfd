package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"math/rand"
	"testing"
)

// noiseJPEG encodes an incompressible image so the result reliably
// exceeds the size cap.
func noiseJPEG(t testing.TB, width, height, quality int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = byte(rng.Intn(256))
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		t.Fatalf("failed to encode noise JPEG: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output does not decode: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"Landscape downscale", 3000, 2000, 800, 800, 800, 533},
		{"Portrait downscale", 2000, 3000, 800, 800, 533, 800},
		{"Already within bounds", 640, 480, 1200, 1200, 640, 480},
		{"Exact fit untouched", 1200, 1200, 1200, 1200, 1200, 1200},
		{"Never upscaled", 100, 80, 1200, 1200, 100, 80},
		{"Asymmetric bounds", 4000, 1000, 1200, 400, 1200, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tt.srcW, tt.srcH))
			got := FitWithin(src, tt.maxW, tt.maxH)
			b := got.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFitWithinReturnsSameImageWhenInBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	if got := FitWithin(src, 1200, 1200); got != image.Image(src) {
		t.Error("in-bounds image should be returned without copying")
	}
}

func TestOptimizeSmallInputPassesThrough(t *testing.T) {
	data := encodeTestJPEG(t, 320, 240, 85)
	if len(data) >= SizeCap {
		t.Fatalf("test image unexpectedly large: %d bytes", len(data))
	}

	got := Optimize(data, DefaultMaxWidth, DefaultMaxHeight)
	if !bytes.Equal(got, data) {
		t.Error("input under the size cap must pass through byte-identical")
	}
}

func TestOptimizeBoundsOversizedImage(t *testing.T) {
	data := noiseJPEG(t, 2400, 1600, 95)
	if len(data) < SizeCap {
		t.Fatalf("noise image too small to exercise optimization: %d bytes", len(data))
	}

	got := Optimize(data, DefaultMaxWidth, DefaultMaxHeight)
	w, h := decodeDims(t, got)
	if w > DefaultMaxWidth || h > DefaultMaxHeight {
		t.Errorf("optimized image %dx%d exceeds %dx%d bound", w, h, DefaultMaxWidth, DefaultMaxHeight)
	}
	if w != 1200 || h != 800 {
		t.Errorf("got %dx%d, want 1200x800", w, h)
	}
}

func TestOptimizeUndecodableInputUnchanged(t *testing.T) {
	junk := bytes.Repeat([]byte{0xDE, 0xAD, 0xBE, 0xEF}, 40*1024)
	got := Optimize(junk, DefaultMaxWidth, DefaultMaxHeight)
	if !bytes.Equal(got, junk) {
		t.Error("undecodable input must be returned unchanged")
	}
}

func TestCompressToCapPassThrough(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"Empty", nil},
		{"Small arbitrary bytes", bytes.Repeat([]byte{0x01}, 1024)},
		{"Exactly at cap", make([]byte, SizeCap)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompressToCap(tt.data)
			if !bytes.Equal(got, tt.data) {
				t.Error("input at or under the cap must pass through byte-identical")
			}
		})
	}
}

func TestCompressToCapRecompressesOversized(t *testing.T) {
	data := noiseJPEG(t, 1600, 1200, 95)
	if len(data) <= SizeCap {
		t.Fatalf("noise image too small to exercise compression: %d bytes", len(data))
	}

	got := CompressToCap(data)
	if bytes.Equal(got, data) {
		t.Error("oversized input should be re-encoded")
	}
	if len(got) >= len(data) {
		t.Errorf("re-encode grew output: %d -> %d bytes", len(data), len(got))
	}

	// Dimensions are preserved; only quality changes.
	w, h := decodeDims(t, got)
	if w != 1600 || h != 1200 {
		t.Errorf("compression changed dimensions to %dx%d", w, h)
	}
}

func TestCompressToCapUndecodableInputUnchanged(t *testing.T) {
	junk := bytes.Repeat([]byte{0xFF, 0x00}, 80*1024)
	got := CompressToCap(junk)
	if !bytes.Equal(got, junk) {
		t.Error("undecodable input must be returned unchanged")
	}
}

func TestEncodeJPEG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 100, 60))
	for i := range src.Pix {
		src.Pix[i] = 0x7F
	}

	data, err := EncodeJPEG(src, BaseQuality)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("round trip decode failed: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 60 {
		t.Errorf("round trip changed dimensions to %v", img.Bounds())
	}
}

func TestEncodeJPEGQualityOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	src := image.NewNRGBA(image.Rect(0, 0, 400, 300))
	for i := range src.Pix {
		src.Pix[i] = byte(rng.Intn(256))
	}

	hi, err := EncodeJPEG(src, 95)
	if err != nil {
		t.Fatal(err)
	}
	lo, err := EncodeJPEG(src, minQuality)
	if err != nil {
		t.Fatal(err)
	}
	if len(lo) >= len(hi) {
		t.Errorf("quality %d output (%d bytes) not smaller than quality 95 (%d bytes)", minQuality, len(lo), len(hi))
	}
}
