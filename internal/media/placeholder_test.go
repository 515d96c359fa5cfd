package media

import (
	"bytes"
	"image"
	"image/jpeg"
	"path/filepath"
	"testing"
)

func TestPlaceholderGenerate(t *testing.T) {
	g := NewPlaceholderGenerator("")
	img := g.Generate()

	b := img.Bounds()
	if b.Dx() != 1200 || b.Dy() != 800 {
		t.Errorf("got %dx%d, want 1200x800", b.Dx(), b.Dy())
	}
}

func TestPlaceholderGenerateSized(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		wantW  int
		wantH  int
	}{
		{"Requested size honored", 640, 480, 640, 480},
		{"Zero width falls back", 0, 480, 400, 300},
		{"Zero height falls back", 640, 0, 400, 300},
		{"Negative dimensions fall back", -10, -10, 400, 300},
	}

	g := NewPlaceholderGenerator("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := g.GenerateSized(tt.width, tt.height)
			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPlaceholderAlwaysEncodable(t *testing.T) {
	// The last-resort strategy must yield an image the pipeline can
	// always persist, whatever font is (not) configured.
	generators := map[string]*PlaceholderGenerator{
		"Builtin face":    NewPlaceholderGenerator(""),
		"Missing font":    NewPlaceholderGenerator(filepath.Join(t.TempDir(), "nope.ttf")),
		"Unreadable path": NewPlaceholderGenerator("\x00"),
	}

	for name, g := range generators {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, g.Generate(), &jpeg.Options{Quality: ReencodeQuality}); err != nil {
				t.Fatalf("placeholder not encodable: %v", err)
			}

			cfg, _, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("encoded placeholder not decodable: %v", err)
			}
			if cfg.Width != 1200 || cfg.Height != 800 {
				t.Errorf("got %dx%d, want 1200x800", cfg.Width, cfg.Height)
			}
		})
	}
}

func TestPlaceholderLabelDrawn(t *testing.T) {
	g := NewPlaceholderGenerator("")
	img := g.Generate().(*image.NRGBA)

	// Some pixels near the center should differ from the body fill
	// where the label glyphs landed.
	found := false
	b := img.Bounds()
	for y := b.Dy()/2 - 20; y < b.Dy()/2+20 && !found; y++ {
		for x := b.Dx()/2 - 60; x < b.Dx()/2+60; x++ {
			if img.NRGBAAt(x, y) != placeholderBody {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no label pixels found near center")
	}
}
