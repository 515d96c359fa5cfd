package media

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderWidth  = 1200
	placeholderHeight = 800
	placeholderLabel  = "RAW"

	// Minimal fallback raster when drawing itself fails.
	fallbackWidth  = 400
	fallbackHeight = 300
)

var (
	placeholderBody = color.NRGBA{220, 220, 220, 255}
	placeholderText = color.NRGBA{150, 150, 150, 255}
	fallbackBody    = color.NRGBA{200, 200, 200, 255}
)

// PlaceholderGenerator synthesizes a stand-in raster when no real
// thumbnail can be derived. Generate never fails: the contract of the
// last-resort strategy is that it always returns an encodable image.
type PlaceholderGenerator struct {
	fontPath string
}

// NewPlaceholderGenerator returns a generator. fontPath may name a TTF
// used for the centered label; when empty or unreadable the built-in
// bitmap face is used, and when even that cannot draw, the label is
// dropped.
func NewPlaceholderGenerator(fontPath string) *PlaceholderGenerator {
	return &PlaceholderGenerator{fontPath: fontPath}
}

// Generate returns the default 1200x800 placeholder.
func (g *PlaceholderGenerator) Generate() image.Image {
	return g.GenerateSized(placeholderWidth, placeholderHeight)
}

// GenerateSized returns a flat placeholder with a centered label.
// Invalid dimensions or a drawing panic degrade to a minimal 400x300
// flat raster instead of propagating an error.
func (g *PlaceholderGenerator) GenerateSized(width, height int) (img image.Image) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("placeholder drawing failed (%v), using minimal fallback", r)
			img = flatRaster(fallbackWidth, fallbackHeight, fallbackBody)
		}
	}()

	if width <= 0 || height <= 0 {
		return flatRaster(fallbackWidth, fallbackHeight, fallbackBody)
	}

	canvas := flatRaster(width, height, placeholderBody)

	if err := g.drawLabel(canvas, placeholderLabel); err != nil {
		// Label is cosmetic; the flat raster is still a valid placeholder.
		logging.Warn("placeholder label not drawn: %v", err)
	}

	return canvas
}

func (g *PlaceholderGenerator) drawLabel(canvas *image.NRGBA, label string) error {
	face, err := g.face(canvas.Bounds().Dx())
	if err != nil {
		return err
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(placeholderText),
		Face: face,
	}

	bounds := canvas.Bounds()
	width := d.MeasureString(label)
	metrics := face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(bounds.Dx()/2) - width/2,
		Y: fixed.I(bounds.Dy()/2) + (metrics.Ascent-metrics.Descent)/2,
	}
	d.DrawString(label)
	return nil
}

func (g *PlaceholderGenerator) face(canvasWidth int) (font.Face, error) {
	if g.fontPath == "" {
		return basicfont.Face7x13, nil
	}

	data, err := os.ReadFile(g.fontPath)
	if err != nil {
		logging.Debug("placeholder font %s unreadable (%v), using bitmap face", g.fontPath, err)
		return basicfont.Face7x13, nil
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		logging.Debug("placeholder font %s unparseable (%v), using bitmap face", g.fontPath, err)
		return basicfont.Face7x13, nil
	}

	return truetype.NewFace(ttf, &truetype.Options{
		Size: float64(canvasWidth) / 8,
		DPI:  72,
	}), nil
}

func flatRaster(width, height int, fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{fill}, image.Point{}, draw.Src)
	return img
}
