package media

import (
	"bytes"
	"image"
	"image/draw"

	"golang.org/x/image/tiff"
)

// DecodeTIFF decodes a TIFF-family container into an RGB raster.
// Non-RGB color modes (CMYK, YCbCr, grayscale) are converted so
// downstream resize/encode logic only ever sees RGB.
func DecodeTIFF(data []byte) (image.Image, error) {
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Format: "tiff", Err: err}
	}
	return toNRGBA(img), nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
