package media

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"

	"github.com/disintegration/imaging"
)

const (
	// DefaultMaxWidth bounds thumbnails derived from RAW sources.
	DefaultMaxWidth = 1200
	// DefaultMaxHeight bounds thumbnails derived from RAW sources.
	DefaultMaxHeight = 1200
	// JpegLongEdge bounds thumbnails resized directly from JPEG
	// sources; deliberately smaller than the RAW bound.
	JpegLongEdge = 800

	// BaseQuality is the first-pass JPEG quality for direct resizes.
	BaseQuality = 80
	// ReencodeQuality is used when re-encoding during optimization and
	// for rasters produced by the RAW strategy chain.
	ReencodeQuality = 85

	// SizeCap is the target byte size for a finished thumbnail.
	SizeCap = 100 * 1024

	minQuality      = 50
	qualityStepSize = 20 * 1024
)

// FitWithin bounds an image to maxW x maxH preserving aspect ratio.
// Images already within bounds are returned unchanged; dimensions are
// never increased.
func FitWithin(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// EncodeJPEG encodes an image as JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Optimize bounds an encoded thumbnail to maxW x maxH and normalizes
// its EXIF orientation, re-encoding at ReencodeQuality. Inputs under
// SizeCap are returned unchanged (already good enough to persist
// as-is), and any failure returns the input unchanged: optimization is
// a best-effort enhancement, never a requirement for producing output.
func Optimize(data []byte, maxW, maxH int) []byte {
	if len(data) < SizeCap {
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		logging.Warn("optimize: decode failed, keeping original bytes: %v", err)
		return data
	}

	bounded := FitWithin(img, maxW, maxH)
	if bounded != img {
		logging.Debug("optimize: resized %dx%d -> %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), bounded.Bounds().Dx(), bounded.Bounds().Dy())
	}

	out, err := EncodeJPEG(bounded, ReencodeQuality)
	if err != nil {
		logging.Warn("optimize: encode failed, keeping original bytes: %v", err)
		return data
	}
	return out
}

// CompressToCap applies the single corrective compression pass: inputs
// at or under SizeCap pass through byte-identical; larger inputs are
// re-encoded once at a quality reduced proportionally to the overage,
// floored at 50. One pass only; pathological inputs may still exceed
// the cap afterwards.
func CompressToCap(data []byte) []byte {
	if len(data) <= SizeCap {
		return data
	}

	quality := BaseQuality - (len(data)-SizeCap)/qualityStepSize
	if quality < minQuality {
		quality = minQuality
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		logging.Warn("compress: decode failed, keeping original bytes: %v", err)
		return data
	}

	out, err := EncodeJPEG(img, quality)
	if err != nil {
		logging.Warn("compress: encode failed, keeping original bytes: %v", err)
		return data
	}

	logging.Debug("compress: %d -> %d bytes at quality %d", len(data), len(out), quality)
	return out
}
