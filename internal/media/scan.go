package media

import (
	"bytes"
	"image/jpeg"

	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"
)

var (
	jpegSOI = []byte{0xFF, 0xD8, 0xFF}
	jpegEOI = []byte{0xFF, 0xD9}
)

// ScanEmbeddedJPEG searches arbitrary RAW container bytes for an
// embedded JPEG preview. It locates the first start-of-image marker,
// then the first end-of-image marker after it, and accepts the slice
// only if it fully decodes as a JPEG. Marker-like byte runs inside
// metadata blocks fail the decode gate and report a miss, not an
// error.
func ScanEmbeddedJPEG(data []byte) ([]byte, bool) {
	start := bytes.Index(data, jpegSOI)
	if start < 0 {
		logging.Debug("embedded scan: no JPEG start marker")
		return nil, false
	}

	rel := bytes.Index(data[start:], jpegEOI)
	if rel < 0 {
		logging.Debug("embedded scan: no JPEG end marker after offset %d", start)
		return nil, false
	}
	end := start + rel + len(jpegEOI)

	candidate := data[start:end]
	if _, err := jpeg.Decode(bytes.NewReader(candidate)); err != nil {
		logging.Debug("embedded scan: candidate at %d (%d bytes) failed decode: %v", start, len(candidate), err)
		return nil, false
	}

	logging.Debug("embedded scan: found JPEG at %d, %d bytes", start, len(candidate))

	// Detach from the container buffer.
	out := make([]byte, len(candidate))
	copy(out, candidate)
	return out, true
}
