package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"

	"github.com/koxtuichi/photo-upload-s3-app/internal/keys"
	"github.com/koxtuichi/photo-upload-s3-app/internal/logging"
	"github.com/koxtuichi/photo-upload-s3-app/internal/media"
	"github.com/koxtuichi/photo-upload-s3-app/internal/mediatypes"
	"github.com/koxtuichi/photo-upload-s3-app/internal/metrics"

	"github.com/disintegration/imaging"
)

// ErrorKind classifies how a record turned out. Handlers map kinds to
// response status codes.
type ErrorKind int

const (
	// KindOK means a thumbnail was produced.
	KindOK ErrorKind = iota
	// KindSkipped means the object is not pipeline input (already a
	// thumbnail, or filtered out before processing).
	KindSkipped
	// KindPathFormat means the object key does not follow the storage
	// layout convention.
	KindPathFormat
	// KindUnsupported means the key parsed but the file is not a type
	// the category can hold.
	KindUnsupported
	// KindDecode means the source bytes could not be decoded.
	KindDecode
	// KindTransfer means a storage download or upload failed.
	KindTransfer
	// KindInternal means an unexpected failure, including recovered
	// panics.
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindSkipped:
		return "skipped"
	case KindPathFormat:
		return "path_format"
	case KindUnsupported:
		return "unsupported"
	case KindDecode:
		return "decode"
	case KindTransfer:
		return "transfer"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Result is the outcome of deriving one thumbnail.
type Result struct {
	SourceKey      string
	DestinationKey string
	Artifact       *media.ThumbnailArtifact
	Provenance     media.Provenance
	Kind           ErrorKind
	Err            error
}

// Pipeline derives bounded-size JPEG thumbnails from photo uploads.
// RAW sources walk a strategy chain (embedded JPEG scan, then a full
// decode, then a synthesized placeholder) so the RAW path always yields
// an artifact; JPEG sources are resized directly and can fail.
type Pipeline struct {
	raw         *media.RawDecoder
	placeholder *media.PlaceholderGenerator
}

// New returns a pipeline. fontPath optionally names a TTF for the
// placeholder label.
func New(fontPath string) *Pipeline {
	return &Pipeline{
		raw:         media.NewRawDecoder(),
		placeholder: media.NewPlaceholderGenerator(fontPath),
	}
}

// Process derives a thumbnail for one object. It never panics; an
// unexpected failure is reported as KindInternal.
func (p *Pipeline) Process(key string, data []byte) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("pipeline panic on %s: %v", key, r)
			res = Result{
				SourceKey: key,
				Kind:      KindInternal,
				Err:       fmt.Errorf("internal error processing %s: %v", key, r),
			}
		}
	}()

	src, res, ok := p.classify(key)
	if !ok {
		return res
	}

	dst, err := src.Destination()
	if err != nil {
		res.Kind = KindPathFormat
		res.Err = err
		return res
	}
	res.DestinationKey = dst.Key()

	var (
		out        []byte
		provenance media.Provenance
	)
	switch src.Category {
	case mediatypes.CategoryRaw:
		out, provenance = p.deriveRaw(key, src.FileName, data)
	case mediatypes.CategoryJpeg:
		out, provenance, err = p.deriveJpeg(key, data)
		if err != nil {
			res.Kind = classifyJpegErr(err)
			res.Err = err
			return res
		}
	default:
		res.Kind = KindUnsupported
		res.Err = fmt.Errorf("category %q is not pipeline input", src.Category)
		return res
	}

	artifact, err := buildArtifact(out)
	if err != nil {
		res.Kind = KindInternal
		res.Err = fmt.Errorf("produced bytes do not decode: %w", err)
		return res
	}

	metrics.ThumbnailsTotal.WithLabelValues(string(src.Category), string(provenance)).Inc()
	metrics.ThumbnailBytes.WithLabelValues(string(src.Category)).Observe(float64(artifact.SizeBytes))

	res.Artifact = artifact
	res.Provenance = provenance
	res.Kind = KindOK
	return res
}

// Classify vets a key before any bytes are fetched. ok reports
// whether the object is pipeline input worth downloading; when false
// the Result already carries the final outcome for the record.
func (p *Pipeline) Classify(key string) (Result, bool) {
	_, res, ok := p.classify(key)
	return res, ok
}

func (p *Pipeline) classify(key string) (keys.SourcePath, Result, bool) {
	res := Result{SourceKey: key}

	src, err := keys.Parse(key)
	if err != nil {
		res.Kind = KindPathFormat
		res.Err = err
		return keys.SourcePath{}, res, false
	}

	// Thumbnails write back into the same bucket; never re-derive from
	// our own output.
	if mediatypes.IsThumbnailCategory(src.Category) {
		res.Kind = KindSkipped
		return src, res, false
	}

	// Files that do not belong in their category are rejected before
	// any strategy runs; the chain must never turn a stray text file
	// into an uploaded placeholder.
	ext := mediatypes.Ext(src.FileName)
	switch src.Category {
	case mediatypes.CategoryRaw:
		if !mediatypes.IsRawExt(ext) {
			res.Kind = KindUnsupported
			res.Err = fmt.Errorf("unsupported extension %q in raw category", ext)
			return src, res, false
		}
	case mediatypes.CategoryJpeg:
		if !mediatypes.IsJpegExt(ext) {
			res.Kind = KindUnsupported
			res.Err = fmt.Errorf("unsupported extension %q in jpg category", ext)
			return src, res, false
		}
	}

	return src, res, true
}

// deriveRaw walks the RAW strategy chain. It always returns encoded
// JPEG bytes; every failure degrades to the next strategy and the
// placeholder cannot fail.
func (p *Pipeline) deriveRaw(key, fileName string, data []byte) ([]byte, media.Provenance) {
	if embedded, ok := media.ScanEmbeddedJPEG(data); ok {
		metrics.StrategyAttemptsTotal.WithLabelValues("embedded_scan", "ok").Inc()
		logging.Debug("%s: embedded JPEG found (%d bytes)", key, len(embedded))
		return media.Optimize(embedded, media.DefaultMaxWidth, media.DefaultMaxHeight), media.ProvenanceEmbedded
	}
	metrics.StrategyAttemptsTotal.WithLabelValues("embedded_scan", "miss").Inc()

	if mediatypes.IsTiffExt(mediatypes.Ext(fileName)) {
		if img, err := media.DecodeTIFF(data); err == nil {
			metrics.StrategyAttemptsTotal.WithLabelValues("tiff_decode", "ok").Inc()
			if out, err := media.EncodeJPEG(img, media.ReencodeQuality); err == nil {
				return media.Optimize(out, media.DefaultMaxWidth, media.DefaultMaxHeight), media.ProvenanceDecoded
			}
		} else {
			metrics.StrategyAttemptsTotal.WithLabelValues("tiff_decode", "error").Inc()
			logging.Warn("%s: TIFF decode failed: %v", key, err)
		}
	}

	if p.raw.Available() {
		if img, err := p.raw.Decode(data, media.DefaultDecodeOptions()); err == nil {
			metrics.StrategyAttemptsTotal.WithLabelValues("raw_decode", "ok").Inc()
			if out, err := media.EncodeJPEG(img, media.ReencodeQuality); err == nil {
				return media.Optimize(out, media.DefaultMaxWidth, media.DefaultMaxHeight), media.ProvenanceDecoded
			}
		} else {
			metrics.StrategyAttemptsTotal.WithLabelValues("raw_decode", "error").Inc()
			logging.Warn("%s: RAW decode failed: %v", key, err)
		}
	}

	metrics.StrategyAttemptsTotal.WithLabelValues("placeholder", "ok").Inc()
	logging.Info("%s: no strategy produced an image, using placeholder", key)

	out, err := media.EncodeJPEG(p.placeholder.Generate(), media.ReencodeQuality)
	if err != nil {
		// Encoding a flat raster cannot realistically fail; if it does,
		// the recover in Process reports it.
		panic(fmt.Sprintf("placeholder encode failed: %v", err))
	}
	return out, media.ProvenancePlaceholder
}

// deriveJpeg resizes a JPEG source to the long-edge bound and applies
// the corrective compression pass. Extension eligibility is settled by
// classify before this runs.
func (p *Pipeline) deriveJpeg(key string, data []byte) ([]byte, media.Provenance, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", &media.DecodeError{Format: "jpeg", Err: err}
	}

	resized := media.FitWithin(img, media.JpegLongEdge, media.JpegLongEdge)
	out, err := media.EncodeJPEG(resized, media.BaseQuality)
	if err != nil {
		return nil, "", err
	}

	logging.Debug("%s: resized %dx%d -> %dx%d (%d bytes)", key,
		img.Bounds().Dx(), img.Bounds().Dy(),
		resized.Bounds().Dx(), resized.Bounds().Dy(), len(out))

	return media.CompressToCap(out), media.ProvenanceResized, nil
}

func classifyJpegErr(err error) ErrorKind {
	var decodeErr *media.DecodeError
	if errors.As(err, &decodeErr) {
		return KindDecode
	}
	return KindInternal
}

func buildArtifact(data []byte) (*media.ThumbnailArtifact, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &media.ThumbnailArtifact{
		Data:        data,
		ContentType: "image/jpeg",
		Width:       cfg.Width,
		Height:      cfg.Height,
		SizeBytes:   len(data),
	}, nil
}
