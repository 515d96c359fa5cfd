package media

import "fmt"

// Provenance indicates which extraction strategy produced a thumbnail.
type Provenance string

const (
	// ProvenanceEmbedded means the thumbnail is a JPEG payload found
	// inside the RAW container.
	ProvenanceEmbedded Provenance = "embedded"
	// ProvenanceDecoded means the thumbnail was rendered from a full
	// decode of the source (RAW codec or TIFF).
	ProvenanceDecoded Provenance = "decoded"
	// ProvenancePlaceholder means no strategy produced a usable image
	// and a synthesized stand-in was used.
	ProvenancePlaceholder Provenance = "placeholder"
	// ProvenanceResized means the source was a JPEG resized directly.
	ProvenanceResized Provenance = "resized"
)

// ThumbnailArtifact is the final pipeline output: a valid JPEG with its
// decoded dimensions. This is the only value crossing the output
// boundary.
type ThumbnailArtifact struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	SizeBytes   int
}

// DecodeError reports that a codec rejected the source bytes. It is
// recoverable inside the RAW strategy chain.
type DecodeError struct {
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
