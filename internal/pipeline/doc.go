// Package pipeline turns uploaded photos into bounded-size JPEG
// thumbnails.
//
// A RAW upload walks a fixed strategy chain: scan the container for an
// embedded JPEG, fall back to a full decode (TIFF via the pure-Go
// codec, everything else via libvips), and finally synthesize a
// placeholder. Each step degrades gracefully to the next, so RAW
// processing always produces an artifact. JPEG uploads skip the chain
// and are resized directly, which is the one path that can fail on
// corrupt input.
package pipeline
