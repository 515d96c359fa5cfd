// Package media implements the thumbnail derivation strategies: the
// embedded-JPEG container scan, the libvips-backed RAW decode, direct
// TIFF decode, placeholder synthesis, and the resize/orientation/
// compression optimizer.
//
// Strategies are independent; sequencing them into a pipeline is the
// job of the pipeline package.
package media
