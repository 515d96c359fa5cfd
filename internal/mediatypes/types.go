package mediatypes

import (
	"path/filepath"
	"strings"
)

// Category represents the storage category segment of an object key.
type Category string

const (
	// CategoryRaw is the directory for camera RAW originals.
	CategoryRaw Category = "raw"
	// CategoryJpeg is the directory for JPEG originals.
	CategoryJpeg Category = "jpg"
	// CategoryRawThumbnail is the directory for thumbnails of RAW originals.
	CategoryRawThumbnail Category = "rawThumbnail"
	// CategoryJpegThumbnail is the directory for thumbnails of JPEG originals.
	CategoryJpegThumbnail Category = "jpgThumbnail"
	// CategoryUnknown represents an unrecognized category segment.
	CategoryUnknown Category = ""
)

// RawExtensions maps recognized camera RAW file extensions to true.
// Lowercase with leading dot.
var RawExtensions = map[string]bool{
	".arw":  true, // Sony
	".cr2":  true, // Canon
	".cr3":  true, // Canon
	".dng":  true, // Adobe DNG
	".nef":  true, // Nikon
	".nrw":  true, // Nikon
	".orf":  true, // Olympus
	".pef":  true, // Pentax
	".raf":  true, // Fuji
	".rw2":  true, // Panasonic
	".x3f":  true, // Sigma
	".srw":  true, // Samsung
	".kdc":  true, // Kodak
	".dcr":  true, // Kodak
	".raw":  true, // Generic
	".tiff": true,
	".tif":  true,
	".3fr":  true, // Hasselblad
	".mef":  true, // Mamiya
	".mrw":  true, // Minolta
	".rwl":  true, // Leica
	".iiq":  true, // Phase One
	".erf":  true, // Epson
	".mos":  true, // Leaf
	".rwz":  true, // Rawzor
}

// JpegExtensions maps recognized JPEG file extensions to true.
var JpegExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// TiffExtensions maps TIFF-family extensions to true. These are a
// subset of RawExtensions that can be decoded directly instead of
// going through the RAW codec.
var TiffExtensions = map[string]bool{
	".tiff": true,
	".tif":  true,
}

// MimeTypes maps file extensions to their MIME types.
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".dng":  "image/x-adobe-dng",
	".cr2":  "image/x-canon-cr2",
	".nef":  "image/x-nikon-nef",
	".arw":  "image/x-sony-arw",
	".raf":  "image/x-fuji-raf",
	".orf":  "image/x-olympus-orf",
	".rw2":  "image/x-panasonic-rw2",
}

// Ext returns the lowercase extension of a file name, including the
// leading dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// IsRawExt returns true for recognized camera RAW extensions.
func IsRawExt(ext string) bool {
	return RawExtensions[strings.ToLower(ext)]
}

// IsJpegExt returns true for recognized JPEG extensions.
func IsJpegExt(ext string) bool {
	return JpegExtensions[strings.ToLower(ext)]
}

// IsTiffExt returns true for TIFF-family extensions.
func IsTiffExt(ext string) bool {
	return TiffExtensions[strings.ToLower(ext)]
}

// IsSupportedExt returns true if the extension belongs to either
// recognized set.
func IsSupportedExt(ext string) bool {
	return IsRawExt(ext) || IsJpegExt(ext)
}

// CategoryForDir returns the Category for a key directory segment.
// Returns CategoryUnknown if the segment is not a known category.
func CategoryForDir(segment string) Category {
	switch Category(segment) {
	case CategoryRaw, CategoryJpeg, CategoryRawThumbnail, CategoryJpegThumbnail:
		return Category(segment)
	default:
		return CategoryUnknown
	}
}

// ThumbnailCategory maps a source category to its thumbnail category.
// The mapping is total over the two source categories; anything else
// reports ok=false.
func ThumbnailCategory(c Category) (Category, bool) {
	switch c {
	case CategoryRaw:
		return CategoryRawThumbnail, true
	case CategoryJpeg:
		return CategoryJpegThumbnail, true
	default:
		return CategoryUnknown, false
	}
}

// IsThumbnailCategory returns true for the two thumbnail categories.
// Objects under these are never reprocessed.
func IsThumbnailCategory(c Category) bool {
	return c == CategoryRawThumbnail || c == CategoryJpegThumbnail
}

// GetMimeType returns the MIME type for a given file extension.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[strings.ToLower(ext)]; ok {
		return mime
	}
	return "application/octet-stream"
}
